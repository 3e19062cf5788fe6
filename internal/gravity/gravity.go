// Package gravity computes Newtonian gravitational force between two bodies
// over a range of distances.
package gravity

import (
	"errors"
	"fmt"
	"io"
	"math"
	"text/tabwriter"
)

var (
	ErrNonPositiveDistance = errors.New("gravity: distance must be positive")
	ErrInvalidStep         = errors.New("gravity: step must be positive")
	ErrInvalidRange        = errors.New("gravity: distance range must be finite")
	ErrTooManyRows         = errors.New("gravity: table too large")
)

// MaxRows bounds the number of rows Table will produce.
const MaxRows = 100_000

// DefaultG is the gravitational constant in N·m²/kg².
const DefaultG = 6.674e-11

// Params describes two bodies and the distance range to tabulate.
// Masses are in kilograms, distances in metres.
type Params struct {
	M1, M2 float64
	G      float64

	Start, Stop, Step float64
}

// DefaultParams returns 0.5 kg and 1.5 kg bodies from 100 m to 1000 m in 50 m steps.
func DefaultParams() Params {
	return Params{
		M1:    0.5,
		M2:    1.5,
		G:     DefaultG,
		Start: 100,
		Stop:  1000,
		Step:  50,
	}
}

// Point is one row of a force table.
type Point struct {
	Distance float64
	Force    float64
}

// Force returns G·m1·m2 / r².
func Force(p Params, r float64) (float64, error) {
	if r <= 0 {
		return 0, fmt.Errorf("%w: %g", ErrNonPositiveDistance, r)
	}
	return p.G * p.M1 * p.M2 / (r * r), nil
}

// Table returns the force at Start, Start+Step, ... up to and including Stop.
// A Start beyond Stop yields an empty table; more than MaxRows rows is an error.
func Table(p Params) ([]Point, error) {
	if p.Step <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidStep, p.Step)
	}
	for _, v := range []float64{p.Start, p.Stop, p.Step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %g", ErrInvalidRange, v)
		}
	}
	if p.Start > p.Stop {
		return nil, nil
	}
	if rows := math.Floor((p.Stop-p.Start)/p.Step) + 1; rows > MaxRows {
		return nil, fmt.Errorf("%w: %.0f rows, at most %d", ErrTooManyRows, rows, MaxRows)
	}

	var points []Point
	for i := 0; ; i++ {
		r := p.Start + float64(i)*p.Step
		if r > p.Stop {
			break
		}
		f, err := Force(p, r)
		if err != nil {
			return nil, err
		}
		points = append(points, Point{Distance: r, Force: f})
	}
	return points, nil
}

// WriteTable renders points as an aligned two-column table.
func WriteTable(w io.Writer, points []Point) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Distance (m)\tForce (N)\t")
	for _, pt := range points {
		fmt.Fprintf(tw, "%g\t%.6e\t\n", pt.Distance, pt.Force)
	}
	return tw.Flush()
}
