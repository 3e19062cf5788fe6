package batch

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bft-labs/addrcheck/internal/domain"
	"github.com/bft-labs/addrcheck/pkg/validate"
)

// Report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the supported report formats.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatYAML}
}

// ValidFormat reports whether f names a supported report format.
func ValidFormat(f string) bool {
	for _, known := range Formats() {
		if strings.EqualFold(f, known) {
			return true
		}
	}
	return false
}

// WriteReport renders rep to w in the given format.
func WriteReport(w io.Writer, rep domain.Report, format string) error {
	switch strings.ToLower(format) {
	case FormatText:
		return writeText(w, rep)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", domain.ErrUnknownFormat, format)
}

func writeText(w io.Writer, rep domain.Report) error {
	for _, rec := range rep.Records {
		verdict := validate.ResultOf(rec.Valid)
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\n", rec.Line, verdict, rec.Candidate); err != nil {
			return err
		}
	}
	s := rep.Summary
	_, err := fmt.Fprintf(w, "%s: %d checked, %d valid, %d invalid\n", s.Kind, s.Total, s.Valid, s.Invalid)
	return err
}
