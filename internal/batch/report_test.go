package batch

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bft-labs/addrcheck/internal/domain"
)

func sampleReport() domain.Report {
	records := []domain.Record{
		{Line: 1, Candidate: "::1", Kind: "ipv6", Valid: true},
		{Line: 3, Candidate: "12345::", Kind: "ipv6", Valid: false},
	}
	return domain.Report{
		Summary: domain.Summarize("ipv6", records, 2*time.Millisecond),
		Records: records,
	}
}

func TestWriteReport_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, sampleReport(), "text"))

	assert.Equal(t,
		"1\tVALID\t::1\n"+
			"3\tINVALID\t12345::\n"+
			"ipv6: 2 checked, 1 valid, 1 invalid\n",
		buf.String())
}

func TestWriteReport_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, sampleReport(), "JSON"))

	var got domain.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleReport(), got)
}

func TestWriteReport_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, sampleReport(), "yaml"))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))

	summary, ok := got["summary"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 2, summary["total"])
	assert.Equal(t, "2ms", summary["duration"])

	records, ok := got["records"].([]any)
	require.True(t, ok)
	assert.Len(t, records, 2)
}

func TestWriteReport_UnknownFormat(t *testing.T) {
	err := WriteReport(&bytes.Buffer{}, sampleReport(), "csv")
	require.ErrorIs(t, err, domain.ErrUnknownFormat)
}

func TestValidFormat(t *testing.T) {
	assert.True(t, ValidFormat("text"))
	assert.True(t, ValidFormat("YAML"))
	assert.False(t, ValidFormat("xml"))
}
