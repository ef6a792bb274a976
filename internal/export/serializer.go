// Package export converts the session-scoped record list into tabular rows
// and structured documents, and renders export artifacts into a blob store.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"clogen/pkg/domain"
)

// Format identifies an export artifact encoding.
type Format string

// Supported export formats.
const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Formats returns the supported formats in default rendering order.
func Formats() []Format { return []Format{FormatCSV, FormatJSON} }

// joinDelimiter separates multi-valued cells. It is used consistently so
// downstream consumers can split deterministically.
const joinDelimiter = "; "

var columns = []string{
	"No",
	"Course",
	"Level",
	"Objective",
	"Outcomes",
	"Sub-competencies",
	"Behavioral domains",
	"Indicators",
	"Bloom level",
	"Verb",
	"Assessment methods",
	"CLO statement",
	"Created at",
}

// Columns returns the fixed export column order.
func Columns() []string {
	return append([]string(nil), columns...)
}

// Row is one flat export row keyed by column name.
type Row map[string]string

// Rows flattens records into export rows. The No column renumbers 1..n in
// list order, so deleting a record and re-exporting renumbers contiguously.
func Rows(records []domain.GeneratedRecord) []Row {
	out := make([]Row, 0, len(records))
	for i, r := range records {
		out = append(out, Row{
			"No":                 strconv.Itoa(i + 1),
			"Course":             r.CourseLabel,
			"Level":              string(r.Level),
			"Objective":          r.ObjectiveID,
			"Outcomes":           strings.Join(r.OutcomeIDs, joinDelimiter),
			"Sub-competencies":   strings.Join(r.SubCompetencies, joinDelimiter),
			"Behavioral domains": strings.Join(r.BehavioralDomains, joinDelimiter),
			"Indicators":         strings.Join(r.Indicators, joinDelimiter),
			"Bloom level":        r.BloomLevel,
			"Verb":               r.Verb,
			"Assessment methods": strings.Join(r.AssessmentMethods, joinDelimiter),
			"CLO statement":      r.Statement,
			"Created at":         r.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}

// EncodeCSV renders records as a CSV document with the fixed column order.
// An empty record list yields domain.ErrNoRecords and no payload.
func EncodeCSV(records []domain.GeneratedRecord) ([]byte, error) {
	if len(records) == 0 {
		return nil, domain.ErrNoRecords
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(columns); err != nil {
		return nil, err
	}
	for _, row := range Rows(records) {
		cells := make([]string, len(columns))
		for i, column := range columns {
			cells[i] = row[column]
		}
		if err := writer.Write(cells); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeJSON renders records as a pretty-printed structured document with
// stable field order; decoding it reproduces the record list exactly.
func EncodeJSON(records []domain.GeneratedRecord) ([]byte, error) {
	if len(records) == 0 {
		return nil, domain.ErrNoRecords
	}
	return json.MarshalIndent(records, "", "  ")
}

// Filename names an export artifact after its creation date, e.g.
// generated_clos_2026-08-24.csv.
func Filename(format Format, at time.Time) string {
	return fmt.Sprintf("generated_clos_%s.%s", at.UTC().Format("2006-01-02"), format)
}

// ContentType returns the MIME type for a format.
func ContentType(format Format) string {
	switch format {
	case FormatCSV:
		return "text/csv"
	case FormatJSON:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

// ParseFormat normalizes a format string.
func ParseFormat(s string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, true
	case FormatJSON:
		return FormatJSON, true
	default:
		return "", false
	}
}
