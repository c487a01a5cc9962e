// SPDX-License-Identifier: MIT

package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Columns is the header row written by CSVWriter, in order.
var Columns = []string{
	"Run ID",
	"System",
	"Layer name",
	"Layer oldname",
	"Layer value",
	"PCA",
	"PCA dims",
	"PCA explained variance total",
	"Labelling",
	"Cluster statistic type",
	"Cluster statistic value",
	"Cluster statistic p",
	"Cluster statistic p perms",
	"Cluster statistic p default",
}

// CSVConfig specifies options for CSV export.
type CSVConfig struct {
	// Precision is the number of decimal places for floating-point values.
	// Default: 6
	Precision int

	// NAString stands in for values that do not apply to a row (PCA fields
	// without PCA, p-value fields without permutations).
	// Default: "NA"
	NAString string

	// IncludeHeader writes Columns as the first row.
	// Default: true
	IncludeHeader bool

	// Comma is the field delimiter.
	// Default: ','
	Comma rune
}

// DefaultCSVConfig returns a CSVConfig with the defaults documented on each field.
func DefaultCSVConfig() *CSVConfig {
	return &CSVConfig{
		Precision:     6,
		NAString:      "NA",
		IncludeHeader: true,
		Comma:         ',',
	}
}

// CSVWriter writes result rows in CSV form.
type CSVWriter struct {
	config      *CSVConfig
	writer      *csv.Writer
	headerDone  bool
	rowsWritten int
}

// NewCSVWriter creates a CSVWriter over w. A nil config means DefaultCSVConfig().
func NewCSVWriter(w io.Writer, config *CSVConfig) *CSVWriter {
	if config == nil {
		config = DefaultCSVConfig()
	}
	cw := csv.NewWriter(w)
	if config.Comma != 0 {
		cw.Comma = config.Comma
	}

	return &CSVWriter{config: config, writer: cw}
}

// WriteHeader writes the header row once; later calls are no-ops.
func (cw *CSVWriter) WriteHeader() error {
	if cw.headerDone {
		return nil
	}
	if err := cw.writer.Write(Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	cw.headerDone = true

	return nil
}

// Write writes one row, preceded by the header on first use when
// IncludeHeader is set.
func (cw *CSVWriter) Write(r Row) error {
	if cw.config.IncludeHeader && !cw.headerDone {
		if err := cw.WriteHeader(); err != nil {
			return err
		}
	}
	if err := cw.writer.Write(cw.format(r)); err != nil {
		return fmt.Errorf("failed to write CSV row: %w", err)
	}
	cw.rowsWritten++

	return nil
}

// WriteAll writes rows in order and stops at the first failure.
func (cw *CSVWriter) WriteAll(rows []Row) error {
	for _, r := range rows {
		if err := cw.Write(r); err != nil {
			return err
		}
	}

	return nil
}

// Flush flushes buffered data to the underlying writer.
func (cw *CSVWriter) Flush() error {
	cw.writer.Flush()
	if err := cw.writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return nil
}

// RowsWritten returns the number of data rows written, header excluded.
func (cw *CSVWriter) RowsWritten() int {
	return cw.rowsWritten
}

func (cw *CSVWriter) format(r Row) []string {
	res := r.Result
	na := cw.config.NAString

	pcaDims, pcaVar := na, na
	if res.PCA {
		pcaDims = strconv.Itoa(res.PCADims)
		pcaVar = cw.float(res.PCAExplainedVariance)
	}
	p, perms, fell := na, na, na
	if res.PValueComputed {
		// A statistic beyond the null never reads as an exact p = 0.
		p = res.PString(cw.config.Precision)
		perms = strconv.Itoa(res.Permutations)
		fell = strconv.FormatBool(res.FellOffEnd)
	}

	return []string{
		r.RunID,
		r.System,
		r.Layer.Name(),
		r.Layer.OldName(),
		strconv.Itoa(r.Layer.Value()),
		strconv.FormatBool(res.PCA),
		pcaDims,
		pcaVar,
		r.Labelling,
		res.Measure.String(),
		cw.float(res.Value),
		p,
		perms,
		fell,
	}
}

func (cw *CSVWriter) float(v float64) string {
	return strconv.FormatFloat(v, 'f', cw.config.Precision, 64)
}
