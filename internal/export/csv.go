package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/vytor/chessstats/internal/models"
)

// CSVWriter writes the semicolon-separated statistics file. The header is
// written when the writer is created.
type CSVWriter struct {
	w      *csv.Writer
	closer io.Closer
	rows   int
}

func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	cw.UseCRLF = true
	if err := cw.Write(models.StatsHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	return &CSVWriter{w: cw}, nil
}

// CreateCSV creates (or truncates) path and returns a writer that owns it.
func CreateCSV(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	c, err := NewCSVWriter(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	c.closer = f
	return c, nil
}

func (c *CSVWriter) WriteRow(row models.StatsRow) error {
	if err := c.w.Write(row.Record()); err != nil {
		return err
	}
	c.rows++
	return nil
}

// Rows is the number of data rows written so far.
func (c *CSVWriter) Rows() int { return c.rows }

func (c *CSVWriter) Close() error {
	c.w.Flush()
	err := c.w.Error()
	if c.closer != nil {
		if cerr := c.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
