// Package dataset loads the student performance table from CSV.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/okian/studyscore/internal/domain/model"
	"github.com/okian/studyscore/pkg/errkind"
)

// Dataset is an immutable, column-ordered table.
type Dataset struct {
	columns []string
	rows    []model.DataRow
}

// LoadFile reads the CSV at path.
func LoadFile(ctx context.Context, path string) (*Dataset, error) {
	const op = "dataset.load_file"
	f, err := os.Open(path)
	if err != nil {
		return nil, errkind.Wrap(op, ErrOpen, err)
	}
	defer func() { _ = f.Close() }()
	return Load(ctx, f)
}

// Load reads a CSV with a header row. Empty cells become null, cells that
// parse as finite numbers become numbers and everything else stays text.
func Load(ctx context.Context, r io.Reader) (*Dataset, error) {
	const op = "dataset.load"
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errkind.New(op, ErrEmpty)
		}
		return nil, errkind.Wrap(op, ErrParse, err)
	}
	columns := make([]string, len(header))
	seen := make(map[string]struct{}, len(header))
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if name == "" {
			return nil, errkind.Wrap(op, ErrParse, fmt.Errorf("column %d has no name", i+1))
		}
		if _, dup := seen[name]; dup {
			return nil, errkind.Wrap(op, ErrParse, fmt.Errorf("duplicate column %q", name))
		}
		seen[name] = struct{}{}
		columns[i] = name
	}

	var rows []model.DataRow
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, errkind.Wrap(op, ErrParse, err)
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errkind.Wrap(op, ErrParse, fmt.Errorf("line %d: %w", line, err))
		}
		row := make(model.DataRow, len(columns))
		for i, col := range columns {
			row[col] = parseCell(rec[i])
		}
		rows = append(rows, row)
	}

	return &Dataset{columns: columns, rows: rows}, nil
}

func parseCell(raw string) model.Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return model.Null()
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return model.Number(f)
	}
	return model.Text(s)
}

// Columns returns the column names in file order.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// Rows returns the rows. Callers must not modify them.
func (d *Dataset) Rows() []model.DataRow { return d.rows }

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.rows) }

// HasColumn reports whether col exists.
func (d *Dataset) HasColumn(col string) bool {
	for _, c := range d.columns {
		if c == col {
			return true
		}
	}
	return false
}

// Pairs returns aligned x and y samples for rows where both columns parse
// as numbers.
func (d *Dataset) Pairs(xCol, yCol string) (xs, ys []float64, err error) {
	const op = "dataset.pairs"
	for _, col := range []string{xCol, yCol} {
		if !d.HasColumn(col) {
			return nil, nil, errkind.Wrap(op, ErrUnknownColumn, fmt.Errorf("%q", col))
		}
	}
	for _, row := range d.rows {
		xv, ok := row.Lookup(xCol)
		if !ok {
			continue
		}
		yv, ok := row.Lookup(yCol)
		if !ok {
			continue
		}
		x, okX := xv.Float()
		y, okY := yv.Float()
		if okX && okY {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	return xs, ys, nil
}
