package lms

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"sync"

	"github.com/rcliao/bmi-percentile/internal/calcerr"
	"github.com/rcliao/bmi-percentile/internal/model"
)

// Default reference file names, one per sex.
const (
	DefaultMaleFile   = "percentiles_imc_niños.csv"
	DefaultFemaleFile = "percentiles_imc_niñas.csv"
)

// Source supplies the reference table for a sex.
type Source interface {
	Load(ctx context.Context, sex model.Sex) (Table, error)
}

// DirSource reads ';'-separated CSV tables with ',' decimals from an fs.FS.
type DirSource struct {
	FS         fs.FS
	MaleFile   string
	FemaleFile string
}

// NewDirSource returns a DirSource with the default file names.
func NewDirSource(fsys fs.FS) *DirSource {
	return &DirSource{FS: fsys, MaleFile: DefaultMaleFile, FemaleFile: DefaultFemaleFile}
}

func (d *DirSource) file(sex model.Sex) (string, error) {
	switch sex {
	case model.Male:
		return d.MaleFile, nil
	case model.Female:
		return d.FemaleFile, nil
	}
	return "", calcerr.New(calcerr.TableUnavailable, "sex", "no percentile table for sex %q", sex)
}

func (d *DirSource) Load(ctx context.Context, sex model.Sex) (Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name, err := d.file(sex)
	if err != nil {
		return nil, err
	}
	f, err := d.FS.Open(name)
	if err != nil {
		return nil, calcerr.Wrap(calcerr.TableUnavailable, "", err, "could not load percentile table %s", name)
	}
	defer f.Close()

	t, err := ParseCSV(f)
	if err != nil {
		return nil, calcerr.Wrap(calcerr.TableUnavailable, "", err, "invalid percentile table %s", name)
	}
	return t, nil
}

var requiredColumns = []string{"Month", "L", "M", "S"}

// ParseCSV reads a WHO-style table. Only the Month, L, M and S columns are
// used; any other column is ignored.
func ParseCSV(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("missing header")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	cols := make([]int, len(requiredColumns))
	for i, name := range requiredColumns {
		c, ok := idx[name]
		if !ok {
			return nil, fmt.Errorf("column %q not found", name)
		}
		cols[i] = c
	}

	var t Table
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		var vals [4]float64
		for i, c := range cols {
			if c >= len(rec) {
				return nil, fmt.Errorf("line %d: missing %s", line, requiredColumns[i])
			}
			v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(rec[c]), ",", "."), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad %s value %q", line, requiredColumns[i], rec[c])
			}
			vals[i] = v
		}
		t = append(t, Row{AgeMonths: int(vals[0]), L: vals[1], M: vals[2], S: vals[3]})
	}
	if len(t) == 0 {
		return nil, fmt.Errorf("no rows")
	}
	return t, nil
}

// CachedSource keeps each sex's table for the life of the process.
type CachedSource struct {
	src    Source
	mu     sync.Mutex
	tables map[model.Sex]Table
}

// NewCachedSource wraps src with a per-sex cache.
func NewCachedSource(src Source) *CachedSource {
	return &CachedSource{src: src, tables: make(map[model.Sex]Table)}
}

func (c *CachedSource) Load(ctx context.Context, sex model.Sex) (Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.tables[sex]; ok {
		return t, nil
	}
	t, err := c.src.Load(ctx, sex)
	if err != nil {
		return nil, err
	}
	c.tables[sex] = t
	return t, nil
}

// StaticSource serves fixed in-memory tables.
type StaticSource map[model.Sex]Table

func (s StaticSource) Load(_ context.Context, sex model.Sex) (Table, error) {
	t, ok := s[sex]
	if !ok || len(t) == 0 {
		return nil, calcerr.New(calcerr.TableUnavailable, "", "no percentile table for sex %q", sex)
	}
	return t, nil
}
