// Package mesh reads horizontal mesh files in gr3/hgrid format, exposing
// only the open boundary topology the forcing generator needs.
package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.ngs.io/bctides/internal/domain"
)

// Mesh holds the open boundary segments of a gr3 mesh, in file order.
type Mesh struct {
	name           string
	openBoundaries []domain.OpenBoundary
}

// Name returns the mesh description line.
func (m *Mesh) Name() string { return m.name }

// OpenBoundaries returns the open boundary segments in file order.
func (m *Mesh) OpenBoundaries() []domain.OpenBoundary {
	return m.openBoundaries
}

// ReadFile reads a gr3 mesh from path.
func ReadFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mesh file: %w", err)
	}
	defer func() { _ = f.Close() }()
	m, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Read parses a gr3 mesh. The format is line oriented: a description
// line; an element/node count line; node lines (id, x, y, depth);
// element lines; then the open boundary block (count, total node count,
// and per boundary a node count line followed by one node id per line).
func Read(r io.Reader) (*Mesh, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1024*1024), 1024*1024)

	name, err := scanLine(sc)
	if err != nil {
		return nil, fmt.Errorf("missing description line: %w", err)
	}

	counts, err := scanFields(sc, 2)
	if err != nil {
		return nil, fmt.Errorf("invalid element/node count line: %w", err)
	}
	ne, err := strconv.Atoi(counts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid element count %q: %w", counts[0], err)
	}
	np, err := strconv.Atoi(counts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid node count %q: %w", counts[1], err)
	}

	// Node table: keep coordinates so boundary nodes can be located by
	// harmonic interpolators.
	lon := make([]float64, np+1)
	lat := make([]float64, np+1)
	for i := 0; i < np; i++ {
		fields, err := scanFields(sc, 4)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i+1, err)
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil || id < 1 || id > np {
			return nil, fmt.Errorf("node %d: invalid id %q", i+1, fields[0])
		}
		x, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("node %d: invalid x %q: %w", id, fields[1], err)
		}
		y, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("node %d: invalid y %q: %w", id, fields[2], err)
		}
		lon[id] = x
		lat[id] = y
	}

	// Element table is not needed; skip.
	for i := 0; i < ne; i++ {
		if _, err := scanLine(sc); err != nil {
			return nil, fmt.Errorf("element %d: %w", i+1, err)
		}
	}

	nope, err := scanLeadingInt(sc)
	if err != nil {
		return nil, fmt.Errorf("invalid open boundary count line: %w", err)
	}
	if _, err := scanLeadingInt(sc); err != nil {
		return nil, fmt.Errorf("invalid open boundary node total line: %w", err)
	}

	boundaries := make([]domain.OpenBoundary, 0, nope)
	for b := 0; b < nope; b++ {
		n, err := scanLeadingInt(sc)
		if err != nil {
			return nil, fmt.Errorf("open boundary %d: %w", b+1, err)
		}
		nodes := make([]domain.Node, 0, n)
		for j := 0; j < n; j++ {
			id, err := scanLeadingInt(sc)
			if err != nil {
				return nil, fmt.Errorf("open boundary %d node %d: %w", b+1, j+1, err)
			}
			if id < 1 || id > np {
				return nil, fmt.Errorf("open boundary %d node %d: id %d out of range", b+1, j+1, id)
			}
			nodes = append(nodes, domain.Node{ID: id, Lon: lon[id], Lat: lat[id]})
		}
		boundaries = append(boundaries, domain.OpenBoundary{Nodes: nodes})
	}

	return &Mesh{name: strings.TrimSpace(name), openBoundaries: boundaries}, nil
}

func scanLine(sc *bufio.Scanner) (string, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return sc.Text(), nil
}

func scanFields(sc *bufio.Scanner, minFields int) ([]string, error) {
	line, err := scanLine(sc)
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(line)
	if len(fields) < minFields {
		return nil, fmt.Errorf("expected at least %d fields, got %d", minFields, len(fields))
	}
	return fields, nil
}

// scanLeadingInt parses the first whitespace-separated token of the next
// line as an integer. gr3 files commonly carry trailing comments such as
// "3 = Number of open boundaries" on these lines.
func scanLeadingInt(sc *bufio.Scanner) (int, error) {
	fields, err := scanFields(sc, 1)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q: %w", fields[0], err)
	}
	return n, nil
}
