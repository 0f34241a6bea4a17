package mesh

import (
	"strings"
	"testing"
)

const sampleGr3 = `test mesh
2 4
1 -75.00 35.00 10.0
2 -75.10 35.10 12.0
3 -75.20 35.20 15.0
4 -75.30 35.30 18.0
1 3 1 2 3
2 3 2 3 4
2 = Number of open boundaries
4 = Total number of open boundary nodes
2 = Number of nodes for open boundary 1
1
2
2 = Number of nodes for open boundary 2
3
4
`

func TestRead_SampleMesh(t *testing.T) {
	m, err := Read(strings.NewReader(sampleGr3))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if m.Name() != "test mesh" {
		t.Errorf("Name() = %q, want \"test mesh\"", m.Name())
	}
	boundaries := m.OpenBoundaries()
	if len(boundaries) != 2 {
		t.Fatalf("got %d open boundaries, want 2", len(boundaries))
	}
	if len(boundaries[0].Nodes) != 2 || len(boundaries[1].Nodes) != 2 {
		t.Fatalf("boundary node counts = %d, %d, want 2, 2",
			len(boundaries[0].Nodes), len(boundaries[1].Nodes))
	}
	first := boundaries[0].Nodes[0]
	if first.ID != 1 || first.Lon != -75.00 || first.Lat != 35.00 {
		t.Errorf("boundary 1 node 1 = %+v, want {ID:1 Lon:-75 Lat:35}", first)
	}
	last := boundaries[1].Nodes[1]
	if last.ID != 4 || last.Lon != -75.30 || last.Lat != 35.30 {
		t.Errorf("boundary 2 node 2 = %+v, want {ID:4 Lon:-75.3 Lat:35.3}", last)
	}
}

func TestRead_NoComments(t *testing.T) {
	// Boundary count lines without the conventional "= ..." comments.
	bare := `mesh
1 3
1 0.0 0.0 5.0
2 1.0 0.0 5.0
3 0.0 1.0 5.0
1 3 1 2 3
1
2
2
1
2
`
	m, err := Read(strings.NewReader(bare))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	boundaries := m.OpenBoundaries()
	if len(boundaries) != 1 {
		t.Fatalf("got %d open boundaries, want 1", len(boundaries))
	}
	if got := boundaries[0].Nodes[1].ID; got != 2 {
		t.Errorf("second boundary node ID = %d, want 2", got)
	}
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"truncated node table", "mesh\n1 3\n1 0.0 0.0 5.0\n"},
		{"bad counts", "mesh\nx y\n"},
		{"boundary node out of range", `mesh
1 3
1 0.0 0.0 5.0
2 1.0 0.0 5.0
3 0.0 1.0 5.0
1 3 1 2 3
1
1
1
9
`},
	}
	for _, tt := range tests {
		if _, err := Read(strings.NewReader(tt.input)); err == nil {
			t.Errorf("%s: expected error, got nil", tt.name)
		}
	}
}
