package ingest

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
)

// TestBuildPolygonPathHole covers a square with a triangular hole
func TestBuildPolygonPathHole(t *testing.T) {
	poly := Polygon{
		Exterior:  orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
		Interiors: []orb.Ring{{{4, 4}, {6, 4}, {5, 6}}},
	}
	path, err := BuildPolygonPath(poly)
	if err != nil {
		t.Fatalf("BuildPolygonPath() error = %v", err)
	}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside hole", 5, 5, false},
		{"filled corner", 1, 1, true},
		{"filled near hole", 3, 5, true},
		{"outside", 11, 5, false},
		{"far outside", -20, -20, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := path.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}

	closed := 0
	for _, sp := range path.Subpaths() {
		if sp.Closed {
			closed++
		}
	}
	if closed != 2 {
		t.Errorf("path has %d closed subpaths, want exterior and hole", closed)
	}
	b := path.Bound()
	if b.Min != (orb.Point{0, 0}) || b.Max != (orb.Point{10, 10}) {
		t.Errorf("Bound() = %v, want [0,0]-[10,10]", b)
	}
}

func TestBuildPolygonPath(t *testing.T) {
	tests := []struct {
		name      string
		poly      Polygon
		wantCmds  int
		wantEmpty bool
		wantErr   error
	}{
		{
			name:     "square",
			poly:     Polygon{Exterior: orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}}},
			wantCmds: 5, // M L L L Z
		},
		{
			name:     "closed square",
			poly:     Polygon{Exterior: orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}},
			wantCmds: 5,
		},
		{
			name:      "degenerate exterior",
			poly:      Polygon{Exterior: orb.Ring{{0, 0}, {10, 0}}},
			wantEmpty: true,
			wantErr:   ErrKindDegenerate,
		},
		{
			name: "degenerate hole ignored",
			poly: Polygon{
				Exterior:  orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
				Interiors: []orb.Ring{{{4, 4}, {6, 4}}},
			},
			wantCmds: 5,
		},
		{
			name: "collinear hole ignored",
			poly: Polygon{
				Exterior:  orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
				Interiors: []orb.Ring{{{4, 4}, {5, 5}, {6, 6}}},
			},
			wantCmds: 5,
		},
		{
			name:      "collinear exterior",
			poly:      Polygon{Exterior: orb.Ring{{0, 0}, {5, 5}, {10, 10}}},
			wantEmpty: true,
			wantErr:   ErrKindDegenerate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := BuildPolygonPath(tt.poly)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("BuildPolygonPath() error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("BuildPolygonPath() error = %v", err)
			}
			if path.Empty() != tt.wantEmpty {
				t.Errorf("Empty() = %v, want %v", path.Empty(), tt.wantEmpty)
			}
			if !tt.wantEmpty && path.Len() != tt.wantCmds {
				t.Errorf("Len() = %d, want %d: %v", path.Len(), tt.wantCmds, path.Commands())
			}
		})
	}
}

func TestBuildWayPath(t *testing.T) {
	path := BuildWayPath([]RawPoint{
		{true, 0, 0}, {false, 1, 0}, {false, 2, 0},
		{true, 5, 5}, {false, 6, 5},
	})
	want := []PathOp{OpMoveTo, OpLineTo, OpLineTo, OpMoveTo, OpLineTo}
	cmds := path.Commands()
	if len(cmds) != len(want) {
		t.Fatalf("BuildWayPath() = %v, want ops %v", cmds, want)
	}
	for i, op := range want {
		if cmds[i].Op != op {
			t.Errorf("cmd %d = %v, want %v", i, cmds[i].Op, op)
		}
	}
	if path.Contains(1, 0) {
		t.Error("open way path reports filled area")
	}
	if len(path.Subpaths()) != 2 {
		t.Errorf("Subpaths() = %d, want 2", len(path.Subpaths()))
	}
}

func TestRenderPathCommandsIsCopy(t *testing.T) {
	path := BuildWayPath([]RawPoint{{true, 0, 0}, {false, 1, 1}})
	cmds := path.Commands()
	cmds[0].X = 99
	if path.Commands()[0].X != 0 {
		t.Error("Commands() exposed internal state")
	}
}

func TestBuildPolygonPathKeepsGoodHoles(t *testing.T) {
	poly := Polygon{
		Exterior: orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
		Interiors: []orb.Ring{
			{{1, 1}, {2, 2}, {3, 3}},
			{{4, 4}, {6, 4}, {5, 6}},
		},
	}
	path, err := BuildPolygonPath(poly)
	if err != nil {
		t.Fatalf("BuildPolygonPath() error = %v", err)
	}
	if path.Empty() {
		t.Fatal("BuildPolygonPath() returned an empty path")
	}
	if path.Contains(5, 5) {
		t.Error("Contains(5, 5) = true, want the triangular hole kept")
	}
	if !path.Contains(2, 1) {
		t.Error("Contains(2, 1) = false, want the exterior filled")
	}
}
