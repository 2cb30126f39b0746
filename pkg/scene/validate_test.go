package scene

import (
	"math"
	"strings"
	"testing"

	"github.com/chazu/gengine/pkg/figure"
	"github.com/chazu/gengine/pkg/geometry"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

// buildValidScene creates a small scene: a disc placed above a box solid,
// both under one group root.
func buildValidScene() *Scene {
	s := New()

	discID := NewNodeID("figure/disc")
	placeID := NewNodeID("place/disc")
	boxID := NewNodeID("solid/base")
	groupID := NewNodeID("group/table")

	up := geometry.Vec3{Z: 5}
	s.AddNode(&Node{
		ID: discID, Kind: NodeFigure, Name: "disc",
		Data: FigureData{Figure: figure.NewCircle(geometry.Pt(0, 0, 0), 2)},
	})
	s.AddNode(&Node{
		ID: placeID, Kind: NodeTransform,
		Children: []NodeID{discID},
		Data:     TransformData{Translation: &up},
	})
	s.AddNode(&Node{
		ID: boxID, Kind: NodeSolid, Name: "base",
		Data: SolidData{Shape: SolidBox, Size: geometry.Vec3{X: 4, Y: 4, Z: 1}},
	})
	s.AddNode(&Node{
		ID: groupID, Kind: NodeGroup, Name: "table",
		Children: []NodeID{placeID, boxID},
		Data:     GroupData{Description: "simple table"},
	})
	s.AddRoot(groupID)
	return s
}

func hasError(errs []ValidationError, substr string) bool {
	for _, e := range errs {
		if e.Severity == SeverityError && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func hasWarning(errs []ValidationError, substr string) bool {
	for _, e := range errs {
		if e.Severity == SeverityWarning && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func resultHasWarning(r ValidationResult, substr string) bool {
	for _, w := range r.Warnings {
		if strings.Contains(w.Message, substr) {
			return true
		}
	}
	return false
}

func resultHasError(r ValidationResult, substr string) bool {
	for _, e := range r.Errors {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func logAll(t *testing.T, errs []ValidationError) {
	t.Helper()
	for _, e := range errs {
		t.Logf("  %s", e)
	}
}

// ---------------------------------------------------------------------------
// Tier 1
// ---------------------------------------------------------------------------

func TestValidate_ValidScene(t *testing.T) {
	errs := Validate(buildValidScene())
	for _, e := range errs {
		t.Errorf("unexpected validation error: %s", e)
	}
}

func TestValidate_EmptyScene(t *testing.T) {
	if errs := Validate(New()); len(errs) != 0 {
		logAll(t, errs)
		t.Error("empty scene should validate cleanly")
	}
}

func TestValidate_CycleDetection(t *testing.T) {
	s := New()
	aID, bID, cID := NewNodeID("a"), NewNodeID("b"), NewNodeID("c")
	s.AddNode(&Node{ID: aID, Kind: NodeGroup, Name: "a", Children: []NodeID{bID}, Data: GroupData{}})
	s.AddNode(&Node{ID: bID, Kind: NodeGroup, Name: "b", Children: []NodeID{cID}, Data: GroupData{}})
	s.AddNode(&Node{ID: cID, Kind: NodeGroup, Name: "c", Children: []NodeID{aID}, Data: GroupData{}})
	s.AddRoot(aID)

	errs := Validate(s)
	if !hasError(errs, "cycle") {
		logAll(t, errs)
		t.Error("expected cycle detection error, got none")
	}
}

func TestValidate_DanglingChild(t *testing.T) {
	s := buildValidScene()
	g := s.MustLookup("table")
	g.Children = append(g.Children, NewNodeID("ghost"))

	if errs := Validate(s); !hasError(errs, "does not exist") {
		logAll(t, errs)
		t.Error("expected dangling reference error")
	}
}

func TestValidate_DuplicateNames(t *testing.T) {
	s := buildValidScene()
	other := &Node{ID: NewNodeID("figure/disc2"), Kind: NodeFigure, Name: "disc",
		Data: FigureData{Figure: figure.NewCircle(geometry.Pt(0, 0, 0), 1)}}
	s.Nodes[other.ID] = other
	s.MustLookup("table").Children = append(s.MustLookup("table").Children, other.ID)

	if errs := Validate(s); !hasError(errs, "duplicate name") {
		logAll(t, errs)
		t.Error("expected duplicate name error")
	}
}

func TestValidate_NameIndexDangling(t *testing.T) {
	s := buildValidScene()
	s.NameIndex["phantom"] = NewNodeID("phantom")
	if errs := Validate(s); !hasError(errs, "phantom") {
		logAll(t, errs)
		t.Error("expected name index error")
	}
}

func TestValidate_MissingRoot(t *testing.T) {
	s := buildValidScene()
	s.AddRoot(NewNodeID("nowhere"))
	if errs := Validate(s); !hasError(errs, "root reference") {
		logAll(t, errs)
		t.Error("expected root reference error")
	}
}

func TestValidate_OrphanWarning(t *testing.T) {
	s := buildValidScene()
	s.AddNode(&Node{ID: NewNodeID("figure/stray"), Kind: NodeFigure, Name: "stray",
		Data: FigureData{Figure: figure.NewSegment(geometry.Pt(0, 0, 0), geometry.Pt(1, 0, 0))}})

	errs := Validate(s)
	if !hasWarning(errs, "orphan") {
		logAll(t, errs)
		t.Error("expected orphan warning")
	}
	if hasError(errs, "orphan") {
		t.Error("orphans should only warn")
	}
}

func TestValidate_KindMismatch(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want string
	}{
		{
			name: "figure without figure",
			node: &Node{ID: NewNodeID("x"), Kind: NodeFigure, Data: FigureData{}},
			want: "carries",
		},
		{
			name: "group carrying solid data",
			node: &Node{ID: NewNodeID("y"), Kind: NodeGroup, Data: SolidData{Shape: SolidBox, Size: geometry.Vec3{X: 1, Y: 1, Z: 1}}},
			want: "carries",
		},
		{
			name: "solid with children",
			node: &Node{ID: NewNodeID("z"), Kind: NodeSolid, Children: []NodeID{NewNodeID("figure/disc")},
				Data: SolidData{Shape: SolidBox, Size: geometry.Vec3{X: 1, Y: 1, Z: 1}}},
			want: "cannot have children",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := buildValidScene()
			s.AddNode(tt.node)
			s.AddRoot(tt.node.ID)
			if errs := Validate(s); !hasError(errs, tt.want) {
				logAll(t, errs)
				t.Errorf("expected error containing %q", tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Tiers 2 and 3
// ---------------------------------------------------------------------------

func TestValidateAll_ValidScene(t *testing.T) {
	r := ValidateAll(buildValidScene())
	if !r.OK() {
		for _, e := range r.Errors {
			t.Errorf("unexpected error: %s", e)
		}
	}
	for _, w := range r.Warnings {
		t.Errorf("unexpected warning: %s", w.Message)
	}
}

func TestValidateAll_SolidDimensions(t *testing.T) {
	tests := []struct {
		name string
		data SolidData
		want string
	}{
		{"flat box", SolidData{Shape: SolidBox, Size: geometry.Vec3{X: 1, Y: 0, Z: 1}}, "box size Y"},
		{"negative cylinder", SolidData{Shape: SolidCylinder, Radius: -1, Height: 2}, "cylinder radius"},
		{"two-sided prism", SolidData{Shape: SolidPrism, Sides: 2, Radius: 1, Height: 1}, "needs at least 3"},
		{"huge prism", SolidData{Shape: SolidPrism, Sides: 1 << 30, Radius: 1, Height: 1}, "at most 1024 allowed"},
		{"unknown shape", SolidData{Shape: SolidShape(42)}, "unknown solid shape"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := buildValidScene()
			id := NewNodeID("solid/" + tt.name)
			s.AddNode(&Node{ID: id, Kind: NodeSolid, Data: tt.data})
			s.AddRoot(id)
			if r := ValidateAll(s); !resultHasError(r, tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, r.Errors)
			}
		})
	}
}

func TestValidateAll_NonFiniteTransform(t *testing.T) {
	s := buildValidScene()
	bad := geometry.Vec3{X: math.NaN()}
	id := NewNodeID("place/bad")
	s.AddNode(&Node{ID: id, Kind: NodeTransform, Data: TransformData{Translation: &bad}})
	s.AddRoot(id)

	if r := ValidateAll(s); !resultHasError(r, "not finite") {
		t.Errorf("expected non-finite error, got %v", r.Errors)
	}
}

func TestValidateAll_Warnings(t *testing.T) {
	s := buildValidScene()

	empty := NewNodeID("figure/empty")
	s.AddNode(&Node{ID: empty, Kind: NodeFigure, Data: FigureData{Figure: figure.NewRegPol(geometry.Pt(0, 0, 0), 0, 5)}})
	s.AddRoot(empty)

	far := figure.NewCircle(geometry.Pt(500, 0, 0), 1)
	far.SetMaterial("marble")
	farID := NewNodeID("figure/far")
	s.AddNode(&Node{ID: farID, Kind: NodeFigure, Data: FigureData{Figure: far}})
	s.AddRoot(farID)

	s.Camera.Move(geometry.Pt(0, 0, 1000))

	r := ValidateAll(s)
	if !r.OK() {
		t.Fatalf("warnings only expected, got errors %v", r.Errors)
	}
	for _, want := range []string{"degenerate", "outside the scene limits", `material "marble"`, "camera at"} {
		if !resultHasWarning(r, want) {
			t.Errorf("missing warning containing %q", want)
		}
	}
}
