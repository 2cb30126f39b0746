package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/gengine/pkg/figure"
	"github.com/chazu/gengine/pkg/geometry"
)

func TestNewScene(t *testing.T) {
	s := New()
	if s.Nodes == nil {
		t.Fatal("Nodes map should be initialized")
	}
	if s.NameIndex == nil {
		t.Fatal("NameIndex map should be initialized")
	}
	if s.Camera == nil {
		t.Fatal("scene should start with a camera")
	}
	if s.NodeCount() != 0 {
		t.Errorf("empty scene should have 0 nodes, got %d", s.NodeCount())
	}
	if s.Defaults.Texture.WrapS != "repeat" {
		t.Errorf("default wrap_s = %q, want repeat", s.Defaults.Texture.WrapS)
	}
}

func TestNodeIDs(t *testing.T) {
	a := NewNodeID("figure/wheel")
	if a != NewNodeID("figure/wheel") {
		t.Error("NewNodeID should be deterministic")
	}
	if a == NewNodeID("figure/axle") {
		t.Error("different paths should give different IDs")
	}
	if len(a) != 16 {
		t.Errorf("ID %q should be 16 hex digits", a)
	}
	if len(a.Short()) != 8 {
		t.Errorf("Short() = %q, want 8 chars", a.Short())
	}
	if AnonymousID("figure") == AnonymousID("figure") {
		t.Error("anonymous IDs should be unique")
	}
	if !ZeroID.IsZero() || a.IsZero() {
		t.Error("IsZero misreports")
	}
}

func TestAddNodeAndLookup(t *testing.T) {
	s := New()
	id := NewNodeID("figure/disc")
	s.AddNode(&Node{
		ID:   id,
		Kind: NodeFigure,
		Name: "disc",
		Data: FigureData{Figure: figure.NewCircle(geometry.Pt(0, 0, 0), 1)},
	})
	s.AddRoot(id)
	s.AddRoot(id)

	if s.NodeCount() != 1 {
		t.Errorf("node count = %d, want 1", s.NodeCount())
	}
	if n := s.Lookup("disc"); n == nil || n.ID != id {
		t.Fatal("Lookup('disc') failed")
	}
	if s.MustLookup("disc").ID != id {
		t.Error("MustLookup returned wrong node")
	}
	if s.Lookup("nonexistent") != nil {
		t.Error("Lookup should return nil for missing name")
	}
	if len(s.Roots) != 1 {
		t.Errorf("roots = %v, want one entry", s.Roots)
	}
	if got := s.OfKind(NodeFigure); len(got) != 1 {
		t.Errorf("OfKind(figure) = %d nodes, want 1", len(got))
	}
}

func TestMustLookupPanics(t *testing.T) {
	s := New()
	defer func() {
		if recover() == nil {
			t.Error("MustLookup should panic for a missing name")
		}
	}()
	s.MustLookup("ghost")
}

func TestChildrenSkipsMissing(t *testing.T) {
	s := New()
	a := &Node{ID: NewNodeID("a"), Kind: NodeGroup, Data: GroupData{}}
	g := &Node{ID: NewNodeID("g"), Kind: NodeGroup, Children: []NodeID{a.ID, NewNodeID("missing")}, Data: GroupData{}}
	s.AddNode(a)
	s.AddNode(g)

	children := s.Children(g)
	if len(children) != 1 || children[0] != a {
		t.Errorf("Children = %v, want [a]", children)
	}
}

func TestLimitsAndHorizon(t *testing.T) {
	s := New()
	s.Limits = Limits{Min: geometry.Pt(0, 0, 0), Max: geometry.Pt(2, 3, 6)}
	s.HorizonMaterial = "sky"

	assert.InDelta(t, 7.0, s.Limits.Diagonal(), 1e-12)
	assert.True(t, s.Limits.Contains(geometry.Pt(2, 3, 6)))
	assert.False(t, s.Limits.Contains(geometry.Pt(2, 3, 6.1)))

	h := s.Horizon()
	assert.Equal(t, figure.KindHorizon, h.Kind())
	assert.Equal(t, "sky", h.Material())
	assert.InDelta(t, 7.0, h.Radius(), 1e-12)
	assert.True(t, h.Origin().ApproxEqual(geometry.Pt(1, 1.5, 3), 1e-12))
}

func TestLightSlots(t *testing.T) {
	s := New()
	for i := 0; i < MaxLights; i++ {
		slot, err := s.AddLight(NewPointLight(geometry.Pt(0, 0, float64(i))))
		require.NoError(t, err)
		assert.Equal(t, i, slot)
	}
	_, err := s.AddLight(NewDirectionalLight(geometry.UnitZ))
	require.ErrorIs(t, err, ErrNoLightSlot)
	assert.Len(t, s.Lights, MaxLights)
}

func TestLightDefaults(t *testing.T) {
	l := NewDirectionalLight(geometry.Vec3{Y: -1})
	assert.True(t, l.Directional())
	assert.Equal(t, 180.0, l.SpotCutoff)
	assert.Equal(t, [3]float64{1, 0, 0}, l.Attenuation)

	p := NewPointLight(geometry.Pt(1, 2, 3))
	assert.False(t, p.Directional())
	p.SetIntensity([3]float64{0.1, 0.1, 0.1}, [3]float64{1, 1, 1}, [3]float64{0.5, 0.5, 0.5})
	assert.Equal(t, [4]float64{1, 1, 1, 1}, p.Diffuse)
	p.SetSpot(geometry.Vec3{Z: -1}, 2, 30)
	p.SetAttenuation(1, 0.1, 0.01)
	assert.Equal(t, 30.0, p.SpotCutoff)
	assert.Equal(t, [3]float64{1, 0.1, 0.01}, p.Attenuation)
}

func TestMaterials(t *testing.T) {
	s := New()
	s.Defaults.Texture.WrapS = "clamp"

	m, err := NewColorMaterial(s.Defaults, "brick", "#b22222")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xb2, 0x22, 0x22}, m.Pixmap.Data)
	assert.Equal(t, "clamp", m.Texture.WrapS)

	require.NoError(t, s.AddMaterial(m))
	err = s.AddMaterial(m)
	assert.True(t, errors.Is(err, ErrDuplicateMaterial))
	assert.Same(t, m, s.Material("brick"))

	_, err = NewColorMaterial(s.Defaults, "bad", "red")
	assert.ErrorIs(t, err, ErrBadColor)

	data := []byte{1, 2, 3, 4, 5, 6}
	pm, err := NewPixmapMaterial(s.Defaults, "stripes", Pixmap{Width: 2, Height: 1, Data: data})
	require.NoError(t, err)
	data[0] = 99
	assert.Equal(t, byte(1), pm.Pixmap.Data[0])

	_, err = NewPixmapMaterial(s.Defaults, "short", Pixmap{Width: 2, Height: 2, Data: data})
	assert.Error(t, err)
}

func TestCamera(t *testing.T) {
	c := NewCamera(geometry.Pt(0, 0, 10), geometry.Angles{})
	assert.InDelta(t, 10.0, c.Distance(geometry.Pt(0, 0, 0)), 1e-12)
	assert.True(t, c.Direction().ApproxEqual(geometry.Vec3{Z: -1}, 1e-12))

	c.Rotate(0, math.Pi/2, 0)
	c.Rotate(0, math.Pi/2, 0)
	assert.InDelta(t, math.Pi/2, c.Angles.Pitch, 1e-12, "rotate replaces, it does not accumulate")
	assert.Equal(t, 0.0, c.Angles.Yaw)
	// -Z turned a quarter about Y points along -X.
	assert.True(t, c.Direction().ApproxEqual(geometry.Vec3{X: -1}, 1e-12), "direction %v", c.Direction())

	c.Move(geometry.Pt(1, 2, 3))
	v := c.ViewMatrix()
	got := geometry.Pt(0, 0, 0).Apply(v)
	assert.True(t, got.ApproxEqual(geometry.Pt(1, 2, 3), 1e-12), "origin maps to %v", got)
}

func TestCameraRotationOrder(t *testing.T) {
	// X first, then Y, then Z, applied on the camera's own axes.
	c := NewCamera(geometry.Point{}, geometry.Angles{Yaw: math.Pi / 2, Roll: math.Pi / 2})
	got := geometry.Pt(1, 0, 0).Apply(c.ViewMatrix())
	// Z takes X to Y, then X takes Y to Z.
	assert.True(t, got.ApproxEqual(geometry.Pt(0, 0, 1), 1e-12), "got %v", got)
}
