package scene

import (
	"github.com/chazu/gengine/pkg/geometry"
	"github.com/chazu/gengine/pkg/linalg"
)

// Camera is a viewpoint: a position plus yaw, pitch and roll in radians.
type Camera struct {
	Position geometry.Point  `json:"position"`
	Angles   geometry.Angles `json:"angles"`
}

// NewCamera places a camera at pos looking along -Z after rotation by angles.
func NewCamera(pos geometry.Point, angles geometry.Angles) *Camera {
	return &Camera{Position: pos, Angles: angles}
}

// Move puts the camera at p.
func (c *Camera) Move(p geometry.Point) {
	c.Position = geometry.Pt(p.X, p.Y, p.Z)
}

// Rotate replaces the camera orientation. Each angle is kept separately.
func (c *Camera) Rotate(yaw, pitch, roll float64) {
	c.Angles = geometry.Angles{Yaw: yaw, Pitch: pitch, Roll: roll}
}

// Distance returns how far p is from the camera.
func (c *Camera) Distance(p geometry.Point) float64 {
	return geometry.Distance(c.Position, p)
}

// orientation is X(yaw)·Y(pitch)·Z(roll): the camera turns about its own X
// axis first and its Z axis last.
func (c *Camera) orientation() linalg.Matrix {
	xy := linalg.Must(geometry.RotationX(c.Angles.Yaw).Mul(geometry.RotationY(c.Angles.Pitch)))
	return linalg.Must(xy.Mul(geometry.RotationZ(c.Angles.Roll)))
}

// Direction is the unit vector the camera looks along.
func (c *Camera) Direction() geometry.Vec3 {
	v, err := c.orientation().MulVec(geometry.Vec3{Z: -1}.Vector())
	if err != nil {
		return geometry.Vec3{Z: -1}
	}
	return geometry.Vec3From(v)
}

// ViewMatrix is the 4x4 model-view transform: translate to the camera
// position, then rotate about X, Y and Z in that order.
func (c *Camera) ViewMatrix() linalg.Matrix {
	rot := geometry.Homogeneous(c.orientation(), geometry.Vec3{})
	return linalg.Must(geometry.Translation(c.Position.Vec3()).Mul(rot))
}
