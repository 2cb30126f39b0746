package scene

import "github.com/chazu/gengine/pkg/geometry"

// MaxLights is the number of light slots a scene offers.
const MaxLights = 8

// Light is a positional, directional or spot light source. Intensities are
// RGBA in [0,1].
type Light struct {
	// Position is homogeneous: W = 1 for a positional light, 0 for a
	// directional one.
	Position      [4]float64    `json:"position"`
	Ambient       [4]float64    `json:"ambient"`
	Diffuse       [4]float64    `json:"diffuse"`
	Specular      [4]float64    `json:"specular"`
	SpotDirection geometry.Vec3 `json:"spot_direction"`
	SpotExponent  float64       `json:"spot_exponent"`
	SpotCutoff    float64       `json:"spot_cutoff"` // degrees; 180 disables the spot
	// Attenuation holds the constant, linear and quadratic coefficients.
	Attenuation [3]float64 `json:"attenuation"`
	Slot        int        `json:"slot"`
}

// NewPointLight is a positional light at p.
func NewPointLight(p geometry.Point) *Light {
	l := defaultLight()
	l.Position = [4]float64{p.X, p.Y, p.Z, 1}
	return l
}

// NewDirectionalLight is a light infinitely far away along dir.
func NewDirectionalLight(dir geometry.Vec3) *Light {
	l := defaultLight()
	l.Position = [4]float64{dir.X, dir.Y, dir.Z, 0}
	return l
}

func defaultLight() *Light {
	return &Light{
		Ambient:       [4]float64{0, 0, 0, 1},
		Diffuse:       [4]float64{0, 0, 0, 1},
		Specular:      [4]float64{0, 0, 0, 1},
		SpotDirection: geometry.Vec3{Z: -1},
		SpotCutoff:    180,
		Attenuation:   [3]float64{1, 0, 0},
		Slot:          -1,
	}
}

// Directional reports whether the light has no position.
func (l *Light) Directional() bool { return l.Position[3] == 0 }

// SetIntensity sets the RGB parts of the ambient, diffuse and specular
// terms. Alpha stays at 1.
func (l *Light) SetIntensity(ambient, diffuse, specular [3]float64) {
	l.Ambient = [4]float64{ambient[0], ambient[1], ambient[2], 1}
	l.Diffuse = [4]float64{diffuse[0], diffuse[1], diffuse[2], 1}
	l.Specular = [4]float64{specular[0], specular[1], specular[2], 1}
}

// SetSpot turns the light into a spot along dir.
func (l *Light) SetSpot(dir geometry.Vec3, exponent, cutoff float64) {
	l.SpotDirection = dir
	l.SpotExponent = exponent
	l.SpotCutoff = cutoff
}

// SetAttenuation sets the constant, linear and quadratic falloff.
func (l *Light) SetAttenuation(constant, linear, quadratic float64) {
	l.Attenuation = [3]float64{constant, linear, quadratic}
}
