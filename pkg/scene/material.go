package scene

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadColor is returned for colors that are not #rrggbb.
var ErrBadColor = errors.New("scene: color must be #rrggbb")

// MaterialKind is the source of a material's texels.
type MaterialKind int

const (
	MaterialColor  MaterialKind = iota // one flat RGB texel
	MaterialPixmap                     // caller-supplied RGB pixmap
)

func (k MaterialKind) String() string {
	switch k {
	case MaterialColor:
		return "color"
	case MaterialPixmap:
		return "pixmap"
	default:
		return "unknown"
	}
}

// Pixmap is a packed RGB image, row-major, three bytes per texel.
type Pixmap struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Data   []byte `json:"data"`
}

// TextureParams are the sampling settings handed to the rasterizer with a
// material.
type TextureParams struct {
	MinFilter   string     `json:"min_filter" yaml:"min_filter"`
	MagFilter   string     `json:"mag_filter" yaml:"mag_filter"`
	WrapS       string     `json:"wrap_s" yaml:"wrap_s"`
	WrapT       string     `json:"wrap_t" yaml:"wrap_t"`
	MinLOD      float64    `json:"min_lod" yaml:"min_lod"`
	MaxLOD      float64    `json:"max_lod" yaml:"max_lod"`
	BorderColor [4]float64 `json:"border_color" yaml:"border_color"`
	Mipmap      bool       `json:"mipmap" yaml:"mipmap"`
}

// MaterialDefaults seeds the texture parameters of new materials. A scene
// owns one; every material built for that scene copies it.
type MaterialDefaults struct {
	Texture TextureParams `json:"texture" yaml:"texture"`
}

// DefaultMaterialDefaults mirrors the usual fixed-function defaults.
func DefaultMaterialDefaults() MaterialDefaults {
	return MaterialDefaults{Texture: TextureParams{
		MinFilter: "nearest-mipmap-linear",
		MagFilter: "linear",
		WrapS:     "repeat",
		WrapT:     "repeat",
		MinLOD:    -1000,
		MaxLOD:    1000,
	}}
}

// Material is how a figure's faces are filled.
type Material struct {
	Name    string        `json:"name"`
	Kind    MaterialKind  `json:"kind"`
	Color   string        `json:"color,omitempty"`
	Pixmap  *Pixmap       `json:"pixmap,omitempty"`
	Texture TextureParams `json:"texture"`
}

// NewColorMaterial builds a flat color material. color is #rrggbb.
func NewColorMaterial(defaults MaterialDefaults, name, color string) (*Material, error) {
	rgb, err := ParseColor(color)
	if err != nil {
		return nil, fmt.Errorf("material %q: %w", name, err)
	}
	return &Material{
		Name:    name,
		Kind:    MaterialColor,
		Color:   color,
		Pixmap:  &Pixmap{Width: 1, Height: 1, Data: rgb[:]},
		Texture: defaults.Texture,
	}, nil
}

// NewPixmapMaterial builds a material from an RGB pixmap. The data is
// copied.
func NewPixmapMaterial(defaults MaterialDefaults, name string, pm Pixmap) (*Material, error) {
	if pm.Width <= 0 || pm.Height <= 0 || len(pm.Data) != 3*pm.Width*pm.Height {
		return nil, fmt.Errorf("material %q: pixmap %dx%d with %d bytes", name, pm.Width, pm.Height, len(pm.Data))
	}
	data := make([]byte, len(pm.Data))
	copy(data, pm.Data)
	return &Material{
		Name:    name,
		Kind:    MaterialPixmap,
		Pixmap:  &Pixmap{Width: pm.Width, Height: pm.Height, Data: data},
		Texture: defaults.Texture,
	}, nil
}

// ParseColor decodes #rrggbb.
func ParseColor(s string) ([3]byte, error) {
	var rgb [3]byte
	if len(s) != 7 || !strings.HasPrefix(s, "#") {
		return rgb, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return rgb, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	rgb[0], rgb[1], rgb[2] = byte(v>>16), byte(v>>8), byte(v)
	return rgb, nil
}
