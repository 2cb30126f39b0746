package engine

import (
	"fmt"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/gengine/pkg/geometry"
	"github.com/chazu/gengine/pkg/scene"
)

// (material "name" :color "#rrggbb" [:wrap-s "clamp"] ...)
func (b *builder) material(args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)
	if len(pa.positional) != 1 {
		return zygo.SexpNull, fmt.Errorf("material requires a name")
	}
	name, err := toString(pa.positional[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("name: %w", err)
	}
	var color string
	if err := pa.str("material", "color", &color); err != nil {
		return zygo.SexpNull, err
	}
	if color == "" {
		return zygo.SexpNull, fmt.Errorf("material %q needs :color", name)
	}

	defaults := b.s.Defaults
	tex := &defaults.Texture
	for _, err := range []error{
		pa.str("material", "wrap-s", &tex.WrapS),
		pa.str("material", "wrap-t", &tex.WrapT),
		pa.str("material", "min-filter", &tex.MinFilter),
		pa.str("material", "mag-filter", &tex.MagFilter),
	} {
		if err != nil {
			return zygo.SexpNull, err
		}
	}
	if v, ok := pa.kw["mipmap"]; ok {
		if tex.Mipmap, err = toBool(v); err != nil {
			return zygo.SexpNull, fmt.Errorf("mipmap: %w", err)
		}
	}

	m, err := scene.NewColorMaterial(defaults, name, color)
	if err != nil {
		return zygo.SexpNull, err
	}
	if err := b.s.AddMaterial(m); err != nil {
		return zygo.SexpNull, err
	}
	return &sexpMaterial{name: name}, nil
}

// (camera :at (point 0 0 50) :angles (angles 0 0 0))
func (b *builder) camera(args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)
	if v, ok := pa.kw["at"]; ok {
		p, err := toPoint(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("at: %w", err)
		}
		b.s.Camera.Move(p)
	}
	if v, ok := pa.kw["angles"]; ok {
		a, err := toAngles(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("angles: %w", err)
		}
		b.s.Camera.Rotate(a.Yaw, a.Pitch, a.Roll)
	}
	return zygo.SexpNull, nil
}

// (light :at p | :direction v [:ambient rgb] [:diffuse rgb] [:specular rgb]
//
//	[:spot v :exponent e :cutoff deg] [:attenuation (vec3 c l q)])
//
// Returns the slot the light occupies.
func (b *builder) light(args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)
	var l *scene.Light
	switch {
	case pa.kw["at"] != nil:
		p, err := toPoint(pa.kw["at"])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("at: %w", err)
		}
		l = scene.NewPointLight(p)
	case pa.kw["direction"] != nil:
		d, err := toVec3(pa.kw["direction"])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("direction: %w", err)
		}
		l = scene.NewDirectionalLight(d)
	default:
		return zygo.SexpNull, fmt.Errorf("light requires :at or :direction")
	}

	var rgb [3][3]float64
	for i, key := range []string{"ambient", "diffuse", "specular"} {
		v, ok := pa.kw[key]
		if !ok {
			continue
		}
		c, err := toRGB(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", key, err)
		}
		rgb[i] = c
	}
	l.SetIntensity(rgb[0], rgb[1], rgb[2])

	if v, ok := pa.kw["spot"]; ok {
		dir, err := toVec3(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("spot: %w", err)
		}
		exponent, cutoff := 0.0, l.SpotCutoff
		if err := pa.float("light", "exponent", &exponent); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.float("light", "cutoff", &cutoff); err != nil {
			return zygo.SexpNull, err
		}
		l.SetSpot(dir, exponent, cutoff)
	}
	if v, ok := pa.kw["attenuation"]; ok {
		c, err := toRGB(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("attenuation: %w", err)
		}
		l.SetAttenuation(c[0], c[1], c[2])
	}

	slot, err := b.s.AddLight(l)
	if err != nil {
		return zygo.SexpNull, err
	}
	return &zygo.SexpInt{Val: int64(slot)}, nil
}

// (limits min-corner max-corner)
func (b *builder) limits(args []zygo.Sexp) (zygo.Sexp, error) {
	pts, _, err := pointsAndFloats("limits", args, 2, 0)
	if err != nil {
		return zygo.SexpNull, err
	}
	lo, hi := pts[0], pts[1]
	if lo.X > hi.X || lo.Y > hi.Y || lo.Z > hi.Z {
		return zygo.SexpNull, fmt.Errorf("limits: %v is not below %v", lo.Vec3(), hi.Vec3())
	}
	b.s.Limits = scene.Limits{
		Min: geometry.Pt(lo.X, lo.Y, lo.Z),
		Max: geometry.Pt(hi.X, hi.Y, hi.Z),
	}
	return zygo.SexpNull, nil
}

// (horizon "material")
func (b *builder) horizon(args []zygo.Sexp) (zygo.Sexp, error) {
	if err := needArgs("horizon", args, 1); err != nil {
		return zygo.SexpNull, err
	}
	name, err := toMaterialName(args[0])
	if err != nil {
		return zygo.SexpNull, err
	}
	b.s.HorizonMaterial = name
	return zygo.SexpNull, nil
}
