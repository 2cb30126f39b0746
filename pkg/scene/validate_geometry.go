package scene

import (
	"fmt"
	"math"

	"github.com/chazu/gengine/pkg/figure"
)

// ---------------------------------------------------------------------------
// Tier 2: geometric validation (errors + warnings)
// ---------------------------------------------------------------------------

func validateGeometry(s *Scene) ([]ValidationError, []ValidationWarning) {
	var errs []ValidationError
	errs = append(errs, validateSolidDimensions(s)...)
	errs = append(errs, validateTransforms(s)...)

	var warnings []ValidationWarning
	warnings = append(warnings, validateEmptyFigures(s)...)
	warnings = append(warnings, validateInsideLimits(s)...)
	return errs, warnings
}

// validateSolidDimensions checks that every solid has positive extents.
func validateSolidDimensions(s *Scene) []ValidationError {
	var errs []ValidationError
	bad := func(node *Node, what string, v float64) {
		errs = append(errs, ValidationError{
			NodeID:   node.ID,
			Message:  fmt.Sprintf("%s %s is %.4f, must be positive", node.Kind, what, v),
			Severity: SeverityError,
		})
	}

	for _, node := range s.Nodes {
		sd, ok := node.Data.(SolidData)
		if !ok {
			continue
		}
		switch sd.Shape {
		case SolidBox:
			if sd.Size.X <= 0 {
				bad(node, "box size X", sd.Size.X)
			}
			if sd.Size.Y <= 0 {
				bad(node, "box size Y", sd.Size.Y)
			}
			if sd.Size.Z <= 0 {
				bad(node, "box size Z", sd.Size.Z)
			}
		case SolidCylinder, SolidPrism:
			if sd.Radius <= 0 {
				bad(node, sd.Shape.String()+" radius", sd.Radius)
			}
			if sd.Height <= 0 {
				bad(node, sd.Shape.String()+" height", sd.Height)
			}
			if sd.Shape == SolidPrism && sd.Sides < 3 {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("prism has %d sides, needs at least 3", sd.Sides),
					Severity: SeverityError,
				})
			}
			if sd.Shape == SolidPrism && sd.Sides > figure.MaxSides {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("prism has %d sides, at most %d allowed", sd.Sides, figure.MaxSides),
					Severity: SeverityError,
				})
			}
		default:
			errs = append(errs, ValidationError{
				NodeID:   node.ID,
				Message:  fmt.Sprintf("unknown solid shape %d", int(sd.Shape)),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// validateTransforms rejects NaN or infinite placement values, which would
// poison every vertex below them.
func validateTransforms(s *Scene) []ValidationError {
	var errs []ValidationError
	for _, node := range s.Nodes {
		td, ok := node.Data.(TransformData)
		if !ok {
			continue
		}
		if t := td.Translation; t != nil && !finite(t.X, t.Y, t.Z) {
			errs = append(errs, ValidationError{
				NodeID:   node.ID,
				Message:  fmt.Sprintf("translation %v is not finite", *t),
				Severity: SeverityError,
			})
		}
		if r := td.Rotation; r != nil && !finite(r.Yaw, r.Pitch, r.Roll) {
			errs = append(errs, ValidationError{
				NodeID:   node.ID,
				Message:  fmt.Sprintf("rotation %v is not finite", *r),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateEmptyFigures warns about figures whose generator produced no
// faces: degenerate input such as a two-sided polygon.
func validateEmptyFigures(s *Scene) []ValidationWarning {
	var warnings []ValidationWarning
	for _, node := range s.Nodes {
		fd, ok := node.Data.(FigureData)
		if !ok || fd.Figure == nil {
			continue
		}
		if len(fd.Figure.Faces()) == 0 {
			warnings = append(warnings, ValidationWarning{
				NodeID:  node.ID,
				Message: fmt.Sprintf("%s figure is degenerate and draws nothing", fd.Figure.Kind()),
			})
		}
	}
	return warnings
}

// validateInsideLimits warns about figures whose pivot lies outside the
// scene limits; they may end up behind the horizon.
func validateInsideLimits(s *Scene) []ValidationWarning {
	var warnings []ValidationWarning
	for _, node := range s.Nodes {
		fd, ok := node.Data.(FigureData)
		if !ok || fd.Figure == nil {
			continue
		}
		if o := fd.Figure.Origin(); !s.Limits.Contains(o) {
			warnings = append(warnings, ValidationWarning{
				NodeID:  node.ID,
				Message: fmt.Sprintf("figure origin %v lies outside the scene limits", o.Vec3()),
			})
		}
	}
	return warnings
}

// ---------------------------------------------------------------------------
// Tier 3: appearance warnings
// ---------------------------------------------------------------------------

func validateAppearance(s *Scene) []ValidationWarning {
	var warnings []ValidationWarning
	warnings = append(warnings, validateMaterialRefs(s)...)
	warnings = append(warnings, validateCamera(s)...)
	return warnings
}

// validateMaterialRefs warns when a figure or solid names a material the
// scene does not define; the renderer falls back to the palette.
func validateMaterialRefs(s *Scene) []ValidationWarning {
	var warnings []ValidationWarning
	check := func(id NodeID, name string) {
		if name != "" && s.Material(name) == nil {
			warnings = append(warnings, ValidationWarning{
				NodeID:  id,
				Message: fmt.Sprintf("material %q is not defined", name),
			})
		}
	}
	for _, node := range s.Nodes {
		switch d := node.Data.(type) {
		case FigureData:
			if d.Figure != nil {
				check(node.ID, d.Figure.Material())
			}
		case SolidData:
			check(node.ID, d.Material)
		}
	}
	check(ZeroID, s.HorizonMaterial)
	return warnings
}

// validateCamera warns when the camera sits outside the scene limits.
func validateCamera(s *Scene) []ValidationWarning {
	if s.Camera == nil || s.Limits.Contains(s.Camera.Position) {
		return nil
	}
	return []ValidationWarning{{
		Message: fmt.Sprintf("camera at %v lies outside the scene limits", s.Camera.Position.Vec3()),
	}}
}
