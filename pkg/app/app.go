// Package app runs the whole pipeline behind the CLI and the preview
// server: script source is evaluated into a scene, validated, and rendered
// into meshes ready to be serialized as JSON.
package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/chazu/gengine/pkg/config"
	"github.com/chazu/gengine/pkg/engine"
	"github.com/chazu/gengine/pkg/render"
	"github.com/chazu/gengine/pkg/scene"
)

// App owns one engine and one renderer.
type App struct {
	engine   *engine.Engine
	renderer *render.Renderer
	palette  []string
	logger   *zap.Logger
}

// MeshData is the JSON-serializable mesh format sent to the rasterizer.
type MeshData struct {
	Vertices  []float32 `json:"vertices"`
	Normals   []float32 `json:"normals"`
	TexCoords []float32 `json:"texCoords,omitempty"`
	Indices   []uint32  `json:"indices"`
	Mode      string    `json:"mode"`
	PartName  string    `json:"partName"`
	Material  string    `json:"material,omitempty"`
	Color     string    `json:"color"`
}

// Diagnostic is a JSON-serializable error or warning. Line is 0 when the
// problem has no source position.
type Diagnostic struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// Result is the full answer to one Evaluate call. The slices are never
// nil so they encode as [] rather than null.
type Result struct {
	Version   uint64                     `json:"version"`
	Meshes    []MeshData                 `json:"meshes"`
	Camera    *scene.Camera              `json:"camera,omitempty"`
	Lights    []*scene.Light             `json:"lights"`
	Materials map[string]*scene.Material `json:"materials"`
	Errors    []Diagnostic               `json:"errors"`
	Warnings  []Diagnostic               `json:"warnings"`
}

// OK reports whether the evaluation produced no errors.
func (r Result) OK() bool { return len(r.Errors) == 0 }

// New wires an App from its parts. cfg supplies the fallback palette.
func New(e *engine.Engine, r *render.Renderer, cfg *config.Config, logger *zap.Logger) *App {
	palette := cfg.Palette
	if len(palette) == 0 {
		palette = config.DefaultPalette
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{engine: e, renderer: r, palette: palette, logger: logger}
}

func newResult() Result {
	return Result{
		Meshes:    []MeshData{},
		Lights:    []*scene.Light{},
		Materials: map[string]*scene.Material{},
		Errors:    []Diagnostic{},
		Warnings:  []Diagnostic{},
	}
}

// Evaluate takes script source and returns mesh data plus diagnostics.
func (a *App) Evaluate(ctx context.Context, source string) Result {
	result := newResult()

	// Step 1: Evaluate the source into a scene.
	s, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, superseded).
		a.logger.Warn("evaluation failed", zap.Error(err))
		result.Errors = append(result.Errors, Diagnostic{Message: err.Error()})
		return result
	}

	// Step 2: Convert eval errors to diagnostics.
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, Diagnostic{Line: e.Line, Col: e.Col, Message: e.Message})
		}
		return result
	}
	result.Version = s.Version

	// Step 3: Validate. Errors stop the pipeline, warnings ride along.
	v := scene.ValidateAll(s)
	for _, w := range v.Warnings {
		result.Warnings = append(result.Warnings, Diagnostic{Message: w.Message})
	}
	if !v.OK() {
		for _, e := range v.Errors {
			result.Errors = append(result.Errors, Diagnostic{Message: e.Error()})
		}
		return result
	}

	// Step 4: Render the scene into meshes.
	meshes, err := a.renderer.Render(ctx, s)
	if err != nil {
		a.logger.Warn("render failed", zap.Error(err), zap.Uint64("version", s.Version))
		result.Errors = append(result.Errors, Diagnostic{Message: "render failed: " + err.Error()})
		return result
	}

	// Step 5: Convert kernel meshes to MeshData. Defined materials give
	// the color; everything else cycles through the palette.
	for i, m := range meshes {
		color := a.palette[i%len(a.palette)]
		if mat := s.Material(m.Material); mat != nil && mat.Color != "" {
			color = mat.Color
		}
		result.Meshes = append(result.Meshes, MeshData{
			Vertices:  m.Vertices,
			Normals:   m.Normals,
			TexCoords: m.TexCoords,
			Indices:   m.Indices,
			Mode:      m.Mode,
			PartName:  m.PartName,
			Material:  m.Material,
			Color:     color,
		})
	}
	result.Camera = s.Camera
	if s.Lights != nil {
		result.Lights = s.Lights
	}
	for name, m := range s.Materials {
		result.Materials[name] = m
	}

	a.logger.Info("evaluated",
		zap.Uint64("version", s.Version),
		zap.Int("meshes", len(result.Meshes)),
		zap.Int("warnings", len(result.Warnings)))
	return result
}
