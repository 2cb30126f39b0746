package main

import (
	"go.uber.org/zap"

	"github.com/chazu/gengine/pkg/config"
	"github.com/chazu/gengine/pkg/engine"
	"github.com/chazu/gengine/pkg/kernel"
	"github.com/chazu/gengine/pkg/kernel/sdfx"
	"github.com/chazu/gengine/pkg/render"
)

func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	logger, err := cfg.Logger()
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func provideEngine(cfg *config.Config, logger *zap.Logger) *engine.Engine {
	return engine.NewEngine(
		engine.WithTimeout(cfg.EvalTimeout.Duration()),
		engine.WithLogger(logger),
	)
}

func provideKernel(cfg *config.Config) kernel.Kernel {
	return sdfx.New(sdfx.WithMeshCells(cfg.MeshCells))
}

func provideRenderer(k kernel.Kernel, cfg *config.Config, logger *zap.Logger) *render.Renderer {
	return render.New(k,
		render.WithLogger(logger),
		render.WithWorkers(cfg.Workers),
		render.WithHorizon(cfg.Horizon),
	)
}
