//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"github.com/google/wire"

	"github.com/chazu/gengine/pkg/app"
	"github.com/chazu/gengine/pkg/config"
	"github.com/chazu/gengine/pkg/server"
)

var appSet = wire.NewSet(provideLogger, provideEngine, provideKernel, provideRenderer, app.New)

func initializeApp(cfg *config.Config) (*app.App, func(), error) {
	wire.Build(appSet)
	return nil, nil, nil
}

func initializeServer(cfg *config.Config) (*server.Server, func(), error) {
	wire.Build(appSet, server.New, wire.Bind(new(server.Evaluator), new(*app.App)))
	return nil, nil, nil
}
