//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"cryptometric/internal/app"
)

// InitializeApp builds the serve dependency graph via Wire: config, logger,
// loaded store, metrics registry, server.
func InitializeApp() (*App, error) {
	wire.Build(
		app.ProvideConfig,
		app.ProvideLogger,
		app.ProvideStore,
		app.ProvideParams,
		app.ProvideRegistry,
		app.ProvideServer,
		wire.Struct(new(App), "Config", "Store", "Server", "Logger"),
	)
	return nil, nil
}
