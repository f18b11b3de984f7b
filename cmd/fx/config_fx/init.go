package config_fx

import (
	"go.uber.org/fx"
	"riderquiz/internal/config"
)

var Module = fx.Provide(config.Load)
