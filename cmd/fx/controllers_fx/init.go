package controllers_fx

import (
	"go.uber.org/fx"
	"riderquiz/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewQuizController))
