package api

import (
	"github.com/labstack/echo/v4"
)

// Router bundles the API handlers behind a single route registrar.
type Router struct {
	assess  *AssessEchoHandler
	predict *PredictEchoHandler
}

func NewRouter(assess *AssessEchoHandler, predict *PredictEchoHandler) *Router {
	return &Router{assess: assess, predict: predict}
}

func (r *Router) RegisterRoutes(e *echo.Echo) {
	r.assess.RegisterRoutes(e)
	r.predict.RegisterRoutes(e)
}
