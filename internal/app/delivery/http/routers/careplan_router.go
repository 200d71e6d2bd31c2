package routers

import (
	"careplan-service/internal/app/delivery/http/controllers"
	"careplan-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachCareplanRoutes(router chi.Router, middlewares *middlewares.Middlewares, careplanController *controllers.CareplanController) {
	router.With(middlewares.RequireOpsAPIKey).Get("/providers", careplanController.ListProviders)
}
