package internal

import (
	"net/http"
	"reviewreminder/internal/controllers"
	"reviewreminder/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/launch", http.HandlerFunc(apiController.Launch))
	routers.Post("/foreground", http.HandlerFunc(apiController.Foreground))
	routers.Post("/resign", http.HandlerFunc(apiController.Resign))
	routers.Get("/prompt", http.HandlerFunc(apiController.Prompt))
	routers.Post("/prompt/respond", http.HandlerFunc(apiController.Respond))
	routers.Post("/reachability", http.HandlerFunc(apiController.Reachability))
	routers.Get("/state", http.HandlerFunc(apiController.State))
	return routers
}
