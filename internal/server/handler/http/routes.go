// Package http provides the chi router and handlers of the HoloFavs
// favorites backend.
package http

import (
	"net/http"

	"github.com/atinyakov/HoloFavs/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves
// the HoloFavs API under /api.
//
// Routes:
//
//	GET    /api/personajes[/{id}]         → catalog.ListCharacters / GetCharacter
//	GET    /api/planetas[/{id}]           → catalog.ListPlanets / GetPlanet
//	GET    /api/vehiculos[/{id}]          → catalog.ListVehicles / GetVehicle
//	POST   /api/personajes                → catalog.CreateCharacter
//	DELETE /api/personajes/{id}           → catalog.DeleteCharacter
//	POST   /api/planetas                  → catalog.CreatePlanet
//	DELETE /api/planetas/{id}             → catalog.DeletePlanet
//	POST   /api/vehiculos                 → catalog.CreateVehicle
//	DELETE /api/vehiculos/{id}            → catalog.DeleteVehicle
//	POST   /api/usuarios                  → users.Register
//	GET    /api/usuarios/{id}             → users.Get
//	DELETE /api/usuarios/{id}             → users.Delete
//	GET    /api/usuarios/{id}/favoritos   → favorites.List
//	POST   /api/activar_favorito/{id}     → favorites.Activate
//	DELETE /api/desactivar_favorito/{id}  → favorites.Deactivate
//
// Middleware chain (applied in order):
//  1. Recoverer: turns handler panics into 500s
//  2. WithRequestLogging(logger): request id and access log
//  3. AllowContentType("application/json"): rejects non-JSON bodies
func NewRouter(
	catalog *CatalogHandler,
	users *UserHandler,
	favorites *FavoriteHandler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.WithRequestLogging(logger))
	// Bodiless requests pass through unchecked.
	r.Use(chiMiddleware.AllowContentType("application/json"))

	r.Route("/api", func(r chi.Router) {
		r.Get("/personajes", catalog.ListCharacters)
		r.Post("/personajes", catalog.CreateCharacter)
		r.Get("/personajes/{id}", catalog.GetCharacter)
		r.Delete("/personajes/{id}", catalog.DeleteCharacter)
		r.Get("/planetas", catalog.ListPlanets)
		r.Post("/planetas", catalog.CreatePlanet)
		r.Get("/planetas/{id}", catalog.GetPlanet)
		r.Delete("/planetas/{id}", catalog.DeletePlanet)
		r.Get("/vehiculos", catalog.ListVehicles)
		r.Post("/vehiculos", catalog.CreateVehicle)
		r.Get("/vehiculos/{id}", catalog.GetVehicle)
		r.Delete("/vehiculos/{id}", catalog.DeleteVehicle)

		r.Post("/usuarios", users.Register)
		r.Route("/usuarios/{id}", func(r chi.Router) {
			r.Get("/", users.Get)
			r.Delete("/", users.Delete)
			r.Get("/favoritos", favorites.List)
		})

		r.Post("/activar_favorito/{id}", favorites.Activate)
		r.Delete("/desactivar_favorito/{id}", favorites.Deactivate)
	})

	return r
}
