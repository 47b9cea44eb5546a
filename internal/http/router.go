package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/carepoint/medibill/internal/http/auth"
	"github.com/carepoint/medibill/internal/http/charge"
	"github.com/carepoint/medibill/internal/http/export"
	"github.com/carepoint/medibill/internal/http/importcsv"
	"github.com/carepoint/medibill/internal/http/invoice"
	"github.com/carepoint/medibill/internal/http/medicine"
)

func New(
	tokens *auth.Tokens,
	authV1 *auth.Handler,
	medicinesV1 *medicine.Handler,
	servicesV1 *charge.Handler,
	invoicesV1 *invoice.Handler,
	importV1 *importcsv.Handler,
	exportV1 *export.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				authV1.Routes(r)
			})

			r.Group(func(r chi.Router) {
				r.Use(auth.Middleware(tokens))
				authV1.ProtectedRoutes(r)
			})
		})

		// Everything past login requires a token.
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(tokens))

			r.Route("/medicines", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				medicinesV1.Routes(r)
			})

			r.Route("/services", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				servicesV1.Routes(r)
			})

			r.Route("/invoices", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				invoicesV1.Routes(r)
			})

			r.Route("/import", importV1.Routes)

			r.Route("/export", exportV1.Routes)

			r.Route("/users", func(r chi.Router) {
				r.Use(auth.RequireAdmin)
				r.Use(middleware.AllowContentType("application/json"))
				authV1.UserRoutes(r)
			})
		})
	})

	return router
}
