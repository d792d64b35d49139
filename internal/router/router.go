package router

import (
	"net/http"
	"time"

	"github.com/tanmay-mevada/DStrA-sub001/internal/domain"
	"github.com/tanmay-mevada/DStrA-sub001/internal/handler"
	appmw "github.com/tanmay-mevada/DStrA-sub001/internal/middleware"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/cache"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/response"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Deps struct {
	Auth    *handler.AuthHandler
	OTP     *handler.AuthOTPHandler
	Reset   *handler.AuthResetHandler
	Content *handler.ContentHandler
	Admin   *handler.AdminHandler
	Execute *handler.ExecuteHandler
	Contact *handler.ContactHandler

	AuthMW *appmw.AuthMiddleware
	Cache  *cache.Cache
}

// New assembles the full route tree under /api/v1.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			response.Message(w, http.StatusOK, "ok")
		})

		// Unauthenticated auth surface, rate limited per IP.
		r.Group(func(r chi.Router) {
			r.Use(appmw.RateLimit(d.Cache, 30, time.Minute))

			r.Post("/auth/otp/issue", d.OTP.IssueOTP)
			r.Post("/auth/otp/verify", d.OTP.VerifyOTP)
			r.Post("/auth/reset/request", d.Reset.RequestReset)
			r.Get("/auth/reset/validate", d.Reset.ValidateReset)
			r.Post("/auth/reset/complete", d.Reset.CompleteReset)
			r.Post("/auth/login", d.Auth.Login)
		})

		r.Post("/contact", d.Contact.Send)

		// Anything below needs a live session.
		r.Group(func(r chi.Router) {
			r.Use(d.AuthMW.Require)

			r.Delete("/auth/logout", d.Auth.Logout)
			r.Get("/auth/profile", d.Auth.Profile)
			r.Get("/auth/sessions", d.Auth.Sessions)

			r.Get("/chapters", d.Content.ListChapters)
			r.Get("/chapters/{id}", d.Content.GetChapter)
			r.Get("/snippets", d.Content.ListSnippets)
			r.Get("/snippets/{id}", d.Content.GetSnippet)
			r.Get("/programs", d.Content.ListPrograms)
			r.Get("/programs/{id}", d.Content.GetProgram)
			r.Get("/libraries", d.Content.ListLibraries)
			r.Get("/libraries/{id}", d.Content.GetLibrary)

			r.Post("/execute", d.Execute.Execute)
			r.Get("/execute/languages", d.Execute.Languages)

			// Mutations and user administration are admin-only.
			r.Group(func(r chi.Router) {
				r.Use(d.AuthMW.RequireRole(domain.RoleAdmin))

				r.Post("/chapters", d.Content.CreateChapter)
				r.Put("/chapters/{id}", d.Content.UpdateChapter)
				r.Delete("/chapters/{id}", d.Content.DeleteChapter)

				r.Post("/snippets", d.Content.CreateSnippet)
				r.Put("/snippets/{id}", d.Content.UpdateSnippet)
				r.Delete("/snippets/{id}", d.Content.DeleteSnippet)

				r.Post("/programs", d.Content.CreateProgram)
				r.Put("/programs/{id}", d.Content.UpdateProgram)
				r.Delete("/programs/{id}", d.Content.DeleteProgram)

				r.Post("/libraries", d.Content.CreateLibrary)
				r.Put("/libraries/{id}", d.Content.UpdateLibrary)
				r.Delete("/libraries/{id}", d.Content.DeleteLibrary)

				r.Get("/admin/users", d.Admin.ListUsers)
				r.Patch("/admin/users/{id}/role", d.Admin.ChangeRole)
			})
		})
	})

	return r
}
