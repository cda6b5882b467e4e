package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"petcuidado/internal/api/auth"
	"petcuidado/internal/api/consulta"
	"petcuidado/internal/api/dashboard"
	"petcuidado/internal/api/exame"
	"petcuidado/internal/api/pet"
	"petcuidado/internal/api/prescricao"
	"petcuidado/internal/api/vacina"
	"petcuidado/internal/domain"
	"petcuidado/internal/pkg/cache"
	"petcuidado/internal/pkg/middleware"
)

// Handlers agrupa os handlers injetados no roteador.
type Handlers struct {
	Auth       *auth.Handler
	Pet        *pet.Handler
	Consulta   *consulta.Handler
	Vacina     *vacina.Handler
	Prescricao *prescricao.Handler
	Exame      *exame.Handler
	Dashboard  *dashboard.Handler
}

// Deps agrupa as dependências transversais do roteador.
type Deps struct {
	TokenService         middleware.TokenService
	CacheClient          cache.Client
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
}

// NewRouter configura e retorna o roteador HTTP principal.
// Recebe os Handlers já inicializados por injeção de dependências.
func NewRouter(h Handlers, deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RateLimiter(deps.CacheClient, deps.RateLimitMaxRequests, deps.RateLimitPeriod))

	// --- Rotas públicas ---
	r.Get("/ping", PingHandler)
	r.Get("/swagger/*", httpSwagger.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/register", h.Auth.RegisterHandler)
		r.Post("/login", h.Auth.LoginHandler)

		// --- Rotas autenticadas ---
		r.Group(func(r chi.Router) {
			r.Use(middleware.NewAuthMiddleware(deps.TokenService, deps.CacheClient))

			r.Post("/logout", h.Auth.LogoutHandler)
			r.Get("/me", h.Auth.MeHandler)
			r.Get("/veterinarios", h.Auth.ListVeterinariosHandler)

			r.Route("/pets", func(r chi.Router) {
				r.Post("/", h.Pet.CreateHandler)
				r.Get("/", h.Pet.ListHandler)
				r.Get("/{id}", h.Pet.GetByIDHandler)
				r.Patch("/{id}", h.Pet.UpdateHandler)
				r.Delete("/{id}", h.Pet.DeleteHandler)
			})

			r.Route("/consultas", func(r chi.Router) {
				r.Post("/", h.Consulta.CreateHandler)
				r.Get("/", h.Consulta.ListHandler)
			})

			// Registros clínicos: a escrita é restrita a veterinários e admins.
			clinicalWrite := middleware.PermissionMiddleware(domain.RoleVeterinario, domain.RoleAdmin)

			r.Route("/vacinas", func(r chi.Router) {
				r.With(clinicalWrite).Post("/", h.Vacina.CreateHandler)
				r.Get("/", h.Vacina.ListHandler)
			})

			r.Route("/prescricoes", func(r chi.Router) {
				r.With(clinicalWrite).Post("/", h.Prescricao.CreateHandler)
				r.Get("/", h.Prescricao.ListHandler)
			})

			r.Route("/exames", func(r chi.Router) {
				r.With(clinicalWrite).Post("/", h.Exame.CreateHandler)
				r.Get("/", h.Exame.ListHandler)
			})

			r.Get("/dashboard/stats", h.Dashboard.StatsHandler)
		})
	})

	return r
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
