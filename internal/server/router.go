package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/adresponse/adresponse/internal/api"
	"github.com/adresponse/adresponse/internal/api/handlers"
	"github.com/adresponse/adresponse/internal/api/middleware"
)

type RouterConfig struct {
	RFPHandler       *handlers.RFPHandler
	ArticleHandler   *handlers.ArticleHandler
	TeamHandler      *handlers.TeamHandler
	DashboardHandler *handlers.DashboardHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 5 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, api.Payload{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/rfps", func(r chi.Router) {
			r.Get("/", cfg.RFPHandler.List)
			r.Post("/", cfg.RFPHandler.Create)
			r.Post("/import", cfg.RFPHandler.Import)
			r.Get("/{id}", cfg.RFPHandler.Get)
			r.Put("/{id}", cfg.RFPHandler.Update)
			r.Delete("/{id}", cfg.RFPHandler.Delete)
			r.Post("/{id}/analyze", cfg.RFPHandler.Analyze)
			r.Post("/{id}/extract-placements", cfg.RFPHandler.ExtractPlacements)
			r.Post("/{id}/generate-proposal", cfg.RFPHandler.GenerateProposal)
			r.Post("/{id}/quality-check", cfg.RFPHandler.QualityCheck)
			r.Post("/{id}/attachments", cfg.RFPHandler.AddAttachment)
			r.Get("/{id}/attachments/{attachment_id}/download", cfg.RFPHandler.DownloadAttachment)
		})

		r.Get("/emails/rfps", cfg.RFPHandler.ListEmails)

		r.Route("/knowledge-base/articles", func(r chi.Router) {
			r.Get("/", cfg.ArticleHandler.List)
			r.Post("/", cfg.ArticleHandler.Create)
			r.Get("/{id}", cfg.ArticleHandler.Get)
			r.Put("/{id}", cfg.ArticleHandler.Update)
			r.Delete("/{id}", cfg.ArticleHandler.Delete)
		})

		r.Route("/team/members", func(r chi.Router) {
			r.Get("/", cfg.TeamHandler.List)
			r.Get("/{id}", cfg.TeamHandler.Get)
		})

		r.Get("/dashboard/stats", cfg.DashboardHandler.Stats)
	})

	return r
}
