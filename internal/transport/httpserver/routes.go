package httpserver

import (
	"net/http"
	"time"

	"finance-tracker-go/internal/config"
	"finance-tracker-go/internal/domain/entries"
	"finance-tracker-go/internal/transport/httpserver/handler"
	authmw "finance-tracker-go/internal/transport/httpserver/middleware"
	"finance-tracker-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, verifier authmw.TokenVerifier, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(authmw.NewCORS(cfg.AllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)
		r.Post("/auth/register", handlers.Register)
		r.Post("/auth/login", handlers.Login)

		auth := authmw.NewJWTAuth(cfg.Auth, verifier, log.Named("auth"))
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.AuthMe)

			r.Route("/expenses", entryRoutes(handlers, entries.KindExpense))
			r.Route("/incomes", entryRoutes(handlers, entries.KindIncome))

			r.Get("/categories", handlers.ListCategories)
			r.Post("/categories", handlers.CreateCategory)
			r.Put("/categories/{id}", handlers.UpdateCategory)
			r.Patch("/categories/{id}/active", handlers.SetCategoryActive)
			r.Delete("/categories/{id}", handlers.DeleteCategory)

			r.Get("/cards", handlers.ListCards)
			r.Post("/cards", handlers.CreateCard)
			r.Get("/cards/{id}", handlers.GetCard)
			r.Put("/cards/{id}", handlers.UpdateCard)
			r.Patch("/cards/{id}/active", handlers.SetCardActive)
			r.Delete("/cards/{id}", handlers.DeleteCard)

			r.Get("/reports/monthly", handlers.ReportsMonthly)
			r.Get("/reports/export", handlers.ReportsExport)
			r.Get("/reports/{kind}/totals", handlers.ReportsTotals)
			r.Get("/reports/{kind}/by-category", handlers.ReportsByCategory)

			r.Get("/assets", handlers.ListAssets)
			r.Post("/assets", handlers.CreateAsset)
			r.Get("/assets/{id}", handlers.GetAsset)
			r.Put("/assets/{id}", handlers.UpdateAsset)
			r.Patch("/assets/{id}/active", handlers.SetAssetActive)
			r.Delete("/assets/{id}", handlers.DeleteAsset)
			r.Get("/assets/{id}/transactions", handlers.ListTransactions)
			r.Post("/assets/{id}/transactions", handlers.CreateTransaction)

			r.Get("/transactions/{id}", handlers.GetTransaction)
			r.Put("/transactions/{id}", handlers.UpdateTransaction)
			r.Delete("/transactions/{id}", handlers.DeleteTransaction)

			r.Get("/portfolio", handlers.Portfolio)

			r.Post("/quotes/refresh", handlers.RefreshQuotes)
			r.Get("/quotes/status", handlers.QuotesStatus)
			r.Get("/quotes/{ticker}", handlers.PreviewQuote)
			r.Post("/quotes/{ticker}/refresh", handlers.RefreshQuote)
		})
	})

	return r
}

func entryRoutes(handlers *handler.Handlers, kind entries.Kind) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", handlers.ListEntries(kind))
		r.Post("/", handlers.CreateEntry(kind))
		r.Get("/group", handlers.EntryGroup(kind))
		r.Patch("/group", handlers.UpdateEntryGroup(kind))
		r.Get("/{id}", handlers.GetEntry(kind))
		r.Put("/{id}", handlers.UpdateEntry(kind))
		r.Delete("/{id}", handlers.DeleteEntry(kind))
		r.Patch("/{id}/status", handlers.SetEntryStatus(kind))
	}
}
