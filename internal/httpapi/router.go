package httpapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/storelocator/internal/billing"
	"github.com/dmitrymomot/storelocator/internal/importer"
)

// Config holds HTTP surface settings sourced from the environment.
type Config struct {
	MaxUploadBytes int64 `env:"HTTP_MAX_UPLOAD_BYTES" envDefault:"5242880"` // MaxUploadBytes caps import upload size.
}

// ImportService runs one import batch for a shop.
type ImportService interface {
	ImportBatch(ctx context.Context, shopDomain string, r io.Reader) (*importer.Outcome, error)
}

// BillingService drives the billing lifecycle.
type BillingService interface {
	SelectPlan(ctx context.Context, shopDomain string, key billing.PlanKey) (*billing.Confirmation, error)
	Reconcile(ctx context.Context, shopDomain string) error
	Offboard(ctx context.Context, shopDomain string) error
	CurrentPlan(ctx context.Context, shopDomain string) (billing.PlanKey, bool, error)
}

// Handler is the JSON surface over the import and billing services.
type Handler struct {
	imports ImportService
	billing BillingService
	health  func(context.Context) error
	cfg     Config
	log     *slog.Logger
}

// NewHandler creates the HTTP handler set.
func NewHandler(imports ImportService, billingSvc BillingService, health func(context.Context) error, cfg Config, log *slog.Logger) *Handler {
	return &Handler{
		imports: imports,
		billing: billingSvc,
		health:  health,
		cfg:     cfg,
		log:     log,
	}
}

// Router assembles the chi router with request-scoped middleware.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	r.Get("/healthz", h.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/import", h.handleImport)
		r.Route("/billing", func(r chi.Router) {
			r.Get("/plan", h.handleCurrentPlan)
			r.Post("/plan", h.handleSelectPlan)
			r.Post("/reconcile", h.handleReconcile)
		})
		r.Post("/webhooks/uninstalled", h.handleUninstalled)
	})

	return r
}

// requestLogger logs one line per request with latency and status.
func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		h.log.InfoContext(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
