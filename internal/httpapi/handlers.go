package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/storelocator/internal/billing"
	"github.com/dmitrymomot/storelocator/internal/importer"
	"github.com/dmitrymomot/storelocator/internal/shopify"
	"github.com/dmitrymomot/storelocator/internal/tenant"
)

// shopHeader carries the shop domain on webhook deliveries.
const shopHeader = "X-Shopify-Shop-Domain"

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.health(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "unhealthy")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleImport accepts a CSV upload for the shop given in the "shop" query
// parameter and responds with the per-row outcome. All rows created → 200,
// mixed → 207 Multi-Status, none → 422.
func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	shop := r.URL.Query().Get("shop")
	if shop == "" {
		respondError(w, http.StatusBadRequest, "missing shop parameter")
		return
	}

	body := http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)
	outcome, err := h.imports.ImportBatch(r.Context(), shop, body)
	if err != nil {
		h.respondImportError(w, r, outcome, err)
		return
	}

	respondJSON(w, importStatusCode(outcome), outcome)
}

func (h *Handler) respondImportError(w http.ResponseWriter, r *http.Request, outcome *importer.Outcome, err error) {
	switch {
	case errors.Is(err, importer.ErrEmptyInput), errors.Is(err, importer.ErrMalformedCSV):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, importer.ErrCredentialExpired):
		respondError(w, http.StatusUnauthorized, "re-authentication required")
	case errors.Is(err, tenant.ErrTenantNotFound):
		respondError(w, http.StatusNotFound, "unknown shop")
	case outcome != nil:
		// Cancelled mid-batch: report the partial outcome rather than hiding it.
		respondJSON(w, http.StatusBadGateway, outcome)
	default:
		h.log.ErrorContext(r.Context(), "import failed", "error", err)
		respondError(w, http.StatusBadGateway, "import failed")
	}
}

func importStatusCode(outcome *importer.Outcome) int {
	switch outcome.Status {
	case importer.StatusAllSucceeded:
		return http.StatusOK
	case importer.StatusPartialSuccess:
		return http.StatusMultiStatus
	default:
		return http.StatusUnprocessableEntity
	}
}

type selectPlanRequest struct {
	Shop string `json:"shop"`
	Plan string `json:"plan"`
}

func (h *Handler) handleSelectPlan(w http.ResponseWriter, r *http.Request) {
	var req selectPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Shop == "" || req.Plan == "" {
		respondError(w, http.StatusBadRequest, "shop and plan are required")
		return
	}

	conf, err := h.billing.SelectPlan(r.Context(), req.Shop, billing.PlanKey(req.Plan))
	if err != nil {
		h.respondBillingError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, conf)
}

type reconcileRequest struct {
	Shop string `json:"shop"`
}

func (h *Handler) handleReconcile(w http.ResponseWriter, r *http.Request) {
	var req reconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Shop == "" {
		respondError(w, http.StatusBadRequest, "shop is required")
		return
	}

	if err := h.billing.Reconcile(r.Context(), req.Shop); err != nil {
		h.respondBillingError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "reconciled"})
}

func (h *Handler) handleCurrentPlan(w http.ResponseWriter, r *http.Request) {
	shop := r.URL.Query().Get("shop")
	if shop == "" {
		respondError(w, http.StatusBadRequest, "missing shop parameter")
		return
	}

	key, active, err := h.billing.CurrentPlan(r.Context(), shop)
	if err != nil {
		h.respondBillingError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"plan":   key,
		"active": active,
	})
}

// handleUninstalled consumes the at-least-once offboarding notification.
// Offboarding is idempotent, so duplicates acknowledge cleanly.
func (h *Handler) handleUninstalled(w http.ResponseWriter, r *http.Request) {
	shop := r.Header.Get(shopHeader)
	if shop == "" {
		respondError(w, http.StatusBadRequest, "missing shop domain header")
		return
	}

	if err := h.billing.Offboard(r.Context(), shop); err != nil {
		// The sender retries on non-2xx; a storage hiccup should be retried.
		h.log.ErrorContext(r.Context(), "offboarding failed", "shop", shop, "error", err)
		respondError(w, http.StatusInternalServerError, "offboarding failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) respondBillingError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, billing.ErrUnknownPlan):
		respondError(w, http.StatusBadRequest, "unknown plan")
	case errors.Is(err, tenant.ErrTenantNotFound):
		respondError(w, http.StatusNotFound, "unknown shop")
	case errors.Is(err, billing.ErrCredentialExpired):
		respondError(w, http.StatusUnauthorized, "re-authentication required")
	case errors.Is(err, billing.ErrNoActiveSubscription):
		respondError(w, http.StatusConflict, "subscription not confirmed yet")
	case errors.Is(err, billing.ErrAmbiguousSubscription), errors.Is(err, billing.ErrUnknownRemotePlan):
		respondError(w, http.StatusConflict, "subscription state requires manual review")
	case shopify.IsRemoteErrorKind(err, shopify.KindPlanSelectionFailed):
		var re *shopify.RemoteError
		_ = errors.As(err, &re)
		respondError(w, http.StatusBadGateway, re.Message)
	default:
		h.log.ErrorContext(r.Context(), "billing operation failed", "error", err)
		respondError(w, http.StatusBadGateway, "billing operation failed")
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
