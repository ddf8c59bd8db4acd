// Package httptransport exposes the credential-state read model over HTTP.
// Handlers stay thin: each request builds a fresh evaluator for the target
// identity and delegates to it.
package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"credstate/internal/audit"
	"credstate/internal/domain"
	"credstate/internal/factcache"
	"credstate/internal/platform/metrics"
	"credstate/internal/platform/middleware"
	"credstate/internal/ratelimit"
	"credstate/internal/userinfo"
	userinfometrics "credstate/internal/userinfo/metrics"
	"credstate/pkg/platform/sentinel"
)

// Handler handles the identity status endpoints.
type Handler struct {
	logger       *slog.Logger
	ports        userinfo.Ports
	factMetrics  *userinfometrics.Metrics
	httpMetrics  *metrics.Metrics
	jwtValidator middleware.JWTValidator
	publisher    *audit.Publisher
	rateLimit    *ratelimit.Middleware
}

// New creates a new status Handler. The rate limiter, metrics, and audit
// publisher are optional; a nil collaborator disables its concern.
func New(
	ports userinfo.Ports,
	logger *slog.Logger,
	factMetrics *userinfometrics.Metrics,
	httpMetrics *metrics.Metrics,
	jwtValidator middleware.JWTValidator,
	publisher *audit.Publisher,
	rateLimit *ratelimit.Middleware,
) *Handler {
	return &Handler{
		logger:       logger,
		ports:        ports,
		factMetrics:  factMetrics,
		httpMetrics:  httpMetrics,
		jwtValidator: jwtValidator,
		publisher:    publisher,
		rateLimit:    rateLimit,
	}
}

// Register registers all routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	api := chi.NewRouter()
	api.Use(middleware.Recovery(h.logger))
	api.Use(middleware.RequestID)
	api.Use(middleware.Logger(h.logger))
	if h.rateLimit != nil {
		api.Use(h.rateLimit.Handler)
	}
	api.Use(middleware.Timeout(30 * time.Second))
	api.Use(middleware.ContentTypeJSON)
	api.Use(middleware.Latency(h.httpMetrics))
	api.Use(middleware.DeviceLabel)
	api.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
	api.Get("/v1/identities/{dn}/status", h.handleStatus)
	api.Get("/v1/identities/{dn}/remediation", h.handleRemediation)
	api.Get("/v1/identities/{dn}/profile", h.handleProfile)

	r.Mount("/", api)
	r.Get("/healthz", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

// evaluator builds a request-scoped evaluator for the identity in the URL.
// Memoized facts live for exactly one request.
func (h *Handler) evaluator(r *http.Request) (*userinfo.Evaluator, error) {
	raw := chi.URLParam(r, "dn")
	dn, err := url.PathUnescape(raw)
	if err != nil || dn == "" {
		return nil, errors.New("invalid identity DN")
	}
	return userinfo.New(domain.Identity{DN: dn},
		h.ports,
		userinfo.WithLogger(h.logger),
		userinfo.WithMetrics(h.factMetrics),
	)
}

type statusResponse struct {
	Identity            string                `json:"identity"`
	PasswordStatus      domain.PasswordStatus `json:"password_status"`
	PasswordExpiration  *time.Time            `json:"password_expiration,omitempty"`
	PasswordLastChanged *time.Time            `json:"password_last_changed,omitempty"`
	LastLogin           *time.Time            `json:"last_login,omitempty"`
	AccountExpiration   *time.Time            `json:"account_expiration,omitempty"`
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eval, err := h.evaluator(r)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, "bad_request", err)
		return
	}

	status, err := eval.PasswordStatus(ctx)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	resp := statusResponse{
		Identity:       eval.Identity().DN,
		PasswordStatus: status,
	}
	for _, ts := range []struct {
		read func(context.Context) (time.Time, error)
		dest **time.Time
	}{
		{eval.PasswordExpirationTime, &resp.PasswordExpiration},
		{eval.PasswordLastModifiedTime, &resp.PasswordLastChanged},
		{eval.LastLoginTime, &resp.LastLogin},
		{eval.AccountExpirationTime, &resp.AccountExpiration},
	} {
		t, err := ts.read(ctx)
		if err != nil {
			h.writeDomainError(w, r, err)
			return
		}
		if !t.IsZero() {
			*ts.dest = &t
		}
	}

	h.publisher.Emit(ctx, audit.Event{
		Type:       audit.EventStatusChecked,
		IdentityDN: eval.Identity().DN,
		Device:     middleware.GetDeviceLabel(ctx),
		Detail:     status,
	})
	h.writeJSON(w, r, http.StatusOK, resp)
}

func (h *Handler) handleRemediation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eval, err := h.evaluator(r)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, "bad_request", err)
		return
	}

	verdict, err := eval.Remediation(ctx)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	h.publisher.Emit(ctx, audit.Event{
		Type:       audit.EventRemediationResolved,
		IdentityDN: eval.Identity().DN,
		Device:     middleware.GetDeviceLabel(ctx),
		Detail:     verdict,
	})
	h.writeJSON(w, r, http.StatusOK, verdict)
}

type profileResponse struct {
	Identity   string            `json:"identity"`
	Username   string            `json:"username"`
	Email      string            `json:"email,omitempty"`
	SMS        string            `json:"sms,omitempty"`
	GUID       string            `json:"guid"`
	ProfileIDs map[string]string `json:"profile_ids"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eval, err := h.evaluator(r)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, "bad_request", err)
		return
	}

	username, err := eval.Username(ctx)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	guid, err := eval.UserGUID(ctx)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	profileIDs, err := eval.ProfileIDs(ctx)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	email, err := eval.UserEmailAddress(ctx)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	sms, err := eval.UserSMSNumber(ctx)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	attrs, err := eval.CachedAttributeValues(ctx)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	ids := make(map[string]string, len(profileIDs))
	for category, id := range profileIDs {
		ids[string(category)] = id
	}
	h.writeJSON(w, r, http.StatusOK, profileResponse{
		Identity:   eval.Identity().DN,
		Username:   username,
		Email:      email,
		SMS:        sms,
		GUID:       guid,
		ProfileIDs: ids,
		Attributes: attrs,
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.ErrorContext(r.Context(), "encode response",
			"error", err,
			"request_id", middleware.GetRequestID(r.Context()),
		)
	}
}

// writeDomainError translates resolution failures into HTTP statuses. A source
// outage surfaces as 503 so callers can retry; everything else is a 500.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, sentinel.ErrUnavailable):
		h.writeError(w, r, http.StatusServiceUnavailable, "source_unavailable", err)
	case errors.Is(err, factcache.ErrDependencyCycle):
		h.writeError(w, r, http.StatusInternalServerError, "internal_error", err)
	case errors.Is(err, sentinel.ErrNotFound):
		h.writeError(w, r, http.StatusNotFound, "not_found", err)
	default:
		h.writeError(w, r, http.StatusInternalServerError, "internal_error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, code string, err error) {
	h.logger.WarnContext(r.Context(), "request failed",
		"status", status,
		"error", err,
		"request_id", middleware.GetRequestID(r.Context()),
	)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
