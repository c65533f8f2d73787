// Copyright 2026 The E-Kost Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ekost/ekost/internal/audit"
	"github.com/ekost/ekost/internal/balance"
	"github.com/ekost/ekost/internal/observability/logger"
	"github.com/ekost/ekost/internal/payment"
	"github.com/ekost/ekost/internal/room"
	"github.com/ekost/ekost/internal/tenant"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultPageSize is the page size for list views when none is requested.
const DefaultPageSize = 50

// MaxPageSize caps client-requested page sizes.
const MaxPageSize = 100

// MaxPage caps client-requested page numbers so offset arithmetic
// (page-1)*pageSize stays far from integer overflow, also on 32-bit.
const MaxPage = 1 << 20

// Handler holds HTTP handlers and dependencies
type Handler struct {
	tenantService  *tenant.Service
	roomService    *room.Service
	paymentService *payment.Service
	balanceEngine  *balance.Engine
	auditLogger    audit.Logger
	validate       *validator.Validate
	jwtSecret      []byte
	jwtIssuer      string
}

// Config holds handler configuration
type Config struct {
	JWTSecret string
	JWTIssuer string
}

// NewHandler creates a new HTTP handler
func NewHandler(
	tenantService *tenant.Service,
	roomService *room.Service,
	paymentService *payment.Service,
	balanceEngine *balance.Engine,
	auditLogger audit.Logger,
	cfg Config,
) *Handler {
	return &Handler{
		tenantService:  tenantService,
		roomService:    roomService,
		paymentService: paymentService,
		balanceEngine:  balanceEngine,
		auditLogger:    auditLogger,
		validate:       validator.New(),
		jwtSecret:      []byte(cfg.JWTSecret),
		jwtIssuer:      cfg.JWTIssuer,
	}
}

// RouterConfig holds router-level timeouts
type RouterConfig struct {
	RequestTimeout time.Duration
	BalanceTimeout time.Duration
}

// NewRouter creates a new HTTP router
func NewRouter(h *Handler, rateLimiter *RateLimiter, cfg RouterConfig) *chi.Mux {
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 15 * time.Second
	}
	if cfg.BalanceTimeout == 0 {
		cfg.BalanceTimeout = 5 * time.Second
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RateLimitMiddleware(rateLimiter))
	r.Use(func(handler http.Handler) http.Handler {
		return otelhttp.NewHandler(handler, "http_request",
			otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	})
	r.Use(LoggingMiddleware())
	r.Use(middleware.Recoverer)

	r.Get("/health", h.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(h.AuthMiddleware)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(cfg.RequestTimeout))

			r.Route("/tenants", func(r chi.Router) {
				r.Post("/", h.CreateTenant)
				r.Get("/", h.ListTenants)

				r.Route("/{tenantID}", func(r chi.Router) {
					r.Get("/", h.GetTenant)
					r.Put("/", h.UpdateTenant)
					r.Post("/move-out", h.MoveOutTenant)
					r.Put("/room", h.AssignRoom)
					r.Post("/payments", h.RecordPayment)
					r.Get("/payments", h.ListPayments)
				})
			})

			r.Route("/rooms", func(r chi.Router) {
				r.Post("/", h.CreateRoom)
				r.Get("/", h.ListRooms)
				r.Get("/{roomID}", h.GetRoom)
				r.Put("/{roomID}", h.UpdateRoom)
				r.Delete("/{roomID}", h.DeleteRoom)
			})
		})

		// Balance reads carry a tighter budget than the CRUD surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(cfg.BalanceTimeout))

			r.Get("/tenants/balances", h.ListBalances)
			r.Get("/tenants/{tenantID}/balance", h.GetBalance)
		})
	})

	return r
}

// HealthCheck returns the health status
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "ekost",
	})
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondDomainError maps domain sentinel errors to transport statuses.
// Internal detail never leaks into 500 responses.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, tenant.ErrTenantNotFound):
		respondError(w, http.StatusNotFound, "tenant not found")
	case errors.Is(err, room.ErrRoomNotFound):
		respondError(w, http.StatusNotFound, "room not found")
	case errors.Is(err, tenant.ErrTenantMovedOut):
		respondError(w, http.StatusConflict, "tenant already moved out")
	case errors.Is(err, tenant.ErrRoomOccupied):
		respondError(w, http.StatusConflict, "room already has an active tenant")
	case errors.Is(err, room.ErrRoomOccupied):
		respondError(w, http.StatusConflict, "room has an active tenant")
	case errors.Is(err, room.ErrRoomUnavailable):
		respondError(w, http.StatusConflict, "room is not available")
	case errors.Is(err, room.ErrRoomNumberTaken):
		respondError(w, http.StatusConflict, "room number already in use")
	case errors.Is(err, room.ErrRoomReferenced):
		respondError(w, http.StatusConflict, "room is referenced by tenant history")
	case errors.Is(err, room.ErrInvalidRent), errors.Is(err, room.ErrInvalidStatus),
		errors.Is(err, payment.ErrInvalidAmount), errors.Is(err, payment.ErrFuturePaymentDate):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, balance.ErrNoRoomAssignment):
		respondError(w, http.StatusConflict, "tenant has no room assignment")
	case errors.Is(err, balance.ErrInconsistentRoomRef):
		// Data-integrity fault; already logged by the engine.
		respondError(w, http.StatusInternalServerError, "internal error")
	default:
		slog.ErrorContext(r.Context(), "unhandled service error", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// parsePagination reads page/pageSize query params with list-view defaults
func parsePagination(r *http.Request) (page, pageSize int) {
	page = 1
	pageSize = DefaultPageSize

	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
			if page > MaxPage {
				page = MaxPage
			}
		}
	}
	if v := r.URL.Query().Get("pageSize"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			pageSize = n
			if pageSize > MaxPageSize {
				pageSize = MaxPageSize
			}
		}
	}

	return page, pageSize
}

func getIPAddress(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
