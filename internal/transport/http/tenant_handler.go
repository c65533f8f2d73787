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
	"net/http"

	"github.com/ekost/ekost/internal/audit"
	"github.com/go-chi/chi/v5"
)

// CreateTenantRequest represents tenant creation data
type CreateTenantRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

// CreateTenant handles tenant creation
func (h *Handler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	var req CreateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.tenantService.CreateTenant(r.Context(), req.Name, req.Phone, req.Email)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, t)
}

// GetTenant returns a single tenant
func (h *Handler) GetTenant(w http.ResponseWriter, r *http.Request) {
	t, err := h.tenantService.GetTenant(r.Context(), chi.URLParam(r, "tenantID"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, t)
}

// UpdateTenantRequest represents tenant update data. Email is a pointer
// so omitting the field keeps the stored address while sending an empty
// string clears it.
type UpdateTenantRequest struct {
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email" validate:"omitempty,email"`
}

// UpdateTenant updates a tenant's contact details
func (h *Handler) UpdateTenant(w http.ResponseWriter, r *http.Request) {
	var req UpdateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.tenantService.UpdateTenant(r.Context(), chi.URLParam(r, "tenantID"), req.Name, req.Phone, req.Email)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, t)
}

// ListTenants lists tenants with pagination
func (h *Handler) ListTenants(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	tenants, total, err := h.tenantService.ListTenants(r.Context(), pageSize, (page-1)*pageSize)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"items":    tenants,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

// AssignRoomRequest represents room assignment data
type AssignRoomRequest struct {
	RoomID string `json:"room_id" validate:"required,uuid"`
}

// AssignRoom moves a tenant into a room
func (h *Handler) AssignRoom(w http.ResponseWriter, r *http.Request) {
	var req AssignRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.tenantService.AssignRoom(r.Context(), chi.URLParam(r, "tenantID"), req.RoomID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, t)
}

// MoveOutTenant soft-deletes a tenant
func (h *Handler) MoveOutTenant(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")

	t, err := h.tenantService.MoveOut(r.Context(), tenantID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	// Transport-level audit carries the caller identity; the service has
	// no view of the request.
	h.auditLogger.Log(r.Context(), audit.Event{
		Type:      audit.TypeTenantMovedOut,
		ActorID:   GetUserID(r.Context()),
		Resource:  "tenant",
		IPAddress: getIPAddress(r),
		Metadata:  map[string]any{"tenant_id": tenantID},
	})

	respondJSON(w, http.StatusOK, t)
}
