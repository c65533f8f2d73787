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

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// CreateRoomRequest represents room creation data. MonthlyRent accepts a
// decimal string; floats are never parsed into money.
type CreateRoomRequest struct {
	RoomNumber  string          `json:"room_number" validate:"required"`
	RoomType    string          `json:"room_type"`
	MonthlyRent decimal.Decimal `json:"monthly_rent"`
}

// CreateRoom handles room creation
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rm, err := h.roomService.CreateRoom(r.Context(), req.RoomNumber, req.RoomType, req.MonthlyRent)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, rm)
}

// GetRoom returns a single room
func (h *Handler) GetRoom(w http.ResponseWriter, r *http.Request) {
	rm, err := h.roomService.GetRoom(r.Context(), chi.URLParam(r, "roomID"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, rm)
}

// UpdateRoomRequest represents room update data
type UpdateRoomRequest struct {
	RoomType    string          `json:"room_type"`
	MonthlyRent decimal.Decimal `json:"monthly_rent"`
	Status      string          `json:"status" validate:"required"`
}

// UpdateRoom updates a room's type, rent and status
func (h *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	var req UpdateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rm, err := h.roomService.UpdateRoom(r.Context(), chi.URLParam(r, "roomID"), req.RoomType, req.MonthlyRent, req.Status)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, rm)
}

// DeleteRoom removes a room that has no active tenant
func (h *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	if err := h.roomService.DeleteRoom(r.Context(), chi.URLParam(r, "roomID")); err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ListRooms lists rooms with pagination
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	rooms, total, err := h.roomService.ListRooms(r.Context(), pageSize, (page-1)*pageSize)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"items":    rooms,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}
