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
	"time"

	"github.com/ekost/ekost/internal/payment"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest represents payment logging data
type RecordPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date" validate:"required"`
	Note        string          `json:"note"`
}

// RecordPayment appends a payment to a tenant's history
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "payment_date must be YYYY-MM-DD")
		return
	}

	p, err := h.paymentService.RecordPayment(r.Context(), chi.URLParam(r, "tenantID"), req.Amount, paymentDate, req.Note)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, p)
}

// ListPayments returns a tenant's payment history
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.paymentService.ListPayments(r.Context(), chi.URLParam(r, "tenantID"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	if payments == nil {
		payments = []*payment.Payment{} // empty history serializes as [], not null
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"items": payments,
		"total": len(payments),
	})
}
