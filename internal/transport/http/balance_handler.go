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
	"net/http"

	"github.com/ekost/ekost/internal/balance"
	"github.com/go-chi/chi/v5"
)

// listBalancesCap bounds how many tenants a single balances list view
// will compute over.
const listBalancesCap = 1000

// GetBalance returns a tenant's computed rent position
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	result, err := h.balanceEngine.Calculate(r.Context(), chi.URLParam(r, "tenantID"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// ListBalances returns balances for all tenants, optionally filtered by
// status, paginated after filtering so a page is always full when enough
// matches exist.
func (h *Handler) ListBalances(w http.ResponseWriter, r *http.Request) {
	statusFilter := r.URL.Query().Get("status")
	if statusFilter != "" && statusFilter != balance.StatusPaid && statusFilter != balance.StatusUnpaid {
		respondError(w, http.StatusBadRequest, "status must be paid or unpaid")
		return
	}
	page, pageSize := parsePagination(r)

	tenants, _, err := h.tenantService.ListTenants(r.Context(), listBalancesCap, 0)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	ids := make([]string, 0, len(tenants))
	for _, t := range tenants {
		ids = append(ids, t.ID)
	}

	// One grouped read per collaborator regardless of tenant count.
	results, failures, err := h.balanceEngine.CalculateAll(r.Context(), ids)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	// Preserve the tenant list order so pagination is stable.
	filtered := make([]*balance.Result, 0, len(results))
	for _, id := range ids {
		res, ok := results[id]
		if !ok {
			continue
		}
		if statusFilter != "" && res.Status != statusFilter {
			continue
		}
		filtered = append(filtered, res)
	}

	start := (page - 1) * pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	skipped := make([]balance.Failure, 0, len(failures))
	skipped = append(skipped, failures...)

	respondJSON(w, http.StatusOK, map[string]any{
		"items":    filtered[start:end],
		"total":    len(filtered),
		"page":     page,
		"pageSize": pageSize,
		"skipped":  skipped,
	})
}
