package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rcalloway/timebill/internal/derive"
	"github.com/rcalloway/timebill/internal/domain"
	"github.com/rcalloway/timebill/internal/service"
)

func (a *API) handleListInvoices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		invoices, err := a.invoices.List(r.Context())
		if err != nil {
			respondServiceError(w, err)
			return
		}
		out := make([]invoicePayload, 0, len(invoices))
		for _, inv := range invoices {
			out = append(out, invoiceJSON(inv))
		}
		respondJSON(w, http.StatusOK, out)
	}
}

func (a *API) handleGetInvoice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inv, err := a.invoices.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, invoiceJSON(inv))
	}
}

func (a *API) handleDeleteInvoice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := a.invoices.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			respondServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (a *API) handleInvoiceLines() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lines, err := a.invoices.Lines(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, err)
			return
		}
		out := make([]invoiceLinePayload, 0, len(lines))
		for _, l := range lines {
			out = append(out, invoiceLineJSON(l))
		}
		respondJSON(w, http.StatusOK, out)
	}
}

type generateRequest struct {
	WeekEnding string       `json:"week_ending"`
	Seed       int          `json:"seed"`
	Rows       []rowPayload `json:"rows,omitempty"`
}

// handleGenerateInvoices runs a generation batch. When the request
// carries rows they are billed as given; otherwise the week's stored
// timesheets are used.
func (a *API) handleGenerateInvoices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		weekEnding, err := time.Parse(time.DateOnly, req.WeekEnding)
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Errorf("parsing week_ending: %w", err))
			return
		}
		if req.Seed <= 0 {
			respondError(w, http.StatusBadRequest, fmt.Errorf("seed must be positive, got %d", req.Seed))
			return
		}

		var result *service.GenerateResult
		if len(req.Rows) > 0 {
			rows := make([]derive.Row, 0, len(req.Rows))
			for i, p := range req.Rows {
				row, err := p.toRow(req.WeekEnding)
				if err != nil {
					respondError(w, http.StatusBadRequest, fmt.Errorf("row %d: %w", i, err))
					return
				}
				rows = append(rows, row)
			}
			result, err = a.invoices.GenerateFromRows(r.Context(), rows, req.Seed, weekEnding)
		} else {
			result, err = a.invoices.GenerateForWeek(r.Context(), weekEnding, req.Seed)
		}
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, generateJSON(result))
	}
}

type reviseRequest struct {
	Lines       []invoiceLinePayload `json:"lines,omitempty"`
	TotalAmount float64              `json:"total_amount"`
}

func (a *API) handleReviseInvoice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reviseRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		var lines []domain.InvoiceLine
		for _, p := range req.Lines {
			lines = append(lines, p.toDomain())
		}
		revised, err := a.invoices.Revise(r.Context(), chi.URLParam(r, "id"), lines, req.TotalAmount)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, invoiceJSON(revised))
	}
}
