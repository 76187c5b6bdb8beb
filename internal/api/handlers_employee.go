package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func (a *API) handleListEmployees() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employees, err := a.employees.List(r.Context())
		if err != nil {
			respondServiceError(w, err)
			return
		}
		out := make([]employeePayload, 0, len(employees))
		for _, e := range employees {
			out = append(out, employeeJSON(e))
		}
		respondJSON(w, http.StatusOK, out)
	}
}

func (a *API) handleCreateEmployee() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload employeePayload
		if err := decodeJSON(r, &payload); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		emp := payload.toDomain()
		if err := emp.Validate(); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		if err := a.employees.Create(r.Context(), emp); err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, employeeJSON(emp))
	}
}

func (a *API) handleGetEmployee() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		emp, err := a.employees.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, employeeJSON(emp))
	}
}

func (a *API) handleUpdateEmployee() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload employeePayload
		if err := decodeJSON(r, &payload); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		emp := payload.toDomain()
		emp.ID = chi.URLParam(r, "id")
		if err := emp.Validate(); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		if err := a.employees.Update(r.Context(), emp); err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, employeeJSON(emp))
	}
}

func (a *API) handleDeleteEmployee() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := a.employees.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			respondServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (a *API) handleEmployeePayHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := a.employees.PayHistory(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, err)
			return
		}
		out := make([]payHistoryPayload, 0, len(entries))
		for _, h := range entries {
			out = append(out, payHistoryJSON(h))
		}
		respondJSON(w, http.StatusOK, out)
	}
}

func (a *API) handlePayRateChanges() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, err := time.Parse(time.DateOnly, r.URL.Query().Get("start"))
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Errorf("parsing start: %w", err))
			return
		}
		end, err := time.Parse(time.DateOnly, r.URL.Query().Get("end"))
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Errorf("parsing end: %w", err))
			return
		}
		changes, err := a.employees.RateChanges(r.Context(), start, end)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		out := make([]payRateChangePayload, 0, len(changes))
		for _, c := range changes {
			out = append(out, payRateChangeJSON(c))
		}
		respondJSON(w, http.StatusOK, out)
	}
}
