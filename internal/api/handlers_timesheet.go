package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func (a *API) handleLogTimesheet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload timesheetPayload
		if err := decodeJSON(r, &payload); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		entry, err := payload.toDomain()
		if err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		if err := a.timesheets.Log(r.Context(), entry); err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, timesheetJSON(entry))
	}
}

func (a *API) handleGetTimesheet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry, err := a.timesheets.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, timesheetJSON(entry))
	}
}

func (a *API) handleDeleteTimesheet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := a.timesheets.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			respondServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (a *API) handleEmployeeTimesheets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := a.timesheets.ListByEmployee(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, err)
			return
		}
		out := make([]timesheetPayload, 0, len(entries))
		for _, e := range entries {
			out = append(out, timesheetJSON(e))
		}
		respondJSON(w, http.StatusOK, out)
	}
}

// handleWeekDetails previews the canonical rows a generation run for
// the given week would consume.
func (a *API) handleWeekDetails() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weekEnding, err := time.Parse(time.DateOnly, r.URL.Query().Get("ending"))
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Errorf("parsing ending: %w", err))
			return
		}
		rows, err := a.timesheets.WeekDetails(r.Context(), weekEnding)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		out := make([]rowPayload, 0, len(rows))
		for _, row := range rows {
			out = append(out, rowPayload{
				EmployeeName:        row.EmployeeName,
				JobName:             row.JobName,
				JobNumber:           row.JobNumber,
				ActivityCode:        row.ActivityCode,
				ActivityDescription: row.ActivityDescription,
				PayType:             string(row.PayType),
				Hours:               row.Hours,
				BurdenedRate:        row.BurdenedRate,
			})
		}
		respondJSON(w, http.StatusOK, out)
	}
}
