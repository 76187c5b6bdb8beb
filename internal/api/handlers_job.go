package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rcalloway/timebill/internal/domain"
)

func (a *API) handleListJobs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobs, err := a.jobs.List(r.Context())
		if err != nil {
			respondServiceError(w, err)
			return
		}
		out := make([]jobPayload, 0, len(jobs))
		for _, j := range jobs {
			out = append(out, jobJSON(j))
		}
		respondJSON(w, http.StatusOK, out)
	}
}

func (a *API) handleCreateJob() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload jobPayload
		if err := decodeJSON(r, &payload); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		job := payload.toDomain()
		if err := job.Validate(); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		if err := a.jobs.Create(r.Context(), job); err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, jobJSON(job))
	}
}

func (a *API) handleGetJob() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		job, err := a.jobs.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, jobJSON(job))
	}
}

func (a *API) handleUpdateJob() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload jobPayload
		if err := decodeJSON(r, &payload); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		job := payload.toDomain()
		job.ID = chi.URLParam(r, "id")
		if err := job.Validate(); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		if err := a.jobs.Update(r.Context(), job); err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, jobJSON(job))
	}
}

func (a *API) handleDeleteJob() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := a.jobs.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			respondServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (a *API) handleListActivities() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activities, err := a.jobs.ListActivities(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, err)
			return
		}
		out := make([]activityPayload, 0, len(activities))
		for _, act := range activities {
			out = append(out, activityJSON(act))
		}
		respondJSON(w, http.StatusOK, out)
	}
}

func (a *API) handleAddActivity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload activityPayload
		if err := decodeJSON(r, &payload); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		act := &domain.Activity{
			JobID:       chi.URLParam(r, "id"),
			Code:        payload.Code,
			Description: payload.Description,
		}
		if err := act.Validate(); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		if err := a.jobs.AddActivity(r.Context(), act); err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, activityJSON(act))
	}
}

func (a *API) handleDeleteActivity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := a.jobs.DeleteActivity(r.Context(), chi.URLParam(r, "id")); err != nil {
			respondServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
