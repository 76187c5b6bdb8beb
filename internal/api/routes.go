package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (a *API) registerRoutes() {
	a.router.Use(middleware.Recoverer)
	a.router.Use(requestLogger(a.slog))

	a.router.Route("/api", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", a.handleListEmployees())
			r.Post("/", a.handleCreateEmployee())
			r.Get("/{id}", a.handleGetEmployee())
			r.Put("/{id}", a.handleUpdateEmployee())
			r.Delete("/{id}", a.handleDeleteEmployee())
			r.Get("/{id}/pay-history", a.handleEmployeePayHistory())
			r.Get("/{id}/timesheets", a.handleEmployeeTimesheets())
		})

		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", a.handleListJobs())
			r.Post("/", a.handleCreateJob())
			r.Get("/{id}", a.handleGetJob())
			r.Put("/{id}", a.handleUpdateJob())
			r.Delete("/{id}", a.handleDeleteJob())
			r.Get("/{id}/activities", a.handleListActivities())
			r.Post("/{id}/activities", a.handleAddActivity())
		})
		r.Delete("/activities/{id}", a.handleDeleteActivity())

		r.Route("/timesheets", func(r chi.Router) {
			r.Post("/", a.handleLogTimesheet())
			r.Get("/week", a.handleWeekDetails())
			r.Get("/{id}", a.handleGetTimesheet())
			r.Delete("/{id}", a.handleDeleteTimesheet())
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", a.handleListInvoices())
			r.Post("/generate", a.handleGenerateInvoices())
			r.Get("/{id}", a.handleGetInvoice())
			r.Delete("/{id}", a.handleDeleteInvoice())
			r.Get("/{id}/lines", a.handleInvoiceLines())
			r.Post("/{id}/revise", a.handleReviseInvoice())
		})

		r.Get("/pay-rate-changes", a.handlePayRateChanges())
	})
}
