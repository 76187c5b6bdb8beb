package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rcalloway/timebill/internal/service"
)

// API is the JSON HTTP surface over the services.
type API struct {
	host string
	port int

	slog   *slog.Logger
	router chi.Router

	employees  service.EmployeeService
	jobs       service.JobService
	timesheets service.TimesheetService
	invoices   service.InvoiceService
}

func New(
	logger *slog.Logger,
	employees service.EmployeeService,
	jobs service.JobService,
	timesheets service.TimesheetService,
	invoices service.InvoiceService,
) *API {
	a := &API{
		host: "localhost",
		port: 8080,

		router: chi.NewRouter(),
		slog:   logger,

		employees:  employees,
		jobs:       jobs,
		timesheets: timesheets,
		invoices:   invoices,
	}

	a.registerRoutes()

	return a
}

func (a *API) WithHost(host string) *API {
	a.host = host
	return a
}

func (a *API) WithPort(port int) *API {
	a.port = port
	return a
}

// Router exposes the handler tree, mainly for tests.
func (a *API) Router() http.Handler {
	return a.router
}

func (a *API) Serve() error {
	addr := fmt.Sprintf("%s:%d", a.host, a.port)
	server := http.Server{
		Addr:    addr,
		Handler: a.router,

		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	a.slog.Info("server started listening", "addr", addr)

	return server.ListenAndServe()
}
