package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/rcalloway/timebill/internal/domain"
)

// resolveEmployeeID resolves an employee reference: exact EE code
// (case-insensitive), exact ID, then unique ID prefix.
func resolveEmployeeID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("employee ID is required")
	}

	employees, err := app.Employees.List(ctx)
	if err != nil {
		return "", err
	}

	for _, e := range employees {
		if strings.EqualFold(e.EECode, input) {
			return e.ID, nil
		}
	}
	for _, e := range employees {
		if e.ID == input {
			return e.ID, nil
		}
	}

	var matches []string
	for _, e := range employees {
		if strings.HasPrefix(e.ID, input) {
			matches = append(matches, e.ID)
		}
	}
	return pickOne(matches, "employee", input)
}

// resolveJobID resolves a job reference: exact job number
// (case-insensitive), exact ID, then unique ID prefix.
func resolveJobID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("job ID is required")
	}

	jobs, err := app.Jobs.List(ctx)
	if err != nil {
		return "", err
	}

	for _, j := range jobs {
		if strings.EqualFold(j.JobNumber, input) {
			return j.ID, nil
		}
	}
	for _, j := range jobs {
		if j.ID == input {
			return j.ID, nil
		}
	}

	var matches []string
	for _, j := range jobs {
		if strings.HasPrefix(j.ID, input) {
			matches = append(matches, j.ID)
		}
	}
	return pickOne(matches, "job", input)
}

// resolveInvoice resolves an invoice reference: exact invoice number
// first, then ID.
func resolveInvoice(ctx context.Context, app *App, input string) (*domain.Invoice, error) {
	if input == "" {
		return nil, fmt.Errorf("invoice ID is required")
	}
	if inv, err := app.Invoices.GetByNumber(ctx, input); err == nil {
		return inv, nil
	}
	return app.Invoices.GetByID(ctx, input)
}

func pickOne(matches []string, kind, input string) (string, error) {
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}
