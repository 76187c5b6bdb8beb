package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rcalloway/timebill/internal/cli/formatter"
	"github.com/rcalloway/timebill/internal/domain"
)

// timebillHuhTheme returns a custom huh theme using the existing
// Gruvbox palette.
func timebillHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// timesheetFormValues collects the answers of the interactive
// timesheet entry form.
type timesheetFormValues struct {
	EmployeeID string
	JobID      string
	ActivityID string
	Date       string
	Hours      string
	PayType    string
}

// timesheetLogForm builds the interactive form for logging a
// timesheet entry. Returns nil when there is nothing to select from.
func timesheetLogForm(ctx context.Context, app *App, v *timesheetFormValues) (*huh.Form, error) {
	employees, err := app.Employees.List(ctx)
	if err != nil {
		return nil, err
	}
	jobs, err := app.Jobs.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 || len(jobs) == 0 {
		return nil, nil
	}

	empOptions := make([]huh.Option[string], 0, len(employees))
	for _, e := range employees {
		empOptions = append(empOptions, huh.NewOption(
			fmt.Sprintf("%s — %s", e.EECode, e.FullName()), e.ID))
	}
	jobOptions := make([]huh.Option[string], 0, len(jobs))
	for _, j := range jobs {
		jobOptions = append(jobOptions, huh.NewOption(
			fmt.Sprintf("%s — %s", j.JobNumber, j.JobName), j.ID))
	}

	v.Date = time.Now().Format("2006-01-02")
	v.PayType = string(domain.PayRegular)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which Employee?").
				Options(empOptions...).
				Value(&v.EmployeeID),
			huh.NewSelect[string]().
				Title("Which Job?").
				Options(jobOptions...).
				Value(&v.JobID),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Date (YYYY-MM-DD)").
				Placeholder("2026-08-20").
				Value(&v.Date).
				Validate(validateDate),
			huh.NewInput().
				Title("Hours").
				Placeholder("8").
				Value(&v.Hours).
				Validate(validatePositiveFloat),
			huh.NewSelect[string]().
				Title("Pay Type").
				Options(
					huh.NewOption("Regular", string(domain.PayRegular)),
					huh.NewOption("Overtime", string(domain.PayOvertime)),
				).
				Value(&v.PayType),
		),
	).WithTheme(timebillHuhTheme()).WithShowHelp(false), nil
}

// activitySelectForm builds a select over the job's activity codes,
// with a blank option for entries without one. Returns nil when the
// job has no activities.
func activitySelectForm(ctx context.Context, app *App, jobID string, result *string) (*huh.Form, error) {
	activities, err := app.Jobs.ListActivities(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if len(activities) == 0 {
		return nil, nil
	}

	options := make([]huh.Option[string], 0, len(activities)+1)
	options = append(options, huh.NewOption("(none)", ""))
	for _, a := range activities {
		options = append(options, huh.NewOption(
			fmt.Sprintf("%s — %s", a.Code, a.Description), a.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which Activity?").
				Options(options...).
				Value(result),
		),
	).WithTheme(timebillHuhTheme()).WithShowHelp(false), nil
}

// confirmForm creates a huh form for a yes/no confirmation.
func confirmForm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(timebillHuhTheme()).WithShowHelp(false)
}

// validateDate requires a YYYY-MM-DD date string.
func validateDate(s string) error {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// validatePositiveFloat requires a positive decimal number.
func validatePositiveFloat(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}
