package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rcalloway/timebill/internal/cli/formatter"
	"github.com/rcalloway/timebill/internal/derive"
	"github.com/rcalloway/timebill/internal/service"
)

type reviewKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Quit   key.Binding
}

var reviewKeys = reviewKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "details")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// reviewModel is a read-only walkthrough of a generation batch. The
// batch is already persisted when the model starts; this is for
// eyeballing the numbers, not editing them.
type reviewModel struct {
	result   *service.GenerateResult
	cursor   int
	expanded map[int]bool
}

func newReviewModel(result *service.GenerateResult) *reviewModel {
	return &reviewModel{
		result:   result,
		expanded: make(map[int]bool),
	}
}

func (m *reviewModel) Init() tea.Cmd { return nil }

func (m *reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, reviewKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, reviewKeys.Down):
		if m.cursor < len(m.result.Invoices)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, reviewKeys.Toggle):
		m.expanded[m.cursor] = !m.expanded[m.cursor]
	case key.Matches(keyMsg, reviewKeys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m *reviewModel) View() string {
	var b strings.Builder
	b.WriteString("\n  " + formatter.Header("Generated Invoices") + "\n\n")

	if len(m.result.Invoices) == 0 {
		b.WriteString("  " + formatter.Dim("No invoices were generated.") + "\n")
	}

	for i, gen := range m.result.Invoices {
		cursor := "  "
		if i == m.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}

		b.WriteString(fmt.Sprintf("%s%s  %s  %s\n",
			cursor,
			formatter.StyleHeader.Render(gen.Invoice.InvoiceNumber),
			formatter.Bold(gen.Aggregate.JobName),
			formatter.StyleGreen.Render(formatter.Money(gen.Totals.TotalAmount)),
		))

		if m.expanded[i] {
			b.WriteString(m.detail(gen))
		}
	}

	if len(m.result.Skipped) > 0 {
		b.WriteString("\n  " + formatter.StyleYellow.Render(
			fmt.Sprintf("%d row(s) skipped", len(m.result.Skipped))) + "\n")
	}

	c := m.result.Combined
	b.WriteString(fmt.Sprintf("\n  %s %d invoice(s)  %s\n",
		formatter.Bold("Batch:"), c.InvoiceCount,
		formatter.StyleGreen.Render(formatter.Money(c.TotalAmount))))

	b.WriteString("\n  " + formatter.Dim("↑/↓ move · enter details · q quit") + "\n")
	return b.String()
}

func (m *reviewModel) detail(gen service.GeneratedInvoice) string {
	var b strings.Builder
	for _, line := range gen.Aggregate.EmployeesInOrder() {
		b.WriteString(fmt.Sprintf("      %s  %s\n",
			formatter.Bold(line.EmployeeName),
			formatter.Money(derive.LineTotal(line)),
		))
	}
	for _, at := range gen.Totals.PerActivity {
		key := at.ActivityKey
		if key == "" {
			key = "(no activity)"
		}
		b.WriteString(fmt.Sprintf("      %s  %s reg  %s ot  %s\n",
			formatter.Dim(key),
			formatter.Hours(at.RegularHours),
			formatter.Hours(at.OvertimeHours),
			formatter.Money(at.Total),
		))
	}
	for _, w := range gen.Totals.Warnings {
		b.WriteString("      " + formatter.StyleYellow.Render("⚠ "+w) + "\n")
	}
	return b.String()
}
