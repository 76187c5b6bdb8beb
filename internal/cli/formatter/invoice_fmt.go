package formatter

import (
	"fmt"
	"strings"

	"github.com/rcalloway/timebill/internal/derive"
	"github.com/rcalloway/timebill/internal/domain"
	"github.com/rcalloway/timebill/internal/service"
)

// FormatInvoiceList renders stored invoices as a table.
func FormatInvoiceList(invoices []*domain.Invoice) string {
	rows := make([][]string, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, []string{
			TruncID(inv.ID),
			StyleHeader.Render(inv.InvoiceNumber),
			ShortDate(inv.WeekEnding),
			Money(inv.TotalAmount),
		})
	}
	return RenderTable([]string{"ID", "Number", "Week Ending", "Amount"}, rows)
}

// FormatInvoiceDetail renders one stored invoice with its lines.
func FormatInvoiceDetail(inv *domain.Invoice, lines []domain.InvoiceLine) string {
	var b strings.Builder
	b.WriteString(Header("Invoice "+inv.InvoiceNumber) + "\n")
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Week ending:"), ShortDate(inv.WeekEnding)))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Invoice date:"), ShortDate(inv.InvoiceDate)))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Total:"), Bold(Money(inv.TotalAmount))))

	if len(lines) > 0 {
		table := make([][]string, 0, len(lines))
		for _, l := range lines {
			table = append(table, []string{
				Bold(l.EmployeeName),
				l.ActivityDescription,
				Hours(l.RegularHours),
				Hours(l.OvertimeHours),
				Money(l.TotalAmount),
			})
		}
		b.WriteString("\n" + RenderTable(
			[]string{"Employee", "Activity", "Reg", "OT", "Amount"}, table))
	}
	return b.String()
}

// FormatGenerateResult renders the outcome of a generation run:
// per-invoice summaries, inference warnings, skips, and the combined
// roll-up.
func FormatGenerateResult(result *service.GenerateResult) string {
	var b strings.Builder

	for _, gen := range result.Invoices {
		b.WriteString(formatGeneratedInvoice(gen))
		b.WriteString("\n")
	}

	if skipped := FormatSkipped(result.Skipped); skipped != "" {
		b.WriteString(skipped + "\n")
	}

	c := result.Combined
	b.WriteString(fmt.Sprintf("%s %d invoice(s)  %s reg  %s ot  %s\n",
		Bold("Batch:"),
		c.InvoiceCount,
		Hours(c.TotalRegularHours),
		Hours(c.TotalOvertimeHours),
		StyleGreen.Render(Money(c.TotalAmount)),
	))
	return b.String()
}

func formatGeneratedInvoice(gen service.GeneratedInvoice) string {
	var b strings.Builder
	agg := gen.Aggregate
	t := gen.Totals

	b.WriteString(fmt.Sprintf("%s  %s %s\n",
		StyleHeader.Render("Invoice "+gen.Invoice.InvoiceNumber),
		Bold(agg.JobName),
		StylePurple.Render("["+agg.JobNumber+"]"),
	))

	for _, at := range t.PerActivity {
		key := at.ActivityKey
		if key == "" {
			key = Dim("(no activity)")
		}
		b.WriteString(fmt.Sprintf("  %s  %s reg  %s ot  %s\n",
			key,
			Hours(at.RegularHours),
			Hours(at.OvertimeHours),
			Money(at.Total),
		))
	}

	b.WriteString(fmt.Sprintf("  %s %s reg  %s ot", Dim("Totals:"),
		Hours(t.TotalRegularHours), Hours(t.TotalOvertimeHours)))
	if t.TotalExpenses != 0 {
		b.WriteString(fmt.Sprintf("  %s exp", Money(t.TotalExpenses)))
	}
	b.WriteString("  " + StyleGreen.Render(Money(t.TotalAmount)) + "\n")

	for _, w := range t.Warnings {
		b.WriteString("  " + StyleYellow.Render("⚠ "+w) + "\n")
	}
	return b.String()
}

// FormatAggregate renders an in-memory aggregate without a persisted
// invoice, used when previewing a batch before committing it.
func FormatAggregate(agg *derive.InvoiceAggregate, t derive.InvoiceTotals) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s %s\n",
		StyleHeader.Render("Invoice "+agg.InvoiceNumber),
		Bold(agg.JobName),
		StylePurple.Render("["+agg.JobNumber+"]"),
	))
	for _, line := range agg.EmployeesInOrder() {
		b.WriteString(fmt.Sprintf("  %s  %s\n", Bold(line.EmployeeName), Money(derive.LineTotal(line))))
	}
	b.WriteString("  " + Dim("Total:") + " " + StyleGreen.Render(Money(t.TotalAmount)) + "\n")
	return b.String()
}
