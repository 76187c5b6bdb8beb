package cli

import (
	"testing"
	"time"

	"github.com/rcalloway/timebill/internal/derive"
	"github.com/rcalloway/timebill/internal/domain"
	"github.com/rcalloway/timebill/internal/service"
	"github.com/rcalloway/timebill/internal/teatest"
	"github.com/stretchr/testify/assert"
)

func reviewFixture(t *testing.T) *service.GenerateResult {
	t.Helper()
	rows := []derive.Row{
		{InvoiceNumber: "500", EmployeeName: "Jane Doe", JobName: "Plant Upgrade", JobNumber: "J-100",
			ActivityCode: "010", ActivityDescription: "Framing", PayType: domain.PayRegular, Hours: 10, BurdenedRate: 20},
		{InvoiceNumber: "501", EmployeeName: "Bob Ray", JobName: "Warehouse", JobNumber: "J-200",
			PayType: domain.PayRegular, Hours: 4, BurdenedRate: 25},
	}
	batch := derive.Aggregate(rows)

	result := &service.GenerateResult{}
	var allTotals []derive.InvoiceTotals
	for _, agg := range batch.InvoicesInOrder() {
		totals := derive.ComputeTotals(agg)
		allTotals = append(allTotals, totals)
		result.Invoices = append(result.Invoices, service.GeneratedInvoice{
			Invoice: &domain.Invoice{
				InvoiceNumber: agg.InvoiceNumber,
				WeekEnding:    time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC),
				TotalAmount:   totals.TotalAmount,
			},
			Aggregate: agg,
			Totals:    totals,
		})
	}
	result.Combined = derive.Combine(allTotals)
	return result
}

func TestReviewModel_NavigateAndExpand(t *testing.T) {
	d := teatest.New(t, newReviewModel(reviewFixture(t)))
	d.DrainInit()

	view := d.View()
	assert.Contains(t, view, "500")
	assert.Contains(t, view, "501")
	assert.Contains(t, view, "2 invoice(s)")
	assert.NotContains(t, view, "Jane Doe", "details start collapsed")

	d.PressEnter()
	assert.Contains(t, d.View(), "Jane Doe")
	assert.Contains(t, d.View(), "010 - Framing")

	d.PressDown()
	d.PressEnter()
	assert.Contains(t, d.View(), "Bob Ray")

	d.PressEnter()
	assert.NotContains(t, d.View(), "Bob Ray", "second toggle collapses")
}

func TestReviewModel_CursorBounds(t *testing.T) {
	d := teatest.New(t, newReviewModel(reviewFixture(t)))

	d.PressUp()
	d.PressDown()
	d.PressDown()
	d.PressDown()

	m := d.Model.(*reviewModel)
	assert.Equal(t, 1, m.cursor)
}

func TestReviewModel_Quit(t *testing.T) {
	d := teatest.New(t, newReviewModel(reviewFixture(t)))
	d.PressKey('q')
	assert.True(t, d.Quitting)
}

func TestReviewModel_Empty(t *testing.T) {
	d := teatest.New(t, newReviewModel(&service.GenerateResult{}))
	assert.Contains(t, d.View(), "No invoices were generated.")
}
