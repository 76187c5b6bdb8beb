package derive

import (
	"testing"

	"github.com/rcalloway/timebill/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignNumbers_FirstEncounterOrder(t *testing.T) {
	rows := []Row{
		{JobNumber: "A", EmployeeName: "E1", PayType: domain.PayRegular},
		{JobNumber: "B", EmployeeName: "E2", PayType: domain.PayRegular},
		{JobNumber: "A", EmployeeName: "E3", PayType: domain.PayRegular},
		{JobNumber: "C", EmployeeName: "E4", PayType: domain.PayRegular},
	}

	numbered, state := AssignNumbers(rows, 100)

	assert.Equal(t, "100", numbered[0].InvoiceNumber)
	assert.Equal(t, "101", numbered[1].InvoiceNumber)
	assert.Equal(t, "100", numbered[2].InvoiceNumber, "repeat job reuses its number")
	assert.Equal(t, "102", numbered[3].InvoiceNumber)

	assert.Equal(t, 103, state.Next)
	assert.Equal(t, "100", state.Assigned["A"])

	// Input rows are untouched.
	assert.Empty(t, rows[0].InvoiceNumber)
}

func TestAssignNumbers_FallsBackToJobName(t *testing.T) {
	rows := []Row{
		{JobName: "Unnumbered Job", EmployeeName: "E1", PayType: domain.PayRegular},
		{JobName: "Unnumbered Job", EmployeeName: "E2", PayType: domain.PayRegular},
	}

	numbered, _ := AssignNumbers(rows, 500)
	assert.Equal(t, "500", numbered[0].InvoiceNumber)
	assert.Equal(t, "500", numbered[1].InvoiceNumber)
}

func TestNumberingState_ExplicitStateAcrossBatches(t *testing.T) {
	state := NewNumberingState(700)
	assert.Equal(t, "700", state.Assign("J1"))
	assert.Equal(t, "701", state.Assign("J2"))
	assert.Equal(t, "700", state.Assign("J1"))

	// Carrying the state into a later batch continues the sequence.
	assert.Equal(t, "702", state.Assign("J9"))
}

func TestSplitRevision(t *testing.T) {
	base, rev := SplitRevision("500")
	assert.Equal(t, "500", base)
	assert.Zero(t, rev)

	base, rev = SplitRevision("500-Rev2")
	assert.Equal(t, "500", base)
	assert.Equal(t, 2, rev)

	base, rev = SplitRevision("500-Rev")
	assert.Equal(t, "500-Rev", base)
	assert.Zero(t, rev)
}

func TestNextRevision_IncrementsHighestExisting(t *testing.T) {
	existing := []string{"500", "500-Rev1", "500-Rev2"}
	assert.Equal(t, "500-Rev3", NextRevision("500", existing))
}

func TestNextRevision_FromARevisionNumber(t *testing.T) {
	existing := []string{"500", "500-Rev1", "500-Rev4"}
	// Revising Rev1 still numbers after the family's highest, Rev4.
	assert.Equal(t, "500-Rev5", NextRevision("500-Rev1", existing))
}

func TestNextRevision_IgnoresOtherFamilies(t *testing.T) {
	existing := []string{"500", "501-Rev7", "5001-Rev3"}
	require.Equal(t, "500-Rev1", NextRevision("500", existing))
}

func TestNextRevision_NoExistingRevisions(t *testing.T) {
	assert.Equal(t, "500-Rev1", NextRevision("500", []string{"500"}))
	assert.Equal(t, "500-Rev1", NextRevision("500", nil))
}
