package derive

import (
	"testing"

	"github.com/rcalloway/timebill/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestApply_ExplicitRateWinsOverInference(t *testing.T) {
	acc := &ActivityAccumulator{}
	acc.Apply(domain.PayRegular, 8, 40)
	acc.Apply(domain.PayOvertime, 2, 60)

	// The overtime row's explicit 60 replaces the inferred 40*1.5.
	assert.Equal(t, 40.0, acc.RegularRate.Value())
	assert.Equal(t, 60.0, acc.OvertimeRate.Value())
	assert.False(t, acc.OvertimeInferred)
	assert.False(t, acc.RegularInferred)
}

func TestApply_InfersOvertimeFromRegular(t *testing.T) {
	acc := &ActivityAccumulator{}
	acc.Apply(domain.PayRegular, 8, 40)

	assert.Equal(t, 60.0, acc.OvertimeRate.Value())
	assert.True(t, acc.OvertimeInferred)
	// No overtime hours yet, so no overtime total either.
	assert.Zero(t, acc.OvertimeTotal)
}

func TestApply_InfersRegularFromOvertime(t *testing.T) {
	acc := &ActivityAccumulator{}
	acc.Apply(domain.PayOvertime, 3, 60)

	assert.Equal(t, 40.0, acc.RegularRate.Value())
	assert.True(t, acc.RegularInferred)
	assert.Equal(t, 180.0, acc.OvertimeTotal)
}

func TestApply_InferenceNeverOverwritesExplicitRate(t *testing.T) {
	acc := &ActivityAccumulator{}
	acc.Apply(domain.PayOvertime, 2, 60)
	// Mid-week raise: the later regular row sets its own rate but must
	// not disturb the explicit overtime 60.
	acc.Apply(domain.PayRegular, 8, 45)

	assert.Equal(t, 45.0, acc.RegularRate.Value())
	assert.Equal(t, 60.0, acc.OvertimeRate.Value())
	assert.False(t, acc.OvertimeInferred)
}

func TestApply_ExplicitZeroRateSuppressesInference(t *testing.T) {
	acc := &ActivityAccumulator{}
	// Volunteer hours: zero is a real rate, not "unset".
	acc.Apply(domain.PayOvertime, 1, 0)
	acc.Apply(domain.PayRegular, 8, 40)

	assert.True(t, acc.OvertimeRate.IsSet())
	assert.Zero(t, acc.OvertimeRate.Value())
	assert.False(t, acc.OvertimeInferred, "explicit zero must not be replaced by inference")
}

func TestApply_LastWriteWinsPerPayType(t *testing.T) {
	acc := &ActivityAccumulator{}
	acc.Apply(domain.PayRegular, 4, 40)
	acc.Apply(domain.PayRegular, 4, 45)

	assert.Equal(t, 8.0, acc.RegularHours)
	assert.Equal(t, 45.0, acc.RegularRate.Value())
	// Total is recomputed from the winning rate, not accumulated.
	assert.Equal(t, 360.0, acc.RegularTotal)
}

func TestApply_RoundsHalfAwayFromZero(t *testing.T) {
	acc := &ActivityAccumulator{}
	acc.Apply(domain.PayRegular, 3, 33.333)

	assert.Equal(t, 100.0, acc.RegularTotal)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.13, Round2(0.125))
	assert.Equal(t, -0.13, Round2(-0.125))
	assert.Equal(t, 0.38, Round2(0.375))
	assert.Equal(t, 100.0, Round2(99.999))
}

func TestRate_UnsetVsExplicitZero(t *testing.T) {
	var unset Rate
	assert.False(t, unset.IsSet())
	assert.Zero(t, unset.Value())

	zero := RateOf(0)
	assert.True(t, zero.IsSet())
	assert.Zero(t, zero.Value())
}
