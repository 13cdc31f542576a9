package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskNormalizeDefaults(t *testing.T) {
	task := Task{Text: "x", Date: "2025-06-02"}
	task.Normalize()
	assert.Equal(t, BlockOchtend, task.TimeBlock)
	assert.Equal(t, RepeatOnce, task.Repeat)

	task = Task{TimeBlock: "nacht", Repeat: "fortnightly"}
	task.Normalize()
	assert.Equal(t, BlockOchtend, task.TimeBlock)
	assert.Equal(t, RepeatOnce, task.Repeat)

	task = Task{TimeBlock: BlockAvond, Repeat: RepeatWeekly}
	task.Normalize()
	assert.Equal(t, BlockAvond, task.TimeBlock)
	assert.Equal(t, RepeatWeekly, task.Repeat)
}

func TestTaskAnchorDate(t *testing.T) {
	task := Task{Date: "2025-06-02"}
	d, err := task.AnchorDate()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC), d)

	task = Task{Date: "02-06-2025"}
	_, err = task.AnchorDate()
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestAgendaItemNormalizeAndMapping(t *testing.T) {
	item := AgendaItem{Repeat: "daily"}
	item.Normalize()
	assert.Equal(t, AgendaRepeatNone, item.Repeat)

	assert.Equal(t, RepeatWeekly, (&AgendaItem{Repeat: AgendaRepeatWeekly}).TaskRepeat())
	assert.Equal(t, RepeatMonthly, (&AgendaItem{Repeat: AgendaRepeatMonthly}).TaskRepeat())
	assert.Equal(t, RepeatOnce, (&AgendaItem{Repeat: AgendaRepeatNone}).TaskRepeat())
}

func TestOrderNormalizeDefaultsType(t *testing.T) {
	order := Order{Type: "gereedschap"}
	order.Normalize()
	assert.Equal(t, OrderOverige, order.Type)

	order = Order{Type: OrderKleding}
	order.Normalize()
	assert.Equal(t, OrderKleding, order.Type)
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, UserRoleAdmin.IsValid())
	assert.True(t, UserRoleKiosk.IsValid())
	assert.False(t, UserRole("manager").IsValid())

	assert.True(t, RepeatYearly.IsValid())
	assert.False(t, Repeat("").IsValid())

	assert.True(t, BlockMiddag.IsValid())
	assert.False(t, TimeBlock("nacht").IsValid())

	assert.True(t, OrderOnderdelen.IsValid())
	assert.False(t, OrderType("").IsValid())
}
