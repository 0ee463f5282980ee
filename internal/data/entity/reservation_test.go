package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTimeLabel(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"canonical morning", "09:00", "09:00"},
		{"canonical afternoon", "13:00", "13:00"},
		{"legacy pm one", "1:00", "13:00"},
		{"legacy pm seven", "7:00", "19:00"},
		{"single digit nine stays am", "9:00", "09:00"},
		{"whitespace trimmed", " 10:00 ", "10:00"},
		{"garbage passes through", "noon", "noon"},
		{"non-numeric hour passes through", "ab:00", "ab:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTimeLabel(tt.label))
		})
	}
}

func TestBuildSlotKey(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a, err := BuildSlotKey("adv.rao@example.com", "2030-05-01", "10:00")
		require.NoError(t, err)
		b, err := BuildSlotKey("adv.rao@example.com", "2030-05-01", "10:00")
		require.NoError(t, err)
		assert.Equal(t, a, b)
		assert.Equal(t, "adv.rao@example.com_2030-05-01_10:00", a)
	})

	t.Run("distinct slots yield distinct keys", func(t *testing.T) {
		base, err := BuildSlotKey("adv.rao@example.com", "2030-05-01", "10:00")
		require.NoError(t, err)

		otherTime, err := BuildSlotKey("adv.rao@example.com", "2030-05-01", "11:00")
		require.NoError(t, err)
		otherDate, err := BuildSlotKey("adv.rao@example.com", "2030-05-02", "10:00")
		require.NoError(t, err)
		otherLawyer, err := BuildSlotKey("adv.iyer@example.com", "2030-05-01", "10:00")
		require.NoError(t, err)

		assert.NotEqual(t, base, otherTime)
		assert.NotEqual(t, base, otherDate)
		assert.NotEqual(t, base, otherLawyer)
	})

	t.Run("legacy pm label folds onto canonical slot", func(t *testing.T) {
		legacy, err := BuildSlotKey("adv.rao@example.com", "2030-05-01", "1:00")
		require.NoError(t, err)
		canonical, err := BuildSlotKey("adv.rao@example.com", "2030-05-01", "13:00")
		require.NoError(t, err)
		assert.Equal(t, canonical, legacy)
	})

	t.Run("empty lawyer fails", func(t *testing.T) {
		_, err := BuildSlotKey("", "2030-05-01", "10:00")
		assert.Error(t, err)
	})

	t.Run("empty date fails", func(t *testing.T) {
		_, err := BuildSlotKey("adv.rao@example.com", "  ", "10:00")
		assert.Error(t, err)
	})

	t.Run("time outside window fails", func(t *testing.T) {
		for _, label := range []string{"08:00", "18:00", "23:59", "bogus"} {
			_, err := BuildSlotKey("adv.rao@example.com", "2030-05-01", label)
			assert.Error(t, err, "label %q", label)
		}
	})
}

func TestInAvailabilityWindow(t *testing.T) {
	assert.True(t, InAvailabilityWindow("09:00"))
	assert.True(t, InAvailabilityWindow("17:00"))
	assert.True(t, InAvailabilityWindow("1:00")) // folds to 13:00
	assert.False(t, InAvailabilityWindow("08:00"))
	assert.False(t, InAvailabilityWindow("18:00"))
	assert.False(t, InAvailabilityWindow(""))
}

func TestReservationIsPast(t *testing.T) {
	now := time.Date(2030, 5, 1, 12, 0, 0, 0, time.UTC)

	past := &Reservation{Date: "2030-05-01", TimeLabel: "10:00"}
	assert.True(t, past.IsPast(now))

	future := &Reservation{Date: "2030-05-01", TimeLabel: "14:00"}
	assert.False(t, future.IsPast(now))

	unparsable := &Reservation{Date: "2030-05-01", TimeLabel: "soon"}
	assert.False(t, unparsable.IsPast(now))
}
