package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ftis-dev/lab-timetable/backend/internal/domain"
)

func TestAssistantIsFree(t *testing.T) {
	a := &domain.AssistantAvailability{
		ID: "asst-1",
		Busy: []domain.BusyInterval{
			{Day: 1, Start: 8 * 3600, End: 10 * 3600},
			{Day: 3, Start: 13 * 3600, End: 15 * 3600},
		},
	}

	// Overlapping the Senin class.
	require.False(t, a.IsFree(1, 9*3600, 11*3600))
	// Intervals are half-open: touching boundaries is free.
	require.True(t, a.IsFree(1, 10*3600, 12*3600))
	require.True(t, a.IsFree(1, 7*3600, 8*3600))
	// Same slot on another day is free.
	require.True(t, a.IsFree(2, 9*3600, 11*3600))
	require.False(t, a.IsFree(3, 14*3600, 14*3600+1800))
}

func TestAssistantIsFreeNoBusy(t *testing.T) {
	a := &domain.AssistantAvailability{ID: "asst-2"}
	require.True(t, a.IsFree(1, 7*3600, 17*3600))
}
