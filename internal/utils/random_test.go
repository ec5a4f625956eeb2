package utils_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ftis-dev/lab-timetable/backend/internal/domain"
	"github.com/ftis-dev/lab-timetable/backend/internal/utils"
)

func TestGenerateRandomCourses(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	courses := utils.GenerateRandomCourses(rng, 50)
	require.Len(t, courses, 50)

	for _, c := range courses {
		require.Regexp(t, `^MK\d{4}$`, c.SubjectID)
		require.NotEmpty(t, c.SubjectName)
		require.GreaterOrEqual(t, c.Semester, 1)
		require.LessOrEqual(t, c.Semester, 8)
		require.GreaterOrEqual(t, c.Enrollment, 20)
		require.LessOrEqual(t, c.Enrollment, 60)
		require.GreaterOrEqual(t, c.SKS, 1)
		require.LessOrEqual(t, c.SKS, 3)
		require.NotEmpty(t, c.SectionCode)
	}
}

func TestGenerateRandomRooms(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	rooms := utils.GenerateRandomRooms(rng, 10)
	require.Len(t, rooms, 10)

	for i, r := range rooms {
		require.Equal(t, int64(i+1), r.ID)
		require.NotEmpty(t, r.Name)
		require.GreaterOrEqual(t, r.Capacity, 20)
		require.LessOrEqual(t, r.Capacity, 30)
	}
}

func TestGenerateBusySchedule(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for trial := 0; trial < 20; trial++ {
		opts := utils.DefaultBusyScheduleOptions(rng)
		entries := utils.GenerateBusySchedule(rng, opts)
		require.NotEmpty(t, entries)

		totalSKS := 0
		byDay := make(map[int32][]domain.BusyInterval)
		for _, e := range entries {
			require.Contains(t, opts.Days, e.Day)
			require.Equal(t, domain.DayNames[e.Day], e.DayName)
			require.GreaterOrEqual(t, e.Start, opts.DayStart)
			require.LessOrEqual(t, e.End, opts.DayEnd)
			require.Equal(t, e.SKS*50*60, e.End-e.Start)
			totalSKS += e.SKS
			byDay[e.Day] = append(byDay[e.Day], e)
		}
		require.LessOrEqual(t, totalSKS, opts.TargetSKS)

		// Sorted by (day, start).
		for i := 1; i < len(entries); i++ {
			a, b := entries[i-1], entries[i]
			require.True(t, a.Day < b.Day || (a.Day == b.Day && a.Start <= b.Start))
		}

		// No same-day overlaps.
		for _, ivs := range byDay {
			for i := 0; i < len(ivs); i++ {
				for j := i + 1; j < len(ivs); j++ {
					require.False(t, max(ivs[i].Start, ivs[j].Start) < min(ivs[i].End, ivs[j].End),
						"busy intervals overlap: %+v vs %+v", ivs[i], ivs[j])
				}
			}
		}
	}
}

func TestGenerateRandomAssistants(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	assistants := utils.GenerateRandomAssistants(rng, 8)
	require.Len(t, assistants, 8)

	seen := make(map[string]bool)
	for _, a := range assistants {
		require.Len(t, a.ID, 32)
		require.False(t, seen[a.ID], "assistant identities must be unique")
		seen[a.ID] = true
		require.NotEmpty(t, a.Busy)
	}
}
