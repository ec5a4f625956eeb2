package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ftis-dev/lab-timetable/backend/internal/domain"
)

func assertNoRoomConflicts(t *testing.T, ind *domain.Individual) {
	t.Helper()
	for i, a := range ind.Chromosome {
		for _, b := range ind.Chromosome[i+1:] {
			if a.Day != b.Day || a.RoomID != b.RoomID {
				continue
			}
			require.False(t, overlap(a.StartTime, a.EndTime, b.StartTime, b.EndTime),
				"room %d double-booked on day %d: %d-%d vs %d-%d",
				a.RoomID, a.Day, a.StartTime, a.EndTime, b.StartTime, b.EndTime)
		}
	}
}

func TestRepairRoomConflict(t *testing.T) {
	s := newTestScheduler(t, 2, nil)
	ind := &domain.Individual{Chromosome: []*domain.Gene{
		sessionGene("1", 1, 8*3600, 10*3600, 1, "a-1"),
		sessionGene("2", 1, 8*3600, 10*3600, 1, "b-1"),
	}}

	s.Repair(ind)
	assertNoRoomConflicts(t, ind)
	for _, g := range ind.Chromosome {
		require.True(t, s.params.allowedInDay(g.Day, g.StartTime, g.EndTime))
	}
}

func TestRepairPrefersCandidateRoom(t *testing.T) {
	s := newTestScheduler(t, 2, nil)
	alt := &domain.Room{ID: 2, Name: "Ruang 2", Capacity: 25}

	g1 := sessionGene("1", 1, 8*3600, 10*3600, 1, "a-1")
	g2 := sessionGene("2", 1, 8*3600, 10*3600, 1, "b-1")
	g2.Capacity = 20
	g2.PreferredRooms = []*domain.Room{alt}

	ind := &domain.Individual{Chromosome: []*domain.Gene{g1, g2}}
	s.Repair(ind)

	// The later gene moves to its free candidate room, slot untouched.
	require.Equal(t, int64(2), g2.RoomID)
	require.Equal(t, 8*3600, g2.StartTime)
	require.Equal(t, int64(1), g1.RoomID)
}

func TestRepairClampsIllegalWindows(t *testing.T) {
	s := newTestScheduler(t, 2, nil)
	ind := &domain.Individual{Chromosome: []*domain.Gene{
		// Before day open.
		sessionGene("1", 1, 5*3600, 7*3600, 1, "a-1"),
		// Over the Jumat lunch window.
		sessionGene("2", 5, 11*3600, 13*3600, 2, "b-1"),
		// Past day close.
		sessionGene("3", 2, 16*3600, 19*3600, 3, "c-1"),
	}}

	s.Repair(ind)
	for _, g := range ind.Chromosome {
		require.True(t, s.params.allowedInDay(g.Day, g.StartTime, g.EndTime),
			"gene %s still illegal: day %d %d-%d", g.ID, g.Day, g.StartTime, g.EndTime)
	}
	// Durations survive the clamp.
	require.Equal(t, 2*3600, ind.Chromosome[0].Duration())
	require.Equal(t, 2*3600, ind.Chromosome[1].Duration())
	require.Equal(t, 3*3600, ind.Chromosome[2].Duration())
}

func TestRepairGroupConflict(t *testing.T) {
	s := newTestScheduler(t, 2, nil)
	ind := &domain.Individual{Chromosome: []*domain.Gene{
		sessionGene("1", 1, 8*3600, 10*3600, 1, "A-1"),
		sessionGene("2", 1, 9*3600+1800, 11*3600+1800, 2, "a-1"),
	}}

	s.Repair(ind)

	a, b := ind.Chromosome[0], ind.Chromosome[1]
	require.False(t, overlap(a.StartTime, a.EndTime, b.StartTime, b.EndTime),
		"section still double-booked: %d-%d vs %d-%d", a.StartTime, a.EndTime, b.StartTime, b.EndTime)
}

func TestRepairLeavesIdentityAlone(t *testing.T) {
	s := newTestScheduler(t, 2, nil)
	g1 := sessionGene("1", 1, 8*3600, 10*3600, 1, "a-1")
	g2 := sessionGene("2", 1, 8*3600, 10*3600, 1, "a-1")
	g2.Capacity = 25
	ind := &domain.Individual{Chromosome: []*domain.Gene{g1, g2}}

	s.Repair(ind)

	require.Equal(t, "1", g1.ID)
	require.Equal(t, "2", g2.ID)
	require.Equal(t, "MK1", g1.SubjectID)
	require.Equal(t, 25, g2.Capacity)
	require.Equal(t, "a-1", g2.Group)
}

func TestRepairIdempotentOnCleanIndividual(t *testing.T) {
	s := newTestScheduler(t, 2, nil)
	ind := &domain.Individual{Chromosome: []*domain.Gene{
		sessionGene("1", 1, 8*3600, 10*3600, 1, "a-1"),
		sessionGene("2", 1, 10*3600, 12*3600, 1, "a-1"),
		sessionGene("3", 2, 8*3600, 10*3600, 2, "b-1"),
	}}

	before := ind.Clone()
	s.Repair(ind)

	for i, g := range ind.Chromosome {
		b := before.Chromosome[i]
		require.Equal(t, b.Day, g.Day)
		require.Equal(t, b.StartTime, g.StartTime)
		require.Equal(t, b.EndTime, g.EndTime)
		require.Equal(t, b.RoomID, g.RoomID)
	}
}

func TestRepairSeededPopulation(t *testing.T) {
	s := newTestScheduler(t, 23, nil)
	for i := 0; i < 10; i++ {
		ind := s.GenerateIndividual(8)
		s.Repair(ind)
		// Repair is best-effort on conflicts but always restores legal
		// windows here: every session fits the working day.
		for _, g := range ind.Chromosome {
			require.True(t, s.params.allowedInDay(g.Day, g.StartTime, g.EndTime),
				"gene %s illegal after repair: day %d %d-%d", g.ID, g.Day, g.StartTime, g.EndTime)
		}
	}
}
