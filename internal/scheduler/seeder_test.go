package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ftis-dev/lab-timetable/backend/internal/domain"
)

func TestSplitByRooms(t *testing.T) {
	cases := []struct {
		capacity int
		maxCap   int
		want     []int
	}{
		{50, 30, []int{25, 25}},
		{30, 30, []int{30}},
		{60, 30, []int{30, 30}},
		{61, 30, []int{20, 20, 21}},
		{20, 30, []int{20}},
		{91, 30, []int{22, 22, 22, 25}},
	}
	for _, c := range cases {
		got := splitByRooms(c.capacity, c.maxCap)
		require.Equal(t, c.want, got, "capacity %d maxCap %d", c.capacity, c.maxCap)

		sum := 0
		for _, p := range got {
			sum += p
			require.LessOrEqual(t, p, c.maxCap)
		}
		require.Equal(t, c.capacity, sum)
	}
}

func TestSessionDuration(t *testing.T) {
	require.Equal(t, 120*60, sessionDuration(1))
	require.Equal(t, 180*60, sessionDuration(2))
	require.Equal(t, 180*60, sessionDuration(3))
}

func TestSampleStartForDay(t *testing.T) {
	s := newTestScheduler(t, 3, nil)

	for i := 0; i < 200; i++ {
		start, end, ok := s.sampleStartForDay(5, 120*60)
		require.True(t, ok)
		require.Zero(t, start%s.params.Grid, "start must be grid aligned")
		require.Equal(t, start+120*60, end)
		require.True(t, s.params.allowedInDay(5, start, end),
			"slot %d-%d must dodge the Jumat lunch window", start, end)
	}
}

func TestSampleStartForDayImpossibleDuration(t *testing.T) {
	s := newTestScheduler(t, 3, nil)
	_, _, ok := s.sampleStartForDay(1, 11*3600)
	require.False(t, ok)
}

func TestGenerateGene(t *testing.T) {
	s := newTestScheduler(t, 11, nil)

	for i := 0; i < 50; i++ {
		genes := s.GenerateGene()
		require.NotEmpty(t, genes)

		first := genes[0]
		total := 0
		for k, g := range genes {
			require.NotEmpty(t, g.ID)
			require.Equal(t, first.SubjectID, g.SubjectID)
			require.Equal(t, first.SubjectName, g.SubjectName)
			require.Equal(t, domain.DayNames[g.Day], g.DayName)
			require.Contains(t, s.params.Days, g.Day)
			require.Equal(t, sessionDuration(g.SKS), g.Duration())
			require.NotEmpty(t, g.Assistants)
			require.NotEmpty(t, g.PreferredRooms)
			require.NotEmpty(t, g.Group)
			total += g.Capacity

			// Sibling sections carry distinct group suffixes.
			for _, other := range genes[:k] {
				require.NotEqual(t, other.Group, g.Group)
			}
		}

		// Split parts add back up to the course enrollment.
		var course *domain.Course
		for _, c := range s.courses {
			if c.SubjectID == first.SubjectID {
				course = c
			}
		}
		require.NotNil(t, course)
		require.Equal(t, course.Enrollment, total)
	}
}

func TestDedupChromosome(t *testing.T) {
	a := &domain.Gene{SubjectID: "MK1", Group: "A-1"}
	b := &domain.Gene{SubjectID: "MK1", Group: "A-1", Day: 3}
	c := &domain.Gene{SubjectID: "MK1", Group: "A-2"}

	out := dedupChromosome([]*domain.Gene{a, b, c})
	require.Equal(t, []*domain.Gene{a, c}, out)
}

func TestMergeUnique(t *testing.T) {
	base := []*domain.Gene{{SubjectID: "MK1", Group: "A-1"}}
	extra := []*domain.Gene{
		{SubjectID: "MK1", Group: "A-1", Day: 2},
		{SubjectID: "MK2", Group: "B-1"},
	}

	out := mergeUnique(base, extra)
	require.Len(t, out, 2)
	require.Equal(t, "MK2", out[1].SubjectID)
}

func TestGenerateIndividual(t *testing.T) {
	s := newTestScheduler(t, 21, nil)

	for i := 0; i < 20; i++ {
		ind := s.GenerateIndividual(8)
		require.LessOrEqual(t, len(ind.Chromosome), 8)
		require.NotEmpty(t, ind.Chromosome)

		seen := make(map[domain.GeneKey]struct{})
		for _, g := range ind.Chromosome {
			_, dup := seen[g.Key()]
			require.False(t, dup, "duplicate section %v", g.Key())
			seen[g.Key()] = struct{}{}
		}
	}
}

func TestGeneratePopulation(t *testing.T) {
	s := newTestScheduler(t, 31, nil)
	pop := s.GeneratePopulation()
	require.Len(t, pop, s.params.PopulationSize)
	for _, ind := range pop {
		require.NotEmpty(t, ind.Chromosome)
	}
}
