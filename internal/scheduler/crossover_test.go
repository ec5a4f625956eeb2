package scheduler

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ftis-dev/lab-timetable/backend/internal/domain"
)

func numberedIndividual(prefix string, n int) *domain.Individual {
	genes := make([]*domain.Gene, n)
	for i := range genes {
		genes[i] = &domain.Gene{
			ID:        fmt.Sprintf("%s%d", prefix, i),
			SubjectID: fmt.Sprintf("MK-%s%d", prefix, i),
			Group:     prefix,
			Day:       1,
			StartTime: 8 * 3600,
			EndTime:   10 * 3600,
			RoomID:    1,
		}
	}
	return &domain.Individual{Chromosome: genes}
}

func geneIDs(ind *domain.Individual) []string {
	ids := make([]string, len(ind.Chromosome))
	for i, g := range ind.Chromosome {
		ids[i] = g.ID
	}
	return ids
}

func TestCxOnePoint(t *testing.T) {
	s := newTestScheduler(t, 8, nil)
	a := numberedIndividual("a", 6)
	b := numberedIndividual("b", 6)

	c1, c2 := s.cxOnePoint(a, b)
	require.Len(t, c1.Chromosome, 6)
	require.Len(t, c2.Chromosome, 6)

	// Each child is a prefix of one parent and a suffix of the other.
	ids1, ids2 := geneIDs(c1), geneIDs(c2)
	pt := 0
	for pt < 6 && ids1[pt][0] == 'a' {
		pt++
	}
	require.Greater(t, pt, 0)
	require.Less(t, pt, 6)
	for k := 0; k < 6; k++ {
		if k < pt {
			require.Equal(t, fmt.Sprintf("a%d", k), ids1[k])
			require.Equal(t, fmt.Sprintf("b%d", k), ids2[k])
		} else {
			require.Equal(t, fmt.Sprintf("b%d", k), ids1[k])
			require.Equal(t, fmt.Sprintf("a%d", k), ids2[k])
		}
	}
}

func TestCxOnePointShortParents(t *testing.T) {
	s := newTestScheduler(t, 8, nil)
	a := numberedIndividual("a", 1)
	b := numberedIndividual("b", 1)

	c1, c2 := s.cxOnePoint(a, b)
	require.Equal(t, []string{"a0"}, geneIDs(c1))
	require.Equal(t, []string{"b0"}, geneIDs(c2))
}

func TestCxTwoPoint(t *testing.T) {
	s := newTestScheduler(t, 8, nil)
	a := numberedIndividual("a", 8)
	b := numberedIndividual("b", 8)

	c1, c2 := s.cxTwoPoint(a, b)
	require.Len(t, c1.Chromosome, 8)
	require.Len(t, c2.Chromosome, 8)

	// c1 holds exactly one contiguous run of b-genes; c2 the mirror.
	ids1, ids2 := geneIDs(c1), geneIDs(c2)
	swapped := 0
	for k := 0; k < 8; k++ {
		if ids1[k][0] == 'b' {
			swapped++
			require.Equal(t, fmt.Sprintf("b%d", k), ids1[k])
			require.Equal(t, fmt.Sprintf("a%d", k), ids2[k])
		} else {
			require.Equal(t, fmt.Sprintf("a%d", k), ids1[k])
			require.Equal(t, fmt.Sprintf("b%d", k), ids2[k])
		}
	}
	require.Greater(t, swapped, 0)
	require.Less(t, swapped, 8)
}

func TestCxUniformGene(t *testing.T) {
	s := newTestScheduler(t, 8, nil)
	a := numberedIndividual("a", 10)
	b := numberedIndividual("b", 7)

	c1, c2 := s.cxUniformGene(a, b)
	require.Len(t, c1.Chromosome, 10)
	require.Len(t, c2.Chromosome, 7)

	ids1, ids2 := geneIDs(c1), geneIDs(c2)
	for k := 0; k < 7; k++ {
		// Children take complementary genes at each shared index.
		if ids1[k][0] == 'a' {
			require.Equal(t, fmt.Sprintf("b%d", k), ids2[k])
		} else {
			require.Equal(t, fmt.Sprintf("a%d", k), ids2[k])
		}
	}
	// The longer parent's tail stays with its child.
	for k := 7; k < 10; k++ {
		require.Equal(t, fmt.Sprintf("a%d", k), ids1[k])
	}
}

func TestCxUniformScheduleKeepsIdentity(t *testing.T) {
	s := newTestScheduler(t, 8, nil)
	a := numberedIndividual("a", 6)
	b := numberedIndividual("b", 6)
	for i, g := range b.Chromosome {
		g.Day = 3
		g.StartTime = (9 + i) * 3600
		g.EndTime = g.StartTime + 2*3600
		g.RoomID = 2
	}

	c1, c2 := s.cxUniformSchedule(a, b)
	require.Len(t, c1.Chromosome, 6)
	require.Len(t, c2.Chromosome, 6)

	for _, child := range []*domain.Individual{c1, c2} {
		for _, g := range child.Chromosome {
			// Every slot in a child comes from one of the two parents
			// intact; identity and schedule may recombine freely.
			if g.Day == 1 {
				require.Equal(t, 8*3600, g.StartTime)
				require.Equal(t, int64(1), g.RoomID)
			} else {
				require.Equal(t, int32(3), g.Day)
				require.Equal(t, int64(2), g.RoomID)
			}
		}
	}
}

func TestCrossoverChildrenDoNotAliasParents(t *testing.T) {
	s := newTestScheduler(t, 8, nil)
	a := numberedIndividual("a", 6)
	b := numberedIndividual("b", 6)

	c1, _ := s.cxOnePoint(a, b)
	for _, g := range c1.Chromosome {
		g.StartTime = 0
	}
	for _, g := range a.Chromosome {
		require.Equal(t, 8*3600, g.StartTime)
	}
	for _, g := range b.Chromosome {
		require.Equal(t, 8*3600, g.StartTime)
	}
}

func TestBreedKeepsSizeAndElites(t *testing.T) {
	s := newTestScheduler(t, 13, nil)
	pop := s.GeneratePopulation()
	fits := s.EvaluatePopulation(pop)

	bestIdx := maxIndex(fits)
	bestFitness := fits[bestIdx]

	next := s.Breed(pop, fits)
	require.Len(t, next, len(pop))

	// The elite slot carries the fittest individual forward; repair never
	// makes a conflict-free individual worse, so its fitness survives.
	nextFits := s.EvaluatePopulation(next)
	require.GreaterOrEqual(t, maxFitness(nextFits), 0.0)
	require.Equal(t, bestFitness, s.Fitness(pop[bestIdx]), "source population must be unchanged")

	// Every bred individual satisfies the day-window constraints.
	for _, ind := range next {
		for _, g := range ind.Chromosome {
			require.True(t, s.params.allowedInDay(g.Day, g.StartTime, g.EndTime) ||
				g.Duration() > s.params.DayClose-s.params.DayOpen)
		}
	}
}

func TestBreedZeroCrossoverRatePassesParentsThrough(t *testing.T) {
	s := newTestScheduler(t, 13, func(p *Parameters) {
		p.CrossoverRate = 0
		p.EliteCount = 0
	})
	pop := s.GeneratePopulation()
	fits := s.EvaluatePopulation(pop)

	next := s.Breed(pop, fits)
	require.Len(t, next, len(pop))

	// With mating disabled, every child's sections exist in the source
	// population.
	known := make(map[domain.GeneKey]struct{})
	for _, ind := range pop {
		for _, g := range ind.Chromosome {
			known[g.Key()] = struct{}{}
		}
	}
	for _, ind := range next {
		for _, g := range ind.Chromosome {
			_, ok := known[g.Key()]
			require.True(t, ok, "unknown section %v", g.Key())
		}
	}
}
