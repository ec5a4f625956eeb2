package scheduler

import (
	"sort"

	"github.com/ftis-dev/lab-timetable/backend/internal/domain"
)

// cumulative turns a fitness vector into a cumulative probability
// distribution. The last entry is forced to exactly 1.0 so a draw can
// never fall through a floating-point gap. Returns nil when the total
// fitness is not positive; callers fall back to uniform selection.
func cumulative(fits []float64) []float64 {
	total := 0.0
	for _, f := range fits {
		total += f
	}
	if total <= 0 {
		return nil
	}

	cum := make([]float64, len(fits))
	acc := 0.0
	for i, f := range fits {
		acc += f / total
		cum[i] = acc
	}
	cum[len(cum)-1] = 1.0
	return cum
}

// rouletteSelect draws k individuals with replacement, each proportional
// to its fitness share. Selected individuals are deep-copied so the
// breeding pass owns them exclusively.
func (s *Scheduler) rouletteSelect(pop domain.Population, fits []float64, k int) []*domain.Individual {
	cum := cumulative(fits)
	picks := make([]*domain.Individual, k)

	for i := 0; i < k; i++ {
		if cum == nil {
			picks[i] = pop[s.rng.Intn(len(pop))].Clone()
			continue
		}
		r := s.rng.Float64()
		idx := sort.SearchFloat64s(cum, r)
		if idx >= len(pop) {
			idx = len(pop) - 1
		}
		picks[i] = pop[idx].Clone()
	}
	return picks
}

// susSelect is stochastic universal sampling: k equally spaced pointers
// from a single uniform offset, giving lower selection variance than k
// independent roulette spins.
func (s *Scheduler) susSelect(pop domain.Population, fits []float64, k int) []*domain.Individual {
	cum := cumulative(fits)
	if cum == nil {
		picks := make([]*domain.Individual, k)
		for i := range picks {
			picks[i] = pop[s.rng.Intn(len(pop))].Clone()
		}
		return picks
	}

	step := 1.0 / float64(k)
	start := s.rng.Float64() * step

	picks := make([]*domain.Individual, 0, k)
	j := 0
	for i := 0; i < k; i++ {
		ptr := start + float64(i)*step
		for j < len(cum) && cum[j] < ptr {
			j++
		}
		idx := min(j, len(pop)-1)
		picks = append(picks, pop[idx].Clone())
	}
	return picks
}

func (s *Scheduler) selectParents(pop domain.Population, fits []float64, k int) []*domain.Individual {
	if s.params.Selection == SelectRoulette {
		return s.rouletteSelect(pop, fits, k)
	}
	return s.susSelect(pop, fits, k)
}

// rankByFitness returns population indices ordered best-first.
func rankByFitness(fits []float64) []int {
	idx := make([]int, len(fits))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return fits[idx[a]] > fits[idx[b]] })
	return idx
}
