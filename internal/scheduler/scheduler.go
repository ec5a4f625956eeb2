package scheduler

import (
	"errors"
	"math/rand"

	"github.com/ftis-dev/lab-timetable/backend/internal/domain"
)

// AssistantSource produces n fresh assistant busy-timetables. The engine
// treats it as an opaque generator so the catalog side stays external.
type AssistantSource func(rng *rand.Rand, n int) []*domain.AssistantAvailability

// Progress is a per-phase snapshot of the running search.
type Progress struct {
	Generation  int     `json:"generation"`
	Phase       string  `json:"phase"`
	BestFitness float64 `json:"bestFitness"`
}

type ProgressFunc func(Progress)

// Result is the outcome of one search. Solved is false when the
// generation bound ran out first; Best is still the fittest individual
// seen.
type Result struct {
	Best        *domain.Individual
	Fitness     float64
	Generations int
	Solved      bool
}

// Scheduler searches for a conflict-free weekly timetable with a genetic
// algorithm. All randomness flows through the injected source, so a fixed
// seed reproduces a run exactly.
type Scheduler struct {
	params     *Parameters
	courses    []*domain.Course
	rooms      []*domain.Room
	assistants AssistantSource
	rng        *rand.Rand
	onProgress ProgressFunc
}

func New(params *Parameters, courses []*domain.Course, rooms []*domain.Room, assistants AssistantSource, rng *rand.Rand) (*Scheduler, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, errors.New("course catalog is empty")
	}
	if len(rooms) == 0 {
		return nil, errors.New("room catalog is empty")
	}
	if assistants == nil {
		return nil, errors.New("assistant source is nil")
	}
	if rng == nil {
		return nil, errors.New("random source is nil")
	}

	return &Scheduler{
		params:     params,
		courses:    courses,
		rooms:      rooms,
		assistants: assistants,
		rng:        rng,
	}, nil
}

// OnProgress registers a callback invoked after every evaluate phase.
func (s *Scheduler) OnProgress(fn ProgressFunc) {
	s.onProgress = fn
}

func (s *Scheduler) report(gen int, phase string, best float64) {
	if s.onProgress != nil {
		s.onProgress(Progress{Generation: gen, Phase: phase, BestFitness: best})
	}
}

// Run executes the evolutionary loop:
//
//	INIT -> EVALUATE -> {DONE | BREED} -> EVALUATE -> {DONE | MUTATE} -> EVALUATE -> ...
//
// The search stops once the best fitness reaches PromisingFitness right
// after a breed phase or SuccessFitness after a mutation phase, or when
// MaxGenerations is exhausted. Failure to converge is not an error; the
// best individual found so far is always returned.
func (s *Scheduler) Run() *Result {
	pop := s.GeneratePopulation()
	fits := s.EvaluatePopulation(pop)

	best := &Result{Fitness: -1}
	s.trackBest(best, pop, fits)
	s.report(0, "init", best.Fitness)
	if best.Fitness >= s.params.SuccessFitness {
		best.Solved = true
		return best
	}

	for gen := 1; gen <= s.params.MaxGenerations; gen++ {
		best.Generations = gen

		pop = s.Breed(pop, fits)
		fits = s.EvaluatePopulation(pop)
		s.trackBest(best, pop, fits)
		s.report(gen, "crossover", best.Fitness)
		if maxFitness(fits) >= s.params.PromisingFitness {
			best.Solved = true
			return best
		}

		s.Mutate(pop, fits)
		fits = s.EvaluatePopulation(pop)
		s.trackBest(best, pop, fits)
		s.report(gen, "mutation", best.Fitness)
		if maxFitness(fits) >= s.params.SuccessFitness {
			best.Solved = true
			return best
		}
	}

	return best
}

// trackBest keeps a deep copy of the fittest individual seen so far;
// later generations mutate population members in place.
func (s *Scheduler) trackBest(best *Result, pop domain.Population, fits []float64) {
	idx := maxIndex(fits)
	if idx >= 0 && fits[idx] > best.Fitness {
		best.Fitness = fits[idx]
		best.Best = pop[idx].Clone()
	}
}

func maxIndex(fits []float64) int {
	idx := -1
	for i, f := range fits {
		if idx < 0 || f > fits[idx] {
			idx = i
		}
	}
	return idx
}

func maxFitness(fits []float64) float64 {
	idx := maxIndex(fits)
	if idx < 0 {
		return 0
	}
	return fits[idx]
}

// weightedPick returns an index drawn proportionally to weights. Entries
// with non-positive weight are never picked; if every weight is
// non-positive the draw is uniform.
func weightedPick(rng *rand.Rand, weights []int) int {
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return rng.Intn(len(weights))
	}
	r := rng.Intn(total)
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if r < w {
			return i
		}
		r -= w
	}
	return len(weights) - 1
}
