package scheduler

import (
	"github.com/ftis-dev/lab-timetable/backend/internal/domain"
)

// sksSeconds is the general 50-minutes-per-credit-unit rule, used as the
// duration fallback when a gene carries a degenerate interval.
func sksSeconds(sks int) int {
	return sks * 50 * 60
}

func (s *Scheduler) geneDuration(g *domain.Gene) int {
	if d := g.Duration(); d > 0 {
		return d
	}
	return sksSeconds(g.SKS)
}

// availableAssistants counts the distinct assistants of a gene that are
// free over [start, end) on the given day.
func (s *Scheduler) availableAssistants(g *domain.Gene, day int32, start, end int) int {
	seen := make(map[string]struct{}, len(g.Assistants))
	n := 0
	for _, a := range g.Assistants {
		if a == nil {
			continue
		}
		if _, dup := seen[a.ID]; dup {
			continue
		}
		seen[a.ID] = struct{}{}
		if a.IsFree(day, start, end) {
			n++
		}
	}
	return n
}

// opTimeShift moves the slot by one or two grid steps in either
// direction, clamped into the working window, duration preserved.
func (s *Scheduler) opTimeShift(g *domain.Gene) *domain.Gene {
	dur := s.geneDuration(g)
	k := 1 + s.rng.Intn(2)
	delta := k * s.params.Grid
	if s.rng.Float64() < 0.5 {
		delta = -delta
	}
	start, end := s.params.clampTime(g.StartTime+delta, dur)
	return g.WithSchedule(g.Day, start, end, g.RoomID)
}

// opDaySwap moves the session to a different working day, clamping the
// start into the day bounds.
func (s *Scheduler) opDaySwap(g *domain.Gene) *domain.Gene {
	others := make([]int32, 0, len(s.params.Days))
	for _, d := range s.params.Days {
		if d != g.Day {
			others = append(others, d)
		}
	}
	if len(others) == 0 {
		return g
	}
	day := others[s.rng.Intn(len(others))]
	start, end := s.params.clampTime(g.StartTime, s.geneDuration(g))
	return g.WithSchedule(day, start, end, g.RoomID)
}

// opRoomPreferred reassigns the session to one of its candidate rooms
// with sufficient capacity.
func (s *Scheduler) opRoomPreferred(g *domain.Gene) *domain.Gene {
	fitting := make([]*domain.Room, 0, len(g.PreferredRooms))
	for _, r := range g.PreferredRooms {
		if r.ID != g.RoomID && r.FitsCapacity(g.Capacity) {
			fitting = append(fitting, r)
		}
	}
	if len(fitting) == 0 {
		return g
	}
	room := fitting[s.rng.Intn(len(fitting))]
	return g.WithSchedule(g.Day, g.StartTime, g.EndTime, room.ID)
}

// opFitAssistants is a bounded local search for a (day, start) slot
// where at least AssistantTarget distinct assistants are simultaneously
// free: the current slot's grid neighborhood, a few random grid samples
// and a few alternate days. The best candidate found within the budget
// wins; the search stops early once the target is met.
func (s *Scheduler) opFitAssistants(g *domain.Gene) *domain.Gene {
	dur := s.geneDuration(g)
	target := s.params.AssistantTarget

	bestAvail := s.availableAssistants(g, g.Day, g.StartTime, g.EndTime)
	if bestAvail >= target {
		return g
	}
	bestDay, bestStart := g.Day, g.StartTime

	candDays := []int32{g.Day}
	others := make([]int32, 0, len(s.params.Days))
	for _, d := range s.params.Days {
		if d != g.Day {
			others = append(others, d)
		}
	}
	s.rng.Shuffle(len(others), func(i, j int) { others[i], others[j] = others[j], others[i] })
	candDays = append(candDays, others[:min(3, len(others))]...)

	latest := s.params.DayClose - dur
	timeSet := make(map[int]struct{})
	for i := -3; i <= 3; i++ {
		t := g.StartTime + i*s.params.Grid
		if t >= s.params.DayOpen && t <= latest {
			timeSet[t] = struct{}{}
		}
	}
	var grid []int
	for t := s.params.DayOpen; t <= latest; t += s.params.Grid {
		grid = append(grid, t)
	}
	s.rng.Shuffle(len(grid), func(i, j int) { grid[i], grid[j] = grid[j], grid[i] })
	for _, t := range grid[:min(5, len(grid))] {
		timeSet[t] = struct{}{}
	}
	candTimes := make([]int, 0, len(timeSet))
	for t := range timeSet {
		candTimes = append(candTimes, t)
	}
	s.rng.Shuffle(len(candTimes), func(i, j int) { candTimes[i], candTimes[j] = candTimes[j], candTimes[i] })
	s.rng.Shuffle(len(candDays), func(i, j int) { candDays[i], candDays[j] = candDays[j], candDays[i] })

	tried := 0
	for _, d := range candDays {
		for _, t := range candTimes {
			tried++
			start, end := s.params.clampTime(t, dur)
			avail := s.availableAssistants(g, d, start, end)
			if avail > bestAvail {
				bestAvail, bestDay, bestStart = avail, d, start
				if avail >= target {
					return g.WithSchedule(d, start, end, g.RoomID)
				}
			}
			if tried > s.params.AssistantSearchBudget {
				break
			}
		}
		if tried > s.params.AssistantSearchBudget {
			break
		}
	}

	if bestDay != g.Day || bestStart != g.StartTime {
		return g.WithSchedule(bestDay, bestStart, bestStart+dur, g.RoomID)
	}
	return g
}

// opSwapTwoGenes exchanges the scheduling slots of two random genes,
// subject identities untouched. An escape move against local minima.
func (s *Scheduler) opSwapTwoGenes(ind *domain.Individual) {
	if len(ind.Chromosome) < 2 {
		return
	}
	i := s.rng.Intn(len(ind.Chromosome))
	j := s.rng.Intn(len(ind.Chromosome))
	for j == i {
		j = s.rng.Intn(len(ind.Chromosome))
	}
	g1, g2 := ind.Chromosome[i], ind.Chromosome[j]
	ind.Chromosome[i] = g1.WithSchedule(g2.Day, g2.StartTime, g2.EndTime, g2.RoomID)
	ind.Chromosome[j] = g2.WithSchedule(g1.Day, g1.StartTime, g1.EndTime, g1.RoomID)
}

// opRegenerate discards the gene and draws a fresh one from the seeder.
func (s *Scheduler) opRegenerate() *domain.Gene {
	genes := s.GenerateGene()
	return genes[s.rng.Intn(len(genes))]
}

const (
	opIdxTimeShift = iota
	opIdxDaySwap
	opIdxRoomPreferred
	opIdxFitAssistants
	opIdxSwapTwoGenes
	opIdxRegenerate
)

// Mutate perturbs the population in place: each non-elite individual
// with probability MutationRate, each of its genes with probability
// GeneMutationRate, operator chosen by the configured weight table.
// Every mutated individual goes back through repair.
func (s *Scheduler) Mutate(pop domain.Population, fits []float64) {
	ranked := rankByFitness(fits)
	elites := make(map[int]struct{}, s.params.EliteCount)
	for _, idx := range ranked[:min(s.params.EliteCount, len(ranked))] {
		elites[idx] = struct{}{}
	}

	w := s.params.Mutation
	weights := []int{w.TimeShift, w.DaySwap, w.RoomPreferred, w.FitAssistants, w.SwapTwoGenes, w.Regenerate}

	for i, ind := range pop {
		if _, elite := elites[i]; elite {
			continue
		}
		if s.rng.Float64() >= s.params.MutationRate {
			continue
		}

		mutated := false
		for j := range ind.Chromosome {
			if s.rng.Float64() >= s.params.GeneMutationRate {
				continue
			}
			mutated = true

			switch weightedPick(s.rng, weights) {
			case opIdxTimeShift:
				ind.Chromosome[j] = s.opTimeShift(ind.Chromosome[j])
			case opIdxDaySwap:
				ind.Chromosome[j] = s.opDaySwap(ind.Chromosome[j])
			case opIdxRoomPreferred:
				ind.Chromosome[j] = s.opRoomPreferred(ind.Chromosome[j])
			case opIdxFitAssistants:
				ind.Chromosome[j] = s.opFitAssistants(ind.Chromosome[j])
			case opIdxSwapTwoGenes:
				s.opSwapTwoGenes(ind)
			case opIdxRegenerate:
				ind.Chromosome[j] = s.opRegenerate()
			}
		}

		if mutated {
			s.Repair(ind)
		}
	}
}
