package scheduler

import (
	"github.com/ftis-dev/lab-timetable/backend/internal/domain"
)

func concatClone(parts ...[]*domain.Gene) *domain.Individual {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	chrom := make([]*domain.Gene, 0, n)
	for _, p := range parts {
		for _, g := range p {
			chrom = append(chrom, g.Clone())
		}
	}
	return &domain.Individual{Chromosome: chrom}
}

// cxOnePoint cuts both chromosomes at one random index and swaps the
// suffixes.
func (s *Scheduler) cxOnePoint(a, b *domain.Individual) (*domain.Individual, *domain.Individual) {
	l := min(len(a.Chromosome), len(b.Chromosome))
	if l < 2 {
		return a.Clone(), b.Clone()
	}
	pt := 1 + s.rng.Intn(l-1)
	c1 := concatClone(a.Chromosome[:pt], b.Chromosome[pt:])
	c2 := concatClone(b.Chromosome[:pt], a.Chromosome[pt:])
	return c1, c2
}

// cxTwoPoint swaps the middle segment between two cut indices.
func (s *Scheduler) cxTwoPoint(a, b *domain.Individual) (*domain.Individual, *domain.Individual) {
	l := min(len(a.Chromosome), len(b.Chromosome))
	if l < 3 {
		return s.cxOnePoint(a, b)
	}
	i := 1 + s.rng.Intn(l-1)
	j := 1 + s.rng.Intn(l-1)
	for j == i {
		j = 1 + s.rng.Intn(l-1)
	}
	if i > j {
		i, j = j, i
	}
	c1 := concatClone(a.Chromosome[:i], b.Chromosome[i:j], a.Chromosome[j:])
	c2 := concatClone(b.Chromosome[:i], a.Chromosome[i:j], b.Chromosome[j:])
	return c1, c2
}

// cxUniformGene flips a coin per gene index to decide which parent
// contributes that gene to each child.
func (s *Scheduler) cxUniformGene(a, b *domain.Individual) (*domain.Individual, *domain.Individual) {
	l := min(len(a.Chromosome), len(b.Chromosome))
	g1 := make([]*domain.Gene, 0, len(a.Chromosome))
	g2 := make([]*domain.Gene, 0, len(b.Chromosome))
	for k := 0; k < l; k++ {
		if s.rng.Float64() < 0.5 {
			g1 = append(g1, a.Chromosome[k].Clone())
			g2 = append(g2, b.Chromosome[k].Clone())
		} else {
			g1 = append(g1, b.Chromosome[k].Clone())
			g2 = append(g2, a.Chromosome[k].Clone())
		}
	}
	for _, g := range a.Chromosome[l:] {
		g1 = append(g1, g.Clone())
	}
	for _, g := range b.Chromosome[l:] {
		g2 = append(g2, g.Clone())
	}
	return &domain.Individual{Chromosome: g1}, &domain.Individual{Chromosome: g2}
}

// mixGene keeps one parent's subject/assistant/room-candidate identity
// and takes only the scheduling slot from an independently chosen
// parent, so slots migrate between chromosomes without breaking gene
// identity.
func (s *Scheduler) mixGene(ga, gb *domain.Gene) *domain.Gene {
	base, sched := ga, gb
	if s.rng.Float64() < 0.5 {
		base = gb
	}
	if s.rng.Float64() < 0.5 {
		sched = ga
	}
	return base.WithSchedule(sched.Day, sched.StartTime, sched.EndTime, sched.RoomID)
}

// cxUniformSchedule recombines per gene index on the scheduling fields
// only (day, start, end, room).
func (s *Scheduler) cxUniformSchedule(a, b *domain.Individual) (*domain.Individual, *domain.Individual) {
	l := min(len(a.Chromosome), len(b.Chromosome))
	g1 := make([]*domain.Gene, 0, len(a.Chromosome))
	g2 := make([]*domain.Gene, 0, len(b.Chromosome))
	for k := 0; k < l; k++ {
		if s.rng.Float64() < 0.5 {
			g1 = append(g1, s.mixGene(a.Chromosome[k], b.Chromosome[k]))
			g2 = append(g2, s.mixGene(b.Chromosome[k], a.Chromosome[k]))
		} else {
			g1 = append(g1, s.mixGene(b.Chromosome[k], a.Chromosome[k]))
			g2 = append(g2, s.mixGene(a.Chromosome[k], b.Chromosome[k]))
		}
	}
	for _, g := range a.Chromosome[l:] {
		g1 = append(g1, g.Clone())
	}
	for _, g := range b.Chromosome[l:] {
		g2 = append(g2, g.Clone())
	}
	return &domain.Individual{Chromosome: g1}, &domain.Individual{Chromosome: g2}
}

type crossoverFunc func(a, b *domain.Individual) (*domain.Individual, *domain.Individual)

func (s *Scheduler) pickCrossover() crossoverFunc {
	ops := []crossoverFunc{s.cxOnePoint, s.cxTwoPoint, s.cxUniformGene, s.cxUniformSchedule}
	w := s.params.Crossover
	return ops[weightedPick(s.rng, []int{w.OnePoint, w.TwoPoint, w.UniformGene, w.UniformSchedule})]
}

// Breed produces the next generation: elites carried unmodified past the
// genetic operators, parents drawn by the configured selection strategy,
// rate-gated mating with a weighted-random operator per pair, and a
// repair pass over the whole new generation to bound constraint drift.
func (s *Scheduler) Breed(pop domain.Population, fits []float64) domain.Population {
	n := len(pop)
	if n == 0 {
		return pop
	}

	ranked := rankByFitness(fits)
	eliteCount := min(s.params.EliteCount, n)
	elites := make([]*domain.Individual, eliteCount)
	for i := 0; i < eliteCount; i++ {
		elites[i] = pop[ranked[i]].Clone()
	}

	parents := s.selectParents(pop, fits, n-eliteCount)
	s.rng.Shuffle(len(parents), func(i, j int) {
		parents[i], parents[j] = parents[j], parents[i]
	})

	children := make([]*domain.Individual, 0, len(parents))
	for i := 0; i < len(parents); i += 2 {
		if i+1 >= len(parents) {
			// Odd leftover passes through untouched.
			children = append(children, parents[i])
			break
		}
		p1, p2 := parents[i], parents[i+1]

		if s.rng.Float64() >= s.params.CrossoverRate {
			children = append(children, p1, p2)
			continue
		}

		c1, c2 := s.pickCrossover()(p1, p2)
		children = append(children, c1, c2)
	}

	next := make(domain.Population, 0, n)
	next = append(next, elites...)
	next = append(next, children...)
	if len(next) > n {
		next = next[:n]
	}
	pool := append(append([]*domain.Individual{}, elites...), parents...)
	for len(next) < n {
		next = append(next, pool[s.rng.Intn(len(pool))].Clone())
	}

	for _, ind := range next {
		s.Repair(ind)
	}
	return next
}
