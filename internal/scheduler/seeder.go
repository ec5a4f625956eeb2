package scheduler

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ftis-dev/lab-timetable/backend/internal/domain"
)

func newToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// sessionDuration maps credit units onto the coarse session buckets used
// at seeding time: one credit unit gets a 2-hour slot, anything above a
// 3-hour slot. This is deliberately coarser than the 50-minutes-per-SKS
// rule the assistant timetables use.
func sessionDuration(sks int) int {
	if sks == 1 {
		return 120 * 60
	}
	return 180 * 60
}

// splitByRooms divides an enrollment into the fewest near-equal parts
// that each fit maxCap. The remainder lands on the last part.
func splitByRooms(capacity, maxCap int) []int {
	part := 1
	for capacity > part*maxCap {
		part++
	}
	parts := make([]int, part)
	for i := range parts {
		parts[i] = capacity / part
	}
	parts[part-1] += capacity % part
	return parts
}

// sampleStartForDay draws a legal grid-aligned (start, end) slot for a
// session of the given duration. It samples inside the day's legal
// sub-windows up to 80 times, then falls back to the first legal
// window's start. ok is false when no legal window can hold the session
// at all.
func (s *Scheduler) sampleStartForDay(day int32, dur int) (start, end int, ok bool) {
	candidates := make([]Window, 0, 2)
	for _, w := range s.params.legalWindows(day) {
		if w.End-w.Start >= dur {
			candidates = append(candidates, w)
		}
	}
	if len(candidates) == 0 {
		return 0, 0, false
	}

	for i := 0; i < 80; i++ {
		w := candidates[s.rng.Intn(len(candidates))]
		latest := w.End - dur
		start = s.params.snap(w.Start + s.rng.Intn(latest-w.Start+1))
		end = start + dur
		if s.params.allowedInDay(day, start, end) {
			return start, end, true
		}
	}

	start = s.params.snap(candidates[0].Start)
	end = start + dur
	if s.params.allowedInDay(day, start, end) {
		return start, end, true
	}
	return 0, 0, false
}

// GenerateGene builds the scheduled sessions for one randomly drawn
// course. When the enrollment exceeds the chosen room's capacity the
// course is split across sibling sections sharing subject identity,
// assistants and preferred rooms but carrying distinct group suffixes.
func (s *Scheduler) GenerateGene() []*domain.Gene {
	course := s.courses[s.rng.Intn(len(s.courses))]
	dur := sessionDuration(course.SKS)

	assistants := s.assistants(s.rng, 2+s.rng.Intn(4))

	nPref := 1 + s.rng.Intn(min(4, len(s.rooms)))
	preferred := s.sampleRooms(nPref)
	chosen := preferred[s.rng.Intn(len(preferred))]

	parts := splitByRooms(course.Enrollment, chosen.Capacity)
	genes := make([]*domain.Gene, 0, len(parts))

	for k, capacity := range parts {
		day := s.params.Days[s.rng.Intn(len(s.params.Days))]

		start, end, ok := s.sampleStartForDay(day, dur)
		if !ok {
			// No legal window holds the session; park it at day open
			// and let repair shift it.
			start = s.params.snap(s.params.DayOpen)
			end = start + dur
		}

		genes = append(genes, &domain.Gene{
			ID:             newToken(),
			SubjectName:    course.SubjectName,
			SubjectID:      course.SubjectID,
			Semester:       course.Semester,
			SKS:            course.SKS,
			Capacity:       capacity,
			Assistants:     assistants,
			PreferredRooms: preferred,
			DayName:        domain.DayNames[day],
			Day:            day,
			StartTime:      start,
			EndTime:        end,
			RoomID:         chosen.ID,
			Group:          fmt.Sprintf("%s-%d", course.SectionCode, k+1),
		})
	}
	return genes
}

// sampleRooms draws n distinct rooms from the catalog.
func (s *Scheduler) sampleRooms(n int) []*domain.Room {
	perm := s.rng.Perm(len(s.rooms))
	picked := make([]*domain.Room, n)
	for i := 0; i < n; i++ {
		picked[i] = s.rooms[perm[i]]
	}
	return picked
}

func dedupChromosome(genes []*domain.Gene) []*domain.Gene {
	seen := make(map[domain.GeneKey]struct{}, len(genes))
	out := genes[:0:0]
	for _, g := range genes {
		if _, dup := seen[g.Key()]; dup {
			continue
		}
		seen[g.Key()] = struct{}{}
		out = append(out, g)
	}
	return out
}

// mergeUnique appends to base the extra genes whose (subjectID, group)
// key is not present yet.
func mergeUnique(base, extra []*domain.Gene) []*domain.Gene {
	seen := make(map[domain.GeneKey]struct{}, len(base))
	for _, g := range base {
		seen[g.Key()] = struct{}{}
	}
	for _, g := range extra {
		if _, dup := seen[g.Key()]; dup {
			continue
		}
		seen[g.Key()] = struct{}{}
		base = append(base, g)
	}
	return base
}

const maxBackfillAttempts = 10

// GenerateIndividual assembles one candidate timetable of roughly n
// genes: generate until the chromosome reaches n, dedup by
// (subjectID, group), backfill unique genes for at most
// maxBackfillAttempts batches, then trim a random surplus down to n.
// After exhausted attempts the individual may stay under length; callers
// tolerate variable-length chromosomes.
func (s *Scheduler) GenerateIndividual(n int) *domain.Individual {
	var chrom []*domain.Gene
	for len(chrom) < n {
		chrom = append(chrom, s.GenerateGene()...)
	}
	chrom = dedupChromosome(chrom)

	for attempts := 0; len(chrom) < n && attempts < maxBackfillAttempts; attempts++ {
		var batch []*domain.Gene
		for len(batch) < n-len(chrom) {
			batch = append(batch, s.GenerateGene()...)
		}
		chrom = mergeUnique(chrom, dedupChromosome(batch))
	}

	if surplus := len(chrom) - n; surplus > 0 {
		drop := make(map[int]struct{}, surplus)
		for _, idx := range s.rng.Perm(len(chrom))[:surplus] {
			drop[idx] = struct{}{}
		}
		kept := make([]*domain.Gene, 0, n)
		for i, g := range chrom {
			if _, gone := drop[i]; !gone {
				kept = append(kept, g)
			}
		}
		chrom = kept
	}

	return &domain.Individual{Chromosome: chrom}
}

// GeneratePopulation builds the initial population.
func (s *Scheduler) GeneratePopulation() domain.Population {
	pop := make(domain.Population, s.params.PopulationSize)
	for i := range pop {
		pop[i] = s.GenerateIndividual(s.params.GenesPerIndividual)
	}
	return pop
}
