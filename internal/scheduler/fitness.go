package scheduler

import (
	"container/heap"
	"runtime"
	"sort"
	"sync"

	"github.com/ftis-dev/lab-timetable/backend/internal/domain"
)

// endHeap is a min-heap of interval end times, the active set of the
// pair-counting sweep.
type endHeap []int

func (h endHeap) Len() int            { return len(h) }
func (h endHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h endHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *endHeap) Push(x any)         { *h = append(*h, x.(int)) }
func (h *endHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// countOverlapPairs returns the exact number of unordered interval pairs
// that overlap under half-open semantics. Sort by start, keep the active
// end times in a min-heap; every end still in the heap when an interval
// begins overlaps it.
func countOverlapPairs(intervals []Window) int {
	if len(intervals) < 2 {
		return 0
	}
	sorted := make([]Window, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	active := &endHeap{}
	pairs := 0
	for _, iv := range sorted {
		for active.Len() > 0 && (*active)[0] <= iv.Start {
			heap.Pop(active)
		}
		pairs += active.Len()
		heap.Push(active, iv.End)
	}
	return pairs
}

type dayRoomKey struct {
	day  int32
	room int64
}

type dayLabelKey struct {
	day   int32
	label string
}

// Fitness scores one individual in (0, 1], higher is better. Pure: no
// engine state is read apart from the penalty weights, so concurrent
// calls on distinct individuals are safe.
func (s *Scheduler) Fitness(ind *domain.Individual) float64 {
	byDayRoom := make(map[dayRoomKey][]Window)
	byDayGroup := make(map[dayLabelKey][]Window)
	byDayAsst := make(map[dayLabelKey][]Window)

	for _, g := range ind.Chromosome {
		iv := Window{Start: g.StartTime, End: g.EndTime}
		byDayRoom[dayRoomKey{g.Day, g.RoomID}] = append(byDayRoom[dayRoomKey{g.Day, g.RoomID}], iv)

		if norm := domain.NormalizeGroup(g.Group); norm != "" {
			k := dayLabelKey{g.Day, norm}
			byDayGroup[k] = append(byDayGroup[k], iv)
		}

		seen := make(map[string]struct{}, len(g.Assistants))
		for _, a := range g.Assistants {
			if a == nil || a.ID == "" {
				continue
			}
			if _, dup := seen[a.ID]; dup {
				continue
			}
			seen[a.ID] = struct{}{}
			k := dayLabelKey{g.Day, a.ID}
			byDayAsst[k] = append(byDayAsst[k], iv)
		}
	}

	roomPairs, groupPairs, asstPairs := 0, 0, 0
	for _, ivs := range byDayRoom {
		roomPairs += countOverlapPairs(ivs)
	}
	for _, ivs := range byDayGroup {
		groupPairs += countOverlapPairs(ivs)
	}
	for _, ivs := range byDayAsst {
		asstPairs += countOverlapPairs(ivs)
	}

	penalty := s.params.RoomWeight*float64(roomPairs) +
		s.params.GroupWeight*float64(groupPairs) +
		s.params.AssistantWeight*float64(asstPairs)
	return 1.0 / (1.0 + penalty)
}

// EvaluatePopulation scores every individual. Each chromosome is
// exclusively owned during its own scoring and the catalogs are
// read-only, so the passes run across worker goroutines.
func (s *Scheduler) EvaluatePopulation(pop domain.Population) []float64 {
	fits := make([]float64, len(pop))

	workers := min(runtime.NumCPU(), len(pop))
	if workers <= 1 {
		for i, ind := range pop {
			fits[i] = s.Fitness(ind)
		}
		return fits
	}

	var wg sync.WaitGroup
	jobs := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				fits[i] = s.Fitness(pop[i])
			}
		}()
	}
	for i := range pop {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return fits
}
