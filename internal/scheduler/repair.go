package scheduler

import (
	"sort"

	"github.com/ftis-dev/lab-timetable/backend/internal/domain"
)

var roomShiftSteps = []int{1, -1, 2, -2, 3, -3, 4, -4}
var groupShiftSteps = []int{1, -1, 2, -2, 3, -3}

const clampSteps = 40

// Repair restores hard constraints on a chromosome after the genetic
// operators: legal time windows, then room double-bookings, then group
// double-bookings, per day. Best-effort and finite: a conflict without a
// reachable free slot stays in place and is left to selection pressure.
// Only scheduling fields change; identity, subject, capacity and the
// candidate-room list never do. The individual must be exclusively owned
// by the caller since genes are adjusted in place.
func (s *Scheduler) Repair(ind *domain.Individual) {
	byDay := make(map[int32][]*domain.Gene)
	for _, g := range ind.Chromosome {
		byDay[g.Day] = append(byDay[g.Day], g)
	}

	// A slot is free when it is legal for the day and no other gene in
	// this chromosome holds the room at an overlapping time.
	slotFree := func(day int32, roomID int64, start, end int, skip *domain.Gene) bool {
		if !s.params.allowedInDay(day, start, end) {
			return false
		}
		for _, x := range byDay[day] {
			if x == skip {
				continue
			}
			if x.RoomID == roomID && overlap(x.StartTime, x.EndTime, start, end) {
				return false
			}
		}
		return true
	}

	// Days are independent: slotFree only consults genes of the same
	// day, so the processing order across days cannot change the result.
	for day, items := range byDay {
		sort.Slice(items, func(i, j int) bool {
			a, b := items[i], items[j]
			if a.RoomID != b.RoomID {
				return a.RoomID < b.RoomID
			}
			if a.StartTime != b.StartTime {
				return a.StartTime < b.StartTime
			}
			return a.EndTime < b.EndTime
		})

		// 1. Window clamp: reset illegal intervals to day open and walk
		// them forward on the grid until legal or out of steps.
		for _, g := range items {
			if s.params.allowedInDay(g.Day, g.StartTime, g.EndTime) {
				continue
			}
			dur := g.Duration()
			g.StartTime = s.params.snap(s.params.DayOpen)
			g.EndTime = g.StartTime + dur
			for step := 0; step < clampSteps; step++ {
				if s.params.allowedInDay(g.Day, g.StartTime, g.EndTime) {
					break
				}
				g.StartTime += s.params.Grid
				g.EndTime += s.params.Grid
			}
		}

		// 2. Room conflicts: move the later gene to a fitting candidate
		// room first, otherwise shift it on the grid.
		for i := 0; i < len(items); i++ {
			gi := items[i]
			for j := i + 1; j < len(items); j++ {
				gj := items[j]
				if gi.RoomID != gj.RoomID {
					continue
				}
				if !overlap(gi.StartTime, gi.EndTime, gj.StartTime, gj.EndTime) {
					continue
				}

				moved := false
				for _, r := range gj.PreferredRooms {
					if r.ID == gj.RoomID || !r.FitsCapacity(gj.Capacity) {
						continue
					}
					if slotFree(day, r.ID, gj.StartTime, gj.EndTime, gj) {
						gj.RoomID = r.ID
						moved = true
						break
					}
				}
				if moved {
					continue
				}

				for _, mul := range roomShiftSteps {
					s2 := gj.StartTime + mul*s.params.Grid
					e2 := gj.EndTime + mul*s.params.Grid
					if slotFree(day, gj.RoomID, s2, e2, gj) {
						gj.StartTime, gj.EndTime = s2, e2
						break
					}
				}
			}
		}

		// 3. Group conflicts: adjacent overlapping pairs within a
		// normalized section label, shifting the later gene.
		groups := make(map[string][]*domain.Gene)
		for _, g := range items {
			if norm := domain.NormalizeGroup(g.Group); norm != "" {
				groups[norm] = append(groups[norm], g)
			}
		}
		for _, glist := range groups {
			sort.Slice(glist, func(i, j int) bool { return glist[i].StartTime < glist[j].StartTime })
			for i := 0; i+1 < len(glist); i++ {
				a, b := glist[i], glist[i+1]
				if !overlap(a.StartTime, a.EndTime, b.StartTime, b.EndTime) {
					continue
				}
				for _, mul := range groupShiftSteps {
					s2 := b.StartTime + mul*s.params.Grid
					e2 := b.EndTime + mul*s.params.Grid
					if slotFree(b.Day, b.RoomID, s2, e2, b) {
						b.StartTime, b.EndTime = s2, e2
						break
					}
				}
			}
		}
	}
}
