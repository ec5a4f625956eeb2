package scheduler

// overlap reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect. Intervals that only share a boundary point do not overlap.
func overlap(s1, e1, s2, e2 int) bool {
	return max(s1, s2) < min(e1, e2)
}

// snap floors a time onto the sampling grid.
func (p *Parameters) snap(x int) int {
	return (x / p.Grid) * p.Grid
}

func (p *Parameters) withinBounds(start, end int) bool {
	return start >= p.DayOpen && end <= p.DayClose && start < end
}

// allowedInDay reports whether [start,end) lies inside the working window
// and clear of every forbidden window registered for the day.
func (p *Parameters) allowedInDay(day int32, start, end int) bool {
	if !p.withinBounds(start, end) {
		return false
	}
	for _, fw := range p.ForbiddenWindows[day] {
		if overlap(start, end, fw.Start, fw.End) {
			return false
		}
	}
	return true
}

// legalWindows returns the working window of a day split around its
// forbidden windows. Windows are returned in time order.
func (p *Parameters) legalWindows(day int32) []Window {
	windows := []Window{{Start: p.DayOpen, End: p.DayClose}}
	for _, fw := range p.ForbiddenWindows[day] {
		next := make([]Window, 0, len(windows)+1)
		for _, w := range windows {
			if !overlap(w.Start, w.End, fw.Start, fw.End) {
				next = append(next, w)
				continue
			}
			if w.Start < fw.Start {
				next = append(next, Window{Start: w.Start, End: fw.Start})
			}
			if fw.End < w.End {
				next = append(next, Window{Start: fw.End, End: w.End})
			}
		}
		windows = next
	}
	return windows
}

// clampTime pushes a start time into the working window, preserving the
// session duration.
func (p *Parameters) clampTime(start, dur int) (int, int) {
	s := max(p.DayOpen, min(start, p.DayClose-dur))
	return s, s + dur
}
