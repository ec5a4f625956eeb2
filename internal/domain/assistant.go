package domain

// BusyInterval is one slot during which an assistant is unavailable for
// new duties. Times are seconds from midnight, half-open [Start, End).
type BusyInterval struct {
	DayName string `json:"dayName"`
	Day     int32  `json:"day"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	SKS     int    `json:"sks"`
}

// AssistantAvailability is an assistant identity plus its busy timetable.
// Immutable after creation; a gene references 0..N assistants and an
// assistant may appear in many genes, so instances are always shared by
// reference.
type AssistantAvailability struct {
	ID   string         `json:"id"`
	Busy []BusyInterval `json:"busy"`
}

// IsFree reports whether the assistant has no busy interval overlapping
// [start, end) on the given day.
func (a *AssistantAvailability) IsFree(day int32, start, end int) bool {
	for _, b := range a.Busy {
		if b.Day != day {
			continue
		}
		if max(b.Start, start) < min(b.End, end) {
			return false
		}
	}
	return true
}
