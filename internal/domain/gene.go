package domain

import (
	"regexp"
	"strings"
)

// DayNames maps a working-day index (1=Senin .. 7=Minggu) to its name.
var DayNames = map[int32]string{
	1: "Senin",
	2: "Selasa",
	3: "Rabu",
	4: "Kamis",
	5: "Jumat",
	6: "Sabtu",
	7: "Minggu",
}

// Gene is one scheduled session: a subject section placed in a room at a
// day/time slot. Assistants and PreferredRooms are shared, read-only
// references; scheduling fields are replaced via WithSchedule so that no
// instance is mutated across owners.
type Gene struct {
	ID          string `json:"geneID"`
	SubjectName string `json:"subjectName"`
	SubjectID   string `json:"subjectID"`
	Semester    int    `json:"semester"`
	SKS         int    `json:"sks"`
	// Capacity is the number of enrolled students handled by this
	// session, which may be a split share of the course's enrollment.
	Capacity       int                      `json:"capacity"`
	Assistants     []*AssistantAvailability `json:"assistants"`
	PreferredRooms []*Room                  `json:"preferredRooms"`
	DayName        string                   `json:"dayName"`
	Day            int32                    `json:"day"`
	StartTime      int                      `json:"startTime"`
	EndTime        int                      `json:"endTime"`
	RoomID         int64                    `json:"roomID"`
	Group          string                   `json:"group"`
}

// Duration returns the session length in seconds.
func (g *Gene) Duration() int {
	return g.EndTime - g.StartTime
}

// Key identifies a gene for deduplication: one section of one subject.
func (g *Gene) Key() GeneKey {
	return GeneKey{SubjectID: g.SubjectID, Group: g.Group}
}

type GeneKey struct {
	SubjectID string
	Group     string
}

// Clone returns an independent copy of the gene. The assistant and
// preferred-room catalogs stay shared; they are immutable.
func (g *Gene) Clone() *Gene {
	cp := *g
	return &cp
}

// WithSchedule returns a copy of the gene carrying new scheduling fields,
// identity token preserved.
func (g *Gene) WithSchedule(day int32, start, end int, roomID int64) *Gene {
	cp := *g
	cp.Day = day
	cp.DayName = DayNames[day]
	cp.StartTime = start
	cp.EndTime = end
	cp.RoomID = roomID
	return &cp
}

var groupCleaner = regexp.MustCompile(`[^a-z0-9_\-]+`)

// NormalizeGroup canonicalizes a group/section label for conflict
// bucketing: lowercase, trimmed, stripped of everything outside
// [a-z0-9_-]. Empty labels are excluded from group conflicts.
func NormalizeGroup(group string) string {
	group = strings.ToLower(strings.TrimSpace(group))
	return groupCleaner.ReplaceAllString(group, "")
}

// Individual is one complete candidate timetable. Gene order carries no
// meaning beyond being the crossover cut axis.
type Individual struct {
	Chromosome []*Gene `json:"chromosome"`
}

// Clone deep-copies the individual so offspring never share genes with
// their parents.
func (ind *Individual) Clone() *Individual {
	genes := make([]*Gene, len(ind.Chromosome))
	for i, g := range ind.Chromosome {
		genes[i] = g.Clone()
	}
	return &Individual{Chromosome: genes}
}

// Population is the ordered set of individuals under evolution.
type Population []*Individual
