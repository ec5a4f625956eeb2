package utils

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/ftis-dev/lab-timetable/backend/internal/domain"
)

var subjectNames = []string{
	"Praktikum Basis Data",
	"Praktikum Jaringan Komputer",
	"Praktikum Sistem Operasi",
	"Praktikum Struktur Data",
	"Praktikum Pemrograman Web",
	"Praktikum Rekayasa Perangkat Lunak",
	"Praktikum Kecerdasan Buatan",
	"Praktikum Mikrobiologi",
	"Praktikum Kimia Dasar",
	"Praktikum Fisika Dasar",
	"Praktikum Elektronika",
	"Praktikum Sistem Digital",
}

var sectionCodes = []string{"A", "B", "C", "D"}

// GenerateRandomCourse builds one plausible lab-course catalog record.
func GenerateRandomCourse(rng *rand.Rand) *domain.Course {
	name := subjectNames[rng.Intn(len(subjectNames))]
	return &domain.Course{
		SubjectID:   fmt.Sprintf("MK%04d", 1000+rng.Intn(9000)),
		SubjectName: name,
		Semester:    1 + rng.Intn(8),
		Enrollment:  20 + rng.Intn(41),
		SKS:         1 + rng.Intn(3),
		SectionCode: sectionCodes[rng.Intn(len(sectionCodes))],
	}
}

func GenerateRandomCourses(rng *rand.Rand, n int) []*domain.Course {
	courses := make([]*domain.Course, n)
	for i := range courses {
		courses[i] = GenerateRandomCourse(rng)
	}
	return courses
}

// GenerateRandomRoom builds one lab room with a capacity in [20, 30].
func GenerateRandomRoom(rng *rand.Rand, id int64) *domain.Room {
	return &domain.Room{
		ID:       id,
		Name:     fmt.Sprintf("Ruang %d", id),
		Capacity: 20 + rng.Intn(11),
	}
}

func GenerateRandomRooms(rng *rand.Rand, n int) []*domain.Room {
	rooms := make([]*domain.Room, n)
	for i := range rooms {
		rooms[i] = GenerateRandomRoom(rng, int64(i+1))
	}
	return rooms
}

// BusyScheduleOptions tunes the random assistant timetable generator.
type BusyScheduleOptions struct {
	TargetSKS  int
	Days       []int32
	DayStart   int
	DayEnd     int
	// Gap keeps classes from being packed back to back.
	Gap        int
	SKSOptions []int
}

// DefaultBusyScheduleOptions matches the original generator: days
// Senin..Sabtu, 07:00-18:00, a 10-minute gap between classes and SKS
// drawn from {1,2,2,3,3}.
func DefaultBusyScheduleOptions(rng *rand.Rand) BusyScheduleOptions {
	return BusyScheduleOptions{
		TargetSKS:  20 + rng.Intn(5),
		Days:       []int32{1, 2, 3, 4, 5, 6},
		DayStart:   7 * 3600,
		DayEnd:     18 * 3600,
		Gap:        10 * 60,
		SKSOptions: []int{1, 2, 2, 3, 3},
	}
}

const (
	busyMaxAttempts    = 5000
	busyPlacementTries = 100
)

// GenerateBusySchedule produces a random weekly busy timetable with no
// same-day overlaps and a total load of at most TargetSKS credit units.
// Entries come back sorted by (day, start).
func GenerateBusySchedule(rng *rand.Rand, opts BusyScheduleOptions) []domain.BusyInterval {
	var entries []domain.BusyInterval
	byDay := make(map[int32][][2]int, len(opts.Days))

	canPlace := func(day int32, start, end int) bool {
		s := max(opts.DayStart, start-opts.Gap)
		e := min(opts.DayEnd, end+opts.Gap)
		for _, iv := range byDay[day] {
			if max(s, iv[0]) < min(e, iv[1]) {
				return false
			}
		}
		return true
	}

	totalSKS := 0
	for attempts := 0; totalSKS < opts.TargetSKS && attempts < busyMaxAttempts; attempts++ {
		choices := make([]int, 0, len(opts.SKSOptions))
		for _, k := range opts.SKSOptions {
			if totalSKS+k <= opts.TargetSKS {
				choices = append(choices, k)
			}
		}
		if len(choices) == 0 {
			break
		}
		sks := choices[rng.Intn(len(choices))]
		dur := sks * 50 * 60

		day := opts.Days[rng.Intn(len(opts.Days))]
		latest := opts.DayEnd - dur
		if latest <= opts.DayStart {
			continue
		}

		for try := 0; try < busyPlacementTries; try++ {
			start := opts.DayStart + rng.Intn(latest-opts.DayStart+1)
			end := start + dur
			if !canPlace(day, start, end) {
				continue
			}
			byDay[day] = append(byDay[day], [2]int{start, end})
			entries = append(entries, domain.BusyInterval{
				DayName: domain.DayNames[day],
				Day:     day,
				Start:   start,
				End:     end,
				SKS:     sks,
			})
			totalSKS += sks
			break
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Day != entries[j].Day {
			return entries[i].Day < entries[j].Day
		}
		return entries[i].Start < entries[j].Start
	})
	return entries
}

// GenerateRandomAssistants builds n assistants with fresh identities and
// random busy timetables.
func GenerateRandomAssistants(rng *rand.Rand, n int) []*domain.AssistantAvailability {
	assistants := make([]*domain.AssistantAvailability, n)
	for i := range assistants {
		assistants[i] = &domain.AssistantAvailability{
			ID:   strings.ReplaceAll(uuid.NewString(), "-", ""),
			Busy: GenerateBusySchedule(rng, DefaultBusyScheduleOptions(rng)),
		}
	}
	return assistants
}
