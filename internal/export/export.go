// Package export flattens a winning timetable into row-per-gene records
// and writes them out without ever clobbering an earlier export.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/ftis-dev/lab-timetable/backend/internal/domain"
)

// SecondsToHMS formats seconds-from-midnight as HH:MM:SS.
func SecondsToHMS(sec int) string {
	h := sec / 3600
	m := (sec % 3600) / 60
	s := sec % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// Project flattens an individual into one entry per gene.
func Project(ind *domain.Individual) []domain.TimetableEntry {
	entries := make([]domain.TimetableEntry, 0, len(ind.Chromosome))
	for _, g := range ind.Chromosome {
		ids := make([]string, 0, len(g.Assistants))
		for _, a := range g.Assistants {
			if a != nil {
				ids = append(ids, a.ID)
			}
		}
		entries = append(entries, domain.TimetableEntry{
			GeneID:       g.ID,
			SubjectID:    g.SubjectID,
			SubjectName:  g.SubjectName,
			Semester:     g.Semester,
			SKS:          g.SKS,
			Capacity:     g.Capacity,
			Group:        g.Group,
			DayName:      g.DayName,
			Day:          g.Day,
			StartTime:    g.StartTime,
			EndTime:      g.EndTime,
			RoomID:       g.RoomID,
			AssistantIDs: ids,
		})
	}
	return entries
}

// nextPath picks "<name>_<n+1>.csv" where n is the highest index already
// present in dir, so repeated exports line up side by side.
func nextPath(dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(name) + `_(\d+)\.csv$`)
	next := 1

	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		m := pattern.FindStringSubmatch(f.Name())
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n >= next {
			next = n + 1
		}
	}

	return filepath.Join(dir, fmt.Sprintf("%s_%d.csv", name, next)), nil
}

var csvHeader = []string{
	"subject_id", "group", "day_name", "start_converted", "end_converted", "room_id",
	"gene_id", "subject_name", "semester", "sks", "capacity", "assistants", "day", "start_time", "end_time",
}

// WriteCSV saves the entries under dir as "<name>_<n>.csv" and returns
// the path written.
func WriteCSV(dir, name string, entries []domain.TimetableEntry) (string, error) {
	path, err := nextPath(dir, name)
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, e := range entries {
		record := []string{
			e.SubjectID,
			e.Group,
			e.DayName,
			SecondsToHMS(e.StartTime),
			SecondsToHMS(e.EndTime),
			strconv.FormatInt(e.RoomID, 10),
			e.GeneID,
			e.SubjectName,
			strconv.Itoa(e.Semester),
			strconv.Itoa(e.SKS),
			strconv.Itoa(e.Capacity),
			strings.Join(e.AssistantIDs, " "),
			strconv.Itoa(int(e.Day)),
			strconv.Itoa(e.StartTime),
			strconv.Itoa(e.EndTime),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return path, nil
}
