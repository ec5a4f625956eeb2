package export_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ftis-dev/lab-timetable/backend/internal/domain"
	"github.com/ftis-dev/lab-timetable/backend/internal/export"
)

func TestSecondsToHMS(t *testing.T) {
	require.Equal(t, "00:00:00", export.SecondsToHMS(0))
	require.Equal(t, "07:00:00", export.SecondsToHMS(7*3600))
	require.Equal(t, "12:30:00", export.SecondsToHMS(12*3600+30*60))
	require.Equal(t, "09:05:07", export.SecondsToHMS(9*3600+5*60+7))
}

func sampleIndividual() *domain.Individual {
	return &domain.Individual{Chromosome: []*domain.Gene{
		{
			ID:          "g1",
			SubjectID:   "MK1001",
			SubjectName: "Praktikum Basis Data",
			Semester:    3,
			SKS:         1,
			Capacity:    25,
			Group:       "A-1",
			DayName:     "Senin",
			Day:         1,
			StartTime:   8 * 3600,
			EndTime:     10 * 3600,
			RoomID:      1,
			Assistants: []*domain.AssistantAvailability{
				{ID: "asst-1"},
				nil,
				{ID: "asst-2"},
			},
		},
		{
			ID:        "g2",
			SubjectID: "MK1002",
			Group:     "B-1",
			DayName:   "Jumat",
			Day:       5,
			StartTime: 13 * 3600,
			EndTime:   16 * 3600,
			RoomID:    2,
		},
	}}
}

func TestProject(t *testing.T) {
	entries := export.Project(sampleIndividual())
	require.Len(t, entries, 2)

	e := entries[0]
	require.Equal(t, "g1", e.GeneID)
	require.Equal(t, "MK1001", e.SubjectID)
	require.Equal(t, "A-1", e.Group)
	require.Equal(t, int32(1), e.Day)
	require.Equal(t, int64(1), e.RoomID)
	// Nil assistants are dropped.
	require.Equal(t, []string{"asst-1", "asst-2"}, e.AssistantIDs)

	require.Empty(t, entries[1].AssistantIDs)
}

func TestWriteCSVNeverClobbers(t *testing.T) {
	dir := t.TempDir()
	entries := export.Project(sampleIndividual())

	p1, err := export.WriteCSV(dir, "output_schedule", entries)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "output_schedule_1.csv"), p1)

	p2, err := export.WriteCSV(dir, "output_schedule", entries)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "output_schedule_2.csv"), p2)

	// A gap in the numbering continues from the highest index.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "output_schedule_7.csv"), nil, 0o644))
	p3, err := export.WriteCSV(dir, "output_schedule", entries)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "output_schedule_8.csv"), p3)
}

func TestWriteCSVContent(t *testing.T) {
	dir := t.TempDir()
	entries := export.Project(sampleIndividual())

	path, err := export.WriteCSV(dir, "jadwal", entries)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	header := records[0]
	require.Equal(t, []string{"subject_id", "group", "day_name", "start_converted", "end_converted", "room_id"}, header[:6])

	row := records[1]
	require.Equal(t, "MK1001", row[0])
	require.Equal(t, "A-1", row[1])
	require.Equal(t, "Senin", row[2])
	require.Equal(t, "08:00:00", row[3])
	require.Equal(t, "10:00:00", row[4])
	require.Equal(t, "1", row[5])
	require.Equal(t, "asst-1 asst-2", row[11])
}
