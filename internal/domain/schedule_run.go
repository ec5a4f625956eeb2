package domain

import "time"

type RunStatus string

const (
	RunStatusPending  RunStatus = "pending"
	RunStatusRunning  RunStatus = "running"
	RunStatusFinished RunStatus = "finished"
	RunStatusFailed   RunStatus = "failed"
)

// ScheduleRun is one invocation of the evolutionary engine, tracked so the
// search can execute in the background while clients poll its progress.
type ScheduleRun struct {
	ID                 int64      `json:"id"`
	Status             RunStatus  `json:"status"`
	GenesPerIndividual int        `json:"genesPerIndividual"`
	PopulationSize     int        `json:"populationSize"`
	MaxGenerations     int        `json:"maxGenerations"`
	Seed               *int64     `json:"seed"`
	BestFitness        float64    `json:"bestFitness"`
	Generations        int        `json:"generations"`
	Message            string     `json:"message"`
	CreatedAt          time.Time  `json:"createdAt"`
	FinishedAt         *time.Time `json:"finishedAt"`
	Version            int32      `json:"-"`
}

// RunProgress is the live state of a running search, published per
// generation for polling.
type RunProgress struct {
	RunID       int64   `json:"runID"`
	Generation  int     `json:"generation"`
	Phase       string  `json:"phase"`
	BestFitness float64 `json:"bestFitness"`
}

// TimetableEntry is the flat row-per-gene projection of a winning
// timetable, the shape stored and exported for consumers.
type TimetableEntry struct {
	GeneID       string   `json:"geneID"`
	SubjectID    string   `json:"subjectID"`
	SubjectName  string   `json:"subjectName"`
	Semester     int      `json:"semester"`
	SKS          int      `json:"sks"`
	Capacity     int      `json:"capacity"`
	Group        string   `json:"group"`
	DayName      string   `json:"dayName"`
	Day          int32    `json:"day"`
	StartTime    int      `json:"startTime"`
	EndTime      int      `json:"endTime"`
	RoomID       int64    `json:"roomID"`
	AssistantIDs []string `json:"assistantIDs"`
}
