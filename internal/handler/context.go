package handler

type contextKey string

const (
	operatorContextKey    contextKey = "operator"
	scheduleRunContextKey contextKey = "schedule_run"
)
