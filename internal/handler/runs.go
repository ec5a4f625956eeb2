package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/ftis-dev/lab-timetable/backend/internal/domain"
	"github.com/ftis-dev/lab-timetable/backend/internal/export"
	"github.com/ftis-dev/lab-timetable/backend/internal/scheduler"
	"github.com/ftis-dev/lab-timetable/backend/internal/utils"
)

const runEventsQueue = "timetable_events"

func runProgressKey(runID int64) string {
	return fmt.Sprintf("run_progress_%d", runID)
}

func (h *Handler) CreateScheduleRun(w http.ResponseWriter, r *http.Request) {
	req := struct {
		GenesPerIndividual int      `json:"genesPerIndividual" validate:"required,min=1"`
		PopulationSize     int      `json:"populationSize" validate:"required,min=2"`
		MaxGenerations     int      `json:"maxGenerations" validate:"omitempty,min=1"`
		CrossoverRate      *float64 `json:"crossoverRate" validate:"omitempty,min=0,max=1"`
		MutationRate       *float64 `json:"mutationRate" validate:"omitempty,min=0,max=1"`
		EliteCount         *int     `json:"eliteCount" validate:"omitempty,min=0"`
		Selection          string   `json:"selection" validate:"omitempty,oneof=roulette sus"`
		Seed               *int64   `json:"seed"`
	}{}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.validationError(w, err)
		return
	}

	params := scheduler.DefaultParameters()
	params.GenesPerIndividual = req.GenesPerIndividual
	params.PopulationSize = req.PopulationSize
	if req.MaxGenerations > 0 {
		params.MaxGenerations = req.MaxGenerations
	}
	if req.CrossoverRate != nil {
		params.CrossoverRate = *req.CrossoverRate
	}
	if req.MutationRate != nil {
		params.MutationRate = *req.MutationRate
	}
	if req.EliteCount != nil {
		params.EliteCount = *req.EliteCount
	}
	if req.Selection != "" {
		params.Selection = scheduler.SelectionStrategy(req.Selection)
	}
	if err := params.Validate(); err != nil {
		h.badRequest(w, err.Error())
		return
	}

	courses, err := h.repository.GetAllCourses()
	if err != nil {
		h.internalError(w, err)
		return
	}
	rooms, err := h.repository.GetAllRooms()
	if err != nil {
		h.internalError(w, err)
		return
	}
	if len(courses) == 0 || len(rooms) == 0 {
		h.badRequest(w, "no courses or rooms available, seed the database first")
		return
	}

	run := &domain.ScheduleRun{
		Status:             domain.RunStatusPending,
		GenesPerIndividual: req.GenesPerIndividual,
		PopulationSize:     req.PopulationSize,
		MaxGenerations:     params.MaxGenerations,
		Seed:               req.Seed,
	}
	if err := h.repository.CreateScheduleRun(run); err != nil {
		h.internalError(w, err)
		return
	}

	go h.executeRun(run, params, courses, rooms)

	h.successResponse(w, "schedule run started", run)
}

// executeRun drives one evolutionary search in the background. Progress is
// pushed to redis per generation and a summary event is published when the
// run settles, so the HTTP request returns immediately after the run row
// exists.
func (h *Handler) executeRun(run *domain.ScheduleRun, params *scheduler.Parameters, courses []*domain.Course, rooms []*domain.Room) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("schedule run panicked", "runID", run.ID, "panic", rec)
			h.finishRun(run, domain.RunStatusFailed, fmt.Sprintf("panic: %v", rec))
		}
	}()

	run.Status = domain.RunStatusRunning
	if err := h.repository.UpdateScheduleRun(run); err != nil {
		slog.Error("failed to mark run as running", "runID", run.ID, "error", err)
		return
	}

	seed := time.Now().UnixNano()
	if run.Seed != nil {
		seed = *run.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	sched, err := scheduler.New(params, courses, rooms, utils.GenerateRandomAssistants, rng)
	if err != nil {
		h.finishRun(run, domain.RunStatusFailed, err.Error())
		return
	}

	sched.OnProgress(func(p scheduler.Progress) {
		h.publishProgress(run.ID, p)
	})

	result := sched.Run()

	run.BestFitness = result.Fitness
	run.Generations = result.Generations
	entries := export.Project(result.Best)
	if err := h.repository.InsertRunResult(run.ID, entries); err != nil {
		h.finishRun(run, domain.RunStatusFailed, err.Error())
		return
	}

	message := "finished without reaching the success threshold"
	if result.Solved {
		message = "solved"
	}
	h.finishRun(run, domain.RunStatusFinished, message)

	h.publishRunFinished(run, len(entries))
}

func (h *Handler) finishRun(run *domain.ScheduleRun, status domain.RunStatus, message string) {
	now := time.Now()
	run.Status = status
	run.Message = message
	run.FinishedAt = &now
	if err := h.repository.UpdateScheduleRun(run); err != nil {
		slog.Error("failed to update run", "runID", run.ID, "error", err)
	}
}

func (h *Handler) publishProgress(runID int64, p scheduler.Progress) {
	progress := domain.RunProgress{
		RunID:       runID,
		Generation:  p.Generation,
		Phase:       p.Phase,
		BestFitness: p.BestFitness,
	}

	payload, err := json.Marshal(progress)
	if err != nil {
		slog.Error("failed to marshal run progress", "runID", runID, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.ConnectTimeout)*time.Second)
	defer cancel()

	expiration := time.Duration(h.config.Redis.ProgressExpiration) * time.Second
	if err := h.redisClient.Set(ctx, runProgressKey(runID), payload, expiration).Err(); err != nil {
		slog.Error("failed to store run progress", "runID", runID, "error", err)
	}
}

func (h *Handler) publishRunFinished(run *domain.ScheduleRun, sessions int) {
	message := domain.MailMessage{
		Type: "run_finished",
		To:   h.config.Email.NotifyTo,
		Data: domain.RunFinishedMailData{
			RunID:       run.ID,
			BestFitness: run.BestFitness,
			Generations: run.Generations,
			Sessions:    sessions,
		},
	}

	payload, err := json.Marshal(message)
	if err != nil {
		slog.Error("failed to marshal run event", "runID", run.ID, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	err = h.eventChannel.PublishWithContext(ctx, "", runEventsQueue, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        payload,
	})
	if err != nil {
		slog.Error("failed to publish run event", "runID", run.ID, "error", err)
	}
}

func (h *Handler) GetAllScheduleRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.repository.GetAllScheduleRuns()
	if err != nil {
		h.internalError(w, err)
		return
	}

	h.successResponse(w, "schedule runs fetched", runs)
}

func (h *Handler) GetScheduleRun(w http.ResponseWriter, r *http.Request) {
	run := r.Context().Value(scheduleRunContextKey).(*domain.ScheduleRun)
	h.successResponse(w, "schedule run fetched", run)
}

func (h *Handler) GetScheduleRunProgress(w http.ResponseWriter, r *http.Request) {
	run := r.Context().Value(scheduleRunContextKey).(*domain.ScheduleRun)

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.ConnectTimeout)*time.Second)
	defer cancel()

	payload, err := h.redisClient.Get(ctx, runProgressKey(run.ID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			h.notFound(w, "no progress recorded for this run")
			return
		}
		h.internalError(w, err)
		return
	}

	progress := domain.RunProgress{}
	if err := json.Unmarshal([]byte(payload), &progress); err != nil {
		h.internalError(w, err)
		return
	}

	h.successResponse(w, "run progress fetched", progress)
}

func (h *Handler) GetScheduleRunResult(w http.ResponseWriter, r *http.Request) {
	run := r.Context().Value(scheduleRunContextKey).(*domain.ScheduleRun)

	if run.Status != domain.RunStatusFinished {
		h.badRequest(w, "run has not finished yet")
		return
	}

	entries, err := h.repository.GetRunResult(run.ID)
	if err != nil {
		h.internalError(w, err)
		return
	}

	h.successResponse(w, "run result fetched", entries)
}
