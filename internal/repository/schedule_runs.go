package repository

import (
	"context"
	"strings"
	"time"

	"github.com/ftis-dev/lab-timetable/backend/internal/domain"
)

func (r *Repository) CreateScheduleRun(run *domain.ScheduleRun) error {
	query := `
		INSERT INTO schedule_runs (status, genes_per_individual, population_size, max_generations, seed)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return r.dbpool.QueryRowContext(ctx, query,
		run.Status,
		run.GenesPerIndividual,
		run.PopulationSize,
		run.MaxGenerations,
		run.Seed,
	).Scan(&run.ID, &run.CreatedAt, &run.Version)
}

func (r *Repository) GetScheduleRunByID(id int64) (*domain.ScheduleRun, error) {
	query := `
		SELECT id, status, genes_per_individual, population_size, max_generations, seed,
		       best_fitness, generations, message, created_at, finished_at, version
		FROM schedule_runs
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	run := &domain.ScheduleRun{}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(
		&run.ID,
		&run.Status,
		&run.GenesPerIndividual,
		&run.PopulationSize,
		&run.MaxGenerations,
		&run.Seed,
		&run.BestFitness,
		&run.Generations,
		&run.Message,
		&run.CreatedAt,
		&run.FinishedAt,
		&run.Version,
	); err != nil {
		return nil, err
	}

	return run, nil
}

func (r *Repository) GetAllScheduleRuns() ([]*domain.ScheduleRun, error) {
	query := `
		SELECT id, status, genes_per_individual, population_size, max_generations, seed,
		       best_fitness, generations, message, created_at, finished_at, version
		FROM schedule_runs
		ORDER BY id DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []*domain.ScheduleRun{}
	for rows.Next() {
		run := &domain.ScheduleRun{}
		if err := rows.Scan(
			&run.ID,
			&run.Status,
			&run.GenesPerIndividual,
			&run.PopulationSize,
			&run.MaxGenerations,
			&run.Seed,
			&run.BestFitness,
			&run.Generations,
			&run.Message,
			&run.CreatedAt,
			&run.FinishedAt,
			&run.Version,
		); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// UpdateScheduleRun persists the terminal state of a run.
func (r *Repository) UpdateScheduleRun(run *domain.ScheduleRun) error {
	query := `
		UPDATE schedule_runs
		SET status = $1, best_fitness = $2, generations = $3, message = $4,
		    finished_at = $5, version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return r.dbpool.QueryRowContext(ctx, query,
		run.Status,
		run.BestFitness,
		run.Generations,
		run.Message,
		run.FinishedAt,
		run.ID,
		run.Version,
	).Scan(&run.Version)
}

// InsertRunResult replaces the stored winning timetable of a run.
func (r *Repository) InsertRunResult(runID int64, entries []domain.TimetableEntry) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `DELETE FROM schedule_run_entries WHERE schedule_run_id = $1`
	if _, err := tx.ExecContext(ctx, query, runID); err != nil {
		return err
	}

	query = `
		INSERT INTO schedule_run_entries (
			schedule_run_id, gene_id, subject_id, subject_name, semester, sks, capacity,
			group_label, day_name, day_of_week, start_time, end_time, room_id, assistant_ids
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, query,
			runID,
			e.GeneID,
			e.SubjectID,
			e.SubjectName,
			e.Semester,
			e.SKS,
			e.Capacity,
			e.Group,
			e.DayName,
			e.Day,
			e.StartTime,
			e.EndTime,
			e.RoomID,
			strings.Join(e.AssistantIDs, " "),
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) GetRunResult(runID int64) ([]domain.TimetableEntry, error) {
	query := `
		SELECT gene_id, subject_id, subject_name, semester, sks, capacity,
		       group_label, day_name, day_of_week, start_time, end_time, room_id, assistant_ids
		FROM schedule_run_entries
		WHERE schedule_run_id = $1
		ORDER BY day_of_week, start_time, room_id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []domain.TimetableEntry{}
	for rows.Next() {
		var e domain.TimetableEntry
		var assistantIDs string
		if err := rows.Scan(
			&e.GeneID,
			&e.SubjectID,
			&e.SubjectName,
			&e.Semester,
			&e.SKS,
			&e.Capacity,
			&e.Group,
			&e.DayName,
			&e.Day,
			&e.StartTime,
			&e.EndTime,
			&e.RoomID,
			&assistantIDs,
		); err != nil {
			return nil, err
		}
		e.AssistantIDs = strings.Fields(assistantIDs)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
