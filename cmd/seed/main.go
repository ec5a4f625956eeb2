package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/ftis-dev/lab-timetable/backend/internal/config"
	"github.com/ftis-dev/lab-timetable/backend/internal/repository"
	"github.com/ftis-dev/lab-timetable/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var seed int64

	flag.IntVar(&op, "op", 0, "operation to run (1: insert random courses, 2: insert random rooms)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Int64Var(&seed, "seed", 0, "random seed (0 uses the current time)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not dial, ping to fail fast on a bad DSN.
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	repo := repository.NewRepository(cfg, dbpool)

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	switch op {
	case 0:
		slog.Error("no operation specified")
		os.Exit(1)
	case 1:
		if n <= 0 {
			slog.Error("course count must be positive")
			os.Exit(1)
		}

		cnt := 0
		for _, course := range utils.GenerateRandomCourses(rng, n) {
			if err := repo.CreateCourse(course); err != nil {
				slog.Error("failed to insert course", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}

		slog.Info("inserted courses", slog.Int("count", cnt))
	case 2:
		if n <= 0 {
			slog.Error("room count must be positive")
			os.Exit(1)
		}

		cnt := 0
		for _, room := range utils.GenerateRandomRooms(rng, n) {
			if err := repo.CreateRoom(room); err != nil {
				slog.Error("failed to insert room", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}

		slog.Info("inserted rooms", slog.Int("count", cnt))
	default:
		slog.Error("unknown operation", slog.Int("op", op))
		os.Exit(1)
	}
}
