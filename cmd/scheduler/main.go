package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/ftis-dev/lab-timetable/backend/internal/export"
	"github.com/ftis-dev/lab-timetable/backend/internal/scheduler"
	"github.com/ftis-dev/lab-timetable/backend/internal/utils"
)

func main() {
	var seed int64
	var outDir string
	var outName string
	var courseCount int
	var roomCount int
	var maxGenerations int

	flag.Int64Var(&seed, "seed", 0, "random seed (0 uses the current time)")
	flag.StringVar(&outDir, "out", "./output", "directory for the exported timetable")
	flag.StringVar(&outName, "name", "output_schedule", "base name for the exported csv")
	flag.IntVar(&courseCount, "courses", 12, "number of random courses to schedule")
	flag.IntVar(&roomCount, "rooms", 5, "number of random lab rooms")
	flag.IntVar(&maxGenerations, "max-generations", 0, "generation bound (0 keeps the default)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] GENES POPULATION\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	genes, err := strconv.Atoi(flag.Arg(0))
	if err != nil || genes <= 0 {
		logger.Error("GENES must be a positive integer", slog.String("got", flag.Arg(0)))
		os.Exit(1)
	}
	population, err := strconv.Atoi(flag.Arg(1))
	if err != nil || population <= 0 {
		logger.Error("POPULATION must be a positive integer", slog.String("got", flag.Arg(1)))
		os.Exit(1)
	}

	params := scheduler.DefaultParameters()
	params.GenesPerIndividual = genes
	params.PopulationSize = population
	if maxGenerations > 0 {
		params.MaxGenerations = maxGenerations
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	courses := utils.GenerateRandomCourses(rng, courseCount)
	rooms := utils.GenerateRandomRooms(rng, roomCount)

	sched, err := scheduler.New(params, courses, rooms, utils.GenerateRandomAssistants, rng)
	if err != nil {
		logger.Error("failed to create scheduler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sched.OnProgress(func(p scheduler.Progress) {
		logger.Info("generation evaluated",
			slog.Int("generation", p.Generation),
			slog.String("phase", p.Phase),
			slog.Float64("bestFitness", p.BestFitness),
		)
	})

	logger.Info("starting search",
		slog.Int("genes", genes),
		slog.Int("population", population),
		slog.Int64("seed", seed),
	)

	start := time.Now()
	result := sched.Run()

	logger.Info("search finished",
		slog.Float64("bestFitness", result.Fitness),
		slog.Int("generations", result.Generations),
		slog.Bool("solved", result.Solved),
		slog.Duration("elapsed", time.Since(start)),
	)

	entries := export.Project(result.Best)
	path, err := export.WriteCSV(outDir, outName, entries)
	if err != nil {
		logger.Error("failed to export timetable", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("timetable exported", slog.String("path", path), slog.Int("sessions", len(entries)))
}
