package scheduler

import "errors"

type SelectionStrategy string

const (
	SelectRoulette SelectionStrategy = "roulette"
	SelectSUS      SelectionStrategy = "sus"
)

// CrossoverWeights drives the weighted-random choice of recombination
// operator for each mating event.
type CrossoverWeights struct {
	OnePoint        int `json:"onePoint"`
	TwoPoint        int `json:"twoPoint"`
	UniformGene     int `json:"uniformGene"`
	UniformSchedule int `json:"uniformSchedule"`
}

// MutationWeights drives the weighted-random choice of mutation operator
// per selected gene.
type MutationWeights struct {
	TimeShift     int `json:"timeShift"`
	DaySwap       int `json:"daySwap"`
	RoomPreferred int `json:"roomPreferred"`
	FitAssistants int `json:"fitAssistants"`
	SwapTwoGenes  int `json:"swapTwoGenes"`
	Regenerate    int `json:"regenerate"`
}

// Window is a half-open [Start, End) interval in seconds from midnight.
type Window struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Parameters configures one evolutionary search.
type Parameters struct {
	GenesPerIndividual int `json:"genesPerIndividual"`
	PopulationSize     int `json:"populationSize"`
	// MaxGenerations bounds the loop so an infeasible instance still
	// terminates; the best individual found so far is returned.
	MaxGenerations int     `json:"maxGenerations"`
	CrossoverRate  float64 `json:"crossoverRate"`
	MutationRate   float64 `json:"mutationRate"`
	// GeneMutationRate is the per-gene probability inside an individual
	// that was picked for mutation.
	GeneMutationRate float64           `json:"geneMutationRate"`
	EliteCount       int               `json:"eliteCount"`
	Selection        SelectionStrategy `json:"selection"`
	Crossover        CrossoverWeights  `json:"crossover"`
	Mutation         MutationWeights   `json:"mutation"`

	// Conflict penalty weights.
	RoomWeight      float64 `json:"roomWeight"`
	GroupWeight     float64 `json:"groupWeight"`
	AssistantWeight float64 `json:"assistantWeight"`

	// PromisingFitness stops the search right after a breed phase;
	// SuccessFitness is the stricter bound checked after mutation.
	PromisingFitness float64 `json:"promisingFitness"`
	SuccessFitness   float64 `json:"successFitness"`

	// fit-for-assistants local search: how many assistants must be
	// simultaneously free and how many candidate slots to try. Heuristic
	// constants inherited from the original tuning.
	AssistantTarget       int `json:"assistantTarget"`
	AssistantSearchBudget int `json:"assistantSearchBudget"`

	// Time grid.
	Grid             int                `json:"grid"`
	DayOpen          int                `json:"dayOpen"`
	DayClose         int                `json:"dayClose"`
	Days             []int32            `json:"days"`
	ForbiddenWindows map[int32][]Window `json:"forbiddenWindows"`
}

// DefaultParameters returns the tuning the engine was calibrated with:
// 30-minute grid, 07:00-17:00 working window over Senin..Sabtu, Jumat
// 12:00-13:00 kept free, and the operator weights of the richer
// crossover/mutation variant.
func DefaultParameters() *Parameters {
	return &Parameters{
		GenesPerIndividual: 40,
		PopulationSize:     30,
		MaxGenerations:     500,
		CrossoverRate:      0.5,
		MutationRate:       0.3,
		GeneMutationRate:   0.5,
		EliteCount:         2,
		Selection:          SelectSUS,
		Crossover: CrossoverWeights{
			OnePoint:        2,
			TwoPoint:        3,
			UniformGene:     3,
			UniformSchedule: 4,
		},
		Mutation: MutationWeights{
			TimeShift:     3,
			DaySwap:       2,
			RoomPreferred: 2,
			FitAssistants: 4,
			SwapTwoGenes:  1,
			Regenerate:    1,
		},
		RoomWeight:            3.0,
		GroupWeight:           1.0,
		AssistantWeight:       2.0,
		PromisingFitness:      0.9,
		SuccessFitness:        0.99,
		AssistantTarget:       2,
		AssistantSearchBudget: 80,
		Grid:                  30 * 60,
		DayOpen:               7 * 3600,
		DayClose:              17 * 3600,
		Days:                  []int32{1, 2, 3, 4, 5, 6},
		ForbiddenWindows: map[int32][]Window{
			5: {{Start: 12 * 3600, End: 13 * 3600}}, // Jumat 12:00-13:00
		},
	}
}

func (p *Parameters) Validate() error {
	switch {
	case p.GenesPerIndividual <= 0:
		return errors.New("genes per individual must be positive")
	case p.PopulationSize <= 0:
		return errors.New("population size must be positive")
	case p.MaxGenerations <= 0:
		return errors.New("max generations must be positive")
	case p.CrossoverRate < 0 || p.CrossoverRate > 1:
		return errors.New("crossover rate must be within [0, 1]")
	case p.MutationRate < 0 || p.MutationRate > 1:
		return errors.New("mutation rate must be within [0, 1]")
	case p.GeneMutationRate < 0 || p.GeneMutationRate > 1:
		return errors.New("gene mutation rate must be within [0, 1]")
	case p.EliteCount < 0 || p.EliteCount >= p.PopulationSize:
		return errors.New("elite count must be within [0, population size)")
	case p.Selection != SelectRoulette && p.Selection != SelectSUS:
		return errors.New("unknown selection strategy")
	case p.Grid <= 0:
		return errors.New("grid step must be positive")
	case p.DayOpen < 0 || p.DayClose <= p.DayOpen:
		return errors.New("working window must be a non-empty interval")
	case len(p.Days) == 0:
		return errors.New("working-day set must not be empty")
	}
	return nil
}
