package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type RunFinishedMailData struct {
	RunID       int64   `json:"runID"`
	BestFitness float64 `json:"bestFitness"`
	Generations int     `json:"generations"`
	Sessions    int     `json:"sessions"`
}
