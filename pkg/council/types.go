package council

// Persona is a named system-prompt override shaping a member's voice.
type Persona struct {
	Name        string `json:"name"`
	Prompt      string `json:"prompt"`
	Description string `json:"description,omitempty"`
}

// Member is one participating model in a run, optionally persona-wrapped.
// The model identifier is provider-namespaced, e.g. "openai/gpt-5.1".
type Member struct {
	Model   string
	Persona *Persona
}

// Stage1Result is one member's individual answer. Members that failed or
// returned empty content have no entry at all.
type Stage1Result struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

// Stage2Result is one member's ranking of the anonymized answers. Ranking is
// the raw text; ParsedRanking is the extracted label sequence, possibly
// shorter than the label set or empty when the model ignored the format.
type Stage2Result struct {
	Model         string   `json:"model"`
	Ranking       string   `json:"ranking"`
	ParsedRanking []string `json:"parsed_ranking"`
}

// Stage3Result is the chairman's synthesis. It is always present: chairman
// failure substitutes a fixed error response instead of omitting the result.
type Stage3Result struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

// AggregateEntry is one model's standing across all parsed peer rankings.
// AverageRank is the mean 1-based position, rounded to 2 decimals.
type AggregateEntry struct {
	Model         string  `json:"model"`
	AverageRank   float64 `json:"average_rank"`
	RankingsCount int     `json:"rankings_count"`
}

// Metadata carries the run's de-anonymization map and aggregate standings.
type Metadata struct {
	LabelToModel      map[string]string `json:"label_to_model"`
	AggregateRankings []AggregateEntry  `json:"aggregate_rankings"`
}

// Result is the complete outcome of one council run.
type Result struct {
	Stage1   []Stage1Result `json:"stage1"`
	Stage2   []Stage2Result `json:"stage2"`
	Stage3   Stage3Result   `json:"stage3"`
	Metadata Metadata       `json:"metadata"`
}

// Sentinel responses for run-level failures. The pipeline returns these in
// the Stage3 slot instead of raising.
const (
	errModel               = "error"
	noMembersMessage       = "No models selected. Add at least one persona to the council."
	allFailedMessage       = "All models failed to respond. Please try again."
	synthesisFailedMessage = "Error: Unable to generate final synthesis."
)
