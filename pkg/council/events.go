package council

// EventType identifies one step of a streamed deliberation.
type EventType string

const (
	EventStage1Start    EventType = "stage1_start"
	EventStage1Complete EventType = "stage1_complete"
	EventStage2Start    EventType = "stage2_start"
	EventStage2Complete EventType = "stage2_complete"
	EventStage3Start    EventType = "stage3_start"
	EventStage3Complete EventType = "stage3_complete"
	EventTitleComplete  EventType = "title_complete"
	EventComplete       EventType = "complete"
	EventError          EventType = "error"
)

// Event is one progress notification from a streamed run. Exactly one payload
// field is populated per type; the JSON shape stays flat so subscribers can
// switch on "type" alone.
type Event struct {
	Type EventType `json:"type"`

	Stage1   []Stage1Result `json:"stage1,omitempty"`
	Stage2   []Stage2Result `json:"stage2,omitempty"`
	Stage3   *Stage3Result  `json:"stage3,omitempty"`
	Metadata *Metadata      `json:"metadata,omitempty"`
	Title    string         `json:"title,omitempty"`
	Message  string         `json:"message,omitempty"`
}
