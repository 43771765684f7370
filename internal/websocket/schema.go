package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionAutosave Action = "autosave"
	ActionSubmit   Action = "submit"
	ActionPing     Action = "ping"
)

// RequestPayload is the single client message shape for the dictation
// stream. SectionID addresses the section being transcribed; Text carries
// the transcript for autosave.
type RequestPayload struct {
	Action    Action `json:"action"`
	SectionID string `json:"section_id"`
	Text      string `json:"text"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError   Event = "error"
	EventSuccess Event = "success"
	EventGraded  Event = "graded"
	EventPong    Event = "pong"
)

type AutosaveResponse struct {
	Event  Event  `json:"event"`
	Status string `json:"status"`
}

type GradedResponse struct {
	Event   Event       `json:"event"`
	Status  string      `json:"status"`
	Score   int         `json:"score"`
	Details interface{} `json:"details"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
