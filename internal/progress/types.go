// Package progress tracks report generation for a single team over a duplex
// transport, or over a scripted simulation when no backend is available.
// Both paths deliver updates through the same single-subscriber callback.
package progress

import (
	"encoding/json"
	"errors"
	"time"
)

// Status is the coarse state of a report generation job.
type Status string

const (
	StatusConnecting Status = "connecting"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusConnecting, StatusProcessing, StatusCompleted, StatusError:
		return true
	}
	return false
}

// Terminal reports whether no further updates are expected after s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// ReportProgress is a single progress update. Progress is a percentage in
// [0,100]; Message is free text meant for display only.
type ReportProgress struct {
	Status   Status `json:"status"`
	Progress int    `json:"progress"`
	Message  string `json:"message,omitempty"`
}

// Callback receives progress updates for the active session.
type Callback func(ReportProgress)

// ConnectionFailed returns the update emitted once when the transport cannot
// be opened or is lost before a terminal status arrives.
func ConnectionFailed() ReportProgress {
	return ReportProgress{Status: StatusError, Progress: 0, Message: "Connection failed"}
}

// ActionGenerate is the only outbound action the backend understands.
const ActionGenerate = "generate"

// GenerateRequest is written once after the transport opens. OpponentName
// always equals TeamName; the backend still expects both keys.
type GenerateRequest struct {
	Action       string `json:"action"`
	TeamName     string `json:"teamName"`
	OpponentName string `json:"opponentName"`
	OurTeam      string `json:"ourTeam"`
}

// NewGenerateRequest builds the request for team, with ourTeam as matchup context.
func NewGenerateRequest(team, ourTeam string) GenerateRequest {
	return GenerateRequest{
		Action:       ActionGenerate,
		TeamName:     team,
		OpponentName: team,
		OurTeam:      ourTeam,
	}
}

var (
	ErrMissingEndpoint = errors.New("progress: endpoint is required when not simulating")
	ErrEmptyTeamName   = errors.New("progress: team name is required")
	errMalformedFrame  = errors.New("malformed progress frame")
)

// Config is resolved once by the caller and passed to New.
type Config struct {
	// Endpoint is the websocket URL of the report backend.
	Endpoint string
	// Simulate skips the transport and runs the scripted sequence.
	Simulate bool
	// ContextTeamName is the caller's own team, sent as matchup context.
	ContextTeamName string
	// HandshakeTimeout bounds transport establishment. Zero uses the dialer default.
	HandshakeTimeout time.Duration
}

// Validate returns ErrMissingEndpoint when real mode has no endpoint.
func (c Config) Validate() error {
	if !c.Simulate && c.Endpoint == "" {
		return ErrMissingEndpoint
	}
	return nil
}

// wireProgress distinguishes absent fields from zero values so frames
// missing status or progress can be rejected.
type wireProgress struct {
	Status   *Status `json:"status"`
	Progress *int    `json:"progress"`
	Message  *string `json:"message"`
}

// ParseFrame decodes one inbound frame. Values are passed through unaltered:
// no clamping, no ordering checks.
func ParseFrame(data []byte) (ReportProgress, error) {
	var w wireProgress
	if err := json.Unmarshal(data, &w); err != nil {
		return ReportProgress{}, errors.Join(errMalformedFrame, err)
	}
	if w.Status == nil || w.Progress == nil {
		return ReportProgress{}, errMalformedFrame
	}
	if !w.Status.Valid() {
		return ReportProgress{}, errMalformedFrame
	}
	p := ReportProgress{Status: *w.Status, Progress: *w.Progress}
	if w.Message != nil {
		p.Message = *w.Message
	}
	return p, nil
}
