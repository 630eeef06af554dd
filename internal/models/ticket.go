package models

import "time"

const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusResolved   = "resolved"
	TicketStatusClosed     = "closed"

	TicketLevelLow    = "low"
	TicketLevelMedium = "medium"
	TicketLevelHigh   = "high"
)

type Ticket struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Type            string     `json:"type"`
	Description     string     `json:"description"`
	CreatorID       string     `json:"creator_id"`
	PublishDate     *time.Time `json:"publish_date,omitempty"`
	AffectDate      *time.Time `json:"affect_date,omitempty"`
	ResolveDate     *time.Time `json:"resolve_date,omitempty"`
	AssignedAgentID string     `json:"assigned_agent_id,omitempty"`
	Priority        string     `json:"priority"`   // low | medium | high
	Difficulty      string     `json:"difficulty"` // low | medium | high
	Status          string     `json:"status"`     // open | in_progress | resolved | closed
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ApplyDefaults fills the creation defaults for omitted fields.
func (t *Ticket) ApplyDefaults() {
	if t.Priority == "" {
		t.Priority = TicketLevelMedium
	}
	if t.Difficulty == "" {
		t.Difficulty = TicketLevelMedium
	}
	if t.Status == "" {
		t.Status = TicketStatusOpen
	}
}
