package audit

import "time"

// EventType names the auditable occurrences on the status surface.
type EventType string

const (
	EventStatusChecked       EventType = "status.checked"
	EventRemediationResolved EventType = "remediation.resolved"
)

// Event is one audit record. The payload is deliberately minimal: what
// happened, to whom, decided how, from what client.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	IdentityDN string    `json:"identity_dn"`
	Device     string    `json:"device,omitempty"`
	Detail     any       `json:"detail,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
