// Package queue defines message payloads exchanged over the message broker.
package queue

// EntityMutatedEvent is published after a mutation against the content
// store succeeds.  It carries enough information for downstream
// consumers to audit who changed what without querying the store again.
type EntityMutatedEvent struct {
	Entity     string `json:"entity"`      // "cinema", "event", "customer", "review"
	DocumentID string `json:"document_id"` // store document id
	Action     string `json:"action"`      // "create", "replace", "delete"
	Actor      string `json:"actor"`       // email of the staff member
	OccurredAt string `json:"occurred_at"` // RFC 3339 UTC timestamp
}
