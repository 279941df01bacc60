// Package queue defines message payloads exchanged over the message broker.
package queue

// Actions carried by ProjectEvent.
const (
	ActionCreated = "project.created"
	ActionUpdated = "project.updated"
	ActionDeleted = "project.deleted"
)

// ProjectEvent is published whenever a project is created, updated or
// deleted. It contains enough information for downstream consumers to log
// or trigger analytics without querying the primary database.
type ProjectEvent struct {
	Action    string `json:"action"`
	ProjectID uint64 `json:"project_id"`
	Title     string `json:"title,omitempty"`
	OwnerID   uint64 `json:"owner_id"`
	At        string `json:"at"`
}
