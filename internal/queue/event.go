// Package queue defines message payloads exchanged over the message broker.
package queue

// ComplaintCreatedEvent is published when a complaint is successfully
// filed. It carries enough information for downstream consumers to log
// or notify without querying the primary database.
type ComplaintCreatedEvent struct {
	ComplaintID uint64 `json:"complaint_id"`
	UserID      uint64 `json:"user_id"`
	CategoryID  uint64 `json:"category_id"`
	Subject     string `json:"subject"`
	Location    string `json:"location"`
	CreatedAt   string `json:"created_at"`
}
