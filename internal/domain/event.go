package domain

import "time"

// EstimateEvent is one append-only audit record. Events are never mutated or
// deleted, and survive independently of the estimate they reference.
type EstimateEvent struct {
	ID          string
	EstimateID  string
	EstimatorID string
	FileNumber  string

	Type       EventType
	FromStatus *EstimateStatus
	ToStatus   *EstimateStatus

	BlockerType            *BlockerType
	BlockerName            *string
	BlockerReason          *string
	BlockerDurationMinutes *int

	Description string
	TriggeredBy string

	CreatedAt time.Time
}
