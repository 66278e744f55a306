package domain

// EstimateStatus is the processing status of a claim file.
// The lifecycle is cyclical, not linear: files bounce in-progress -> blocked ->
// in-progress, and cycle sent-to-carrier -> revision-requested -> in-progress ->
// sent-to-carrier.
type EstimateStatus string

const (
	StatusAssigned          EstimateStatus = "assigned"
	StatusInProgress        EstimateStatus = "in-progress"
	StatusBlocked           EstimateStatus = "blocked"
	StatusReview            EstimateStatus = "review"
	StatusSentToCarrier     EstimateStatus = "sent-to-carrier"
	StatusRevisionRequested EstimateStatus = "revision-requested"
	StatusRevised           EstimateStatus = "revised"
	StatusSettled           EstimateStatus = "settled"
	StatusClosed            EstimateStatus = "closed"
	StatusUnableToStart     EstimateStatus = "unable-to-start"
)

// StatusLabels maps each status to its human-facing display label.
var StatusLabels = map[EstimateStatus]string{
	StatusAssigned:          "Assigned",
	StatusInProgress:        "In Progress",
	StatusBlocked:           "Blocked",
	StatusReview:            "In Review",
	StatusSentToCarrier:     "Sent to Carrier",
	StatusRevisionRequested: "Revision Requested",
	StatusRevised:           "Revised",
	StatusSettled:           "Settled",
	StatusClosed:            "Closed",
	StatusUnableToStart:     "Unable to Start",
}

// AllowedTransitions is the closed set of directed status edges. Any edge not
// listed here is rejected. "blocked" appears as a target only so the blocker
// protocol can validate it; RequestTransition never accepts it directly.
var AllowedTransitions = map[EstimateStatus][]EstimateStatus{
	StatusAssigned:          {StatusInProgress, StatusUnableToStart},
	StatusInProgress:        {StatusBlocked, StatusReview, StatusSentToCarrier},
	StatusBlocked:           {StatusInProgress},
	StatusReview:            {StatusInProgress, StatusSentToCarrier},
	StatusSentToCarrier:     {StatusRevisionRequested, StatusSettled},
	StatusRevisionRequested: {StatusInProgress},
	StatusRevised:           {StatusSentToCarrier},
	StatusSettled:           {StatusClosed},
	StatusClosed:            {},
	StatusUnableToStart:     {StatusAssigned},
}

// SelectableStatuses are the statuses offered for manual selection. Blocked is
// excluded: blocking goes through the dedicated Block operation.
var SelectableStatuses = []EstimateStatus{
	StatusAssigned,
	StatusInProgress,
	StatusReview,
	StatusSentToCarrier,
	StatusRevisionRequested,
	StatusRevised,
	StatusSettled,
	StatusClosed,
	StatusUnableToStart,
}

// CanTransition reports whether the edge current -> next is in the allowed table.
func CanTransition(current, next EstimateStatus) bool {
	for _, s := range AllowedTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is one of the known statuses.
func ValidStatus(s EstimateStatus) bool {
	_, ok := StatusLabels[s]
	return ok
}

// IsTerminal reports whether s has no outgoing transitions.
func (s EstimateStatus) IsTerminal() bool {
	return len(AllowedTransitions[s]) == 0 && ValidStatus(s)
}

// Label returns the display label for s, falling back to the raw value.
func (s EstimateStatus) Label() string {
	if l, ok := StatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// BlockerType classifies the external dependency holding up a file.
type BlockerType string

const (
	BlockerScoper         BlockerType = "scoper"
	BlockerPublicAdjuster BlockerType = "public-adjuster"
	BlockerCarrier        BlockerType = "carrier"
	BlockerContractor     BlockerType = "contractor"
	BlockerClient         BlockerType = "client"
	BlockerInternal       BlockerType = "internal"
	BlockerDocumentation  BlockerType = "documentation"
	BlockerOther          BlockerType = "other"
)

// BlockerLabels maps blocker types to display labels.
var BlockerLabels = map[BlockerType]string{
	BlockerScoper:         "Waiting on Scoper",
	BlockerPublicAdjuster: "Waiting on Public Adjuster",
	BlockerCarrier:        "Waiting on Carrier",
	BlockerContractor:     "Waiting on Contractor",
	BlockerClient:         "Waiting on Client",
	BlockerInternal:       "Internal Hold",
	BlockerDocumentation:  "Missing Documentation",
	BlockerOther:          "Other",
}

func (t BlockerType) Label() string {
	if l, ok := BlockerLabels[t]; ok {
		return l
	}
	return string(t)
}

// ValidBlockerType reports whether t is one of the known blocker types.
func ValidBlockerType(t BlockerType) bool {
	_, ok := BlockerLabels[t]
	return ok
}

// EventType classifies lifecycle event log entries.
type EventType string

const (
	EventStatusChange   EventType = "status-change"
	EventBlockerSet     EventType = "blocker-set"
	EventBlockerCleared EventType = "blocker-cleared"
	EventCreated        EventType = "created"
	EventFieldEdit      EventType = "field-edit"
)

// ValidPerils is the canonical set of accepted peril category strings.
// Empty string means no peril recorded.
var ValidPerils = map[string]bool{
	"wind": true, "hail": true, "water": true, "fire": true,
	"flood": true, "hurricane": true, "tornado": true, "smoke": true,
	"theft": true, "vandalism": true, "collapse": true, "other": true,
}
