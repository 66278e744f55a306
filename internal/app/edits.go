package app

import "time"

// EstimateEdits carries a partial update to an estimate's descriptive fields.
// Nil pointers leave the stored value untouched. Lifecycle state (status,
// blockers, time buckets) is never edited this way.
type EstimateEdits struct {
	FileNumber    *string
	ClaimNumber   *string
	PolicyNumber  *string
	ClientName    *string
	Carrier       *string
	Peril         *string
	Severity      *int
	EstimateValue *float64
	RCV           *float64
	ACV           *float64
	Deductible    *float64
	NetClaim      *float64
	DateReceived  *time.Time
	Notes         *string
}
