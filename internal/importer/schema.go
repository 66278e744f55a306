package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// BatchImport is the top-level JSON structure for bulk claim import.
type BatchImport struct {
	Estimators []EstimatorImport `json:"estimators,omitempty"`
	Estimates  []EstimateImport  `json:"estimates"`
}

// EstimatorImport defines an estimator profile in the import file. Estimators
// already present in the database (matched by user_id) are reused, not
// duplicated.
type EstimatorImport struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`

	TargetDollarsPerHour   *float64 `json:"target_dollars_per_hour,omitempty"`
	TargetEstimatesPerWeek *int     `json:"target_estimates_per_week,omitempty"`
	TargetMaxRevisionRate  *float64 `json:"target_max_revision_rate,omitempty"`
	TargetMaxCycleDays     *float64 `json:"target_max_cycle_days,omitempty"`
}

// EstimateImport defines one claim estimate in the import file. Estimator
// references the owning profile by user_id.
type EstimateImport struct {
	FileNumber   string `json:"file_number"`
	Estimator    string `json:"estimator"`
	ClaimNumber  string `json:"claim_number,omitempty"`
	PolicyNumber string `json:"policy_number,omitempty"`
	ClientName   string `json:"client_name,omitempty"`
	Carrier      string `json:"carrier,omitempty"`
	Peril        string `json:"peril,omitempty"`

	Severity      *int     `json:"severity,omitempty"`
	EstimateValue *float64 `json:"estimate_value,omitempty"`
	RCV           *float64 `json:"rcv,omitempty"`
	ACV           *float64 `json:"acv,omitempty"`
	Deductible    *float64 `json:"deductible,omitempty"`
	NetClaim      *float64 `json:"net_claim,omitempty"`

	Status          string `json:"status,omitempty"`
	ActiveMinutes   int    `json:"active_minutes,omitempty"`
	BlockedMinutes  int    `json:"blocked_minutes,omitempty"`
	RevisionMinutes int    `json:"revision_minutes,omitempty"`
	Revisions       int    `json:"revisions,omitempty"`

	DateReceived      string  `json:"date_received"`
	DateStarted       *string `json:"date_started,omitempty"`
	DateCompleted     *string `json:"date_completed,omitempty"`
	DateSentToCarrier *string `json:"date_sent_to_carrier,omitempty"`
	DateClosed        *string `json:"date_closed,omitempty"`

	Notes string `json:"notes,omitempty"`
}

// LoadBatchImport reads and parses a claim import JSON file.
func LoadBatchImport(path string) (*BatchImport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var batch BatchImport
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &batch, nil
}
