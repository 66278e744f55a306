package kpi

import "math"

// SeverityTarget is the expected time budget and value band for one severity
// class. Used as a display aid on the scorecard; nothing enforces it.
type SeverityTarget struct {
	TimeLabel string
	ValueMin  float64
	ValueMax  float64 // +Inf for the open-ended top band
}

// SeverityTargets maps severity 1-5 to department expectations.
var SeverityTargets = map[int]SeverityTarget{
	1: {TimeLabel: "< 30 mins", ValueMin: 2000, ValueMax: 5000},
	2: {TimeLabel: "< 1 hour", ValueMin: 5000, ValueMax: 15000},
	3: {TimeLabel: "< 3 hours", ValueMin: 15000, ValueMax: 50000},
	4: {TimeLabel: "< 6 hours", ValueMin: 50000, ValueMax: 150000},
	5: {TimeLabel: "< 12 hours", ValueMin: 150000, ValueMax: math.Inf(1)},
}
