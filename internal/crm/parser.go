// Package crm extracts structured claim fields from CRM copy-paste text.
//
// The CRM renders fields in a mix of formats: "Label\nValue",
// "Label: Value", and multi-line address blocks. Every field is optional;
// a partial parse is still useful for prefilling the intake form.
package crm

import (
	"regexp"
	"strconv"
	"strings"
)

// ParsedClaim holds whatever fields the parser could recover. Zero values
// mean the field was not found.
type ParsedClaim struct {
	FileNumber    string
	ClientName    string
	ClientPhone   string
	ClientEmail   string
	LossState     string
	LossDate      string // normalized YYYY-MM-DD
	Peril         string
	Carrier       string
	ClaimNumber   string
	PolicyNumber  string
	Severity      int // 1-5, 0 when not found
	Description   string
	EstimateValue float64
}

var (
	fileNumberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)File\s*#\s*\n([A-Z]{2}-\d{7,})`),
		regexp.MustCompile(`(?i)File\s*#\s*:?\s*([A-Z]{2}-\d{7,})`),
		regexp.MustCompile(`\b([A-Z]{2}-20\d{8,})\b`),
	}
	clientNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`Client\s*\n\s*([A-Za-z][A-Za-z\s,.'-]+)`),
		regexp.MustCompile(`\n([A-Z][a-z]+\s*,\s*[A-Z][a-z]+)\s*\n`),
	}
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\(\d{3}\)\s*\d{3}[-.]?\d{4})`),
		regexp.MustCompile(`(\d{3}[-.]?\d{3}[-.]?\d{4})`),
	}
	emailPattern = regexp.MustCompile(`([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)
	statePattern = regexp.MustCompile(`\b([A-Z]{2})\s+\d{5}(?:-\d{4})?`)

	lossDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Date/Time of Loss\s*\n?\s*(.+)`),
		regexp.MustCompile(`(?i)Date of Loss:?\s*\n?\s*(\d{1,2}/\d{1,2}/\d{4})`),
		regexp.MustCompile(`(?i)Loss Date\s*\n?\s*(\d{1,2}/\d{1,2}/\d{4})`),
		regexp.MustCompile(`(?i)(?:Date of Loss|Loss Date)[:\s]*(\w+\s+\d{1,2},?\s+\d{4})`),
		regexp.MustCompile(`[Ll]oss.*?(\d{1,2}/\d{1,2}/\d{4})`),
	}
	perilPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Peril\s*\n([A-Za-z]+)`),
		regexp.MustCompile(`(?i)Peril:?\s*([A-Za-z]+)`),
		regexp.MustCompile(`(?i)Loss:\s*([A-Za-z]+)\s+on\s+`),
	}
	carrierPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Carrier\s*\n([A-Za-z][A-Za-z\s&.'-]+)`),
		regexp.MustCompile(`(?m)^([A-Za-z][A-Za-z\s&.'-]+Insurance[A-Za-z\s&.'-]*)`),
		regexp.MustCompile(`(?m)^([A-Za-z][A-Za-z\s&.'-]+Mutual[A-Za-z\s&.'-]*)`),
		regexp.MustCompile(`(?m)^([A-Za-z][A-Za-z\s&.'-]+Indemnity[A-Za-z\s&.'-]*)`),
	}
	claimNumberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Claim\s*#\s*:?\s*\n?\s*(\d{5,})`),
		regexp.MustCompile(`(?i)Claim\s*Number\s*:?\s*\n?\s*(\d{5,})`),
	}
	policyNumberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Policy\s*#\s*:?\s*\n?\s*([A-Z0-9][A-Z0-9-]{4,})`),
		regexp.MustCompile(`(?i)Policy\s*Number\s*:?\s*\n?\s*([A-Z0-9][A-Z0-9-]{4,})`),
	}
	severityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Claim Severity\s*\n.*?\n([A-Za-z0-9]+)`),
		regexp.MustCompile(`(?i)Severity\s*\n.*?([A-Za-z0-9]+)`),
	}
	descriptionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Description of Loss:?\s*\n?([^\n]+)`),
	}
	estimateValuePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Estimated Loss Amount\s*\n?\$?([\d,.]+)`),
		regexp.MustCompile(`(?i)Carrier Estimate.*?\$?([\d,.]+)`),
	}

	slashDatePattern = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)
	wordDatePattern  = regexp.MustCompile(`(?i)(\w+)\s+(\d{1,2}),?\s+(\d{4})`)
	isoDatePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	trailingLabelPattern = regexp.MustCompile(`\s*(Client Type|Individual|Company|Type|Additional).*$`)
	lastFirstPattern     = regexp.MustCompile(`^([^,]+?)\s*,\s*(.+)$`)
)

// stopWords are CRM labels and role titles that run into parsed values when
// the paste collapses adjacent fields.
var stopWords = []string{
	"Policy", "Claim", "File", "Client", "Loss", "Peril", "Carrier", "Severity",
	"Case Manager", "Account Manager", "Account Executive", "Estimator", "Adjuster",
	"Referral Source", "Property Type", "Workflow", "Assigned",
}

var monthNumbers = map[string]string{
	"january": "01", "february": "02", "march": "03", "april": "04",
	"may": "05", "june": "06", "july": "07", "august": "08",
	"september": "09", "october": "10", "november": "11", "december": "12",
	"jan": "01", "feb": "02", "mar": "03", "apr": "04", "jun": "06",
	"jul": "07", "aug": "08", "sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

// Parse extracts as many fields as possible from raw paste text.
func Parse(raw string) ParsedClaim {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	p := ParsedClaim{
		FileNumber:   firstMatch(text, fileNumberPatterns),
		ClientName:   normalizeClientName(firstMatch(text, clientNamePatterns)),
		ClientPhone:  firstMatch(text, phonePatterns),
		ClientEmail:  firstMatch(text, []*regexp.Regexp{emailPattern}),
		LossState:    firstMatch(text, []*regexp.Regexp{statePattern}),
		LossDate:     normalizeDate(firstMatch(text, lossDatePatterns)),
		Peril:        normalizePeril(firstMatch(text, perilPatterns)),
		Carrier:      stripTrailingLabels(firstMatch(text, carrierPatterns)),
		ClaimNumber:  firstMatch(text, claimNumberPatterns),
		PolicyNumber: firstMatch(text, policyNumberPatterns),
		Severity:     parseSeverity(firstMatch(text, severityPatterns)),
		Description:  firstMatch(text, descriptionPatterns),
	}
	p.EstimateValue = parseDollar(firstMatch(text, estimateValuePatterns))
	return p
}

// IsEmpty reports whether nothing at all was recovered.
func (p ParsedClaim) IsEmpty() bool {
	return p == ParsedClaim{}
}

func firstMatch(text string, patterns []*regexp.Regexp) string {
	for _, p := range patterns {
		m := p.FindStringSubmatch(text)
		if len(m) > 1 && strings.TrimSpace(m[1]) != "" {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// parseSeverity maps severity text ("Light", "Moderate", "Catastrophic", or a
// bare digit) to the 1-5 scale.
func parseSeverity(text string) int {
	lower := strings.ToLower(strings.TrimSpace(text))
	switch {
	case lower == "":
		return 0
	case strings.Contains(lower, "light") || lower == "1":
		return 1
	case strings.Contains(lower, "moderate") || lower == "2":
		return 2
	case strings.Contains(lower, "medium") || lower == "3":
		return 3
	case strings.Contains(lower, "significant") || strings.Contains(lower, "heavy") || lower == "4":
		return 4
	case strings.Contains(lower, "catastrophic") || strings.Contains(lower, "severe") || lower == "5":
		return 5
	}
	if n, err := strconv.Atoi(lower); err == nil && n >= 1 && n <= 5 {
		return n
	}
	return 0
}

// normalizeDate converts M/D/YYYY, "April 15, 2024", or YYYY-MM-DD to
// YYYY-MM-DD. Unrecognized formats yield "".
func normalizeDate(text string) string {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return ""
	}

	if m := slashDatePattern.FindStringSubmatch(clean); m != nil {
		return m[3] + "-" + pad2(m[1]) + "-" + pad2(m[2])
	}
	if m := wordDatePattern.FindStringSubmatch(clean); m != nil {
		if mm, ok := monthNumbers[strings.ToLower(m[1])]; ok {
			return m[3] + "-" + mm + "-" + pad2(m[2])
		}
	}
	if isoDatePattern.MatchString(clean) {
		return clean
	}
	return ""
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// normalizePeril maps free-text peril descriptions onto the canonical
// lowercase categories, falling back to "other".
func normalizePeril(text string) string {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return ""
	}
	for _, key := range []string{
		"hail", "hurricane", "tornado", "wind", "flood", "fire", "smoke",
		"water", "theft", "vandalism", "collapse",
	} {
		if strings.Contains(lower, key) {
			return key
		}
	}
	return "other"
}

// parseDollar strips currency formatting and parses the amount. Zero and
// unparseable values yield 0.
func parseDollar(text string) float64 {
	clean := strings.NewReplacer("$", "", ",", "", " ", "").Replace(text)
	if clean == "" {
		return 0
	}
	n, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0
	}
	return n
}

// normalizeClientName flips "Last, First" to "First Last" and strips CRM
// labels that ran into the value.
func normalizeClientName(text string) string {
	name := trailingLabelPattern.ReplaceAllString(strings.TrimSpace(text), "")
	name = strings.TrimSpace(name)
	if m := lastFirstPattern.FindStringSubmatch(name); m != nil {
		name = strings.TrimSpace(m[2]) + " " + strings.TrimSpace(m[1])
	}
	return name
}

// stripTrailingLabels cuts a parsed value at the first embedded CRM label.
func stripTrailingLabels(text string) string {
	result := strings.TrimSpace(text)
	for _, stop := range stopWords {
		idx := strings.Index(result, stop)
		if idx > 0 {
			before := strings.TrimSpace(result[:idx])
			if len(before) >= 3 {
				result = before
				break
			}
		}
	}
	return strings.TrimSpace(result)
}
