package model

import "time"

// Sender is the parsed From header of a fetched message.
type Sender struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// RawMessage is one message as fetched from the mailbox API. It is never
// mutated after fetch; re-fetching the same id replaces the row wholesale.
type RawMessage struct {
	ID               string  `json:"id"`
	Subject          string  `json:"subject"`
	From             *Sender `json:"from"`
	ReceivedDateTime string  `json:"receivedDateTime"`
	BodyPreview      string  `json:"bodyPreview"`
	WebLink          string  `json:"webLink"`
	BodyHTML         string  `json:"-"`
}

// ExtractedFields holds the labeled values pulled out of a message body.
// Every field is either a trimmed non-empty string or "" for absent;
// extraction is total and never fails.
type ExtractedFields struct {
	CandidateName      string `json:"candidate_name"`
	Email              string `json:"email"`
	PhoneNumber        string `json:"phone_number"`
	Location           string `json:"location"`
	PositionApplied    string `json:"position_applied"`
	JobLocation        string `json:"job_location"`
	EndClient          string `json:"end_client"`
	Rate               string `json:"rate"`
	InterviewSupportBy string `json:"interview_support_by"`
	TeamLead           string `json:"team_lead"`
	Manager            string `json:"manager"`
}

// Record is a RawMessage joined with its extracted fields; the unit the
// API serves and the views aggregate over.
type Record struct {
	RawMessage
	Extracted ExtractedFields `json:"extracted"`
}

// receivedDateTime layouts seen from the mailbox API: RFC 3339 with or
// without fractional seconds, plus a zoneless variant.
var receivedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// ParseReceivedTime parses a receivedDateTime string. ok is false for
// missing or malformed values; callers treat those as the epoch sentinel.
func ParseReceivedTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range receivedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
