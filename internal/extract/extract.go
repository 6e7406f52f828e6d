package extract

import (
	"regexp"
	"strings"
	"unicode"

	"potrack/internal/model"
)

// The letter template is parsed with a declarative field grammar: each
// field names an anchor label and the terminator labels that bound its
// value. A single generic span pattern interprets the table; fields whose
// value has a recognizable shape (phone, email, rate, location code)
// capture that shape directly instead of running label-to-label.

type fieldSpec struct {
	field       string
	anchor      string
	terminators []string
}

var spanFields = []fieldSpec{
	{"candidate_name", "Name of Candidate:", []string{"SST", "Location", "PO"}},
	{"position_applied", "Position that Applied:", []string{"Job Location"}},
	{"job_location", "Job Location:", []string{"Implementation/End Client"}},
	{"end_client", "Implementation/End Client", []string{"Vendor Details", "Rate:"}},
}

var shapeFields = []struct {
	field   string
	pattern string
}{
	{"phone_number", `(?i)Personal\s+Phone\s+Number\s*:?\s*([\d+().\- ]+)`},
	{"email", `(?i)Email\s+ID\s*:?\s*([A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,})`},
	{"rate", `(?i)Rate\s*:\s*\$?\s*([0-9][0-9.,]*(?:\s*/\s*[A-Za-z]+)?)`},
}

// The "Location" label is shared with "Job Location". RE2 has no
// lookbehind, so the optional "Job" prefix is captured and matches
// carrying it are skipped.
var locationRe = regexp.MustCompile(`(?i)\b(?:(Job)\s+)?Location\s*:?\s*([A-Za-z]{2,3})\b`)

type rule struct {
	field string
	re    *regexp.Regexp
}

var rules = compileRules()

func compileRules() []rule {
	out := make([]rule, 0, len(spanFields)+len(shapeFields))
	for _, f := range spanFields {
		out = append(out, rule{f.field, spanPattern(f.anchor, f.terminators)})
	}
	for _, f := range shapeFields {
		out = append(out, rule{f.field, regexp.MustCompile(f.pattern)})
	}
	return out
}

// spanPattern builds the generic labeled-span matcher: anchor, optional
// colon, then a non-greedy capture bounded by the first terminator label
// or end of text.
func spanPattern(anchor string, terminators []string) *regexp.Regexp {
	alts := make([]string, 0, len(terminators)+1)
	for _, t := range terminators {
		q := flexible(t)
		if endsInWord(t) {
			q += `\b`
		}
		alts = append(alts, q)
	}
	alts = append(alts, `$`)
	return regexp.MustCompile(`(?is)` + flexible(anchor) + `\s*:?\s*(.*?)\s*(?:` + strings.Join(alts, "|") + `)`)
}

// flexible quotes a label and lets its spaces match any whitespace run.
func flexible(label string) string {
	return strings.ReplaceAll(regexp.QuoteMeta(label), " ", `\s+`)
}

func endsInWord(label string) bool {
	r := rune(label[len(label)-1])
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// Interview-support fields only count inside the bounded section, so a
// stray "Manager" label elsewhere in the letter is never captured.
var (
	supportSpanRe = regexp.MustCompile(`(?is)Interview\s+Support.*?Support\s+by\s*:?\s*(.*?)\s*(?:Marketing\s+Application|Thanks\b|$)`)
	supportByRe   = regexp.MustCompile(`(?is)^(.*?)\s*(?:Team\s+Lead\b|$)`)
	teamLeadRe    = regexp.MustCompile(`(?is)Team\s+Lead\s*:?\s*(.*?)\s*(?:Manager\b|$)`)
	managerRe     = regexp.MustCompile(`(?is)Manager\s*:?\s*(.*?)\s*(?:Marketing\b|$)`)
)

// Extract applies the field grammar to normalized text. Total: on any
// input, including empty or unrelated text, it returns a complete
// ExtractedFields with "" for every field whose anchor is missing.
func Extract(text string) model.ExtractedFields {
	var f model.ExtractedFields

	for _, r := range rules {
		if m := r.re.FindStringSubmatch(text); m != nil {
			setField(&f, r.field, strings.TrimSpace(m[1]))
		}
	}

	for _, m := range locationRe.FindAllStringSubmatch(text, -1) {
		if m[1] != "" {
			continue // "Job Location" belongs to job_location
		}
		f.Location = strings.TrimSpace(m[2])
		break
	}

	if m := supportSpanRe.FindStringSubmatch(text); m != nil {
		span := m[1]
		f.InterviewSupportBy = firstGroup(supportByRe, span)
		f.TeamLead = firstGroup(teamLeadRe, span)
		f.Manager = firstGroup(managerRe, span)
	}

	return f
}

// ExtractMessage normalizes a fetched message body and extracts fields.
func ExtractMessage(msg model.RawMessage) model.ExtractedFields {
	return Extract(Normalize(msg.BodyHTML))
}

func firstGroup(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func setField(f *model.ExtractedFields, name, value string) {
	switch name {
	case "candidate_name":
		f.CandidateName = value
	case "phone_number":
		f.PhoneNumber = value
	case "email":
		f.Email = value
	case "position_applied":
		f.PositionApplied = value
	case "job_location":
		f.JobLocation = value
	case "end_client":
		f.EndClient = value
	case "rate":
		f.Rate = value
	}
}
