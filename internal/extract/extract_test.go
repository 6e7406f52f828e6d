package extract

import (
	"testing"

	"potrack/internal/model"
)

const sampleLetter = "Name of Candidate: John Roe SST Location: TX PO Number: 8891 " +
	"Personal Phone Number: 555-010-7788 Email ID: john.roe@example.com " +
	"Position that Applied: Java Developer Job Location: Dallas, TX " +
	"Implementation/End Client: AcmeCo Vendor Details: Beta LLC Rate: $60.00/hr " +
	"Interview Support Support by Alice Team Lead Bob Manager Carol Marketing Application v2"

func TestExtractFullLetter(t *testing.T) {
	f := Extract(sampleLetter)

	want := model.ExtractedFields{
		CandidateName:      "John Roe",
		Email:              "john.roe@example.com",
		PhoneNumber:        "555-010-7788",
		Location:           "TX",
		PositionApplied:    "Java Developer",
		JobLocation:        "Dallas, TX",
		EndClient:          "AcmeCo",
		Rate:               "60.00/hr",
		InterviewSupportBy: "Alice",
		TeamLead:           "Bob",
		Manager:            "Carol",
	}
	if f != want {
		t.Errorf("Extract mismatch:\n got %+v\nwant %+v", f, want)
	}
}

func TestExtractCandidateAndLocation(t *testing.T) {
	f := Extract("Name of Candidate: Jane Doe SST Location: USA")
	if f.CandidateName != "Jane Doe" {
		t.Errorf("candidate_name = %q; want %q", f.CandidateName, "Jane Doe")
	}
	if f.Location != "USA" {
		t.Errorf("location = %q; want %q", f.Location, "USA")
	}
}

func TestLocationIgnoresJobLocationLabel(t *testing.T) {
	// A job location starting with a short token must not leak into the
	// standalone location field.
	f := Extract("Job Location: Rio Rancho, NM Implementation/End Client: AcmeCo")
	if f.Location != "" {
		t.Errorf("location = %q; want empty", f.Location)
	}
	if f.JobLocation != "Rio Rancho, NM" {
		t.Errorf("job_location = %q; want %q", f.JobLocation, "Rio Rancho, NM")
	}

	f = Extract("SST Location: USA Job Location: Rio Rancho, NM")
	if f.Location != "USA" {
		t.Errorf("location = %q; want USA", f.Location)
	}
}

func TestExtractRate(t *testing.T) {
	f := Extract("Rate: $55.00/hr")
	if f.Rate != "55.00/hr" {
		t.Errorf("rate = %q; want %q", f.Rate, "55.00/hr")
	}
}

func TestExtractNeverFails(t *testing.T) {
	inputs := []string{
		"",
		"completely unrelated text about the weather",
		"Name of Candidate:",
		"Rate:",
		"<<<>>>",
	}
	for _, in := range inputs {
		f := Extract(in)
		if f.CandidateName != "" && in == "" {
			t.Errorf("Extract(%q): expected empty fields, got %+v", in, f)
		}
	}

	if f := Extract("no anchors here at all"); f != (model.ExtractedFields{}) {
		t.Errorf("unrelated text should yield all-empty fields, got %+v", f)
	}
}

func TestSectionIsolation(t *testing.T) {
	// The Manager label before the interview-support section must not win.
	text := "Manager John Smith approved this letter. " +
		"Interview Support Support by Alice Team Lead Bob Manager Carol " +
		"Marketing Application footer"

	f := Extract(text)
	if f.InterviewSupportBy != "Alice" {
		t.Errorf("interview_support_by = %q; want %q", f.InterviewSupportBy, "Alice")
	}
	if f.TeamLead != "Bob" {
		t.Errorf("team_lead = %q; want %q", f.TeamLead, "Bob")
	}
	if f.Manager != "Carol" {
		t.Errorf("manager = %q; want %q", f.Manager, "Carol")
	}
}

func TestSectionMissing(t *testing.T) {
	// Without the section, support fields stay empty even if the labels
	// appear elsewhere.
	f := Extract("Manager Dave says hello. Team Lead Erin agrees.")
	if f.InterviewSupportBy != "" || f.TeamLead != "" || f.Manager != "" {
		t.Errorf("support fields should be empty without the section, got %+v", f)
	}
}

func TestSectionEndsAtThanks(t *testing.T) {
	text := "Interview Support Support by Alice Team Lead Bob Manager Carol Thanks for reading"
	f := Extract(text)
	if f.Manager != "Carol" {
		t.Errorf("manager = %q; want %q", f.Manager, "Carol")
	}
}

func TestExtractMessage(t *testing.T) {
	msg := model.RawMessage{
		ID:       "m1",
		BodyHTML: "<html><body><p>Name of Candidate: Jane Doe SST Location: USA</p></body></html>",
	}
	f := ExtractMessage(msg)
	if f.CandidateName != "Jane Doe" || f.Location != "USA" {
		t.Errorf("ExtractMessage = %+v; want Jane Doe / USA", f)
	}
}
