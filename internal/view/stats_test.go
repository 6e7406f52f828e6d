package view

import (
	"reflect"
	"testing"

	"potrack/internal/model"
)

func statRec(id, received, supportBy, candidate string) model.Record {
	return model.Record{
		RawMessage: model.RawMessage{ID: id, Subject: "s", ReceivedDateTime: received},
		Extracted: model.ExtractedFields{
			InterviewSupportBy: supportBy,
			CandidateName:      candidate,
		},
	}
}

func TestSupportStatsCountsAndOrder(t *testing.T) {
	records := []model.Record{
		statRec("1", "2024-03-01T00:00:00Z", "Bea", "Cand One"),
		statRec("2", "2024-03-02T00:00:00Z", "Alda", "Cand Two"),
		statRec("3", "2024-03-03T00:00:00Z", "Alda", "Cand Two"),
		statRec("4", "2024-03-04T00:00:00Z", "Alda", "Cand Three"),
	}

	rows := SupportStats(records, "2024", "03")
	if len(rows) != 2 {
		t.Fatalf("got %d rows; want 2", len(rows))
	}

	if rows[0].Name != "Alda" || rows[0].Count != 3 {
		t.Errorf("row 0 = %+v; want Alda count 3", rows[0])
	}
	if rows[1].Name != "Bea" || rows[1].Count != 1 {
		t.Errorf("row 1 = %+v; want Bea count 1", rows[1])
	}

	// Distinct candidates in first-seen order.
	if !reflect.DeepEqual(rows[0].Candidates, []string{"Cand Two", "Cand Three"}) {
		t.Errorf("Alda candidates = %v", rows[0].Candidates)
	}
}

func TestSupportStatsPeriodFilter(t *testing.T) {
	records := []model.Record{
		statRec("1", "2024-03-01T00:00:00Z", "Alda", "C1"),
		statRec("2", "2024-02-01T00:00:00Z", "Alda", "C2"), // filtered out
		statRec("3", "2023-03-01T00:00:00Z", "Alda", "C3"), // filtered out
	}

	rows := SupportStats(records, "2024", "03")
	if len(rows) != 1 || rows[0].Count != 1 {
		t.Fatalf("rows = %+v; want single Alda row with count 1", rows)
	}
}

func TestSupportStatsUnparseableAlwaysIncluded(t *testing.T) {
	records := []model.Record{
		statRec("1", "2024-03-01T00:00:00Z", "Alda", "C1"),
		statRec("2", "2024-03-02T00:00:00Z", "Alda", "C2"),
		statRec("3", "2024-03-03T00:00:00Z", "Alda", "C3"),
		statRec("4", "2024-03-04T00:00:00Z", "Bea", "C4"),
		statRec("5", "garbage", "Cole", "C5"),
	}

	rows := SupportStats(records, "2024", "03")
	if len(rows) != 3 {
		t.Fatalf("got %d rows; want 3 (unparseable record must not be filtered)", len(rows))
	}
	found := false
	for _, r := range rows {
		if r.Name == "Cole" && r.Count == 1 {
			found = true
		}
	}
	if !found {
		t.Errorf("record with unparseable date missing from rows: %+v", rows)
	}
}

func TestSupportStatsAllPassesEverything(t *testing.T) {
	records := []model.Record{
		statRec("1", "2024-03-01T00:00:00Z", "Alda", "C1"),
		statRec("2", "2023-01-01T00:00:00Z", "Alda", "C2"),
	}

	rows := SupportStats(records, FilterAll, FilterAll)
	if len(rows) != 1 || rows[0].Count != 2 {
		t.Errorf("rows = %+v; want Alda count 2", rows)
	}
}

func TestSupportStatsUnknownFallbacks(t *testing.T) {
	records := []model.Record{
		statRec("1", "2024-03-01T00:00:00Z", "", ""),
	}

	rows := SupportStats(records, FilterAll, FilterAll)
	if len(rows) != 1 || rows[0].Name != "Unknown" {
		t.Fatalf("rows = %+v; want single Unknown row", rows)
	}
	if !reflect.DeepEqual(rows[0].Candidates, []string{"Unknown"}) {
		t.Errorf("candidates = %v; want [Unknown]", rows[0].Candidates)
	}
}

func TestLatestPeriod(t *testing.T) {
	records := []model.Record{
		statRec("1", "2023-11-30T00:00:00Z", "A", "C"),
		statRec("2", "2024-03-05T10:00:00Z", "A", "C"),
		statRec("3", "garbage", "A", "C"),
	}

	year, month := LatestPeriod(records)
	if year != "2024" || month != "03" {
		t.Errorf("LatestPeriod = %s/%s; want 2024/03", year, month)
	}
}

func TestLatestPeriodNoParseableDates(t *testing.T) {
	records := []model.Record{
		statRec("1", "", "A", "C"),
		statRec("2", "garbage", "A", "C"),
	}

	year, month := LatestPeriod(records)
	if year != FilterAll || month != FilterAll {
		t.Errorf("LatestPeriod = %s/%s; want All/All", year, month)
	}
}
