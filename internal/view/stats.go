package view

import (
	"sort"
	"time"

	"potrack/internal/model"
)

const (
	// FilterAll disables the year or month constraint.
	FilterAll = "All"

	unknownName = "Unknown"
)

// SupportStatRow is one support person's share of the filtered records.
type SupportStatRow struct {
	Name       string   `json:"name"`
	Count      int      `json:"count"`
	Candidates []string `json:"candidates"`
}

// SupportStats counts records per interview-support person within the
// year/month filter. A record is subject to the period filter only when
// its timestamp parses; records with unparseable timestamps are always
// included, since no period can exclude them. Rows come back sorted by
// count descending, ties in first-encounter order.
func SupportStats(records []model.Record, year, month string) []SupportStatRow {
	var order []string
	counts := map[string]int{}
	candidates := map[string][]string{}
	seenCandidate := map[string]map[string]bool{}

	for _, r := range records {
		if t, ok := model.ParseReceivedTime(r.ReceivedDateTime); ok {
			if year != FilterAll && year != "" && t.Format("2006") != year {
				continue
			}
			if month != FilterAll && month != "" && t.Format("01") != month {
				continue
			}
		}

		name := r.Extracted.InterviewSupportBy
		if name == "" {
			name = unknownName
		}

		if _, ok := counts[name]; !ok {
			order = append(order, name)
			seenCandidate[name] = map[string]bool{}
		}
		counts[name]++

		candidate := r.Extracted.CandidateName
		if candidate == "" {
			candidate = unknownName
		}
		if !seenCandidate[name][candidate] {
			seenCandidate[name][candidate] = true
			candidates[name] = append(candidates[name], candidate)
		}
	}

	rows := make([]SupportStatRow, 0, len(order))
	for _, name := range order {
		rows = append(rows, SupportStatRow{
			Name:       name,
			Count:      counts[name],
			Candidates: candidates[name],
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})

	return rows
}

// LatestPeriod returns the year and month of the most recent parseable
// received timestamp, for seeding unset period filters. With no parseable
// timestamps both come back as FilterAll.
func LatestPeriod(records []model.Record) (year, month string) {
	var latest time.Time
	found := false

	for _, r := range records {
		t, ok := model.ParseReceivedTime(r.ReceivedDateTime)
		if !ok {
			continue
		}
		if !found || t.After(latest) {
			latest = t
			found = true
		}
	}

	if !found {
		return FilterAll, FilterAll
	}
	return latest.Format("2006"), latest.Format("01")
}
