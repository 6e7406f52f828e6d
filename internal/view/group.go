package view

import (
	"sort"
	"strings"
	"time"

	"potrack/internal/model"
)

// Derived views are pure functions of the record set and the active
// filters: same inputs, same outputs, no hidden state. The API recomputes
// them on every request.

const (
	unknownMonthLabel = "Unknown Month"
	unknownMonthKey   = "0000-00"
	unknownCompany    = "Unknown Company"
	untitledGroup     = "Untitled"
)

// CandidateGroup is the per-candidate partition inside one month bucket.
type CandidateGroup struct {
	Key         string         `json:"key"`
	DisplayName string         `json:"displayName"`
	Records     []model.Record `json:"records"`
	Deduped     []model.Record `json:"deduped"`
}

// MonthBucket groups records sharing the calendar month of receipt.
type MonthBucket struct {
	Label  string           `json:"label"`
	Key    string           `json:"key"`
	Groups []CandidateGroup `json:"groups"`
}

// Filter keeps records whose searchable text contains the query,
// case-insensitively. An empty (or all-whitespace) query keeps everything.
func Filter(records []model.Record, query string) []model.Record {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return records
	}

	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if strings.Contains(searchText(r), q) {
			out = append(out, r)
		}
	}
	return out
}

func searchText(r model.Record) string {
	parts := []string{r.Subject}
	if r.From != nil {
		parts = append(parts, r.From.Name, r.From.Address)
	}
	parts = append(parts,
		r.ReceivedDateTime,
		r.Extracted.CandidateName,
		r.Extracted.Email,
		r.Extracted.Location,
		r.Extracted.JobLocation,
		r.Extracted.EndClient,
		r.Extracted.Rate,
	)
	return strings.ToLower(strings.Join(parts, " "))
}

// MonthBuckets buckets records by receipt month and partitions each
// bucket by candidate. Buckets are emitted most recent month first
// (lexical key descending, so the "0000-00" sentinel sorts last);
// groups keep insertion order.
func MonthBuckets(records []model.Record) []MonthBucket {
	var buckets []MonthBucket
	bucketIdx := map[string]int{}
	groupIdx := map[string]map[string]int{}

	for _, r := range records {
		label, key := monthOf(r)

		bi, ok := bucketIdx[key]
		if !ok {
			bi = len(buckets)
			bucketIdx[key] = bi
			groupIdx[key] = map[string]int{}
			buckets = append(buckets, MonthBucket{Label: label, Key: key})
		}

		gKey := candidateKey(r)
		gi, ok := groupIdx[key][gKey]
		if !ok {
			gi = len(buckets[bi].Groups)
			groupIdx[key][gKey] = gi
			buckets[bi].Groups = append(buckets[bi].Groups, CandidateGroup{
				Key:         gKey,
				DisplayName: gKey,
			})
		}

		buckets[bi].Groups[gi].Records = append(buckets[bi].Groups[gi].Records, r)
	}

	for bi := range buckets {
		for gi := range buckets[bi].Groups {
			g := &buckets[bi].Groups[gi]
			g.Deduped = DedupByCompany(g.Records)
		}
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Key > buckets[j].Key
	})

	return buckets
}

// DedupByCompany keeps at most one record per company key, the one with
// the greatest received timestamp (ties go to the later-encountered
// record), and returns the survivors received-descending.
func DedupByCompany(records []model.Record) []model.Record {
	type survivor struct {
		rec model.Record
		t   time.Time
	}

	var order []string
	best := map[string]survivor{}

	for _, r := range records {
		key := companyKey(r)
		t := receivedOrEpoch(r)

		cur, seen := best[key]
		if !seen {
			order = append(order, key)
		}
		if !seen || !t.Before(cur.t) {
			best[key] = survivor{rec: r, t: t}
		}
	}

	survivors := make([]survivor, 0, len(order))
	for _, key := range order {
		survivors = append(survivors, best[key])
	}

	sort.SliceStable(survivors, func(i, j int) bool {
		return survivors[i].t.After(survivors[j].t)
	})

	out := make([]model.Record, 0, len(survivors))
	for _, s := range survivors {
		out = append(out, s.rec)
	}
	return out
}

func monthOf(r model.Record) (label, key string) {
	t, ok := model.ParseReceivedTime(r.ReceivedDateTime)
	if !ok {
		return unknownMonthLabel, unknownMonthKey
	}
	return t.Format("January 2006"), t.Format("2006-01")
}

func candidateKey(r model.Record) string {
	if r.Extracted.CandidateName != "" {
		return r.Extracted.CandidateName
	}
	if r.Subject != "" {
		return r.Subject
	}
	return untitledGroup
}

func companyKey(r model.Record) string {
	if r.Extracted.EndClient != "" {
		return r.Extracted.EndClient
	}
	if r.Extracted.JobLocation != "" {
		return r.Extracted.JobLocation
	}
	return unknownCompany
}

// receivedOrEpoch parses the received timestamp, falling back to the Unix
// epoch so malformed dates always sort after real ones.
func receivedOrEpoch(r model.Record) time.Time {
	if t, ok := model.ParseReceivedTime(r.ReceivedDateTime); ok {
		return t
	}
	return time.Unix(0, 0).UTC()
}
