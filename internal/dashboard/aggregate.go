package dashboard

import (
	"sort"
	"time"

	"github.com/facilityhub/maintenance-backend/pkg/db/models"
	"github.com/facilityhub/maintenance-backend/pkg/enums"
)

const flowDays = 30

// Stats is the dashboard headline block.
type Stats struct {
	OpenCount            int                   `json:"openCount"`
	HighPriorityCount    int                   `json:"highPriorityCount"`
	HighPriorityRequests []HighPriorityRequest `json:"highPriorityRequests"`
}

// HighPriorityRequest is the open+HIGH projection shown on the dashboard.
type HighPriorityRequest struct {
	ID        uint    `json:"id"`
	Equipment string  `json:"equipment"`
	Location  *string `json:"location"`
}

// FlowBucket is one calendar day of created/completed counts. Key names keep
// the wire format the dashboard chart binds to.
type FlowBucket struct {
	Date       string `json:"date"`
	Criados    int    `json:"Criados"`
	Concluidos int    `json:"Concluídos"`
}

// ComputeStats counts open records and projects the open high-priority subset,
// ordered by start date ascending. Records without a start date sort last.
func ComputeStats(rows []models.Maintenance) Stats {
	stats := Stats{HighPriorityRequests: []HighPriorityRequest{}}

	var high []models.Maintenance
	for _, row := range rows {
		if !row.Status.IsOpen() {
			continue
		}
		stats.OpenCount++
		if row.Priority == enums.PriorityHigh {
			stats.HighPriorityCount++
			high = append(high, row)
		}
	}

	sort.SliceStable(high, func(i, j int) bool {
		a, b := high[i].StartDate, high[j].StartDate
		switch {
		case a == nil && b == nil:
			return high[i].ID < high[j].ID
		case a == nil:
			return false
		case b == nil:
			return true
		case a.Equal(*b):
			return high[i].ID < high[j].ID
		default:
			return a.Before(*b)
		}
	})

	for _, row := range high {
		stats.HighPriorityRequests = append(stats.HighPriorityRequests, HighPriorityRequest{
			ID:        row.ID,
			Equipment: row.Equipment,
			Location:  row.Location,
		})
	}

	return stats
}

// WindowStart returns midnight (UTC) of the day 29 days before reference, the
// first of the 30 flow days.
func WindowStart(reference time.Time) time.Time {
	day := reference.UTC().AddDate(0, 0, -(flowDays - 1))
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}

// ComputeFlow buckets creations and completions into the 30 calendar days
// ending at reference. Timestamps landing outside [0,30) are dropped, never
// clamped, so the two counters stay independent per record.
func ComputeFlow(reference time.Time, rows []models.Maintenance) []FlowBucket {
	start := WindowStart(reference)

	buckets := make([]FlowBucket, flowDays)
	for i := range buckets {
		buckets[i].Date = start.AddDate(0, 0, i).Format("Jan 02")
	}

	for _, row := range rows {
		if idx, ok := bucketIndex(start, row.CreatedAt); ok {
			buckets[idx].Criados++
		}
		if row.Status == enums.StatusCompleted && row.CompletionDate != nil {
			if idx, ok := bucketIndex(start, *row.CompletionDate); ok {
				buckets[idx].Concluidos++
			}
		}
	}

	return buckets
}

func bucketIndex(start, ts time.Time) (int, bool) {
	idx := int(ts.UTC().Sub(start) / (24 * time.Hour))
	if ts.UTC().Before(start) || idx < 0 || idx >= flowDays {
		return 0, false
	}
	return idx, true
}
