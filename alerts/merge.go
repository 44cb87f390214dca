package alerts

import (
	"sort"
	"time"

	"github.com/rustyeddy/traidal/journal"
)

// DefaultRetention is how long an alert is kept after it was created.
const DefaultRetention = 7 * 24 * time.Hour

// MergeResult is the alert list to persist after a refresh.
type MergeResult struct {
	// Alerts is the merged set, newest first.
	Alerts []journal.TradingAlert
	// Added are fresh alerts that matched nothing stored.
	Added []journal.TradingAlert
	// Removed holds IDs of stored alerts to delete.
	Removed []string
}

// Merge reconciles freshly detected alerts with the stored ones. Alerts are
// matched by Key. A fresh alert that matches a live stored alert takes over
// its ID, creation time and read flag so a condition that persists is
// reported once. Stored alerts that were not detected again are kept until
// they age past retention. Expired or duplicated stored alerts are listed in
// Removed. A retention of zero or less uses DefaultRetention.
func Merge(fresh, stored []journal.TradingAlert, now time.Time, retention time.Duration) MergeResult {
	if retention <= 0 {
		retention = DefaultRetention
	}
	cutoff := now.Add(-retention)

	var res MergeResult
	live := make(map[string]journal.TradingAlert)
	for _, a := range stored {
		if a.CreatedAt.Before(cutoff) {
			res.Removed = append(res.Removed, a.ID)
			continue
		}
		prev, ok := live[a.Key()]
		if !ok {
			live[a.Key()] = a
			continue
		}
		if a.CreatedAt.After(prev.CreatedAt) {
			live[a.Key()] = a
			a = prev
		}
		res.Removed = append(res.Removed, a.ID)
	}

	seen := make(map[string]bool)
	for _, a := range fresh {
		key := a.Key()
		if seen[key] {
			continue
		}
		seen[key] = true

		if prev, ok := live[key]; ok {
			a.ID = prev.ID
			a.CreatedAt = prev.CreatedAt
			a.IsRead = prev.IsRead
			delete(live, key)
		} else {
			res.Added = append(res.Added, a)
		}
		res.Alerts = append(res.Alerts, a)
	}
	for _, a := range live {
		res.Alerts = append(res.Alerts, a)
	}

	SortNewestFirst(res.Alerts)
	sort.Strings(res.Removed)
	return res
}

// SortNewestFirst orders alerts by creation time, newest first, then by ID.
func SortNewestFirst(alerts []journal.TradingAlert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		if !alerts[i].CreatedAt.Equal(alerts[j].CreatedAt) {
			return alerts[i].CreatedAt.After(alerts[j].CreatedAt)
		}
		return alerts[i].ID < alerts[j].ID
	})
}

// MarkRead returns a copy of alerts with the alert id flagged as read.
func MarkRead(alerts []journal.TradingAlert, id string) ([]journal.TradingAlert, bool) {
	out := make([]journal.TradingAlert, len(alerts))
	copy(out, alerts)
	for i := range out {
		if out[i].ID == id {
			out[i].IsRead = true
			return out, true
		}
	}
	return out, false
}

// MarkAllRead returns a copy of alerts with every alert flagged as read.
func MarkAllRead(alerts []journal.TradingAlert) []journal.TradingAlert {
	out := make([]journal.TradingAlert, len(alerts))
	for i, a := range alerts {
		a.IsRead = true
		out[i] = a
	}
	return out
}

// Dismiss returns alerts without the alert id.
func Dismiss(alerts []journal.TradingAlert, id string) ([]journal.TradingAlert, bool) {
	out := make([]journal.TradingAlert, 0, len(alerts))
	found := false
	for _, a := range alerts {
		if a.ID == id {
			found = true
			continue
		}
		out = append(out, a)
	}
	return out, found
}

// UnreadCount reports how many alerts are unread.
func UnreadCount(alerts []journal.TradingAlert) int {
	n := 0
	for _, a := range alerts {
		if !a.IsRead {
			n++
		}
	}
	return n
}
