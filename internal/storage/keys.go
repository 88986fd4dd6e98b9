package storage

import "fmt"

// ObjectKey locates one availability snapshot in the bucket. Snapshots are
// grouped by the day the lookup ran so that repeated runs stay browsable.
type ObjectKey struct {
	Date  string // in YYYY-MM-DD format
	RunID string // UUID passed from orchestration
}

func (k ObjectKey) Key() string {
	return fmt.Sprintf("availability/%s/%s.json", k.Date, k.RunID)
}
