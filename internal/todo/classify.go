package todo

import "time"

// Bucket is the section a task lands in.
type Bucket int

const (
	BucketOverdue Bucket = iota
	BucketToday
	BucketRestOfWeek
	BucketDated
	BucketLater
	BucketInactive
	// BucketHidden tasks are dropped, never stored.
	BucketHidden
)

func (b Bucket) String() string {
	switch b {
	case BucketOverdue:
		return "overdue"
	case BucketToday:
		return "today"
	case BucketRestOfWeek:
		return "rest of week"
	case BucketDated:
		return "dated"
	case BucketLater:
		return "later"
	case BucketInactive:
		return "inactive"
	default:
		return "hidden"
	}
}

// Classify picks the bucket for a task due on due.
func Classify(due time.Time, v Visibility, h Horizon) Bucket {
	switch v {
	case Hidden:
		return BucketHidden
	case Inactive:
		return BucketInactive
	}
	switch {
	case due.Before(h.Today):
		return BucketOverdue
	case due.Equal(h.Today):
		return BucketToday
	case due.Before(h.FirstFullWeekStart):
		return BucketRestOfWeek
	case due.After(h.End):
		return BucketLater
	default:
		return BucketDated
	}
}
