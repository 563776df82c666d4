package cohort

import "time"

type Member struct {
	ID        int64
	GroupID   int64
	UserID    int64
	TimeAdded time.Time
}

// Members maps a user id to its membership record.
type Members map[int64]Member
