package models

// Tables holds the physical table names of the destination schema. Moodle-like
// deployments share one database between plugins, so every name carries the
// site prefix.
type Tables struct {
	Cohort        string
	CohortMembers string
	User          string
	SyncRuns      string
}

func NewTables(prefix string) Tables {
	return Tables{
		Cohort:        prefix + "cohort",
		CohortMembers: prefix + "cohort_members",
		User:          prefix + "user",
		SyncRuns:      prefix + "cohortsync_runs",
	}
}
