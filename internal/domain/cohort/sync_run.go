package cohort

import "time"

const (
	RunStatusRunning   = "running"
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
)

type SyncRun struct {
	ID           string
	Status       string
	ExitCode     int
	Stat         SyncStat
	ErrorMessage string
	StartedAt    time.Time
	FinishedAt   *time.Time
}

type SyncStat struct {
	ProcessedRecords int64    `json:"processed_records" yaml:"processed_records"`
	SkippedRecords   int64    `json:"skipped_records" yaml:"skipped_records"`
	CreatedGroups    []string `json:"created_groups,omitempty" yaml:"created_groups,omitempty"`
	UpdatedGroups    []string `json:"updated_groups,omitempty" yaml:"updated_groups,omitempty"`
	FailedGroups     []string `json:"failed_groups,omitempty" yaml:"failed_groups,omitempty"`
	HeldGroups       []string `json:"held_groups,omitempty" yaml:"held_groups,omitempty"`
	CreatedUsers     []string `json:"created_users,omitempty" yaml:"created_users,omitempty"`
	FailedUsers      []string `json:"failed_users,omitempty" yaml:"failed_users,omitempty"`
	AddedMembers     []string `json:"added_members,omitempty" yaml:"added_members,omitempty"`
	FailedMembers    []string `json:"failed_members,omitempty" yaml:"failed_members,omitempty"`
	RemovedMembers   []string `json:"removed_members,omitempty" yaml:"removed_members,omitempty"`
	FailedRemovals   []string `json:"failed_removals,omitempty" yaml:"failed_removals,omitempty"`
}
