package cohort

import (
	"context"
	"iter"
)

type GroupStore interface {
	FindGroupByExternalID(ctx context.Context, externalID string) (Group, bool, error)
	CreateGroup(ctx context.Context, group Group) (Group, error)
	UpdateGroup(ctx context.Context, group Group) error
}

type UserStore interface {
	FindUserByUsername(ctx context.Context, username string) (User, bool, error)
	CreateUser(ctx context.Context, user User) (User, error)
}

type MemberStore interface {
	ListGroupMembers(ctx context.Context, groupID int64) (Members, error)
	AddMember(ctx context.Context, groupID, userID int64) error
	RemoveMember(ctx context.Context, groupID, userID int64) error
}

type Destination interface {
	GroupStore
	UserStore
	MemberStore
}

// RecordSource streams roster rows. Errors yielded by Records end the stream.
type RecordSource interface {
	Records(ctx context.Context) iter.Seq2[SourceRecord, error]
	Close(ctx context.Context) error
}

type SourceConnector interface {
	Connect(ctx context.Context) (RecordSource, error)
}

// SyncRunRepository records runs. Start also takes the destination-wide run
// lock and returns ErrSyncRunLocked when another process holds it; Finish
// releases it.
type SyncRunRepository interface {
	Start(ctx context.Context, runID string) error
	Finish(ctx context.Context, run SyncRun) error
	Last(ctx context.Context) (SyncRun, error)
}
