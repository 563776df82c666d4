package cohort_test

import (
	"context"
	"errors"
	"fmt"
	"iter"

	domain "github.com/mohammadpnp/cohort-sync/internal/domain/cohort"
)

type fakeDestination struct {
	nextID  int64
	groups  map[int64]domain.Group
	users   map[int64]domain.User
	members map[int64]map[int64]bool

	groupCreates int
	groupUpdates int
	userCreates  int
	adds         []string
	removes      []string

	listErr     map[int64]error
	removeErr   map[string]error
	findUserErr map[string]error
	addErr      map[int64]error
	// noIDUsers are created without a destination id.
	noIDUsers map[string]bool
}

func newFakeDestination() *fakeDestination {
	return &fakeDestination{
		nextID:      100,
		groups:      make(map[int64]domain.Group),
		users:       make(map[int64]domain.User),
		members:     make(map[int64]map[int64]bool),
		listErr:     make(map[int64]error),
		removeErr:   make(map[string]error),
		findUserErr: make(map[string]error),
		addErr:      make(map[int64]error),
		noIDUsers:   make(map[string]bool),
	}
}

func (f *fakeDestination) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeDestination) seedGroup(externalID, name string) domain.Group {
	g := domain.Group{ID: f.id(), ExternalID: externalID, Name: name}
	f.groups[g.ID] = g
	return g
}

func (f *fakeDestination) seedUser(username string) domain.User {
	u := domain.User{ID: f.id(), Username: username}
	f.users[u.ID] = u
	return u
}

func (f *fakeDestination) seedMember(groupID, userID int64) {
	if f.members[groupID] == nil {
		f.members[groupID] = make(map[int64]bool)
	}
	f.members[groupID][userID] = true
}

func (f *fakeDestination) mutations() int {
	return f.groupCreates + f.groupUpdates + f.userCreates + len(f.adds) + len(f.removes)
}

func (f *fakeDestination) groupByExternalID(externalID string) (domain.Group, bool) {
	for _, g := range f.groups {
		if g.ExternalID == externalID {
			return g, true
		}
	}
	return domain.Group{}, false
}

func (f *fakeDestination) userByName(username string) (domain.User, bool) {
	for _, u := range f.users {
		if u.Username == username {
			return u, true
		}
	}
	return domain.User{}, false
}

func (f *fakeDestination) memberNames(groupID int64) []string {
	var names []string
	for userID := range f.members[groupID] {
		names = append(names, f.users[userID].Username)
	}
	return names
}

func (f *fakeDestination) FindGroupByExternalID(ctx context.Context, externalID string) (domain.Group, bool, error) {
	g, ok := f.groupByExternalID(externalID)
	return g, ok, nil
}

func (f *fakeDestination) CreateGroup(ctx context.Context, group domain.Group) (domain.Group, error) {
	if _, ok := f.groupByExternalID(group.ExternalID); ok {
		return domain.Group{}, errors.New("duplicate idnumber")
	}
	f.groupCreates++
	group.ID = f.id()
	f.groups[group.ID] = group
	return group, nil
}

func (f *fakeDestination) UpdateGroup(ctx context.Context, group domain.Group) error {
	if _, ok := f.groups[group.ID]; !ok {
		return domain.ErrGroupNotFound
	}
	f.groupUpdates++
	f.groups[group.ID] = group
	return nil
}

func (f *fakeDestination) FindUserByUsername(ctx context.Context, username string) (domain.User, bool, error) {
	if err := f.findUserErr[username]; err != nil {
		return domain.User{}, false, err
	}
	u, ok := f.userByName(username)
	return u, ok, nil
}

func (f *fakeDestination) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	f.userCreates++
	if f.noIDUsers[user.Username] {
		return user, nil
	}
	user.ID = f.id()
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeDestination) ListGroupMembers(ctx context.Context, groupID int64) (domain.Members, error) {
	if err := f.listErr[groupID]; err != nil {
		return nil, err
	}
	members := domain.Members{}
	for userID := range f.members[groupID] {
		members[userID] = domain.Member{GroupID: groupID, UserID: userID}
	}
	return members, nil
}

func (f *fakeDestination) AddMember(ctx context.Context, groupID, userID int64) error {
	if err := f.addErr[userID]; err != nil {
		return err
	}
	f.adds = append(f.adds, fmt.Sprintf("%d:%d", groupID, userID))
	f.seedMember(groupID, userID)
	return nil
}

func (f *fakeDestination) RemoveMember(ctx context.Context, groupID, userID int64) error {
	key := fmt.Sprintf("%d:%d", groupID, userID)
	if err := f.removeErr[key]; err != nil {
		return err
	}
	f.removes = append(f.removes, key)
	delete(f.members[groupID], userID)
	return nil
}

type fakeSource struct {
	records []domain.SourceRecord
	failAt  int
	err     error
	closed  bool
}

func (s *fakeSource) Records(ctx context.Context) iter.Seq2[domain.SourceRecord, error] {
	return func(yield func(domain.SourceRecord, error) bool) {
		for i, r := range s.records {
			if s.err != nil && i == s.failAt {
				yield(domain.SourceRecord{}, s.err)
				return
			}
			if !yield(r, nil) {
				return
			}
		}
	}
}

func (s *fakeSource) Close(ctx context.Context) error {
	s.closed = true
	return nil
}

type fakeConnector struct {
	source *fakeSource
	err    error
	calls  int
}

func (c *fakeConnector) Connect(ctx context.Context) (domain.RecordSource, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.source, nil
}

type identityEncoder struct{}

func (identityEncoder) Encode(text string) (string, error) {
	return text, nil
}

type recordingTrace struct {
	messages []string
	finished bool
}

func (t *recordingTrace) Output(message string) {
	t.messages = append(t.messages, message)
}

func (t *recordingTrace) Finished() {
	t.finished = true
}

type fakeRunRepo struct {
	startErr error
	started  []string
	finished []domain.SyncRun
	last     domain.SyncRun
	lastErr  error
}

func (r *fakeRunRepo) Start(ctx context.Context, runID string) error {
	if r.startErr != nil {
		return r.startErr
	}
	r.started = append(r.started, runID)
	return nil
}

func (r *fakeRunRepo) Finish(ctx context.Context, run domain.SyncRun) error {
	r.finished = append(r.finished, run)
	return nil
}

func (r *fakeRunRepo) Last(ctx context.Context) (domain.SyncRun, error) {
	if r.lastErr != nil {
		return domain.SyncRun{}, r.lastErr
	}
	return r.last, nil
}

func row(groupID, code, label, userID, surname, given, login string) domain.SourceRecord {
	return domain.SourceRecord{
		GroupExternalID: groupID,
		GroupCode:       code,
		GroupLabel:      label,
		UserExternalID:  userID,
		UserSurname:     surname,
		UserGivenName:   given,
		UserLogin:       login,
	}
}
