package cohort

import (
	"sync"

	domain "github.com/mohammadpnp/cohort-sync/internal/domain/cohort"
)

// RunCache is the working set of a sync run. Resolved groups are memoized
// across runs until Purge; a stale one is caught by UpdateGroup reporting
// ErrGroupNotFound. Resolved users, touched groups, prior members and held
// groups are reset whenever a run acquires the cache, since a cached user id
// is never checked against the store again.
//
// Only the holder of the cache (see Acquire) may call the other methods.
type RunCache struct {
	lock sync.Mutex

	groups map[string]domain.Group
	users  map[string]domain.User

	touched   []int64
	touchedBy map[int64]string
	prior     map[int64]domain.Members
	held      Set[int64]
}

func NewRunCache() *RunCache {
	c := &RunCache{}
	c.Purge()
	return c
}

// Acquire takes the cache for one run. The returned func releases it.
func (c *RunCache) Acquire() (release func(), err error) {
	if !c.lock.TryLock() {
		return nil, ErrSyncInProgress
	}
	c.resetRun()
	return c.lock.Unlock, nil
}

func (c *RunCache) Purge() {
	c.groups = make(map[string]domain.Group)
	c.resetRun()
}

func (c *RunCache) resetRun() {
	c.users = make(map[string]domain.User)
	c.touched = nil
	c.touchedBy = make(map[int64]string)
	c.prior = make(map[int64]domain.Members)
	c.held = NewSet[int64]()
}

func (c *RunCache) Group(externalID string) (domain.Group, bool) {
	g, ok := c.groups[externalID]
	return g, ok
}

func (c *RunCache) PutGroup(group domain.Group) {
	c.groups[group.ExternalID] = group
}

func (c *RunCache) EvictGroup(externalID string) {
	delete(c.groups, externalID)
}

func (c *RunCache) User(username string) (domain.User, bool) {
	u, ok := c.users[username]
	return u, ok
}

func (c *RunCache) PutUser(user domain.User) {
	c.users[user.Username] = user
}

// Touch registers the group as touched by this run and reports whether this
// was its first touch.
func (c *RunCache) Touch(group domain.Group) bool {
	if _, ok := c.touchedBy[group.ID]; ok {
		return false
	}
	c.touchedBy[group.ID] = group.ExternalID
	c.touched = append(c.touched, group.ID)
	return true
}

func (c *RunCache) TouchedGroups() []int64 {
	return append([]int64(nil), c.touched...)
}

func (c *RunCache) ExternalID(groupID int64) string {
	return c.touchedBy[groupID]
}

func (c *RunCache) SetPriorMembers(groupID int64, members domain.Members) {
	if members == nil {
		members = domain.Members{}
	}
	c.prior[groupID] = members
}

func (c *RunCache) PriorMembers(groupID int64) domain.Members {
	return c.prior[groupID]
}

// Confirm marks the membership as current so the pruner keeps it.
func (c *RunCache) Confirm(groupID, userID int64) {
	delete(c.prior[groupID], userID)
}

func (c *RunCache) Hold(groupID int64) bool {
	if c.held.Has(groupID) {
		return false
	}
	c.held.Add(groupID)
	return true
}

func (c *RunCache) IsHeld(groupID int64) bool {
	return c.held.Has(groupID)
}
