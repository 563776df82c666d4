package cohort_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "github.com/mohammadpnp/cohort-sync/internal/application/cohort"
	domain "github.com/mohammadpnp/cohort-sync/internal/domain/cohort"
)

func TestRunCacheAcquireIsExclusive(t *testing.T) {
	t.Parallel()

	cache := app.NewRunCache()
	release, err := cache.Acquire()
	require.NoError(t, err)

	_, err = cache.Acquire()
	require.ErrorIs(t, err, app.ErrSyncInProgress)

	release()
	release, err = cache.Acquire()
	require.NoError(t, err)
	release()
}

func TestRunCacheKeepsGroupsAcrossRunsUntilPurge(t *testing.T) {
	t.Parallel()

	cache := app.NewRunCache()
	release, err := cache.Acquire()
	require.NoError(t, err)
	cache.PutGroup(domain.Group{ID: 1, ExternalID: "G1"})
	cache.PutUser(domain.User{ID: 2, Username: "jdoe"})
	require.True(t, cache.Touch(domain.Group{ID: 1, ExternalID: "G1"}))
	cache.SetPriorMembers(1, domain.Members{3: {GroupID: 1, UserID: 3}})
	release()

	release, err = cache.Acquire()
	require.NoError(t, err)
	defer release()

	_, ok := cache.Group("G1")
	assert.True(t, ok)
	_, ok = cache.User("jdoe")
	assert.False(t, ok, "users must be resolved again by every run")
	assert.Empty(t, cache.TouchedGroups())
	assert.Nil(t, cache.PriorMembers(1))

	cache.Purge()
	_, ok = cache.Group("G1")
	assert.False(t, ok)
}

func TestRunCacheTouchAndConfirm(t *testing.T) {
	t.Parallel()

	cache := app.NewRunCache()
	g := domain.Group{ID: 7, ExternalID: "G7"}

	assert.True(t, cache.Touch(g))
	assert.False(t, cache.Touch(g))
	assert.Equal(t, []int64{7}, cache.TouchedGroups())
	assert.Equal(t, "G7", cache.ExternalID(7))

	cache.SetPriorMembers(7, domain.Members{
		1: {GroupID: 7, UserID: 1},
		2: {GroupID: 7, UserID: 2},
	})
	cache.Confirm(7, 1)
	cache.Confirm(7, 99)

	assert.Len(t, cache.PriorMembers(7), 1)
	assert.Contains(t, cache.PriorMembers(7), int64(2))
}

func TestRunCacheHold(t *testing.T) {
	t.Parallel()

	cache := app.NewRunCache()

	assert.True(t, cache.Hold(3))
	assert.False(t, cache.Hold(3))
	assert.True(t, cache.IsHeld(3))
	assert.False(t, cache.IsHeld(4))
}
