package cohort

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	domain "github.com/mohammadpnp/cohort-sync/internal/domain/cohort"
)

// DescriptionEncoder prepares group description text for the destination store.
type DescriptionEncoder interface {
	Encode(text string) (string, error)
}

type GroupDefaults struct {
	ContextID int64
	Component string
}

type reconciler struct {
	dest     domain.Destination
	cache    *RunCache
	encoder  DescriptionEncoder
	groups   GroupDefaults
	users    domain.UserDefaults
	stat     *domain.SyncStat
	reported Set[string]
	log      zerolog.Logger
}

func newReconciler(dest domain.Destination, cache *RunCache, encoder DescriptionEncoder, groups GroupDefaults, users domain.UserDefaults, stat *domain.SyncStat, log zerolog.Logger) *reconciler {
	return &reconciler{
		dest:     dest,
		cache:    cache,
		encoder:  encoder,
		groups:   groups,
		users:    users,
		stat:     stat,
		reported: NewSet[string](),
		log:      log,
	}
}

func (r *reconciler) ProcessRecord(ctx context.Context, record domain.SourceRecord) {
	r.stat.ProcessedRecords++

	group, created, err := r.resolveGroup(ctx, record)
	if err != nil {
		r.log.Error().Err(err).Str("group", record.GroupExternalID).Msg("resolve group failed")
		r.stat.FailedGroups = append(r.stat.FailedGroups, fmt.Sprintf("%s: %v", record.GroupExternalID, err))
		return
	}
	r.reportGroup(group, created)

	if r.cache.Touch(group) {
		r.snapshotMembers(ctx, group)
	}

	if !record.HasLogin() {
		r.stat.SkippedRecords++
		return
	}

	user, err := r.resolveUser(ctx, record)
	if err != nil {
		r.log.Error().Err(err).Str("username", record.UserLogin).Msg("resolve user failed")
		r.stat.FailedUsers = append(r.stat.FailedUsers, fmt.Sprintf("%s: %v", record.UserLogin, err))
		r.hold(group, "user lookup failed")
		return
	}

	membership := fmt.Sprintf("%s:%s", group.ExternalID, user.Username)
	if group.ID == 0 || user.ID == 0 {
		r.log.Error().Str("membership", membership).Msg("failed to add user to cohort: missing id")
		r.stat.FailedMembers = append(r.stat.FailedMembers, membership+": missing id")
		return
	}

	if err := r.dest.AddMember(ctx, group.ID, user.ID); err != nil {
		r.log.Error().Err(err).Str("membership", membership).Msg("add member failed")
		r.stat.FailedMembers = append(r.stat.FailedMembers, fmt.Sprintf("%s: %v", membership, err))
	} else {
		r.stat.AddedMembers = append(r.stat.AddedMembers, membership)
	}

	r.cache.Confirm(group.ID, user.ID)
}

func (r *reconciler) resolveGroup(ctx context.Context, record domain.SourceRecord) (domain.Group, bool, error) {
	if record.GroupExternalID == "" {
		return domain.Group{}, false, domain.ErrInvalidGroupExternalID
	}

	description, err := r.encoder.Encode(record.GroupLabel)
	if err != nil {
		return domain.Group{}, false, fmt.Errorf("encode description: %w", err)
	}

	if group, ok := r.cache.Group(record.GroupExternalID); ok {
		r.log.Debug().Str("group", record.GroupExternalID).Msg("group from cache")
		group.Relabel(record.GroupCode, description)
		err := r.dest.UpdateGroup(ctx, group)
		if err == nil {
			r.cache.PutGroup(group)
			return group, false, nil
		}
		if !errors.Is(err, domain.ErrGroupNotFound) {
			return domain.Group{}, false, fmt.Errorf("update group: %w", err)
		}
		r.cache.EvictGroup(record.GroupExternalID)
	}

	group, found, err := r.dest.FindGroupByExternalID(ctx, record.GroupExternalID)
	if err != nil {
		return domain.Group{}, false, fmt.Errorf("find group: %w", err)
	}
	if found {
		group.Relabel(record.GroupCode, description)
		group.Component = r.groups.Component
		if err := r.dest.UpdateGroup(ctx, group); err != nil {
			return domain.Group{}, false, fmt.Errorf("update group: %w", err)
		}
		r.cache.PutGroup(group)
		return group, false, nil
	}

	group, err = domain.NewGroup(record.GroupExternalID, record.GroupCode, description)
	if err != nil {
		return domain.Group{}, false, err
	}
	group.ContextID = r.groups.ContextID
	group.Component = r.groups.Component

	group, err = r.dest.CreateGroup(ctx, group)
	if err != nil {
		return domain.Group{}, false, fmt.Errorf("create group: %w", err)
	}
	r.log.Info().Str("group", group.ExternalID).Int64("group_id", group.ID).Msg("cohort created")
	r.cache.PutGroup(group)
	return group, true, nil
}

func (r *reconciler) reportGroup(group domain.Group, created bool) {
	if r.reported.Has(group.ExternalID) {
		return
	}
	r.reported.Add(group.ExternalID)
	if created {
		r.stat.CreatedGroups = append(r.stat.CreatedGroups, group.ExternalID)
	} else {
		r.stat.UpdatedGroups = append(r.stat.UpdatedGroups, group.ExternalID)
	}
}

func (r *reconciler) snapshotMembers(ctx context.Context, group domain.Group) {
	members, err := r.dest.ListGroupMembers(ctx, group.ID)
	if err != nil {
		r.log.Error().Err(err).Str("group", group.ExternalID).Msg("list cohort members failed")
		r.cache.SetPriorMembers(group.ID, nil)
		r.hold(group, "member snapshot failed")
		return
	}
	r.cache.SetPriorMembers(group.ID, members)
}

func (r *reconciler) resolveUser(ctx context.Context, record domain.SourceRecord) (domain.User, error) {
	if user, ok := r.cache.User(record.UserLogin); ok {
		return user, nil
	}

	user, found, err := r.dest.FindUserByUsername(ctx, record.UserLogin)
	if err != nil {
		return domain.User{}, fmt.Errorf("find user: %w", err)
	}
	if !found {
		if user, err = domain.NewUser(record, r.users); err != nil {
			return domain.User{}, err
		}
		if user, err = r.dest.CreateUser(ctx, user); err != nil {
			return domain.User{}, fmt.Errorf("create user: %w", err)
		}
		r.log.Info().Str("username", user.Username).Int64("user_id", user.ID).Msg("user created")
		r.stat.CreatedUsers = append(r.stat.CreatedUsers, user.Username)
	}

	r.cache.PutUser(user)
	return user, nil
}

// hold keeps the group out of pruning for this run.
func (r *reconciler) hold(group domain.Group, reason string) {
	if r.cache.Hold(group.ID) {
		r.log.Warn().Str("group", group.ExternalID).Str("reason", reason).Msg("cohort held back from pruning")
		r.stat.HeldGroups = append(r.stat.HeldGroups, group.ExternalID)
	}
}
