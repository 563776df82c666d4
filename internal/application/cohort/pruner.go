package cohort

import (
	"context"
	"fmt"
	"maps"
	"slices"
)

// PruneStaleMembers removes every prior member of a touched group that no
// record confirmed. Removals are independent; a failure is recorded and the
// rest are still attempted.
func (r *reconciler) PruneStaleMembers(ctx context.Context) {
	for _, groupID := range r.cache.TouchedGroups() {
		externalID := r.cache.ExternalID(groupID)
		if r.cache.IsHeld(groupID) {
			r.log.Warn().Str("group", externalID).Msg("skip pruning held cohort")
			continue
		}

		stale := r.cache.PriorMembers(groupID)
		for _, userID := range slices.Sorted(maps.Keys(stale)) {
			membership := fmt.Sprintf("%s:%d", externalID, userID)
			if err := r.dest.RemoveMember(ctx, groupID, userID); err != nil {
				r.log.Error().Err(err).Str("membership", membership).Msg("remove member failed")
				r.stat.FailedRemovals = append(r.stat.FailedRemovals, fmt.Sprintf("%s: %v", membership, err))
				continue
			}
			r.log.Info().Str("membership", membership).Msg("user removed from cohort")
			r.stat.RemovedMembers = append(r.stat.RemovedMembers, membership)
		}
	}
}
