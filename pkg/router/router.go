// Package router decides which destinations a fetched workout is pushed to.
//
// Destinations come from the sync_rules table, matched on source platform and
// activity type. Activities pushed to a destination reappear later through
// that platform's own API, so the router also prevents echo loops by:
// 1. Refusing to route a workout back to the platform it came from
// 2. Consulting the sync log before repeating a (source, workout, destination) push
package router

import (
	"context"
	"fmt"

	shared "github.com/liftsync/server/pkg"
)

// Match pairs a destination platform with the rule that selected it.
type Match struct {
	Destination string
	RuleID      int64
}

// SyncLog answers whether a workout has already reached a destination.
// It is satisfied by the database layer.
type SyncLog interface {
	HasSynced(ctx context.Context, sourcePlatform, sourceID, destination string) (bool, error)
}

// MatchRules filters rules down to those that apply to a workout from
// sourcePlatform with the given activity type. A rule whose activity type is
// the wildcard matches any activity.
func MatchRules(rules []*shared.SyncRule, sourcePlatform, activityType string) []*shared.SyncRule {
	var matched []*shared.SyncRule
	for _, rule := range rules {
		if rule.SourcePlatform != sourcePlatform {
			continue
		}
		if rule.ActivityType != shared.RuleWildcard && rule.ActivityType != activityType {
			continue
		}
		matched = append(matched, rule)
	}
	return matched
}

// Destinations resolves matched rules to unique destinations. Rules arrive in
// priority order, so when several rules name the same destination the first
// one wins and its rule ID is recorded on the match.
func Destinations(rules []*shared.SyncRule, sourcePlatform, activityType string) []Match {
	var matches []Match
	seen := make(map[string]bool)
	for _, rule := range MatchRules(rules, sourcePlatform, activityType) {
		if seen[rule.Destination] {
			continue
		}
		seen[rule.Destination] = true
		matches = append(matches, Match{Destination: rule.Destination, RuleID: rule.ID})
	}
	return matches
}

// ShouldSync reports whether a workout should be pushed to destination.
// It returns false when the destination is the workout's own source platform,
// or when the sync log already holds a sent or external row for the pair.
func ShouldSync(ctx context.Context, log SyncLog, sourcePlatform, sourceID, destination string) (bool, error) {
	if destination == sourcePlatform {
		return false, nil
	}
	synced, err := log.HasSynced(ctx, sourcePlatform, sourceID, destination)
	if err != nil {
		return false, fmt.Errorf("failed to check sync log: %w", err)
	}
	return !synced, nil
}
