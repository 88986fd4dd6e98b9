package availability

import (
	"path"

	"seisavail/internal/model"
)

// DefaultPriorities returns a fresh copy of the default channel priority
// patterns, in descending preference: high-broadband, broadband, mid-period,
// extremely-short-period and long-period instruments, each restricted to the
// three orthogonal components so rotational channels are never picked up.
// Callers may modify the returned slice freely.
func DefaultPriorities() []string {
	return []string{
		"HH[Z,N,E]",
		"BH[Z,N,E]",
		"MH[Z,N,E]",
		"EH[Z,N,E]",
		"LH[Z,N,E]",
	}
}

// FilterChannelPriority reduces each sensor location's channel set to the
// channels matching the best-priority pattern. For every NET.STA.LOC group
// independently, the first pattern matching at least one channel code wins
// and all later patterns are ignored; a group matching no pattern contributes
// nothing. Patterns use path.Match globbing (*, ?, [...], case-sensitive).
// The result is a new map; the input is never modified.
func FilterChannelPriority(channels model.Availability, priorities []string) model.Availability {
	groups := make(map[model.LocationKey][]model.ChannelID)
	for id := range channels {
		key := id.LocationKey()
		groups[key] = append(groups[key], id)
	}

	filtered := make(model.Availability)
	for _, ids := range groups {
		for _, pattern := range priorities {
			matched := false
			for _, id := range ids {
				// A malformed pattern matches nothing.
				ok, err := path.Match(pattern, id.Channel)
				if err != nil || !ok {
					continue
				}
				filtered[id] = channels[id]
				matched = true
			}
			if matched {
				break
			}
		}
	}
	return filtered
}
