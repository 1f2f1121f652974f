package report

import "strings"

// PushGroup aggregates every push event that touched one repository within a
// single report generation. Commits accumulate in event processing order,
// not re-sorted by timestamp.
type PushGroup struct {
	Repo       string   // short name, the grouping key
	FullName   string   // owner/name
	Commits    []Commit // concatenated across events, append order
	LatestDate string   // greatest created_at seen (ISO-8601 compares lexicographically)
	PushCount  int      // discrete push events, not commits
}

// unknownRepoKey is the placeholder for events with no repository name.
const unknownRepoKey = "unknown"

// GroupPushEvents folds push events into per-repository groups. The returned
// slice preserves first-seen key order, since rendering takes only the first
// N groups. Events with zero commits still count toward PushCount and may
// advance LatestDate.
func GroupPushEvents(events []Event) []*PushGroup {
	byRepo := make(map[string]*PushGroup, len(events))
	var groups []*PushGroup

	for _, e := range events {
		fullName := e.Repo.Name
		if fullName == "" {
			fullName = unknownRepoKey
		}
		repo := fullName
		if _, short, ok := strings.Cut(fullName, "/"); ok && short != "" {
			repo = short
		}

		g, seen := byRepo[repo]
		if !seen {
			g = &PushGroup{Repo: repo, FullName: fullName, LatestDate: e.CreatedAt}
			byRepo[repo] = g
			groups = append(groups, g)
		} else if e.CreatedAt > g.LatestDate {
			g.LatestDate = e.CreatedAt
		}
		g.Commits = append(g.Commits, e.Payload.Commits...)
		g.PushCount++
	}

	return groups
}
