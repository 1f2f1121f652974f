package report

import "testing"

func TestGroupPushEventsMergesSameRepo(t *testing.T) {
	events := []Event{
		pushEvent("u/app", "2025-01-01T10:00:00Z", Commit{SHA: "a1", Message: "first"}),
		pushEvent("u/app", "2025-01-02T10:00:00Z", Commit{SHA: "b1", Message: "second"}),
	}

	groups := GroupPushEvents(events)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}

	g := groups[0]
	if g.Repo != "app" || g.FullName != "u/app" {
		t.Errorf("group key = %q/%q, want app/u/app", g.Repo, g.FullName)
	}
	if len(g.Commits) != 2 {
		t.Errorf("commits = %d, want 2", len(g.Commits))
	}
	if g.PushCount != 2 {
		t.Errorf("pushCount = %d, want 2", g.PushCount)
	}
	if g.LatestDate != "2025-01-02T10:00:00Z" {
		t.Errorf("latestDate = %q, want the later event", g.LatestDate)
	}
	if g.Commits[0].SHA != "a1" || g.Commits[1].SHA != "b1" {
		t.Errorf("commit order = %q,%q, want append order a1,b1", g.Commits[0].SHA, g.Commits[1].SHA)
	}
}

func TestGroupPushEventsEmptyInput(t *testing.T) {
	if groups := GroupPushEvents(nil); len(groups) != 0 {
		t.Errorf("got %d groups, want 0", len(groups))
	}
}

func TestGroupPushEventsZeroCommitEvent(t *testing.T) {
	events := []Event{
		pushEvent("u/app", "2025-01-01T10:00:00Z", Commit{SHA: "a1", Message: "first"}),
		pushEvent("u/app", "2025-01-03T10:00:00Z"), // force push, no commits
	}

	g := GroupPushEvents(events)[0]
	if g.PushCount != 2 {
		t.Errorf("pushCount = %d, want 2 (empty pushes still count)", g.PushCount)
	}
	if len(g.Commits) != 1 {
		t.Errorf("commits = %d, want 1", len(g.Commits))
	}
	if g.LatestDate != "2025-01-03T10:00:00Z" {
		t.Errorf("latestDate = %q, empty push should still advance it", g.LatestDate)
	}
}

func TestGroupPushEventsOutOfOrderTimestamps(t *testing.T) {
	events := []Event{
		pushEvent("u/app", "2025-01-05T10:00:00Z", Commit{SHA: "late", Message: "late"}),
		pushEvent("u/app", "2025-01-01T10:00:00Z", Commit{SHA: "early", Message: "early"}),
	}

	g := GroupPushEvents(events)[0]
	if g.LatestDate != "2025-01-05T10:00:00Z" {
		t.Errorf("latestDate = %q, want the max seen", g.LatestDate)
	}
	// Commits keep processing order, no chronological re-sort.
	if g.Commits[0].SHA != "late" {
		t.Errorf("commit order reshuffled: first = %q", g.Commits[0].SHA)
	}
}

func TestGroupPushEventsFirstSeenOrder(t *testing.T) {
	events := []Event{
		pushEvent("u/bravo", "2025-01-01T00:00:00Z"),
		pushEvent("u/alpha", "2025-01-02T00:00:00Z"),
		pushEvent("u/bravo", "2025-01-03T00:00:00Z"),
	}

	groups := GroupPushEvents(events)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Repo != "bravo" || groups[1].Repo != "alpha" {
		t.Errorf("order = [%s %s], want first-seen [bravo alpha]", groups[0].Repo, groups[1].Repo)
	}
}

func TestGroupPushEventsMissingRepoName(t *testing.T) {
	events := []Event{pushEvent("", "2025-01-01T00:00:00Z", Commit{SHA: "x", Message: "m"})}

	g := GroupPushEvents(events)[0]
	if g.Repo != "unknown" || g.FullName != "unknown" {
		t.Errorf("placeholder key = %q/%q, want unknown/unknown", g.Repo, g.FullName)
	}
}
