package report

import "testing"

func pushEvent(repo, createdAt string, commits ...Commit) Event {
	e := Event{Type: EventPush, CreatedAt: createdAt}
	e.Repo.Name = repo
	e.Payload.Commits = commits
	return e
}

func TestSortByRelevanceStablePartition(t *testing.T) {
	in := []Event{
		pushEvent("u/zenn-content", "2025-01-01T00:00:00Z"), // content 1
		pushEvent("u/app-one", "2025-01-02T00:00:00Z"),      // product 1
		pushEvent("u/my-blog", "2025-01-03T00:00:00Z"),      // content 2
		pushEvent("u/app-two", "2025-01-04T00:00:00Z"),      // product 2
	}

	got := SortEventsByRelevance(in)

	want := []string{"u/app-one", "u/app-two", "u/zenn-content", "u/my-blog"}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Repo.Name != name {
			t.Errorf("position %d = %q, want %q", i, got[i].Repo.Name, name)
		}
	}
}

func TestSortByRelevanceEmptyInput(t *testing.T) {
	if got := SortEventsByRelevance(nil); len(got) != 0 {
		t.Errorf("expected empty output, got %d items", len(got))
	}
}

func TestSortByRelevanceUnnamedIsProduct(t *testing.T) {
	in := []Event{
		pushEvent("u/zenn-content", "2025-01-01T00:00:00Z"),
		pushEvent("", "2025-01-02T00:00:00Z"),
	}

	got := SortEventsByRelevance(in)
	if got[0].Repo.Name != "" {
		t.Errorf("unnamed event should lead the partition, got %q first", got[0].Repo.Name)
	}
}

func TestSortByRelevanceDoesNotMutateInput(t *testing.T) {
	in := []Event{
		pushEvent("u/zenn-content", "2025-01-01T00:00:00Z"),
		pushEvent("u/app", "2025-01-02T00:00:00Z"),
	}

	_ = SortEventsByRelevance(in)
	if in[0].Repo.Name != "u/zenn-content" {
		t.Error("input slice was reordered")
	}
}
