package report

// SortByRelevance returns a new slice where every item whose repository name
// classifies as product precedes every content item, preserving relative
// order within each class. This is a stable bipartition, not a scored sort.
// Items without a resolvable repository name count as product.
func SortByRelevance[T any](items []T, repoName func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if !IsContentRepo(repoName(it)) {
			out = append(out, it)
		}
	}
	for _, it := range items {
		if IsContentRepo(repoName(it)) {
			out = append(out, it)
		}
	}
	return out
}

// SortEventsByRelevance applies the relevance bipartition to an event list.
func SortEventsByRelevance(events []Event) []Event {
	return SortByRelevance(events, func(e Event) string { return e.Repo.Name })
}
