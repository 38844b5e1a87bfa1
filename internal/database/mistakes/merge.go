package mistakes

import "github.com/zmx4/aelp/internal/entities"

// mergeByWordID reduces a batch to at most one net delta per word id:
// counts are summed and time advances to the latest occurrence. The
// batch must be reduced before any storage lookup happens — merging
// against storage first would silently drop all but the last same-word
// entry in the batch. Order of first appearance is preserved.
func mergeByWordID(entries []entities.Mistake) []entities.Mistake {
	merged := make([]entities.Mistake, 0, len(entries))
	index := make(map[uint]int, len(entries))

	for _, e := range entries {
		i, seen := index[e.WordID]
		if !seen {
			index[e.WordID] = len(merged)
			merged = append(merged, e)
			continue
		}
		merged[i].Count += e.Count
		if e.Time.After(merged[i].Time) {
			merged[i].Time = e.Time
		}
	}

	return merged
}
