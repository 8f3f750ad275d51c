package brand

import "brand-insights-go/internal/types"

// Find returns the first record whose normalized brand equals the normalized
// target. A model answer should mention a brand once; if it does not, the
// first occurrence wins.
func Find(records []types.MentionRecord, target string) (types.MentionRecord, bool) {
	key := Normalize(target)
	for _, r := range records {
		if Normalize(r.Brand) == key {
			return r, true
		}
	}
	return types.MentionRecord{}, false
}
