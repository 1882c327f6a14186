package places

import "github.com/shopsmart-ai/scout/internal/models"

// Dedupe merges place record batches from multiple sample points into one
// ordered set, unique by place id. Batches are processed in the order given
// (sampler order) and the first occurrence of an id wins, so insertion order
// determines the final ordering. Records with an empty place id carry no
// identity and are always kept.
func Dedupe(batches ...[]models.PlaceRecord) []models.PlaceRecord {
	seen := make(map[string]bool)
	merged := []models.PlaceRecord{}

	for _, batch := range batches {
		for _, record := range batch {
			if record.PlaceID != "" {
				if seen[record.PlaceID] {
					continue
				}
				seen[record.PlaceID] = true
			}
			merged = append(merged, record)
		}
	}

	return merged
}
