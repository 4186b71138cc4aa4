package ultrank

import (
	"sort"

	"ultrank/pkg/ultrank/models"
)

// Rank orders profiles by descending score. The sort is stable, so sheets
// with equal scores keep their workbook order. The input slice is not
// modified.
func Rank(profiles []*models.SheetProfile) []*models.SheetProfile {
	ranked := make([]*models.SheetProfile, len(profiles))
	copy(ranked, profiles)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Metrics.Score > ranked[j].Metrics.Score
	})
	return ranked
}

// Best returns the highest-scoring profile, or nil for an empty ranking.
func Best(ranked []*models.SheetProfile) *models.SheetProfile {
	if len(ranked) == 0 {
		return nil
	}
	return ranked[0]
}
