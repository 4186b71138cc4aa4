package ultrank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ultrank/pkg/ultrank/models"
)

func profileWithScore(name string, score float64) *models.SheetProfile {
	return &models.SheetProfile{
		Sheet:   name,
		Metrics: models.Metrics{Score: score},
	}
}

func TestRankDescendingByScore(t *testing.T) {
	profiles := []*models.SheetProfile{
		profileWithScore("low", 1.5),
		profileWithScore("high", 9.0),
		profileWithScore("mid", 4.2),
	}

	ranked := Rank(profiles)
	require.Len(t, ranked, 3)
	assert.Equal(t, "high", ranked[0].Sheet)
	assert.Equal(t, "mid", ranked[1].Sheet)
	assert.Equal(t, "low", ranked[2].Sheet)

	// Input order untouched.
	assert.Equal(t, "low", profiles[0].Sheet)
}

func TestRankStableOnTies(t *testing.T) {
	profiles := []*models.SheetProfile{
		profileWithScore("first", 3),
		profileWithScore("second", 3),
		profileWithScore("third", 3),
	}

	ranked := Rank(profiles)
	assert.Equal(t, "first", ranked[0].Sheet)
	assert.Equal(t, "second", ranked[1].Sheet)
	assert.Equal(t, "third", ranked[2].Sheet)
}

func TestBest(t *testing.T) {
	assert.Nil(t, Best(nil))

	ranked := Rank([]*models.SheetProfile{
		profileWithScore("a", 1),
		profileWithScore("b", 2),
	})
	best := Best(ranked)
	require.NotNil(t, best)
	assert.Equal(t, "b", best.Sheet)
}
