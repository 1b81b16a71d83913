package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildProduct(t *testing.T) {
	frozen := time.Date(2026, time.March, 1, 6, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(frozen))
	defer SetClock(nil)

	g := makeTestGrid(25)

	product := BuildProduct(g, albopictus)

	assert.Equal(t, albopictus, product.Species)
	assert.Equal(t, frozen, product.ProcessedAt)
	require.Len(t, product.Summaries, 2)
	assert.Equal(t, "jan", product.Summaries[0].Label)
	assert.InDelta(t, DevelopmentRate(25, albopictus), product.Summaries[0].MeanRate, 1e-12)
	assert.Equal(t, 1.0, product.Summaries[0].SuitableFraction)

	assert.True(t, strings.HasPrefix(product.ID, "aedes_albopictus-"))
}

func TestBuildProduct_DeterministicID(t *testing.T) {
	g := makeTestGrid(18)

	p1 := BuildProduct(g, albopictus)
	p2 := BuildProduct(g, albopictus)
	other := BuildProduct(g, pipiens)

	assert.Equal(t, p1.ID, p2.ID)
	assert.NotEqual(t, p1.ID, other.ID, "different species must get different IDs")
}

func TestBuildProduct_ColdGridSummaries(t *testing.T) {
	g := makeTestGrid(pipiens.TminC - 1)

	product := BuildProduct(g, pipiens)

	for _, s := range product.Summaries {
		assert.Zero(t, s.MeanRate)
		assert.Zero(t, s.MaxRate)
		assert.Zero(t, s.SuitableFraction)
	}
}
