package exercise

import (
	"testing"

	"github.com/opjlab/opj-backend/internal/model"
	"github.com/stretchr/testify/assert"
)

func iptr(v int) *int { return &v }

func TestResolveFixedDensity(t *testing.T) {
	r := NewProfileResolver()

	// The fixed profile density wins regardless of level.
	for level := 1; level <= 3; level++ {
		got := r.Resolve(model.TrainingModeTexteTrou, model.SectionDeroulement, level, nil)
		assert.Equal(t, model.CompletionGaps, got.Mode)
		assert.Equal(t, 0.25, got.Density)
		assert.Equal(t, model.StrategyAll, got.Strategy)
	}
}

func TestResolveLevelDensityClamped(t *testing.T) {
	r := NewProfileResolver()

	// cadre_legal bounds the level default into [0.2, 0.6].
	got := r.Resolve(model.TrainingModeTexteTrou, model.SectionCadreLegal, 1, nil)
	assert.Equal(t, 0.2, got.Density) // level 1 default 0.1 raised to min

	got = r.Resolve(model.TrainingModeTexteTrou, model.SectionCadreLegal, 2, nil)
	assert.Equal(t, 0.3, got.Density) // within bounds, untouched

	got = r.Resolve(model.TrainingModeTexteTrou, model.SectionCadreLegal, 3, nil)
	assert.Equal(t, 0.6, got.Density) // level 3 default capped at max
}

func TestResolveUnknownLevelDefaults(t *testing.T) {
	r := NewProfileResolver()

	got := r.Resolve(model.TrainingModeTexteTrou, model.SectionCadreLegal, 0, nil)
	assert.Equal(t, 0.2, got.Density) // level 1 default 0.1, clamped to min
}

func TestResolveUnknownKindReadOnly(t *testing.T) {
	r := NewProfileResolver()

	got := r.Resolve(model.TrainingModeTexteTrou, model.SectionKind("annexe"), 2, nil)
	assert.Equal(t, model.CompletionReadOnly, got.Mode)
}

func TestResolveStrugglingForcesFullRewrite(t *testing.T) {
	r := NewProfileResolver()

	got := r.Resolve(model.TrainingModeTexteTrou, model.SectionDeroulement, 2, iptr(30))
	assert.Equal(t, model.CompletionFullRewrite, got.Mode)

	// Forced even over READ_ONLY base modes.
	got = r.Resolve(model.TrainingModeTexteTrou, model.SectionEnTete, 2, iptr(40))
	assert.Equal(t, model.CompletionFullRewrite, got.Mode)
}

func TestResolveMasteredDowngradesToReadOnly(t *testing.T) {
	r := NewProfileResolver()

	got := r.Resolve(model.TrainingModeTexteTrou, model.SectionCadreLegal, 2, iptr(90))
	assert.Equal(t, model.CompletionReadOnly, got.Mode)
}

func TestResolveDictationNeverDowngraded(t *testing.T) {
	r := NewProfileResolver()

	// Dictation's deroulement base is FULL_REWRITE; high mastery leaves it alone.
	got := r.Resolve(model.TrainingModeDictee, model.SectionDeroulement, 2, iptr(90))
	assert.Equal(t, model.CompletionFullRewrite, got.Mode)
}

func TestResolveDensityEasedAtHighMastery(t *testing.T) {
	r := NewProfileResolver()

	// EXAMEN cadre_legal has fixed density 0.5; mastery 80 eases it but
	// stays below the read-only cutoff.
	got := r.Resolve(model.TrainingModeExamen, model.SectionCadreLegal, 2, iptr(80))
	assert.Equal(t, model.CompletionGaps, got.Mode)
	assert.InDelta(t, 0.35, got.Density, 1e-9)
}

func TestResolveDensityUnchangedMidMastery(t *testing.T) {
	r := NewProfileResolver()

	got := r.Resolve(model.TrainingModeExamen, model.SectionCadreLegal, 2, iptr(60))
	assert.Equal(t, model.CompletionGaps, got.Mode)
	assert.Equal(t, 0.5, got.Density)
}

func TestResolveDensityFloor(t *testing.T) {
	r := NewProfileResolver()

	// deroulement's fixed 0.25 eased by 0.15 lands on the 0.1 floor.
	got := r.Resolve(model.TrainingModeTexteTrou, model.SectionDeroulement, 1, iptr(84))
	assert.Equal(t, model.CompletionGaps, got.Mode)
	assert.InDelta(t, 0.1, got.Density, 1e-9)
}
