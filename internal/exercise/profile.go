package exercise

import (
	"math"

	"github.com/opjlab/opj-backend/internal/model"
)

// Mastery thresholds driving the adaptive-difficulty overrides.
const (
	// At or below this average mastery the section is forced to
	// FULL_REWRITE regardless of its base mode.
	strugglingMastery = 40
	// At or above this average mastery a GAPS section (outside dictation)
	// is downgraded to READ_ONLY.
	masteredCutoff = 85
	// At or above this average mastery the gap density is eased.
	easedMastery = 80
)

// SectionProfile is one static row of the profile table: how a section kind
// is exercised under a training mode. Density is a fixed value that wins
// outright; MinDensity/MaxDensity clamp the level-based default instead.
type SectionProfile struct {
	Kind       model.SectionKind
	Mode       model.CompletionMode
	Strategy   model.GapStrategy
	Density    *float64
	MinDensity *float64
	MaxDensity *float64
}

// ResolvedProfile is the final per-section decision. Density and Strategy
// are only meaningful when Mode is GAPS.
type ResolvedProfile struct {
	Mode     model.CompletionMode `json:"mode"`
	Density  float64              `json:"density,omitempty"`
	Strategy model.GapStrategy    `json:"strategy,omitempty"`
}

// ProfileResolver owns the immutable lookup tables mapping
// (training mode, section kind, level, mastery) to a completion profile.
type ProfileResolver struct {
	profiles     map[model.TrainingMode][]SectionProfile
	levelDensity map[int]float64
	defaultLevel int
}

// NewProfileResolver builds a resolver with the default OPJ profile tables.
func NewProfileResolver() *ProfileResolver {
	return &ProfileResolver{
		profiles:     defaultProfiles(),
		levelDensity: map[int]float64{1: 0.1, 2: 0.3, 3: 0.6},
		defaultLevel: 1,
	}
}

// Resolve maps (training mode, section kind, level, optional average
// mastery) to a completion profile. The static lookup runs first; the
// mastery override runs second, and its full-rewrite check takes priority
// over the read-only downgrade.
func (r *ProfileResolver) Resolve(mode model.TrainingMode, kind model.SectionKind, level int, avgMastery *int) ResolvedProfile {
	base, ok := r.lookup(mode, kind)
	if !ok {
		base = SectionProfile{Kind: kind, Mode: model.CompletionReadOnly}
	}

	resolved := ResolvedProfile{Mode: base.Mode}
	if base.Mode == model.CompletionGaps {
		resolved.Density = r.resolveDensity(base, level)
		resolved.Strategy = base.Strategy
		if resolved.Strategy == "" {
			resolved.Strategy = model.StrategyAll
		}
	}

	if avgMastery != nil {
		resolved = adaptToMastery(resolved, mode, *avgMastery)
	}
	return resolved
}

func (r *ProfileResolver) lookup(mode model.TrainingMode, kind model.SectionKind) (SectionProfile, bool) {
	for _, p := range r.profiles[mode] {
		if p.Kind == kind {
			return p, true
		}
	}
	return SectionProfile{}, false
}

// resolveDensity picks the level-based default, then applies the profile's
// fixed density or min/max bounds.
func (r *ProfileResolver) resolveDensity(p SectionProfile, level int) float64 {
	if p.Density != nil {
		return *p.Density
	}
	base, ok := r.levelDensity[level]
	if !ok {
		base = r.levelDensity[r.defaultLevel]
	}
	if p.MinDensity != nil && base < *p.MinDensity {
		base = *p.MinDensity
	}
	if p.MaxDensity != nil && base > *p.MaxDensity {
		base = *p.MaxDensity
	}
	return base
}

// adaptToMastery applies the dynamic override on top of the static profile.
func adaptToMastery(base ResolvedProfile, mode model.TrainingMode, avg int) ResolvedProfile {
	out := base
	switch {
	case avg <= strugglingMastery:
		out = ResolvedProfile{Mode: model.CompletionFullRewrite}
	case avg >= masteredCutoff && base.Mode == model.CompletionGaps && mode != model.TrainingModeDictee:
		out = ResolvedProfile{Mode: model.CompletionReadOnly}
	}

	if out.Mode == model.CompletionGaps {
		switch {
		case avg <= strugglingMastery:
			out.Density = math.Min(0.85, out.Density+0.25)
		case avg >= easedMastery:
			out.Density = math.Max(0.1, out.Density-0.15)
		}
	}
	return out
}

func fptr(v float64) *float64 { return &v }

// defaultProfiles is the static (training mode, section kind) table.
func defaultProfiles() map[model.TrainingMode][]SectionProfile {
	return map[model.TrainingMode][]SectionProfile{
		model.TrainingModeTexteTrou: {
			{Kind: model.SectionEnTete, Mode: model.CompletionReadOnly},
			{Kind: model.SectionCadreLegal, Mode: model.CompletionGaps, Strategy: model.StrategyArticlesOnly, MinDensity: fptr(0.2), MaxDensity: fptr(0.6)},
			{Kind: model.SectionIdentite, Mode: model.CompletionReadOnly},
			{Kind: model.SectionDeroulement, Mode: model.CompletionGaps, Strategy: model.StrategyAll, Density: fptr(0.25)},
			{Kind: model.SectionNotificationDroits, Mode: model.CompletionGaps, Strategy: model.StrategyKeywords, MinDensity: fptr(0.2)},
			{Kind: model.SectionCloture, Mode: model.CompletionReadOnly},
		},
		model.TrainingModeDictee: {
			{Kind: model.SectionEnTete, Mode: model.CompletionReadOnly},
			{Kind: model.SectionCadreLegal, Mode: model.CompletionFullRewrite},
			{Kind: model.SectionIdentite, Mode: model.CompletionReadOnly},
			{Kind: model.SectionDeroulement, Mode: model.CompletionFullRewrite},
			{Kind: model.SectionNotificationDroits, Mode: model.CompletionFullRewrite},
			{Kind: model.SectionCloture, Mode: model.CompletionReadOnly},
		},
		model.TrainingModeExamen: {
			{Kind: model.SectionEnTete, Mode: model.CompletionReadOnly},
			{Kind: model.SectionCadreLegal, Mode: model.CompletionGaps, Strategy: model.StrategyArticlesOnly, Density: fptr(0.5)},
			{Kind: model.SectionIdentite, Mode: model.CompletionGaps, Strategy: model.StrategyAll, Density: fptr(0.3)},
			{Kind: model.SectionDeroulement, Mode: model.CompletionFullRewrite},
			{Kind: model.SectionNotificationDroits, Mode: model.CompletionGaps, Strategy: model.StrategyKeywords, Density: fptr(0.4)},
			{Kind: model.SectionCloture, Mode: model.CompletionReadOnly},
		},
	}
}
