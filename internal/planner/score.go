package planner

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/forkplan/forkplan-server/internal/domain"
)

// Scoring weights. Disliked recipes are filtered upstream; the dislike
// penalty here is defensive so a leaked dislike can never win a ranking.
const (
	favoriteBonus  = 0.15
	dislikePenalty = -999
	desiredWeight  = 0.35
)

// collator orders recipe names for tie-breaks. Und gives stable
// locale-neutral collation; diacritics compare naturally.
var collator = collate.New(language.Und)

// Score computes the composite ranking score of one recipe:
// pantry-match ratio (when pantry preference is on), preference bonus, and
// weighted desired-ingredient match ratio.
func Score(snap *Snapshot, r *domain.Recipe, opts Options) float64 {
	var score float64

	if opts.PreferPantry {
		score += pantryMatchRatio(snap, r.ID)
	}

	switch snap.Preferences[r.ID] {
	case domain.PreferenceFavorite:
		score += favoriteBonus
	case domain.PreferenceDislike:
		score += dislikePenalty
	}

	if !opts.Desired.Empty() {
		score += desiredWeight * desiredMatchRatio(snap, r.ID, opts.Desired)
	}

	return score
}

// pantryMatchRatio is the fraction of the recipe's distinct ingredients the
// user already has on hand; 0 for a recipe with no ingredients.
func pantryMatchRatio(snap *Snapshot, recipeID string) float64 {
	ings := snap.Catalog.IngredientsOf(recipeID)
	if len(ings) == 0 {
		return 0
	}
	have := 0
	for ing := range ings {
		if _, ok := snap.Pantry[ing]; ok {
			have++
		}
	}
	return float64(have) / float64(len(ings))
}

// desiredMatchRatio is the fraction of desired ingredients the recipe uses.
func desiredMatchRatio(snap *Snapshot, recipeID string, desired Desired) float64 {
	if desired.Empty() {
		return 0
	}
	ings := snap.Catalog.IngredientsOf(recipeID)
	hit := 0
	for want := range desired.IDs {
		if _, ok := ings[want]; ok {
			hit++
		}
	}
	return float64(hit) / float64(len(desired.IDs))
}

// Rank sorts candidates by score descending, breaking ties by recipe name
// ascending under locale-aware collation. The input slice is not modified.
func Rank(snap *Snapshot, candidates []*domain.Recipe, opts Options) []*domain.Recipe {
	ranked := make([]*domain.Recipe, len(candidates))
	copy(ranked, candidates)

	scores := make(map[string]float64, len(ranked))
	for _, r := range ranked {
		scores[r.ID] = Score(snap, r, opts)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := scores[ranked[i].ID], scores[ranked[j].ID]
		if si != sj {
			return si > sj
		}
		return collator.CompareString(ranked[i].Name, ranked[j].Name) < 0
	})

	return ranked
}
