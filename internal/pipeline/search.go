package pipeline

import (
	"strings"

	"platewise/internal/recipe"
)

// Search filters and scores the catalog for the given preferences. It is a
// pure function: no side effects, deterministic, candidates returned in
// catalog order (the ranker imposes the final order).
//
// A recipe survives when all of the following hold:
//  1. every requested dietary tag is present in the recipe's tags
//     (exact, case-sensitive match);
//  2. its cooking time is within the requested ceiling, if any;
//  3. it shares at least one ingredient with the user, case-insensitively,
//     when the user listed any ingredients.
//
// score = |ingredient overlap| + 2 if the cuisine preference matches the
// recipe cuisine case-insensitively.
func Search(prefs recipe.Preferences, catalog []recipe.Recipe) []recipe.Scored {
	userIngredients := make(map[string]struct{}, len(prefs.Ingredients))
	for _, ing := range prefs.Ingredients {
		userIngredients[strings.ToLower(ing)] = struct{}{}
	}
	cuisine := strings.ToLower(prefs.CuisinePreference)

	var matches []recipe.Scored
	for _, r := range catalog {
		if !hasAllTags(r.Dietary, prefs.DietaryRestrictions) {
			continue
		}
		if prefs.MaxCookingTime != nil && r.CookingTime > *prefs.MaxCookingTime {
			continue
		}

		overlap := 0
		if len(userIngredients) > 0 {
			seen := make(map[string]struct{}, len(r.Ingredients))
			for _, ing := range r.Ingredients {
				key := strings.ToLower(ing)
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				if _, ok := userIngredients[key]; ok {
					overlap++
				}
			}
			if overlap == 0 {
				continue
			}
		}

		score := overlap
		if cuisine != "" && strings.ToLower(r.Cuisine) == cuisine {
			score += 2
		}
		matches = append(matches, recipe.Scored{Recipe: r, Score: score})
	}
	return matches
}

func hasAllTags(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	set := make(map[string]struct{}, len(have))
	for _, tag := range have {
		set[tag] = struct{}{}
	}
	for _, tag := range want {
		if _, ok := set[tag]; !ok {
			return false
		}
	}
	return true
}
