package recipe

// KnownDietaryTags is the tag domain the extractor prompt allows.
var KnownDietaryTags = []string{"vegetarian", "vegan", "gluten-free"}

// Preferences is the structured output of preference extraction. Unset
// fields are null/empty, never omitted.
type Preferences struct {
	Ingredients         []string `json:"ingredients"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	MaxCookingTime      *int     `json:"max_cooking_time"`
	CuisinePreference   string   `json:"cuisine_preference"`
}
