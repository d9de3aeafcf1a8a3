package recipe

// Recipe is one entry of the static catalog, loaded once at startup and
// immutable for the process lifetime.
type Recipe struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Cuisine      string   `json:"cuisine"`
	CookingTime  int      `json:"cooking_time"`
	Dietary      []string `json:"dietary"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
}

// Scored is a catalog recipe plus its match score for one search. Scored
// values are created fresh by each search and reordered by the ranker; they
// are never persisted.
type Scored struct {
	Recipe
	Score int `json:"score"`
}
