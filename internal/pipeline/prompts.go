package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"

	"platewise/internal/recipe"
)

const extractionPrompt = `You extract structured cooking preferences from a conversation.
Return ONLY valid JSON (no markdown, no explanation) with keys:
{
  "ingredients": [string],
  "dietary_restrictions": [string],   // allowed: "vegetarian","vegan","gluten-free"
  "max_cooking_time": integer|null,   // minutes
  "cuisine_preference": string|null
}

Rules:
- Ingredients: list foods the user says they have (no quantities).
- If the user doesn't specify something, use null (or [] for lists).
- Be conservative: don't invent ingredients.`

func rankPrompt(candidates []recipe.Scored, prefs recipe.Preferences) string {
	var b strings.Builder
	b.WriteString("You are a cooking assistant.\n")
	b.WriteString("Rank the following recipes from best to worst for the user.\n\n")
	b.WriteString("User preferences:\n")
	fmt.Fprintf(&b, "- Ingredients: %s\n", joinOrNone(prefs.Ingredients))
	fmt.Fprintf(&b, "- Dietary: %s\n", joinOrNone(prefs.DietaryRestrictions))
	fmt.Fprintf(&b, "- Max time: %s\n", minutesOrNone(prefs.MaxCookingTime))
	fmt.Fprintf(&b, "- Cuisine: %s\n\n", stringOrNone(prefs.CuisinePreference))
	b.WriteString("Recipes:\n")
	for _, c := range candidates {
		fmt.Fprintf(&b, "- %s | cuisine=%s | time=%d | score=%d\n",
			c.Name, c.Cuisine, c.CookingTime, c.Score)
	}
	b.WriteString("\nReturn ONLY a comma-separated list of recipe names ranked from best to worst.")
	return b.String()
}

func generatePrompt(st recipe.State) string {
	candidates, err := json.MarshalIndent(st.MatchedRecipes, "", "  ")
	if err != nil {
		candidates = []byte("[]")
	}

	var b strings.Builder
	b.WriteString("You are a friendly cooking assistant.\n\n")
	b.WriteString("User preferences:\n")
	fmt.Fprintf(&b, "- Ingredients: %s\n", joinOrNone(st.Ingredients))
	fmt.Fprintf(&b, "- Dietary restrictions: %s\n", joinOrNone(st.DietaryRestrictions))
	fmt.Fprintf(&b, "- Max cooking time: %s\n", minutesOrNone(st.MaxCookingTime))
	fmt.Fprintf(&b, "- Cuisine preference: %s\n\n", stringOrNone(st.CuisinePreference))
	b.WriteString("Candidate recipes (use ONLY these, do not invent new recipes):\n")
	b.Write(candidates)
	b.WriteString("\n\nTask:\n")
	b.WriteString("1) Pick the BEST 3 recipes from the candidates for this user.\n")
	b.WriteString("2) Write the final response EXACTLY in this format:\n\n")
	b.WriteString("Based on your ingredients and preferences, here are 3 recipes:\n")
	b.WriteString("1. <name> (<time> min) - <cuisine>\n")
	b.WriteString("2. <name> (<time> min) - <cuisine>\n")
	b.WriteString("3. <name> (<time> min) - <cuisine>\n")
	b.WriteString("Which one would you like the full recipe for?\n\n")
	b.WriteString("No extra text. No explanations. Only the formatted response.")
	return b.String()
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func minutesOrNone(minutes *int) string {
	if minutes == nil {
		return "none"
	}
	return fmt.Sprintf("%d minutes", *minutes)
}

func stringOrNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "none"
	}
	return s
}
