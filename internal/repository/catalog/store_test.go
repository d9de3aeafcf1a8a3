package catalog

import (
	"strings"
	"testing"
)

const sampleCSV = `id,name,cuisine,cooking_time,dietary,ingredients,instructions
1,Vegetable Fried Rice,Asian,15,vegetarian,rice|vegetables|soy sauce|garlic,Stir fry everything.
2,Veggie Rice Bowl,Fusion,18,vegan|gluten-free,rice| vegetables |beans|avocado,Assemble the bowl.
3,Greek Salad,Greek,10,vegetarian| gluten-free |,cucumber|tomato|feta|olive oil,Toss and serve.
`

func TestParse(t *testing.T) {
	got, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 recipes, got %d", len(got))
	}

	bowl := got[1]
	if bowl.ID != 2 || bowl.Name != "Veggie Rice Bowl" || bowl.CookingTime != 18 {
		t.Fatalf("unexpected recipe: %+v", bowl)
	}
	if len(bowl.Dietary) != 2 || bowl.Dietary[0] != "vegan" || bowl.Dietary[1] != "gluten-free" {
		t.Fatalf("pipe list not split: %v", bowl.Dietary)
	}
	// tokens are trimmed
	if bowl.Ingredients[1] != "vegetables" {
		t.Fatalf("tokens must be trimmed: %v", bowl.Ingredients)
	}
	// trailing empty tokens are dropped
	if len(got[2].Dietary) != 2 {
		t.Fatalf("empty tokens must be dropped: %v", got[2].Dietary)
	}
}

func TestParseRejectsMissingColumns(t *testing.T) {
	_, err := Parse(strings.NewReader("id,name\n1,x\n"))
	if err == nil {
		t.Fatal("expected missing column error")
	}
}

func TestParseRejectsBadNumbers(t *testing.T) {
	bad := "id,name,cuisine,cooking_time,dietary,ingredients,instructions\nx,A,Asian,10,,rice,\n"
	if _, err := Parse(strings.NewReader(bad)); err == nil {
		t.Fatal("expected bad id error")
	}
}
