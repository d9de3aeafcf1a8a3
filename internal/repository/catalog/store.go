package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"platewise/internal/recipe"
)

// Load reads the recipe catalog from a local CSV file. The catalog is loaded
// once at startup and shared read-only afterwards.
func Load(path string) ([]recipe.Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes catalog CSV rows:
//
//	id,name,cuisine,cooking_time,dietary,ingredients,instructions
//
// dietary and ingredients are pipe-delimited lists; tokens are trimmed and
// empty tokens dropped.
func Parse(r io.Reader) ([]recipe.Recipe, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("catalog: read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"id", "name", "cuisine", "cooking_time", "dietary", "ingredients"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("catalog: missing column %q", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []recipe.Recipe
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog: read row: %w", err)
		}

		id, err := strconv.Atoi(field(row, "id"))
		if err != nil {
			return nil, fmt.Errorf("catalog: line %d: bad id: %w", line, err)
		}
		cookingTime, err := strconv.Atoi(field(row, "cooking_time"))
		if err != nil {
			return nil, fmt.Errorf("catalog: line %d: bad cooking_time: %w", line, err)
		}

		out = append(out, recipe.Recipe{
			ID:           id,
			Name:         field(row, "name"),
			Cuisine:      field(row, "cuisine"),
			CookingTime:  cookingTime,
			Dietary:      splitList(field(row, "dietary")),
			Ingredients:  splitList(field(row, "ingredients")),
			Instructions: field(row, "instructions"),
		})
	}
	return out, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
