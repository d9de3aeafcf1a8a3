package prices

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Quote is the best known price for one ingredient.
type Quote struct {
	Ingredient string  `json:"ingredient"`
	Store      string  `json:"store"`
	PriceUSD   float64 `json:"price_usd"`
	Unit       string  `json:"unit"`
}

// Store answers best-price lookups over the ingredient price CSV:
//
//	ingredient,store,price_usd,unit
//
// Rows are loaded once; lookups are cached in an LRU keyed by the normalized
// ingredient name.
type Store struct {
	path string

	loadOnce     sync.Once
	loadErr      error
	byIngredient map[string][]Quote

	cache *lru.Cache[string, Quote]
}

func New(path string) *Store {
	cache, _ := lru.New[string, Quote](256)
	return &Store{path: path, cache: cache}
}

// Load forces the CSV read and reports any parse failure. Lookups on a store
// that failed to load simply miss.
func (s *Store) Load() error {
	s.ensureLoaded()
	return s.loadErr
}

// Best returns the lowest-priced row for the ingredient, matching the name
// case-insensitively. The second return is false when no store carries it.
func (s *Store) Best(ingredient string) (Quote, bool) {
	if s == nil {
		return Quote{}, false
	}
	key := strings.ToLower(strings.TrimSpace(ingredient))
	if key == "" {
		return Quote{}, false
	}
	if s.cache != nil {
		if q, ok := s.cache.Get(key); ok {
			return q, true
		}
	}

	s.ensureLoaded()
	rows := s.byIngredient[key]
	if len(rows) == 0 {
		return Quote{}, false
	}
	best := rows[0]
	for _, q := range rows[1:] {
		if q.PriceUSD < best.PriceUSD {
			best = q
		}
	}
	if s.cache != nil {
		s.cache.Add(key, best)
	}
	return best, true
}

func (s *Store) ensureLoaded() {
	s.loadOnce.Do(func() {
		s.byIngredient = make(map[string][]Quote)

		f, err := os.Open(s.path)
		if err != nil {
			s.loadErr = fmt.Errorf("prices: open %s: %w", s.path, err)
			return
		}
		defer f.Close()

		cr := csv.NewReader(f)
		header, err := cr.Read()
		if err != nil {
			s.loadErr = fmt.Errorf("prices: read header: %w", err)
			return
		}
		col := make(map[string]int, len(header))
		for i, name := range header {
			col[strings.TrimSpace(strings.ToLower(name))] = i
		}
		for _, required := range []string{"ingredient", "store", "price_usd", "unit"} {
			if _, ok := col[required]; !ok {
				s.loadErr = fmt.Errorf("prices: missing column %q", required)
				return
			}
		}

		for {
			row, err := cr.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				s.loadErr = fmt.Errorf("prices: read row: %w", err)
				return
			}
			price, err := strconv.ParseFloat(strings.TrimSpace(row[col["price_usd"]]), 64)
			if err != nil {
				s.loadErr = fmt.Errorf("prices: bad price_usd %q: %w", row[col["price_usd"]], err)
				return
			}
			key := strings.ToLower(strings.TrimSpace(row[col["ingredient"]]))
			if key == "" {
				continue
			}
			s.byIngredient[key] = append(s.byIngredient[key], Quote{
				Ingredient: key,
				Store:      strings.TrimSpace(row[col["store"]]),
				PriceUSD:   price,
				Unit:       strings.TrimSpace(row[col["unit"]]),
			})
		}
	})
}
