package search

import (
	"context"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Params configures a recipe search.
type Params struct {
	Query    string // User's search text
	MealType string // Optional exact meal-type filter
	Tag      string // Optional exact tag filter
	Limit    int
	Offset   int
}

// DefaultParams returns sensible defaults.
func DefaultParams() Params {
	return Params{Limit: 20}
}

// Result is a ranked page of matching recipes.
type Result struct {
	Query  string `json:"query"`
	Total  uint64 `json:"total"`
	TookMs int64  `json:"took_ms"`
	Hits   []Hit  `json:"hits"`
}

// Hit is one matching recipe.
type Hit struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	MealType string  `json:"meal_type"`
	Score    float64 `json:"score"`
}

// Search executes a recipe search.
func (i *Index) Search(ctx context.Context, params Params) (*Result, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if params.Limit <= 0 {
		params.Limit = DefaultParams().Limit
	}

	req := bleve.NewSearchRequestOptions(buildQuery(params), params.Limit, params.Offset, false)
	req.Fields = []string{"name", "meal_type"}

	res, err := i.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, err
	}

	out := &Result{
		Query:  params.Query,
		Total:  res.Total,
		TookMs: res.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(res.Hits)),
	}
	for _, hit := range res.Hits {
		h := Hit{ID: hit.ID, Score: hit.Score}
		if v, ok := hit.Fields["name"].(string); ok {
			h.Name = v
		}
		if v, ok := hit.Fields["meal_type"].(string); ok {
			h.MealType = v
		}
		out.Hits = append(out.Hits, h)
	}
	return out, nil
}

// buildQuery combines the text query with exact filters.
func buildQuery(params Params) query.Query {
	var parts []query.Query

	if params.Query != "" {
		match := bleve.NewMatchQuery(params.Query)
		match.SetFuzziness(1)
		prefix := bleve.NewPrefixQuery(params.Query)
		parts = append(parts, bleve.NewDisjunctionQuery(match, prefix))
	} else {
		parts = append(parts, bleve.NewMatchAllQuery())
	}

	if params.MealType != "" {
		tq := bleve.NewTermQuery(params.MealType)
		tq.SetField("meal_type")
		parts = append(parts, tq)
	}
	if params.Tag != "" {
		tq := bleve.NewTermQuery(params.Tag)
		tq.SetField("tags")
		parts = append(parts, tq)
	}

	if len(parts) == 1 {
		return parts[0]
	}
	return bleve.NewConjunctionQuery(parts...)
}
