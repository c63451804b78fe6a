// Package search provides full-text search over the recipe catalog.
package search

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/forkplan/forkplan-server/internal/domain"
)

// RecipeDocument is the indexed representation of a recipe. Ingredient
// names are denormalized in by the caller so the search package does not
// depend on the store.
type RecipeDocument struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	MealType    string   `json:"meal_type"`
	Tags        []string `json:"tags,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
}

// Index wraps a Bleve index over recipe documents.
// All public methods are safe for concurrent use.
type Index struct {
	index  bleve.Index
	logger *slog.Logger
	mu     sync.RWMutex
}

// Options configures the search index.
type Options struct {
	DataPath string       // Directory for index storage; empty means in-memory
	Logger   *slog.Logger // Logger for operations (uses stderr if nil)
}

// Open creates or opens the recipe search index.
// A corrupted on-disk index is removed and recreated.
func Open(opts Options) (*Index, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	if opts.DataPath == "" {
		idx, err := bleve.NewMemOnly(buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create in-memory index: %w", err)
		}
		return &Index{index: idx, logger: logger}, nil
	}

	indexPath := filepath.Join(opts.DataPath, "recipes.bleve")

	idx, err := bleve.Open(indexPath)
	if err == bleve.ErrorIndexPathDoesNotExist {
		idx, err = bleve.New(indexPath, buildIndexMapping())
	} else if err != nil {
		logger.Warn("failed to open existing search index, recreating",
			"path", indexPath, "error", err)
		if removeErr := os.RemoveAll(indexPath); removeErr != nil {
			return nil, fmt.Errorf("remove old index: %w", removeErr)
		}
		idx, err = bleve.New(indexPath, buildIndexMapping())
	}
	if err != nil {
		return nil, fmt.Errorf("open search index: %w", err)
	}

	return &Index{index: idx, logger: logger}, nil
}

// buildIndexMapping creates the Bleve mapping: stemmed full-text on recipe
// and ingredient names, exact keyword matching on meal type and tags.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	nameField := bleve.NewTextFieldMapping()
	nameField.Analyzer = en.AnalyzerName
	nameField.Store = true
	docMapping.AddFieldMappingsAt("name", nameField)

	ingredientsField := bleve.NewTextFieldMapping()
	ingredientsField.Analyzer = en.AnalyzerName
	ingredientsField.Store = false
	docMapping.AddFieldMappingsAt("ingredients", ingredientsField)

	mealTypeField := bleve.NewTextFieldMapping()
	mealTypeField.Analyzer = keyword.Name
	mealTypeField.Store = true
	docMapping.AddFieldMappingsAt("meal_type", mealTypeField)

	tagsField := bleve.NewTextFieldMapping()
	tagsField.Analyzer = keyword.Name
	tagsField.Store = true
	docMapping.AddFieldMappingsAt("tags", tagsField)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// Close closes the underlying index.
func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.index.Close()
}

// DocCount reports the number of indexed recipe documents.
func (i *Index) DocCount() (uint64, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.index.DocCount()
}

// IndexRecipe adds or updates one recipe document.
func (i *Index) IndexRecipe(doc *RecipeDocument) error {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.index.Index(doc.ID, doc)
}

// RemoveRecipe deletes a recipe document from the index.
func (i *Index) RemoveRecipe(id string) error {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.index.Delete(id)
}

// Rebuild replaces the index contents with the given documents in one batch.
func (i *Index) Rebuild(docs []*RecipeDocument) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	batch := i.index.NewBatch()
	for _, doc := range docs {
		if err := batch.Index(doc.ID, doc); err != nil {
			return fmt.Errorf("batch index %s: %w", doc.ID, err)
		}
	}
	if err := i.index.Batch(batch); err != nil {
		return fmt.Errorf("apply batch: %w", err)
	}

	i.logger.Info("search index rebuilt", "documents", len(docs))
	return nil
}

// DocumentFor denormalizes a recipe and its ingredient names into an
// indexable document.
func DocumentFor(r *domain.Recipe, ingredientNames []string) *RecipeDocument {
	return &RecipeDocument{
		ID:          r.ID,
		Name:        r.Name,
		MealType:    string(r.MealType),
		Tags:        r.Tags,
		Ingredients: ingredientNames,
	}
}
