// Package main provides a tool to seed the database with a starter
// recipe catalog.
//
// This creates ingredients, recipes across all three meal types, and
// optionally a stocked pantry so a fresh install can generate plans
// immediately.
//
// Usage:
//
//	DB_PATH=~/Forkplan/data/forkplan.db go run ./cmd/seed
//	DB_PATH=... go run ./cmd/seed --with-pantry  # Also stock the pantry
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/forkplan/forkplan-server/internal/domain"
	"github.com/forkplan/forkplan-server/internal/id"
	"github.com/forkplan/forkplan-server/internal/store/sqlite"
)

var (
	withPantry    = flag.Bool("with-pantry", false, "Stock the pantry with the staple ingredients")
	householdUser = flag.String("household-user", "household", "Household profile that owns the pantry")
)

type seedIngredient struct {
	name     string
	unit     string
	category string
	staple   bool
}

type seedRecipe struct {
	name        string
	mealType    domain.MealType
	servings    int
	tags        []string
	steps       []string
	ingredients []string // names, resolved to IDs after insert
}

var ingredients = []seedIngredient{
	{"rolled oats", "g", "pantry staples", true},
	{"eggs", "pcs", "dairy", false},
	{"greek yogurt", "g", "dairy", false},
	{"bananas", "pcs", "produce", false},
	{"bread", "slices", "bakery", false},
	{"rice", "g", "pantry staples", true},
	{"pasta", "g", "pantry staples", true},
	{"canned tomatoes", "g", "pantry staples", true},
	{"lentils", "g", "pantry staples", true},
	{"chickpeas", "g", "pantry staples", true},
	{"chicken thighs", "g", "meat", false},
	{"ground beef", "g", "meat", false},
	{"salmon", "g", "fish", false},
	{"tofu", "g", "produce", false},
	{"onions", "pcs", "produce", true},
	{"garlic", "cloves", "produce", true},
	{"carrots", "pcs", "produce", false},
	{"bell peppers", "pcs", "produce", false},
	{"spinach", "g", "produce", false},
	{"potatoes", "g", "produce", false},
	{"cheese", "g", "dairy", false},
	{"coconut milk", "ml", "pantry staples", true},
}

var recipes = []seedRecipe{
	{"Overnight Oats", domain.MealBreakfast, 2, []string{"quick", "vegetarian"},
		[]string{"Mix oats with yogurt", "Rest overnight", "Top with banana"},
		[]string{"rolled oats", "greek yogurt", "bananas"}},
	{"Scrambled Eggs on Toast", domain.MealBreakfast, 2, []string{"quick"},
		[]string{"Whisk eggs", "Scramble on low heat", "Serve on toast"},
		[]string{"eggs", "bread"}},
	{"Banana Pancakes", domain.MealBreakfast, 2, []string{"vegetarian"},
		[]string{"Mash bananas with eggs", "Fry small pancakes"},
		[]string{"bananas", "eggs"}},
	{"Spinach Omelette", domain.MealBreakfast, 2, []string{"vegetarian", "quick"},
		[]string{"Wilt spinach", "Fold into omelette with cheese"},
		[]string{"eggs", "spinach", "cheese"}},

	{"Lentil Soup", domain.MealLunch, 4, []string{"vegetarian", "batch"},
		[]string{"Sweat onions and garlic", "Add lentils and tomatoes", "Simmer 30 minutes"},
		[]string{"lentils", "onions", "garlic", "canned tomatoes", "carrots"}},
	{"Chickpea Salad", domain.MealLunch, 4, []string{"vegetarian", "cold"},
		[]string{"Drain chickpeas", "Toss with peppers and onion"},
		[]string{"chickpeas", "bell peppers", "onions"}},
	{"Pasta Pomodoro", domain.MealLunch, 4, []string{"vegetarian", "batch"},
		[]string{"Cook pasta", "Reduce tomatoes with garlic", "Combine"},
		[]string{"pasta", "canned tomatoes", "garlic"}},
	{"Fried Rice", domain.MealLunch, 4, []string{"batch"},
		[]string{"Cook rice ahead", "Stir-fry with egg and vegetables"},
		[]string{"rice", "eggs", "carrots", "onions"}},

	{"Chicken Curry", domain.MealDinner, 4, []string{"batch"},
		[]string{"Brown chicken", "Add coconut milk and spices", "Simmer until tender"},
		[]string{"chicken thighs", "coconut milk", "onions", "garlic"}},
	{"Spaghetti Bolognese", domain.MealDinner, 4, []string{"batch"},
		[]string{"Brown beef", "Simmer with tomatoes", "Serve over pasta"},
		[]string{"ground beef", "canned tomatoes", "pasta", "onions"}},
	{"Baked Salmon and Potatoes", domain.MealDinner, 2, []string{"quick"},
		[]string{"Roast potatoes", "Add salmon for the last 15 minutes"},
		[]string{"salmon", "potatoes"}},
	{"Tofu Stir-Fry", domain.MealDinner, 2, []string{"vegetarian", "quick"},
		[]string{"Press and cube tofu", "Stir-fry with peppers over rice"},
		[]string{"tofu", "bell peppers", "rice", "garlic"}},
	{"Stuffed Peppers", domain.MealDinner, 4, []string{"batch"},
		[]string{"Fill peppers with rice and beef", "Bake 40 minutes"},
		[]string{"bell peppers", "rice", "ground beef", "cheese"}},
}

func main() {
	flag.Parse()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/Forkplan/data/forkplan.db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := sqlite.Open(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	existing, err := s.ListRecipes(ctx)
	if err != nil {
		log.Fatalf("Failed to read catalog: %v", err)
	}
	if len(existing) > 0 {
		log.Fatalf("Catalog already has %d recipes; refusing to seed twice", len(existing))
	}

	now := time.Now()
	ingredientIDs := make(map[string]string, len(ingredients))

	for _, in := range ingredients {
		ing := &domain.Ingredient{
			ID:        id.MustGenerate(id.PrefixIngredient),
			Name:      in.name,
			Unit:      in.unit,
			Category:  in.category,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.CreateIngredient(ctx, ing); err != nil {
			log.Fatalf("Failed to create ingredient %q: %v", in.name, err)
		}
		ingredientIDs[in.name] = ing.ID
	}
	fmt.Printf("Created %d ingredients\n", len(ingredients))

	for _, r := range recipes {
		recipe := &domain.Recipe{
			ID:           id.MustGenerate(id.PrefixRecipe),
			Name:         r.name,
			MealType:     r.mealType,
			BaseServings: r.servings,
			Steps:        r.steps,
			Tags:         r.tags,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.CreateRecipe(ctx, recipe); err != nil {
			log.Fatalf("Failed to create recipe %q: %v", r.name, err)
		}
		for _, name := range r.ingredients {
			ingID, ok := ingredientIDs[name]
			if !ok {
				log.Fatalf("Recipe %q references unknown ingredient %q", r.name, name)
			}
			link := &domain.RecipeIngredient{
				RecipeID:     recipe.ID,
				IngredientID: ingID,
			}
			if err := s.LinkRecipeIngredient(ctx, link); err != nil {
				log.Fatalf("Failed to link %q to %q: %v", name, r.name, err)
			}
		}
	}
	fmt.Printf("Created %d recipes\n", len(recipes))

	if *withPantry {
		stocked := 0
		for _, in := range ingredients {
			if !in.staple {
				continue
			}
			e := &domain.PantryEntry{
				UserID:       *householdUser,
				IngredientID: ingredientIDs[in.name],
				UpdatedAt:    now,
			}
			if err := s.UpsertPantryEntry(ctx, e); err != nil {
				log.Fatalf("Failed to stock pantry with %q: %v", in.name, err)
			}
			stocked++
		}
		fmt.Printf("Stocked pantry with %d staples\n", stocked)
	}

	fmt.Println("Seed complete. The search index rebuilds on next server start.")
}
