package domain

// MealType identifies which meal of the day a recipe or slot belongs to.
// Every recipe is fixed to exactly one meal type.
type MealType string

// Meal types, in the order slots are filled within a day.
const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
)

// MealTypes returns all meal types in fill order.
func MealTypes() []MealType {
	return []MealType{MealBreakfast, MealLunch, MealDinner}
}

// Valid reports whether m is a known meal type.
func (m MealType) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner:
		return true
	}
	return false
}
