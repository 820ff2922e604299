// Package mealplan holds the plan document tree and the pure helpers
// used when applying partial plan updates. The tree is persisted as
// JSONB on the planes table.
package mealplan

// Totals are the macro targets for a day or a meal.
type Totals struct {
	Calories int `json:"calories"`
	Proteins int `json:"proteins"`
	Carbs    int `json:"carbs"`
	Fats     int `json:"fats"`
}

// Food is one ingredient line inside a meal.
type Food struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Meal is a single entry in a day. Order is 1-based and positional.
type Meal struct {
	Order       int    `json:"order"`
	Type        string `json:"type"` // Desayuno, Almuerzo, Merienda, Cena
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Time        string `json:"time,omitempty"` // HH:MM
	Macros      Totals `json:"macros"`
	Foods       []Food `json:"foods,omitempty"`
}

// Day groups the meals of one plan day.
type Day struct {
	DayNumber int    `json:"dayNumber"`
	Name      string `json:"name"`
	Goal      string `json:"goal,omitempty"`
	Totals    Totals `json:"totals"`
	Meals     []Meal `json:"meals"`
}

// Metadata is the patient-facing header of a plan.
type Metadata struct {
	PatientInfo       string   `json:"patientInfo,omitempty"`
	Objectives        string   `json:"objectives,omitempty"`
	MedicalConditions []string `json:"medicalConditions,omitempty"`
	Restrictions      []string `json:"restrictions,omitempty"`
	Preferences       []string `json:"preferences,omitempty"`
}

// AddMeal appends a meal to the day at dayIndex. Out-of-range indices
// leave the tree unchanged.
func AddMeal(days []Day, dayIndex int, meal Meal) []Day {
	if dayIndex < 0 || dayIndex >= len(days) {
		return days
	}

	out := cloneDays(days)
	meal.Order = len(out[dayIndex].Meals) + 1
	out[dayIndex].Meals = append(out[dayIndex].Meals, meal)
	return out
}

// UpdateMeal replaces the meal at (dayIndex, mealIndex), preserving its
// order. Out-of-range indices leave the tree unchanged.
func UpdateMeal(days []Day, dayIndex, mealIndex int, meal Meal) []Day {
	if dayIndex < 0 || dayIndex >= len(days) {
		return days
	}
	if mealIndex < 0 || mealIndex >= len(days[dayIndex].Meals) {
		return days
	}

	out := cloneDays(days)
	meal.Order = out[dayIndex].Meals[mealIndex].Order
	out[dayIndex].Meals[mealIndex] = meal
	return out
}

// RemoveMeal deletes the meal at (dayIndex, mealIndex) and renumbers the
// remaining meals. Out-of-range indices leave the tree unchanged.
func RemoveMeal(days []Day, dayIndex, mealIndex int) []Day {
	if dayIndex < 0 || dayIndex >= len(days) {
		return days
	}
	if mealIndex < 0 || mealIndex >= len(days[dayIndex].Meals) {
		return days
	}

	out := cloneDays(days)
	meals := out[dayIndex].Meals
	meals = append(meals[:mealIndex], meals[mealIndex+1:]...)
	for i := range meals {
		meals[i].Order = i + 1
	}
	out[dayIndex].Meals = meals
	return out
}

// UpdateDayTotals replaces the totals of the day at dayIndex.
// Out-of-range indices leave the tree unchanged.
func UpdateDayTotals(days []Day, dayIndex int, totals Totals) []Day {
	if dayIndex < 0 || dayIndex >= len(days) {
		return days
	}

	out := cloneDays(days)
	out[dayIndex].Totals = totals
	return out
}

// ReorderMeals rearranges the meals of a day to the positional order
// given by fromIndices, then renumbers order 1..N. Invalid indices
// leave the tree unchanged.
func ReorderMeals(days []Day, dayIndex int, order []int) []Day {
	if dayIndex < 0 || dayIndex >= len(days) {
		return days
	}

	meals := days[dayIndex].Meals
	if len(order) != len(meals) {
		return days
	}

	seen := make(map[int]bool, len(order))
	for _, idx := range order {
		if idx < 0 || idx >= len(meals) || seen[idx] {
			return days
		}
		seen[idx] = true
	}

	out := cloneDays(days)
	reordered := make([]Meal, len(meals))
	for pos, idx := range order {
		reordered[pos] = meals[idx]
		reordered[pos].Order = pos + 1
	}
	out[dayIndex].Meals = reordered
	return out
}

func cloneDays(days []Day) []Day {
	out := make([]Day, len(days))
	copy(out, days)
	for i := range out {
		meals := make([]Meal, len(out[i].Meals))
		copy(meals, out[i].Meals)
		out[i].Meals = meals
	}
	return out
}
