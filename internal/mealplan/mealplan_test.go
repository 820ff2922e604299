package mealplan

import (
	"reflect"
	"testing"
)

func sampleDays() []Day {
	return []Day{
		{
			DayNumber: 1,
			Name:      "Día 1",
			Totals:    Totals{Calories: 1800, Proteins: 110, Carbs: 190, Fats: 55},
			Meals: []Meal{
				{Order: 1, Type: "Desayuno", Title: "Avena con frutas"},
				{Order: 2, Type: "Almuerzo", Title: "Pollo con quinoa"},
				{Order: 3, Type: "Cena", Title: "Pescado con verduras"},
			},
		},
		{
			DayNumber: 2,
			Name:      "Día 2",
			Meals:     []Meal{},
		},
	}
}

func TestAddMeal(t *testing.T) {
	days := sampleDays()

	got := AddMeal(days, 0, Meal{Type: "Merienda", Title: "Yogur"})
	if len(got[0].Meals) != 4 {
		t.Fatalf("expected 4 meals, got %d", len(got[0].Meals))
	}
	if got[0].Meals[3].Order != 4 {
		t.Errorf("appended meal order = %d, want 4", got[0].Meals[3].Order)
	}
	if got[0].Meals[3].Title != "Yogur" {
		t.Errorf("appended meal title = %q", got[0].Meals[3].Title)
	}

	// original untouched
	if len(days[0].Meals) != 3 {
		t.Error("AddMeal mutated its input")
	}
}

func TestAddMealOutOfRange(t *testing.T) {
	days := sampleDays()

	for _, idx := range []int{-1, 2, 99} {
		got := AddMeal(days, idx, Meal{Title: "X"})
		if !reflect.DeepEqual(got, days) {
			t.Errorf("AddMeal(dayIndex=%d) changed the tree", idx)
		}
	}
}

func TestUpdateMeal(t *testing.T) {
	days := sampleDays()

	got := UpdateMeal(days, 0, 1, Meal{Type: "Almuerzo", Title: "Lentejas guisadas"})
	if got[0].Meals[1].Title != "Lentejas guisadas" {
		t.Errorf("title = %q, want Lentejas guisadas", got[0].Meals[1].Title)
	}
	if got[0].Meals[1].Order != 2 {
		t.Errorf("order = %d, want preserved 2", got[0].Meals[1].Order)
	}
}

func TestUpdateMealOutOfRange(t *testing.T) {
	days := sampleDays()

	cases := []struct{ day, meal int }{
		{-1, 0}, {5, 0}, {0, -1}, {0, 3}, {1, 0},
	}
	for _, c := range cases {
		got := UpdateMeal(days, c.day, c.meal, Meal{Title: "X"})
		if !reflect.DeepEqual(got, days) {
			t.Errorf("UpdateMeal(%d,%d) changed the tree", c.day, c.meal)
		}
	}
}

func TestRemoveMealRenumbers(t *testing.T) {
	days := sampleDays()

	got := RemoveMeal(days, 0, 0)
	if len(got[0].Meals) != 2 {
		t.Fatalf("expected 2 meals, got %d", len(got[0].Meals))
	}
	for i, m := range got[0].Meals {
		if m.Order != i+1 {
			t.Errorf("meal[%d].Order = %d, want %d", i, m.Order, i+1)
		}
	}
	if got[0].Meals[0].Title != "Pollo con quinoa" {
		t.Errorf("first meal after removal = %q", got[0].Meals[0].Title)
	}
}

func TestRemoveMealOutOfRange(t *testing.T) {
	days := sampleDays()

	got := RemoveMeal(days, 0, 7)
	if !reflect.DeepEqual(got, days) {
		t.Error("RemoveMeal with bad index changed the tree")
	}
}

func TestUpdateDayTotals(t *testing.T) {
	days := sampleDays()

	totals := Totals{Calories: 2000, Proteins: 120, Carbs: 210, Fats: 60}
	got := UpdateDayTotals(days, 1, totals)
	if got[1].Totals != totals {
		t.Errorf("totals = %+v, want %+v", got[1].Totals, totals)
	}

	if !reflect.DeepEqual(UpdateDayTotals(days, 9, totals), days) {
		t.Error("UpdateDayTotals with bad index changed the tree")
	}
}

func TestReorderMeals(t *testing.T) {
	days := sampleDays()

	got := ReorderMeals(days, 0, []int{2, 0, 1})
	titles := []string{got[0].Meals[0].Title, got[0].Meals[1].Title, got[0].Meals[2].Title}
	want := []string{"Pescado con verduras", "Avena con frutas", "Pollo con quinoa"}
	if !reflect.DeepEqual(titles, want) {
		t.Errorf("titles = %v, want %v", titles, want)
	}

	for i, m := range got[0].Meals {
		if m.Order != i+1 {
			t.Errorf("meal[%d].Order = %d, want %d", i, m.Order, i+1)
		}
	}
}

func TestReorderMealsInvalid(t *testing.T) {
	days := sampleDays()

	cases := [][]int{
		{0, 1},     // wrong length
		{0, 1, 5},  // out of range
		{0, 0, 1},  // duplicate
		{-1, 0, 1}, // negative
	}
	for _, order := range cases {
		got := ReorderMeals(days, 0, order)
		if !reflect.DeepEqual(got, days) {
			t.Errorf("ReorderMeals(%v) changed the tree", order)
		}
	}
}

func TestBuildTemplate(t *testing.T) {
	days := BuildTemplate(Metadata{Objectives: "Bajar grasa corporal"})

	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}

	for i, d := range days {
		if d.DayNumber != i+1 {
			t.Errorf("day[%d].DayNumber = %d", i, d.DayNumber)
		}
		if len(d.Meals) != 4 {
			t.Errorf("day[%d] has %d meals, want 4", i, len(d.Meals))
		}
		if d.Goal != "Bajar grasa corporal" {
			t.Errorf("day[%d].Goal = %q", i, d.Goal)
		}
		for j, m := range d.Meals {
			if m.Order != j+1 {
				t.Errorf("day[%d].meal[%d].Order = %d", i, j, m.Order)
			}
		}
	}

	if days[0].Meals[0].Title != "Avena con frutas" {
		t.Errorf("breakfast title = %q", days[0].Meals[0].Title)
	}
	if days[0].Meals[1].Title != "Pollo con quinoa" {
		t.Errorf("lunch title = %q", days[0].Meals[1].Title)
	}

	// deterministic
	again := BuildTemplate(Metadata{Objectives: "Bajar grasa corporal"})
	if !reflect.DeepEqual(days, again) {
		t.Error("BuildTemplate is not deterministic")
	}
}
