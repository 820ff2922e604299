package plan

import (
	"errors"
	"testing"

	"github.com/MarciaOrozco/nutrito-backend/internal/mealplan"
)

func twoDayTree() []mealplan.Day {
	return []mealplan.Day{
		{
			DayNumber: 1,
			Meals: []mealplan.Meal{
				{Order: 1, Type: "Desayuno", Title: "Avena"},
				{Order: 2, Type: "Almuerzo", Title: "Pollo con arroz"},
			},
		},
		{
			DayNumber: 2,
			Meals: []mealplan.Meal{
				{Order: 1, Type: "Desayuno", Title: "Tostadas"},
			},
		},
	}
}

func TestApplyOps(t *testing.T) {
	t.Run("agregar appends with next order", func(t *testing.T) {
		out, err := applyOps(twoDayTree(), []DayOp{
			{Tipo: OpAgregarComida, Dia: 0, Comida: &mealplan.Meal{Type: "Cena", Title: "Sopa"}},
		})
		if err != nil {
			t.Fatalf("applyOps() error = %v", err)
		}
		meals := out[0].Meals
		if len(meals) != 3 {
			t.Fatalf("len(meals) = %d, want 3", len(meals))
		}
		if meals[2].Title != "Sopa" || meals[2].Order != 3 {
			t.Errorf("appended meal = %+v, want Sopa with order 3", meals[2])
		}
	})

	t.Run("actualizar keeps the slot order", func(t *testing.T) {
		out, err := applyOps(twoDayTree(), []DayOp{
			{Tipo: OpActualizarComida, Dia: 0, Indice: 1, Comida: &mealplan.Meal{Type: "Almuerzo", Title: "Pescado"}},
		})
		if err != nil {
			t.Fatalf("applyOps() error = %v", err)
		}
		if got := out[0].Meals[1]; got.Title != "Pescado" || got.Order != 2 {
			t.Errorf("updated meal = %+v, want Pescado with order 2", got)
		}
	})

	t.Run("eliminar renumbers", func(t *testing.T) {
		out, err := applyOps(twoDayTree(), []DayOp{
			{Tipo: OpEliminarComida, Dia: 0, Indice: 0},
		})
		if err != nil {
			t.Fatalf("applyOps() error = %v", err)
		}
		meals := out[0].Meals
		if len(meals) != 1 || meals[0].Title != "Pollo con arroz" || meals[0].Order != 1 {
			t.Errorf("meals after delete = %+v", meals)
		}
	})

	t.Run("reordenar swaps positions", func(t *testing.T) {
		out, err := applyOps(twoDayTree(), []DayOp{
			{Tipo: OpReordenar, Dia: 0, Orden: []int{1, 0}},
		})
		if err != nil {
			t.Fatalf("applyOps() error = %v", err)
		}
		meals := out[0].Meals
		if meals[0].Title != "Pollo con arroz" || meals[1].Title != "Avena" {
			t.Errorf("reordered meals = %+v", meals)
		}
		if meals[0].Order != 1 || meals[1].Order != 2 {
			t.Errorf("orders not renumbered: %+v", meals)
		}
	})

	t.Run("totales replaces day targets", func(t *testing.T) {
		out, err := applyOps(twoDayTree(), []DayOp{
			{Tipo: OpTotales, Dia: 1, Totales: &mealplan.Totals{Calories: 1800, Proteins: 120}},
		})
		if err != nil {
			t.Fatalf("applyOps() error = %v", err)
		}
		if out[1].Totals.Calories != 1800 {
			t.Errorf("Totals.Calories = %d, want 1800", out[1].Totals.Calories)
		}
	})

	t.Run("ops chain in order", func(t *testing.T) {
		out, err := applyOps(twoDayTree(), []DayOp{
			{Tipo: OpAgregarComida, Dia: 1, Comida: &mealplan.Meal{Type: "Cena", Title: "Ensalada"}},
			{Tipo: OpEliminarComida, Dia: 1, Indice: 0},
		})
		if err != nil {
			t.Fatalf("applyOps() error = %v", err)
		}
		meals := out[1].Meals
		if len(meals) != 1 || meals[0].Title != "Ensalada" {
			t.Errorf("chained result = %+v", meals)
		}
	})

	t.Run("input tree is not mutated", func(t *testing.T) {
		in := twoDayTree()
		_, err := applyOps(in, []DayOp{
			{Tipo: OpEliminarComida, Dia: 0, Indice: 0},
		})
		if err != nil {
			t.Fatalf("applyOps() error = %v", err)
		}
		if len(in[0].Meals) != 2 {
			t.Errorf("input mutated: %+v", in[0].Meals)
		}
	})
}

func TestApplyOpsInvalid(t *testing.T) {
	tests := []struct {
		name string
		op   DayOp
	}{
		{"unknown tipo", DayOp{Tipo: "duplicar", Dia: 0}},
		{"dia out of range", DayOp{Tipo: OpAgregarComida, Dia: 5, Comida: &mealplan.Meal{}}},
		{"agregar without comida", DayOp{Tipo: OpAgregarComida, Dia: 0}},
		{"actualizar index out of range", DayOp{Tipo: OpActualizarComida, Dia: 0, Indice: 9, Comida: &mealplan.Meal{}}},
		{"eliminar negative index", DayOp{Tipo: OpEliminarComida, Dia: 0, Indice: -1}},
		{"reordenar wrong length", DayOp{Tipo: OpReordenar, Dia: 0, Orden: []int{0}}},
		{"reordenar duplicate index", DayOp{Tipo: OpReordenar, Dia: 0, Orden: []int{0, 0}}},
		{"totales without payload", DayOp{Tipo: OpTotales, Dia: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := applyOps(twoDayTree(), []DayOp{tt.op}); !errors.Is(err, ErrInvalidOperacion) {
				t.Errorf("applyOps() error = %v, want ErrInvalidOperacion", err)
			}
		})
	}
}
