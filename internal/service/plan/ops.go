package plan

import (
	"github.com/MarciaOrozco/nutrito-backend/internal/mealplan"
)

// Day-level edit operations accepted by PUT /api/planes/:id. They let
// the editor patch a single meal without resending the whole tree.
const (
	OpAgregarComida    = "agregar_comida"
	OpActualizarComida = "actualizar_comida"
	OpEliminarComida   = "eliminar_comida"
	OpReordenar        = "reordenar"
	OpTotales          = "totales"
)

// DayOp is one edit against the plan's day tree. Dia and Indice are
// zero-based positions; Orden lists the new meal positions for
// reordenar.
type DayOp struct {
	Tipo    string
	Dia     int
	Indice  int
	Comida  *mealplan.Meal
	Orden   []int
	Totales *mealplan.Totals
}

// applyOps runs the operations in order against a copy of days. Any
// invalid operation aborts the whole batch.
func applyOps(days []mealplan.Day, ops []DayOp) ([]mealplan.Day, error) {
	out := days
	for _, op := range ops {
		if op.Dia < 0 || op.Dia >= len(out) {
			return nil, ErrInvalidOperacion
		}

		switch op.Tipo {
		case OpAgregarComida:
			if op.Comida == nil {
				return nil, ErrInvalidOperacion
			}
			out = mealplan.AddMeal(out, op.Dia, *op.Comida)

		case OpActualizarComida:
			if op.Comida == nil || op.Indice < 0 || op.Indice >= len(out[op.Dia].Meals) {
				return nil, ErrInvalidOperacion
			}
			out = mealplan.UpdateMeal(out, op.Dia, op.Indice, *op.Comida)

		case OpEliminarComida:
			if op.Indice < 0 || op.Indice >= len(out[op.Dia].Meals) {
				return nil, ErrInvalidOperacion
			}
			out = mealplan.RemoveMeal(out, op.Dia, op.Indice)

		case OpReordenar:
			if !validOrder(op.Orden, len(out[op.Dia].Meals)) {
				return nil, ErrInvalidOperacion
			}
			out = mealplan.ReorderMeals(out, op.Dia, op.Orden)

		case OpTotales:
			if op.Totales == nil {
				return nil, ErrInvalidOperacion
			}
			out = mealplan.UpdateDayTotals(out, op.Dia, *op.Totales)

		default:
			return nil, ErrInvalidOperacion
		}
	}
	return out, nil
}

func validOrder(order []int, n int) bool {
	if len(order) != n {
		return false
	}
	seen := make(map[int]bool, n)
	for _, idx := range order {
		if idx < 0 || idx >= n || seen[idx] {
			return false
		}
		seen[idx] = true
	}
	return true
}
