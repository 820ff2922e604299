package plan

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/MarciaOrozco/nutrito-backend/internal/mealplan"
)

func TestRenderDocument(t *testing.T) {
	doc := &Doc{
		ID:     uuid.New(),
		Estado: "validado",
		Metadata: mealplan.Metadata{
			PatientInfo:       "Ana Gómez, 34 años",
			Objectives:        "Bajar grasa corporal",
			MedicalConditions: []string{"hipotiroidismo"},
			Restrictions:      []string{"sin gluten"},
		},
		Days: []mealplan.Day{
			{
				DayNumber: 1,
				Name:      "Día 1",
				Goal:      "Déficit moderado",
				Totals:    mealplan.Totals{Calories: 1800, Proteins: 110, Carbs: 190, Fats: 55},
				Meals: []mealplan.Meal{
					{
						Order: 1, Type: "Desayuno", Title: "Avena con frutas", Time: "08:00",
						Foods: []mealplan.Food{{Name: "Avena", Quantity: 60, Unit: "g"}},
					},
				},
			},
		},
	}

	out := RenderDocument(doc)

	for _, want := range []string{
		"PLAN ALIMENTARIO",
		"Paciente: Ana Gómez, 34 años",
		"Objetivos: Bajar grasa corporal",
		"Condiciones médicas: hipotiroidismo",
		"Restricciones: sin gluten",
		"Día 1",
		"Objetivo: Déficit moderado",
		"Totales: 1800 kcal | P 110g | C 190g | G 55g",
		"1. Desayuno (08:00): Avena con frutas",
		"- Avena: 60 g",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered document missing %q", want)
		}
	}
}

func TestRenderDocumentEmptyPlan(t *testing.T) {
	out := RenderDocument(&Doc{ID: uuid.New()})
	if !strings.HasPrefix(out, "PLAN ALIMENTARIO") {
		t.Errorf("unexpected header: %q", out)
	}
}
