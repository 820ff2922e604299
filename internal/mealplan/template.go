package mealplan

import "fmt"

// BuildTemplate generates the deterministic 7-day draft used by the
// assisted plan flow. The nutricionista edits the draft before
// validating it.
func BuildTemplate(meta Metadata) []Day {
	days := make([]Day, 0, 7)

	for i := 1; i <= 7; i++ {
		days = append(days, Day{
			DayNumber: i,
			Name:      fmt.Sprintf("Día %d", i),
			Goal:      meta.Objectives,
			Totals: Totals{
				Calories: 1800,
				Proteins: 110,
				Carbs:    190,
				Fats:     55,
			},
			Meals: []Meal{
				{
					Order:       1,
					Type:        "Desayuno",
					Title:       "Avena con frutas",
					Description: "Avena cocida con banana y arándanos",
					Time:        "08:00",
					Macros:      Totals{Calories: 400, Proteins: 15, Carbs: 65, Fats: 9},
					Foods: []Food{
						{Name: "Avena", Quantity: 60, Unit: "g"},
						{Name: "Banana", Quantity: 1, Unit: "unidad"},
						{Name: "Arándanos", Quantity: 50, Unit: "g"},
					},
				},
				{
					Order:       2,
					Type:        "Almuerzo",
					Title:       "Pollo con quinoa",
					Description: "Pechuga grillada con quinoa y vegetales salteados",
					Time:        "13:00",
					Macros:      Totals{Calories: 600, Proteins: 45, Carbs: 55, Fats: 18},
					Foods: []Food{
						{Name: "Pechuga de pollo", Quantity: 150, Unit: "g"},
						{Name: "Quinoa", Quantity: 80, Unit: "g"},
						{Name: "Vegetales", Quantity: 200, Unit: "g"},
					},
				},
				{
					Order:       3,
					Type:        "Merienda",
					Title:       "Yogur con frutos secos",
					Description: "Yogur natural con mix de frutos secos",
					Time:        "17:00",
					Macros:      Totals{Calories: 300, Proteins: 15, Carbs: 20, Fats: 16},
					Foods: []Food{
						{Name: "Yogur natural", Quantity: 200, Unit: "g"},
						{Name: "Frutos secos", Quantity: 30, Unit: "g"},
					},
				},
				{
					Order:       4,
					Type:        "Cena",
					Title:       "Pescado con verduras al horno",
					Description: "Merluza al horno con calabaza y brócoli",
					Time:        "21:00",
					Macros:      Totals{Calories: 500, Proteins: 35, Carbs: 50, Fats: 12},
					Foods: []Food{
						{Name: "Merluza", Quantity: 150, Unit: "g"},
						{Name: "Calabaza", Quantity: 150, Unit: "g"},
						{Name: "Brócoli", Quantity: 100, Unit: "g"},
					},
				},
			},
		})
	}

	return days
}
