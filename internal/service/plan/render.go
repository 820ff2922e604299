package plan

import (
	"fmt"
	"strings"
)

// RenderDocument flattens a plan into the structured text document the
// export endpoint serves.
func RenderDocument(doc *Doc) string {
	var b strings.Builder

	b.WriteString("PLAN ALIMENTARIO\n")
	b.WriteString("================\n\n")

	if doc.Metadata.PatientInfo != "" {
		fmt.Fprintf(&b, "Paciente: %s\n", doc.Metadata.PatientInfo)
	}
	if doc.Metadata.Objectives != "" {
		fmt.Fprintf(&b, "Objetivos: %s\n", doc.Metadata.Objectives)
	}
	if len(doc.Metadata.MedicalConditions) > 0 {
		fmt.Fprintf(&b, "Condiciones médicas: %s\n", strings.Join(doc.Metadata.MedicalConditions, ", "))
	}
	if len(doc.Metadata.Restrictions) > 0 {
		fmt.Fprintf(&b, "Restricciones: %s\n", strings.Join(doc.Metadata.Restrictions, ", "))
	}
	if len(doc.Metadata.Preferences) > 0 {
		fmt.Fprintf(&b, "Preferencias: %s\n", strings.Join(doc.Metadata.Preferences, ", "))
	}
	b.WriteString("\n")

	for _, day := range doc.Days {
		fmt.Fprintf(&b, "%s\n", day.Name)
		fmt.Fprintf(&b, "%s\n", strings.Repeat("-", len(day.Name)))
		if day.Goal != "" {
			fmt.Fprintf(&b, "Objetivo: %s\n", day.Goal)
		}
		fmt.Fprintf(&b, "Totales: %d kcal | P %dg | C %dg | G %dg\n\n",
			day.Totals.Calories, day.Totals.Proteins, day.Totals.Carbs, day.Totals.Fats)

		for _, meal := range day.Meals {
			fmt.Fprintf(&b, "  %d. %s", meal.Order, meal.Type)
			if meal.Time != "" {
				fmt.Fprintf(&b, " (%s)", meal.Time)
			}
			fmt.Fprintf(&b, ": %s\n", meal.Title)
			if meal.Description != "" {
				fmt.Fprintf(&b, "     %s\n", meal.Description)
			}
			for _, f := range meal.Foods {
				fmt.Fprintf(&b, "     - %s: %g %s\n", f.Name, f.Quantity, f.Unit)
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
