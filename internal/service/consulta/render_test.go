package consulta

import (
	"strings"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/MarciaOrozco/nutrito-backend/internal/model"
)

func sampleConsulta() *model.Consulta {
	return &model.Consulta{
		Motivo:       "Control mensual",
		Diagnostico:  "Evolución favorable",
		Indicaciones: "Mantener plan actual",
		Notas:        "Buena adherencia",
		Medidas:      datatypes.JSON(`{"peso":70,"altura":1.75,"imc":22.9}`),
		Fecha:        time.Date(2025, 7, 14, 10, 0, 0, 0, time.UTC),
	}
}

func TestRenderDocumentAllSections(t *testing.T) {
	out := RenderDocument(sampleConsulta(), nil)

	for _, want := range []string{
		"CONSULTA NUTRICIONAL",
		"Fecha: 2025-07-14",
		"Motivo:\nControl mensual",
		"Diagnóstico:\nEvolución favorable",
		"Indicaciones:\nMantener plan actual",
		"Notas:\nBuena adherencia",
		"Peso: 70 kg",
		"IMC: 22.9",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestRenderDocumentSelectedSections(t *testing.T) {
	out := RenderDocument(sampleConsulta(), []string{"motivo", "medidas"})

	if !strings.Contains(out, "Control mensual") {
		t.Error("motivo should be included")
	}
	if !strings.Contains(out, "IMC: 22.9") {
		t.Error("medidas should be included")
	}
	if strings.Contains(out, "Evolución favorable") {
		t.Error("diagnostico should be excluded")
	}
	if strings.Contains(out, "Buena adherencia") {
		t.Error("notas should be excluded")
	}
}
