package consulta

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MarciaOrozco/nutrito-backend/internal/model"
)

// Export section names. An empty secciones list renders everything.
const (
	SeccionMotivo       = "motivo"
	SeccionDiagnostico  = "diagnostico"
	SeccionIndicaciones = "indicaciones"
	SeccionNotas        = "notas"
	SeccionMedidas      = "medidas"
)

// RenderDocument flattens a consulta into the exported text document,
// limited to the requested secciones.
func RenderDocument(c *model.Consulta, secciones []string) string {
	include := func(string) bool { return true }
	if len(secciones) > 0 {
		wanted := make(map[string]bool, len(secciones))
		for _, s := range secciones {
			wanted[strings.ToLower(strings.TrimSpace(s))] = true
		}
		include = func(name string) bool { return wanted[name] }
	}

	var b strings.Builder
	b.WriteString("CONSULTA NUTRICIONAL\n")
	b.WriteString("====================\n\n")
	fmt.Fprintf(&b, "Fecha: %s\n\n", c.Fecha.Format("2006-01-02"))

	if include(SeccionMotivo) && c.Motivo != "" {
		fmt.Fprintf(&b, "Motivo:\n%s\n\n", c.Motivo)
	}
	if include(SeccionDiagnostico) && c.Diagnostico != "" {
		fmt.Fprintf(&b, "Diagnóstico:\n%s\n\n", c.Diagnostico)
	}
	if include(SeccionIndicaciones) && c.Indicaciones != "" {
		fmt.Fprintf(&b, "Indicaciones:\n%s\n\n", c.Indicaciones)
	}
	if include(SeccionNotas) && c.Notas != "" {
		fmt.Fprintf(&b, "Notas:\n%s\n\n", c.Notas)
	}
	if include(SeccionMedidas) && len(c.Medidas) > 0 {
		var m Medidas
		if err := json.Unmarshal(c.Medidas, &m); err == nil && m.Peso > 0 {
			b.WriteString("Medidas:\n")
			fmt.Fprintf(&b, "  Peso: %g kg\n", m.Peso)
			fmt.Fprintf(&b, "  Altura: %g m\n", m.Altura)
			fmt.Fprintf(&b, "  IMC: %g\n\n", m.IMC)
		}
	}

	return b.String()
}
