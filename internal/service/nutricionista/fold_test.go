package nutricionista

import (
	"testing"

	"github.com/MarciaOrozco/nutrito-backend/internal/model"
)

func TestFold(t *testing.T) {
	cases := []struct{ in, want string }{
		{"María Pérez", "maria perez"},
		{"NUTRICIÓN", "nutricion"},
		{"Ñoquis", "noquis"},
		{"sin acentos", "sin acentos"},
	}
	for _, c := range cases {
		if got := fold(c.in); got != c.want {
			t.Errorf("fold(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func profileWith(nombre, apellido string, especialidades, modalidades []string) model.NutricionistaProfile {
	p := model.NutricionistaProfile{
		User: model.User{Nombre: nombre, Apellido: apellido},
	}
	for _, e := range especialidades {
		p.Especialidades = append(p.Especialidades, model.Especialidad{Nombre: e})
	}
	for _, m := range modalidades {
		p.Modalidades = append(p.Modalidades, model.Modalidad{Nombre: m})
	}
	return p
}

func TestMatches(t *testing.T) {
	p := profileWith("María", "Pérez",
		[]string{"Nutrición deportiva", "Diabetes"},
		[]string{"Virtual"})

	cases := []struct {
		name    string
		filters SearchFilters
		want    bool
	}{
		{"empty filters", SearchFilters{}, true},
		{"nombre accent-insensitive", SearchFilters{Nombre: "maria perez"}, true},
		{"nombre no match", SearchFilters{Nombre: "carlos"}, false},
		{"especialidad partial", SearchFilters{Especialidad: "deportiva"}, true},
		{"especialidades AND ok", SearchFilters{Especialidades: []string{"deportiva", "diabetes"}}, true},
		{"especialidades AND missing one", SearchFilters{Especialidades: []string{"deportiva", "pediatria"}}, false},
		{"modalidades OR ok", SearchFilters{Modalidades: []string{"Presencial", "Virtual"}}, true},
		{"modalidades OR none", SearchFilters{Modalidades: []string{"Presencial"}}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := matches(p, c.filters); got != c.want {
				t.Errorf("matches(%+v) = %v, want %v", c.filters, got, c.want)
			}
		})
	}
}
