package consulta

import "testing"

func TestIMC(t *testing.T) {
	cases := []struct {
		peso, altura float64
		want         float64
	}{
		{70, 1.75, 22.9},
		{70, 175, 22.9}, // centimeters accepted
		{82.5, 1.68, 29.2},
		{0, 1.75, 0},
		{70, 0, 0},
		{-5, 1.7, 0},
	}

	for _, c := range cases {
		if got := IMC(c.peso, c.altura); got != c.want {
			t.Errorf("IMC(%v, %v) = %v, want %v", c.peso, c.altura, got, c.want)
		}
	}
}
