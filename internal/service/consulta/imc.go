package consulta

import "math"

// IMC computes the body-mass index rounded to one decimal. Altura above
// 3 is taken as centimeters and converted.
func IMC(peso, altura float64) float64 {
	if peso <= 0 || altura <= 0 {
		return 0
	}
	if altura > 3 {
		altura /= 100
	}
	return math.Round(peso/(altura*altura)*10) / 10
}
