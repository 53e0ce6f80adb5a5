package service

// CalculateDropoutRisk derives a 0-100 risk score from the four intake
// factors. Lower academic performance and attendance raise the score, and
// each step of socio-economic pressure or weak family support adds ten
// points. The score is computed once at intake and never recomputed.
func CalculateDropoutRisk(academic, attendance float64, socioEconomic, familySupport int) float64 {
	risk := 0.3*(100-academic) +
		0.2*(100-attendance) +
		float64(socioEconomic)*10 +
		float64(familySupport)*10

	if risk < 0 {
		return 0
	}
	if risk > 100 {
		return 100
	}
	return risk
}
