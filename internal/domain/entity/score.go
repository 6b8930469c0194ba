package entity

import "math"

// Веса правил. В сумме дают 100.
const (
	WeightContrast   = 40.0
	WeightAltText    = 20.0
	WeightTextResize = 20.0
	WeightColor      = 20.0
)

// MaxTrustedPrediction всё, что выше, считается мусором от модели.
const MaxTrustedPrediction = 1000.0

// ScorePair пара итоговых оценок: по правилам и от модели.
type ScorePair struct {
	Rule float64 `yaml:"rule" json:"rule"`
	ML   float64 `yaml:"ml" json:"ml"`
}

// ComputeRuleScore сводит результаты правил в оценку 0..100.
func ComputeRuleScore(r RuleResult) float64 {
	score := WeightContrast * contrastComponent(r.Contrast)
	if r.AltText {
		score += WeightAltText
	}
	if r.TextResize {
		score += WeightTextResize
	}
	if r.Color {
		score += WeightColor
	}
	return clamp(round2(score), 0, 100)
}

// contrastComponent линейно растёт от 1:1 до порога WCAG.
func contrastComponent(ratio float64) float64 {
	if math.IsNaN(ratio) {
		return 0
	}
	return clamp((ratio-1)/(ContrastThreshold-1), 0, 1)
}

// SanitizeExternalScore не доверяет внешней модели: NaN, отрицательные и
// запредельные значения превращаются в 0, остальное зажимается в 0..100.
func SanitizeExternalScore(raw float64) float64 {
	if math.IsNaN(raw) || math.IsInf(raw, 0) || raw < 0 || raw > MaxTrustedPrediction {
		return 0
	}
	return clamp(raw, 0, 100)
}

// Grade переводит оценку в буквенную (A+ -> F).
func Grade(score float64) string {
	switch {
	case score >= 95:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 70:
		return "B"
	case score >= 55:
		return "C"
	case score >= 40:
		return "D"
	default:
		return "F"
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
