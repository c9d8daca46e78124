package main

import "fmt"

// PredictRisk combines failure history, regression state, and detected
// issues into a failure-probability estimate. Contributions are additive
// and independent; any subset may fire.
func PredictRisk(stats HistoricalStats, regression *RegressionResult, issues []Issue) RiskAssessment {
	probability := 10 // base risk
	var reasons []string

	if stats.FailureRate > 20 {
		probability += 30
		reasons = append(reasons, "High historical failure rate (>20%)")
	}
	if regression != nil && regression.IsRegression {
		probability += 20
		reasons = append(reasons, "Performance regression detected")
	}
	if len(issues) > 0 {
		probability += 25
		reasons = append(reasons, fmt.Sprintf("%d active root cause patterns found", len(issues)))
	}

	if probability > 100 {
		probability = 100
	}

	level := "LOW"
	switch {
	case probability > 75:
		level = "CRITICAL"
	case probability > 50:
		level = "HIGH"
	case probability > 25:
		level = "MEDIUM"
	}

	return RiskAssessment{
		Level:       level,
		Probability: probability,
		Reasons:     reasons,
	}
}
