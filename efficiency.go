package main

import "math"

const (
	speedWeight       = 0.4
	reliabilityWeight = 0.3
	stabilityWeight   = 0.3
)

// CalculateEfficiency blends speed, reliability, and stability into a 0-100
// score. A build that did not succeed is pinned to a total of 10 regardless
// of timing; the breakdown still reflects the computed sub-scores.
func CalculateEfficiency(duration float64, stats HistoricalStats, status string, regression *RegressionResult) EfficiencyScore {
	// Reliability: penalize historical failure rate at double weight, so a
	// 10% failure rate scores 80.
	reliability := math.Max(0, 100-stats.FailureRate*2)

	// Stability: full marks unless a regression was detected; then the
	// penalty scales with its z-score (2 sigma costs 40 points, 5+ sigma
	// saturates).
	stability := 100.0
	if regression != nil && regression.IsRegression {
		stability -= math.Min(100, regression.ZScore*20)
	}

	// Speed: relative to the job's own average. Matching the baseline
	// scores 50, twice as fast caps at 100, slower drops proportionally.
	speed := 50.0
	if stats.AvgDuration > 0 {
		ratio := stats.AvgDuration / math.Max(0.1, duration)
		speed = math.Min(100, 50*ratio)
	}

	var total float64
	if status != "SUCCESS" {
		total = 10 // failed builds never score well on timing alone
	} else {
		total = speed*speedWeight + reliability*reliabilityWeight + stability*stabilityWeight
	}

	return EfficiencyScore{
		Total: int(total),
		Breakdown: EfficiencyBreakdown{
			Speed:       int(speed),
			Reliability: int(reliability),
			Stability:   int(stability),
		},
	}
}
