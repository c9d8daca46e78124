package main

import "math"

// regression threshold in standard deviations; strictly greater-than.
const regressionZThreshold = 1.3

// DetectRegression compares the current duration to the job's historical
// baseline. It returns nil when no baseline exists (zero average), which is
// a normal state distinct from "no regression". A flat baseline (zero
// standard deviation) never flags via z-score.
func DetectRegression(currentDuration float64, stats HistoricalStats) *RegressionResult {
	avg := stats.AvgDuration
	if avg == 0 {
		return nil
	}

	deviation := currentDuration - avg
	zScore := 0.0
	if stats.StdDev > 0 {
		zScore = deviation / stats.StdDev
	}

	return &RegressionResult{
		IsRegression:     zScore > regressionZThreshold,
		BaselineAvg:      round2(avg),
		CurrentDuration:  round2(currentDuration),
		DeviationSeconds: round2(deviation),
		IncreasePercent:  round1(deviation / avg * 100),
		ZScore:           round2(zScore),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
