package main

import "testing"

func TestCalculateEfficiencyFailureOverride(t *testing.T) {
	stats := HistoricalStats{AvgDuration: 100, StdDev: 5, FailureRate: 0}
	score := CalculateEfficiency(50, stats, "FAILURE", nil)
	if score.Total != 10 {
		t.Fatalf("expected total=10 for failed build, got %d", score.Total)
	}
	// Breakdown still reflects the computed sub-scores.
	if score.Breakdown.Speed != 100 {
		t.Fatalf("expected speed=100 (twice as fast, capped), got %d", score.Breakdown.Speed)
	}
	if score.Breakdown.Reliability != 100 {
		t.Fatalf("expected reliability=100, got %d", score.Breakdown.Reliability)
	}
	if score.Breakdown.Stability != 100 {
		t.Fatalf("expected stability=100, got %d", score.Breakdown.Stability)
	}
}

func TestCalculateEfficiencyWeightedBlend(t *testing.T) {
	// Matching the baseline exactly with no failures and no regression:
	// speed 50, reliability 100, stability 100 -> 50*0.4+100*0.3+100*0.3 = 80.
	stats := HistoricalStats{AvgDuration: 100, StdDev: 5, FailureRate: 0}
	score := CalculateEfficiency(100, stats, "SUCCESS", nil)
	if score.Total != 80 {
		t.Fatalf("expected total=80, got %d", score.Total)
	}
	if score.Breakdown.Speed != 50 {
		t.Fatalf("expected speed=50 at baseline, got %d", score.Breakdown.Speed)
	}
}

func TestCalculateEfficiencyNoBaselineSpeedDefault(t *testing.T) {
	score := CalculateEfficiency(100, HistoricalStats{}, "SUCCESS", nil)
	if score.Breakdown.Speed != 50 {
		t.Fatalf("expected default speed=50 without baseline, got %d", score.Breakdown.Speed)
	}
}

func TestCalculateEfficiencyRegressionPenalty(t *testing.T) {
	stats := HistoricalStats{AvgDuration: 100, StdDev: 10, FailureRate: 0}
	reg := &RegressionResult{IsRegression: true, ZScore: 2.0}
	score := CalculateEfficiency(100, stats, "SUCCESS", reg)
	// 2-sigma regression costs 40 stability points.
	if score.Breakdown.Stability != 60 {
		t.Fatalf("expected stability=60 at z=2, got %d", score.Breakdown.Stability)
	}

	// 5+ sigma saturates the penalty at 100.
	reg = &RegressionResult{IsRegression: true, ZScore: 7.5}
	score = CalculateEfficiency(100, stats, "SUCCESS", reg)
	if score.Breakdown.Stability != 0 {
		t.Fatalf("expected stability=0 at z=7.5, got %d", score.Breakdown.Stability)
	}
}

func TestCalculateEfficiencyReliabilityFloor(t *testing.T) {
	stats := HistoricalStats{AvgDuration: 100, StdDev: 5, FailureRate: 60}
	score := CalculateEfficiency(100, stats, "SUCCESS", nil)
	// 60% failure rate doubles to 120, floored at 0.
	if score.Breakdown.Reliability != 0 {
		t.Fatalf("expected reliability=0, got %d", score.Breakdown.Reliability)
	}
}

func TestCalculateEfficiencyNearZeroDuration(t *testing.T) {
	stats := HistoricalStats{AvgDuration: 100, StdDev: 5, FailureRate: 0}
	// The 0.1s floor keeps the ratio finite; speed still caps at 100.
	score := CalculateEfficiency(0, stats, "SUCCESS", nil)
	if score.Breakdown.Speed != 100 {
		t.Fatalf("expected speed=100 for near-zero duration, got %d", score.Breakdown.Speed)
	}
}
