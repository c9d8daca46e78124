package main

import "testing"

func TestPredictRiskBaseline(t *testing.T) {
	risk := PredictRisk(HistoricalStats{}, nil, nil)
	if risk.Probability != 10 {
		t.Fatalf("expected base probability 10, got %d", risk.Probability)
	}
	if risk.Level != "LOW" {
		t.Fatalf("expected LOW, got %s", risk.Level)
	}
	if len(risk.Reasons) != 0 {
		t.Fatalf("expected no reasons, got %v", risk.Reasons)
	}
}

func TestPredictRiskFailureRateOnly(t *testing.T) {
	risk := PredictRisk(HistoricalStats{FailureRate: 25}, nil, nil)
	if risk.Probability != 40 {
		t.Fatalf("expected probability 40 (10+30), got %d", risk.Probability)
	}
	if risk.Level != "MEDIUM" {
		t.Fatalf("expected MEDIUM, got %s", risk.Level)
	}
	if len(risk.Reasons) != 1 {
		t.Fatalf("expected 1 reason, got %v", risk.Reasons)
	}
}

func TestPredictRiskAllFactors(t *testing.T) {
	reg := &RegressionResult{IsRegression: true, ZScore: 2}
	issues := []Issue{{Type: "DOCKER"}, {Type: "NETWORK"}}
	risk := PredictRisk(HistoricalStats{FailureRate: 25}, reg, issues)
	if risk.Probability != 85 {
		t.Fatalf("expected probability 85 (10+30+20+25), got %d", risk.Probability)
	}
	if risk.Level != "CRITICAL" {
		t.Fatalf("expected CRITICAL, got %s", risk.Level)
	}
	if len(risk.Reasons) != 3 {
		t.Fatalf("expected 3 reasons, got %v", risk.Reasons)
	}
	if risk.Reasons[2] != "2 active root cause patterns found" {
		t.Fatalf("unexpected issues reason: %q", risk.Reasons[2])
	}
}

func TestPredictRiskBoundaries(t *testing.T) {
	// failure_rate == 20 does not fire (strict greater-than).
	risk := PredictRisk(HistoricalStats{FailureRate: 20}, nil, nil)
	if risk.Probability != 10 {
		t.Fatalf("expected probability 10 at exactly 20%% failure rate, got %d", risk.Probability)
	}

	// Regression detected but not flagged contributes nothing.
	reg := &RegressionResult{IsRegression: false, ZScore: 1.0}
	risk = PredictRisk(HistoricalStats{}, reg, nil)
	if risk.Probability != 10 {
		t.Fatalf("expected probability 10 without flagged regression, got %d", risk.Probability)
	}

	// Regression + issues without failure rate: 10+20+25 = 55 -> HIGH.
	reg = &RegressionResult{IsRegression: true}
	risk = PredictRisk(HistoricalStats{}, reg, []Issue{{Type: "TIMEOUT"}})
	if risk.Probability != 55 || risk.Level != "HIGH" {
		t.Fatalf("expected 55/HIGH, got %d/%s", risk.Probability, risk.Level)
	}
}
