package main

import (
	"strings"
	"testing"
)

func TestFormatAnalysisSummary(t *testing.T) {
	result := sampleResult()
	suggestions := GeneratePlan(result)

	summary := FormatAnalysisSummary(result, suggestions)
	for _, want := range []string{
		"deploy-api #42: SUCCESS",
		"score 64/100",
		"risk MEDIUM (30%)",
		"regression +30.0% (z=3.00)",
		"issues: DEPENDENCY_NODE",
		"2 suggestions",
	} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary missing %q: %s", want, summary)
		}
	}
}

func TestFormatAnalysisSummaryHealthyBuild(t *testing.T) {
	result := sampleResult()
	result.Regression = nil
	result.Issues = nil

	summary := FormatAnalysisSummary(result, nil)
	if strings.Contains(summary, "regression") || strings.Contains(summary, "issues") {
		t.Fatalf("healthy summary must omit regression/issue parts: %s", summary)
	}
}
