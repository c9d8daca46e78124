package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteDiagnosisReport renders one build's diagnosis as markdown and writes
// it to the output directory as <job>_<build>.md, returning the path.
func WriteDiagnosisReport(result *AnalysisResult, suggestions []Suggestion, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", err
	}
	filename := fmt.Sprintf("%s_%d.md", sanitizeFilename(result.JobName), result.BuildNumber)
	path := filepath.Join(outputDir, filename)
	content := FormatDiagnosisReport(result, suggestions)
	return path, os.WriteFile(path, []byte(content), 0644)
}

// FormatDiagnosisReport builds the markdown body of a diagnosis report.
func FormatDiagnosisReport(result *AnalysisResult, suggestions []Suggestion) string {
	var out strings.Builder

	fmt.Fprintf(&out, "# Build Diagnosis: %s #%d\n\n", result.JobName, result.BuildNumber)
	fmt.Fprintf(&out, "- Status: %s\n", result.Status)
	fmt.Fprintf(&out, "- Total duration: %.2fs\n", result.TotalDuration)
	fmt.Fprintf(&out, "- Efficiency score: %d/100 (speed %d, reliability %d, stability %d)\n",
		result.Efficiency.Total,
		result.Efficiency.Breakdown.Speed,
		result.Efficiency.Breakdown.Reliability,
		result.Efficiency.Breakdown.Stability,
	)
	fmt.Fprintf(&out, "- Risk: %s (%d%%)\n", result.Risk.Level, result.Risk.Probability)
	for _, reason := range result.Risk.Reasons {
		fmt.Fprintf(&out, "  - %s\n", reason)
	}

	out.WriteString("\n## Regression\n\n")
	if reg := result.Regression; reg == nil {
		out.WriteString("No baseline yet: this job has no successful build history to compare against.\n")
	} else if reg.IsRegression {
		fmt.Fprintf(&out, "REGRESSION: %.2fs vs baseline %.2fs (+%.1f%%, z=%.2f)\n",
			reg.CurrentDuration, reg.BaselineAvg, reg.IncreasePercent, reg.ZScore)
	} else {
		fmt.Fprintf(&out, "Within normal range: %.2fs vs baseline %.2fs (z=%.2f)\n",
			reg.CurrentDuration, reg.BaselineAvg, reg.ZScore)
	}

	if len(result.StageAnalysis) > 0 {
		out.WriteString("\n## Stages\n\n")
		out.WriteString("| Stage | Duration | Baseline | Impact | Status |\n")
		out.WriteString("|---|---|---|---|---|\n")
		for _, m := range result.StageAnalysis {
			status := m.Status
			if m.RegressionPct > 0 {
				status = fmt.Sprintf("%s (+%d%%)", m.Status, m.RegressionPct)
			}
			fmt.Fprintf(&out, "| %s | %.2fs | %.2fs | %d%% | %s |\n",
				m.Name, m.Duration, m.Baseline, m.ImpactPct, status)
		}
	}

	out.WriteString("\n## Detected Issues\n\n")
	if len(result.Issues) == 0 {
		out.WriteString("None.\n")
	}
	for _, issue := range result.Issues {
		fmt.Fprintf(&out, "- **%s** — %s. %s\n", issue.Type, issue.Cause, issue.Suggestion)
	}

	out.WriteString("\n## Suggestions\n\n")
	if len(suggestions) == 0 {
		out.WriteString("None.\n")
	}
	for _, s := range suggestions {
		fmt.Fprintf(&out, "### %s [%s]\n\n", s.Title, s.Severity)
		fmt.Fprintf(&out, "%s\n\n", s.Description)
		fmt.Fprintf(&out, "Confidence: %s, estimated saving: %s\n\n", s.Confidence, s.Impact)
		fmt.Fprintf(&out, "```\n%s\n```\n\n", s.Snippet)
	}

	return out.String()
}

func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_", " ", "_")
	return replacer.Replace(s)
}
