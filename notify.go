package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/slack-go/slack"
)

// FormatAnalysisSummary returns the one-line summary posted to Slack and
// printed after each analysis.
func FormatAnalysisSummary(result *AnalysisResult, suggestions []Suggestion) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%s #%d: %s", result.JobName, result.BuildNumber, result.Status))
	parts = append(parts, fmt.Sprintf("score %d/100", result.Efficiency.Total))
	parts = append(parts, fmt.Sprintf("risk %s (%d%%)", result.Risk.Level, result.Risk.Probability))

	if reg := result.Regression; reg != nil && reg.IsRegression {
		parts = append(parts, fmt.Sprintf("regression +%.1f%% (z=%.2f)", reg.IncreasePercent, reg.ZScore))
	}
	if len(result.Issues) > 0 {
		var types []string
		for _, issue := range result.Issues {
			types = append(types, issue.Type)
		}
		parts = append(parts, fmt.Sprintf("issues: %s", strings.Join(types, ", ")))
	}
	if len(suggestions) > 0 {
		parts = append(parts, fmt.Sprintf("%d suggestions", len(suggestions)))
	}
	return strings.Join(parts, " | ")
}

// PostAnalysisSummary posts the summary to the configured channel. A post
// failure is logged, never fatal.
func PostAnalysisSummary(cfg Config, api *slack.Client, summary string) {
	if api == nil || !cfg.SlackConfigured() {
		return
	}
	_, _, err := api.PostMessage(cfg.SlackChannelID, slack.MsgOptionText(summary, false))
	if err != nil {
		log.Printf("Slack post error: %v", err)
	}
}
