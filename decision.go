package main

import "fmt"

// remediationAction is one knowledge-base entry mapping an issue category to
// a concrete fix. ImpactFactor is the share of the regression deviation the
// fix is expected to claw back.
type remediationAction struct {
	Title        string
	ImpactFactor float64
	Snippet      string
}

var remediationKnowledgeBase = map[string]remediationAction{
	"DEPENDENCY_NODE": {
		Title:        "Enable NPM Caching",
		ImpactFactor: 0.4,
		Snippet:      "stage('Install') {\n  steps {\n    sh 'npm ci --cache .npm'\n  }\n}",
	},
	"DEPENDENCY_PYTHON": {
		Title:        "Enable Pip Caching",
		ImpactFactor: 0.3,
		Snippet:      "environment {\n  PIP_CACHE_DIR = \"${WORKSPACE}/.pip-cache\"\n}",
	},
	"DOCKER": {
		Title:        "Fix Docker Daemon",
		ImpactFactor: 1.0,
		Snippet:      "// Ensure Docker socket is mounted\nargs '-v /var/run/docker.sock:/var/run/docker.sock'",
	},
	"TIMEOUT": {
		Title:        "Increase Stage Timeout",
		ImpactFactor: 0.0,
		Snippet:      "options {\n    timeout(time: 60, unit: 'MINUTES')\n}",
	},
	"NETWORK": {
		Title:        "Network Retry Logic",
		ImpactFactor: 0.5,
		Snippet:      "retry(3) {\n    sh 'curl -f ...'\n}",
	},
	"TEST_FAILURE": {
		Title:        "Quarantine Flaky Tests",
		ImpactFactor: 0.0,
		Snippet:      "// Mark test stage as unstable but don't fail build\ncatchError(buildResult: 'UNSTABLE', stageResult: 'FAILURE') {\n    sh 'make test'\n}",
	},
}

// GeneratePlan maps detected issues and regression state to remediation
// suggestions. Issue categories without a knowledge-base entry are skipped
// silently. A regressed build gets exactly one extra generic suggestion,
// independent of any issue.
func GeneratePlan(result *AnalysisResult) []Suggestion {
	if result == nil {
		return nil
	}

	var suggestions []Suggestion
	for _, issue := range result.Issues {
		action, ok := remediationKnowledgeBase[issue.Type]
		if !ok {
			continue
		}

		estimatedSaving := "N/A"
		if reg := result.Regression; reg != nil && reg.IsRegression && reg.DeviationSeconds > 0 {
			saved := int(reg.DeviationSeconds * action.ImpactFactor)
			estimatedSaving = fmt.Sprintf("~%d seconds", saved)
		}

		suggestions = append(suggestions, Suggestion{
			Title:       action.Title,
			Description: fmt.Sprintf("Root Cause: %s. Fix this to improve stability.", issue.Cause),
			Confidence:  fmt.Sprintf("%d%%", int(issue.Confidence*100)),
			Impact:      estimatedSaving,
			Severity:    "HIGH",
			Snippet:     action.Snippet,
		})
	}

	if reg := result.Regression; reg != nil && reg.IsRegression {
		suggestions = append(suggestions, Suggestion{
			Title:       "Regression Detected",
			Description: fmt.Sprintf("Build is %.1f%% slower than baseline (%.2fs).", reg.IncreasePercent, reg.BaselineAvg),
			Confidence:  "100%",
			Impact:      "Variable",
			Severity:    "MEDIUM",
			Snippet:     "// Check commit history for heavy changes",
		})
	}

	return suggestions
}
