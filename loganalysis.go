package main

import "regexp"

// failureSignature is one category of the fixed detection catalog. Patterns
// are tested in order; the first hit emits the category's Issue and the rest
// are skipped, so a category contributes at most one Issue per build.
type failureSignature struct {
	Type       string
	Patterns   []*regexp.Regexp
	Cause      string
	Suggestion string
}

// failureCatalog is loaded once; output order follows catalog order, not
// match position in the log.
var failureCatalog = []failureSignature{
	{
		Type: "TIMEOUT",
		Patterns: compilePatterns(
			`TimeoutException`,
			`Build timed out`,
			`Aborted by timeout`,
		),
		Cause:      "Pipeline Timeout",
		Suggestion: "Increase timeout limit or optimize slow stages.",
	},
	{
		Type: "NETWORK",
		Patterns: compilePatterns(
			`Connection refused`,
			`502 Bad Gateway`,
			`Could not resolve host`,
			`Network is unreachable`,
		),
		Cause:      "Network/Connectivity Issue",
		Suggestion: "Check network configuration, proxy settings, or external service availability.",
	},
	{
		Type: "DOCKER",
		Patterns: compilePatterns(
			`DockerException`,
			`Cannot connect to the Docker daemon`,
			`docker: command not found`,
		),
		Cause:      "Docker Infrastructure Failure",
		Suggestion: "Ensure Docker daemon is running and the agent has permissions.",
	},
	{
		Type: "DEPENDENCY_NODE",
		Patterns: compilePatterns(
			`npm ERR!`,
			`yarn error`,
			`Module not found`,
		),
		Cause:      "Node.js Dependency Failure",
		Suggestion: "Check package.json, clean cache (npm cache clean --force), or check registry.",
	},
	{
		Type: "DEPENDENCY_PYTHON",
		Patterns: compilePatterns(
			`pip install failed`,
			`No matching distribution found`,
			`ModuleNotFoundError`,
		),
		Cause:      "Python Dependency Failure",
		Suggestion: "Check requirements.txt and PyPI connectivity.",
	},
	{
		Type: "TEST_FAILURE",
		Patterns: compilePatterns(
			`Tests failed`,
			`AssertionError`,
			`1\) Failure`,
		),
		Cause:      "Unit/Integration Test Failure",
		Suggestion: "Review test logs and fix the failing test cases.",
	},
}

func compilePatterns(exprs ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		patterns = append(patterns, regexp.MustCompile(`(?i)`+expr))
	}
	return patterns
}

// AnalyzeLog scans console output against the failure catalog. Empty input
// yields an empty result. Regex hits carry fixed maximum confidence; there
// is no partial-confidence model.
func AnalyzeLog(consoleText string) []Issue {
	var issues []Issue
	if consoleText == "" {
		return issues
	}

	for _, sig := range failureCatalog {
		for _, pattern := range sig.Patterns {
			if pattern.MatchString(consoleText) {
				issues = append(issues, Issue{
					Type:       sig.Type,
					Cause:      sig.Cause,
					Suggestion: sig.Suggestion,
					Confidence: 1.0,
				})
				break
			}
		}
	}
	return issues
}
