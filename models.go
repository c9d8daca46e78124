package main

// BuildReport is the normalized input to one analysis pass, regardless of
// whether it came from the wfapi pipeline endpoint or the standard API
// fallback.
type BuildReport struct {
	JobName     string        `json:"job_name"`
	BuildNumber int           `json:"build_number"`
	Status      string        `json:"status"` // "SUCCESS", "FAILURE", ...
	Duration    float64       `json:"duration_seconds"`
	Stages      []StageRecord `json:"stages"`
	ConsoleLog  string        `json:"console_log"`
}

// StageRecord is one timed sub-unit of a build. Durations arrive in
// milliseconds from Jenkins and are converted to seconds for analysis.
type StageRecord struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	DurationMS  int64  `json:"durationMillis"`
	StartTimeMS int64  `json:"startTimeMillis"`
	PauseMS     int64  `json:"pauseDurationMillis"`
}

// DurationSeconds converts the stage's millisecond duration for analysis.
func (s StageRecord) DurationSeconds() float64 {
	return float64(s.DurationMS) / 1000.0
}

// HistoricalStats are derived fresh from the builds table on every call.
// AvgDuration and StdDev cover successful builds only; FailureRate covers
// all builds in the window.
type HistoricalStats struct {
	AvgDuration float64 `json:"avg_duration"`
	StdDev      float64 `json:"std_dev"`
	FailureRate float64 `json:"failure_rate"` // percent
	TotalBuilds int     `json:"total_builds"`
}

// Issue is a failure signature detected in console output.
type Issue struct {
	Type       string  `json:"type"`
	Cause      string  `json:"cause"`
	Suggestion string  `json:"suggestion"`
	Confidence float64 `json:"confidence"`
}

// RegressionResult is the job-level verdict. A nil *RegressionResult means
// "no baseline", which callers must treat differently from "no regression".
type RegressionResult struct {
	IsRegression     bool    `json:"is_regression"`
	BaselineAvg      float64 `json:"baseline_avg"`
	CurrentDuration  float64 `json:"current_duration"`
	DeviationSeconds float64 `json:"deviation_seconds"`
	IncreasePercent  float64 `json:"increase_percent"`
	ZScore           float64 `json:"z_score"`
}

// StageMetric is the per-stage breakdown for the current build.
type StageMetric struct {
	Name          string  `json:"name"`
	Duration      float64 `json:"duration"`
	Baseline      float64 `json:"baseline"`
	RegressionPct int     `json:"regression_pct"` // 0 unless flagged
	ImpactPct     int     `json:"impact_pct"`
	Status        string  `json:"status"` // "HEALTHY" or "REGRESSION"
}

// EfficiencyScore is the 0-100 composite. Breakdown values are reported
// even when the failure override pins Total to 10.
type EfficiencyScore struct {
	Total     int                 `json:"total_score"`
	Breakdown EfficiencyBreakdown `json:"breakdown"`
}

type EfficiencyBreakdown struct {
	Speed       int `json:"speed"`
	Reliability int `json:"reliability"`
	Stability   int `json:"stability"`
}

// RiskAssessment estimates near-term failure likelihood.
type RiskAssessment struct {
	Level       string   `json:"risk_level"` // LOW, MEDIUM, HIGH, CRITICAL
	Probability int      `json:"probability"`
	Reasons     []string `json:"reasons"`
}

// Suggestion is one remediation action produced by the decision engine.
type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Confidence  string `json:"confidence"` // e.g. "100%"
	Impact      string `json:"impact"`     // "~N seconds", "Variable", or "N/A"
	Severity    string `json:"severity"`   // HIGH or MEDIUM
	Snippet     string `json:"snippet"`
}

// AnalysisResult is the combined diagnosis for one build.
type AnalysisResult struct {
	JobName       string            `json:"job_name"`
	BuildNumber   int               `json:"build_number"`
	Status        string            `json:"status"`
	TotalDuration float64           `json:"total_duration"`
	Stages        []StageRecord     `json:"stages"`
	StageAnalysis []StageMetric     `json:"stage_analysis"`
	Efficiency    EfficiencyScore   `json:"efficiency"`
	Regression    *RegressionResult `json:"regression"`
	Risk          RiskAssessment    `json:"risk"`
	Issues        []Issue           `json:"issues"`
	Stats         HistoricalStats   `json:"stats"`
}
