package main

import (
	"testing"
)

func testPipelineConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		StatsWindow:        20,
		StageHistoryWindow: 10,
		ReportOutputDir:    t.TempDir(),
	}
}

func successfulReport(number int) *BuildReport {
	return &BuildReport{
		JobName:     "deploy-api",
		BuildNumber: number,
		Status:      "SUCCESS",
		Duration:    100,
		Stages: []StageRecord{
			{Name: "Install", Status: "SUCCESS", DurationMS: 30000},
			{Name: "Test", Status: "SUCCESS", DurationMS: 70000},
		},
		ConsoleLog: "Finished: SUCCESS",
	}
}

func TestAnalyzeBuildNilReport(t *testing.T) {
	db := newTestDB(t)
	result, err := AnalyzeBuild(db, testPipelineConfig(t), nil)
	if err != nil {
		t.Fatalf("AnalyzeBuild failed: %v", err)
	}
	if result != nil {
		t.Fatalf("expected nil result for nil report, got %+v", result)
	}
}

func TestAnalyzeBuildFirstRunNoBaseline(t *testing.T) {
	db := newTestDB(t)
	cfg := testPipelineConfig(t)

	result, err := AnalyzeBuild(db, cfg, successfulReport(1))
	if err != nil {
		t.Fatalf("AnalyzeBuild failed: %v", err)
	}
	if result == nil {
		t.Fatal("expected a result")
	}
	if result.Regression != nil {
		t.Fatalf("expected nil regression without history, got %+v", result.Regression)
	}
	if result.Stats.TotalBuilds != 0 {
		t.Fatalf("stats must reflect history before this build, got %d", result.Stats.TotalBuilds)
	}
	if len(result.StageAnalysis) != 2 {
		t.Fatalf("expected 2 stage metrics, got %d", len(result.StageAnalysis))
	}
	// success, no baseline: speed 50, reliability 100, stability 100 -> 80.
	if result.Efficiency.Total != 80 {
		t.Fatalf("expected efficiency 80, got %d", result.Efficiency.Total)
	}
	if result.Risk.Level != "LOW" {
		t.Fatalf("expected LOW risk, got %s", result.Risk.Level)
	}

	// The build and its stages must now be persisted.
	history, err := GetJobHistory(db, "deploy-api", 10)
	if err != nil {
		t.Fatalf("GetJobHistory failed: %v", err)
	}
	if len(history) != 1 || history[0].BuildNumber != 1 {
		t.Fatalf("expected one persisted build, got %+v", history)
	}
	stageHistory, err := GetStageHistory(db, "deploy-api", 10)
	if err != nil {
		t.Fatalf("GetStageHistory failed: %v", err)
	}
	if len(stageHistory[1]) != 2 {
		t.Fatalf("expected 2 persisted stages, got %+v", stageHistory)
	}
}

func TestAnalyzeBuildRerunIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	cfg := testPipelineConfig(t)

	if _, err := AnalyzeBuild(db, cfg, successfulReport(1)); err != nil {
		t.Fatalf("first AnalyzeBuild failed: %v", err)
	}

	second := successfulReport(1)
	second.Status = "FAILURE"
	second.Duration = 250
	if _, err := AnalyzeBuild(db, cfg, second); err != nil {
		t.Fatalf("second AnalyzeBuild failed: %v", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM builds WHERE job_name = 'deploy-api'`).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one persisted row after rerun, got %d", count)
	}

	history, err := GetJobHistory(db, "deploy-api", 10)
	if err != nil {
		t.Fatalf("GetJobHistory failed: %v", err)
	}
	if history[0].Result != "FAILURE" || history[0].TotalDuration != 250 {
		t.Fatalf("expected the second run's values, got %+v", history[0])
	}
}

func TestAnalyzeBuildDetectsRegressionAgainstHistory(t *testing.T) {
	db := newTestDB(t)
	cfg := testPipelineConfig(t)

	// Seed a stable history: 100s +/- small noise.
	for i := 1; i <= 10; i++ {
		duration := 95.0 + float64(i%3)*5 // 95, 100, 105
		mustSaveBuild(t, db, "deploy-api", i, "SUCCESS", duration, 80)
	}

	report := successfulReport(11)
	report.Duration = 200
	result, err := AnalyzeBuild(db, cfg, report)
	if err != nil {
		t.Fatalf("AnalyzeBuild failed: %v", err)
	}
	if result.Regression == nil {
		t.Fatal("expected a regression result with history present")
	}
	if !result.Regression.IsRegression {
		t.Fatalf("expected a 2x build to flag regression, got %+v", result.Regression)
	}
	if result.Risk.Probability != 30 {
		t.Fatalf("expected risk 30 (10+20), got %d", result.Risk.Probability)
	}
}

func TestAnalyzeBuildFailedStatusPinsScore(t *testing.T) {
	db := newTestDB(t)
	cfg := testPipelineConfig(t)

	report := successfulReport(1)
	report.Status = "FAILURE"
	report.ConsoleLog = "npm ERR! code E404\nFinished: FAILURE"

	result, err := AnalyzeBuild(db, cfg, report)
	if err != nil {
		t.Fatalf("AnalyzeBuild failed: %v", err)
	}
	if result.Efficiency.Total != 10 {
		t.Fatalf("expected pinned score 10 for failed build, got %d", result.Efficiency.Total)
	}
	if len(result.Issues) != 1 || result.Issues[0].Type != "DEPENDENCY_NODE" {
		t.Fatalf("expected one DEPENDENCY_NODE issue, got %+v", result.Issues)
	}

	// Detected issues are persisted alongside the build.
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM log_analysis`).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 persisted issue row, got %d", count)
	}
}

func TestAnalyzeBuildSurvivesPersistenceFailure(t *testing.T) {
	db := newTestDB(t)
	cfg := testPipelineConfig(t)

	// Break only the issue table: the write fails, the diagnosis survives.
	if _, err := db.Exec(`DROP TABLE log_analysis`); err != nil {
		t.Fatalf("drop table failed: %v", err)
	}

	result, err := AnalyzeBuild(db, cfg, successfulReport(1))
	if err != nil {
		t.Fatalf("AnalyzeBuild must not fail on a persistence error: %v", err)
	}
	if result == nil {
		t.Fatal("expected a result despite the persistence failure")
	}
	if result.Efficiency.Total != 80 {
		t.Fatalf("expected a complete diagnosis, got %+v", result.Efficiency)
	}
}
