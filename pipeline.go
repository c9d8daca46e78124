package main

import (
	"database/sql"
	"log"
)

// AnalyzeBuild runs every engine against one build report in strict
// dependency order: statistics feed regression, which feeds efficiency and
// risk; detected issues feed risk. Persistence failures are logged and
// swallowed so a storage outage never costs the caller a diagnosis.
func AnalyzeBuild(db *sql.DB, cfg Config, report *BuildReport) (*AnalysisResult, error) {
	if report == nil {
		return nil, nil
	}

	stats, err := GetJobStatistics(db, report.JobName, cfg.StatsWindow)
	if err != nil {
		return nil, err
	}

	issues := AnalyzeLog(report.ConsoleLog)
	regression := DetectRegression(report.Duration, stats)

	stageAnalysis, err := AnalyzeStages(db, report.Stages, report.JobName, cfg.StageHistoryWindow)
	if err != nil {
		return nil, err
	}

	efficiency := CalculateEfficiency(report.Duration, stats, report.Status, regression)
	risk := PredictRisk(stats, regression, issues)

	buildID, err := SaveBuild(db, report.JobName, report.BuildNumber, report.Status, report.Duration, efficiency.Total)
	if err != nil {
		log.Printf("Error saving build %s #%d: %v", report.JobName, report.BuildNumber, err)
	} else {
		if err := SaveStages(db, buildID, report.Stages); err != nil {
			log.Printf("Error saving stages for %s #%d: %v", report.JobName, report.BuildNumber, err)
		}
		if err := SaveIssues(db, buildID, issues); err != nil {
			log.Printf("Error saving issues for %s #%d: %v", report.JobName, report.BuildNumber, err)
		}
	}

	return &AnalysisResult{
		JobName:       report.JobName,
		BuildNumber:   report.BuildNumber,
		Status:        report.Status,
		TotalDuration: report.Duration,
		Stages:        report.Stages,
		StageAnalysis: stageAnalysis,
		Efficiency:    efficiency,
		Regression:    regression,
		Risk:          risk,
		Issues:        issues,
		Stats:         stats,
	}, nil
}
