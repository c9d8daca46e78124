package main

import "database/sql"

const (
	// A stage regresses only when it exceeds 1.3x its baseline AND the
	// baseline itself is above one second. The second condition filters
	// noise on very short stages and is deliberate, not an oversight.
	stageRegressionFactor     = 1.3
	stageBaselineFloorSeconds = 1.0
)

// AnalyzeStages compares the current build's stages to per-stage-name
// baselines derived from the job's recent stage history. Output order
// matches input order; impact percentages are computed for every stage
// regardless of regression status.
func AnalyzeStages(db *sql.DB, currentStages []StageRecord, jobName string, historyLimit int) ([]StageMetric, error) {
	history, err := GetStageHistory(db, jobName, historyLimit)
	if err != nil {
		return nil, err
	}

	// Group historical durations by stage name across builds. Stages never
	// seen before get an empty list and a zero baseline.
	baselines := make(map[string][]float64)
	for _, samples := range history {
		for _, sample := range samples {
			baselines[sample.Name] = append(baselines[sample.Name], sample.Duration)
		}
	}

	totalDuration := 0.0
	for _, stage := range currentStages {
		totalDuration += stage.DurationSeconds()
	}
	if totalDuration == 0 {
		totalDuration = 1.0 // avoid division by zero
	}

	var metrics []StageMetric
	for _, stage := range currentStages {
		currDuration := stage.DurationSeconds()

		historical := baselines[stage.Name]
		avg := 0.0
		if len(historical) > 0 {
			sum := 0.0
			for _, d := range historical {
				sum += d
			}
			avg = sum / float64(len(historical))
		}

		isRegression := false
		regressionPct := 0
		if avg > stageBaselineFloorSeconds && currDuration > avg*stageRegressionFactor {
			isRegression = true
			regressionPct = int((currDuration - avg) / avg * 100)
		}

		status := "HEALTHY"
		if isRegression {
			status = "REGRESSION"
		}

		metrics = append(metrics, StageMetric{
			Name:          stage.Name,
			Duration:      round2(currDuration),
			Baseline:      round2(avg),
			RegressionPct: regressionPct,
			ImpactPct:     int(currDuration / totalDuration * 100),
			Status:        status,
		})
	}
	return metrics, nil
}
