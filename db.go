package main

import (
	"database/sql"
	"fmt"
	"math"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		job_name         TEXT NOT NULL,
		build_number     INTEGER NOT NULL,
		result           TEXT,
		total_duration   REAL,
		timestamp        DATETIME DEFAULT CURRENT_TIMESTAMP,
		efficiency_score REAL,
		UNIQUE(job_name, build_number)
	);
	CREATE INDEX IF NOT EXISTS idx_builds_job ON builds(job_name, build_number);

	CREATE TABLE IF NOT EXISTS stages (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		build_id INTEGER,
		name     TEXT,
		duration REAL,
		status   TEXT,
		FOREIGN KEY(build_id) REFERENCES builds(id)
	);
	CREATE INDEX IF NOT EXISTS idx_stages_build ON stages(build_id);

	CREATE TABLE IF NOT EXISTS log_analysis (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		build_id   INTEGER,
		issue_type TEXT,
		root_cause TEXT,
		suggestion TEXT,
		FOREIGN KEY(build_id) REFERENCES builds(id)
	);
	CREATE INDEX IF NOT EXISTS idx_log_analysis_build ON log_analysis(build_id);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return db, nil
}

// SaveBuild upserts one build row keyed on (job_name, build_number) and
// returns its row id. Re-analyzing a build replaces the prior row rather
// than duplicating it.
func SaveBuild(db *sql.DB, jobName string, buildNumber int, result string, duration float64, score int) (int64, error) {
	res, err := db.Exec(
		`INSERT OR REPLACE INTO builds (job_name, build_number, result, total_duration, efficiency_score)
		 VALUES (?, ?, ?, ?, ?)`,
		jobName, buildNumber, result, duration, score,
	)
	if err != nil {
		return 0, err
	}
	buildID, err := res.LastInsertId()
	if err != nil || buildID == 0 {
		// REPLACE can leave lastrowid unreliable; fetch the row to be safe.
		err = db.QueryRow(
			`SELECT id FROM builds WHERE job_name = ? AND build_number = ?`,
			jobName, buildNumber,
		).Scan(&buildID)
		if err != nil {
			return 0, err
		}
	}
	return buildID, nil
}

// SaveStages replaces the stored stages for a build. Clearing first keeps
// re-analysis idempotent.
func SaveStages(db *sql.DB, buildID int64, stages []StageRecord) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM stages WHERE build_id = ?`, buildID); err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO stages (build_id, name, duration, status) VALUES (?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, stage := range stages {
		if _, err := stmt.Exec(buildID, stage.Name, stage.DurationSeconds(), stage.Status); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SaveIssues replaces the stored log-analysis rows for a build.
func SaveIssues(db *sql.DB, buildID int64, issues []Issue) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM log_analysis WHERE build_id = ?`, buildID); err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO log_analysis (build_id, issue_type, root_cause, suggestion) VALUES (?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, issue := range issues {
		if _, err := stmt.Exec(buildID, issue.Type, issue.Cause, issue.Suggestion); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetJobStatistics derives rolling statistics over the most recent builds
// of a job. Average and standard deviation cover successful builds only;
// the failure rate covers every build in the window. A job with no history
// yields the zero value, never an error.
func GetJobStatistics(db *sql.DB, jobName string, limit int) (HistoricalStats, error) {
	rows, err := db.Query(
		`SELECT result, total_duration FROM builds
		 WHERE job_name = ?
		 ORDER BY build_number DESC
		 LIMIT ?`,
		jobName, limit,
	)
	if err != nil {
		return HistoricalStats{}, err
	}
	defer rows.Close()

	var stats HistoricalStats
	var successDurations []float64
	failures := 0
	for rows.Next() {
		var result string
		var duration float64
		if err := rows.Scan(&result, &duration); err != nil {
			return HistoricalStats{}, err
		}
		stats.TotalBuilds++
		if result == "SUCCESS" {
			successDurations = append(successDurations, duration)
		} else {
			failures++
		}
	}
	if err := rows.Err(); err != nil {
		return HistoricalStats{}, err
	}
	if stats.TotalBuilds == 0 {
		return stats, nil
	}

	stats.FailureRate = float64(failures) / float64(stats.TotalBuilds) * 100
	if len(successDurations) == 0 {
		return stats, nil
	}

	var sum float64
	for _, d := range successDurations {
		sum += d
	}
	avg := sum / float64(len(successDurations))

	var variance float64
	for _, d := range successDurations {
		variance += (d - avg) * (d - avg)
	}
	variance /= float64(len(successDurations))

	stats.AvgDuration = avg
	stats.StdDev = math.Sqrt(variance)
	return stats, nil
}

// StageSample is one historical stage observation, duration in seconds.
type StageSample struct {
	Name     string
	Duration float64
}

// GetStageHistory returns the stages of the last N builds of a job, keyed
// by build number.
func GetStageHistory(db *sql.DB, jobName string, limit int) (map[int][]StageSample, error) {
	rows, err := db.Query(
		`SELECT id, build_number FROM builds
		 WHERE job_name = ?
		 ORDER BY build_number DESC
		 LIMIT ?`,
		jobName, limit,
	)
	if err != nil {
		return nil, err
	}

	idToNumber := make(map[int64]int)
	var buildIDs []any
	for rows.Next() {
		var id int64
		var number int
		if err := rows.Scan(&id, &number); err != nil {
			rows.Close()
			return nil, err
		}
		idToNumber[id] = number
		buildIDs = append(buildIDs, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	history := make(map[int][]StageSample)
	if len(buildIDs) == 0 {
		return history, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(buildIDs)), ",")
	stageRows, err := db.Query(
		fmt.Sprintf(`SELECT build_id, name, duration FROM stages WHERE build_id IN (%s)`, placeholders),
		buildIDs...,
	)
	if err != nil {
		return nil, err
	}
	defer stageRows.Close()

	for stageRows.Next() {
		var buildID int64
		var sample StageSample
		if err := stageRows.Scan(&buildID, &sample.Name, &sample.Duration); err != nil {
			return nil, err
		}
		number := idToNumber[buildID]
		history[number] = append(history[number], sample)
	}
	return history, stageRows.Err()
}

// BuildSummary is one row of recent job history, used for trend output.
type BuildSummary struct {
	BuildNumber     int
	Result          string
	TotalDuration   float64
	EfficiencyScore float64
}

// GetJobHistory returns recent builds of a job, newest first.
func GetJobHistory(db *sql.DB, jobName string, limit int) ([]BuildSummary, error) {
	rows, err := db.Query(
		`SELECT build_number, result, total_duration, efficiency_score FROM builds
		 WHERE job_name = ?
		 ORDER BY build_number DESC
		 LIMIT ?`,
		jobName, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BuildSummary
	for rows.Next() {
		var b BuildSummary
		if err := rows.Scan(&b.BuildNumber, &b.Result, &b.TotalDuration, &b.EfficiencyScore); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
