package main

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/slack-go/slack"
)

// RunResult tracks one pass over the configured jobs.
type RunResult struct {
	Analyzed  int
	Regressed int
	Summaries []string
	Errors    []string
}

// AnalyzeAllJobs fetches the last build of every configured job, runs the
// analysis pipeline, generates the remediation plan, and writes a diagnosis
// report per job. It has no Slack dependency so it can be called from both
// one-shot mode and the scheduler.
func AnalyzeAllJobs(cfg Config, db *sql.DB) RunResult {
	var result RunResult
	for _, job := range cfg.Jobs {
		diagnosis, summary, err := analyzeJob(cfg, db, job)
		if err != nil {
			log.Printf("analyze error job=%s: %v", job, err)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", job, err))
			continue
		}
		result.Analyzed++
		if reg := diagnosis.Regression; reg != nil && reg.IsRegression {
			result.Regressed++
		}
		result.Summaries = append(result.Summaries, summary)
	}
	return result
}

func analyzeJob(cfg Config, db *sql.DB, jobName string) (*AnalysisResult, string, error) {
	report, err := FetchJenkinsBuild(cfg, jobName)
	if err != nil {
		return nil, "", fmt.Errorf("fetching build: %w", err)
	}

	result, err := AnalyzeBuild(db, cfg, report)
	if err != nil {
		return nil, "", fmt.Errorf("analyzing build: %w", err)
	}

	suggestions := GeneratePlan(result)

	path, err := WriteDiagnosisReport(result, suggestions, cfg.ReportOutputDir)
	if err != nil {
		log.Printf("report write error job=%s: %v", jobName, err)
	} else {
		log.Printf("report written job=%s path=%s", jobName, path)
	}

	return result, FormatAnalysisSummary(result, suggestions), nil
}

// FormatRunSummary returns a human-readable summary of a RunResult.
func FormatRunSummary(result RunResult) string {
	if result.Analyzed == 0 && len(result.Errors) > 0 {
		return fmt.Sprintf("Analysis failed for all jobs:\n%s", strings.Join(result.Errors, "\n"))
	}

	msg := fmt.Sprintf("Analyzed %d job(s)", result.Analyzed)
	if result.Regressed > 0 {
		msg += fmt.Sprintf(", %d regressed", result.Regressed)
	}
	if len(result.Summaries) > 0 {
		msg += "\n" + strings.Join(result.Summaries, "\n")
	}
	if len(result.Errors) > 0 {
		msg += fmt.Sprintf("\nWarnings:\n%s", strings.Join(result.Errors, "\n"))
	}
	return msg
}

// StartAnalyzeScheduler starts a cron-based loop that periodically analyzes
// every configured job and posts a summary to the Slack channel.
// The schedule is a standard 5-field cron expression (minute hour day-of-month month day-of-week).
// Examples: "0 * * * *" (hourly), "*/15 * * * 1-5" (every 15m on weekdays).
func StartAnalyzeScheduler(cfg Config, db *sql.DB, api *slack.Client) {
	schedule := strings.TrimSpace(cfg.AnalyzeSchedule)
	if schedule == "" {
		log.Println("Scheduled analysis disabled (analyze_schedule not set)")
		return
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(schedule)
	if err != nil {
		log.Printf("Invalid analyze_schedule '%s': %v — scheduled analysis disabled", schedule, err)
		return
	}

	log.Printf("Analysis scheduled (cron: %s) for %d job(s)", schedule, len(cfg.Jobs))

	go func() {
		for {
			now := time.Now().In(cfg.Location)
			next := sched.Next(now)
			wait := next.Sub(now)
			log.Printf("Next analysis at %s (in %s)", next.Format("Mon Jan 2 15:04"), wait.Round(time.Minute))

			time.Sleep(wait)

			result := AnalyzeAllJobs(cfg, db)
			summary := FormatRunSummary(result)
			log.Printf("Analysis run complete: %s", summary)

			PostAnalysisSummary(cfg, api, summary)
		}
	}()
}
