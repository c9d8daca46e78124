package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/slack-go/slack"
)

func main() {
	once := flag.Bool("once", false, "analyze all configured jobs once and exit")
	flag.Parse()

	cfg := LoadConfig()
	appliedHTTPTimeout := ConfigureExternalHTTPClient(cfg.ExternalHTTPTimeoutSeconds)
	log.Printf(
		"Config loaded. Jenkins=%s Jobs=%d StatsWindow=%d StageHistoryWindow=%d Timezone=%s ExternalHTTPTimeout=%s",
		cfg.JenkinsURL, len(cfg.Jobs), cfg.StatsWindow, cfg.StageHistoryWindow, cfg.Timezone, appliedHTTPTimeout,
	)

	db, err := InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to init database: %v", err)
	}
	log.Printf("Database initialized at %s", cfg.DBPath)
	defer db.Close()

	os.MkdirAll(cfg.ReportOutputDir, 0755)

	var api *slack.Client
	if cfg.SlackConfigured() {
		api = slack.New(cfg.SlackBotToken)
	}

	if *once {
		result := AnalyzeAllJobs(cfg, db)
		summary := FormatRunSummary(result)
		fmt.Println(summary)
		PostAnalysisSummary(cfg, api, summary)
		if result.Analyzed == 0 && len(result.Errors) > 0 {
			os.Exit(1)
		}
		return
	}

	if cfg.AnalyzeSchedule == "" {
		log.Fatalf("analyze_schedule is required unless running with -once")
	}

	log.Println("Starting CI/CD Build Optimizer...")
	StartAnalyzeScheduler(cfg, db, api)
	select {}
}
