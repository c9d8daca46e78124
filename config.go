package main

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	JenkinsURL   string   `yaml:"jenkins_url"`
	JenkinsUser  string   `yaml:"jenkins_user"`
	JenkinsToken string   `yaml:"jenkins_token"`
	Jobs         []string `yaml:"jobs"`

	DBPath          string `yaml:"db_path"`
	ReportOutputDir string `yaml:"report_output_dir"`

	SlackBotToken  string `yaml:"slack_bot_token"`
	SlackChannelID string `yaml:"slack_channel_id"`

	AnalyzeSchedule string `yaml:"analyze_schedule"`
	Timezone        string `yaml:"timezone"`

	StatsWindow                int `yaml:"stats_window"`
	StageHistoryWindow         int `yaml:"stage_history_window"`
	ExternalHTTPTimeoutSeconds int `yaml:"external_http_timeout_seconds"`

	Location *time.Location `yaml:"-"`
}

func LoadConfig() Config {
	var cfg Config

	// Load from config.yaml if it exists
	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", configPath, err)
		}
		log.Printf("Loaded config from %s", configPath)
	}

	// Env vars override YAML values
	envOverride(&cfg.JenkinsURL, "JENKINS_URL")
	envOverride(&cfg.JenkinsUser, "JENKINS_USER")
	envOverride(&cfg.JenkinsToken, "JENKINS_TOKEN")
	envOverride(&cfg.DBPath, "DB_PATH")
	envOverride(&cfg.ReportOutputDir, "REPORT_OUTPUT_DIR")
	envOverride(&cfg.SlackBotToken, "SLACK_BOT_TOKEN")
	envOverride(&cfg.SlackChannelID, "SLACK_CHANNEL_ID")
	envOverride(&cfg.AnalyzeSchedule, "ANALYZE_SCHEDULE")
	envOverride(&cfg.Timezone, "TIMEZONE")
	envOverrideInt(&cfg.StatsWindow, "STATS_WINDOW")
	envOverrideInt(&cfg.StageHistoryWindow, "STAGE_HISTORY_WINDOW")
	envOverrideInt(&cfg.ExternalHTTPTimeoutSeconds, "EXTERNAL_HTTP_TIMEOUT_SECONDS")

	if names := os.Getenv("JENKINS_JOBS"); names != "" {
		cfg.Jobs = nil
		for _, name := range strings.Split(names, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				cfg.Jobs = append(cfg.Jobs, name)
			}
		}
	}

	// Defaults
	if cfg.DBPath == "" {
		cfg.DBPath = "./cioptimizer.db"
	}
	if cfg.ReportOutputDir == "" {
		cfg.ReportOutputDir = "./reports"
	}
	if cfg.StatsWindow == 0 {
		cfg.StatsWindow = 20
	}
	if cfg.StageHistoryWindow == 0 {
		cfg.StageHistoryWindow = 10
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Local"
	}

	// Validate required fields
	required := map[string]string{
		"jenkins_url": cfg.JenkinsURL,
	}
	for name, val := range required {
		if val == "" {
			log.Fatalf("Required config '%s' is not set (via config.yaml or env var)", name)
		}
	}
	if len(cfg.Jobs) == 0 {
		log.Fatalf("Required config 'jobs' is empty (via config.yaml or JENKINS_JOBS)")
	}
	if cfg.StatsWindow < 1 {
		log.Fatalf("invalid stats_window '%d': must be >= 1", cfg.StatsWindow)
	}
	if cfg.StageHistoryWindow < 1 {
		log.Fatalf("invalid stage_history_window '%d': must be >= 1", cfg.StageHistoryWindow)
	}
	if cfg.SlackBotToken != "" && cfg.SlackChannelID == "" {
		log.Fatalf("slack_channel_id is required when slack_bot_token is set")
	}

	if strings.EqualFold(cfg.Timezone, "Local") {
		cfg.Location = time.Local
		cfg.Timezone = time.Local.String()
	} else {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			log.Fatalf("invalid timezone '%s': %v", cfg.Timezone, err)
		}
		cfg.Location = loc
	}

	return cfg
}

func (c Config) SlackConfigured() bool {
	return c.SlackBotToken != "" && c.SlackChannelID != ""
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			log.Fatalf("invalid %s '%s': %v", envKey, val, err)
		}
		*field = parsed
	}
}
