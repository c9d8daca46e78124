package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
)

type jenkinsJobInfo struct {
	LastBuild *jenkinsBuildRef `json:"lastBuild"`
}

type jenkinsBuildRef struct {
	Number int `json:"number"`
}

type jenkinsWFAPIResponse struct {
	Status string              `json:"status"`
	Stages []jenkinsWFAPIStage `json:"stages"`
}

type jenkinsWFAPIStage struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	DurationMS  int64  `json:"durationMillis"`
	StartTimeMS int64  `json:"startTimeMillis"`
	PauseMS     int64  `json:"pauseDurationMillis"`
}

type jenkinsStandardBuild struct {
	Number    int    `json:"number"`
	Result    string `json:"result"`
	Duration  int64  `json:"duration"` // milliseconds
	Timestamp int64  `json:"timestamp"`
}

// FetchJenkinsBuild fetches the last build of a job and normalizes it into a
// BuildReport. The richer wfapi pipeline endpoint is preferred; when it is
// unavailable (freestyle jobs, older Jenkins) the standard build API is used
// and the whole build is reported as a single "Full Build" stage.
func FetchJenkinsBuild(cfg Config, jobName string) (*BuildReport, error) {
	base := cfg.JenkinsURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	// 1. Job info, to find the last build number.
	var jobInfo jenkinsJobInfo
	if err := jenkinsGetJSON(cfg, fmt.Sprintf("%sjob/%s/api/json", base, url.PathEscape(jobName)), &jobInfo); err != nil {
		return nil, fmt.Errorf("fetching job info: %w", err)
	}
	if jobInfo.LastBuild == nil {
		return nil, fmt.Errorf("no builds found for job %s", jobName)
	}
	buildNumber := jobInfo.LastBuild.Number

	// 2. Console text. A missing console is degraded data, not an error.
	consoleURL := fmt.Sprintf("%sjob/%s/%d/consoleText", base, url.PathEscape(jobName), buildNumber)
	consoleText, err := jenkinsGetText(cfg, consoleURL)
	if err != nil {
		log.Printf("jenkins console fetch failed for %s #%d: %v", jobName, buildNumber, err)
		consoleText = ""
	}

	// 3. Pipeline structure via wfapi, standard API as fallback.
	wfapiURL := fmt.Sprintf("%sjob/%s/%d/wfapi/describe", base, url.PathEscape(jobName), buildNumber)
	var wfapi jenkinsWFAPIResponse
	wfErr := jenkinsGetJSON(cfg, wfapiURL, &wfapi)
	if wfErr == nil {
		return buildReportFromWFAPI(wfapi, jobName, buildNumber, consoleText), nil
	}
	log.Printf("jenkins wfapi unavailable for %s #%d (%v), falling back to standard API", jobName, buildNumber, wfErr)

	buildURL := fmt.Sprintf("%sjob/%s/%d/api/json", base, url.PathEscape(jobName), buildNumber)
	var build jenkinsStandardBuild
	if err := jenkinsGetJSON(cfg, buildURL, &build); err != nil {
		return nil, fmt.Errorf("fetching build data (wfapi and standard API both failed): %w", err)
	}
	return buildReportFromStandard(build, jobName, consoleText), nil
}

func buildReportFromWFAPI(wfapi jenkinsWFAPIResponse, jobName string, buildNumber int, consoleText string) *BuildReport {
	var stages []StageRecord
	var totalMS int64
	for _, s := range wfapi.Stages {
		stages = append(stages, StageRecord{
			Name:        s.Name,
			Status:      s.Status,
			DurationMS:  s.DurationMS,
			StartTimeMS: s.StartTimeMS,
			PauseMS:     s.PauseMS,
		})
		totalMS += s.DurationMS
	}

	status := wfapi.Status
	if status == "" {
		status = "UNKNOWN"
	}
	return &BuildReport{
		JobName:     jobName,
		BuildNumber: buildNumber,
		Status:      status,
		Duration:    float64(totalMS) / 1000.0,
		Stages:      stages,
		ConsoleLog:  consoleText,
	}
}

func buildReportFromStandard(build jenkinsStandardBuild, jobName string, consoleText string) *BuildReport {
	result := build.Result
	if result == "" {
		result = "UNKNOWN"
	}
	// No per-stage detail in the standard API: report one stage covering
	// the whole build so stage analysis still has data to work with.
	stages := []StageRecord{{
		Name:        "Full Build",
		Status:      result,
		DurationMS:  build.Duration,
		StartTimeMS: build.Timestamp,
		PauseMS:     0,
	}}
	return &BuildReport{
		JobName:     jobName,
		BuildNumber: build.Number,
		Status:      result,
		Duration:    float64(build.Duration) / 1000.0,
		Stages:      stages,
		ConsoleLog:  consoleText,
	}
}

func jenkinsGetJSON(cfg Config, apiURL string, out any) error {
	body, err := jenkinsGet(cfg, apiURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

func jenkinsGetText(cfg Config, apiURL string) (string, error) {
	body, err := jenkinsGet(cfg, apiURL)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func jenkinsGet(cfg Config, apiURL string) ([]byte, error) {
	req, err := http.NewRequest("GET", apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if cfg.JenkinsUser != "" && cfg.JenkinsToken != "" {
		req.SetBasicAuth(cfg.JenkinsUser, cfg.JenkinsToken)
	}

	resp, err := externalHTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("jenkins returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
