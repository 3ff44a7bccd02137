// Package report renders the Markdown PR comment from a results artifact.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/swagqa/swagqa-cli/internal/runner"
	"github.com/swagqa/swagqa-cli/internal/testcase"
)

// Body excerpts are longer for happy-path cases, the success payload is
// the interesting part; edge-case bodies are usually short error shapes.
const (
	happyBodyLines = 40
	edgeBodyLines  = 20
)

// Metadata is the run context stamped on the report header.
type Metadata struct {
	Task         string
	PR           int
	Branch       string
	AuthStrategy string
	Images       map[string]string // case id -> image URL
	Now          time.Time         // zero means current time
}

// Render produces the full Markdown document: a summary table by case
// kind, then one collapsible section per case.
func Render(records []runner.Record, meta Metadata) string {
	var happy, edge []runner.Record
	for _, r := range records {
		if r.Type == testcase.KindHappyPath {
			happy = append(happy, r)
		} else {
			edge = append(edge, r)
		}
	}

	now := meta.Now
	if now.IsZero() {
		now = time.Now()
	}

	total := len(records)
	passed := 0
	for _, r := range records {
		if r.Passed {
			passed++
		}
	}
	happyPassed := 0
	for _, r := range happy {
		if r.Passed {
			happyPassed++
		}
	}
	edgePassed := 0
	for _, r := range edge {
		if r.Passed {
			edgePassed++
		}
	}

	lines := []string{
		"## QA: Endpoint Validation - " + orNA(meta.Task),
		"",
		"**Date:** " + now.Format("2006-01-02 15:04"),
		fmt.Sprintf("**PR:** #%d | **Branch:** `%s`", meta.PR, orNA(meta.Branch)),
		"**Auth:** " + orNA(meta.AuthStrategy),
		"",
		"### Summary",
		"",
		"| Kind | Total | Pass | Fail |",
		"|------|-------|------|------|",
		fmt.Sprintf("| Happy Path | %d | %d | %d |", len(happy), happyPassed, len(happy)-happyPassed),
		fmt.Sprintf("| Edge Cases | %d | %d | %d |", len(edge), edgePassed, len(edge)-edgePassed),
		fmt.Sprintf("| **Total** | **%d** | **%d** | **%d** |", total, passed, total-passed),
		"",
		"---",
		"",
	}

	if len(happy) > 0 {
		lines = append(lines, "### Happy Path", "")
		for _, r := range happy {
			lines = append(lines, caseSection(r, meta, happyBodyLines, false)...)
		}
	}

	if len(edge) > 0 {
		lines = append(lines, "### Edge Cases", "")
		for _, r := range edge {
			lines = append(lines, caseSection(r, meta, edgeBodyLines, true)...)
		}
	}

	lines = append(lines, "---")
	return strings.Join(lines, "\n")
}

func caseSection(r runner.Record, meta Metadata, maxLines int, showExpected bool) []string {
	verdict := "PASS"
	if !r.Passed {
		verdict = "FAIL"
	}

	lines := []string{
		"<details>",
		fmt.Sprintf("<summary>%s: %s - %s</summary>", r.ID, r.Description, verdict),
		"",
		fmt.Sprintf("**Request:** `%s %s`", r.Method, r.Path),
	}

	if showExpected {
		lines = append(lines, fmt.Sprintf("**Response:** `%d` (expected: `%d`)", r.ActualStatus, r.ExpectedStatus))
	} else {
		lines = append(lines, "", fmt.Sprintf("**Response:** `%d`", r.ActualStatus))
	}

	if r.ResponseBody != "" {
		lines = append(lines, "```json", truncate(r.ResponseBody, maxLines), "```")
	}

	imgURL := meta.Images[r.ID]
	if imgURL == "" {
		imgURL = r.ScreenshotURL
	}
	if imgURL != "" {
		lines = append(lines, "", fmt.Sprintf("![%s](%s)", r.ID, imgURL))
	}

	if r.Notes != "" {
		lines = append(lines, "", "> "+r.Notes)
	}

	lines = append(lines, "", "</details>", "")
	return lines
}

// truncate caps a body excerpt at maxLines, noting the full length.
func truncate(body string, maxLines int) string {
	lines := strings.Split(body, "\n")
	if len(lines) <= maxLines {
		return body
	}
	return strings.Join(lines[:maxLines], "\n") + fmt.Sprintf("\n... (%d lines total)", len(lines))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
