package engine

import (
	"math"

	"github.com/triage-ai/mcplint/internal/rules"
)

// MaturityLevel is the qualitative band a maturity score falls in.
type MaturityLevel string

const (
	LevelImmature  MaturityLevel = "immature"
	LevelModerate  MaturityLevel = "moderate"
	LevelMature    MaturityLevel = "mature"
	LevelExemplary MaturityLevel = "exemplary"
)

// Maturity scoring constants, version-pinned. Changing any value here is a
// scoring version bump: scores are compared across CI runs, so the table
// must not drift silently.
const ScoringVersion = "2026.1"

// severityPenalty is the per-issue deduction from a tool's score of 100.
var severityPenalty = map[rules.Severity]int{
	rules.SeverityError:      15,
	rules.SeverityWarning:    5,
	rules.SeveritySuggestion: 1,
}

// levelFloor maps each band to its minimum score. Bands are ordered and
// non-overlapping: [0,40) immature, [40,70) moderate, [70,90) mature,
// [90,100] exemplary.
var levelFloor = []struct {
	Level MaturityLevel
	Min   int
}{
	{LevelExemplary, 90},
	{LevelMature, 70},
	{LevelModerate, 40},
	{LevelImmature, 0},
}

// levelDescriptions are the fixed short texts presentation layers attach to
// a band. The engine itself never interprets them.
var levelDescriptions = map[MaturityLevel]string{
	LevelImmature:  "Significant quality gaps; not ready for agent use.",
	LevelModerate:  "Usable, but with notable issues to address.",
	LevelMature:    "Solid tool definitions with minor polish remaining.",
	LevelExemplary: "Meets tool definition best practices across the board.",
}

// DescribeLevel returns the fixed description for a band.
func DescribeLevel(level MaturityLevel) string {
	return levelDescriptions[level]
}

// maturity reduces per-tool issue lists to a 0-100 score and a band.
//
// Each tool starts at 100 and loses a weighted penalty per issue, floored at
// zero; the run score is the rounded mean of the tool scores. Scoring per
// tool first keeps one heavily-flawed tool from swamping an otherwise clean
// set. An empty tool set scores 100.
func maturity(perTool [][]rules.Issue) (int, MaturityLevel) {
	if len(perTool) == 0 {
		return 100, levelFor(100)
	}

	total := 0.0
	for _, issues := range perTool {
		score := 100
		for _, issue := range issues {
			score -= severityPenalty[issue.Severity]
		}
		if score < 0 {
			score = 0
		}
		total += float64(score)
	}

	score := int(math.Round(total / float64(len(perTool))))
	return score, levelFor(score)
}

// levelFor maps a score to its band via the fixed thresholds.
func levelFor(score int) MaturityLevel {
	for _, band := range levelFloor {
		if score >= band.Min {
			return band.Level
		}
	}
	return LevelImmature
}
