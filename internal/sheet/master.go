package sheet

import "strings"

// TopicConfig is one row of the master configuration sheet.
type TopicConfig struct {
	Topic       string `json:"topic"`
	Link        string `json:"link"`
	WorksheetNo string `json:"worksheetNo"`
	TabName     string `json:"tabName"`
	Difficulty  string `json:"difficulty"`
}

type LeaderboardEntry struct {
	Name    string `json:"name"`
	Quizzes int    `json:"quizzes"`
	Stars   int    `json:"stars"`
	Streaks int    `json:"streaks"`
}

// The master sheet is split on bare commas; it never carries quoted commas.
func masterRows(csvText string) [][]string {
	lines := strings.Split(strings.TrimSpace(csvText), "\n")
	rows := make([][]string, 0, len(lines))
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		parts := strings.Split(line, ",")
		for j := range parts {
			parts[j] = cleanField(parts[j])
		}
		rows = append(rows, parts)
	}
	return rows
}

func ParseTopicConfig(csvText string) []TopicConfig {
	var out []TopicConfig
	for _, p := range masterRows(csvText) {
		if len(p) < 5 {
			continue
		}
		out = append(out, TopicConfig{Topic: p[0], Link: p[1], WorksheetNo: p[2], TabName: p[3], Difficulty: p[4]})
	}
	return out
}

// ParseLeaderboard reads columns 5-8 (name, quizzes, stars, streaks) of the
// master sheet. Rows without a name are skipped; bad numbers read as 0.
func ParseLeaderboard(csvText string) []LeaderboardEntry {
	var out []LeaderboardEntry
	num := func(s string) int {
		n, _ := LeadingInt(s)
		return n
	}
	for _, p := range masterRows(csvText) {
		if len(p) < 9 || p[5] == "" {
			continue
		}
		out = append(out, LeaderboardEntry{Name: p[5], Quizzes: num(p[6]), Stars: num(p[7]), Streaks: num(p[8])})
	}
	return out
}
