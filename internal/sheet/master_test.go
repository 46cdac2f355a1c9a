package sheet

import "testing"

const masterCSV = `Topic,Link,Worksheet,Tab,Difficulty,Name,Quizzes,Stars,Streaks
verbs,https://s/1,1,Verbs,Easy,Asha,12,30,4
tenses,https://s/2,2,Tenses,Hard,,,,
short,row
fractions,https://s/3,3,Fractions,Medium,Ravi,x,7,
`

func TestParseTopicConfig(t *testing.T) {
	cfg := ParseTopicConfig(masterCSV)
	if len(cfg) != 3 {
		t.Fatalf("got %d configs, want 3", len(cfg))
	}
	if cfg[1].Topic != "tenses" || cfg[1].TabName != "Tenses" || cfg[1].Difficulty != "Hard" {
		t.Fatalf("config[1] = %+v", cfg[1])
	}
}

func TestParseLeaderboard(t *testing.T) {
	lb := ParseLeaderboard(masterCSV)
	if len(lb) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(lb), lb)
	}
	if lb[0] != (LeaderboardEntry{Name: "Asha", Quizzes: 12, Stars: 30, Streaks: 4}) {
		t.Fatalf("entry 0 = %+v", lb[0])
	}
	if lb[1] != (LeaderboardEntry{Name: "Ravi", Quizzes: 0, Stars: 7, Streaks: 0}) {
		t.Fatalf("bad numbers should read as 0: %+v", lb[1])
	}
}
