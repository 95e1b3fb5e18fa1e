package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Session:
		o.printSession(v)
	case Player:
		o.printPlayer(v)
	case PlayerStats:
		o.printPlayerStats(v)
	case []ScoreRecord:
		o.printScoreRecords(v)
	case []LeaderboardEntry:
		o.printLeaderboard(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Session response type (matches API)
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Player response type
type Player struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}

// ScoreRecord response type
type ScoreRecord struct {
	ID                 string    `json:"id"`
	Score              int64     `json:"score"`
	DurationSeconds    int64     `json:"duration_seconds"`
	EnemiesKilled      int64     `json:"enemies_killed"`
	AsteroidsDestroyed int64     `json:"asteroids_destroyed"`
	NukesUsed          int64     `json:"nukes_used"`
	CreatedAt          time.Time `json:"created_at"`
}

// PlayerStats response type
type PlayerStats struct {
	PlayerID                string `json:"player_id"`
	Nickname                string `json:"nickname,omitempty"`
	TotalGames              int64  `json:"total_games"`
	BestScore               int64  `json:"best_score"`
	TotalScore              int64  `json:"total_score"`
	TotalEnemiesKilled      int64  `json:"total_enemies_killed"`
	TotalAsteroidsDestroyed int64  `json:"total_asteroids_destroyed"`
	TotalNukesUsed          int64  `json:"total_nukes_used"`
	TotalPlaytimeSeconds    int64  `json:"total_playtime_seconds"`
	AverageScore            int64  `json:"average_score"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	Rank               int       `json:"rank"`
	Nickname           string    `json:"nickname"`
	Score              int64     `json:"score"`
	DurationSeconds    int64     `json:"duration_seconds"`
	EnemiesKilled      int64     `json:"enemies_killed"`
	AsteroidsDestroyed int64     `json:"asteroids_destroyed"`
	CreatedAt          time.Time `json:"created_at"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printSession(s Session) {
	fmt.Printf("User: %s\n", s.UserID)
	fmt.Printf("Token: %s\n", s.Token)
	fmt.Printf("Expires: %s\n", s.ExpiresAt.Format(time.RFC3339))
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%s)\n", p.Nickname, p.ID)
}

func (o *Output) printPlayerStats(s PlayerStats) {
	if s.Nickname != "" {
		fmt.Printf("Player: %s (%s)\n", s.Nickname, s.PlayerID)
	} else {
		fmt.Printf("Player: %s\n", s.PlayerID)
	}
	fmt.Printf("Games: %d\n", s.TotalGames)
	fmt.Printf("Best Score: %d\n", s.BestScore)
	fmt.Printf("Total Score: %d\n", s.TotalScore)
	fmt.Printf("Average Score: %d\n", s.AverageScore)
	fmt.Printf("Enemies Killed: %d\n", s.TotalEnemiesKilled)
	fmt.Printf("Asteroids Destroyed: %d\n", s.TotalAsteroidsDestroyed)
	fmt.Printf("Nukes Used: %d\n", s.TotalNukesUsed)
	fmt.Printf("Playtime: %s\n", (time.Duration(s.TotalPlaytimeSeconds) * time.Second).String())
}

func (o *Output) printScoreRecords(records []ScoreRecord) {
	if len(records) == 0 {
		fmt.Println("No scores recorded")
		return
	}

	fmt.Printf("Recent scores (%d):\n", len(records))
	for _, r := range records {
		fmt.Printf("  %s  %6d pts  %3ds  %d kills  %d asteroids\n",
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Score, r.DurationSeconds, r.EnemiesKilled, r.AsteroidsDestroyed)
	}
}

func (o *Output) printLeaderboard(entries []LeaderboardEntry) {
	if len(entries) == 0 {
		fmt.Println("Leaderboard is empty")
		return
	}

	for _, e := range entries {
		fmt.Printf("%3d. %-20s %6d pts  (%s)\n",
			e.Rank, e.Nickname, e.Score, e.CreatedAt.Format("2006-01-02"))
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
