package storage

import (
	"os"
	"testing"
	"time"
)

func openTemp(t *testing.T) *Storage {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorage(t *testing.T) {
	t.Run("DefaultPreferences", func(t *testing.T) {
		prefs := DefaultPreferences()
		if prefs.Username != "Player" {
			t.Errorf("Expected username 'Player', got '%s'", prefs.Username)
		}
		if prefs.Difficulty != DifficultyMedium {
			t.Errorf("Expected medium difficulty")
		}
		if prefs.PlayerSide != SideMy {
			t.Errorf("Expected the human to move first")
		}
		if prefs.KingsMoveBackward || prefs.PassTurnOnIllegal {
			t.Errorf("Expected default rules")
		}
		if !prefs.SoundEnabled || prefs.HintDepth != 4 {
			t.Errorf("Expected sound on and hint depth 4, got %v, %d", prefs.SoundEnabled, prefs.HintDepth)
		}
	})

	t.Run("NewGameStats", func(t *testing.T) {
		stats := NewGameStats()
		if stats.GamesPlayed != 0 {
			t.Errorf("Expected 0 games played")
		}
		if stats.GetWinRate() != 0 {
			t.Errorf("Expected 0 win rate")
		}
	})

	t.Run("WinRate", func(t *testing.T) {
		stats := &GameStats{
			GamesPlayed: 10,
			Wins:        5,
			Losses:      3,
			Draws:       2,
		}
		rate := stats.GetWinRate()
		if rate != 50 {
			t.Errorf("Expected 50%% win rate, got %.2f%%", rate)
		}
	})
}

func TestPreferencesRoundTrip(t *testing.T) {
	s := openTemp(t)

	prefs, err := s.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences on empty db: %v", err)
	}
	if prefs.Difficulty != DifficultyMedium {
		t.Errorf("empty db did not return defaults: %+v", prefs)
	}

	prefs.Difficulty = DifficultyHard
	prefs.PlayerSide = SideOpp
	prefs.KingsMoveBackward = true
	prefs.SoundEnabled = false
	if err := s.SavePreferences(prefs); err != nil {
		t.Fatalf("SavePreferences: %v", err)
	}

	got, err := s.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if got.Difficulty != DifficultyHard || got.PlayerSide != SideOpp || !got.KingsMoveBackward || got.SoundEnabled {
		t.Errorf("LoadPreferences = %+v", got)
	}
}

func TestFirstLaunch(t *testing.T) {
	s := openTemp(t)

	first, err := s.IsFirstLaunch()
	if err != nil || !first {
		t.Fatalf("IsFirstLaunch = %v, %v; want true", first, err)
	}
	if err := s.MarkFirstLaunchComplete(); err != nil {
		t.Fatalf("MarkFirstLaunchComplete: %v", err)
	}
	if first, _ := s.IsFirstLaunch(); first {
		t.Error("IsFirstLaunch still true")
	}
}

func TestRecordGame(t *testing.T) {
	s := openTemp(t)

	results := []GameResult{
		{Won: true, Mode: ModeHumanVsComputer, Difficulty: DifficultyHard, Plies: 40, Duration: time.Minute},
		{Won: true, Mode: ModeHumanVsComputer, Difficulty: DifficultyEasy, Plies: 30},
		{Won: false, Mode: ModeHumanVsComputer, Difficulty: DifficultyHard, Plies: 50},
		{Draw: true, Mode: ModeHumanVsHuman},
		{Won: true, Mode: ModeHumanVsHuman},
	}
	for _, r := range results {
		if err := s.RecordGame(r); err != nil {
			t.Fatalf("RecordGame: %v", err)
		}
	}

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats: %v", err)
	}

	if stats.GamesPlayed != 5 || stats.Wins != 3 || stats.Losses != 1 || stats.Draws != 1 {
		t.Errorf("totals = %+v", stats)
	}
	if stats.LongestWinStrk != 2 || stats.CurrentStreak != 1 {
		t.Errorf("streaks = %d longest, %d current", stats.LongestWinStrk, stats.CurrentStreak)
	}
	if stats.WinsByMode["hvc"] != 2 || stats.WinsByMode["hvh"] != 1 {
		t.Errorf("WinsByMode = %v", stats.WinsByMode)
	}
	if stats.WinsByDiff["hard"] != 1 || stats.WinsByDiff["easy"] != 1 {
		t.Errorf("WinsByDiff = %v", stats.WinsByDiff)
	}
	if stats.TotalPlies != 120 || stats.TotalPlayTime != time.Minute {
		t.Errorf("TotalPlies = %d, TotalPlayTime = %v", stats.TotalPlies, stats.TotalPlayTime)
	}
}

func TestDataPaths(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir == "" {
		t.Error("GetDataDir returned empty path")
	}

	// Verify directory exists
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Errorf("Data directory was not created: %s", dataDir)
	}

	exportDir, err := GetExportDir()
	if err != nil {
		t.Fatalf("GetExportDir failed: %v", err)
	}
	if _, err := os.Stat(exportDir); err != nil {
		t.Errorf("Export directory missing: %v", err)
	}

	t.Logf("Data directory: %s", dataDir)
}
