package main

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"gstplayer/internal/journal"
	"gstplayer/internal/testsupport"
)

func TestHistoryWithoutJournal(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No journal entries")
}

func TestHistoryListsEntries(t *testing.T) {
	env := setupCLITestEnv(t)
	store := testsupport.MustOpenJournal(t, env.cfg)
	earlier := time.Now().Add(-2 * time.Hour)
	testsupport.MustRecord(t, store, journal.Entry{RecordedAt: earlier, Kind: journal.KindFull, Pipeline: env.cfg.Player.Pipeline, Payload: `{"volumeControl":{"volume":1}}`})
	testsupport.MustRecord(t, store, journal.Entry{RecordedAt: earlier.Add(time.Minute), Kind: journal.KindDelta, Payload: `{"volumeControl":{"volume":0.5}}`})
	testsupport.MustRecord(t, store, journal.Entry{SessionID: "older-session", Kind: journal.KindFull, Payload: `{}`})

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "Changes")
	requireContains(t, out, "delta")
	requireContains(t, out, "hours ago")
	requireContains(t, out, store.SessionID()[:8])

	out, _, err = runCLI(t, []string{"history", "--json", "--session", store.SessionID(), "--limit", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("history --json: %v", err)
	}
	var entries []journal.Entry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(entries) != 1 || entries[0].Kind != journal.KindDelta || entries[0].Changes != 1 {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestLogsShowsTail(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, filepath.Join(env.cfg.Paths.LogDir, "gstplayer.log"), "first\nsecond\nthird\n")

	out, _, err := runCLI(t, []string{"logs", "-n", "2"}, env.configPath)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	if out != "second\nthird\n" {
		t.Fatalf("unexpected output %q", out)
	}
}
