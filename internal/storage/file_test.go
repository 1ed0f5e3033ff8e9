package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"aocnotify/internal/leaderboard"
	logx "aocnotify/pkg/logx"
)

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	t.Parallel()
	st, err := Open(Config{Path: filepath.Join(t.TempDir(), "nested", "cache.json")}, logx.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	snap, err := st.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !snap.IsEmpty() {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
}

func TestFileStoreRoundTripKeepsUnknownFields(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "cache.json")
	st, err := Open(Config{Driver: "file", Path: path}, logx.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	raw := []byte(`{"event":"2023","num_days":12,"members":{"1":{"id":1,"name":"a","completion_day_level":{"1":{"1":{"get_star_ts":5}}}}}}`)
	snap, err := leaderboard.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Save(context.Background(), snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"num_days": 12`) {
		t.Fatalf("unknown field not preserved / not indented:\n%s", b)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}

	got, err := st.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(leaderboard.Diff(snap, got)) != 0 || len(leaderboard.Diff(got, snap)) != 0 {
		t.Fatal("round trip changed the event set")
	}
}

func TestFileStoreSaveWithoutRaw(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "cache.json")
	st, err := Open(Config{Path: path}, logx.Nop())
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	snap := &leaderboard.Snapshot{Event: "2022", Members: map[string]leaderboard.Member{
		"9": {ID: 9, CompletionDayLevel: map[string]map[string]leaderboard.Star{"2": {"1": {GetStarTS: 77}}}},
	}}
	if err := st.Save(context.Background(), snap); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := st.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got.Event != "2022" || got.Members["9"].CompletionDayLevel["2"]["1"].GetStarTS != 77 {
		t.Fatalf("unexpected snapshot %+v", got)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	st, err := Open(Config{Path: path}, logx.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := st.Load(context.Background()); err == nil {
		t.Fatal("expected error for corrupt snapshot")
	}
}

func TestClosedStore(t *testing.T) {
	t.Parallel()
	st, err := Open(Config{Path: filepath.Join(t.TempDir(), "c.json")}, logx.Nop())
	if err != nil {
		t.Fatal(err)
	}
	_ = st.Close()
	if _, err := st.Load(context.Background()); err != ErrClosed {
		t.Fatalf("Load after Close: %v", err)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	t.Parallel()
	if _, err := Open(Config{Driver: "sqlite", Path: "x"}, logx.Nop()); err == nil {
		t.Fatal("expected unknown driver error")
	}
	if _, err := Open(Config{Driver: "file"}, logx.Nop()); err == nil {
		t.Fatal("expected missing path error")
	}
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	st, err := Open(Config{Driver: "memory"}, logx.Nop())
	if err != nil {
		t.Fatal(err)
	}
	snap, err := st.Load(context.Background())
	if err != nil || !snap.IsEmpty() {
		t.Fatalf("Load = %+v, %v", snap, err)
	}
	want := &leaderboard.Snapshot{Event: "2021"}
	if err := st.Save(context.Background(), want); err != nil {
		t.Fatal(err)
	}
	got, _ := st.Load(context.Background())
	if got != want {
		t.Fatal("memory store should return the saved snapshot")
	}
	if st.(*Memory).Saves() != 1 {
		t.Fatal("expected one save")
	}
}
