package persistence

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/talgya/kingpin/internal/catalog"
	"github.com/talgya/kingpin/internal/entropy"
	"github.com/talgya/kingpin/internal/game"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "saves.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func freshGame(t *testing.T) (*game.PlayerState, *game.CampaignState) {
	t.Helper()
	eng := game.New(catalog.MustLoad(), entropy.NewSeeded(7))
	return eng.NewGame(game.Config{Persona: "ghost", Campaign: true})
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db := openTestDB(t)
	p, camp := freshGame(t)
	p.Cash = 12_345
	p.Reputation = 17
	id := NewSession()

	if err := db.Save(id, 7, p, camp); err != nil {
		t.Fatalf("save: %v", err)
	}

	gotP, gotCamp, seed, err := db.Load(id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if seed != 7 {
		t.Fatalf("seed = %d, want 7", seed)
	}
	if !reflect.DeepEqual(gotP, p) {
		t.Fatalf("player state did not survive the round trip:\ngot  %+v\nwant %+v", gotP, p)
	}
	if !reflect.DeepEqual(gotCamp, camp) {
		t.Fatalf("campaign state did not survive the round trip:\ngot  %+v\nwant %+v", gotCamp, camp)
	}
}

func TestSaveUpserts(t *testing.T) {
	db := openTestDB(t)
	p, camp := freshGame(t)
	id := NewSession()

	if err := db.Save(id, 7, p, camp); err != nil {
		t.Fatalf("save: %v", err)
	}
	p.Cash = 99_999
	p.Day = 12
	if err := db.Save(id, 7, p, camp); err != nil {
		t.Fatalf("second save: %v", err)
	}

	gotP, _, _, err := db.Load(id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if gotP.Cash != 99_999 || gotP.Day != 12 {
		t.Fatalf("load returned the stale snapshot: %+v", gotP)
	}

	rows, err := db.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want the upsert to keep one", len(rows))
	}
	if rows[0].Day != 12 {
		t.Fatalf("listed day = %d, want 12", rows[0].Day)
	}
}

func TestLoadMissingSession(t *testing.T) {
	db := openTestDB(t)
	_, _, _, err := db.Load("no-such-session")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteRemovesSession(t *testing.T) {
	db := openTestDB(t)
	p, camp := freshGame(t)
	id := NewSession()
	if err := db.Save(id, 7, p, camp); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := db.Delete(id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, _, _, err := db.Load(id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound after delete", err)
	}
	// Deleting twice is quiet.
	if err := db.Delete(id); err != nil {
		t.Fatalf("double delete: %v", err)
	}
}
