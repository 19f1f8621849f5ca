package integration

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/John-Tuesday/unverdad"
	"github.com/John-Tuesday/unverdad/internal/store"
	"github.com/google/uuid"
)

// runStoreSuite exercises the store. newStore must return a freshly
// initialized store for each subtest.
func runStoreSuite(t *testing.T, newStore func(t *testing.T) *store.Store) {
	t.Run("SchemaVerified", func(t *testing.T) {
		s := newStore(t)
		status, err := s.VerifySchema(context.Background())
		if err != nil {
			t.Fatalf("VerifySchema: %v", err)
		}
		for table, st := range status {
			if st != store.SchemaEqual {
				t.Errorf("table %s: expected %s, got %s", table, store.SchemaEqual, st)
			}
		}
	})

	t.Run("InitIsIdempotent", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		if err := s.Init(ctx, store.StrivePreset); err != nil {
			t.Fatalf("second Init: %v", err)
		}
		n, err := s.Games.Count(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if n != 1 {
			t.Errorf("expected 1 game, got %d", n)
		}
	})

	t.Run("NameMatching", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		for _, name := range []string{"guilty_gear_strive", "GUILTY GEAR STRIVE", "Guilty Gear Strive"} {
			games, err := s.Games.ByName(ctx, name)
			if err != nil {
				t.Fatalf("ByName(%q): %v", name, err)
			}
			if len(games) != 1 {
				t.Errorf("ByName(%q): expected 1 game, got %d", name, len(games))
			}
		}
		games, err := s.Games.ByName(ctx, "tekken")
		if err != nil {
			t.Fatal(err)
		}
		if len(games) != 0 {
			t.Errorf("expected no match, got %d", len(games))
		}
	})

	t.Run("ModsAndFilters", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		game := syncedGame(ctx, t, s)

		sol := createMod(ctx, t, s, game.ID, "sol_skin", true, sql.NullInt64{Int64: 42, Valid: true})
		ky := createMod(ctx, t, s, game.ID, "ky_skin", true, sql.NullInt64{})
		createMod(ctx, t, s, game.ID, "may_skin", false, sql.NullInt64{})

		// (mod_id = sol OR mod_id = ky) AND (enabled = true)
		filter := s.Filter()
		ids, err := s.TableLeaf(filter, store.ViewMod, unverdad.OR)
		if err != nil {
			t.Fatal(err)
		}
		for _, id := range []uuid.UUID{sol.ID, ky.ID} {
			if err := ids.Add("mod_id", id, unverdad.EQ); err != nil {
				t.Fatal(err)
			}
		}
		enabled, err := s.TableLeaf(filter, store.ViewMod, unverdad.AND)
		if err != nil {
			t.Fatal(err)
		}
		if err := enabled.Add("enabled", true, unverdad.EQ); err != nil {
			t.Fatal(err)
		}
		mods, err := s.Mods.Find(ctx, filter)
		if err != nil {
			t.Fatalf("Find: %v\nSQL: %s", err, filter.Render())
		}
		if got := modNames(mods); !equalStrings(got, []string{"ky_skin", "sol_skin"}) {
			t.Errorf("expected [ky_skin sol_skin], got %v", got)
		}

		// gb_mod_id IS NULL
		filter = s.Filter()
		leaf, err := s.TableLeaf(filter, store.TableMod, unverdad.AND)
		if err != nil {
			t.Fatal(err)
		}
		if err := leaf.Add("gb_mod_id", (*int64)(nil), unverdad.EQ); err != nil {
			t.Fatal(err)
		}
		rows, err := s.Mods.FindRows(ctx, filter)
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != 2 {
			t.Errorf("expected 2 mods without a GameBanana id, got %d", len(rows))
		}

		// Name match through the dialect's expression.
		filter = s.Filter()
		names, err := filter.AddLeaf("", unverdad.OR)
		if err != nil {
			t.Fatal(err)
		}
		if err := names.AddExpr("mod_name", s.MatchName(), "MAY SKIN"); err != nil {
			t.Fatal(err)
		}
		mods, err = s.Mods.Find(ctx, filter)
		if err != nil {
			t.Fatal(err)
		}
		if got := modNames(mods); !equalStrings(got, []string{"may_skin"}) {
			t.Errorf("expected [may_skin], got %v", got)
		}
	})

	t.Run("SetEnabledAndDelete", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		game := syncedGame(ctx, t, s)
		sol := createMod(ctx, t, s, game.ID, "sol_skin", true, sql.NullInt64{})

		if _, err := s.Mods.SetEnabled(ctx, s.Filter(), false); !errors.Is(err, store.ErrEmptyFilter) {
			t.Errorf("expected ErrEmptyFilter, got %v", err)
		}

		filter := s.Filter()
		leaf, err := s.TableLeaf(filter, store.TableMod, unverdad.AND)
		if err != nil {
			t.Fatal(err)
		}
		if err := leaf.Add("mod_id", sol.ID, unverdad.EQ); err != nil {
			t.Fatal(err)
		}
		n, err := s.Mods.SetEnabled(ctx, filter, false)
		if err != nil {
			t.Fatal(err)
		}
		if n != 1 {
			t.Errorf("expected 1 row updated, got %d", n)
		}
		got, err := s.Mods.Get(ctx, sol.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.Enabled {
			t.Error("expected mod to be disabled")
		}

		paks, err := s.Paks.ForMods(ctx, sol.ID)
		if err != nil {
			t.Fatal(err)
		}
		if len(paks) != 1 || paks[0].PakPath != "ggst/sol_skin/sol_skin.pak" {
			t.Errorf("unexpected paks: %+v", paks)
		}

		n, err = s.Mods.Delete(ctx, filter)
		if err != nil {
			t.Fatal(err)
		}
		if n != 1 {
			t.Errorf("expected 1 row deleted, got %d", n)
		}
		if _, err := s.Mods.Get(ctx, sol.ID); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Categories", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		game := syncedGame(ctx, t, s)
		sol := createMod(ctx, t, s, game.ID, "sol_skin", true, sql.NullInt64{})

		skins := store.Category{ID: store.NewID(), Name: "Skins"}
		recolors := store.Category{ID: store.NewID(), Name: "Recolors", ParentID: uuid.NullUUID{UUID: skins.ID, Valid: true}}
		for _, c := range []store.Category{skins, recolors} {
			if err := s.Categories.Create(ctx, c); err != nil {
				t.Fatalf("Create %s: %v", c.Name, err)
			}
		}
		if err := s.Categories.Assign(ctx, sol.ID, recolors.ID); err != nil {
			t.Fatal(err)
		}

		cats, err := s.Categories.ForMod(ctx, sol.ID)
		if err != nil {
			t.Fatal(err)
		}
		if len(cats) != 1 || cats[0].Name != "Recolors" || cats[0].ParentID.UUID != skins.ID {
			t.Errorf("unexpected categories: %+v", cats)
		}
	})
}

func syncedGame(ctx context.Context, t *testing.T, s *store.Store) store.Game {
	t.Helper()
	n, err := s.SyncGamePaths(ctx, map[string]string{"guilty_gear_strive": "/games/ggst"})
	if err != nil {
		t.Fatalf("SyncGamePaths: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 game path synced, got %d", n)
	}
	game, err := s.Games.Resolve(ctx, uuid.NullUUID{}, "guilty gear strive")
	if err != nil {
		t.Fatal(err)
	}
	return game
}

func createMod(ctx context.Context, t *testing.T, s *store.Store, gameID uuid.UUID, name string, enabled bool, gbID sql.NullInt64) store.Mod {
	t.Helper()
	m := store.Mod{ID: store.NewID(), GBModID: gbID, GameID: gameID, Name: name, Enabled: enabled}
	pak := store.Pak{PakPath: "ggst/" + name + "/" + name + ".pak", SigPath: "ggst/" + name + "/" + name + ".sig"}
	if err := s.Mods.Create(ctx, m, []store.Pak{pak}); err != nil {
		t.Fatalf("Create %s: %v", name, err)
	}
	return m
}

func modNames(mods []store.ModView) []string {
	names := make([]string, 0, len(mods))
	for _, m := range mods {
		names = append(names, m.ModName)
	}
	return names
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
