package store

import (
	"database/sql"

	"github.com/google/uuid"
)

// Game is a row of the game table.
type Game struct {
	ID                   uuid.UUID
	GBGameID             sql.NullInt64
	Name                 string
	Path                 sql.NullString
	PathOffset           string
	ModsHomeRelativePath string
}

// Mod is a row of the mod table.
type Mod struct {
	ID      uuid.UUID
	GBModID sql.NullInt64
	GameID  uuid.UUID
	Name    string
	Enabled bool
}

// ModView is a row of v_mod: a mod joined with its installed game.
type ModView struct {
	ModID                uuid.UUID
	ModName              string
	Enabled              bool
	GameID               uuid.UUID
	GameName             string
	GamePath             string
	GamePathOffset       string
	ModsHomeRelativePath string
}

// Pak is a row of the pak table. Paths are relative to the mods home.
type Pak struct {
	ID      uuid.UUID
	ModID   uuid.UUID
	PakPath string
	SigPath string
}

// Category is a row of the category table.
type Category struct {
	ID       uuid.UUID
	ParentID uuid.NullUUID
	Name     string
}

// DefaultGame describes the game inserted into an empty store.
type DefaultGame struct {
	Name                 string
	Path                 string
	PathOffset           string
	ModsHomeRelativePath string
}

// StrivePreset is the game the store is seeded with.
var StrivePreset = DefaultGame{
	Name:                 "Guilty Gear Strive",
	PathOffset:           "RED/Content/Paks/",
	ModsHomeRelativePath: "~mods/",
}
