// Package assets loads fighters and stages. The default content is embedded;
// every loader also accepts an fs.FS so a directory on disk can be used
// instead (os.DirFS) for editing and hot reload.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
)

var (
	//go:embed all:fighters all:stages all:scripts
	embedded embed.FS
)

const (
	DefaultFighterDir = "fighters/aaron"
	DefaultStagePath  = "stages/dojo.tmx"
	DefaultScriptPath = "scripts/pressure.lua"
)

var (
	ErrInvalidManifest = errors.New("assets: invalid fighter manifest")
	ErrInvalidBounds   = errors.New("assets: invalid bounds file")
	ErrInvalidStage    = errors.New("assets: invalid stage")
	ErrEmptyTunables   = errors.New("assets: tunables document is empty")
)

// FS returns the embedded asset tree.
func FS() fs.FS {
	return embedded
}

// LoadDefaultFighter loads the embedded default fighter.
func LoadDefaultFighter() (*FighterData, error) {
	return LoadFighter(embedded, DefaultFighterDir)
}

// LoadDefaultStage loads the embedded default stage.
func LoadDefaultStage() (*StageData, error) {
	return LoadStage(embedded, DefaultStagePath)
}

// LoadScript reads a Lua policy script.
func LoadScript(fsys fs.FS, path string) (string, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return "", fmt.Errorf("assets: read script %s: %w", path, err)
	}
	return string(data), nil
}
