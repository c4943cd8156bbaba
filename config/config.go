package config

import (
	"image/color"

	"github.com/automoto/doomerang-brawl/shared/simconfig"
)

// Config holds general viewer configuration
type Config struct {
	Width  int
	Height int
	TPS    int // simulation ticks per second
}

// DebugConfig contains debug/testing command-line options
type DebugConfig struct {
	ShowHitboxes bool
	ShowHUD      bool
	ShowFPS      bool
}

// UIConfig contains drawing settings for the viewer
type UIConfig struct {
	HitboxColor    color.RGBA
	ContactColor   color.RGBA
	FrameColor     color.RGBA
	GroundColor    color.RGBA
	TextColor      color.RGBA
	Background     color.RGBA
	HitboxStroke   float32
	ContactFadeSec float32 // how long a new contact stays highlighted
	HUDMargin      int
}

// Global configuration instances
var C *Config
var Debug DebugConfig
var UI UIConfig

// Shared RGBA color constants
var (
	White       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Black       = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	Red         = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	BrightGreen = color.RGBA{R: 0, G: 255, B: 60, A: 255}
	Gray        = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	DarkGray    = color.RGBA{R: 30, G: 30, B: 36, A: 255}
)

func init() {
	C = &Config{
		Width:  simconfig.DefaultStageWidth,
		Height: simconfig.DefaultStageHeight,
		TPS:    60,
	}

	Debug = DebugConfig{
		ShowHitboxes: true,
		ShowHUD:      true,
		ShowFPS:      true,
	}

	UI = UIConfig{
		HitboxColor:    BrightGreen,
		ContactColor:   Red,
		FrameColor:     Gray,
		GroundColor:    White,
		TextColor:      White,
		Background:     DarkGray,
		HitboxStroke:   1,
		ContactFadeSec: 0.4,
		HUDMargin:      8,
	}
}
