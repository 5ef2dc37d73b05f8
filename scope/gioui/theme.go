package gioui

import (
	_ "embed"
	"fmt"
	"image/color"

	"gioui.org/font/gofont"
	"gioui.org/text"
	"gioui.org/widget/material"
	"gopkg.in/yaml.v2"
)

var fontCollection []text.FontFace = gofont.Collection()
var labelFont = fontCollection[6].Font

type (
	Theme struct {
		Material   *material.Theme `yaml:"-"`
		Background color.NRGBA     `yaml:",flow"`
		Foreground color.NRGBA     `yaml:",flow"`
		Primary    color.NRGBA     `yaml:",flow"`
		Scope      ScopeStyle
	}

	ScopeStyle struct {
		Curve         color.NRGBA `yaml:",flow"`
		GridPrimary   color.NRGBA `yaml:",flow"`
		GridSecondary color.NRGBA `yaml:",flow"`
		Crosshair     color.NRGBA `yaml:",flow"`
		AxisText      LabelStyle
		Readout       LabelStyle
		ControlLabel  LabelStyle
	}
)

//go:embed theme.yml
var defaultThemeYaml []byte

// NewTheme returns the built-in theme, overridden by the user theme.yml if
// one exists. The returned error is a warning only; the theme is usable even
// when the user yml fails to parse.
func NewTheme() (*Theme, error) {
	var theme Theme
	if err := yaml.UnmarshalStrict(defaultThemeYaml, &theme); err != nil {
		panic(fmt.Errorf("failed to unmarshal theme: %w", err))
	}
	var warn error
	if exists, err := ReadCustomConfigYml("theme.yml", &theme); exists {
		warn = err
	}
	theme.Material = material.NewTheme()
	theme.Material.Shaper = text.NewShaper(text.WithCollection(fontCollection))
	theme.Material.Palette.Bg = theme.Background
	theme.Material.Palette.Fg = theme.Foreground
	theme.Material.Palette.ContrastBg = theme.Primary
	theme.Material.Palette.ContrastFg = theme.Background
	return &theme, warn
}
