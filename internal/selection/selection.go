package selection

import (
	"errors"
	"fmt"
	"strings"

	imagepkg "github.com/youruser/wallpaperapp/internal/image"
	"github.com/youruser/wallpaperapp/internal/operators"
)

// Selection is what a user picked for one wallpaper. Empty art choices fall
// back to Elite 1 in front and Elite 2 behind; an empty color falls back to
// the operator's theme color.
type Selection struct {
	Operator         string `json:"operator"`
	Foreground       string `json:"foreground,omitempty"`
	Background       string `json:"background,omitempty"`
	Color            string `json:"color,omitempty"`
	CustomBackground string `json:"custom_background,omitempty"`
	// Swap exchanges the resolved foreground and background art.
	Swap bool `json:"swap,omitempty"`
}

var ErrNoForeground = errors.New("foreground art is required")

// Resolve turns s into a composer request for op.
func Resolve(op operators.Operator, s Selection) (imagepkg.Request, error) {
	fgChoice := s.Foreground
	if fgChoice == "" {
		fgChoice = operators.ArtElite1
	}
	if fgChoice == operators.ArtNone {
		return imagepkg.Request{}, ErrNoForeground
	}
	bgChoice := s.Background
	if bgChoice == "" {
		bgChoice = operators.ArtNone
		if op.Elite2 != "" {
			bgChoice = operators.ArtElite2
		}
	}

	fg, err := op.ArtURL(fgChoice)
	if err != nil {
		return imagepkg.Request{}, err
	}
	bg, err := op.ArtURL(bgChoice)
	if err != nil {
		return imagepkg.Request{}, err
	}
	if s.Swap && bg != "" {
		fg, bg = bg, fg
	}

	color := s.Color
	if color == "" {
		color = op.Color
	}
	if color == "" {
		return imagepkg.Request{}, fmt.Errorf("%s has no theme color; pass one explicitly", op.Name)
	}

	return imagepkg.Request{
		Foreground:       fg,
		Background:       bg,
		CustomBackground: s.CustomBackground,
		Color:            color,
	}, nil
}

// FileName is the default output name for op's wallpaper.
func FileName(op operators.Operator) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, op.Name)
	return name + ".png"
}
