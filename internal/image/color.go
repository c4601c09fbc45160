package imagepkg

import (
	"fmt"
	"image/color"
	"strconv"
)

// ThemeColor is an operator accent color.
type ThemeColor struct {
	R, G, B uint8
}

// ParseThemeColor parses a #RRGGBB string. Hex digits are case-insensitive.
func ParseThemeColor(s string) (ThemeColor, error) {
	if len(s) != 7 || s[0] != '#' {
		return ThemeColor{}, &InvalidColorError{Value: s}
	}
	var ch [3]uint8
	for i := range ch {
		v, err := strconv.ParseUint(s[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return ThemeColor{}, &InvalidColorError{Value: s}
		}
		ch[i] = uint8(v)
	}
	return ThemeColor{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// String formats the color as upper-case #RRGGBB.
func (c ThemeColor) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// NRGBA returns the color with the given alpha.
func (c ThemeColor) NRGBA(alpha uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}

// Footer boosts every channel tied for the maximum by 20%, clamped to 255.
// Other channels are unchanged. White stays white.
func (c ThemeColor) Footer() ThemeColor {
	top := max(c.R, c.G, c.B)
	boost := func(v uint8) uint8 {
		if v != top || v == 255 {
			return v
		}
		return uint8(min(int(v)*6/5, 255))
	}
	return ThemeColor{R: boost(c.R), G: boost(c.G), B: boost(c.B)}
}

// DeriveFooterColor is Footer on the string form of a theme color.
func DeriveFooterColor(hex string) (string, error) {
	c, err := ParseThemeColor(hex)
	if err != nil {
		return "", err
	}
	return c.Footer().String(), nil
}
