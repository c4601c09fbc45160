package imagepkg

import (
	"errors"
	"testing"
)

func TestDeriveFooterColor(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"#640000", "#780000"},
		{"#FFFFFF", "#FFFFFF"},
		{"#616CAE", "#616CD0"},
		{"#808000", "#999900"},
		{"#FAFA00", "#FFFF00"},
		{"#abcdef", "#ABCDFF"},
		{"#000000", "#000000"},
		{"#0A0505", "#0C0505"},
	}
	for _, tt := range tests {
		got, err := DeriveFooterColor(tt.in)
		if err != nil {
			t.Fatalf("DeriveFooterColor(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("DeriveFooterColor(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestFooterOnlyTouchesMaxChannels(t *testing.T) {
	for r := 0; r < 256; r += 17 {
		for g := 0; g < 256; g += 51 {
			c := ThemeColor{R: uint8(r), G: uint8(g), B: 0x40}
			f := c.Footer()
			top := max(c.R, c.G, c.B)
			check := func(name string, before, after uint8) {
				if before != top {
					if after != before {
						t.Fatalf("%v: %s changed %d -> %d though not max", c, name, before, after)
					}
					return
				}
				if before < 255 && after <= before {
					t.Fatalf("%v: %s not increased (%d -> %d)", c, name, before, after)
				}
			}
			check("R", c.R, f.R)
			check("G", c.G, f.G)
			check("B", c.B, f.B)
		}
	}
}

func TestParseThemeColorInvalid(t *testing.T) {
	for _, in := range []string{"", "blue", "#12", "#GG0000", "616CAE#", "#616CAE0", " #616CAE"} {
		_, err := ParseThemeColor(in)
		var colorErr *InvalidColorError
		if !errors.As(err, &colorErr) {
			t.Errorf("ParseThemeColor(%q): want InvalidColorError, got %v", in, err)
		}
	}
}

func TestThemeColorString(t *testing.T) {
	c, err := ParseThemeColor("#0a0b0c")
	if err != nil {
		t.Fatal(err)
	}
	if c != (ThemeColor{R: 10, G: 11, B: 12}) {
		t.Fatalf("parsed %+v", c)
	}
	if c.String() != "#0A0B0C" {
		t.Fatalf("String() = %s", c.String())
	}
}
