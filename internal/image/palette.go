package imagepkg

import (
	"image"
	"image/color"
	"math"

	"github.com/cenkalti/dominantcolor"
	"github.com/disintegration/imaging"
)

const (
	paletteSample = 32
	// minAlpha skips mostly transparent pixels around cut-out art.
	minAlpha = 0x80
)

// DominantColor picks a theme color for art by k-means clustering its opaque
// pixels. Transparent margins are dropped before clustering so cut-out art
// is judged by the figure alone. Fully transparent art yields black.
func DominantColor(img image.Image) ThemeColor {
	small := imaging.Resize(img, paletteSample, paletteSample, imaging.Box)

	opaque := make([]color.NRGBA, 0, paletteSample*paletteSample)
	uniform := true
	for i := 0; i+3 < len(small.Pix); i += 4 {
		if small.Pix[i+3] < minAlpha {
			continue
		}
		c := color.NRGBA{R: small.Pix[i], G: small.Pix[i+1], B: small.Pix[i+2], A: 255}
		if len(opaque) > 0 && c != opaque[0] {
			uniform = false
		}
		opaque = append(opaque, c)
	}

	switch {
	case len(opaque) == 0:
		return ThemeColor{}
	case uniform:
		return ThemeColor{R: opaque[0].R, G: opaque[0].G, B: opaque[0].B}
	}

	c := dominantcolor.Find(packPixels(opaque))
	return ThemeColor{R: c.R, G: c.G, B: c.B}
}

// packPixels lays px out on the smallest square that holds them, repeating
// from the start to fill the last row so no transparent padding remains.
func packPixels(px []color.NRGBA) *image.NRGBA {
	side := int(math.Ceil(math.Sqrt(float64(len(px)))))
	out := image.NewNRGBA(image.Rect(0, 0, side, side))
	for i := 0; i < side*side; i++ {
		out.SetNRGBA(i%side, i/side, px[i%len(px)])
	}
	return out
}
