package imagepkg

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/vector"
	"golang.org/x/sync/errgroup"
)

const (
	CanvasWidth  = 640
	CanvasHeight = 1280

	// ArtSize is the square working size every artwork is normalized to.
	ArtSize = 1024

	BackgroundArtScale   = 1.05
	BackgroundArtOpacity = 0.8
	FooterOpacity        = 0.7
	ShadowOffset         = 15
)

// DefaultBackgroundPath is the bundled base background.
var DefaultBackgroundPath = filepath.Join("static", "resources", "bg.png")

// Request is a fully resolved wallpaper request. Foreground and Background
// are artwork refs (URL or path); either may be empty. CustomBackground
// replaces the bundled base background when set.
type Request struct {
	Foreground       string `json:"foreground"`
	Background       string `json:"background"`
	CustomBackground string `json:"custom_background,omitempty"`
	Color            string `json:"color"`
}

// Composer renders wallpapers.
type Composer struct {
	fetcher        *Fetcher
	backgroundPath string
	log            logrus.FieldLogger
}

// NewComposer returns a Composer. An empty backgroundPath selects
// DefaultBackgroundPath.
func NewComposer(fetcher *Fetcher, backgroundPath string, log logrus.FieldLogger) *Composer {
	if backgroundPath == "" {
		backgroundPath = DefaultBackgroundPath
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Composer{fetcher: fetcher, backgroundPath: backgroundPath, log: log}
}

// Compose renders req onto a fresh 640x1280 canvas. Layers are applied in a
// fixed order: base background, footer, background art, foreground shadow,
// foreground art.
func (c *Composer) Compose(ctx context.Context, req Request) (*image.NRGBA, error) {
	theme, err := ParseThemeColor(req.Color)
	if err != nil {
		return nil, err
	}

	var base, fg, bg image.Image
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if req.CustomBackground != "" {
			base, err = c.fetcher.Load(gctx, req.CustomBackground)
		} else {
			base, err = loadFile(c.backgroundPath)
		}
		return err
	})
	if req.Foreground != "" {
		g.Go(func() (err error) {
			fg, err = c.fetcher.Load(gctx, req.Foreground)
			return err
		})
	}
	if req.Background != "" {
		g.Go(func() (err error) {
			bg, err = c.fetcher.Load(gctx, req.Background)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	canvasSize := image.Pt(CanvasWidth, CanvasHeight)
	canvas := imaging.New(CanvasWidth, CanvasHeight, color.NRGBA{})

	if base.Bounds().Size() != canvasSize {
		base = imaging.Resize(base, CanvasWidth, CanvasHeight, imaging.Lanczos)
	}
	canvas = imaging.Paste(canvas, base, image.Pt(0, 0))

	canvas = imaging.Overlay(canvas, footerLayer(canvasSize, theme.Footer()), image.Pt(0, 0), FooterOpacity)

	if bg != nil {
		art := imaging.Resize(bg, ArtSize, ArtSize, imaging.Lanczos)
		side := scaled(ArtSize, BackgroundArtScale)
		art = imaging.Resize(art, side, side, imaging.Lanczos)
		pos := TopCenterOffset(art.Bounds().Size(), canvasSize)
		c.log.WithFields(logrus.Fields{"ref": req.Background, "x": pos.X, "y": pos.Y}).Debug("pasting background art")
		canvas = imaging.Overlay(canvas, art, pos, BackgroundArtOpacity)
	}

	if fg != nil {
		art := imaging.Resize(fg, ArtSize, ArtSize, imaging.Lanczos)
		pos := BottomCenter(art.Bounds().Size(), canvasSize)
		if bg == nil {
			pos = Center(art.Bounds().Size(), canvasSize)
		}
		c.log.WithFields(logrus.Fields{"ref": req.Foreground, "x": pos.X, "y": pos.Y}).Debug("pasting foreground art")
		drawShadow(canvas, art, pos.Add(image.Pt(ShadowOffset, ShadowOffset)), theme)
		canvas = imaging.Overlay(canvas, art, pos, 1.0)
	}

	return canvas, nil
}

// Generate composes req and writes it as PNG to path. Nothing is left at
// path when any step fails.
func (c *Composer) Generate(ctx context.Context, req Request, path string) error {
	img, err := c.Compose(ctx, req)
	if err != nil {
		return err
	}
	if err := Save(img, path); err != nil {
		return err
	}
	c.log.WithField("path", path).Info("wallpaper written")
	return nil
}

func scaled(n int, f float64) int {
	return int(float64(n) * f)
}

// footerPolygon is the decorative trapezoid near the bottom edge.
func footerPolygon() [4]image.Point {
	return [4]image.Point{image.Pt(0, 1100), image.Pt(640, 1000), image.Pt(640, 1280), image.Pt(0, 1280)}
}

func footerLayer(size image.Point, accent ThemeColor) *image.NRGBA {
	layer := image.NewNRGBA(image.Rectangle{Max: size})
	pts := footerPolygon()

	z := vector.NewRasterizer(size.X, size.Y)
	z.DrawOp = draw.Src
	z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()
	z.Draw(layer, layer.Bounds(), image.NewUniform(accent.NRGBA(0xff)), image.Point{})
	return layer
}

// drawShadow paints the theme color through art's alpha mask at pos.
func drawShadow(canvas draw.Image, art image.Image, pos image.Point, theme ThemeColor) {
	r := image.Rectangle{Min: pos, Max: pos.Add(art.Bounds().Size())}
	draw.DrawMask(canvas, r, image.NewUniform(theme.NRGBA(0xff)), image.Point{}, art, art.Bounds().Min, draw.Over)
}

// Save writes img as PNG through a temporary file in the destination
// directory and renames it into place.
func Save(img image.Image, path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".wallpaper-*.png")
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	tmpName := tmp.Name()

	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &WriteError{Path: path, Err: err}
	}

	if err := imaging.Encode(tmp, img, imaging.PNG); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &WriteError{Path: path, Err: err}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return &WriteError{Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
