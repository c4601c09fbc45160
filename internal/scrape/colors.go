package scrape

import (
	"context"
	"image"
	"sync"

	"golang.org/x/sync/errgroup"

	imagepkg "github.com/youruser/wallpaperapp/internal/image"
	"github.com/youruser/wallpaperapp/internal/operators"
)

// ArtLoader decodes an artwork reference.
type ArtLoader interface {
	Load(ctx context.Context, ref string) (image.Image, error)
}

// AttachColors fills in a theme color for every operator that lacks one,
// using the dominant color of its Elite 1 art. Operators whose art cannot be
// loaded are logged and left without a color.
func (s *Scraper) AttachColors(ctx context.Context, r operators.Roster, art ArtLoader) error {
	var (
		mu     sync.Mutex
		colors = make(map[string]string)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for name, op := range r {
		if op.Color != "" || op.Elite1 == "" {
			continue
		}
		name, op := name, op
		g.Go(func() error {
			img, err := art.Load(gctx, op.Elite1)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				s.log.WithError(err).WithField("operator", name).Warn("no theme color")
				return nil
			}
			mu.Lock()
			colors[name] = imagepkg.DominantColor(img).String()
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for name, c := range colors {
		op := r[name]
		op.Color = c
		r[name] = op
	}
	return nil
}

var _ ArtLoader = (*imagepkg.Fetcher)(nil)

