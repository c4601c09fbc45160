package api

import (
	"context"
	"errors"
	"image"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	imagepkg "github.com/youruser/wallpaperapp/internal/image"
	"github.com/youruser/wallpaperapp/internal/operators"
	"github.com/youruser/wallpaperapp/internal/selection"
)

// Composer renders a resolved request.
type Composer interface {
	Compose(ctx context.Context, req imagepkg.Request) (*image.NRGBA, error)
}

type Server struct {
	roster    operators.Roster
	composer  Composer
	outputDir string
	log       logrus.FieldLogger
}

func NewServer(roster operators.Roster, composer Composer, outputDir string, log logrus.FieldLogger) *Server {
	if roster == nil {
		roster = operators.Roster{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{roster: roster, composer: composer, outputDir: outputDir, log: log}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "operators": len(s.roster)})
}

func (s *Server) listOperators(c *gin.Context) {
	var opt operators.FilterOptions
	for _, v := range c.QueryArray("rarity") {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rarity must be a number"})
			return
		}
		opt.Rarities = append(opt.Rarities, n)
	}
	opt.FreeWords = c.Query("q")
	out := operators.Filter(s.roster, opt)
	c.JSON(http.StatusOK, gin.H{"count": len(out), "operators": out})
}

func (s *Server) getOperator(c *gin.Context) {
	op, ok := s.roster[c.Param("name")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "operator not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"operator":           op,
		"art_choices":        op.ArtChoices(),
		"foreground_choices": op.ForegroundChoices(),
	})
}

// wallpaperRequest is either an operator selection or raw artwork refs.
type wallpaperRequest struct {
	selection.Selection
	ForegroundURL string `json:"foreground_url"`
	BackgroundURL string `json:"background_url"`
	Store         bool   `json:"store"`
}

func (s *Server) wallpaperHandler(c *gin.Context) {
	var body wallpaperRequest
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, status, err := s.resolve(body)
	if err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	img, err := s.composer.Compose(c.Request.Context(), req)
	if err != nil {
		s.log.WithError(err).Warn("compose failed")
		status, msg := composeStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	if !body.Store {
		buf, err := encodePNG(img)
		if err != nil {
			s.log.WithError(err).Error("encode wallpaper")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.Data(http.StatusOK, "image/png", buf)
		return
	}

	id := ulid.Make().String()
	if err := imagepkg.Save(img, filepath.Join(s.outputDir, id+".png")); err != nil {
		s.log.WithError(err).Error("store wallpaper")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "url": "/api/wallpapers/" + id})
}

// errLocalRef rejects client refs that would resolve to server-side files.
var errLocalRef = errors.New("artwork urls must be absolute http(s) urls")

func (s *Server) resolve(body wallpaperRequest) (imagepkg.Request, int, error) {
	for _, ref := range []string{body.ForegroundURL, body.BackgroundURL, body.CustomBackground} {
		if ref != "" && !isHTTPURL(ref) {
			return imagepkg.Request{}, http.StatusBadRequest, errLocalRef
		}
	}
	if body.Operator == "" {
		if body.ForegroundURL == "" && body.BackgroundURL == "" {
			return imagepkg.Request{}, http.StatusBadRequest, errors.New("operator or artwork urls required")
		}
		return imagepkg.Request{
			Foreground:       body.ForegroundURL,
			Background:       body.BackgroundURL,
			CustomBackground: body.CustomBackground,
			Color:            body.Color,
		}, 0, nil
	}

	op, ok := s.roster[body.Operator]
	if !ok {
		return imagepkg.Request{}, http.StatusNotFound, errors.New("operator not found")
	}
	req, err := selection.Resolve(op, body.Selection)
	if err != nil {
		return imagepkg.Request{}, http.StatusBadRequest, err
	}
	return req, 0, nil
}

func (s *Server) storedWallpaper(c *gin.Context) {
	path, ok := s.storedPath(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "wallpaper not found"})
		return
	}
	c.File(path)
}

func (s *Server) wallpaperQR(c *gin.Context) {
	id := c.Param("id")
	if _, ok := s.storedPath(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "wallpaper not found"})
		return
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	link := scheme + "://" + c.Request.Host + "/api/wallpapers/" + id
	s.writeQR(c, link)
}

// qr endpoint returns a PNG of a QR for "text" query param
func (s *Server) qrHandler(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	s.writeQR(c, text)
}

func (s *Server) writeQR(c *gin.Context, text string) {
	size := 400
	if v, err := strconv.Atoi(c.Query("size")); err == nil {
		size = v
	}
	b, err := imagepkg.ShareQRPNG(text, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

func (s *Server) storedPath(id string) (string, bool) {
	if _, err := ulid.ParseStrict(strings.ToUpper(id)); err != nil {
		return "", false
	}
	path := filepath.Join(s.outputDir, strings.ToUpper(id)+".png")
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

func isHTTPURL(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// composeStatus maps a compose error to a status and a client-safe message.
// Details stay in the server log.
func composeStatus(err error) (int, string) {
	var (
		colorErr  *imagepkg.InvalidColorError
		fetchErr  *imagepkg.ArtworkFetchError
		decodeErr *imagepkg.DecodeError
	)
	switch {
	case errors.As(err, &colorErr):
		return http.StatusBadRequest, "invalid theme color"
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway, "artwork could not be fetched"
	case errors.As(err, &decodeErr):
		return http.StatusBadGateway, "artwork is not a valid image"
	}
	return http.StatusInternalServerError, "internal error"
}
