package scrape

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	"github.com/youruser/wallpaperapp/internal/operators"
)

const listHTML = `<html><body>
<div id="filter-data">
  <div data-en="Ch'en" data-zh="陈"></div>
  <div data-en="Castle-3" data-zh="Castle-3"></div>
  <div data-en="" data-zh="空"></div>
</div></body></html>`

func operatorHTML(title string, stars, stages, skins int) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<html><body><h1 id="firstHeading">%s</h1><div class="charinfo-container">`, title)
	fmt.Fprintf(&b, `<div class="charstar"><img src="//media.example/images/star_%d.png"></div>`, stars)
	b.WriteString(`<div class="stage-btn-wrapper">`)
	for i := 0; i < stages; i++ {
		fmt.Fprintf(&b, `<div class="stage-btn">%d</div>`, i)
	}
	b.WriteString(`</div><div class="charlogo-skin">`)
	for i := 0; i < skins; i++ {
		b.WriteString(`<img src="skin.png">`)
	}
	b.WriteString(`</div></div></body></html>`)
	return b.String()
}

func newWiki(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	pages := map[string]string{
		"/w/干员一览":    listHTML,
		"/w/陈":       operatorHTML("陈", 6, 3, 2),
		"/w/Castle-3": operatorHTML("Castle-3", 1, 1, 0),
	}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))
}

func newTestScraper(srv *httptest.Server) *Scraper {
	log := logrus.New()
	log.SetLevel(logrus.DebugLevel)
	return NewScraper(srv.Client(), Options{
		BaseURL:  srv.URL + "/w",
		MediaURL: "https://media.example/",
		Workers:  2,
	}, log)
}

func expectedMedia(filename string) string {
	sum := md5.Sum([]byte(filename))
	h := hex.EncodeToString(sum[:])
	return "https://media.example/" + h[:1] + "/" + h[:2] + "/" + escapeMedia(filename)
}

func TestMediaURL(t *testing.T) {
	s := NewScraper(nil, Options{MediaURL: "https://media.example/"}, nil)
	tests := []struct {
		file, want string
	}{
		{"立绘_W_1.png", "https://media.example/4/44/%E7%AB%8B%E7%BB%98_W_1.png"},
		{"立绘_阿米娅(近卫)_2.png", "https://media.example/9/95/%E7%AB%8B%E7%BB%98_%E9%98%BF%E7%B1%B3%E5%A8%85%28%E8%BF%91%E5%8D%AB%29_2.png"},
		{"a b+c.png", "https://media.example/2/29/a%20b%2Bc.png"},
	}
	for _, tt := range tests {
		if got := s.MediaURL(tt.file); got != tt.want {
			t.Errorf("MediaURL(%q) = %q, want %q", tt.file, got, tt.want)
		}
	}
}

func TestListPages(t *testing.T) {
	srv := newWiki(t, nil)
	defer srv.Close()

	pages, err := newTestScraper(srv).ListPages(context.Background())
	if err != nil {
		t.Fatalf("ListPages: %v", err)
	}
	for _, name := range []string{"Ch'en", "Castle-3", "Amiya", "Amiya (Guard)", "Amiya (Medic)"} {
		if _, ok := pages[name]; !ok {
			t.Errorf("missing page for %s", name)
		}
	}
	if len(pages) != 5 {
		t.Fatalf("expected 5 pages, got %d", len(pages))
	}
	if p := pages["Ch'en"]; p.NameCN != "陈" || p.URL != srv.URL+"/w/"+url.PathEscape("陈") {
		t.Fatalf("unexpected page %+v", p)
	}
}

func TestOperator(t *testing.T) {
	srv := newWiki(t, nil)
	defer srv.Close()
	s := newTestScraper(srv)

	op, err := s.Operator(context.Background(), Page{Name: "Ch'en", NameCN: "陈", URL: srv.URL + "/w/" + url.PathEscape("陈")})
	if err != nil {
		t.Fatalf("Operator: %v", err)
	}
	if op.Rarity != 6 {
		t.Errorf("rarity = %d", op.Rarity)
	}
	if op.Elite1 != expectedMedia("立绘_陈_1.png") {
		t.Errorf("Elite1 = %s", op.Elite1)
	}
	if op.Elite2 != expectedMedia("立绘_陈_2.png") {
		t.Errorf("Elite2 = %s", op.Elite2)
	}
	if len(op.Skins) != 2 || op.Skins["Skin 2"] != expectedMedia("立绘_陈_skin2.png") {
		t.Errorf("skins = %v", op.Skins)
	}
}

func TestOperator_SingleStage(t *testing.T) {
	srv := newWiki(t, nil)
	defer srv.Close()

	op, err := newTestScraper(srv).Operator(context.Background(), Page{Name: "Castle-3", NameCN: "Castle-3", URL: srv.URL + "/w/Castle-3"})
	if err != nil {
		t.Fatalf("Operator: %v", err)
	}
	if op.Rarity != 1 || op.Elite2 != "" || len(op.Skins) != 0 {
		t.Fatalf("unexpected record %+v", op)
	}
}

func TestOperator_MissingPage(t *testing.T) {
	srv := newWiki(t, nil)
	defer srv.Close()

	_, err := newTestScraper(srv).Operator(context.Background(), Page{Name: "Nobody", URL: srv.URL + "/w/nobody"})
	if err == nil {
		t.Fatal("expected error for 404 page")
	}
}

func TestAll(t *testing.T) {
	var hits atomic.Int32
	srv := newWiki(t, &hits)
	defer srv.Close()
	s := newTestScraper(srv)

	pages := map[string]Page{
		"Ch'en":    {Name: "Ch'en", NameCN: "陈", URL: srv.URL + "/w/" + url.PathEscape("陈")},
		"Castle-3": {Name: "Castle-3", NameCN: "Castle-3", URL: srv.URL + "/w/Castle-3"},
	}
	var done atomic.Int32
	roster, err := s.All(context.Background(), pages, func() { done.Add(1) })
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(roster) != 2 || done.Load() != 2 || hits.Load() != 2 {
		t.Fatalf("roster=%d done=%d hits=%d", len(roster), done.Load(), hits.Load())
	}
}

type solidLoader struct{ c color.NRGBA }

func (l solidLoader) Load(_ context.Context, ref string) (image.Image, error) {
	if ref == "broken" {
		return nil, fmt.Errorf("boom")
	}
	return imaging.New(16, 16, l.c), nil
}

func TestAttachColors(t *testing.T) {
	srv := newWiki(t, nil)
	defer srv.Close()

	r := operators.Roster{
		"A": {Name: "A", Elite1: "a.png"},
		"B": {Name: "B", Elite1: "b.png", Color: "#123456"},
		"C": {Name: "C", Elite1: "broken"},
	}
	if err := newTestScraper(srv).AttachColors(context.Background(), r, solidLoader{c: color.NRGBA{R: 0x61, G: 0x6C, B: 0xAE, A: 255}}); err != nil {
		t.Fatalf("AttachColors: %v", err)
	}
	if r["A"].Color != "#616CAE" {
		t.Errorf("A color = %q", r["A"].Color)
	}
	if r["B"].Color != "#123456" {
		t.Errorf("B color overwritten: %q", r["B"].Color)
	}
	if r["C"].Color != "" {
		t.Errorf("C color = %q", r["C"].Color)
	}
}
