package scrape

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/youruser/wallpaperapp/internal/operators"
)

// listPage is the wiki's operator overview (干员一览).
const listPage = "干员一览"

var rarityRe = regexp.MustCompile(`star_(\d+)\.png$`)

// Page points at one operator's wiki page.
type Page struct {
	Name   string
	NameCN string
	URL    string
}

type Options struct {
	BaseURL  string
	MediaURL string
	Workers  int
	// RequestsPerSecond caps page fetches across all workers. Zero disables
	// the limit.
	RequestsPerSecond float64
}

type Scraper struct {
	client   *http.Client
	baseURL  string
	mediaURL string
	workers  int
	limiter  *rate.Limiter
	log      logrus.FieldLogger
}

func NewScraper(c *http.Client, opts Options, log logrus.FieldLogger) *Scraper {
	lim := rate.NewLimiter(rate.Inf, 0)
	if opts.RequestsPerSecond > 0 {
		lim = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Scraper{
		client:   c,
		baseURL:  strings.TrimSuffix(opts.BaseURL, "/") + "/",
		mediaURL: strings.TrimSuffix(opts.MediaURL, "/") + "/",
		workers:  max(1, opts.Workers),
		limiter:  lim,
		log:      log,
	}
}

func (s *Scraper) fetchDOM(ctx context.Context, target string) (*goquery.Document, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: %s", target, resp.Status)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

func (s *Scraper) pageURL(nameCN string) string {
	return s.baseURL + url.PathEscape(nameCN)
}

// ListPages returns every operator page found on the overview, keyed by
// English name.
func (s *Scraper) ListPages(ctx context.Context) (map[string]Page, error) {
	doc, err := s.fetchDOM(ctx, s.pageURL(listPage))
	if err != nil {
		return nil, fmt.Errorf("operator list: %w", err)
	}

	pages := make(map[string]Page)
	doc.Find("div#filter-data").Children().Each(func(_ int, sel *goquery.Selection) {
		en, _ := sel.Attr("data-en")
		zh, _ := sel.Attr("data-zh")
		en, zh = strings.TrimSpace(en), strings.TrimSpace(zh)
		if en == "" || zh == "" {
			return
		}
		pages[en] = Page{Name: en, NameCN: zh, URL: s.pageURL(zh)}
	})
	if len(pages) == 0 {
		return nil, fmt.Errorf("operator list: no entries under #filter-data")
	}

	// The overview lists Amiya once; her alternate forms have their own pages.
	for en, zh := range map[string]string{
		"Amiya":         "阿米娅",
		"Amiya (Guard)": "阿米娅(近卫)",
		"Amiya (Medic)": "阿米娅(医疗)",
	} {
		pages[en] = Page{Name: en, NameCN: zh, URL: s.pageURL(zh)}
	}
	return pages, nil
}

// Operator scrapes one operator page.
func (s *Scraper) Operator(ctx context.Context, p Page) (operators.Operator, error) {
	doc, err := s.fetchDOM(ctx, p.URL)
	if err != nil {
		return operators.Operator{}, fmt.Errorf("%s: %w", p.Name, err)
	}
	return s.parseOperator(doc, p)
}

func (s *Scraper) parseOperator(doc *goquery.Document, p Page) (operators.Operator, error) {
	info := doc.Find(".charinfo-container").First()
	if info.Length() == 0 {
		return operators.Operator{}, fmt.Errorf("%s: no .charinfo-container", p.Name)
	}

	src, _ := info.Find("div.charstar img").First().Attr("src")
	m := rarityRe.FindStringSubmatch(src)
	if m == nil {
		return operators.Operator{}, fmt.Errorf("%s: rarity image %q not recognized", p.Name, src)
	}
	rarity, _ := strconv.Atoi(m[1])

	op := operators.Operator{
		Name:   p.Name,
		NameCN: p.NameCN,
		URL:    p.URL,
		Rarity: rarity,
		Elite1: s.MediaURL(artFile(p.NameCN, "1")),
		Skins:  map[string]string{},
	}
	if info.Find(".stage-btn-wrapper").First().Children().Length() > 1 {
		op.Elite2 = s.MediaURL(artFile(p.NameCN, "2"))
	}
	skins := info.Find(".charlogo-skin").First().Children().Length()
	for i := 1; i <= skins; i++ {
		op.Skins[fmt.Sprintf("Skin %d", i)] = s.MediaURL(artFile(p.NameCN, fmt.Sprintf("skin%d", i)))
	}

	if title := strings.TrimSpace(doc.Find("#firstHeading").First().Text()); title != "" {
		s.log.WithFields(logrus.Fields{"operator": p.Name, "title": title}).Debug("scraped operator")
	}
	return op, nil
}

// All scrapes every page with bounded concurrency. done is called after
// each page, successful or not. The first failure cancels the rest.
func (s *Scraper) All(ctx context.Context, pages map[string]Page, done func()) (operators.Roster, error) {
	var (
		mu     sync.Mutex
		roster = make(operators.Roster, len(pages))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, p := range pages {
		p := p
		g.Go(func() error {
			if done != nil {
				defer done()
			}
			op, err := s.Operator(gctx, p)
			if err != nil {
				return err
			}
			mu.Lock()
			roster[op.Name] = op
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return roster, nil
}

// MediaURL returns the media server URL of a wiki file. Files live under
// the first one and two hex digits of the MD5 of their name.
func (s *Scraper) MediaURL(filename string) string {
	sum := md5.Sum([]byte(filename))
	h := hex.EncodeToString(sum[:])
	return s.mediaURL + h[:1] + "/" + h[:2] + "/" + escapeMedia(filename)
}

// escapeMedia percent-encodes everything outside the unreserved set,
// parentheses included, matching the media server's canonical links.
func escapeMedia(filename string) string {
	return strings.ReplaceAll(url.QueryEscape(filename), "+", "%20")
}

func artFile(nameCN, stage string) string {
	return "立绘_" + nameCN + "_" + stage + ".png"
}
