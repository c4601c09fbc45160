package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	imagepkg "github.com/youruser/wallpaperapp/internal/image"
	"github.com/youruser/wallpaperapp/internal/operators"
	"github.com/youruser/wallpaperapp/internal/scrape"
	"github.com/youruser/wallpaperapp/internal/util"
)

var (
	scrapeOut    string
	scrapeColors bool
	scrapeLimit  int
)

func init() {
	scrapeCmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape operator records from the wiki into operators.json",
		RunE:  runScrape,
	}
	scrapeCmd.Flags().StringVar(&scrapeOut, "out", "", "output JSON (default <data_dir>/operators.json)")
	scrapeCmd.Flags().BoolVar(&scrapeColors, "colors", false, "derive missing theme colors from Elite 1 art")
	scrapeCmd.Flags().IntVar(&scrapeLimit, "limit", 0, "scrape only the first N operators by name")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	client := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:    cfg.HTTPTimeout,
		UserAgent:  cfg.UserAgent,
		Cloudflare: cfg.Scrape.Cloudflare,
		Log:        log,
	})
	scr := scrape.NewScraper(client, scrape.Options{
		BaseURL:           cfg.Scrape.BaseURL,
		MediaURL:          cfg.Scrape.MediaURL,
		Workers:           cfg.Scrape.Workers,
		RequestsPerSecond: cfg.Scrape.RequestsPerSecond,
	}, log)

	ctx := cmd.Context()
	pages, err := scr.ListPages(ctx)
	if err != nil {
		return err
	}
	if scrapeLimit > 0 && scrapeLimit < len(pages) {
		pages = firstPages(pages, scrapeLimit)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Found %d operator pages.\n", len(pages))

	p := mpb.New(
		mpb.WithWidth(52),
		mpb.WithOutput(os.Stdout),
		mpb.WithRefreshRate(120*time.Millisecond),
	)
	bar := p.AddBar(int64(len(pages)),
		mpb.PrependDecorators(decor.Name("operators "), decor.CountersNoUnit("%d/%d")),
		mpb.AppendDecorators(decor.Percentage()),
	)
	roster, err := scr.All(ctx, pages, func() { bar.Increment() })
	if err != nil {
		bar.Abort(false)
		p.Wait()
		return err
	}
	p.Wait()

	if scrapeColors {
		if err := scr.AttachColors(ctx, roster, imagepkg.NewFetcher(client, 0)); err != nil {
			return err
		}
	}

	out := scrapeOut
	if out == "" {
		out = filepath.Join(cfg.DataDir, operators.RosterFile)
	}
	if err := operators.SaveJSON(roster, out); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d operators to %s\n", len(roster), out)
	return nil
}

func firstPages(pages map[string]scrape.Page, n int) map[string]scrape.Page {
	names := make([]string, 0, len(pages))
	for name := range pages {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]scrape.Page, n)
	for _, name := range names[:n] {
		out[name] = pages[name]
	}
	return out
}
