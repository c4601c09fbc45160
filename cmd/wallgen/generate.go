package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	imagepkg "github.com/youruser/wallpaperapp/internal/image"
	"github.com/youruser/wallpaperapp/internal/operators"
	"github.com/youruser/wallpaperapp/internal/selection"
	"github.com/youruser/wallpaperapp/internal/util"
)

var (
	genSel         selection.Selection
	genFgURL       string
	genBgURL       string
	genOut         string
	genInteractive bool
)

func init() {
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Compose a 640x1280 wallpaper PNG",
		Long: `Compose a wallpaper either for an operator from the local data
(--operator with optional --fg/--bg art choices) or from raw artwork
references (--fg-url/--bg-url with --color).`,
		RunE: runGenerate,
	}

	f := generateCmd.Flags()
	f.StringVar(&genSel.Operator, "operator", "", "operator name")
	f.StringVar(&genSel.Foreground, "fg", "", "foreground art choice (e.g. \"Elite 1\", \"Skin 1\")")
	f.StringVar(&genSel.Background, "bg", "", "background art choice, \"None\" for no background art")
	f.StringVar(&genSel.Color, "color", "", "theme color as #RRGGBB (defaults to the operator's)")
	f.StringVar(&genSel.CustomBackground, "custom-bg", "", "image replacing the bundled background")
	f.BoolVar(&genSel.Swap, "swap", false, "swap foreground and background art")
	f.StringVar(&genFgURL, "fg-url", "", "foreground artwork URL or path (without --operator)")
	f.StringVar(&genBgURL, "bg-url", "", "background artwork URL or path (without --operator)")
	f.StringVarP(&genOut, "out", "o", "", "output PNG path (default <output_dir>/<operator>.png)")
	f.BoolVarP(&genInteractive, "interactive", "i", false, "pick operator and art interactively")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	var (
		req  imagepkg.Request
		name = "wallpaper.png"
	)

	if genSel.Operator != "" || genInteractive {
		roster, err := operators.LoadFromDataDir(cfg.DataDir)
		if err != nil {
			return err
		}
		if genInteractive {
			if err := pickSelection(roster, &genSel); err != nil {
				return err
			}
		}
		op, ok := roster[genSel.Operator]
		if !ok {
			return fmt.Errorf("operator %q not found", genSel.Operator)
		}
		req, err = selection.Resolve(op, genSel)
		if err != nil {
			return err
		}
		name = selection.FileName(op)
	} else {
		if genFgURL == "" && genBgURL == "" {
			return errors.New("missing --operator or --fg-url/--bg-url")
		}
		req = imagepkg.Request{
			Foreground:       genFgURL,
			Background:       genBgURL,
			CustomBackground: genSel.CustomBackground,
			Color:            genSel.Color,
		}
	}

	out := genOut
	if out == "" {
		if err := util.EnsureDir(cfg.OutputDir); err != nil {
			return fmt.Errorf("cannot create output folder: %w", err)
		}
		out = filepath.Join(cfg.OutputDir, name)
	}

	client := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:   cfg.HTTPTimeout,
		UserAgent: cfg.UserAgent,
		Log:       log,
	})
	composer := imagepkg.NewComposer(imagepkg.NewFetcher(client, 0), cfg.BackgroundPath, log)
	if err := composer.Generate(cmd.Context(), req, out); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// pickSelection prompts for whatever sel does not already name.
func pickSelection(roster operators.Roster, sel *selection.Selection) error {
	if sel.Operator == "" {
		names := roster.Names()
		_, name, err := (&promptui.Select{
			Label:    "Operator",
			Items:    names,
			Size:     12,
			Searcher: containsSearcher(names),
		}).Run()
		if err != nil {
			return err
		}
		sel.Operator = name
	}

	op, ok := roster[sel.Operator]
	if !ok {
		return fmt.Errorf("operator %q not found", sel.Operator)
	}
	if sel.Foreground == "" {
		_, fg, err := (&promptui.Select{Label: "Art in the front", Items: op.ForegroundChoices()}).Run()
		if err != nil {
			return err
		}
		sel.Foreground = fg
	}
	if sel.Background == "" {
		_, bg, err := (&promptui.Select{Label: "Art in the back", Items: op.ArtChoices()}).Run()
		if err != nil {
			return err
		}
		sel.Background = bg
	}
	return nil
}

func containsSearcher(items []string) func(string, int) bool {
	return func(input string, index int) bool {
		return strings.Contains(strings.ToLower(items[index]), strings.ToLower(input))
	}
}
