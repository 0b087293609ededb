package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/devskale/willhaben-agent/internal/ascii"
	"github.com/devskale/willhaben-agent/internal/config"
	"github.com/devskale/willhaben-agent/internal/fetch"
	"github.com/devskale/willhaben-agent/internal/wh"
)

// Show fetches a single listing and prints it to w as a framed product
// card with the first image rendered as ASCII art, without entering
// the TUI.
func Show(ctx context.Context, opts Options, adID string, w io.Writer) error {
	cfg := config.Load(opts.ConfigPath)
	if opts.UseBrowser {
		cfg.UseBrowser = true
	}

	client := wh.NewClient(fetch.New(fetch.Options{
		CookieHeader: cfg.CookieHeader,
		UseBrowser:   cfg.UseBrowser,
	}))

	detail, err := client.FetchDetail(ctx, adID)
	if err != nil {
		return err
	}

	width := cfg.AsciiWidth
	if width == config.WidthAuto {
		width = terminalWidth()
	}

	art := ""
	imageURL := detail.ImageURL
	if len(detail.Images) > 0 {
		imageURL = detail.Images[0]
	}
	if imageURL != "" {
		if data, err := client.FetchImage(ctx, imageURL); err == nil {
			if img, err := ascii.Decode(data); err == nil {
				art = ascii.Render(img, width, ascii.Ramp(asciiContrast(cfg)))
			}
		}
	}
	if art == "" {
		art = ascii.Placeholder(32, 6)
	}

	printCard(w, detail, art)
	return nil
}

func asciiContrast(cfg config.UserConfig) ascii.Contrast {
	if cfg.AsciiContrast == config.ContrastRotate {
		return ascii.ContrastMedium
	}
	return ascii.Contrast(cfg.AsciiContrast)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < 28 {
		return 80
	}
	return width - 8
}

func printCard(w io.Writer, d wh.ListingDetail, art string) {
	rule := strings.Repeat("─", 70)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, d.Title)
	fmt.Fprintln(w, d.PriceText)
	fmt.Fprintln(w, "ID:", d.ID)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, art)
	fmt.Fprintln(w, rule)

	desc := d.FullDescription
	if desc == "" {
		desc = d.Description
	}
	if desc != "" {
		fmt.Fprintln(w, strings.TrimSpace(desc))
		fmt.Fprintln(w, rule)
	}

	fmt.Fprintln(w, "Location:", d.Location)
	fmt.Fprintln(w, "Seller:  ", d.SellerName)
	if d.Paylivery {
		fmt.Fprintln(w, "PayLivery available")
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, d.URL)
}
