// Package browser wraps playwright for the scrape fallbacks. The driver is
// optional: when the playwright runtime is not installed the launcher
// reports ErrUnavailable and callers degrade to an empty result.
package browser

import (
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

var ErrUnavailable = errors.New("browser driver unavailable")

type Driver struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

// Launch starts a headless browser, preferring Firefox and falling back to
// Chromium with the CI-safe flags.
func Launch() (*Driver, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	b, err := pw.Firefox.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		b, err = pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
			Headless: playwright.Bool(true),
			Args:     []string{"--no-sandbox", "--disable-dev-shm-usage", "--disable-gpu"},
		})
	}
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return &Driver{pw: pw, browser: b}, nil
}

func (d *Driver) NewPage() (playwright.Page, error) {
	return d.browser.NewPage()
}

func (d *Driver) Close() error {
	err := d.browser.Close()
	if stopErr := d.pw.Stop(); err == nil {
		err = stopErr
	}
	return err
}
