package capture

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Evaluator runs a JavaScript expression in the page. It is satisfied by
// the browser session and trivially faked in tests.
type Evaluator interface {
	Evaluate(ctx context.Context, js string, res any) error
}

// ScrollConfig tunes the scroll loop. Zero values fall back to defaults so
// callers only set what they care about.
type ScrollConfig struct {
	// MaxPages stops the loop once this many pages were captured.
	MaxPages int
	// ScrollPause is the longest the loop waits for a page after each
	// scroll before counting the iteration as stale.
	ScrollPause time.Duration
	// MaxStale stops the loop after this many consecutive iterations
	// without a new page.
	MaxStale int
	// ScrollStep is the pixel distance of each window scroll.
	ScrollStep int
	// Containers lists CSS selectors of scrollable elements to drive
	// instead of the window, tried in order. Used for modal lists.
	Containers []string
	// ExtraScript, when set, runs every iteration before scrolling. Used
	// to click open reply toggles on comment pages.
	ExtraScript string
}

func (c ScrollConfig) withDefaults() ScrollConfig {
	if c.MaxPages <= 0 {
		c.MaxPages = 10
	}
	if c.ScrollPause <= 0 {
		c.ScrollPause = 2 * time.Second
	}
	if c.MaxStale <= 0 {
		c.MaxStale = 5
	}
	if c.ScrollStep <= 0 {
		c.ScrollStep = 500
	}
	return c
}

// ScrollDriver repeatedly scrolls the page and watches the collector for
// newly captured pages, stopping on the page budget, an exhausted feed, or
// too many quiet iterations in a row.
type ScrollDriver struct {
	eval Evaluator
	col  *Collector
	cfg  ScrollConfig
}

// NewScrollDriver builds a driver over an attached collector.
func NewScrollDriver(eval Evaluator, col *Collector, cfg ScrollConfig) *ScrollDriver {
	return &ScrollDriver{eval: eval, col: col, cfg: cfg.withDefaults()}
}

// Run drives the scroll loop until a stop condition fires, then gives
// in-flight responses one more pause to land. The iteration cap guards
// against a page that keeps reporting more content without delivering any.
func (d *ScrollDriver) Run(ctx context.Context) error {
	script := d.scrollScript()
	stale := 0

	for iter := 0; iter < d.cfg.MaxPages*3; iter++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.cfg.ExtraScript != "" {
			if err := d.eval.Evaluate(ctx, d.cfg.ExtraScript, nil); err != nil {
				log.Debug().Err(err).Msg("Pre-scroll script failed")
			}
		}
		if err := d.eval.Evaluate(ctx, script, nil); err != nil {
			return fmt.Errorf("failed to scroll page: %w", err)
		}

		if d.col.Poll(ctx, d.cfg.ScrollPause) {
			stale = 0
		} else {
			stale++
			if stale >= d.cfg.MaxStale {
				log.Debug().Int("pages", d.col.Len()).Msg("No new pages, stopping scroll")
				break
			}
			continue
		}

		if d.col.Len() >= d.cfg.MaxPages {
			log.Debug().Int("pages", d.col.Len()).Msg("Page budget reached, stopping scroll")
			break
		}
		if last, ok := d.col.Last(); ok && !last.HasMore {
			log.Debug().Int("pages", d.col.Len()).Msg("Feed exhausted, stopping scroll")
			break
		}
	}

	d.col.Drain(d.cfg.ScrollPause)
	return nil
}

// scrollScript builds the per-iteration scroll expression. Containers are
// tried in order and scrolled to their bottom; when none matches, the
// window itself scrolls by a fixed step.
func (d *ScrollDriver) scrollScript() string {
	if len(d.cfg.Containers) == 0 {
		return fmt.Sprintf("window.scrollBy(0, %d); true", d.cfg.ScrollStep)
	}
	var b strings.Builder
	b.WriteString("(() => {\n")
	for _, sel := range d.cfg.Containers {
		fmt.Fprintf(&b, "  { const el = document.querySelector(%q); if (el) { el.scrollTop = el.scrollHeight; return true; } }\n", sel)
	}
	fmt.Fprintf(&b, "  window.scrollBy(0, %d); return false;\n})()", d.cfg.ScrollStep)
	return b.String()
}
