package capture

import (
	"context"
	"time"

	"github.com/researchaccelerator-hub/tiktok-scraper/model"
)

// Collector accumulates pages from a tap's channel. It is meant to be used
// from a single goroutine, typically the one running the scroll loop.
type Collector struct {
	ch    <-chan model.CapturedPage
	pages []model.CapturedPage
}

// NewCollector wraps a page stream, usually Tap.Pages().
func NewCollector(ch <-chan model.CapturedPage) *Collector {
	return &Collector{ch: ch}
}

// Poll waits up to the given duration for at least one new page, then
// drains whatever else is immediately available. It reports whether any
// page arrived. Returning early on the first arrival is what lets the
// scroll loop move on as soon as the browser has delivered, instead of
// sleeping a fixed interval every iteration.
func (c *Collector) Poll(ctx context.Context, wait time.Duration) bool {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case page := <-c.ch:
		c.pages = append(c.pages, page)
		c.drainReady()
		return true
	case <-timer.C:
		return false
	case <-ctx.Done():
		return false
	}
}

// Drain gives in-flight responses a final grace period after scrolling has
// stopped, then collects everything that made it.
func (c *Collector) Drain(grace time.Duration) {
	timer := time.NewTimer(grace)
	defer timer.Stop()

	for {
		select {
		case page := <-c.ch:
			c.pages = append(c.pages, page)
		case <-timer.C:
			c.drainReady()
			return
		}
	}
}

func (c *Collector) drainReady() {
	for {
		select {
		case page := <-c.ch:
			c.pages = append(c.pages, page)
		default:
			return
		}
	}
}

// Pages returns the collected pages in arrival order.
func (c *Collector) Pages() []model.CapturedPage {
	return c.pages
}

// Len returns the number of pages collected so far.
func (c *Collector) Len() int {
	return len(c.pages)
}

// Last returns the most recently collected page, if any.
func (c *Collector) Last() (model.CapturedPage, bool) {
	if len(c.pages) == 0 {
		return model.CapturedPage{}, false
	}
	return c.pages[len(c.pages)-1], true
}
