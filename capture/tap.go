package capture

import (
	"context"
	"errors"
	"sync"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"github.com/researchaccelerator-hub/tiktok-scraper/model"
)

// defaultTapBuffer bounds the channel between the DevTools event callback
// and the consumer. Pages arriving while the buffer is full are dropped
// with a warning rather than blocking the browser's event loop.
const defaultTapBuffer = 64

// Tap captures the JSON responses of one endpoint from a browser target.
// Response URLs are recorded when the headers arrive and the body is
// fetched only once loading finishes, since the DevTools protocol discards
// bodies requested earlier.
type Tap struct {
	endpoint Endpoint
	pages    chan model.CapturedPage

	mu      sync.Mutex
	pending map[network.RequestID]string
	seq     int
}

// NewTap creates a tap for the given endpoint. Attach must be called before
// navigating to the page whose traffic should be captured.
func NewTap(endpoint Endpoint) *Tap {
	return &Tap{
		endpoint: endpoint,
		pages:    make(chan model.CapturedPage, defaultTapBuffer),
		pending:  make(map[network.RequestID]string),
	}
}

// Pages returns the stream of captured pages in capture order.
func (t *Tap) Pages() <-chan model.CapturedPage {
	return t.pages
}

// Attach registers the tap on a chromedp target context. The listener runs
// on the browser event loop, so body fetches are handed off to goroutines.
func (t *Tap) Attach(ctx context.Context) {
	chromedp.ListenTarget(ctx, func(ev interface{}) {
		switch ev := ev.(type) {
		case *network.EventResponseReceived:
			if !t.endpoint.Matches(ev.Response.URL) {
				return
			}
			t.mu.Lock()
			t.pending[ev.RequestID] = ev.Response.URL
			t.mu.Unlock()
		case *network.EventLoadingFinished:
			t.mu.Lock()
			url, ok := t.pending[ev.RequestID]
			if ok {
				delete(t.pending, ev.RequestID)
			}
			t.mu.Unlock()
			if ok {
				go t.fetch(ctx, ev.RequestID, url)
			}
		}
	})
}

// fetch pulls the response body out of the browser and publishes the
// decoded page. Malformed or error-status bodies are logged and skipped so
// one bad response never aborts a capture session.
func (t *Tap) fetch(ctx context.Context, id network.RequestID, url string) {
	c := chromedp.FromContext(ctx)
	body, err := network.GetResponseBody(id).Do(cdp.WithExecutor(ctx, c.Target))
	if err != nil {
		log.Warn().Err(err).Str("endpoint", t.endpoint.Name).Str("url", url).Msg("Failed to read response body")
		return
	}

	page, sent, err := t.deliver(body)
	if errors.Is(err, errStatus) {
		log.Debug().Err(err).Str("endpoint", t.endpoint.Name).Str("url", url).Msg("Skipping rejected response")
		return
	}
	if err != nil {
		log.Warn().Err(err).Str("endpoint", t.endpoint.Name).Str("url", url).Msg("Skipping unusable response")
		return
	}
	if !sent {
		log.Warn().Str("endpoint", t.endpoint.Name).Int("seq", page.Seq).Msg("Page buffer full, dropping page")
		return
	}

	log.Debug().
		Str("endpoint", t.endpoint.Name).
		Int("seq", page.Seq).
		Int("items", len(page.Items)).
		Bool("has_more", page.HasMore).
		Msg("Captured page")
}

// deliver stamps a body with the next sequence number and hands it to the
// consumer. The stamp and the channel send happen under one lock hold so
// channel order always agrees with Seq order. A body that fails to decode
// still consumes its capture position.
func (t *Tap) deliver(body []byte) (model.CapturedPage, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	page, err := decodePage(t.endpoint, t.seq, body)
	t.seq++
	if err != nil {
		return model.CapturedPage{}, false, err
	}

	select {
	case t.pages <- page:
		return page, true, nil
	default:
		return page, false, nil
	}
}

// publish is the test seam for feeding pages without a live browser.
func (t *Tap) publish(body []byte) error {
	_, _, err := t.deliver(body)
	return err
}
