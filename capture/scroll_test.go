package capture

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/researchaccelerator-hub/tiktok-scraper/model"
)

// scriptedEvaluator emits one canned page per scroll until its script runs
// out, then goes quiet.
type scriptedEvaluator struct {
	ch      chan model.CapturedPage
	pages   []model.CapturedPage
	scrolls int
	scripts []string
}

func (s *scriptedEvaluator) Evaluate(_ context.Context, js string, _ any) error {
	s.scripts = append(s.scripts, js)
	s.scrolls++
	if len(s.pages) > 0 {
		s.ch <- s.pages[0]
		s.pages = s.pages[1:]
	}
	return nil
}

func capturedPage(seq int, hasMore bool) model.CapturedPage {
	return model.CapturedPage{
		Seq:     seq,
		Items:   []model.RawItem{{"id": "x"}},
		HasMore: hasMore,
	}
}

func newScrollFixture(t *testing.T, pages []model.CapturedPage, cfg ScrollConfig) (*scriptedEvaluator, *Collector, *ScrollDriver) {
	t.Helper()
	eval := &scriptedEvaluator{ch: make(chan model.CapturedPage, 16), pages: pages}
	col := NewCollector(eval.ch)
	if cfg.ScrollPause == 0 {
		cfg.ScrollPause = 10 * time.Millisecond
	}
	return eval, col, NewScrollDriver(eval, col, cfg)
}

func TestScrollDriver_StopsWhenFeedExhausted(t *testing.T) {
	pages := []model.CapturedPage{
		capturedPage(0, true),
		capturedPage(1, true),
		capturedPage(2, false),
	}
	eval, col, driver := newScrollFixture(t, pages, ScrollConfig{MaxPages: 50})

	require.NoError(t, driver.Run(context.Background()))
	assert.Equal(t, 3, col.Len())
	// one scroll per delivered page, no trailing stale iterations
	assert.Equal(t, 3, eval.scrolls)
}

func TestScrollDriver_StopsAtPageBudget(t *testing.T) {
	pages := []model.CapturedPage{
		capturedPage(0, true),
		capturedPage(1, true),
		capturedPage(2, true),
		capturedPage(3, true),
	}
	_, col, driver := newScrollFixture(t, pages, ScrollConfig{MaxPages: 2})

	require.NoError(t, driver.Run(context.Background()))
	// budget check fires at 2 pages; a page already in flight may still be
	// collected by the final drain
	assert.GreaterOrEqual(t, col.Len(), 2)
	assert.LessOrEqual(t, col.Len(), 3)
}

func TestScrollDriver_StopsAfterStaleIterations(t *testing.T) {
	eval, col, driver := newScrollFixture(t, nil, ScrollConfig{MaxPages: 50, MaxStale: 3})

	require.NoError(t, driver.Run(context.Background()))
	assert.Equal(t, 0, col.Len())
	assert.Equal(t, 3, eval.scrolls)
}

func TestScrollDriver_RunsExtraScriptBeforeScroll(t *testing.T) {
	eval, _, driver := newScrollFixture(t, []model.CapturedPage{capturedPage(0, false)}, ScrollConfig{
		MaxPages:    50,
		ExtraScript: "expandReplies()",
	})

	require.NoError(t, driver.Run(context.Background()))
	require.GreaterOrEqual(t, len(eval.scripts), 2)
	assert.Equal(t, "expandReplies()", eval.scripts[0])
	assert.Contains(t, eval.scripts[1], "window.scrollBy")
}

func TestScrollDriver_ContainerScript(t *testing.T) {
	_, _, driver := newScrollFixture(t, nil, ScrollConfig{Containers: []string{"div[class*='DivCommentList']"}})
	js := driver.scrollScript()
	assert.Contains(t, js, "DivCommentList")
	assert.Contains(t, js, "scrollTop")
}

func TestScrollDriver_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, driver := newScrollFixture(t, nil, ScrollConfig{})
	assert.Error(t, driver.Run(ctx))
}
