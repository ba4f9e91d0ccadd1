package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/researchaccelerator-hub/tiktok-scraper/model"
)

func comment(id, replyID string) model.CommentRecord {
	return model.CommentRecord{
		CommentID: id,
		ReplyID:   replyID,
		IsReply:   replyID != "",
	}
}

func TestThreads_AttachesReplies(t *testing.T) {
	threads, orphans := Threads([]model.CommentRecord{
		comment("a", ""),
		comment("b", ""),
		comment("a1", "a"),
		comment("b1", "b"),
		comment("a2", "a"),
	})

	assert.Empty(t, orphans)
	require.Len(t, threads, 2)
	assert.Equal(t, "a", threads[0].Comment.CommentID)
	require.Len(t, threads[0].Replies, 2)
	assert.Equal(t, "a1", threads[0].Replies[0].CommentID)
	assert.Equal(t, "a2", threads[0].Replies[1].CommentID)
	require.Len(t, threads[1].Replies, 1)
	assert.Equal(t, "b1", threads[1].Replies[0].CommentID)
}

func TestThreads_OrphanedReplies(t *testing.T) {
	threads, orphans := Threads([]model.CommentRecord{
		comment("a", ""),
		comment("x1", "missing"),
		comment("a1", "a"),
	})

	require.Len(t, threads, 1)
	require.Len(t, orphans, 1)
	assert.Equal(t, "x1", orphans[0].CommentID)
}

func TestThreads_EveryCommentAccountedFor(t *testing.T) {
	input := []model.CommentRecord{
		comment("a", ""),
		comment("a1", "a"),
		comment("b", ""),
		comment("x1", "gone"),
		comment("x2", "gone"),
	}

	threads, orphans := Threads(input)
	total := len(orphans)
	for _, th := range threads {
		total += 1 + len(th.Replies)
	}
	assert.Equal(t, len(input), total)
}

func TestThreads_PreservesOrder(t *testing.T) {
	threads, _ := Threads([]model.CommentRecord{
		comment("c", ""),
		comment("a", ""),
		comment("b", ""),
	})

	require.Len(t, threads, 3)
	assert.Equal(t, "c", threads[0].Comment.CommentID)
	assert.Equal(t, "a", threads[1].Comment.CommentID)
	assert.Equal(t, "b", threads[2].Comment.CommentID)
}

func TestThreads_Empty(t *testing.T) {
	threads, orphans := Threads(nil)
	assert.Empty(t, threads)
	assert.Empty(t, orphans)
}
