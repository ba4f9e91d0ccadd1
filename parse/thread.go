package parse

import (
	"github.com/researchaccelerator-hub/tiktok-scraper/model"
)

// Threads groups a flat comment slice into parent threads with their replies
// attached. Replies whose parent never appeared in the capture are returned
// separately rather than dropped. A single pass builds the parent index and a
// second pass attaches replies, so the cost stays linear in the input size.
// Association is one level deep: replies to replies attach to the top-level
// parent named by their reply_id.
func Threads(comments []model.CommentRecord) ([]model.CommentThread, []model.CommentRecord) {
	threads := make([]model.CommentThread, 0, len(comments))
	index := make(map[string]int, len(comments))
	for _, c := range comments {
		if c.IsReply {
			continue
		}
		index[c.CommentID] = len(threads)
		threads = append(threads, model.CommentThread{Comment: c})
	}

	var orphans []model.CommentRecord
	for _, c := range comments {
		if !c.IsReply {
			continue
		}
		i, ok := index[c.ReplyID]
		if !ok {
			orphans = append(orphans, c)
			continue
		}
		threads[i].Replies = append(threads[i].Replies, c)
	}
	return threads, orphans
}
