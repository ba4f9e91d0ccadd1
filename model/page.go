package model

// CapturedPage is one decoded response from a paginated list endpoint,
// held only for the duration of a single extraction. Items keep the raw
// decoded shape; flattening happens after capture stops.
type CapturedPage struct {
	// Endpoint is the label of the endpoint definition that matched this page.
	Endpoint string
	// Seq is the capture order, starting at 0. Two pages for the same
	// logical cursor can both be captured if the frontend retries a
	// request; nothing deduplicates them at this layer.
	Seq int
	// Items is the page's item array, possibly empty.
	Items []RawItem
	// HasMore is the endpoint's continuation flag. The field name varies
	// per endpoint (hasMore / has_more); the tap normalizes it here.
	HasMore bool
	// Cursor is the opaque continuation value, normalized to a string.
	Cursor string
}
