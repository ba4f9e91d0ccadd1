package scraper

// InvalidResponseError reports a page whose embedded state could not be
// read, usually a captcha interstitial or an empty shell served to a
// throttled client. The page source is kept for diagnosis.
type InvalidResponseError struct {
	Message    string
	PageSource string
}

func (e *InvalidResponseError) Error() string {
	return e.Message
}
