package common

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ScraperConfig carries the settings shared by every scrape command. It is
// populated from flags and the config file by the CLI layer.
type ScraperConfig struct {
	Headless          bool
	UserAgent         string
	ChromePath        string
	ProxyURL          string
	StorageRoot       string
	ScrapeID          string
	ScrapeLabel       string // User-defined label for the run (e.g., "creator-study")
	CookiesFile       string // Path to a JSON cookie export for authenticated scrapes
	Concurrency       int    // Parallel browser sessions for batch runs
	MaxPages          int    // Maximum captured pages per target
	MaxStale          int    // Quiet scroll iterations tolerated before giving up
	ScrollPauseMillis int    // Longest wait per scroll for a new page, in milliseconds
	NavigationTimeout time.Duration
	RequestsPerMinute int
	RequestsPerHour   int
	CooldownMinutes   int
}

// ScrollPause returns the scroll pause as a duration.
func (c ScraperConfig) ScrollPause() time.Duration {
	return time.Duration(c.ScrollPauseMillis) * time.Millisecond
}

// GenerateScrapeID generates a unique identifier based on the current
// timestamp, formatted as "YYYYMMDDHHMMSS".
func GenerateScrapeID() string {
	return time.Now().Format("20060102150405")
}

// CanonicalUsername normalizes a seed into a bare username: leading @ and
// whitespace are stripped, and profile URLs are reduced to their username
// segment.
func CanonicalUsername(seed string) string {
	name := strings.TrimSpace(seed)
	if i := strings.Index(name, "tiktok.com/@"); i >= 0 {
		name = name[i+len("tiktok.com/@"):]
		if j := strings.IndexAny(name, "/?"); j >= 0 {
			name = name[:j]
		}
	}
	return strings.TrimPrefix(name, "@")
}

// DownloadSeedFile downloads a seed list from a URL and saves it to a
// temporary location. Returns the path to the downloaded file.
func DownloadSeedFile(url string) (string, error) {
	log.Info().Str("url", url).Msg("Downloading seed file")

	client := &http.Client{Timeout: 30 * time.Second}
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bad status code: %d", resp.StatusCode)
	}

	filename := filepath.Join(os.TempDir(), fmt.Sprintf("seeds_%s.txt", GenerateScrapeID()))
	out, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("failed to write to file: %w", err)
	}

	log.Info().Str("file", filename).Msg("Seed file downloaded successfully")
	return filename, nil
}

// resourcePathMarkers identify seed lines that address a resource page
// rather than a profile. Such lines must survive verbatim, since the
// commands consuming them navigate to the full URL.
var resourcePathMarkers = []string{"/video/", "/music/", "/tag/"}

// ReadSeedsFromFile reads seeds from a file, one per line. Empty lines and
// lines starting with '#' are ignored. Profile seeds are normalized to a
// bare username; video, sound, and tag URLs are kept whole.
func ReadSeedsFromFile(filename string) ([]string, error) {
	log.Debug().Str("filename", filename).Msg("Reading seeds from file")

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var seeds []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if isResourceSeed(line) {
			seeds = append(seeds, line)
			continue
		}
		seeds = append(seeds, CanonicalUsername(line))
	}

	log.Debug().Int("seed_count", len(seeds)).Msg("Seeds read from file")
	return seeds, nil
}

func isResourceSeed(line string) bool {
	for _, marker := range resourcePathMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}
