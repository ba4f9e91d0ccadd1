package common

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateScrapeID(t *testing.T) {
	id := GenerateScrapeID()

	assert.Regexp(t, regexp.MustCompile(`^\d{14}$`), id)

	parsed, err := time.Parse("20060102150405", id)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), parsed, 2*time.Second)
}

func TestCanonicalUsername(t *testing.T) {
	assert.Equal(t, "somebody", CanonicalUsername("somebody"))
	assert.Equal(t, "somebody", CanonicalUsername("@somebody"))
	assert.Equal(t, "somebody", CanonicalUsername("  @somebody\n"))
	assert.Equal(t, "somebody", CanonicalUsername("https://www.tiktok.com/@somebody"))
	assert.Equal(t, "somebody", CanonicalUsername("https://www.tiktok.com/@somebody?lang=en"))
	assert.Equal(t, "somebody", CanonicalUsername("https://www.tiktok.com/@somebody/video/123"))
}

func TestReadSeedsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seeds.txt")
	content := "@alice\n\n# a comment\nhttps://www.tiktok.com/@bob\ncarol\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	seeds, err := ReadSeedsFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol"}, seeds)
}

func TestReadSeedsFromFile_KeepsResourceURLs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seeds.txt")
	content := "https://www.tiktok.com/@somebody/video/7301\n" +
		"https://www.tiktok.com/music/original-sound-7016547803243022337\n" +
		"https://www.tiktok.com/tag/fyp\n" +
		"@somebody\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	seeds, err := ReadSeedsFromFile(path)
	require.NoError(t, err)
	// resource URLs must reach the commands whole; only profile seeds
	// collapse to a username
	assert.Equal(t, []string{
		"https://www.tiktok.com/@somebody/video/7301",
		"https://www.tiktok.com/music/original-sound-7016547803243022337",
		"https://www.tiktok.com/tag/fyp",
		"somebody",
	}, seeds)
}

func TestReadSeedsFromFile_Missing(t *testing.T) {
	_, err := ReadSeedsFromFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
