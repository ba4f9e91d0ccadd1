package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSeeds_ArgsAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seeds.txt")
	require.NoError(t, os.WriteFile(path, []byte("@bob\nalice\n"), 0o644))

	viper.Set("seed-file", path)
	viper.Set("seed-url", "")
	t.Cleanup(func() { viper.Set("seed-file", "") })

	seeds, err := resolveSeeds([]string{"alice", "  carol "})
	require.NoError(t, err)
	// duplicates collapse, first occurrence wins
	assert.Equal(t, []string{"alice", "carol", "bob"}, seeds)
}

func TestResolveSeeds_Empty(t *testing.T) {
	viper.Set("seed-file", "")
	viper.Set("seed-url", "")

	seeds, err := resolveSeeds(nil)
	require.NoError(t, err)
	assert.Empty(t, seeds)
}

func TestFileStem(t *testing.T) {
	assert.Equal(t, "somebody", fileStem("@somebody"))
	assert.Equal(t, "somebody", fileStem("https://www.tiktok.com/@somebody"))
	assert.Equal(t, "video_7301", fileStem("https://www.tiktok.com/@somebody/video/7301?lang=en"))
	assert.Equal(t, "sound_original-sound-7016", fileStem("https://www.tiktok.com/music/original-sound-7016"))
	assert.Equal(t, "tag_fyp", fileStem("https://www.tiktok.com/tag/fyp?lang=en"))
	assert.Equal(t, "fyp", fileStem("#fyp"))
	assert.Equal(t, "we_rd", fileStem("we+rd"))
}

func TestLoadCookies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name": "sessionid", "value": "abc"}]`), 0o644))

	cookies, err := loadCookies(path)
	require.NoError(t, err)
	require.Len(t, cookies, 1)
	assert.Equal(t, "sessionid", cookies[0].Name)

	none, err := loadCookies("")
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = loadCookies(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
