// Package cli wires the scrape operations into a command-line interface.
// Flags can also be set through a config file or TIKTOK_SCRAPER_* environment
// variables; precedence is flags, then environment, then file.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/researchaccelerator-hub/tiktok-scraper/common"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "tiktok-scraper",
	Short: "Scrape TikTok videos, comments, profiles, and follow lists",
	Long: `tiktok-scraper drives a real Chrome browser, captures the JSON the
web app fetches while scrolling, and writes flattened records to disk.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
		return initConfig()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default $HOME/.tiktok-scraper.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.Bool("headless", true, "run the browser without a window")
	flags.String("chrome-path", "", "path to the Chrome binary")
	flags.String("proxy", "", "proxy server URL")
	flags.String("user-agent", "", "override the browser user agent")
	flags.String("storage-root", "./output", "directory for scraped records")
	flags.String("scrape-id", "", "resume a previous run by its ID")
	flags.String("label", "", "free-form label for the run")
	flags.String("cookies-file", "", "JSON file with session cookies")
	flags.String("seed-file", "", "file with one seed per line")
	flags.String("seed-url", "", "URL of a seed file to download")
	flags.Int("concurrency", 1, "parallel browser sessions")
	flags.Int("max-pages", 10, "captured pages per target")
	flags.Int("max-stale", 5, "quiet scroll iterations before stopping")
	flags.Int("scroll-pause-ms", 2000, "longest wait per scroll in milliseconds")
	flags.Duration("navigation-timeout", 30*time.Second, "page load timeout")
	flags.Int("requests-per-minute", 10, "request budget per minute (0 disables)")
	flags.Int("requests-per-hour", 200, "request budget per hour (0 disables)")
	flags.Int("cooldown-minutes", 5, "cooldown after throttling is detected")

	if err := viper.BindPFlags(flags); err != nil {
		log.Fatal().Err(err).Msg("Failed to bind flags")
	}
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".tiktok-scraper")
	}

	viper.SetEnvPrefix("TIKTOK_SCRAPER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		log.Debug().Str("file", viper.ConfigFileUsed()).Msg("Config file loaded")
	}
	return nil
}

// loadConfig materializes the shared configuration from viper.
func loadConfig() common.ScraperConfig {
	cfg := common.ScraperConfig{
		Headless:          viper.GetBool("headless"),
		UserAgent:         viper.GetString("user-agent"),
		ChromePath:        viper.GetString("chrome-path"),
		ProxyURL:          viper.GetString("proxy"),
		StorageRoot:       viper.GetString("storage-root"),
		ScrapeID:          viper.GetString("scrape-id"),
		ScrapeLabel:       viper.GetString("label"),
		CookiesFile:       viper.GetString("cookies-file"),
		Concurrency:       viper.GetInt("concurrency"),
		MaxPages:          viper.GetInt("max-pages"),
		MaxStale:          viper.GetInt("max-stale"),
		ScrollPauseMillis: viper.GetInt("scroll-pause-ms"),
		NavigationTimeout: viper.GetDuration("navigation-timeout"),
		RequestsPerMinute: viper.GetInt("requests-per-minute"),
		RequestsPerHour:   viper.GetInt("requests-per-hour"),
		CooldownMinutes:   viper.GetInt("cooldown-minutes"),
	}
	if cfg.ScrapeID == "" {
		cfg.ScrapeID = common.GenerateScrapeID()
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return cfg
}
