package main

import (
	"github.com/rs/zerolog"

	"github.com/researchaccelerator-hub/tiktok-scraper/cli"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	cli.Execute()
}
