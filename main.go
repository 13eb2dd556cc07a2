package main

import (
	"os"

	"github.com/purpom-media-lab/daily-report/cmd"
)

func main() {

	if err := cmd.Root.Execute(); err != nil {
		os.Exit(1)
	}
}
