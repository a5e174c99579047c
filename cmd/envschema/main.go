package main

import (
	"fmt"
	"os"
	"runtime"
)

// Build-time variables, set with -ldflags "-X main.version=..."
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
	goVersion = runtime.Version()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
