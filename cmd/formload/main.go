// Package main provides the formload CLI.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitUserError)
	}
}
