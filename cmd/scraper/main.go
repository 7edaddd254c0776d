package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "job-scraper",
	Short: "Scrape job boards and save matching listings",
	Long: `job-scraper searches Indeed, Glassdoor, LinkedIn and ZipRecruiter for a job
title, filters the listings and saves them to Google Sheets (or a CSV file).

Run it without search flags to be asked for the configuration interactively.`,
	SilenceUsage: true,
	RunE:         runSearch,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
