package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"go-job-scraper/internal/browser"
	"go-job-scraper/internal/config"
	"go-job-scraper/internal/scraper"
	"go-job-scraper/internal/scraper/glassdoor"
	"go-job-scraper/internal/scraper/indeed"
	"go-job-scraper/internal/scraper/linkedin"
	"go-job-scraper/internal/scraper/ziprecruiter"
	"go-job-scraper/internal/search"
	"go-job-scraper/utils"
)

// Scrapes a single board with the configured driver and saves a screenshot.
func main() {
	source := pflag.String("source", "Indeed", "Board to scrape")
	title := pflag.String("title", "software engineer", "Job title")
	where := pflag.String("location", "", "Location")
	cfgPath := pflag.String("config", config.DefaultPath, "Config file")
	pflag.Parse()

	fmt.Println("🌐 Testing browser driver...")

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	src, err := search.ParseSource(*source)
	if err != nil {
		log.Fatalf("%v", err)
	}
	zl, _ := zap.NewDevelopment()
	defer zl.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RunTimeout)
	defer cancel()

	session, err := browser.Launch(ctx, cfg.BrowserOptions(zl))
	if err != nil {
		log.Fatalf("Failed to launch %s: %v", cfg.Browser.Driver, err)
	}
	defer session.Close()
	fmt.Printf("✅ %s started\n", cfg.Browser.Driver)

	page, err := session.NewPage()
	if err != nil {
		log.Fatalf("Failed to create page: %v", err)
	}

	var s scraper.Scraper
	d := browser.RandomDelayer{}
	switch src {
	case search.Indeed:
		s = indeed.NewScraper(zl, d)
	case search.Glassdoor:
		s = glassdoor.NewScraper(zl, d)
	case search.LinkedIn:
		s = linkedin.NewScraper(zl, d)
	case search.ZipRecruiter:
		s = ziprecruiter.NewScraper(zl, d)
	}

	f := &search.Filters{JobTitle: *title, Location: *where, Sources: []search.Source{src}}
	jobs, err := s.Scrape(ctx, page, f)
	if err != nil {
		log.Fatalf("Failed to scrape %s: %v", src, err)
	}
	fmt.Printf("✅ Found %d jobs on %s\n", len(jobs), src)
	for i, j := range jobs {
		if i == 3 {
			break
		}
		fmt.Printf("   %s @ %s (%s)\n", j.Title, j.Company, j.Link)
	}

	dir := filepath.Join(os.TempDir(), "job-scraper")
	if err := utils.NewScreenShotDebugger(dir, zl).CaptureAndLog(page, "smoke_"+s.Name(), "browser smoke test"); err != nil {
		log.Printf("Failed to take screenshot: %v", err)
	} else {
		fmt.Printf("📸 Screenshot saved under %s\n", dir)
	}
	fmt.Println("✨ Test complete!")
}
