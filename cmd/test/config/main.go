package main

import (
	"fmt"
	"log"
	"os"

	"go-job-scraper/internal/config"
)

func main() {
	path := config.DefaultPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	fmt.Println("🔧 Testing config loading...")
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Path == "" {
		fmt.Printf("⚠️ %s not found, showing defaults\n", path)
	}
	fmt.Printf("✅ Config loaded successfully!\n")
	fmt.Printf("   Driver: %s (headless=%t)\n", cfg.Browser.Driver, cfg.Browser.Headless)
	fmt.Printf("   Viewport: %dx%d\n", cfg.Browser.ViewportWidth, cfg.Browser.ViewportHeight)
	fmt.Printf("   Sheets: enabled=%t name=%q id=%q\n", cfg.Sheets.Enabled, cfg.Sheets.SpreadsheetName, cfg.Sheets.SpreadsheetID)
	fmt.Printf("   CSV dir: %s\n", cfg.Output.Dir)
	fmt.Printf("   Telegram summary: %t\n", cfg.Telegram.Enabled())
	fmt.Printf("   Run timeout: %s\n", cfg.RunTimeout)
}
