package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"go-job-scraper/internal/browser"
)

// ScreenShotDebugger saves a full page capture when a board returns nothing
type ScreenShotDebugger struct {
	outputDir string
	log       *zap.Logger
	now       func() time.Time
}

func NewScreenShotDebugger(dir string, log *zap.Logger) *ScreenShotDebugger {
	if dir == "" {
		dir = filepath.Join(".", "logs", "screenshots")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ScreenShotDebugger{outputDir: dir, log: log, now: time.Now}
}

// CaptureAndLog is a no-op for pages that cannot take screenshots.
func (s *ScreenShotDebugger) CaptureAndLog(page browser.Page, name, message string) error {
	shooter, ok := page.(browser.Screenshotter)
	if !ok {
		return nil
	}
	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create screenshot dir: %w", err)
	}

	timestamp := s.now().Format("2006-01-02_15-04-05")
	path := filepath.Join(s.outputDir, fmt.Sprintf("%s_%s.png", name, timestamp))
	s.log.Info("📸 "+message, zap.String("path", path))

	if err := shooter.Screenshot(path); err != nil {
		s.log.Warn("⚠️ Failed to capture screenshot", zap.Error(err))
		return err
	}
	return nil
}
