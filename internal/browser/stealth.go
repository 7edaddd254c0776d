package browser

import (
	"context"
	"time"
)

// HumanScroll scrolls down in steps and then back up a little, giving lazy
// loaded result lists a chance to render.
func HumanScroll(ctx context.Context, s Scroller, d Delayer) error {
	for i := 0; i < 5; i++ {
		if err := s.Scroll(540); err != nil {
			return err
		}
		if err := d.Wait(ctx, 500*time.Millisecond, 1500*time.Millisecond); err != nil {
			return err
		}
	}
	//small correction upwards
	return s.Scroll(-200)
}
