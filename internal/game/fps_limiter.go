package game

import (
	"time"

	"mini-voxel/internal/config"
)

// FPSLimiter paces the frame loop to config.GetFPSLimit.
type FPSLimiter struct {
	next time.Time
	now  func() time.Time
	wait func(time.Duration)
}

func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{now: time.Now, wait: time.Sleep}
}

// Wait blocks until the next frame is due. It sleeps most of the interval
// and spins for the last 200µs.
func (f *FPSLimiter) Wait() {
	limit := config.GetFPSLimit()
	if limit <= 0 {
		f.next = time.Time{}
		return
	}
	target := time.Second / time.Duration(limit)

	if f.next.IsZero() {
		f.next = f.now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := f.next.Sub(f.now())
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			f.wait(remaining - 200*time.Microsecond)
		}
	}

	// resync after a hitch instead of rushing frames to catch up
	if late := f.now().Sub(f.next); late > target {
		f.next = f.now()
	}
}
