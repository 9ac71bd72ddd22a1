// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sync"
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeClockNow(t *testing.T) {
	c := Fake(epoch)
	if got := c.Now(); !got.Equal(epoch) {
		t.Errorf("Now() = %v, want %v", got, epoch)
	}
	if got := c.Now(); !got.Equal(epoch) {
		t.Errorf("second Now() = %v, want time to stand still", got)
	}
}

func TestFakeClockAdvanceAndSet(t *testing.T) {
	c := Fake(epoch)
	c.Advance(90 * time.Second)
	if got := c.Now().Sub(epoch); got != 90*time.Second {
		t.Errorf("elapsed after Advance = %v, want 90s", got)
	}

	c.Set(epoch.Add(-time.Hour))
	if got := c.Now(); !got.Equal(epoch.Add(-time.Hour)) {
		t.Errorf("Now() after Set = %v", got)
	}
}

func TestFakeClockStep(t *testing.T) {
	c := Fake(epoch)
	c.Step(time.Second)

	first := c.Now()
	second := c.Now()
	if !first.Equal(epoch) || !second.Equal(epoch.Add(time.Second)) {
		t.Errorf("Now() sequence = %v, %v; want epoch then epoch+1s", first, second)
	}

	c.Step(0)
	third := c.Now()
	fourth := c.Now()
	if !third.Equal(fourth) {
		t.Errorf("Now() after Step(0) = %v then %v, want equal", third, fourth)
	}
}

func TestFakeClockConcurrentAccess(t *testing.T) {
	c := Fake(epoch)
	c.Step(time.Millisecond)

	var group sync.WaitGroup
	for range 8 {
		group.Add(1)
		go func() {
			defer group.Done()
			for range 100 {
				c.Now()
			}
		}()
	}
	group.Wait()

	if got := c.Now(); !got.Equal(epoch.Add(800 * time.Millisecond)) {
		t.Errorf("Now() after 800 steps = %v, want epoch+800ms", got)
	}
}

func TestRealClockImplementsClock(t *testing.T) {
	var _ Clock = Real()
	var _ Clock = Fake(epoch)
}
