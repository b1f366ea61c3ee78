// This file is part of calcore.
//
// calcore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// calcore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with calcore.  If not, see <https://www.gnu.org/licenses/>.

// Package limiter provides a rough and ready way of limiting events to a fixed
// rate.
//
// A new FpsLimiter can be created with:
//
//	fps := limiter.NewFPSLimiter(60)
//	defer fps.Stop()
//
// Operations can then be stalled with the Wait() function. For example:
//
//	for {
//		fps.Wait()
//		renderImage()
//	}
//
// Or the channel returned by C() can be used in a select statement.
package limiter

import (
	"sync/atomic"
	"time"
)

// FpsLimiter will trigger every frames per second
type FpsLimiter struct {
	secondsPerFrame atomic.Int64

	tick chan bool
	done chan bool
}

// NewFPSLimiter is the preferred method of initialisation for FpsLimiter
// type. A limit of zero or less is treated as one.
func NewFPSLimiter(framesPerSecond int) *FpsLimiter {
	lim := &FpsLimiter{
		tick: make(chan bool),
		done: make(chan bool),
	}
	lim.SetLimit(framesPerSecond)

	// run ticker concurrently. the sleep period is adjusted every frame to
	// correct for the time taken to deliver the tick
	go func() {
		adjust := time.Duration(0)
		t := time.Now()
		for {
			select {
			case lim.tick <- true:
			case <-lim.done:
				return
			}

			spf := time.Duration(lim.secondsPerFrame.Load())
			time.Sleep(max(spf+adjust, 0))

			nt := time.Now()
			adjust -= nt.Sub(t) - spf
			adjust = min(max(adjust, -spf), spf)
			t = nt
		}
	}()

	return lim
}

// SetLimit changes the limit at which the FpsLimiter waits
func (lim *FpsLimiter) SetLimit(framesPerSecond int) {
	framesPerSecond = max(framesPerSecond, 1)
	lim.secondsPerFrame.Store(int64(time.Second / time.Duration(framesPerSecond)))
}

// Limit returns the current limit in frames per second.
func (lim *FpsLimiter) Limit() int {
	return int(time.Second / time.Duration(lim.secondsPerFrame.Load()))
}

// Wait will block until trigger
func (lim *FpsLimiter) Wait() {
	<-lim.tick
}

// C returns the channel on which the trigger is delivered.
func (lim *FpsLimiter) C() <-chan bool {
	return lim.tick
}

// HasWaited will return true if time has already elapsed and false it it is
// still yet to happen
func (lim *FpsLimiter) HasWaited() bool {
	select {
	case <-lim.tick:
		return true
	default:
		// default case means that the channel receiving case doesn't block
		return false
	}
}

// Stop the limiter. The limiter should not be used after Stop() has been
// called.
func (lim *FpsLimiter) Stop() {
	close(lim.done)
}
