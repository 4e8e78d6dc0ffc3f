package ui

import "sync"

// RenderControl coordinates pause/resume/stop between control
// goroutines and the render goroutine. Administrative changes such as a
// sample rate switch pause the renderer, reconfigure, then resume.
//
// The render goroutine brackets its loop with Attach and Detach. With
// no goroutine attached there is nothing to park, so pause requests
// return at once.
type RenderControl struct {
	mu       sync.Mutex
	cond     *sync.Cond
	pauseReq bool
	paused   bool
	stopped  bool
	attached bool
}

// NewRenderControl creates a control in the running state.
func NewRenderControl() *RenderControl {
	rc := &RenderControl{}
	rc.cond = sync.NewCond(&rc.mu)
	return rc
}

// Attach registers the calling goroutine as the renderer. If a pause
// is in effect it waits for the resume first.
func (rc *RenderControl) Attach() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	for rc.pauseReq && !rc.stopped {
		rc.cond.Wait()
	}
	rc.attached = true
}

// Detach is called when the render goroutine exits. Pending pause
// requests are released.
func (rc *RenderControl) Detach() {
	rc.mu.Lock()
	rc.attached = false
	rc.paused = false
	rc.cond.Broadcast()
	rc.mu.Unlock()
}

// RequestPause asks the render goroutine to pause and blocks until it
// has parked in CheckPause, detached, or Stop is called. With no
// renderer attached it returns immediately and the pause holds off any
// Attach until RequestResume.
func (rc *RenderControl) RequestPause() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.stopped {
		return
	}
	rc.pauseReq = true
	for rc.attached && !rc.paused && !rc.stopped {
		rc.cond.Wait()
	}
}

// RequestResume releases a paused render goroutine.
func (rc *RenderControl) RequestResume() {
	rc.mu.Lock()
	rc.pauseReq = false
	rc.cond.Broadcast()
	rc.mu.Unlock()
}

// WithPaused runs fn while the render goroutine is parked.
func (rc *RenderControl) WithPaused(fn func() error) error {
	rc.RequestPause()
	defer rc.RequestResume()
	return fn()
}

// CheckPause is called by the render goroutine between blocks. When a
// pause is pending it acknowledges and waits until resumed or stopped.
// Returns false if the goroutine should exit.
func (rc *RenderControl) CheckPause() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.stopped {
		return false
	}
	if !rc.pauseReq {
		return true
	}

	rc.paused = true
	rc.cond.Broadcast()
	for rc.pauseReq && !rc.stopped {
		rc.cond.Wait()
	}
	rc.paused = false
	return !rc.stopped
}

// Stop signals the render goroutine to exit and releases any waiters.
func (rc *RenderControl) Stop() {
	rc.mu.Lock()
	rc.stopped = true
	rc.pauseReq = false
	rc.cond.Broadcast()
	rc.mu.Unlock()
}

// ShouldRun reports whether the render goroutine should keep running.
func (rc *RenderControl) ShouldRun() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return !rc.stopped
}

// IsPaused reports whether the render goroutine is parked.
func (rc *RenderControl) IsPaused() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.paused
}
