package main

import (
	"fmt"
	"time"

	"megaglow/internal/game"
	"megaglow/internal/graphics/renderer"
	"megaglow/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// frameLoop drives one frame per iteration until the window closes.
type frameLoop struct {
	window   *glfw.Window
	pipeline *renderer.Pipeline
	scene    *scene
	limiter  *game.FPSLimiter
	controls *game.Controls

	showProfile bool

	// Timing
	start            time.Time
	frames           int
	lastFPSCheckTime time.Time
	lastTime         time.Time
}

func (l *frameLoop) toggleProfiling() { l.showProfile = !l.showProfile }

func (l *frameLoop) run() error {
	l.start = time.Now()
	l.lastTime = l.start
	l.lastFPSCheckTime = l.start

	for !l.window.ShouldClose() {
		if err := l.tick(); err != nil {
			return err
		}
	}
	return nil
}

func (l *frameLoop) tick() error {
	now := time.Now()
	dt := now.Sub(l.lastTime).Seconds()
	l.lastTime = now

	glfw.PollEvents()
	if l.controls.Update(dt) {
		l.window.SetShouldClose(true)
		return nil
	}

	// Minimized windows have no backbuffer to render into.
	if w, h := l.window.GetFramebufferSize(); w == 0 || h == 0 {
		glfw.WaitEvents()
		return nil
	}

	l.controls.Orbit.Apply(l.pipeline.Camera())
	l.scene.animate(now.Sub(l.start).Seconds())

	if err := l.pipeline.Frame(); err != nil {
		return fmt.Errorf("frame %d: %w", l.pipeline.FrameCount(), err)
	}

	l.updateTitle(now)
	l.limiter.Wait()
	return nil
}

func (l *frameLoop) updateTitle(now time.Time) {
	l.frames++
	if now.Sub(l.lastFPSCheckTime) < time.Second {
		return
	}
	title := fmt.Sprintf("megaglow | FPS: %d | %s | blur %.1f",
		l.frames, l.controls.Settings.PresetName(), l.controls.Settings.BlurAmount())
	if l.showProfile {
		title += " | " + profiling.TopN(4)
	}
	l.window.SetTitle(title)
	l.frames = 0
	l.lastFPSCheckTime = now
}
