package client

import (
	"fmt"
	"time"

	"github.com/faiface/mainthread"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/memmaker/landingmarker/engine/util"
	"github.com/memmaker/landingmarker/game"
	"github.com/pkg/errors"
)

// Window is a plain glfw window without a graphics context. It owns the frame
// loop: every frame it polls input and ticks the clock. The marker state is
// shown in the title bar.
type Window struct {
	window          *glfw.Window
	clock           *game.FrameClock
	marker          *game.LandingMarker
	cursor          *CursorRaySource
	frameDuration   time.Duration
	ticks           uint64
	FramesPerSecond float64
}

// NewWindow must run inside mainthread.Run.
func NewWindow(config game.WindowConfig, clock *game.FrameClock, marker *game.LandingMarker, cursor *CursorRaySource) (*Window, error) {
	w := &Window{
		clock:         clock,
		marker:        marker,
		cursor:        cursor,
		frameDuration: time.Second / 60,
	}
	var initErr error
	mainthread.Call(func() {
		if err := glfw.Init(); err != nil {
			initErr = errors.Wrap(err, "glfw init")
			return
		}
		glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
		glfw.WindowHint(glfw.Resizable, glfw.True)
		window, err := glfw.CreateWindow(config.Width, config.Height, config.Title, nil, nil)
		if err != nil {
			glfw.Terminate()
			initErr = errors.Wrap(err, "create window")
			return
		}
		window.SetCursorPosCallback(w.mousePosCallback)
		window.SetCursorEnterCallback(w.cursorEnterCallback)
		window.SetKeyCallback(w.keyCallback)
		window.SetSizeCallback(w.sizeCallback)
		w.window = window
	})
	if initErr != nil {
		return nil, initErr
	}
	util.LogSystemInfo(fmt.Sprintf("[Window] opened %dx%d", config.Width, config.Height))
	return w, nil
}

func (w *Window) mousePosCallback(_ *glfw.Window, xpos float64, ypos float64) {
	w.cursor.OnMouseMoved(xpos, ypos)
}

func (w *Window) cursorEnterCallback(_ *glfw.Window, entered bool) {
	w.cursor.OnCursorEnter(entered)
}

func (w *Window) sizeCallback(_ *glfw.Window, width int, height int) {
	w.cursor.OnResize(width, height)
}

func (w *Window) keyCallback(window *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	switch key {
	case glfw.KeyEscape:
		window.SetShouldClose(true)
	case glfw.KeyT:
		enabled := w.marker.Toggle()
		util.LogInputDebug(fmt.Sprintf("[Window] marker enabled: %t", enabled))
	}
}

// Run blocks until the window is closed.
func (w *Window) Run() {
	defer w.terminate()
	frameTicker := time.NewTicker(w.frameDuration)
	defer frameTicker.Stop()
	previousTime := time.Now()
	for range frameTicker.C {
		shouldQuit := false
		mainthread.Call(func() {
			glfw.PollEvents()
			shouldQuit = w.window.ShouldClose()
		})
		if shouldQuit {
			return
		}

		now := time.Now()
		elapsed := now.Sub(previousTime).Seconds()
		previousTime = now
		w.clock.Tick(elapsed)

		if elapsed > 0 {
			w.FramesPerSecond = 1.0 / elapsed
		}
		if w.ticks%30 == 0 {
			title := w.statusLine()
			mainthread.CallNonBlock(func() {
				w.window.SetTitle(title)
			})
		}
		w.ticks++
	}
}

func (w *Window) statusLine() string {
	if !w.marker.IsEnabled() {
		return fmt.Sprintf("Landing Marker [off] (T to toggle) FPS: %.0f", w.FramesPerSecond)
	}
	state := w.marker.Last()
	if !state.Valid {
		return fmt.Sprintf("Landing Marker [on] no ray FPS: %.0f", w.FramesPerSecond)
	}
	onTarget := ""
	if state.OnTarget {
		onTarget = " on target: " + state.Target.Name
	}
	point := state.Result.Point
	return fmt.Sprintf("Landing Marker [on] %.2f %.2f %.2f hit=%t%s FPS: %.0f", point.X(), point.Y(), point.Z(), state.Result.Hit, onTarget, w.FramesPerSecond)
}

func (w *Window) terminate() {
	mainthread.Call(func() {
		w.window.Destroy()
		glfw.Terminate()
	})
	util.LogSystemInfo("[Window] closed")
}
