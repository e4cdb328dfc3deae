package main

import (
	"errors"
	"flag"
	"log"
	"runtime"

	"megaglow/internal/config"
	"megaglow/internal/game"
	"megaglow/internal/graphics"
	"megaglow/internal/graphics/batch"
	"megaglow/internal/graphics/opengl"
	"megaglow/internal/graphics/postfx"
	"megaglow/internal/graphics/renderer"
	"megaglow/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"
)

const (
	winWidth  = 1280
	winHeight = 720
)

func init() {
	runtime.LockOSThread()
}

func main() {
	preset := flag.String("preset", "Default", "initial bloom preset")
	noisePath := flag.String("noise", "", "glow noise texture (png, jpeg, bmp or tiff); generated when empty")
	fps := flag.Int("fps", config.DefaultFPSLimit, "frame rate cap, 0 disables")
	flag.Parse()

	closer.Bind(func() { log.Println("megaglow: bye") })

	settings := config.NewSettings()
	if err := settings.SelectPreset(*preset); err != nil {
		closer.Fatalln(err)
	}
	settings.SetNoisePath(*noisePath)
	settings.SetFPSLimit(*fps)
	settings.SetClearColor(mgl32.Vec4{0.02, 0.02, 0.05, 1})

	if err := run(settings); err != nil {
		closer.Fatalln(err)
	}
	closer.Close()
}

// run owns every GL object; they are released before the context goes away.
func run(settings *config.Settings) error {
	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	window, err := setupWindow()
	if err != nil {
		return err
	}
	defer window.Destroy()

	dev, err := opengl.NewDevice(window.GetFramebufferSize, window.SwapBuffers)
	if err != nil {
		return err
	}
	fx, err := opengl.LoadEffects(postfx.DefaultTaps)
	if err != nil {
		return err
	}
	defer fx.Release()

	s := newScene()
	w, h := window.GetFramebufferSize()
	camera := graphics.NewCamera(w, h)

	p, err := renderer.New(dev, batch.NewRegistry(batch.DefaultOptions()), settings, fx.Effects,
		renderer.WithCamera(camera),
		renderer.WithPresent(true),
		renderer.WithRenderables(s.cubes, s.billboards),
	)
	if err != nil {
		return err
	}
	defer p.Dispose()
	p.RegisterLights(s.lightList())

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if err := p.Resize(width, height); err != nil && !errors.Is(err, renderer.ErrInvalidSize) {
			log.Printf("megaglow: resize: %v", err)
		}
	})

	im := input.NewInputManager()
	im.SetKeyCallback(window)

	loop := &frameLoop{
		window:   window,
		pipeline: p,
		scene:    s,
		limiter:  game.NewFPSLimiter(settings),
		controls: &game.Controls{
			Input:    im,
			Settings: settings,
			Orbit:    &game.Orbit{Distance: 18, Height: 6},
			OnToggleLights: func(on bool) {
				if on {
					p.RegisterLights(s.lightList())
				} else {
					p.UnregisterLights()
				}
				log.Printf("lights: %v", on)
			},
		},
	}
	loop.controls.OnToggleProfiling = loop.toggleProfiling
	return loop.run()
}

func setupWindow() (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(winWidth, winHeight, "megaglow", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	glfw.SwapInterval(0)

	return window, nil
}
