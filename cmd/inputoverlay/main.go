// InputOverlay - keyboard and mouse activity overlay
// A screen overlay showing recent keys and mouse buttons, with a follow
// viewport magnifier, a lens magnifier and a pointer highlight.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"inputoverlay/internal/app"
	"inputoverlay/internal/autostart"
	"inputoverlay/internal/config"
	"inputoverlay/internal/display"
	"inputoverlay/internal/eventloop"
	"inputoverlay/internal/hotkey"
	"inputoverlay/internal/input"
	"inputoverlay/internal/osutils"
	"inputoverlay/internal/tray"
	"inputoverlay/internal/win32"
)

var (
	version  = "0.1.0"
	listMons = flag.Bool("list", false, "List connected displays")
	showVer  = flag.Bool("version", false, "Show version")
	cfgPath  = flag.String("config", "", "Path to the config file")
	verbose  = flag.Bool("verbose", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("inputoverlay version %s\n", version)
		return
	}
	app.Debug = *verbose

	// Initialize config
	var cfgMgr *config.Manager
	if *cfgPath != "" {
		cfgMgr = config.NewManagerAt(*cfgPath)
	} else {
		var err error
		cfgMgr, err = config.NewManager()
		if err != nil {
			log.Fatalf("Failed to initialize config: %v", err)
		}
	}
	if err := cfgMgr.Load(); err != nil {
		log.Printf("Warning: failed to load config: %v", err)
	}

	// Handle --list flag
	if *listMons {
		listDisplays()
		return
	}

	// Default: run as background service
	runService(cfgMgr)
}

func listDisplays() {
	layout, err := display.Layout(display.NewProvider())
	if err != nil {
		log.Fatalf("Failed to list displays: %v", err)
	}

	fmt.Println("Connected Displays:")
	fmt.Println("-------------------")
	for _, d := range layout.Displays() {
		fmt.Printf("Name: %s\n", d.Name)
		fmt.Printf("  Bounds: %v (%dx%d)\n", d.Bounds, d.Bounds.Width(), d.Bounds.Height())
		fmt.Printf("  Work area: %v\n", d.WorkArea)
		if d.Primary {
			fmt.Printf("  Primary: ✓\n")
		}
		fmt.Println()
	}
	fmt.Printf("Virtual desktop: %v\n", layout.VirtualBounds())
}

func runService(cfgMgr *config.Manager) {
	log.Println("InputOverlay starting...")

	if err := osutils.SetDPIAware(); err != nil {
		log.Printf("Warning: %v", err)
	}
	if !osutils.IsAdmin() {
		log.Println("Note: not elevated; input to elevated windows is not visible to the hooks")
	}

	cfg := cfgMgr.Get()
	loop := eventloop.New()
	ui, err := win32.Start(win32.Options{
		Loop:          loop,
		Displays:      display.NewProvider(),
		OverlayWidth:  cfg.Overlay.Width,
		OverlayHeight: cfg.Overlay.Height,
	})
	if err != nil {
		log.Fatalf("Failed to start UI thread: %v", err)
	}
	frames := eventloop.NewFrames(loop, win32.WaitForVBlank)

	// Tray instance
	t := tray.New("InputOverlay", "InputOverlay - input visualizer")
	var menu struct{ overlay, viewport, lens, pointer int }

	a := app.New(app.Options{
		Loop:   loop,
		Frames: frames,
		Host:   ui.Host(),
		Config: cfgMgr,
		NewHook: func(h input.Handler, g *input.Guard) app.Hook {
			return input.NewHook(h, g)
		},
		Autostart: autostart.Set,
		OnStatus: func(s app.Status) {
			t.SetItemChecked(menu.overlay, s.OverlayVisible)
			t.SetItemChecked(menu.viewport, s.ViewportOpen)
			t.SetItemChecked(menu.lens, s.LensOpen)
			t.SetItemChecked(menu.pointer, s.PointerOn)
		},
	})

	// Tray clicks arrive on systray goroutines; actions run on the loop
	dispatch := func(action hotkey.Action) func() {
		return func() { loop.Post(func() { a.Dispatch(action) }) }
	}
	t.AddMenuItem("Settings...", dispatch(hotkey.ActionSettings))
	t.AddMenuItem("Reload settings", func() {
		if err := cfgMgr.Load(); err != nil {
			log.Printf("Config: Reload failed: %v", err)
		}
	})
	t.AddSeparator()
	menu.overlay = t.AddCheckboxItem("Show overlay", true, dispatch(hotkey.ActionVisibility))
	menu.viewport = t.AddCheckboxItem("Follow viewport", false, dispatch(hotkey.ActionFollowViewport))
	menu.lens = t.AddCheckboxItem("Magnifier", false, dispatch(hotkey.ActionMagnifier))
	menu.pointer = t.AddCheckboxItem("Pointer highlight", cfg.Pointer.Enabled, dispatch(hotkey.ActionPointer))
	t.AddSeparator()
	t.AddMenuItem("Quit", func() {
		t.Stop()
	})

	started := make(chan error, 1)
	loop.Post(func() { started <- a.Start() })
	if err := <-started; err != nil {
		ui.Stop()
		log.Fatalf("Failed to start overlay: %v", err)
	}

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutting down...")
		t.Stop()
	}()

	log.Println("InputOverlay running. Press Ctrl+C to stop.")
	t.Run()

	stopped := make(chan struct{})
	loop.Post(func() {
		a.Stop()
		close(stopped)
	})
	<-stopped
	ui.Stop()
	loop.Close()
}
