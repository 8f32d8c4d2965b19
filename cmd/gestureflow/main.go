package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/devadutta/gestureflow/internal/action"
	"github.com/devadutta/gestureflow/internal/app"
	"github.com/devadutta/gestureflow/internal/config"
	"github.com/devadutta/gestureflow/internal/dispatch"
	"github.com/devadutta/gestureflow/internal/gesture"
	"github.com/devadutta/gestureflow/internal/plugin"
	"github.com/devadutta/gestureflow/internal/server"
	"github.com/devadutta/gestureflow/internal/store"
	"github.com/devadutta/gestureflow/internal/transport"
	"github.com/devadutta/gestureflow/internal/tray"
)

func main() {
	fmt.Println("GestureFlow - Gesture Control")

	env, err := config.ParseEnv()
	if err != nil {
		log.Fatalf("Failed to read environment: %v", err)
	}

	if err := os.MkdirAll(env.DataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	if err := os.MkdirAll(env.PluginDir, 0755); err != nil {
		log.Fatalf("Failed to create plugin directory: %v", err)
	}

	st, err := store.New(env.DBPath())
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	profile, err := config.Load(st)
	if err != nil {
		log.Fatalf("Failed to load profile: %v", err)
	}

	port := openTransport(env)
	if port != nil {
		defer port.Close()
	}

	plugins := plugin.NewManager(env.PluginDir)
	if err := plugins.Discover(); err != nil {
		log.Printf("[main] plugin discovery: %v", err)
	} else {
		log.Printf("[main] discovered %d plugin(s) in %s", len(plugins.List()), env.PluginDir)
	}

	executor := action.New(plugins, plugin.NewExecutor(env.PluginTimeoutMs), port)
	caps := executor.Capabilities()
	log.Printf("[main] capabilities: pointer injection %v, transport %v",
		caps.PointerInjection, caps.Transport)

	dispatcher := dispatch.New(profile.DispatchConfig(), executor, caps)
	classifier := gesture.NewClassifier(profile.Thresholds)

	a := app.New(app.Config{
		CameraID:   env.CameraID,
		Classifier: classifier,
		Dispatcher: dispatcher,
	})

	hub := server.NewEventHub()
	t := tray.New()

	a.OnGesture(func(label gesture.Label, pointerActive bool) {
		hub.Publish(server.Event{
			Gesture:       string(label),
			PointerActive: pointerActive,
			Timestamp:     time.Now().UnixMilli(),
		})
		t.SetLastGesture(string(label))
		t.SetPointerActive(pointerActive)
	})

	srv := server.New(server.Config{
		StaticDir: webDir(env.StaticDir),
		Store:     st,
		Camera:    a.Camera(),
		Hub:       hub,
	})
	go func() {
		log.Printf("[main] listening on %s", env.Addr)
		if err := srv.ListenAndServe(env.Addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	a.SetEnabled(true)
	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}

	t.OnToggle(a.SetEnabled)
	t.OnSettings(func() {
		if err := openBrowser(settingsURL(env.Addr)); err != nil {
			log.Printf("[main] open settings: %v", err)
		}
	})

	// Blocks until Quit is chosen from the menu.
	t.Run()

	a.Stop()
}

// openTransport opens the configured serial port. An empty port name
// runs without a transport; "auto" picks the first USB-serial device.
func openTransport(env config.Env) transport.Port {
	name := env.SerialPort
	if name == "" {
		return nil
	}

	if name == "auto" {
		detected, err := transport.Detect()
		if err != nil {
			log.Printf("[main] serial detection: %v, running without transport", err)
			return nil
		}
		name = detected
	}

	port, err := transport.Open(name, env.SerialBaud)
	if err != nil {
		log.Printf("[main] open serial port %s: %v, running without transport", name, err)
		return nil
	}

	log.Printf("[main] serial transport on %s at %d baud", name, env.SerialBaud)
	return port
}

// webDir returns dir if it exists, otherwise empty to skip static
// serving.
func webDir(dir string) string {
	if dir == "" {
		return ""
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return ""
	}
	return dir
}

// settingsURL turns a listen address into a browsable URL.
func settingsURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
