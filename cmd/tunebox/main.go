package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	cli "github.com/spf13/pflag"

	"github.com/lmittmann/tint"
	log "log/slog"

	"tunebox/internal/bus"
	"tunebox/internal/notify"
	"tunebox/internal/proc"
	"tunebox/internal/router"
	"tunebox/internal/session"
	"tunebox/internal/spotifyd"
	"tunebox/internal/state"
	"tunebox/internal/stt"
	"tunebox/internal/volume"
)

var logLevelMap = map[string]log.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func main() {
	envFile := cli.StringP("env", "e", ".env", "Env file path")
	logLevel := cli.StringP("log", "l", "info", "Log level")
	broker := cli.StringP("broker", "b", "", "MQTT broker address (overrides TUNEBOX_BROKER)")
	noBus := cli.Bool("no-bus", false, "Run without the message bus (console only)")
	noSpotifyd := cli.Bool("no-spotifyd", false, "Do not supervise the spotifyd daemon")
	cli.Parse()

	log.SetDefault(log.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: logLevelMap[*logLevel],
	})))

	log.Info("Booting up")

	godotenv.Load(*envFile)

	brokerAddr := *broker
	if brokerAddr == "" {
		brokerAddr = envOr("TUNEBOX_BROKER", "tcp://localhost:1883")
	}

	captureSpec := proc.CaptureSpec{
		Device: envOr("TUNEBOX_MIC", "plughw:4,0"),
		Path:   envOr("TUNEBOX_FILE", "songrequest.wav"),
	}
	player := proc.Player{Device: envOr("TUNEBOX_SPEAKER", "plughw:3,0")}
	whisper := &stt.Transcriber{
		Binary:  envOr("WHISPER_PATH", "whisper.cpp/build/bin/whisper-cli"),
		Model:   envOr("WHISPER_MODEL", "whisper.cpp/models/ggml-tiny.en.bin"),
		Timeout: 60 * time.Second,
	}

	// Volume monitoring starts enabled, like the rest of the rig.
	st := state.New(true)
	sess := session.NewManager(st, session.CaptureFunc(func() (session.Handle, error) {
		return proc.Start(captureSpec)
	}), 5*time.Second)

	rt := router.New(st, sess, whisper, player)
	rt.SetNotifier(notify.NewChimer(envOr("TUNEBOX_CHIME", "chime.mp3")))

	if !*noSpotifyd {
		if err := spotifyd.Ensure(envOr("SPOTIFYD_PATH", "spotifyd")); err != nil {
			log.Warn("Failed to start spotifyd", "err", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var gw *bus.Gateway
	if !*noBus {
		busCfg := bus.Config{
			Addr:         brokerAddr,
			ClientID:     "tunebox",
			ControlTopic: envOr("TUNEBOX_CONTROL_TOPIC", "voice/control"),
			SearchTopic:  envOr("TUNEBOX_SEARCH_TOPIC", "voice/spotify"),
			StatusTopic:  envOr("TUNEBOX_STATUS_TOPIC", "voice/status"),
		}

		dialCtx, dialCancel := context.WithTimeout(ctx, 10*time.Second)
		var err error
		gw, err = bus.Dial(dialCtx, busCfg, func(payload string) {
			cmd, ok := router.ParseControl(payload)
			if !ok {
				log.Warn("Unknown control payload", "payload", payload)
				return
			}
			log.Info("Received control command", "payload", payload)
			rt.Enqueue(cmd)
		})
		dialCancel()
		if err != nil {
			log.Error("Failed to connect to broker", "addr", brokerAddr, "err", err)
			os.Exit(1)
		}
		rt.SetPublisher(gw)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		mon := &volume.Monitor{
			Sensor: &volume.IIOSensor{
				Path: envOr("TUNEBOX_SENSOR", "/sys/bus/iio/devices/iio:device0/in_voltage0_raw"),
				Max:  1023,
			},
			Setter: volume.Amixer{},
			State:  st,
		}
		mon.Run(ctx)
	}()

	go consoleLoop(rt)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		rt.Enqueue(router.Command{Kind: router.KindQuit})
	}()

	printBanner()
	log.Info("System ready")

	rt.Run(ctx)

	log.Info("Shutting down")
	cancel()
	sess.ForceStop()
	if gw != nil {
		gw.ClearDashboard(context.Background())
		gw.Close()
	}
	if !*noSpotifyd {
		spotifyd.Stop()
	}
	wg.Wait()
	log.Info("Goodbye")
}

func consoleLoop(rt *router.Router) {
	sc := bufio.NewScanner(os.Stdin)
	fmt.Print("Enter command (R/P/T/V/Q): ")
	for sc.Scan() {
		line := sc.Text()
		if cmd, ok := router.ParseConsole(line); ok {
			rt.Enqueue(cmd)
		} else if strings.TrimSpace(line) != "" {
			fmt.Println("Invalid option, use R, P, T, V, or Q.")
		}
		fmt.Print("Enter command (R/P/T/V/Q): ")
	}
}

func printBanner() {
	fmt.Println("Commands:")
	fmt.Println("  R = Record voice command (press again to stop)")
	fmt.Println("  P = Play last recording")
	fmt.Println("  T = Transcribe & send to Spotify")
	fmt.Println("  V = Toggle volume monitoring")
	fmt.Println("  Q = Quit")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
