package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/nstehr/armada/agent"
	"github.com/nstehr/armada/ipc"
	"github.com/nstehr/armada/nav"
	"github.com/nstehr/armada/rules"
)

const banner = `
 ▄▄▄       ██▀███   ███▄ ▄███▓ ▄▄▄      ▓█████▄  ▄▄▄
▒████▄    ▓██ ▒ ██▒▓██▒▀█▀ ██▒▒████▄    ▒██▀ ██▌▒████▄
▒██  ▀█▄  ▓██ ░▄█ ▒▓██    ▓██░▒██  ▀█▄  ░██   █▌▒██  ▀█▄
░██▄▄▄▄██ ▒██▀▀█▄  ▒██    ▒██ ░██▄▄▄▄██ ░▓█▄   ▌░██▄▄▄▄██
 ▓█   ▓██▒░██▓ ▒██▒▒██▒   ░██▒ ▓█   ▓██▒░▒████▓  ▓█   ▓██▒

Per-Turn Fleet Command`

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	socketPath := flag.String("socket", envOr("ARMADA_SOCKET", "/tmp/armada.sock"), "unix socket to listen on")
	tuningPath := flag.String("tuning", os.Getenv("ARMADA_TUNING"), "YAML tuning file; reloaded on SIGHUP")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(os.Getenv("ARMADA_LOG_LEVEL")),
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	slog.Info("starting armada")

	tuning := rules.DefaultTuning()
	if *tuningPath != "" {
		t, err := rules.LoadTuning(*tuningPath)
		if err != nil {
			slog.Error("failed to load tuning", "path", *tuningPath, "error", err)
			os.Exit(1)
		}
		tuning = t
	}
	// Fail fast on gates that do not compile rather than on the first connection.
	if _, err := rules.NewEngine(tuning, nav.Direct{}); err != nil {
		slog.Error("invalid tuning", "error", err)
		os.Exit(1)
	}
	reloader := agent.NewReloader(*tuningPath, tuning)

	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(*socketPath); err != nil {
		slog.Error("failed to clean up socket", "path", *socketPath, "error", err)
		os.Exit(1)
	}

	listener, err := net.Listen("unix", *socketPath)
	if err != nil {
		slog.Error("failed to listen on socket", "path", *socketPath, "error", err)
		os.Exit(1)
	}
	defer listener.Close()
	defer os.Remove(*socketPath)

	slog.Info("listening on domain socket", "path", *socketPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go reloader.Start(ctx)
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				reloader.Trigger()
			}
		}
	}()

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return
				default:
					slog.Error("failed to accept connection", "error", err)
					continue
				}
			}
			slog.Info("new connection accepted")
			go handleConn(conn, reloader)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
}

// handleConn plays one match. Each connection gets its own engine so the
// watch-list and rally planet never leak between matches.
func handleConn(conn net.Conn, reloader *agent.Reloader) {
	engine, err := rules.NewEngine(reloader.Current(), nav.Direct{})
	if err != nil {
		slog.Error("failed to build engine", "error", err)
		conn.Close()
		return
	}
	unregister := reloader.Register(engine)
	defer unregister()

	c := ipc.NewConnection(conn, nil)
	a := agent.New(c, engine)
	c.RegisterHandler(ipc.TypeHello, a.HandleHello)
	c.RegisterHandler(ipc.TypeGameState, a.HandleGameState)
	c.ReadLoop()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
