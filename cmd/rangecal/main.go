package main

import (
	"context"
	"flag"
	"net"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"rangecal/internal/calendar"
	"rangecal/internal/capture"
	"rangecal/internal/config"
	appLog "rangecal/internal/log"
	"rangecal/internal/web"
)

var version = "0.1.0-dev"

// flagConfig holds CLI flag values.
type flagConfig struct {
	configPath string
	listen     string
	snapshot   string
	month      string
	locale     string
}

func main() {
	flags := parseFlags()

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}
	appLog.SetLevel(appLog.ParseLevel(conf.LogLevel))
	appLog.Info("rangecal starting", "version", version)

	// CLI --listen overrides config file listen if provided.
	if flags.listen != "" {
		conf.Listen = flags.listen
	}

	appLog.Info("effective config",
		"listen", conf.Listen,
		"locale", conf.Locale,
		"custom_weekday_labels", len(conf.WeekdayLabels) == 7,
		"log_level", conf.LogLevel,
		"session_idle", conf.SessionIdle().String(),
		"session_sweep", conf.SessionSweep,
		"basic_auth", conf.BasicAuth != nil,
		"snapshot", flags.snapshot,
	)

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if flags.snapshot != "" {
		if err := runSnapshot(ctx, conf, flags); err != nil {
			appLog.Error("snapshot failed", err, "output", flags.snapshot)
			os.Exit(1)
		}
		appLog.Info("snapshot written", "output", flags.snapshot)
		return
	}

	if err := web.StartServer(ctx, conf); err != nil {
		appLog.Error("HTTP server failed", err, "listen", conf.Listen)
		os.Exit(1)
	}
	appLog.Info("rangecal exiting")
}

// runSnapshot serves a throwaway picker on a loopback port, captures it to a
// PNG and shuts the server down again.
func runSnapshot(ctx context.Context, conf *config.Config, flags flagConfig) error {
	if flags.month != "" {
		if _, err := calendar.ParseMonth(flags.month); err != nil {
			return err
		}
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return err
	}

	srvCtx, stop := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() {
		done <- web.NewServer(conf).Serve(srvCtx, ln)
	}()

	target := url.URL{Scheme: "http", Host: ln.Addr().String(), Path: "/"}
	q := url.Values{}
	if flags.month != "" {
		q.Set("month", flags.month)
	}
	if flags.locale != "" {
		q.Set("locale", flags.locale)
	}
	target.RawQuery = q.Encode()
	if conf.BasicAuth != nil {
		target.User = url.UserPassword(conf.BasicAuth.Username, conf.BasicAuth.Password)
	}

	captureErr := capture.CapturePickerPNG(ctx, capture.CaptureOptions{
		URL:        target.String(),
		OutputPath: flags.snapshot,
	})

	stop()
	if err := <-done; err != nil && captureErr == nil {
		return err
	}
	return captureErr
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "/etc/rangecal/config.yaml", "Path to config file")
	flag.StringVar(&cfg.listen, "listen", "", "HTTP listen address (overrides config if set)")
	flag.StringVar(&cfg.snapshot, "snapshot", "", "Write a PNG of a fresh picker to this path and exit")
	flag.StringVar(&cfg.month, "month", "", "Month shown by -snapshot (YYYY-MM, default current)")
	flag.StringVar(&cfg.locale, "locale", "", "Locale used by -snapshot (default from config/environment)")

	flag.Parse()

	return cfg
}
