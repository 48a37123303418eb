package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/loghive/loghub"
	"github.com/loghive/loghub/hub"
	"github.com/loghive/loghub/sink"
)

func main() {
	var (
		message     = flag.String("msg", "", "Message to post")
		level       = flag.String("level", "info", "Level: debug, info, warning, error")
		count       = flag.Int("n", 1, "Number of times to post the message")
		console     = flag.Bool("console", true, "Attach a colored console sink")
		dir         = flag.String("dir", "", "Attach a rotating file sink writing to this directory")
		name        = flag.String("name", "logtool", "Base name for the rotating file sink")
		sysIdent    = flag.String("syslog", "", "Attach a syslog sink with this identity")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *interactive {
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *message == "" {
		fmt.Fprintln(os.Stderr, "Usage: logtool -msg <text> [-level info] [-n 1] [-dir ./logs] [-syslog ident]")
		fmt.Fprintln(os.Stderr, "       logtool -i  (interactive mode)")
		os.Exit(1)
	}

	if err := run(*message, *level, *count, *console, *dir, *name, *sysIdent); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(message, levelStr string, count int, console bool, dir, name, sysIdent string) error {
	lvl, err := parseLevel(levelStr)
	if err != nil {
		return err
	}

	// Scoped lifetime: the hub is torn down, draining its queue, once the
	// handles and the reference below are closed.
	ref, err := hub.Acquire(true)
	if err != nil {
		return fmt.Errorf("acquire hub: %w", err)
	}
	defer ref.Close()
	h := ref.Hub()

	if console {
		ch, err := h.Console.New("console", sink.ConsoleConfig{Writer: os.Stdout})
		if err != nil {
			return fmt.Errorf("console sink: %w", err)
		}
		defer ch.Close()
	}

	if dir != "" {
		rh, err := h.Rotate.New("file", sink.RotateConfig{Directory: dir, Name: name})
		if err != nil {
			return fmt.Errorf("file sink: %w", err)
		}
		defer rh.Close()
		if path, err := rh.LogFileName(); err == nil {
			fmt.Printf("Writing to %s\n", path)
		}
	}

	if sysIdent != "" {
		sh, err := h.Syslog.New("syslog", sink.SyslogConfig{Identity: sysIdent})
		if err != nil {
			return fmt.Errorf("syslog sink: %w", err)
		}
		defer sh.Close()
	}

	for i := 0; i < count; i++ {
		if count > 1 {
			h.Postf(lvl, "%s (%d/%d)", message, i+1, count)
		} else {
			h.Post(lvl, message)
		}
	}

	return nil
}

func parseLevel(s string) (loghub.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return loghub.LevelDebug, nil
	case "info":
		return loghub.LevelInfo, nil
	case "warning", "warn":
		return loghub.LevelWarning, nil
	case "error":
		return loghub.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown level %q", s)
	}
}
