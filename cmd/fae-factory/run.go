package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/appengine-ltd/fae-factory/internal/app"
	"github.com/appengine-ltd/fae-factory/internal/config"
	"github.com/appengine-ltd/fae-factory/internal/shell"
	"github.com/appengine-ltd/fae-factory/internal/ui"
)

// version, commit, date are injected at build time with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type options struct {
	showVersion bool
	dumpConfig  bool
	headless    bool
	configPath  string
	width       int
	height      int
	fontDir     string
}

func parseFlags() options {
	var opts options
	flag.BoolVar(&opts.showVersion, "version", false, "print version and exit")
	flag.BoolVar(&opts.dumpConfig, "dump-config", false, "print the effective configuration as YAML and exit")
	flag.BoolVar(&opts.headless, "headless", false, "run the terminal interface instead of the window")
	flag.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	flag.IntVar(&opts.width, "width", 1280, "window width")
	flag.IntVar(&opts.height, "height", 800, "window height")
	flag.StringVar(&opts.fontDir, "font-dir", "", "directory holding Inter-Regular.ttf or NotoSans-Regular.ttf")
	flag.Parse()
	return opts
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// windowFunc runs the graphical client. It is nil in builds without one.
type windowFunc func(opts options, rt *app.Runtime, sh *shell.Shell) error

func run(opts options, window windowFunc) int {
	if opts.showVersion {
		fmt.Printf("Fae Factory %s (%s) %s\n", version, commit, date)
		return 0
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if opts.dumpConfig {
		out, err := cfg.Marshal()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		os.Stdout.Write(out)
		return 0
	}

	terminal := opts.headless || window == nil
	// the terminal UI owns the screen, so console events would tear it
	var console io.Writer = os.Stderr
	if terminal {
		console = io.Discard
	}
	rt, err := app.New(cfg, console, log.New(os.Stderr, "fae-factory: ", log.LstdFlags))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rt.Close(ctx); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}()

	sh := shell.New(rt.World, cfg.TickInterval())
	if terminal {
		err = ui.NewApp(ui.AppConfig{
			Version:   version,
			Commit:    commit,
			BuildDate: date,
			Step:      cfg.TickInterval(),
		}, sh).Run()
	} else {
		err = window(opts, rt, sh)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
