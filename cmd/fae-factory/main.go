//go:build cgo
// +build cgo

package main

import (
	"os"

	"github.com/appengine-ltd/fae-factory/internal/app"
	"github.com/appengine-ltd/fae-factory/internal/gui"
	"github.com/appengine-ltd/fae-factory/internal/shell"
)

func main() {
	os.Exit(run(parseFlags(), runWindow))
}

func runWindow(opts options, rt *app.Runtime, sh *shell.Shell) error {
	return gui.NewApp(gui.AppConfig{
		Version:   version,
		Commit:    commit,
		BuildDate: date,
		Step:      rt.Config.TickInterval(),
		Width:     int32(opts.width),
		Height:    int32(opts.height),
		FontDir:   opts.fontDir,
	}, sh).Run()
}
