package app

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/appengine-ltd/fae-factory/internal/config"
	"github.com/appengine-ltd/fae-factory/internal/logging"
	"github.com/appengine-ltd/fae-factory/internal/logging/sinks"
	"github.com/appengine-ltd/fae-factory/internal/world"
)

// Runtime bundles the world with the logging pipeline it publishes to.
type Runtime struct {
	Config config.Config
	World  *world.World
	Router *logging.Router
	// Memory is set when the memory sink is enabled.
	Memory *sinks.MemorySink
}

// New wires logging and the world from cfg. Console events go to console;
// fallback receives the router's own diagnostics.
func New(cfg config.Config, console io.Writer, fallback *log.Logger) (*Runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logCfg, err := cfg.LoggingConfig()
	if err != nil {
		return nil, err
	}

	rt := &Runtime{Config: cfg}
	var named []logging.NamedSink
	for _, name := range logCfg.EnabledSinks {
		switch name {
		case logging.SinkConsole:
			named = append(named, logging.NamedSink{Name: name, Sink: sinks.NewConsoleSink(console)})
		case logging.SinkJSON:
			sink, err := sinks.OpenJSONFile(logCfg.JSON.FilePath, logCfg.JSON.FlushInterval)
			if err != nil {
				return nil, err
			}
			named = append(named, logging.NamedSink{Name: name, Sink: sink})
		case logging.SinkMemory:
			rt.Memory = sinks.NewMemorySink()
			named = append(named, logging.NamedSink{Name: name, Sink: rt.Memory})
		}
	}
	rt.Router = logging.NewRouter(nil, logCfg, fallback, named)

	opts, err := cfg.WorldOptions(rt.Router)
	if err != nil {
		rt.Router.Close(context.Background())
		return nil, err
	}
	w, err := world.New(opts)
	if err != nil {
		rt.Router.Close(context.Background())
		return nil, fmt.Errorf("build world: %w", err)
	}
	rt.World = w
	return rt, nil
}

func (r *Runtime) Close(ctx context.Context) error {
	if r == nil || r.Router == nil {
		return nil
	}
	return r.Router.Close(ctx)
}
