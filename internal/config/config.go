package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/appengine-ltd/fae-factory/internal/items"
	"github.com/appengine-ltd/fae-factory/internal/logging"
	"github.com/appengine-ltd/fae-factory/internal/recipes"
	"github.com/appengine-ltd/fae-factory/internal/world"
)

const (
	ResearchAll  = "all"
	ResearchNone = "none"
	ResearchList = "list"
)

type Config struct {
	TickRate        int                        `yaml:"tick_rate"`
	MaxDelta        Duration                   `yaml:"max_delta"`
	CommandCapacity int                        `yaml:"command_capacity"`
	Player          PlayerConfig               `yaml:"player"`
	Structures      map[string]StructureConfig `yaml:"structures,omitempty"`
	Research        ResearchConfig             `yaml:"research"`
	Logging         LoggingConfig              `yaml:"logging"`
}

type PlayerConfig struct {
	Slots int           `yaml:"slots"`
	Seed  []items.Stack `yaml:"seed"`
}

type StructureConfig struct {
	Slots         *int     `yaml:"slots,omitempty"`
	SpawnInterval Duration `yaml:"spawn_interval,omitempty"`
}

type ResearchConfig struct {
	Mode    string   `yaml:"mode"`
	Recipes []string `yaml:"recipes,omitempty"`
}

type LoggingConfig struct {
	Sinks       []string `yaml:"sinks"`
	MinSeverity string   `yaml:"min_severity"`
	JSONPath    string   `yaml:"json_path,omitempty"`
	BufferSize  int      `yaml:"buffer_size"`
}

// Duration reads and writes Go duration strings such as "250ms".
type Duration time.Duration

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", node.Line)
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(node.Value))
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

func Default() Config {
	opts := world.DefaultOptions()
	return Config{
		TickRate:        30,
		MaxDelta:        Duration(opts.MaxDelta),
		CommandCapacity: opts.CommandCapacity,
		Player: PlayerConfig{
			Slots: opts.PlayerSlots,
			Seed:  items.CloneStacks(opts.PlayerSeed),
		},
		Research: ResearchConfig{Mode: ResearchAll},
		Logging: LoggingConfig{
			Sinks:       []string{logging.SinkConsole},
			MinSeverity: "info",
			BufferSize:  logging.DefaultConfig().BufferSize,
		},
	}
}

// Load reads a YAML file over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	cfg, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c Config) Validate() error {
	if c.TickRate < 1 || c.TickRate > 240 {
		return fmt.Errorf("tick rate must be between 1 and 240, got %d", c.TickRate)
	}
	if c.MaxDelta < 0 {
		return fmt.Errorf("max delta must not be negative, got %s", c.MaxDelta.Std())
	}
	if c.CommandCapacity < 1 {
		return fmt.Errorf("command capacity must be positive, got %d", c.CommandCapacity)
	}
	if c.Player.Slots < 0 {
		return fmt.Errorf("player slots must not be negative, got %d", c.Player.Slots)
	}
	if items.HasDuplicateTypes(c.Player.Seed) {
		return fmt.Errorf("player seed repeats an item type")
	}
	for _, st := range c.Player.Seed {
		if !st.Type.Valid() {
			return fmt.Errorf("player seed: unknown item %q", st.Type)
		}
	}
	for name, sc := range c.Structures {
		kind, err := world.ParseKind(name)
		if err != nil {
			return err
		}
		if sc.Slots != nil && *sc.Slots < 0 {
			return fmt.Errorf("%s slots must not be negative, got %d", kind, *sc.Slots)
		}
		if sc.SpawnInterval < 0 {
			return fmt.Errorf("%s spawn interval must not be negative", kind)
		}
		if sc.SpawnInterval > 0 {
			if spec, _ := world.SpecFor(kind); !spec.Spawns() {
				return fmt.Errorf("%s does not gather, spawn interval is not allowed", kind)
			}
		}
	}
	if _, err := c.AvailableRecipes(); err != nil {
		return err
	}
	if _, err := c.LoggingConfig(); err != nil {
		return err
	}
	return nil
}

func (c Config) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.TickRate)
}

func (c Config) AvailableRecipes() (*recipes.AvailableRecipes, error) {
	switch strings.ToLower(strings.TrimSpace(c.Research.Mode)) {
	case ResearchAll, "":
		return recipes.AllAvailable(), nil
	case ResearchNone:
		return recipes.NewAvailableRecipes(), nil
	case ResearchList:
		available := recipes.NewAvailableRecipes()
		for _, raw := range c.Research.Recipes {
			t, err := recipes.ParseRecipeType(raw)
			if err != nil {
				return nil, fmt.Errorf("research: %w", err)
			}
			available.Unlock(t)
		}
		return available, nil
	default:
		return nil, fmt.Errorf("invalid research mode: %s", c.Research.Mode)
	}
}

func (c Config) LoggingConfig() (logging.Config, error) {
	out := logging.DefaultConfig()
	sev, err := logging.ParseSeverity(c.Logging.MinSeverity)
	if err != nil {
		return out, err
	}
	out.MinimumSeverity = sev
	if c.Logging.BufferSize > 0 {
		out.BufferSize = c.Logging.BufferSize
	}
	out.EnabledSinks = nil
	for _, s := range c.Logging.Sinks {
		switch s {
		case logging.SinkConsole, logging.SinkMemory:
		case logging.SinkJSON:
			if c.Logging.JSONPath == "" {
				return out, fmt.Errorf("json sink requires logging.json_path")
			}
		default:
			return out, fmt.Errorf("unknown log sink: %s", s)
		}
		out.EnabledSinks = append(out.EnabledSinks, s)
	}
	out.JSON.FilePath = c.Logging.JSONPath
	return out, nil
}

// WorldOptions converts the file settings into world construction options.
func (c Config) WorldOptions(pub logging.Publisher) (world.Options, error) {
	research, err := c.AvailableRecipes()
	if err != nil {
		return world.Options{}, err
	}
	opts := world.DefaultOptions()
	opts.PlayerSeed = items.CloneStacks(c.Player.Seed)
	opts.PlayerSlots = c.Player.Slots
	opts.CommandCapacity = c.CommandCapacity
	opts.MaxDelta = c.MaxDelta.Std()
	opts.Research = research
	opts.Publisher = pub
	for name, sc := range c.Structures {
		kind, err := world.ParseKind(name)
		if err != nil {
			return world.Options{}, err
		}
		if sc.Slots != nil {
			if opts.StructureSlots == nil {
				opts.StructureSlots = make(map[world.Kind]int)
			}
			opts.StructureSlots[kind] = *sc.Slots
		}
		if sc.SpawnInterval > 0 {
			if opts.SpawnIntervals == nil {
				opts.SpawnIntervals = make(map[world.Kind]time.Duration)
			}
			opts.SpawnIntervals[kind] = sc.SpawnInterval.Std()
		}
	}
	return opts, nil
}
