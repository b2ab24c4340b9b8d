package config

// Config describes the sources, transforms and sinks of a run.
//
// The inputs lists of transforms and sinks are checked by Validate but do not
// route events: every event passes through all transforms in name order and
// reaches every sink.
type Config struct {
	Log        LogConfig                  `yaml:"log"`
	Filter     string                     `yaml:"filter"`
	Sources    map[string]SourceConfig    `yaml:"sources"`
	Transforms map[string]TransformConfig `yaml:"transforms"`
	Sinks      map[string]SinkConfig      `yaml:"sinks"`
	Resolve    ResolveConfig              `yaml:"resolve"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

type SourceConfig struct {
	Type        string `yaml:"type"`
	Path        string `yaml:"path,omitempty"`
	ContainerID string `yaml:"container_id,omitempty"`
	Follow      bool   `yaml:"follow"`
}

type TransformConfig struct {
	Type      string            `yaml:"type"`
	Inputs    []string          `yaml:"inputs"`
	AddFields map[string]string `yaml:"add_fields"`
}

type SinkConfig struct {
	Type   string   `yaml:"type"`
	Inputs []string `yaml:"inputs"`
	Pretty bool     `yaml:"pretty"`
}

type ResolveConfig struct {
	Static map[string]string `yaml:"static"`
	Docker bool              `yaml:"docker"`
	Cache  CacheConfig       `yaml:"cache"`
}

type CacheConfig struct {
	TTL     string `yaml:"ttl"`
	MaxSize int    `yaml:"max_size"`
}

// Default is the configuration used when no config file is given: one source
// reading path (stdin when empty) into a stdout sink.
func Default(path, filter string) *Config {
	src := SourceConfig{Type: "stdin"}
	if path != "" {
		src = SourceConfig{Type: "file", Path: path}
	}
	return &Config{
		Filter:  filter,
		Sources: map[string]SourceConfig{"input": src},
		Sinks: map[string]SinkConfig{
			"output": {Type: "stdout", Inputs: []string{"input"}},
		},
	}
}

// SourcesFeeding returns the names of the sources that reach component name
// through its inputs, following transforms transitively.
func (c *Config) SourcesFeeding(name string) map[string]bool {
	out := make(map[string]bool)
	c.collectSources(name, out, make(map[string]bool))
	return out
}

func (c *Config) collectSources(name string, out, seen map[string]bool) {
	if seen[name] {
		return
	}
	seen[name] = true

	if _, ok := c.Sources[name]; ok {
		out[name] = true
		return
	}
	var inputs []string
	if t, ok := c.Transforms[name]; ok {
		inputs = t.Inputs
	} else if s, ok := c.Sinks[name]; ok {
		inputs = s.Inputs
	}
	for _, in := range inputs {
		c.collectSources(in, out, seen)
	}
}
