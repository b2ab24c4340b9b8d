package config

import (
	"errors"
	"fmt"
)

var (
	ErrNoSources = errors.New("at least one source is required")
	ErrNoSinks   = errors.New("at least one sink is required")
)

var (
	sourceTypes    = map[string]bool{"stdin": true, "file": true, "docker": true}
	transformTypes = map[string]bool{"remap": true}
	sinkTypes      = map[string]bool{"stdout": true, "console": true, "tui": true}
)

func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return ErrNoSources
	}

	if len(c.Sinks) == 0 {
		return ErrNoSinks
	}

	stdin := 0
	for name, s := range c.Sources {
		if !sourceTypes[s.Type] {
			return fmt.Errorf("source [%s]: unknown type '%s'", name, s.Type)
		}
		switch s.Type {
		case "stdin":
			stdin++
		case "file":
			if s.Path == "" {
				return fmt.Errorf("source [%s]: path is required", name)
			}
		case "docker":
			if s.ContainerID == "" {
				return fmt.Errorf("source [%s]: container_id is required", name)
			}
		}
	}
	if stdin > 1 {
		return fmt.Errorf("only one stdin source is allowed, got %d", stdin)
	}

	for name, t := range c.Transforms {
		if !transformTypes[t.Type] {
			return fmt.Errorf("transform [%s]: unknown type '%s'", name, t.Type)
		}
		if len(t.Inputs) == 0 {
			return fmt.Errorf("transform [%s]: inputs list is empty", name)
		}
		for _, inputName := range t.Inputs {
			if !c.componentExists(inputName) {
				return fmt.Errorf("transform [%s]: refers to unknown input '%s'", name, inputName)
			}
		}
	}

	tui := 0
	for name, s := range c.Sinks {
		if !sinkTypes[s.Type] {
			return fmt.Errorf("sink [%s]: unknown type '%s'", name, s.Type)
		}
		if s.Type == "tui" {
			tui++
		}
		if len(s.Inputs) == 0 {
			return fmt.Errorf("sink [%s]: inputs list is empty", name)
		}
		for _, inputName := range s.Inputs {
			if !c.componentExists(inputName) {
				return fmt.Errorf("sink [%s]: refers to unknown input '%s'", name, inputName)
			}
		}
	}
	if tui > 1 {
		return fmt.Errorf("only one tui sink is allowed, got %d", tui)
	}

	return nil
}

func (c *Config) componentExists(name string) bool {
	_, existsInSources := c.Sources[name]
	_, existsInTransforms := c.Transforms[name]
	return existsInSources || existsInTransforms
}
