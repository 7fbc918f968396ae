package config

import (
	"fmt"
	"strings"
)

const (
	PhaseBefore = "before"
	PhaseAfter  = "after"
)

// HooksConfig binds task names to lifecycle events, e.g.
//
//	hooks:
//	  before:
//	    deploy: [rocketchat:notify]
//	  after:
//	    deploy:success: [rocketchat:notify:success]
type HooksConfig struct {
	Before map[string][]string `yaml:"before" koanf:"before"`
	After  map[string][]string `yaml:"after" koanf:"after"`
}

// DefaultHooks mirrors the documented recipe wiring.
func DefaultHooks() HooksConfig {
	return HooksConfig{
		Before: map[string][]string{
			"deploy": {"rocketchat:notify"},
		},
		After: map[string][]string{
			"deploy:success": {"rocketchat:notify:success"},
			"deploy:failed":  {"rocketchat:notify:failure"},
		},
	}
}

func (h HooksConfig) Empty() bool {
	return len(h.Before) == 0 && len(h.After) == 0
}

// Bindings returns the event bindings for phase.
func (h HooksConfig) Bindings(phase string) (map[string][]string, error) {
	switch phase {
	case PhaseBefore:
		return h.Before, nil
	case PhaseAfter:
		return h.After, nil
	}
	return nil, fmt.Errorf("unknown hook phase: %q", phase)
}

func (h HooksConfig) Validate() error {
	for _, bindings := range []map[string][]string{h.Before, h.After} {
		for event, tasks := range bindings {
			if strings.TrimSpace(event) == "" {
				return fmt.Errorf("empty event name")
			}
			for _, task := range tasks {
				if strings.TrimSpace(task) == "" {
					return fmt.Errorf("empty task name bound to %q", event)
				}
			}
		}
	}
	return nil
}
