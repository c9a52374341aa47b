package config

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultWorkers is the batch concurrency used when none is configured.
const DefaultWorkers = 4

type workerKind int

const (
	workerUnset workerKind = iota
	workerExplicit
	workerAuto
)

// WorkerSetting holds the batch worker count, written either as a positive
// integer or as "auto" (one worker per CPU).
type WorkerSetting struct {
	kind  workerKind
	value int
}

// Workers returns an explicit setting of n workers.
func Workers(n int) WorkerSetting {
	return WorkerSetting{kind: workerExplicit, value: n}
}

// UnmarshalYAML accepts integers, "auto" and "default".
func (s *WorkerSetting) UnmarshalYAML(node *yaml.Node) error {
	text := ""
	if node != nil {
		text = strings.TrimSpace(node.Value)
	}
	switch strings.ToLower(text) {
	case "", "default":
		*s = WorkerSetting{}
		return nil
	case "auto":
		*s = WorkerSetting{kind: workerAuto}
		return nil
	}

	val, err := strconv.Atoi(text)
	if err != nil {
		return fmt.Errorf("workers: invalid value %q", node.Value)
	}
	if val <= 0 {
		return fmt.Errorf("workers: numeric value must be > 0")
	}
	*s = Workers(val)
	return nil
}

// MarshalYAML writes the setting back in its source form.
func (s WorkerSetting) MarshalYAML() (any, error) {
	switch s.kind {
	case workerExplicit:
		return s.value, nil
	case workerAuto:
		return "auto", nil
	default:
		return "default", nil
	}
}

// Count returns the effective worker count.
func (s WorkerSetting) Count() int {
	switch s.kind {
	case workerExplicit:
		return s.value
	case workerAuto:
		if cores := runtime.NumCPU(); cores > 0 {
			return cores
		}
		return DefaultWorkers
	default:
		return DefaultWorkers
	}
}
