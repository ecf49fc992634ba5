package describe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/gnoverse/rangelogic/internal/symbolic"
	"github.com/gnoverse/rangelogic/logic"
	"github.com/gnoverse/rangelogic/rangeset"
)

// DescribeEngine evaluates scenario documents.
type DescribeEngine interface {
	Run(filePath string) ([]Description, error)
	RunSource(source []byte) ([]Description, error)
}

// Description is the evaluated form of one script.
type Description struct {
	File      string                    `json:"file,omitempty"`
	Script    string                    `json:"script"`
	Condition *logic.Node               `json:"condition,omitempty"`
	Values    map[string]*rangeset.List `json:"values,omitempty"`
}

// Labels returns the value labels of d in sorted order.
func (d Description) Labels() []string {
	labels := make([]string, 0, len(d.Values))
	for label := range d.Values {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Engine evaluates scripts against the variables of a configuration.
type Engine struct {
	config    Config
	env       *symbolic.Env
	evaluator *symbolic.Evaluator
}

// New creates an engine from the configuration file at configurationPath.
// An empty path selects DefaultConfig.
func New(configurationPath string) (*Engine, error) {
	config, err := parseConfigurationFile(configurationPath)
	if err != nil {
		return nil, err
	}
	return NewEngine(config), nil
}

// NewEngine creates an engine from an already loaded configuration.
func NewEngine(config Config) *Engine {
	return &Engine{
		config:    config,
		env:       config.Env(),
		evaluator: symbolic.NewEvaluator(config.EvalConfig()),
	}
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config {
	return e.config
}

// Run evaluates the scenario file at filePath.
func (e *Engine) Run(filePath string) ([]Description, error) {
	source, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	descs, err := e.RunSource(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	for i := range descs {
		descs[i].File = filePath
	}
	return descs, nil
}

// RunSource evaluates a scenario document held in memory.
func (e *Engine) RunSource(source []byte) ([]Description, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(source))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}

	descs := make([]Description, 0, len(scenario.Scripts))
	for i, script := range scenario.Scripts {
		desc, err := e.describe(script)
		if err != nil {
			return nil, fmt.Errorf("script %s: %w", scriptName(script, i), err)
		}
		desc.Script = scriptName(script, i)
		descs = append(descs, desc)
	}
	return descs, nil
}

func (e *Engine) describe(script Script) (Description, error) {
	var desc Description
	env := e.scope(script)

	if script.Condition != nil {
		expr, err := script.Condition.Expr()
		if err != nil {
			return desc, fmt.Errorf("condition: %w", err)
		}
		desc.Condition, err = e.evaluator.EvalCond(expr, env)
		if err != nil {
			return desc, fmt.Errorf("condition: %w", err)
		}
	}

	if len(script.Values) > 0 {
		desc.Values = make(map[string]*rangeset.List, len(script.Values))
	}
	for label, node := range script.Values {
		expr, err := node.Expr()
		if err != nil {
			logic.Destroy(desc.Condition)
			return desc, fmt.Errorf("value %s: %w", label, err)
		}
		values, err := e.evaluator.EvalRange(expr, env)
		if err != nil {
			logic.Destroy(desc.Condition)
			return desc, fmt.Errorf("value %s: %w", label, err)
		}
		desc.Values[label] = values
	}
	return desc, nil
}

// scope returns the environment of script: the configured variables, with
// the script's own bindings layered on top.
func (e *Engine) scope(script Script) *symbolic.Env {
	if len(script.Variables) == 0 {
		return e.env
	}
	env := symbolic.NewChildEnv(e.env)
	for name, domain := range script.Variables {
		if domain == nil {
			continue
		}
		env.Set(name, domain)
	}
	return env
}

func scriptName(script Script, i int) string {
	if script.Name != "" {
		return script.Name
	}
	return fmt.Sprintf("#%d", i+1)
}
