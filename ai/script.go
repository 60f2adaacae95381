// Package ai drives a fighter from a tengo script. The script defines
//
//	update := func(engine, state) { ... }
//
// and is called once per frame. engine exposes read-only views of both
// fighters and the arena plus the intent functions move, jump and attack;
// state is a map that persists between frames.
package ai

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"go.uber.org/zap"

	"github.com/milk9111/streetfighter/component"
	"github.com/milk9111/streetfighter/system"
)

const dispatchScript = `
update(__engine, __state)
`

// ScriptController is a system.Controller backed by a compiled script.
type ScriptController struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
	logger   *zap.Logger
	failures int
}

// Option configures a ScriptController.
type Option func(*ScriptController)

// WithLogger sets the logger used for script errors.
func WithLogger(logger *zap.Logger) Option {
	return func(c *ScriptController) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewScriptController compiles src. name is only used in errors and logs.
func NewScriptController(name string, src []byte, opts ...Option) (*ScriptController, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + dispatchScript))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("ai: compile %s: %w", name, err)
	}

	c := &ScriptController{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Failures returns how many frames the script failed to run.
func (c *ScriptController) Failures() int {
	if c == nil {
		return 0
	}
	return c.failures
}

type intent struct {
	move   component.Direction
	jump   bool
	attack bool
}

// Update runs the script for side. A failing script leaves the side idle for
// the frame.
func (c *ScriptController) Update(m *system.Match, side system.Side, in *component.Input) {
	if c == nil || m == nil || in == nil {
		return
	}

	var want intent
	engine := buildEngine(m, side, &want)
	if err := c.run(engine); err != nil {
		c.failures++
		c.logger.Warn("script update failed",
			zap.String("script", c.name),
			zap.Stringer("side", side),
			zap.Int64("frame", m.Frame),
			zap.Error(err),
		)
		in.Hold(component.DirNone)
		return
	}

	in.Hold(want.move)
	if want.jump {
		in.Press(component.KeyJump)
	}
	if want.attack {
		in.Press(component.KeyAttack)
	}
}

func (c *ScriptController) run(engine *tengo.ImmutableMap) error {
	if err := c.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := c.compiled.Set("__state", c.state); err != nil {
		return err
	}
	return c.compiled.Run()
}

func buildEngine(m *system.Match, side system.Side, want *intent) *tengo.ImmutableMap {
	values := map[string]tengo.Object{
		"self":     fighterView(m, m.Fighter(side)),
		"opponent": fighterView(m, m.Fighter(side.Opponent())),
		"arena": &tengo.ImmutableMap{Value: map[string]tengo.Object{
			"width": &tengo.Float{Value: m.Arena.Width},
			"floor": &tengo.Float{Value: m.Arena.Floor},
			"time":  &tengo.Int{Value: int64(m.TimeRemaining)},
			"frame": &tengo.Int{Value: m.Frame},
		}},
	}

	values["move"] = &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			want.move = component.DirNone
			return tengo.TrueValue, nil
		}
		switch strings.TrimSpace(objectAsString(args[0])) {
		case "left":
			want.move = component.DirLeft
		case "right":
			want.move = component.DirRight
		case "", "none":
			want.move = component.DirNone
		default:
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["jump"] = &tengo.UserFunction{Name: "jump", Value: func(args ...tengo.Object) (tengo.Object, error) {
		want.jump = true
		return tengo.TrueValue, nil
	}}

	values["attack"] = &tengo.UserFunction{Name: "attack", Value: func(args ...tengo.Object) (tengo.Object, error) {
		want.attack = true
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func fighterView(m *system.Match, c *component.Combatant) *tengo.ImmutableMap {
	if c == nil {
		return &tengo.ImmutableMap{Value: map[string]tengo.Object{}}
	}
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"name":      &tengo.String{Value: c.Name},
		"x":         &tengo.Float{Value: c.Position.X},
		"y":         &tengo.Float{Value: c.Position.Y},
		"width":     &tengo.Float{Value: c.Width},
		"height":    &tengo.Float{Value: c.Height},
		"health":    &tengo.Int{Value: int64(c.Health.CurrentHP())},
		"facing":    &tengo.String{Value: c.Facing.String()},
		"state":     &tengo.String{Value: string(c.State())},
		"attacking": boolObject(c.IsAttacking),
		"dead":      boolObject(c.IsDead),
		"grounded":  boolObject(c.IsGrounded(m.GroundY(c))),
	}}
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
