package main

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/streetfighter/component"
	"github.com/milk9111/streetfighter/system"
)

type binding struct {
	key  ebiten.Key
	side system.Side
	act  component.Key
}

// Player on WASD + space, enemy on the arrows with down to attack.
var bindings = []binding{
	{ebiten.KeyA, system.SidePlayer, component.KeyLeft},
	{ebiten.KeyD, system.SidePlayer, component.KeyRight},
	{ebiten.KeyW, system.SidePlayer, component.KeyJump},
	{ebiten.KeySpace, system.SidePlayer, component.KeyAttack},
	{ebiten.KeyArrowLeft, system.SideEnemy, component.KeyLeft},
	{ebiten.KeyArrowRight, system.SideEnemy, component.KeyRight},
	{ebiten.KeyArrowUp, system.SideEnemy, component.KeyJump},
	{ebiten.KeyArrowDown, system.SideEnemy, component.KeyAttack},
}

// keyEvents returns the edges since the last frame for sides not driven by
// the CPU.
func keyEvents(cpu [2]bool) []system.KeyEvent {
	var out []system.KeyEvent
	for _, b := range bindings {
		if cpu[b.side] {
			continue
		}
		switch {
		case inpututil.IsKeyJustPressed(b.key):
			out = append(out, system.KeyEvent{Side: b.side, Key: b.act, Down: true})
		case inpututil.IsKeyJustReleased(b.key):
			out = append(out, system.KeyEvent{Side: b.side, Key: b.act, Down: false})
		}
	}
	return out
}

func parseCPUSides(s string) ([2]bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return [2]bool{}, nil
	case "player":
		return [2]bool{true, false}, nil
	case "enemy":
		return [2]bool{false, true}, nil
	case "both":
		return [2]bool{true, true}, nil
	default:
		return [2]bool{}, fmt.Errorf("unknown cpu sides %q", s)
	}
}
