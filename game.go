package main

import (
	"context"
	"fmt"
	"image/color"
	"sync/atomic"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/milk9111/streetfighter/ai"
	"github.com/milk9111/streetfighter/prefabs"
	"github.com/milk9111/streetfighter/spectate"
	"github.com/milk9111/streetfighter/system"
)

const defaultScript = "cpu"

var (
	backgroundColor = color.RGBA{R: 0x1c, G: 0x1c, B: 0x24, A: 0xff}
	floorColor      = color.RGBA{R: 0x55, G: 0x4a, B: 0x3c, A: 0xff}
	barBackColor    = color.RGBA{R: 0x60, G: 0x10, B: 0x10, A: 0xff}
	barColor        = color.RGBA{R: 0xe8, G: 0xc8, B: 0x30, A: 0xff}
	attackColor     = color.RGBA{R: 255, G: 0, B: 0, A: 200}
)

// used when a fighter prefab has no color
var defaultColors = [2]color.Color{
	color.RGBA{R: 0xd9, G: 0x40, B: 0x40, A: 0xff},
	color.RGBA{R: 0x40, G: 0x60, B: 0xd9, A: 0xff},
}

type GameConfig struct {
	Roster  *prefabs.Roster
	CPU     [2]bool
	Logger  *zap.Logger
	Hub     *spectate.Hub
	Watcher *prefabs.Watcher
}

// Game hosts one match at a time. The match runs on its own Runner goroutine;
// Update forwards key edges to it and Draw renders the latest snapshot.
type Game struct {
	roster  *prefabs.Roster
	cpu     [2]bool
	logger  *zap.Logger
	hub     *spectate.Hub
	watcher *prefabs.Watcher

	runner *system.Runner
	cancel context.CancelFunc
	done   chan error

	snapshot atomic.Pointer[system.Snapshot]
	result   atomic.Pointer[system.MatchResult]

	resultUI     *ebitenui.UI
	reloadQueued bool
	quit         bool
	rematch      bool
}

func NewGame(cfg GameConfig) (*Game, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Game{
		roster:  cfg.Roster,
		cpu:     cfg.CPU,
		logger:  logger,
		hub:     cfg.Hub,
		watcher: cfg.Watcher,
	}
	if err := g.startMatch(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) startMatch() error {
	m, err := g.roster.NewMatch()
	if err != nil {
		return err
	}

	opts := []system.Option{
		system.WithLogger(g.logger),
		system.WithSink(system.SinkFuncs{
			Snapshot: func(s system.Snapshot) { g.snapshot.Store(&s) },
			Result:   func(res system.MatchResult) { g.result.Store(&res) },
		}),
	}
	if g.hub != nil {
		opts = append(opts, system.WithHandler(g.hub.Handle))
	}
	for _, side := range system.Sides {
		if !g.cpu[side] {
			continue
		}
		ctrl, err := g.newController(side)
		if err != nil {
			return err
		}
		opts = append(opts, system.WithController(side, ctrl))
	}

	loop := system.NewMatchLoop(m, opts...)
	snap := m.Snapshot()
	g.snapshot.Store(&snap)
	g.result.Store(nil)
	g.resultUI = nil

	ctx, cancel := context.WithCancel(context.Background())
	g.runner = system.NewRunner(loop, system.WithRunnerLogger(g.logger))
	g.cancel = cancel
	g.done = make(chan error, 1)
	go func(r *system.Runner, done chan<- error) {
		done <- r.Run(ctx)
	}(g.runner, g.done)
	return nil
}

func (g *Game) newController(side system.Side) (system.Controller, error) {
	name := g.roster.Fighters[side].Script
	src, err := g.roster.Script(side)
	if err != nil {
		return nil, err
	}
	if src == nil {
		name = defaultScript
		if src, err = prefabs.LoadScript(defaultScript); err != nil {
			return nil, err
		}
	}
	return ai.NewScriptController(name, src, ai.WithLogger(g.logger))
}

func (g *Game) stopMatch() {
	if g.cancel == nil {
		return
	}
	g.cancel()
	<-g.done
	g.cancel = nil
}

func (g *Game) restart() error {
	g.stopMatch()
	if g.reloadQueued {
		g.reloadQueued = false
		roster, err := prefabs.LoadRoster()
		if err != nil {
			g.logger.Warn("prefab reload failed, keeping previous specs", zap.Error(err))
		} else {
			g.roster = roster
			g.logger.Info("prefabs reloaded")
		}
	}
	return g.startMatch()
}

// Close stops the running match and the prefab watcher.
func (g *Game) Close() {
	g.stopMatch()
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Info("prefab changed", zap.String("file", name))
			g.reloadQueued = true
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.logger.Warn("prefab watcher", zap.Error(err))
			}
		default:
			return
		}
	}
}

func (g *Game) Update() error {
	if g.quit || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.pollWatcher()

	res := g.result.Load()
	if res == nil {
		for _, ev := range keyEvents(g.cpu) {
			if !g.runner.Send(ev) {
				g.logger.Debug("key event dropped", zap.Stringer("side", ev.Side), zap.Stringer("key", ev.Key))
			}
		}
		return nil
	}

	if g.resultUI == nil {
		g.resultUI = NewResultUI(g, *res)
	}
	g.resultUI.Update()
	if g.rematch || inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.rematch = false
		return g.restart()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	snap := g.snapshot.Load()
	if snap == nil {
		return
	}

	arena := g.roster.Arena.Arena()
	vector.FillRect(screen, 0, float32(arena.Floor), float32(arena.Width), float32(arena.Height-arena.Floor), floorColor, false)

	for _, side := range system.Sides {
		f := snap.Fighters[side]
		vector.FillRect(screen, float32(f.X), float32(f.Y), float32(f.Width), float32(f.Height), g.fighterColor(side), false)
		if f.Attacking {
			a := f.Attack
			vector.StrokeRect(screen, float32(a.X), float32(a.Y), float32(a.Width), float32(a.Height), 1.0, attackColor, false)
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s %s:%d", f.Name, f.State, f.Frame), int(f.X), int(f.Y)-16)
	}

	g.drawHUD(screen, snap, arena)

	if g.resultUI != nil {
		g.resultUI.Draw(screen)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image, snap *system.Snapshot, arena system.Arena) {
	const (
		margin = 20
		barH   = 24
	)
	barW := float32(arena.Width/2 - 2*margin - 30)
	for _, side := range system.Sides {
		f := snap.Fighters[side]
		frac := float32(0)
		if f.MaxHealth > 0 {
			frac = float32(f.Health) / float32(f.MaxHealth)
		}
		x := float32(margin)
		fill := barW * frac
		fillX := x + barW - fill
		if side == system.SideEnemy {
			x = float32(arena.Width) - margin - barW
			fillX = x
		}
		vector.FillRect(screen, x, margin, barW, barH, barBackColor, false)
		vector.FillRect(screen, fillX, margin, fill, barH, barColor, false)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%2d", snap.TimeRemaining), int(arena.Width/2)-6, margin+6)
}

func (g *Game) fighterColor(side system.Side) color.Color {
	if c := g.roster.Fighters[side].Color; c != nil && c.Color != nil {
		return c.Color
	}
	return defaultColors[side]
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	arena := g.roster.Arena.Arena()
	return int(arena.Width), int(arena.Height)
}
