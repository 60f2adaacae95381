package prefabs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/streetfighter/component"
	"github.com/milk9111/streetfighter/system"
)

func TestLoadRoster(t *testing.T) {
	r, err := LoadRoster()
	if err != nil {
		t.Fatalf("load roster: %v", err)
	}
	if r.Fighters[system.SidePlayer].Name != "ken" || r.Fighters[system.SideEnemy].Name != "ryu" {
		t.Fatalf("unexpected fighters %q %q", r.Fighters[0].Name, r.Fighters[1].Name)
	}

	arena := r.Arena.Arena()
	if arena.Width != 1024 || arena.Floor != 480 || arena.TimeLimit != 60 || !arena.ClampToArena {
		t.Fatalf("unexpected arena %+v", arena)
	}

	m, err := r.NewMatch()
	if err != nil {
		t.Fatalf("new match: %v", err)
	}
	if m.TimeRemaining != 60 {
		t.Fatalf("expected 60s on the clock, got %d", m.TimeRemaining)
	}
	ryu := m.Enemy()
	if ryu.Facing != component.FacingLeft {
		t.Fatalf("expected ryu to start facing left")
	}
	// mirrored box sits where a left-facing punch lands
	if got := ryu.AttackRect(); got.X != ryu.Position.X-170 || got.Width != 170 {
		t.Fatalf("unexpected ryu attack rect %+v", got)
	}
	if ryu.Sprite.Hold != 5 {
		t.Fatalf("expected frame hold from the arena, got %d", ryu.Sprite.Hold)
	}

	for _, side := range system.Sides {
		src, err := r.Script(side)
		if err != nil || len(src) == 0 {
			t.Fatalf("%s script: %d bytes, %v", side, len(src), err)
		}
	}
}

func TestRematchIsFresh(t *testing.T) {
	r, err := LoadRoster()
	if err != nil {
		t.Fatalf("load roster: %v", err)
	}
	first, err := r.NewMatch()
	if err != nil {
		t.Fatalf("new match: %v", err)
	}
	first.Enemy().ApplyHit(40)

	second, err := r.NewMatch()
	if err != nil {
		t.Fatalf("rematch: %v", err)
	}
	if second.Enemy().Health.CurrentHP() != 100 || second.Enemy() == first.Enemy() {
		t.Fatalf("rematch must build new fighters")
	}
}

func TestFighterSpecDefaults(t *testing.T) {
	src := `
name: test
width: 50
height: 150
animations:
  idle: {sheet: a.png, frame_count: 4}
  run: {sheet: a.png, frame_count: 4}
  jump: {sheet: a.png, frame_count: 4}
  fall: {sheet: a.png, frame_count: 4}
  attack: {sheet: a.png, frame_count: 3}
  takeHit: {sheet: a.png, frame_count: 4}
  death: {sheet: a.png, frame_count: 4}
attack:
  offset_x: 100
  offset_y: 50
  width: 160
  height: 50
`
	var spec FighterSpec
	if err := yaml.Unmarshal([]byte(src), &spec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	c, err := spec.Build(0)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if c.Attack.ActiveFrame != component.DefaultActiveFrame || c.Attack.Damage != component.DefaultDamage {
		t.Fatalf("unexpected attack defaults %+v", c.Attack)
	}
	if c.Attack.Name != "punch" || c.MoveSpeed != component.DefaultMoveSpeed || c.Health.MaxHP() != component.DefaultMaxHealth {
		t.Fatalf("unexpected defaults name=%q speed=%g max=%d", c.Attack.Name, c.MoveSpeed, c.Health.MaxHP())
	}
	if c.Sprite.Hold != component.DefaultFrameHold {
		t.Fatalf("expected default frame hold, got %d", c.Sprite.Hold)
	}

	zero := 0
	spec.Attack.ActiveFrame = &zero
	def, err := spec.CombatantDef(5)
	if err != nil || def.Attack.ActiveFrame != 0 {
		t.Fatalf("explicit active_frame 0 must be kept, got %d (%v)", def.Attack.ActiveFrame, err)
	}
}

func TestFighterSpecErrors(t *testing.T) {
	valid := func() FighterSpec {
		anims := map[string]AnimationSpec{}
		for _, s := range component.AnimationStates {
			anims[string(s)] = AnimationSpec{Sheet: "a.png", FrameCount: 4}
		}
		return FighterSpec{
			Name: "x", Width: 50, Height: 150, Animations: anims,
			Attack: MoveSpec{Width: 10, Height: 10},
		}
	}

	cases := []struct {
		name   string
		mutate func(*FighterSpec)
		target error
	}{
		{"bad_facing", func(f *FighterSpec) { f.Facing = "up" }, ErrInvalidSpec},
		{"empty_attack_box", func(f *FighterSpec) { f.Attack.Width = 0 }, ErrInvalidSpec},
		{"missing_death", func(f *FighterSpec) { delete(f.Animations, "death") }, component.ErrMissingAnimation},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := valid()
			c.mutate(&f)
			_, err := f.Build(5)
			if !errors.Is(err, c.target) {
				t.Fatalf("expected %v, got %v", c.target, err)
			}
		})
	}
}

func TestYAMLColor(t *testing.T) {
	var spec struct {
		Color YAMLColor `yaml:"color"`
	}
	if err := yaml.Unmarshal([]byte(`color: "#d9404080"`), &spec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	r, g, b, a := spec.Color.RGBA()
	if r == 0 || g == 0 || b == 0 || a>>8 != 0x80 {
		t.Fatalf("unexpected color %v", spec.Color)
	}
	if err := yaml.Unmarshal([]byte(`color: "#fff"`), &spec); err == nil {
		t.Fatalf("expected an error for a short color")
	}
}

func TestCleanScriptPath(t *testing.T) {
	for in, want := range map[string]string{
		"cpu":                       "scripts/cpu.tengo",
		"cpu.tengo":                 "scripts/cpu.tengo",
		"scripts/cpu.tengo":         "scripts/cpu.tengo",
		"prefabs/scripts/cpu.tengo": "scripts/cpu.tengo",
	} {
		if got := cleanScriptPath(in); got != want {
			t.Fatalf("cleanScriptPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWatcherReportsSpecChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	path := filepath.Join(dir, "ken.yaml")
	if err := os.WriteFile(path, []byte("name: ken\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-w.Events:
		if filepath.Base(got) != "ken.yaml" {
			t.Fatalf("unexpected event for %s", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no event for %s", path)
	}
}
