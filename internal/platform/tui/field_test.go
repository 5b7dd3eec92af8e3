package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/spacewar/internal/assets"
	"github.com/vovakirdan/spacewar/internal/core"
	"github.com/vovakirdan/spacewar/internal/entity"
	"github.com/vovakirdan/spacewar/internal/sim"
)

func TestViewportMapping(t *testing.T) {
	v := newViewport(60, 31, core.Canvas{W: 600, H: 600})

	tests := []struct {
		name  string
		p     core.Vec
		wantX int
		wantY int
	}{
		{"origin", core.Vec{}, 0, 1},
		{"center", core.Vec{X: 300, Y: 300}, 30, 16},
		{"far corner", core.Vec{X: 599, Y: 599}, 59, 30},
		{"above top", core.Vec{X: 0, Y: -15}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := v.cell(tt.p)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("cell(%v) = (%d, %d), want (%d, %d)", tt.p, x, y, tt.wantX, tt.wantY)
			}
		})
	}

	rx, ry := v.radii(20)
	if rx != 2 || ry != 1 {
		t.Errorf("radii(20) = (%v, %v), want (2, 1)", rx, ry)
	}
}

func TestDrawEntity(t *testing.T) {
	s := core.NewScreen(60, 31)
	v := newViewport(60, 31, core.Canvas{W: 600, H: 600})
	e := sim.EntityView{Kind: entity.KindEnemy, Pos: core.Vec{X: 300, Y: 300}, Radius: 20, Tag: "red"}

	drawEntity(s, v, e, assets.Sprite{Glyph: "W", Fill: "%"})

	if got := s.GetCell(30, 16); got.Rune != 'W' || got.Color != core.ColorRed {
		t.Errorf("center cell = %+v, want red W", got)
	}
	if got := s.Get(32, 16); got != '%' {
		t.Errorf("edge cell = %q, want fill", got)
	}
	if got := s.Get(33, 16); got == '%' {
		t.Error("fill drawn outside the radius")
	}
}

func TestDrawEntityClipsToField(t *testing.T) {
	s := core.NewScreen(60, 31)
	v := newViewport(60, 31, core.Canvas{W: 600, H: 600})
	e := sim.EntityView{Kind: entity.KindEnemy, Pos: core.Vec{X: 0, Y: -15}, Radius: 15, Tag: "red"}

	drawEntity(s, v, e, assets.Sprite{Glyph: "W"})
	for x := range 60 {
		if s.Get(x, 0) != ' ' {
			t.Fatalf("entity above the field drew over the HUD at column %d", x)
		}
	}
}

func TestSmallEntityOccupiesOneCell(t *testing.T) {
	s := core.NewScreen(60, 31)
	v := newViewport(60, 31, core.Canvas{W: 600, H: 600})
	e := sim.EntityView{Kind: entity.KindProjectile, Pos: core.Vec{X: 100, Y: 100}, Radius: 3}

	drawEntity(s, v, e, assets.Sprite{Glyph: "|"})

	count := 0
	for y := range 31 {
		for x := range 60 {
			if s.Get(x, y) == '|' {
				count++
			}
		}
	}
	if count != 1 {
		t.Errorf("projectile covers %d cells, want 1", count)
	}
}

func TestSpriteKey(t *testing.T) {
	tests := []struct {
		view sim.EntityView
		want string
	}{
		{sim.EntityView{Kind: entity.KindPlayer}, "player"},
		{sim.EntityView{Kind: entity.KindProjectile}, "projectile"},
		{sim.EntityView{Kind: entity.KindEnemy, Tag: "blue"}, "enemy.blue"},
	}
	for _, tt := range tests {
		if got := spriteKey(tt.view); got != tt.want {
			t.Errorf("spriteKey(%v) = %q, want %q", tt.view.Kind, got, tt.want)
		}
	}
}

func TestLifeBar(t *testing.T) {
	tests := []struct {
		life int
		want string
	}{
		{100, "[==========]"},
		{50, "[=====     ]"},
		{0, "[          ]"},
		{-5, "[          ]"},
	}
	for _, tt := range tests {
		if got := lifeBar(tt.life, 10); got != tt.want {
			t.Errorf("lifeBar(%d) = %q, want %q", tt.life, got, tt.want)
		}
	}
}

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawText(0, 0, "ab", core.ColorDefault)
	s.SetColored(3, 1, 'x', core.ColorRed)

	out := RenderScreen(s)
	for _, want := range []string{"ab", "x"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen() = %q, missing %q", out, want)
		}
	}
}
