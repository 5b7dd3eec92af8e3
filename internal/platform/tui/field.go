package tui

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/spacewar/internal/assets"
	"github.com/vovakirdan/spacewar/internal/core"
	"github.com/vovakirdan/spacewar/internal/entity"
	"github.com/vovakirdan/spacewar/internal/sim"
)

// hudRows is the number of screen rows above the play field.
const hudRows = 1

// viewport maps canvas coordinates onto a rectangle of terminal cells.
type viewport struct {
	rect   core.Rect
	canvas core.Canvas
}

func newViewport(screenW, screenH int, canvas core.Canvas) viewport {
	return viewport{
		rect:   core.NewRect(0, hudRows, max(screenW, 1), max(screenH-hudRows, 1)),
		canvas: canvas,
	}
}

// cell returns the terminal cell containing canvas point p.
func (v viewport) cell(p core.Vec) (int, int) {
	x := v.rect.X + int(math.Floor(p.X/v.canvas.W*float64(v.rect.W)))
	y := v.rect.Y + int(math.Floor(p.Y/v.canvas.H*float64(v.rect.H)))
	return x, y
}

// radii returns a canvas radius in cells along each axis.
func (v viewport) radii(r float64) (float64, float64) {
	return r / v.canvas.W * float64(v.rect.W), r / v.canvas.H * float64(v.rect.H)
}

func (v viewport) inside(x, y int) bool {
	return x >= v.rect.X && x < v.rect.Right() && y >= v.rect.Y && y < v.rect.Bottom()
}

// drawBackdrop scatters stars whose brightness follows the flash opacity.
func drawBackdrop(s *core.Screen, v viewport, opacity float64) {
	r, c := '.', core.ColorDim
	switch {
	case opacity > 0.85:
		r, c = '*', core.ColorBrightWhite
	case opacity > 0.5:
		c = core.ColorWhite
	case opacity > 0.25:
		c = core.ColorGray
	}

	n := v.rect.W * v.rect.H / 40
	for i := range n {
		x := v.rect.X + (i*7919+13)%v.rect.W
		y := v.rect.Y + (i*104729+7)%v.rect.H
		s.SetColored(x, y, r, c)
	}
}

// drawEntity draws e as an ellipse of fill runes with the sprite glyph at
// its center. Entities smaller than a cell still occupy their center cell.
func drawEntity(s *core.Screen, v viewport, e sim.EntityView, sp assets.Sprite) {
	cx, cy := v.cell(e.Pos)
	rx, ry := v.radii(e.Radius)

	glyph := firstRune(sp.Glyph, 'o')
	fill := firstRune(sp.Fill, glyph)
	color := core.ColorForTag(sp.Color)
	if color == core.ColorDefault {
		color = core.ColorForTag(e.Tag)
	}

	ix, iy := int(math.Ceil(rx)), int(math.Ceil(ry))
	for dy := -iy; dy <= iy; dy++ {
		for dx := -ix; dx <= ix; dx++ {
			if !insideEllipse(float64(dx), float64(dy), rx, ry) {
				continue
			}
			if x, y := cx+dx, cy+dy; v.inside(x, y) {
				s.SetColored(x, y, fill, color)
			}
		}
	}
	if v.inside(cx, cy) {
		s.SetColored(cx, cy, glyph, color)
	}
}

func insideEllipse(dx, dy, rx, ry float64) bool {
	if rx < 0.5 || ry < 0.5 {
		return dx == 0 && dy == 0
	}
	return (dx*dx)/(rx*rx)+(dy*dy)/(ry*ry) <= 1
}

func firstRune(s string, fallback rune) rune {
	if s == "" {
		return fallback
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

// spriteKey names the sprite sheet entry for an entity.
func spriteKey(e sim.EntityView) string {
	switch e.Kind {
	case entity.KindPlayer:
		return "player"
	case entity.KindProjectile:
		return "projectile"
	default:
		return "enemy." + e.Tag
	}
}

// drawField draws the backdrop and every entity of the snapshot.
func drawField(s *core.Screen, snap sim.Snapshot, sprites assets.Sheet) {
	v := newViewport(s.Width(), s.Height(), snap.Canvas)
	drawBackdrop(s, v, snap.Backdrop)
	for _, e := range snap.Entities {
		drawEntity(s, v, e, sprites.Lookup(spriteKey(e)))
	}
	if snap.HasPlayer {
		drawEntity(s, v, snap.Player, sprites.Lookup(spriteKey(snap.Player)))
	}
}

// drawHUD writes the status line on the top row.
func drawHUD(s *core.Screen, snap sim.Snapshot) {
	left := fmt.Sprintf(" SCORE %06d  HI %06d  x%.2f", snap.Score, snap.HighScore, snap.Difficulty)
	s.DrawText(0, 0, left, core.ColorBrightWhite)

	bar := lifeBar(snap.Life, 10)
	right := fmt.Sprintf("LIFE %s %3d  %2d FPS ", bar, snap.Life, snap.FPS)
	if snap.Muted {
		right = "MUTED  " + right
	}
	x := s.Width() - len([]rune(right))
	lifeColor := core.ColorBrightGreen
	switch {
	case snap.Life <= 25:
		lifeColor = core.ColorBrightRed
	case snap.Life <= 50:
		lifeColor = core.ColorYellow
	}
	s.DrawText(x, 0, right, lifeColor)
}

// lifeBar renders life in [0, 100] as a bar of width cells.
func lifeBar(life, width int) string {
	filled := core.Clamp(life*width/100, 0, width)
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}
