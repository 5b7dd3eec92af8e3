package tui

import (
	"fmt"

	"github.com/vovakirdan/spacewar/internal/core"
	"github.com/vovakirdan/spacewar/internal/sim"
)

var title = []string{
	`  ___  ___  _   ___ ___  __      __ _   ___  `,
	` / __|| _ \/_\ / __| __| \ \    / //_\ | _ \ `,
	` \__ \|  _/ _ \ (__| _|   \ \/\/ // _ \|   / `,
	` |___/|_|/_/ \_\___|___|   \_/\_//_/ \_\_|_\ `,
}

// drawMenu draws the title screen.
func drawMenu(s *core.Screen, snap sim.Snapshot) {
	drawBackdrop(s, newViewport(s.Width(), s.Height(), snap.Canvas), 0.3)

	y := max(s.Height()/2-len(title)-3, 0)
	if s.Width() >= len(title[0]) {
		for i, line := range title {
			s.DrawTextCentered(y+i, line, core.ColorBrightYellow)
		}
		y += len(title) + 1
	} else {
		s.DrawTextCentered(y, "S P A C E   W A R", core.ColorBrightYellow)
		y += 2
	}

	s.DrawTextCentered(y, fmt.Sprintf("HIGH SCORE  %d", snap.HighScore), core.ColorBrightWhite)
	y += 2
	s.DrawTextCentered(y, "[ENTER] start", core.ColorBrightGreen)
	s.DrawTextCentered(y+1, "[C] controls   [R] records", core.ColorGray)

	sound := "[M] sound on"
	if snap.Muted {
		sound = "[M] sound off"
	}
	s.DrawTextCentered(y+2, sound+"   [Q] quit", core.ColorGray)
}

// drawLoading draws the asset loading progress bar.
func drawLoading(s *core.Screen, loaded, total int) {
	const width = 30
	filled := 0
	if total > 0 {
		filled = core.Clamp(loaded*width/total, 0, width)
	}
	bar := make([]rune, width)
	for i := range bar {
		bar[i] = '░'
		if i < filled {
			bar[i] = '█'
		}
	}

	y := s.Height() / 2
	s.DrawTextCentered(y-1, "LOADING", core.ColorBrightWhite)
	s.DrawTextCentered(y+1, string(bar), core.ColorCyan)
	s.DrawTextCentered(y+2, fmt.Sprintf("%d / %d", loaded, total), core.ColorGray)
}

// drawOverlay draws a boxed message in the middle of the screen, clearing
// what is underneath.
func drawOverlay(s *core.Screen, lines []string, c core.Color) {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	screen := core.NewRect(0, 0, s.Width(), s.Height())
	box := screen.Centered(w+6, len(lines)+4)

	s.DrawRect(box, ' ')
	s.DrawBox(box, c)
	for i, l := range lines {
		s.DrawTextCentered(box.Y+2+i, l, c)
	}
}

func drawPaused(s *core.Screen) {
	drawOverlay(s, []string{"PAUSED", "", "[P] resume   [Q] quit"}, core.ColorBrightYellow)
}

func drawGameOver(s *core.Screen, snap sim.Snapshot) {
	lines := []string{
		"GAME OVER",
		"",
		fmt.Sprintf("SCORE       %d", snap.Score),
		fmt.Sprintf("HIGH SCORE  %d", snap.HighScore),
	}
	if snap.Score > 0 && snap.Score >= snap.HighScore {
		lines = append(lines, "", "NEW RECORD!")
	}
	lines = append(lines, "", "[ENTER] menu")
	drawOverlay(s, lines, core.ColorBrightRed)
}
