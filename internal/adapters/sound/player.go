package sound

import (
	"fmt"
	"io"
	"os"

	"github.com/renato0307/studycal/internal/ports"
)

// Cues the player knows. Unknown cues use the reminder sound.
const (
	CueDaily    = "daily"
	CueReminder = "reminder"
)

// Player implements ports.SoundPlayer with the platform's audio tools
type Player struct {
	bell io.Writer
}

var _ ports.SoundPlayer = (*Player)(nil)

// NewPlayer creates a new sound player
func NewPlayer() *Player {
	return &Player{bell: os.Stdout}
}

// PlayCue plays the sound for cue. Platform-specific implementations are in
// player_*.go files with build tags.
func (p *Player) PlayCue(cue string) error {
	if playForCue(cue) {
		return nil
	}
	return p.terminalBell()
}

// terminalBell outputs a terminal bell character as fallback
func (p *Player) terminalBell() error {
	_, err := fmt.Fprint(p.bell, "\a")
	return err
}
