//go:build darwin

package sound

import "os/exec"

// playForCue plays sounds on macOS using afplay
func playForCue(cue string) bool {
	var soundFiles []string

	switch cue {
	case CueDaily:
		soundFiles = []string{
			"/System/Library/Sounds/Submarine.aiff",
			"/System/Library/Sounds/Purr.aiff",
		}
	default:
		soundFiles = []string{
			"/System/Library/Sounds/Glass.aiff",
			"/System/Library/Sounds/Tink.aiff",
		}
	}

	for _, soundFile := range soundFiles {
		if err := exec.Command("afplay", soundFile).Start(); err == nil {
			return true
		}
	}
	return false
}
