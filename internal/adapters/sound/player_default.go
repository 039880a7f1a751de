//go:build !darwin && !linux

package sound

// playForCue has no audio tool to call here, so the bell is used
func playForCue(cue string) bool {
	return false
}
