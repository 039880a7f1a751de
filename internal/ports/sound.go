package ports

// SoundPlayer plays an audible cue when a reminder fires
type SoundPlayer interface {
	// PlayCue plays the sound for cue, falling back to the terminal bell
	PlayCue(cue string) error
}
