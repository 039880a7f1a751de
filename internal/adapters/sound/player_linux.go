//go:build linux

package sound

import "os/exec"

// playForCue asks libcanberra for a freedesktop theme sound, then tries
// PulseAudio with the theme's ogg file
func playForCue(cue string) bool {
	event := "message-new-instant"
	if cue == CueDaily {
		event = "alarm-clock-elapsed"
	}

	if path, err := exec.LookPath("canberra-gtk-play"); err == nil {
		if exec.Command(path, "--id", event).Start() == nil {
			return true
		}
	}
	if path, err := exec.LookPath("paplay"); err == nil {
		if exec.Command(path, "/usr/share/sounds/freedesktop/stereo/"+event+".oga").Start() == nil {
			return true
		}
	}
	return false
}
