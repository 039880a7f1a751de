package cmd

import (
	"fmt"

	"github.com/renato0307/studycal/internal/theme"
	"github.com/renato0307/studycal/internal/version"
)

// VersionCmd prints build information
type VersionCmd struct{}

// Run executes the version command
func (v *VersionCmd) Run() error {
	fmt.Println(version.Info())
	fmt.Println(theme.VersionStyle.Render(version.Tagline))
	return nil
}
