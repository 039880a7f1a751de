package cmd

import (
	"fmt"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/renato0307/studycal/internal/config"
	"github.com/renato0307/studycal/internal/paths"
)

// ConfigCmd shows process configuration
type ConfigCmd struct {
	Meta ConfigMetaCmd `cmd:"meta" help:"Show config file location and available options" default:"1"`
}

// ConfigMetaCmd displays config metadata
type ConfigMetaCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the meta command
func (c *ConfigMetaCmd) Run(cli *CLI) error {
	configFile := paths.GetConfigPath()
	example := config.GetConfigExample()

	if c.Format == "json" {
		return printJSON(map[string]any{
			"config_file": configFile,
			"format":      example,
		})
	}

	fmt.Printf("Config file: %s\n\n", configFile)
	fmt.Println("Example config.json:")
	fmt.Println()

	keys := make([]string, 0, len(example))
	for k := range example {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, key := range keys {
		fmt.Fprintf(w, "%s\t%v\n", key, example[key])
	}
	w.Flush()

	fmt.Println()
	fmt.Println("Every option is optional. STUDYCAL_* environment variables and flags take precedence.")
	return nil
}
