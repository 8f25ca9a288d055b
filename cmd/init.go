package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quocvuong92/build-shell/internal/config"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a default config file",
		Long: `Create a commented default config file in the user config directory.

The file documents every setting: prompt template, toolchain list, binary
names and default flags. A project-level .build-shell/config.yaml takes
precedence over it.

Examples:
  build-shell init`,
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	path, err := config.CreateDefaultConfigFile()
	if err != nil {
		if path != "" {
			// Already exists; point at it rather than failing
			fmt.Printf("Config file already exists at %s\n", path)
			return nil
		}
		return err
	}

	fmt.Printf("Created config file at %s\n", path)
	fmt.Println("Edit it to change the prompt, toolchains or binary names.")
	return nil
}
