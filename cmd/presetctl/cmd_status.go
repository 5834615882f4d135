package main

import (
	"errors"
	"fmt"

	"github.com/ruminaider/presetctl/internal/commands"
	"github.com/ruminaider/presetctl/internal/project"
	"github.com/spf13/cobra"
)

var statusJSON bool

// statusView is the --json form of a status result.
type statusView struct {
	Dir           string   `json:"dir"`
	Selection     string   `json:"selection"`
	RootDirectory string   `json:"root_directory"`
	Resolved      string   `json:"resolved_directory"`
	Detected      bool     `json:"detected"`
	Manual        bool     `json:"manual"`
	Stale         bool     `json:"stale"`
	Reasons       []string `json:"reasons,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status [path]",
	Short: "Compare the stored selection with the repository",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		result, err := commands.Status(cmd.Context(), commands.DetectOptions{
			Dir:    dirArg(args),
			Config: cfg,
			Logger: logger,
		})
		if errors.Is(err, project.ErrNoProjectConfig) && !statusJSON {
			fmt.Println("No preset selected. Run 'presetctl select' to choose one.")
			return nil
		}
		if err != nil {
			return err
		}

		if statusJSON {
			return printJSON(statusView{
				Dir:           result.Dir,
				Selection:     result.Project.Selection,
				RootDirectory: result.Project.RootDirectory,
				Resolved:      result.State.RootDirectory,
				Detected:      result.State.Detected,
				Manual:        result.Project.Manual,
				Stale:         result.Stale,
				Reasons:       result.Reasons,
			})
		}

		fmt.Println(headerStyle.Render(result.Dir))
		selection := result.Project.Selection
		if result.State.KnownPreset {
			selection = fmt.Sprintf("%s (%s)", result.State.Preset.Label, selection)
		}
		fmt.Printf("  Selection:      %s\n", selection)
		fmt.Printf("  Root directory: %s\n", result.Project.RootDirectory)
		if result.Project.Manual {
			fmt.Println(dimStyle.Render("  Manual choice"))
		}
		fmt.Println()

		if !result.Stale {
			fmt.Println(successStyle.Render("✓ Selection matches the repository."))
			return nil
		}
		fmt.Println(errStyle.Render("✗ Selection is out of date"))
		for _, r := range result.Reasons {
			fmt.Printf("  %s %s\n", warnStyle.Render("⚠"), r)
		}
		fmt.Println()
		fmt.Println("Run 'presetctl select' to update it.")
		return nil
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Print status as JSON")
}
