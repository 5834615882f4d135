package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/ruminaider/presetctl/internal/commands"
	"github.com/ruminaider/presetctl/internal/reconcile"
	"github.com/spf13/cobra"
)

var (
	selectPreset string
	selectPath   string
	selectCustom string
	selectManual bool
)

var selectCmd = &cobra.Command{
	Use:   "select [path]",
	Short: "Choose the preset and directory to deploy",
	Long: "Without flags, opens a picker showing the detected projects, or every preset " +
		"when the stored choice was not detected or --manual is given.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		opts := commands.SelectOptions{
			DetectOptions: commands.DetectOptions{Dir: dirArg(args), Config: cfg, Logger: logger},
			Manual:        selectManual,
		}

		switch {
		case cmd.Flags().Changed("custom"):
			opts.Preset = reconcile.Custom
			opts.Path = cleanInputPath(selectCustom)
		case selectPreset != "":
			opts.Preset = selectPreset
			opts.Path = cleanInputPath(selectPath)
		default:
			if err := pickInteractively(cmd, &opts); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					fmt.Println("Cancelled.")
					return nil
				}
				return err
			}
		}

		result, err := commands.Select(cmd.Context(), opts)
		if err != nil {
			return err
		}

		label := result.Key
		if result.Preset.Label != "" {
			label = fmt.Sprintf("%s (%s)", result.Preset.Label, result.Key)
		}
		fmt.Printf("%s Selected %s\n", successStyle.Render("✓"), label)
		fmt.Printf("  Root directory: %s\n", result.RootDirectory)
		if !result.Detected {
			fmt.Println(warnStyle.Render("  Not among the detected projects; saved as a manual choice."))
		}
		return nil
	},
}

// pickInteractively fills opts from the picker and, when the choice has no
// directory of its own, a directory prompt.
func pickInteractively(cmd *cobra.Command, opts *commands.SelectOptions) error {
	picked, err := commands.Picker(cmd.Context(), commands.PickerOptions{
		DetectOptions: opts.DetectOptions,
		Manual:        opts.Manual,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Found %d project(s) in %s\n\n", len(picked.Detect.Projects), picked.Detect.Dir)

	in := reconcile.Input{
		Detected:        picked.Detect.Projects,
		Catalog:         picked.Catalog,
		Selection:       picked.State.Key,
		ManualRequested: opts.Manual || (picked.Project != nil && picked.Project.Manual),
	}
	choice, err := runPresetPicker("Select a preset:", in)
	if err != nil {
		return err
	}

	current := picked.State.RootDirectory
	if picked.Project != nil && picked.Project.RootDirectory != "" {
		current = picked.Project.RootDirectory
	}

	switch {
	case choice.Custom:
		dir, err := promptDirectory(current)
		if err != nil {
			return err
		}
		opts.Preset = reconcile.Custom
		opts.Path = dir
	case choice.Mode == reconcile.ModeCatalog:
		// catalog entries carry no directory
		if choice.Option.PresetSlug != picked.State.Selection.PresetSlug {
			current = reconcile.RootDirectory
		}
		dir, err := promptDirectory(current)
		if err != nil {
			return err
		}
		opts.Preset = choice.Option.PresetSlug
		opts.Path = dir
		opts.Manual = true
	default:
		opts.Preset = choice.Option.PresetSlug
		opts.Path = choice.Option.Path
	}
	return nil
}

func promptDirectory(current string) (string, error) {
	dir := current
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Root directory").
				Description("Relative to the repository root").
				Value(&dir).
				Validate(validateDirectory),
		),
	).Run()
	if err != nil {
		return "", err
	}
	return cleanInputPath(dir), nil
}

func validateDirectory(s string) error {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "/") {
		return fmt.Errorf("use a path relative to the repository root")
	}
	for _, seg := range strings.Split(s, "/") {
		if seg == ".." {
			return fmt.Errorf("the directory must stay inside the repository")
		}
	}
	return nil
}

// cleanInputPath turns user input like "./apps/web/" into "apps/web". The
// root becomes "".
func cleanInputPath(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "./")
	s = strings.TrimSuffix(s, "/")
	if s == "." {
		return ""
	}
	return s
}

func init() {
	selectCmd.Flags().StringVar(&selectPreset, "preset", "", "Preset slug to select")
	selectCmd.Flags().StringVar(&selectPath, "path", "", "Project directory for --preset")
	selectCmd.Flags().StringVar(&selectCustom, "custom", "", "Use custom configuration rooted at this directory")
	selectCmd.Flags().BoolVar(&selectManual, "manual", false, "Show every preset instead of only detected projects")
	selectCmd.MarkFlagsMutuallyExclusive("preset", "custom")
}
