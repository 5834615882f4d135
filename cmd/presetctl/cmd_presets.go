package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/ruminaider/presetctl/internal/commands"
	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List available presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SLUG\tLABEL\tTYPE\tPORT")
		for _, p := range commands.ListPresets(cfg) {
			port := "-"
			if p.HasPort() {
				port = fmt.Sprint(p.DefaultPort)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Slug, p.Label, p.ProjectType, port)
		}
		return w.Flush()
	},
}
