package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ruminaider/presetctl/internal/commands"
	"github.com/ruminaider/presetctl/internal/detect"
	"github.com/ruminaider/presetctl/internal/paths"
	"github.com/ruminaider/presetctl/internal/watch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	detectRef     string
	detectJSON    bool
	detectNoCache bool
	detectWatch   bool
)

var detectCmd = &cobra.Command{
	Use:   "detect [path...]",
	Short: "Detect deployable projects in one or more repositories",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			args = []string{"."}
		}
		if detectWatch && (len(args) > 1 || detectRef != "") {
			return fmt.Errorf("--watch takes a single path and cannot be combined with --ref")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts, closeCache, err := detectOptions(ctx)
		if err != nil {
			return err
		}
		defer closeCache()

		if detectWatch {
			opts.Dir = args[0]
			return runDetectWatch(ctx, opts)
		}

		results, err := commands.DetectMany(ctx, args, opts, 0)
		if err != nil {
			return err
		}
		if detectJSON {
			return printJSON(results)
		}
		for i, res := range results {
			if i > 0 {
				fmt.Println()
			}
			printDetect(res)
		}
		return nil
	},
}

// detectOptions loads config and opens the cache unless disabled.
func detectOptions(ctx context.Context) (commands.DetectOptions, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return commands.DetectOptions{}, nil, err
	}
	opts := commands.DetectOptions{Ref: detectRef, Config: cfg, Logger: logger}
	if detectNoCache {
		return opts, func() {}, nil
	}

	store, err := commands.OpenCache(ctx, cfg, paths.CacheFile(), logger)
	if err != nil {
		// detection works without the cache
		logger.Warn("detection cache unavailable", zap.Error(err))
		return opts, func() {}, nil
	}
	if store == nil {
		return opts, func() {}, nil
	}
	opts.Cache = store
	return opts, func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing detection cache", zap.Error(err))
		}
	}, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printDetect(res *commands.DetectResult) {
	header := res.Dir
	if res.Revision != "" {
		header = fmt.Sprintf("%s @ %s", res.Dir, shortRev(res.Revision))
	}
	if res.Cached {
		header += dimStyle.Render(" (cached)")
	}
	fmt.Println(headerStyle.Render(header))

	if len(res.Projects) == 0 {
		fmt.Println(dimStyle.Render("  No deployable projects detected."))
		return
	}
	for _, p := range res.Projects {
		line := fmt.Sprintf("  %s %s", successStyle.Render("✓"), itemStyle.Render(fmt.Sprintf("%-14s %s", p.Preset, displayPath(p.Path))))
		var extra []string
		if p.DefaultPort > 0 {
			extra = append(extra, fmt.Sprintf("port %d", p.DefaultPort))
		}
		if p.PackageManager != "" {
			pm := detect.PackageManager(p.PackageManager)
			extra = append(extra, fmt.Sprintf("%s, %s", pm.InstallCommand(), pm.BuildCommand()))
		}
		if len(extra) > 0 {
			line += dimStyle.Render("  " + strings.Join(extra, "; "))
		}
		fmt.Println(line)
	}
}

func displayPath(p string) string {
	if p == detect.RootPath {
		return p
	}
	return "./" + p
}

func shortRev(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

func runDetectWatch(ctx context.Context, opts commands.DetectOptions) error {
	res, err := commands.Detect(ctx, opts)
	if err != nil {
		return err
	}
	printDetect(res)
	previous := res.Projects

	// called from the watcher goroutine only
	onChange := func(changed []string) {
		logger.Debug("re-detecting", zap.Strings("changed", changed))
		res, err := commands.Detect(ctx, opts)
		if err != nil {
			fmt.Println(errStyle.Render("detect failed: ") + err.Error())
			return
		}
		printDiff(detect.Diff(previous, res.Projects))
		previous = res.Projects
	}

	w, err := watch.New(res.Dir, onChange, watch.WithIgnore(opts.Config.Ignore...), watch.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Stop()

	fmt.Println(dimStyle.Render("Watching for changes. Press Ctrl+C to stop."))
	<-ctx.Done()
	return nil
}

func printDiff(diff detect.ProjectDiff) {
	if diff.Empty() {
		fmt.Println(dimStyle.Render("Detected projects unchanged."))
		return
	}
	for _, p := range diff.Added {
		fmt.Printf("%s %-14s %s\n", successStyle.Render("+"), p.Preset, displayPath(p.Path))
	}
	for _, p := range diff.Removed {
		fmt.Printf("%s %-14s %s\n", errStyle.Render("-"), p.Preset, displayPath(p.Path))
	}
}

func init() {
	detectCmd.Flags().StringVar(&detectRef, "ref", "", "Scan a commit instead of the work tree")
	detectCmd.Flags().BoolVar(&detectJSON, "json", false, "Print results as JSON")
	detectCmd.Flags().BoolVar(&detectNoCache, "no-cache", false, "Do not read or write the detection cache")
	detectCmd.Flags().BoolVar(&detectWatch, "watch", false, "Re-run detection when project files change")
}
