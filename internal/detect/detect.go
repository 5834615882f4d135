// Package detect finds deployable projects in a repository file list and
// the preset each one should be built with.
package detect

import (
	"crypto/sha256"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/ruminaider/presetctl/internal/preset"
)

// DefaultMaxDepth limits how many slashes a directory may contain.
const DefaultMaxDepth = 2

// RootPath is how the repository root is reported in results.
const RootPath = "./"

// DefaultIgnore lists directories that never hold deployable projects.
var DefaultIgnore = []string{"node_modules", ".git", "vendor", "dist", "build", ".next"}

// Options tune FromFiles.
type Options struct {
	MaxDepth int
	Ignore   []string
	Catalog  preset.Catalog
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o Options) catalog() preset.Catalog {
	if o.Catalog == nil {
		return preset.Builtin()
	}
	return o.Catalog
}

func (o Options) ignored() map[string]bool {
	set := make(map[string]bool, len(DefaultIgnore)+len(o.Ignore))
	for _, d := range DefaultIgnore {
		set[d] = true
	}
	for _, d := range o.Ignore {
		d = strings.Trim(strings.TrimSpace(d), "/")
		if d != "" {
			set[d] = true
		}
	}
	return set
}

// Fingerprint hashes every option that can change FromFiles output: the
// effective depth, the sorted ignore set and the catalog fields copied
// into projects.
func (o Options) Fingerprint() string {
	ignored := make([]string, 0)
	for d := range o.ignored() {
		ignored = append(ignored, d)
	}
	sort.Strings(ignored)

	h := sha256.New()
	fmt.Fprintf(h, "depth=%d\n", o.maxDepth())
	for _, d := range ignored {
		fmt.Fprintf(h, "ignore=%s\n", d)
	}
	for _, p := range o.catalog() {
		fmt.Fprintf(h, "preset=%s|%d|%s\n", p.Slug, p.DefaultPort, p.ProjectType)
	}
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}

// Result is the outcome of a detection pass.
type Result struct {
	// Projects holds the root project first (Path "./"), then
	// subdirectory projects sorted by path.
	Projects []preset.DetectedProject `json:"projects"`
	// Root is the preset slug detected at the repository root, if any.
	Root      string `json:"root,omitempty"`
	FileCount int    `json:"file_count,omitempty"`
	Revision  string `json:"revision,omitempty"`
	Cached    bool   `json:"cached,omitempty"`
}

type signature struct {
	slug  string
	label string
	match func(name string) bool
}

func baseIn(names ...string) func(string) bool {
	return func(p string) bool {
		b := path.Base(p)
		for _, n := range names {
			if b == n {
				return true
			}
		}
		return false
	}
}

// Checked in order; the first match decides a directory's preset.
var signatures = []signature{
	{"dockerfile", "Dockerfile", baseIn("Dockerfile")},
	{"docusaurus", "Docusaurus", baseIn("docusaurus.config.js", "docusaurus.config.ts")},
	{"nextjs", "Next.js", baseIn("next.config.js", "next.config.mjs", "next.config.ts")},
	{"vite", "Vite", baseIn("vite.config.js", "vite.config.ts")},
	{"create-react-app", "Create React App", func(p string) bool { return strings.Contains(p, "react-scripts") }},
	{"rsbuild", "Rsbuild", baseIn("rsbuild.config.ts")},
}

// PresetForFiles returns the preset for a single directory's files.
// Directories without a framework-specific file yield ok == false.
func PresetForFiles(files []string) (slug, label string, ok bool) {
	for _, sig := range signatures {
		for _, f := range files {
			if sig.match(f) {
				return sig.slug, sig.label, true
			}
		}
	}
	return "", "", false
}

func cleanFile(f string) string {
	f = strings.ReplaceAll(f, "\\", "/")
	for strings.HasPrefix(f, "./") {
		f = f[2:]
	}
	return strings.TrimPrefix(f, "/")
}

func dirOf(f string) string {
	if i := strings.LastIndex(f, "/"); i >= 0 {
		return f[:i]
	}
	return ""
}

func underIgnored(dir string, ignored map[string]bool) bool {
	if dir == "" {
		return false
	}
	for _, seg := range strings.Split(dir, "/") {
		if ignored[seg] {
			return true
		}
	}
	return false
}

// FromFiles groups files by directory and detects a preset per directory.
func FromFiles(files []string, opts Options) Result {
	ignored := opts.ignored()
	maxDepth := opts.maxDepth()
	catalog := opts.catalog()

	byDir := make(map[string][]string)
	for _, f := range files {
		f = cleanFile(f)
		if f == "" {
			continue
		}
		dir := dirOf(f)
		if strings.Count(dir, "/") > maxDepth || underIgnored(dir, ignored) {
			continue
		}
		byDir[dir] = append(byDir[dir], f)
	}

	res := Result{FileCount: len(files)}
	var root *preset.DetectedProject
	for dir, dirFiles := range byDir {
		slug, label, ok := PresetForFiles(dirFiles)
		if !ok {
			continue
		}
		p := preset.DetectedProject{
			Preset:      slug,
			Path:        dir,
			PresetLabel: label,
		}
		if entry, ok := catalog.BySlug(slug); ok {
			p.DefaultPort = entry.DefaultPort
			p.ProjectType = entry.ProjectType
		}
		if hasNodeManifest(dirFiles) {
			p.PackageManager = string(DetectPackageManager(dirFiles))
		}
		if dir == "" {
			p.Path = RootPath
			root = &p
			continue
		}
		res.Projects = append(res.Projects, p)
	}

	sort.Slice(res.Projects, func(i, j int) bool {
		return res.Projects[i].Path < res.Projects[j].Path
	})
	if root != nil {
		res.Root = root.Preset
		res.Projects = append([]preset.DetectedProject{*root}, res.Projects...)
	}
	return res
}

// IsSignal reports whether a change to file p can change detection results.
func IsSignal(p string) bool {
	p = cleanFile(p)
	for _, sig := range signatures {
		if sig.match(p) {
			return true
		}
	}
	return hasNodeManifest([]string{p})
}
