package detect

import "path"

// PackageManager is a JavaScript package manager.
type PackageManager string

const (
	Npm  PackageManager = "npm"
	Yarn PackageManager = "yarn"
	Pnpm PackageManager = "pnpm"
	Bun  PackageManager = "bun"
)

var lockfiles = []struct {
	name string
	pm   PackageManager
}{
	{"pnpm-lock.yaml", Pnpm},
	{"package-lock.json", Npm},
	{"yarn.lock", Yarn},
	{"bun.lockb", Bun},
	{"bun.lock", Bun},
}

func baseSet(files []string) map[string]bool {
	set := make(map[string]bool, len(files))
	for _, f := range files {
		set[path.Base(f)] = true
	}
	return set
}

// DetectPackageManager picks the package manager from lockfiles among
// files, in pnpm, npm, yarn, bun order. Without a lockfile it is npm.
func DetectPackageManager(files []string) PackageManager {
	names := baseSet(files)
	for _, l := range lockfiles {
		if names[l.name] {
			return l.pm
		}
	}
	return Npm
}

func hasNodeManifest(files []string) bool {
	names := baseSet(files)
	if names["package.json"] {
		return true
	}
	for _, l := range lockfiles {
		if names[l.name] {
			return true
		}
	}
	return false
}

func (pm PackageManager) InstallCommand() string {
	switch pm {
	case Bun:
		return "bun install"
	case Yarn:
		return "yarn install --frozen-lockfile"
	case Pnpm:
		return "pnpm install --frozen-lockfile"
	}
	return "npm install"
}

func (pm PackageManager) BuildCommand() string {
	switch pm {
	case Bun:
		return "bun run build"
	case Yarn:
		return "yarn build"
	case Pnpm:
		return "pnpm run build"
	}
	return "npm run build"
}

func (pm PackageManager) BaseImage() string {
	if pm == Bun {
		return "oven/bun:1.2"
	}
	return "node:22-alpine"
}
