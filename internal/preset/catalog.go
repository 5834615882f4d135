package preset

// Catalog is an ordered set of presets keyed by slug.
type Catalog []Preset

const iconBase = "https://cdn.simpleicons.org/"

var builtin = Catalog{
	{Slug: "nextjs", Label: "Next.js", DefaultPort: 3000, ProjectType: Server, Language: "node", IconURL: iconBase + "nextdotjs/000000"},
	{Slug: "vite", Label: "Vite", DefaultPort: 5173, ProjectType: Static, Language: "node", IconURL: iconBase + "vite/646CFF"},
	{Slug: "astro", Label: "Astro", DefaultPort: 4321, ProjectType: Static, Language: "node", IconURL: iconBase + "astro/FF5D01"},
	{Slug: "nuxt", Label: "Nuxt", DefaultPort: 3000, ProjectType: Server, Language: "node", IconURL: iconBase + "nuxtdotjs/00DC82"},
	{Slug: "remix", Label: "Remix", DefaultPort: 3000, ProjectType: Server, Language: "node", IconURL: iconBase + "remix/000000"},
	{Slug: "sveltekit", Label: "SvelteKit", DefaultPort: 5173, ProjectType: Server, Language: "node", IconURL: iconBase + "svelte/FF3E00"},
	{Slug: "solidstart", Label: "SolidStart", DefaultPort: 3000, ProjectType: Server, Language: "node", IconURL: iconBase + "solid/2C4F7C"},
	{Slug: "angular", Label: "Angular", DefaultPort: 4200, ProjectType: Static, Language: "node", IconURL: iconBase + "angular/DD0031"},
	{Slug: "vue", Label: "Vue", DefaultPort: 8080, ProjectType: Static, Language: "node", IconURL: iconBase + "vuedotjs/4FC08D"},
	{Slug: "react", Label: "React", DefaultPort: 3000, ProjectType: Static, Language: "node", IconURL: iconBase + "react/61DAFB"},
	{Slug: "create-react-app", Label: "Create React App", DefaultPort: 3000, ProjectType: Static, Language: "node", IconURL: iconBase + "react/61DAFB"},
	{Slug: "docusaurus", Label: "Docusaurus", DefaultPort: 3000, ProjectType: Static, Language: "node", IconURL: iconBase + "docusaurus/3ECC5F"},
	{Slug: "rsbuild", Label: "Rsbuild", DefaultPort: 3000, ProjectType: Static, Language: "node", IconURL: iconBase + "rsbuild/FFC700"},
	{Slug: "nodejs", Label: "Node.js", DefaultPort: 3000, ProjectType: Server, Language: "node", IconURL: iconBase + "nodedotjs/339933"},
	{Slug: "python", Label: "Python", DefaultPort: 8000, ProjectType: Server, Language: "python", IconURL: iconBase + "python/3776AB"},
	{Slug: "fastapi", Label: "FastAPI", DefaultPort: 8000, ProjectType: Server, Language: "python", IconURL: iconBase + "fastapi/009688"},
	{Slug: "flask", Label: "Flask", DefaultPort: 5000, ProjectType: Server, Language: "python", IconURL: iconBase + "flask/000000"},
	{Slug: "django", Label: "Django", DefaultPort: 8000, ProjectType: Server, Language: "python", IconURL: iconBase + "django/092E20"},
	{Slug: "rails", Label: "Ruby on Rails", DefaultPort: 3000, ProjectType: Server, Language: "ruby", IconURL: iconBase + "rubyonrails/CC0000"},
	{Slug: "go", Label: "Go", DefaultPort: 8080, ProjectType: Server, Language: "go", IconURL: iconBase + "go/00ADD8"},
	{Slug: "rust", Label: "Rust", DefaultPort: 8080, ProjectType: Server, Language: "rust", IconURL: iconBase + "rust/000000"},
	{Slug: "java", Label: "Java", DefaultPort: 8080, ProjectType: Server, Language: "java", IconURL: iconBase + "openjdk/437291"},
	{Slug: "laravel", Label: "Laravel", DefaultPort: 8000, ProjectType: Server, Language: "php", IconURL: iconBase + "laravel/FF2D20"},
	{Slug: "dockerfile", Label: "Dockerfile", ProjectType: Server, Language: "generic", IconURL: iconBase + "docker/2496ED"},
	{Slug: "nixpacks", Label: "Nixpacks", ProjectType: Server, Language: "generic"},
	{Slug: "static", Label: "Static Site", ProjectType: Static, Language: "generic"},
}

// Builtin returns a copy of the built-in catalog.
func Builtin() Catalog {
	out := make(Catalog, len(builtin))
	copy(out, builtin)
	return out
}

// BySlug finds a preset by its exact slug.
func (c Catalog) BySlug(slug string) (Preset, bool) {
	for _, p := range c {
		if p.Slug == slug {
			return p, true
		}
	}
	return Preset{}, false
}

// Merge returns a catalog where each custom preset replaces the built-in
// with the same slug in place, and unknown slugs are appended in order.
// Entries with an empty slug are dropped.
func (c Catalog) Merge(custom []Preset) Catalog {
	out := make(Catalog, len(c), len(c)+len(custom))
	copy(out, c)
	index := make(map[string]int, len(out))
	for i, p := range out {
		index[p.Slug] = i
	}
	for _, p := range custom {
		if p.Slug == "" {
			continue
		}
		if p.Label == "" {
			p.Label = p.Slug
		}
		if p.ProjectType == "" {
			p.ProjectType = Server
		}
		if i, ok := index[p.Slug]; ok {
			out[i] = p
			continue
		}
		index[p.Slug] = len(out)
		out = append(out, p)
	}
	return out
}
