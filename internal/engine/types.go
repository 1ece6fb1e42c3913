package engine

// DefaultVersion is the symbolic version that binds every selected
// product to its declared default_version.
const DefaultVersion = "default"

// defaultBuildDir is used when neither the persisted selection, the
// defaults block, nor the command line names a build directory.
const defaultBuildDir = "build"

// Overrides carries the per-run command-line selection overrides.
// Zero values mean "not supplied".
type Overrides struct {
	Products []string // raw flag values; an entry may hold several space-separated names
	Mode     string
	Site     string
	Version  string
	BuildDir string
}

// changesSelection reports whether any selection-changing override was
// supplied. A build-dir override alone does not count: it relocates the
// build but selects nothing.
func (o Overrides) changesSelection() bool {
	return len(o.Products) > 0 || o.Mode != "" || o.Site != "" || o.Version != ""
}

// Resolved is the effective selection for one run after precedence
// merging, validation, and version binding.
type Resolved struct {
	Products      []string // sorted and de-duplicated
	Mode          string
	Site          string
	Version       string // symbolic; may be DefaultVersion
	ActualVersion string // concrete; filled in by Bind
	BuildDir      string // absolute
	Init          bool
}

// RunOptions configures a configure run.
type RunOptions struct {
	Overrides Overrides
	Init      bool
	Write     bool
	NoCache   bool
}

// RunResult reports what a run produced.
type RunResult struct {
	Selection      *Resolved
	WroteBuildConf bool
}
