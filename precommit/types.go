package precommit

import "sort"

// RepoLocal and RepoMeta are the two special repo references understood
// without a remote clone: "local" hooks run from the project itself and
// "meta" hooks check the configuration file.
const (
	RepoLocal = "local"
	RepoMeta  = "meta"
)

// Config is a parsed .pre-commit-config.yaml. Repos is an ordered list;
// the external runner executes repos, and hooks within a repo, in the
// order they are declared.
type Config struct {
	Repos                   []Repo   `yaml:"repos" json:"repos" jsonschema:"required,description=Ordered list of hook sources"`
	DefaultStages           []string `yaml:"default_stages,omitempty" json:"default_stages,omitempty" jsonschema:"description=Stages applied to hooks that do not declare their own"`
	Exclude                 string   `yaml:"exclude,omitempty" json:"exclude,omitempty" jsonschema:"description=Global file exclusion pattern (regular expression)"`
	FailFast                bool     `yaml:"fail_fast,omitempty" json:"fail_fast,omitempty" jsonschema:"description=Stop running hooks after the first failure"`
	MinimumPreCommitVersion string   `yaml:"minimum_pre_commit_version,omitempty" json:"minimum_pre_commit_version,omitempty" jsonschema:"description=Minimum version of the external runner required by this config"`
}

// Repo is one source stanza: a versioned external collection of hooks.
type Repo struct {
	Repo  string `yaml:"repo" json:"repo" jsonschema:"required,description=Repository URL of the hook collection or the special 'local'/'meta' source"`
	Rev   string `yaml:"rev,omitempty" json:"rev,omitempty" jsonschema:"description=Pinned version tag of the collection (required for remote repos)"`
	Hooks []Hook `yaml:"hooks" json:"hooks" jsonschema:"required,description=Ordered list of hooks to run from this source"`
}

// IsLocal reports whether the stanza declares project-local hooks.
func (r *Repo) IsLocal() bool { return r.Repo == RepoLocal }

// IsMeta reports whether the stanza declares meta hooks.
func (r *Repo) IsMeta() bool { return r.Repo == RepoMeta }

// IsRemote reports whether the stanza references a cloneable collection
// and therefore must carry a pinned rev.
func (r *Repo) IsRemote() bool { return !r.IsLocal() && !r.IsMeta() }

// Hook is a single hook declaration. ID is the only required field;
// everything else is passed through to the external runner verbatim.
type Hook struct {
	ID                     string   `yaml:"id" json:"id" jsonschema:"required,description=Identifier of the hook within its collection"`
	Name                   string   `yaml:"name,omitempty" json:"name,omitempty" jsonschema:"description=Override for the hook's display name"`
	Alias                  string   `yaml:"alias,omitempty" json:"alias,omitempty" jsonschema:"description=Additional id the hook can be invoked by"`
	Entry                  string   `yaml:"entry,omitempty" json:"entry,omitempty" jsonschema:"description=Command to run (local hooks only)"`
	Language               string   `yaml:"language,omitempty" json:"language,omitempty" jsonschema:"description=Language the hook is written in (local hooks only)"`
	LanguageVersion        string   `yaml:"language_version,omitempty" json:"language_version,omitempty" jsonschema:"description=Language version to install the hook with (e.g. python3)"`
	AdditionalDependencies []string `yaml:"additional_dependencies,omitempty" json:"additional_dependencies,omitempty" jsonschema:"description=Extra packages installed into the hook's environment"`
	Args                   []string `yaml:"args,omitempty" json:"args,omitempty" jsonschema:"description=Extra command-line arguments passed to the hook"`
	Files                  string   `yaml:"files,omitempty" json:"files,omitempty" jsonschema:"description=File inclusion pattern (regular expression)"`
	Exclude                string   `yaml:"exclude,omitempty" json:"exclude,omitempty" jsonschema:"description=File exclusion pattern (regular expression)"`
	Types                  []string `yaml:"types,omitempty" json:"types,omitempty" jsonschema:"description=File types the hook runs on"`
	Stages                 []string `yaml:"stages,omitempty" json:"stages,omitempty" jsonschema:"description=Git hook stages the hook runs at"`
	AlwaysRun              bool     `yaml:"always_run,omitempty" json:"always_run,omitempty" jsonschema:"description=Run the hook even when no files match"`
	PassFilenames          *bool    `yaml:"pass_filenames,omitempty" json:"pass_filenames,omitempty" jsonschema:"description=Whether matched filenames are passed to the hook"`
	Verbose                bool     `yaml:"verbose,omitempty" json:"verbose,omitempty" jsonschema:"description=Print hook output even on success"`
}

// knownStages is the set of git hook stages the external runner accepts.
var knownStages = map[string]bool{
	"commit":             true,
	"merge-commit":       true,
	"push":               true,
	"manual":             true,
	"pre-commit":         true,
	"pre-merge-commit":   true,
	"pre-push":           true,
	"pre-rebase":         true,
	"prepare-commit-msg": true,
	"commit-msg":         true,
	"post-checkout":      true,
	"post-commit":        true,
	"post-merge":         true,
	"post-rewrite":       true,
}

// KnownStages returns the accepted stage names in sorted order.
func KnownStages() []string {
	stages := make([]string, 0, len(knownStages))
	for s := range knownStages {
		stages = append(stages, s)
	}
	sort.Strings(stages)
	return stages
}
