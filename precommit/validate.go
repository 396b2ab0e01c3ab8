package precommit

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/stocktools/core/errors"
)

var (
	// revTagRegex matches pinned version tags: "23.7.0", "v4.4.0",
	// "6.0.0b2", "v2.3.0-1" and similar release-style tags.
	revTagRegex = regexp.MustCompile(`^v?\d+(\.\d+)*([.-]?[0-9A-Za-z]+)*$`)

	// revShaRegex matches a frozen full commit hash.
	revShaRegex = regexp.MustCompile(`^[0-9a-f]{40}$`)

	// repoURLRegex matches cloneable repository references.
	repoURLRegex = regexp.MustCompile(`^([a-z][a-z0-9+.-]*://\S+|git@\S+:\S+)$`)
)

// Validate checks the structural properties of the configuration: every
// repo stanza names a source and a non-empty hook list, remote stanzas pin
// a well-formed rev, hook ids are non-empty and unique within their
// stanza, and pattern/stage options are well-formed. It never contacts a
// repository or executes a hook.
func (c *Config) Validate() error {
	if len(c.Repos) == 0 {
		return errors.New(errors.ErrCodeHookValidation, "configuration must declare at least one repo")
	}

	if c.Exclude != "" {
		if _, err := regexp.Compile(c.Exclude); err != nil {
			return errors.Wrap(err, errors.ErrCodeHookValidation, "global 'exclude' is not a valid regular expression").
				WithDetail("pattern", c.Exclude)
		}
	}

	for _, stage := range c.DefaultStages {
		if err := validateStage(stage); err != nil {
			return err
		}
	}

	for i, repo := range c.Repos {
		r := repo
		if err := validateRepo(&r); err != nil {
			if stockErr, ok := err.(*errors.StockError); ok {
				return stockErr.WithDetail("repoIndex", i)
			}
			return err
		}
	}

	return nil
}

func validateRepo(r *Repo) error {
	if r.Repo == "" {
		return errors.New(errors.ErrCodeHookValidation, "repo stanza is missing the 'repo' field")
	}

	if r.IsRemote() {
		if !repoURLRegex.MatchString(r.Repo) {
			return errors.New(errors.ErrCodeHookValidation,
				fmt.Sprintf("repo '%s' is not a repository URL (or 'local'/'meta')", r.Repo)).
				WithDetail("repo", r.Repo)
		}
		if r.Rev == "" {
			return errors.New(errors.ErrCodeInvalidRevision,
				fmt.Sprintf("repo '%s' must pin a rev", r.Repo)).
				WithDetail("repo", r.Repo)
		}
		if !validRev(r.Rev) {
			return errors.InvalidRevision(r.Repo, r.Rev)
		}
	} else if r.Rev != "" {
		return errors.New(errors.ErrCodeHookValidation,
			fmt.Sprintf("'%s' repo must not declare a rev", r.Repo)).
			WithDetail("repo", r.Repo)
	}

	if len(r.Hooks) == 0 {
		return errors.New(errors.ErrCodeHookValidation,
			fmt.Sprintf("repo '%s' must declare at least one hook", r.Repo)).
			WithDetail("repo", r.Repo)
	}

	seen := make(map[string]bool, len(r.Hooks))
	for _, hook := range r.Hooks {
		h := hook
		if err := validateHook(r, &h); err != nil {
			return err
		}
		if seen[h.ID] {
			return errors.DuplicateHook(r.Repo, h.ID)
		}
		seen[h.ID] = true
	}

	return nil
}

func validateHook(r *Repo, h *Hook) error {
	if strings.TrimSpace(h.ID) == "" {
		return errors.New(errors.ErrCodeHookValidation,
			fmt.Sprintf("hook in repo '%s' is missing an id", r.Repo)).
			WithDetail("repo", r.Repo)
	}

	if r.IsLocal() {
		if h.Entry == "" {
			return errors.New(errors.ErrCodeHookValidation,
				fmt.Sprintf("local hook '%s' must declare an entry", h.ID)).
				WithDetail("hook", h.ID)
		}
		if h.Language == "" {
			return errors.New(errors.ErrCodeHookValidation,
				fmt.Sprintf("local hook '%s' must declare a language", h.ID)).
				WithDetail("hook", h.ID)
		}
	} else if h.Entry != "" || h.Language != "" {
		return errors.New(errors.ErrCodeHookValidation,
			fmt.Sprintf("hook '%s' may only set entry/language in a 'local' repo", h.ID)).
			WithDetail("repo", r.Repo).
			WithDetail("hook", h.ID)
	}

	for _, pattern := range []struct{ field, value string }{
		{"files", h.Files},
		{"exclude", h.Exclude},
	} {
		if pattern.value == "" {
			continue
		}
		if _, err := regexp.Compile(pattern.value); err != nil {
			return errors.Wrap(err, errors.ErrCodeHookValidation,
				fmt.Sprintf("hook '%s': '%s' is not a valid regular expression", h.ID, pattern.field)).
				WithDetail("hook", h.ID).
				WithDetail("pattern", pattern.value)
		}
	}

	for _, stage := range h.Stages {
		if err := validateStage(stage); err != nil {
			if stockErr, ok := err.(*errors.StockError); ok {
				return stockErr.WithDetail("hook", h.ID)
			}
			return err
		}
	}

	return nil
}

func validateStage(stage string) error {
	if !knownStages[stage] {
		return errors.New(errors.ErrCodeHookValidation,
			fmt.Sprintf("unknown stage '%s' (known stages: %s)", stage, strings.Join(KnownStages(), ", "))).
			WithDetail("stage", stage)
	}
	return nil
}

func validRev(rev string) bool {
	return revTagRegex.MatchString(rev) || revShaRegex.MatchString(rev)
}
