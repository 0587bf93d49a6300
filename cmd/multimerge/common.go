package main

import (
	"fmt"
	"path/filepath"

	"github.com/javanhut/multimerge/internal/cas"
	"github.com/javanhut/multimerge/internal/config"
	"github.com/javanhut/multimerge/internal/fsproject"
	"github.com/javanhut/multimerge/internal/identity"
	"github.com/javanhut/multimerge/internal/mergelog"
	"github.com/javanhut/multimerge/internal/mergeproject"
	"github.com/javanhut/multimerge/internal/policy"
	"github.com/javanhut/multimerge/internal/resolver"
	"github.com/javanhut/multimerge/internal/store"
)

// loadProjects builds one fsproject.Project per root, in argument
// order, assigning Pid(0), Pid(1), ... so the output tree (always
// Pid(len(roots))) never collides with an input.
func loadProjects(roots []string) []mergeproject.Project {
	projects := make([]mergeproject.Project, len(roots))
	for i, root := range roots {
		projects[i] = fsproject.New(root, identity.NewPid(i))
	}
	return projects
}

// loadMatcher builds the policy.Matcher for outputDir from its layered
// config plus its optional policy.json rule file, defaulting to Replace
// when nothing names a fallback. A rule file's own "default" field, if
// set, takes precedence over Config.Policy.DefaultStrategy.
func loadMatcher(outputDir string) (*policy.Matcher, identity.Formatter, error) {
	cfg, err := config.LoadConfig(outputDir)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	policyFile, err := config.LoadPolicyFile(outputDir)
	if err != nil {
		return nil, nil, fmt.Errorf("load policy file: %w", err)
	}

	defaultStrategy := cfg.Policy.DefaultStrategy
	if policyFile.Default != "" {
		defaultStrategy = policyFile.Default
	}
	fallback, err := policy.StrategyFromString(defaultStrategy)
	if err != nil {
		return nil, nil, err
	}

	rules := make([]policy.Rule, len(policyFile.Rules))
	for i, r := range policyFile.Rules {
		strategy, err := policy.StrategyFromString(r.Strategy)
		if err != nil {
			return nil, nil, fmt.Errorf("policy.json rule %d: %w", i, err)
		}
		rules[i] = policy.Rule{Pattern: r.Glob, Strategy: strategy}
	}

	matcher, err := policy.NewMatcher(fallback, rules...)
	if err != nil {
		return nil, nil, err
	}

	formatter := identity.FormatterFromTemplate(cfg.Policy.RenameFormat)
	return matcher, formatter, nil
}

// loadBlobCAS builds the blob cache an Exporter should write through,
// per outputDir's Config.CAS.Backend: "file" opens a disk-backed
// FileCAS rooted at CAS.Dir (defaulting to <output>/.multimerge/blobs),
// anything else (including the unset default) uses an in-memory cache
// that only lives for this one export run.
func loadBlobCAS(outputDir string) (cas.CAS, error) {
	cfg, err := config.LoadConfig(outputDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cfg.CAS.Backend != "file" {
		return cas.NewMemoryCAS(), nil
	}

	dir := cfg.CAS.Dir
	if dir == "" {
		dir = filepath.Join(outputDir, ".multimerge", "blobs")
	}
	fileCAS, err := cas.NewFileCAS(dir)
	if err != nil {
		return nil, fmt.Errorf("open file CAS at %s: %w", dir, err)
	}
	return fileCAS, nil
}

// buildWorkspace wires a resolver.Workspace for the given project
// roots and outputDir's effective policy, logging through both logrus
// and (when db is non-nil) the plan database's audit trail.
func buildWorkspace(roots []string, outputDir string, db *store.DB) (*resolver.Workspace, error) {
	projects := loadProjects(roots)
	matcher, formatter, err := loadMatcher(outputDir)
	if err != nil {
		return nil, err
	}

	ws := resolver.NewWorkspace(projects, matcher.Strategy)
	ws.Formatter = formatter

	loggers := mergelog.Multi{mergelog.NewLogrusLogger(log)}
	if db != nil {
		loggers = append(loggers, mergelog.NewAuditLogger(db))
	}
	ws.Logger = loggers

	return ws, nil
}
