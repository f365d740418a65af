// Package pipeline registers the y-webrtc build, test, release and dev tasks.
package pipeline

import (
	"context"

	"go.trai.ch/ybuild/internal/core/domain"
	"go.trai.ch/ybuild/internal/core/ports"
)

// Task names.
const (
	TaskDeployBuild           = "deploy:build"
	TaskDeployUpdateSubmodule = "deploy:updateSubmodule"
	TaskDeployCopy            = "deploy:copy"
	TaskDeployBump            = "deploy:bump"
	TaskDeploy                = "deploy"
	TaskBuildDeploy           = "build:deploy"
	TaskBuildTest             = "build:test"
	TaskTest                  = "test"
	TaskDevNode               = "dev:node"
	TaskDevBrowser            = "dev:browser"
	TaskDev                   = "dev"
	TaskCopyDist              = "copy:dist"
	TaskDevExamples           = "dev:examples"
	TaskDefault               = "default"
)

// WatchLoop reruns tasks when files matching a binding change.
type WatchLoop interface {
	Run(ctx context.Context, root string, bindings []domain.WatchBinding) error
}

// Deps are the collaborators task bodies call into.
type Deps struct {
	Resolver   ports.InputResolver
	Transpiler ports.Transpiler
	Executor   ports.Executor
	Bumper     ports.VersionBumper
	Specs      ports.SpecRunner
	Server     ports.DevServer
	Watch      WatchLoop
	Logger     ports.Logger
}

// Pipeline builds the task graph for one project and one set of options.
type Pipeline struct {
	Deps

	project *domain.Project
	opts    domain.Options
}

// New creates a Pipeline. opts must already be validated.
func New(project *domain.Project, opts domain.Options, deps Deps) *Pipeline {
	return &Pipeline{
		Deps:    deps,
		project: project,
		opts:    opts,
	}
}

// Graph registers every task and validates the result.
func (p *Pipeline) Graph() (*domain.Graph, error) {
	g := domain.NewGraph()
	g.SetRoot(p.project.Root)

	for _, t := range p.tasks() {
		if err := g.AddTask(t); err != nil {
			return nil, err
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func (p *Pipeline) tasks() []*domain.Task {
	layout := p.project.Layout
	name := p.opts.Name
	fingerprint := p.fingerprint()

	return []*domain.Task{
		{
			Name:        domain.NewInternedString(TaskDeployBuild),
			Description: "Concatenate, transpile and minify the library into the dist directory",
			Inputs:      domain.NewInternedStrings(layout.SrcFiles().Strings()),
			Outputs:     domain.NewInternedStrings([]string{layout.BundlePath(name), layout.BundleMapPath(name)}),
			Fingerprint: fingerprint,
			Cacheable:   true,
			Action:      p.deployBuild,
		},
		{
			Name:        domain.NewInternedString(TaskDeployUpdateSubmodule),
			Description: "Initialize and update git submodules",
			Action:      p.updateSubmodule,
		},
		{
			Name:        domain.NewInternedString(TaskDeployCopy),
			Description: "Copy the readme into the dist directory",
			Outputs:     domain.NewInternedStrings([]string{p.distReadme()}),
			Action:      p.copyReadme,
		},
		{
			Name:        domain.NewInternedString(TaskDeployBump),
			Description: "Bump the patch version of every manifest",
			Outputs:     domain.NewInternedStrings(layout.Manifests),
			Action:      p.bump,
		},
		{
			Name:        domain.NewInternedString(TaskDeploy),
			Description: "Lint, commit, tag and push a release",
			Dependencies: domain.NewInternedStrings([]string{
				TaskDeployUpdateSubmodule,
				TaskDeployBump,
				TaskDeployBuild,
				TaskDeployCopy,
			}),
			Action: p.release,
		},
		{
			Name:         domain.NewInternedString(TaskBuildDeploy),
			Description:  "Build this library for deployment",
			Dependencies: domain.NewInternedStrings([]string{TaskDeploy}),
		},
		{
			Name:        domain.NewInternedString(TaskBuildTest),
			Description: "Transpile the library and its specs for testing",
			Inputs:      domain.NewInternedStrings(append(layout.SrcFiles().Strings(), p.opts.TestFiles)),
			Outputs:     domain.NewInternedStrings([]string{name, layout.BuildDir}),
			Fingerprint: fingerprint,
			Cacheable:   true,
			Action:      p.buildTest,
		},
		{
			Name:         domain.NewInternedString(TaskTest),
			Description:  "Run the specs",
			Dependencies: domain.NewInternedStrings([]string{TaskBuildTest}),
			Action:       p.test,
		},
		{
			Name:         domain.NewInternedString(TaskDevNode),
			Description:  "Rerun the specs whenever sources change",
			Dependencies: domain.NewInternedStrings([]string{TaskTest}),
			Persistent:   true,
			Action:       p.devNode,
		},
		{
			Name:         domain.NewInternedString(TaskDevBrowser),
			Description:  "Rebuild on changes and serve the spec runner on the test port",
			Dependencies: domain.NewInternedStrings([]string{TaskBuildTest}),
			Persistent:   true,
			Action:       p.devBrowser,
		},
		{
			Name:         domain.NewInternedString(TaskDev),
			Description:  "Run dev:browser and dev:node together",
			Dependencies: domain.NewInternedStrings([]string{TaskBuildTest}),
			Persistent:   true,
			Action:       p.dev,
		},
		{
			Name:         domain.NewInternedString(TaskCopyDist),
			Description:  "Copy the release bundle into the examples",
			Dependencies: domain.NewInternedStrings([]string{TaskDeployBuild}),
			Outputs:      domain.NewInternedStrings(p.vendorBundle()),
			Action:       p.copyDist,
		},
		{
			Name:         domain.NewInternedString(TaskDevExamples),
			Description:  "Rebuild the examples bundle on changes and serve the examples",
			Dependencies: domain.NewInternedStrings([]string{TaskCopyDist}),
			Persistent:   true,
			Action:       p.devExamples,
		},
		{
			Name:         domain.NewInternedString(TaskDefault),
			Description:  "Run the specs",
			Dependencies: domain.NewInternedStrings([]string{TaskTest}),
		},
	}
}

// fingerprint includes the transpile target next to the option values.
func (p *Pipeline) fingerprint() map[string]string {
	fp := p.opts.Fingerprint()
	fp["target"] = p.project.Transpile.Target
	return fp
}
