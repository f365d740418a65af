package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ybuild/internal/adapters/cas"      //nolint:depguard // Wired in app layer
	"go.trai.ch/ybuild/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/ybuild/internal/adapters/detector" //nolint:depguard // Wired in app layer
	"go.trai.ch/ybuild/internal/adapters/esbuild"  //nolint:depguard // Wired in app layer
	"go.trai.ch/ybuild/internal/adapters/fs"       //nolint:depguard // Wired in app layer
	"go.trai.ch/ybuild/internal/adapters/jsspec"   //nolint:depguard // Wired in app layer
	"go.trai.ch/ybuild/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/ybuild/internal/adapters/npm"      //nolint:depguard // Wired in app layer
	"go.trai.ch/ybuild/internal/adapters/server"   //nolint:depguard // Wired in app layer
	"go.trai.ch/ybuild/internal/adapters/shell"    //nolint:depguard // Wired in app layer
	"go.trai.ch/ybuild/internal/adapters/watcher"  //nolint:depguard // Wired in app layer
	"go.trai.ch/ybuild/internal/core/ports"
)

// AppNodeID is the unique identifier for the main App Graft node.
const AppNodeID graft.ID = "app.main"

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			cas.NodeID,
			fs.HasherNodeID,
			fs.ResolverNodeID,
			shell.NodeID,
			esbuild.NodeID,
			npm.NodeID,
			jsspec.NodeID,
			server.NodeID,
			watcher.NodeID,
			detector.RuntimeNodeID,
			detector.NodeID,
		},
		Run: runAppNode,
	})
}

//nolint:cyclop // one lookup per dependency
func runAppNode(ctx context.Context) (*App, error) {
	var (
		a   Adapters
		err error
	)

	if a.ConfigLoader, err = graft.Dep[ports.ConfigLoader](ctx); err != nil {
		return nil, err
	}
	if a.Logger, err = graft.Dep[ports.Logger](ctx); err != nil {
		return nil, err
	}
	if a.Store, err = graft.Dep[ports.BuildInfoStore](ctx); err != nil {
		return nil, err
	}
	if a.Hasher, err = graft.Dep[ports.Hasher](ctx); err != nil {
		return nil, err
	}
	if a.Resolver, err = graft.Dep[ports.InputResolver](ctx); err != nil {
		return nil, err
	}
	if a.Executor, err = graft.Dep[ports.Executor](ctx); err != nil {
		return nil, err
	}
	if a.Transpiler, err = graft.Dep[ports.Transpiler](ctx); err != nil {
		return nil, err
	}
	if a.Bumper, err = graft.Dep[ports.VersionBumper](ctx); err != nil {
		return nil, err
	}
	if a.Specs, err = graft.Dep[ports.SpecRunner](ctx); err != nil {
		return nil, err
	}
	if a.Server, err = graft.Dep[ports.DevServer](ctx); err != nil {
		return nil, err
	}
	if a.Watchers, err = graft.Dep[ports.WatcherFactory](ctx); err != nil {
		return nil, err
	}
	if a.Runtime, err = graft.Dep[ports.RuntimeProbe](ctx); err != nil {
		return nil, err
	}
	if a.Environment, err = graft.Dep[*detector.Environment](ctx); err != nil {
		return nil, err
	}

	return New(a), nil
}
