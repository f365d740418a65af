// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/ybuild/internal/adapters/cas"
	_ "go.trai.ch/ybuild/internal/adapters/config"
	_ "go.trai.ch/ybuild/internal/adapters/detector"
	_ "go.trai.ch/ybuild/internal/adapters/esbuild"
	_ "go.trai.ch/ybuild/internal/adapters/fs"
	_ "go.trai.ch/ybuild/internal/adapters/jsspec"
	_ "go.trai.ch/ybuild/internal/adapters/logger"
	_ "go.trai.ch/ybuild/internal/adapters/npm"
	_ "go.trai.ch/ybuild/internal/adapters/server"
	_ "go.trai.ch/ybuild/internal/adapters/shell"
	_ "go.trai.ch/ybuild/internal/adapters/watcher"
	// Register the app node.
	_ "go.trai.ch/ybuild/internal/app"
)
