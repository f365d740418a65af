package domain

import "go.trai.ch/zerr"

var (
	// ErrTaskAlreadyExists is returned when attempting to add a task with a name that already exists.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrMissingDependency is returned when a task references a dependency that doesn't exist in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when a cycle is detected in the task dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrTaskNotFound is returned when a requested task is not found in the graph.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrInvalidTaskName is returned when a task name is empty or contains whitespace.
	ErrInvalidTaskName = zerr.New("invalid task name")

	// ErrOutputConflict is returned when two tasks that may run concurrently declare overlapping outputs.
	ErrOutputConflict = zerr.New("tasks declare overlapping outputs")

	// ErrOutputPathOutsideRoot is returned when an output path is outside the project root.
	ErrOutputPathOutsideRoot = zerr.New("output path is outside project root")

	// ErrInputNotFound is returned when a literal input pattern does not exist.
	ErrInputNotFound = zerr.New("input not found")

	// ErrInvalidPattern is returned when a glob pattern cannot be compiled.
	ErrInvalidPattern = zerr.New("invalid glob pattern")

	// ErrInvalidModuleType is returned when the export option names an unknown module format.
	ErrInvalidModuleType = zerr.New("invalid module type, expected one of amd, amdStrict, common, commonStrict, ignore, system, umd, umdStrict")

	// ErrInvalidPort is returned when a port option is not a valid TCP port.
	ErrInvalidPort = zerr.New("invalid port")

	// ErrInvalidBool is returned when a boolean option cannot be parsed.
	ErrInvalidBool = zerr.New("invalid boolean value")

	// ErrInvalidJobs is returned when the parallelism option is less than one.
	ErrInvalidJobs = zerr.New("jobs must be at least 1")

	// ErrStoreCreateFailed is returned when the build info store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create build info store directory")

	// ErrStoreReadFailed is returned when the build info cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read build info")

	// ErrStoreUnmarshalFailed is returned when the build info cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal build info")

	// ErrStoreMarshalFailed is returned when the build info cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal build info")

	// ErrStoreWriteFailed is returned when the build info cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build info")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnsupportedConfigVersion is returned when the config file declares an unknown schema version.
	ErrUnsupportedConfigVersion = zerr.New("unsupported config version")

	// ErrInvalidLayoutPath is returned when a configured path is absolute or leaves the project root.
	ErrInvalidLayoutPath = zerr.New("layout path must be relative to the project root")

	// ErrBuildExecutionFailed is returned when the build execution fails.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrTaskExecutionFailed is returned when a task execution fails.
	ErrTaskExecutionFailed = zerr.New("task execution failed")

	// ErrInputResolutionFailed is returned when input resolution fails.
	ErrInputResolutionFailed = zerr.New("failed to resolve inputs")

	// ErrInputHashComputationFailed is returned when input hash computation fails.
	ErrInputHashComputationFailed = zerr.New("failed to compute input hash")

	// ErrFailedToGetRoot is returned when the project root path cannot be determined.
	ErrFailedToGetRoot = zerr.New("failed to get absolute path of project root")

	// ErrFailedToResolveRelativePath is returned when a relative path cannot be resolved.
	ErrFailedToResolveRelativePath = zerr.New("failed to resolve relative path")

	// ErrFailedToCleanOutput is returned when cleaning an output file fails.
	ErrFailedToCleanOutput = zerr.New("failed to clean output file")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrFileWriteFailed is returned when an artifact cannot be written.
	ErrFileWriteFailed = zerr.New("failed to write file")

	// ErrPathStatFailed is returned when stating a path fails.
	ErrPathStatFailed = zerr.New("failed to stat path")

	// ErrWriteHashFailed is returned when writing the hash to the digest fails.
	ErrWriteHashFailed = zerr.New("failed to write hash to digest")

	// ErrCommandFailed is returned when a subprocess exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrCommandStartFailed is returned when a subprocess cannot be started.
	ErrCommandStartFailed = zerr.New("failed to start command")

	// ErrTransformFailed is returned when the JavaScript transformer rejects its input.
	ErrTransformFailed = zerr.New("transform failed")

	// ErrSpecsFailed is returned when at least one spec fails.
	ErrSpecsFailed = zerr.New("specs failed")

	// ErrSpecLoadFailed is returned when a spec file cannot be read.
	ErrSpecLoadFailed = zerr.New("failed to load spec file")

	// ErrInvalidVersion is returned when a manifest carries a version that is not valid semver.
	ErrInvalidVersion = zerr.New("invalid semantic version")

	// ErrVersionFieldMissing is returned when a manifest has no top-level version field.
	ErrVersionFieldMissing = zerr.New("manifest has no version field")

	// ErrServerFailed is returned when a development server stops unexpectedly.
	ErrServerFailed = zerr.New("development server failed")

	// ErrWatcherFailed is returned when the file watcher cannot be started.
	ErrWatcherFailed = zerr.New("failed to start file watcher")

	// ErrRuntimeNotFound is returned when no Node.js runtime is available.
	ErrRuntimeNotFound = zerr.New("node runtime not found")
)
