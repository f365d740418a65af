package ports

// VersionBumper reads and bumps the version field of package manifests.
//
//go:generate mockgen -source=versioner.go -destination=mocks/mock_versioner.go -package=mocks
type VersionBumper interface {
	// ReadVersion returns the manifest's version.
	ReadVersion(path string) (string, error)

	// BumpPatch increments the patch component in place and returns the new version.
	BumpPatch(path string) (string, error)
}
