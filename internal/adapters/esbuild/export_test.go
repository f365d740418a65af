package esbuild

// GlobalName exposes globalName for tests.
func GlobalName(file string) string {
	return globalName(file)
}
