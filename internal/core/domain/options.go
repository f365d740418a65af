package domain

import (
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// ModuleType is the module wrapper emitted around the bundle.
type ModuleType string

// Supported module types.
const (
	ModuleAMD          ModuleType = "amd"
	ModuleAMDStrict    ModuleType = "amdStrict"
	ModuleCommon       ModuleType = "common"
	ModuleCommonStrict ModuleType = "commonStrict"
	ModuleIgnore       ModuleType = "ignore"
	ModuleSystem       ModuleType = "system"
	ModuleUMD          ModuleType = "umd"
	ModuleUMDStrict    ModuleType = "umdStrict"
)

var moduleTypes = []ModuleType{
	ModuleAMD, ModuleAMDStrict, ModuleCommon, ModuleCommonStrict,
	ModuleIgnore, ModuleSystem, ModuleUMD, ModuleUMDStrict,
}

// ParseModuleType validates s as one of the supported module types.
func ParseModuleType(s string) (ModuleType, error) {
	for _, m := range moduleTypes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", zerr.With(ErrInvalidModuleType, "export", s)
}

// Strict reports whether the module body is emitted in strict mode.
func (m ModuleType) Strict() bool {
	return strings.HasSuffix(string(m), "Strict")
}

// Option defaults.
const (
	DefaultExport       = ModuleIgnore
	DefaultBundleName   = "y-webrtc.js"
	DefaultTestPort     = "8888"
	DefaultTestFiles    = "src/**/*.js"
	DefaultExamplesPort = "3000"
	DefaultJobs         = 1

	// RegeneratorNodeConstraint selects runtimes that need generators lowered.
	RegeneratorNodeConstraint = "< 0.12.0"
)

// Options are the user-facing build options. They are fixed for one invocation.
type Options struct {
	Export       ModuleType
	Name         string
	TestPort     string
	TestFiles    string
	Regenerator  bool
	ExamplesPort string
}

// DefaultOptions returns the options used when no flag overrides them.
func DefaultOptions() Options {
	return Options{
		Export:       DefaultExport,
		Name:         DefaultBundleName,
		TestPort:     DefaultTestPort,
		TestFiles:    DefaultTestFiles,
		ExamplesPort: DefaultExamplesPort,
	}
}

// Fingerprint returns the option values that influence transform output.
func (o Options) Fingerprint() map[string]string {
	return map[string]string{
		"export":      string(o.Export),
		"name":        o.Name,
		"testfiles":   o.TestFiles,
		"regenerator": strconv.FormatBool(o.Regenerator),
	}
}

// ParsePort validates s as a TCP port number and returns it unchanged.
func ParsePort(s string) (string, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 65535 {
		return "", zerr.With(ErrInvalidPort, "port", s)
	}
	return s, nil
}

// ParseBool accepts true/false, 1/0 and yes/no in any case.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	default:
		return false, zerr.With(ErrInvalidBool, "value", s)
	}
}
