package detector

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/ybuild/internal/core/domain"
	"go.trai.ch/ybuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.RuntimeProbe = (*NodeProbe)(nil)

// NodeProbe reports the version of the node binary on PATH.
type NodeProbe struct {
	binary string
}

// NewNodeProbe creates a probe for the "node" binary.
func NewNodeProbe() *NodeProbe {
	return &NodeProbe{binary: "node"}
}

// NodeVersion runs `node --version`.
func (p *NodeProbe) NodeVersion(ctx context.Context) (string, error) {
	path, err := exec.LookPath(p.binary)
	if err != nil {
		return "", zerr.With(domain.ErrRuntimeNotFound, "binary", p.binary)
	}

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, path, "--version")
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrRuntimeNotFound.Error()), "binary", path)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// NeedsRegenerator reports whether a runtime of the given version lacks native
// generators. Versions that do not parse as semver are treated as modern.
func NeedsRegenerator(version string) bool {
	v, err := semver.NewVersion(strings.TrimSpace(version))
	if err != nil {
		return false
	}
	c, err := semver.NewConstraint(domain.RegeneratorNodeConstraint)
	if err != nil {
		return false
	}
	return c.Check(v)
}

// DetectRegenerator probes the runtime and applies NeedsRegenerator.
// A missing runtime means no lowering.
func DetectRegenerator(ctx context.Context, probe ports.RuntimeProbe) bool {
	version, err := probe.NodeVersion(ctx)
	if err != nil {
		return false
	}
	return NeedsRegenerator(version)
}
