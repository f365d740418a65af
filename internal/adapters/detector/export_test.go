package detector

// NewNodeProbeFor creates a probe for an arbitrary binary name.
func NewNodeProbeFor(binary string) *NodeProbe {
	return &NodeProbe{binary: binary}
}
