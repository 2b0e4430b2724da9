package entities

// Implementation is a Python implementation family
type Implementation string

// Supported implementation families
const (
	ImplementationCPython Implementation = "cpython"
	ImplementationPyPy    Implementation = "pypy"
)

// ImplementationOrder is the order families appear in rendered output
var ImplementationOrder = []Implementation{ImplementationPyPy, ImplementationCPython}

// Rank returns the position of the implementation in ImplementationOrder,
// or len(ImplementationOrder) for an unknown family.
func (i Implementation) Rank() int {
	for idx, impl := range ImplementationOrder {
		if impl == i {
			return idx
		}
	}
	return len(ImplementationOrder)
}

// Download is one selectable build artifact. SHA256 is empty until
// checksum enrichment finds a value for Filename.
type Download struct {
	Version        Version
	Triple         PlatformTriple
	Implementation Implementation
	Filename       string
	URL            string
	SHA256         string
}

// HasSHA256 reports whether a checksum is known
func (d Download) HasSHA256() bool {
	return d.SHA256 != ""
}

// WithSHA256 returns a copy of d carrying the given checksum
func (d Download) WithSHA256(sum string) Download {
	d.SHA256 = sum
	return d
}

// UvDownload is one uv release asset with its published checksum
type UvDownload struct {
	Version Version
	Triple  PlatformTriple
	URL     string
	SHA256  string
}
