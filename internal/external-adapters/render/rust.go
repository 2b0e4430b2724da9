package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/ochairo/pyfinder/internal/domain/entities"
)

const generatedHeader = "// Generated by pyfinder. DO NOT EDIT.\n"

// RustRenderer emits Rust include files holding the lookup tables
type RustRenderer struct{}

// RenderPython writes the PYTHON_VERSIONS table
func (r *RustRenderer) RenderPython(w io.Writer, downloads []entities.Download) error {
	var b strings.Builder
	b.WriteString(generatedHeader)
	b.WriteString("// To regenerate, run `pyfinder python > downloads.inc`.\n")
	b.WriteString("use std::borrow::Cow;\n")
	b.WriteString("pub const PYTHON_VERSIONS: &[(PythonVersion, &str, Option<&str>)] = &[\n")

	for _, d := range downloads {
		sha := "None"
		if d.HasSHA256() {
			sha = fmt.Sprintf("Some(%q)", d.SHA256)
		}
		fmt.Fprintf(&b,
			"    (PythonVersion { name: Cow::Borrowed(%q), arch: Cow::Borrowed(%q), os: Cow::Borrowed(%q), major: %d, minor: %d, patch: %d, suffix: None }, %q, %s),\n",
			string(d.Implementation), d.Triple.Architecture, d.Triple.Platform,
			d.Version.Major, d.Version.Minor, d.Version.Patch, d.URL, sha)
	}

	b.WriteString("];\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderUv writes the UV_DOWNLOADS table
func (r *RustRenderer) RenderUv(w io.Writer, downloads []entities.UvDownload) error {
	var b strings.Builder
	b.WriteString(generatedHeader)
	b.WriteString("// To regenerate, run `pyfinder uv > uv_downloads.inc`.\n")
	b.WriteString("use std::borrow::Cow;\n")
	b.WriteString("pub const UV_DOWNLOADS: &[UvDownload] = &[\n")

	for _, d := range downloads {
		env := "None"
		if d.Triple.Environment != "" {
			env = fmt.Sprintf("Some(Cow::Borrowed(%q))", d.Triple.Environment)
		}
		fmt.Fprintf(&b,
			"    UvDownload {arch: Cow::Borrowed(%q), os: Cow::Borrowed(%q), environment: %s, major: %d, minor: %d, patch: %d, suffix: None, url: Cow::Borrowed(%q), sha256: Cow::Borrowed(%q) },\n",
			d.Triple.Architecture, d.Triple.Platform, env,
			d.Version.Major, d.Version.Minor, d.Version.Patch, d.URL, d.SHA256)
	}

	b.WriteString("];\n")
	_, err := io.WriteString(w, b.String())
	return err
}
