package fixtures

import (
	_ "embed"
	"os"
	"path/filepath"
	"testing"
)

//go:embed testdata/kernel.yaml
var KernelFile []byte

//go:embed testdata/foo.yaml.tmpl
var FooConfigurationTemplate []byte

// FooConfigurationFileName is the name the kernel file refers to the foo
// configuration template by.
const FooConfigurationFileName = "foo.yaml.tmpl"

// WriteFile writes data to name inside a fresh test directory and returns the
// path.
func WriteFile(t testing.TB, name string, data []byte) string {
	t.Helper()
	return writeFile(t, t.TempDir(), name, data)
}

// WriteKernelFile writes KernelFile and the templates it refers to into a
// fresh test directory and returns the kernel file path.
func WriteKernelFile(t testing.TB) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, FooConfigurationFileName, FooConfigurationTemplate)
	return writeFile(t, dir, "kernel.yaml", KernelFile)
}

func writeFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", path, err)
	}
	return path
}
