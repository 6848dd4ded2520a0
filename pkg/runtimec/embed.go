// Package runtimec carries the embedded C runtime source that backs every
// entry point declared in pkg/runtimeabi (§5, §6.2): the compiler never
// depends on a system-installed FLYUXC runtime, it writes its own copy to a
// per-process temp file, compiles it with `clang -c`, and links the result
// against the generated IR module.
package runtimec

import (
	_ "embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

//go:embed runtime.c
var Source string

// Compile writes the embedded runtime source to a per-PID temp file,
// compiles it to an object file with clang, and returns the object file's
// path. The caller is responsible for removing both the source and the
// object file once linking is done.
func Compile(clangPath string) (objPath string, cleanup func(), err error) {
	if clangPath == "" {
		clangPath = "clang"
	}

	dir := os.TempDir()
	pid := os.Getpid()

	srcPath := filepath.Join(dir, fmt.Sprintf("flyuxc_runtime_%d.c", pid))
	objPath = filepath.Join(dir, fmt.Sprintf("flyuxc_runtime_%d.o", pid))

	if err := os.WriteFile(srcPath, []byte(Source), 0o644); err != nil {
		return "", nil, fmt.Errorf("writing embedded runtime source: %w", err)
	}

	cleanup = func() {
		os.Remove(srcPath)
		os.Remove(objPath)
	}

	cmd := exec.Command(clangPath, "-c", srcPath, "-o", objPath)
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("compiling embedded runtime: %w", err)
	}

	return objPath, cleanup, nil
}
