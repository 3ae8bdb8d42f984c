package testcase

import (
	"fmt"
	"os"
	"testing"
)

// recordingTB records fatal failures instead of stopping the test.
type recordingTB struct {
	*testing.T
	fatals []string
}

func newRecordingTB(t *testing.T) *recordingTB {
	return &recordingTB{T: t}
}

func (r *recordingTB) Fatalf(format string, args ...any) {
	r.fatals = append(r.fatals, fmt.Sprintf(format, args...))
}

// clearVariables unsets the kernel variables for the rest of the test.
func clearVariables(t *testing.T) {
	t.Helper()
	for _, name := range []string{EnvAppEnv, EnvAppDebug, EnvKernelClass, "BUNDLETEST_LOOKUP"} {
		t.Setenv(name, "")
		if err := os.Unsetenv(name); err != nil {
			t.Fatalf("failed to unset %s: %v", name, err)
		}
	}
}
