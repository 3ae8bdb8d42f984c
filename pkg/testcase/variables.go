package testcase

import (
	"maps"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/viper"
)

const (
	// EnvAppEnv names the variable holding the kernel environment.
	EnvAppEnv = "APP_ENV"
	// EnvAppDebug names the variable holding the debug flag.
	EnvAppDebug = "APP_DEBUG"
	// EnvKernelClass names the variable holding the registered kernel name.
	EnvKernelClass = "KERNEL_CLASS"
)

var (
	serverMu        sync.RWMutex
	serverVariables = make(map[string]string)
)

// SetServerVariable sets a server variable for the rest of the test. The
// previous value is restored on cleanup. Server variables are process wide,
// so tests setting them must not run in parallel.
func SetServerVariable(t testing.TB, name, value string) {
	t.Helper()

	serverMu.Lock()
	previous, existed := serverVariables[name]
	serverVariables[name] = value
	serverMu.Unlock()

	t.Cleanup(func() {
		serverMu.Lock()
		defer serverMu.Unlock()
		if existed {
			serverVariables[name] = previous
		} else {
			delete(serverVariables, name)
		}
	})
}

// ServerVariable returns a server variable and whether it is set.
func ServerVariable(name string) (string, bool) {
	serverMu.RLock()
	defer serverMu.RUnlock()
	value, ok := serverVariables[name]
	return value, ok
}

// Globals declares environment and server variables for a test.
type Globals struct {
	Env    map[string]string
	Server map[string]string
}

// ApplyGlobals sets every variable of g for the rest of the test.
func ApplyGlobals(t testing.TB, g Globals) {
	t.Helper()

	for _, name := range slices.Sorted(maps.Keys(g.Env)) {
		t.Setenv(name, g.Env[name])
	}
	for _, name := range slices.Sorted(maps.Keys(g.Server)) {
		SetServerVariable(t, name, g.Server[name])
	}
}

// ParseAssignments turns NAME=value entries into a map. An entry without "="
// assigns the empty string.
func ParseAssignments(entries ...string) map[string]string {
	assignments := make(map[string]string, len(entries))
	for _, entry := range entries {
		name, value, _ := strings.Cut(entry, "=")
		assignments[name] = value
	}
	return assignments
}

// variables returns a viper instance reading the process environment first
// and server variables second.
func variables() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.AllowEmptyEnv(true)

	serverMu.RLock()
	server := make(map[string]any, len(serverVariables))
	for name, value := range serverVariables {
		server[name] = value
	}
	serverMu.RUnlock()

	_ = v.MergeConfigMap(server)
	return v
}

// lookupVariable returns name from the environment or the server variables.
func lookupVariable(name string) (string, bool) {
	v := variables()
	if !v.IsSet(name) {
		return "", false
	}
	return v.GetString(name), true
}
