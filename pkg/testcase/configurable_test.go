package testcase

import (
	"path/filepath"
	"strings"
	"testing"

	"bundletest/internal/testing/fixtures"
	"bundletest/pkg/kerneltest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigurableKernelTestCase(t *testing.T) {
	t.Run("boots the test kernel by default", func(t *testing.T) {
		clearVariables(t)
		k := NewConfigurable(t).BootKernel()

		assert.IsType(t, &kerneltest.TestKernel{}, k)
	})

	t.Run("configures the environment", func(t *testing.T) {
		clearVariables(t)
		tc := NewConfigurable(t).GivenEnvironment("foo")

		assert.Equal(t, "foo", tc.BootKernel().Environment())
	})

	t.Run("enables debug", func(t *testing.T) {
		clearVariables(t)
		tc := NewConfigurable(t).GivenDebugIsDisabled().GivenDebugIsEnabled()

		assert.True(t, tc.BootKernel().IsDebug())
	})

	t.Run("disables debug", func(t *testing.T) {
		clearVariables(t)
		tc := NewConfigurable(t).GivenDebugIsDisabled()

		assert.False(t, tc.BootKernel().IsDebug())
	})

	t.Run("configures the kernel class", func(t *testing.T) {
		clearVariables(t)
		tc := NewConfigurable(t).GivenKernel(fixtures.CustomKernelClass)

		assert.IsType(t, &fixtures.CustomKernel{}, tc.BootKernel())
	})

	t.Run("boot options take precedence over given configuration", func(t *testing.T) {
		clearVariables(t)
		tc := NewConfigurable(t).GivenEnvironment("foo").GivenDebugIsDisabled()

		k := tc.BootKernel(WithEnvironment("bar"), WithDebug(true), WithKernelClass(fixtures.CustomKernelClass))

		assert.IsType(t, &fixtures.CustomKernel{}, k)
		assert.Equal(t, "bar", k.Environment())
		assert.True(t, k.IsDebug())
	})
}

func TestConfigurableKernelTestCase_Variables(t *testing.T) {
	t.Run("environment variables are read", func(t *testing.T) {
		clearVariables(t)
		ApplyGlobals(t, Globals{Env: ParseAssignments("APP_ENV=bar", "APP_DEBUG=0", "KERNEL_CLASS="+fixtures.CustomKernelClass)})

		k := NewConfigurable(t).BootKernel()

		assert.IsType(t, &fixtures.CustomKernel{}, k)
		assert.Equal(t, "bar", k.Environment())
		assert.False(t, k.IsDebug())
	})

	t.Run("server variables are read", func(t *testing.T) {
		clearVariables(t)
		ApplyGlobals(t, Globals{Server: ParseAssignments("APP_ENV=bar", "APP_DEBUG=0", "KERNEL_CLASS="+fixtures.CustomKernelClass)})

		k := NewConfigurable(t).BootKernel()

		assert.IsType(t, &fixtures.CustomKernel{}, k)
		assert.Equal(t, "bar", k.Environment())
		assert.False(t, k.IsDebug())
	})

	t.Run("environment variables are overridden by given configuration", func(t *testing.T) {
		clearVariables(t)
		ApplyGlobals(t, Globals{Env: ParseAssignments("APP_ENV=bar", "APP_DEBUG=1", "KERNEL_CLASS="+kerneltest.DefaultKernel)})

		k := NewConfigurable(t).
			GivenEnvironment("foo").
			GivenDebugIsDisabled().
			GivenKernel(fixtures.CustomKernelClass).
			BootKernel()

		assert.IsType(t, &fixtures.CustomKernel{}, k)
		assert.Equal(t, "foo", k.Environment())
		assert.False(t, k.IsDebug())
	})

	t.Run("server variables are overridden by given configuration", func(t *testing.T) {
		clearVariables(t)
		ApplyGlobals(t, Globals{Server: ParseAssignments("APP_ENV=bar", "APP_DEBUG=1", "KERNEL_CLASS="+kerneltest.DefaultKernel)})

		k := NewConfigurable(t).
			GivenEnvironment("foo").
			GivenDebugIsDisabled().
			GivenKernel(fixtures.CustomKernelClass).
			BootKernel()

		assert.IsType(t, &fixtures.CustomKernel{}, k)
		assert.Equal(t, "foo", k.Environment())
		assert.False(t, k.IsDebug())
	})

	t.Run("invalid kernel class fails the test", func(t *testing.T) {
		clearVariables(t)
		ApplyGlobals(t, Globals{Env: ParseAssignments("KERNEL_CLASS=fixtures.MissingKernel")})
		rec := newRecordingTB(t)

		NewConfigurable(rec)

		require.Len(t, rec.fatals, 1)
		assert.Contains(t, rec.fatals[0], "invalid KERNEL_CLASS")
	})
}

func TestConfigurableKernelTestCase_Modules(t *testing.T) {
	t.Run("enables modules", func(t *testing.T) {
		clearVariables(t)
		k := NewConfigurable(t).GivenModulesAreEnabled(&fixtures.FooModule{}).BootKernel()

		modules := k.Modules()
		require.Len(t, modules, 1)
		assert.IsType(t, &fixtures.FooModule{}, modules["FooModule"])
	})

	t.Run("enables a module", func(t *testing.T) {
		clearVariables(t)
		k := NewConfigurable(t).GivenModuleIsEnabled(&fixtures.FooModule{}).BootKernel()

		modules := k.Modules()
		require.Len(t, modules, 1)
		assert.IsType(t, &fixtures.FooModule{}, modules["FooModule"])
	})

	t.Run("configures the module and exposes its service", func(t *testing.T) {
		clearVariables(t)
		k := NewConfigurable(t).
			GivenModuleIsEnabled(&fixtures.FooModule{}).
			GivenModuleConfiguration("foo", map[string]any{"enabled": true}).
			GivenExposedServiceID(fixtures.FooServiceID).
			BootKernel()

		assert.True(t, k.Container().Has(fixtures.FooServiceID))
		assert.False(t, k.Container().Has(fixtures.FooAliasID))
	})

	t.Run("exposes several services", func(t *testing.T) {
		clearVariables(t)
		k := NewConfigurable(t).
			GivenModuleIsEnabled(&fixtures.FooModule{}).
			GivenModuleConfiguration("foo", map[string]any{"enabled": true}).
			GivenExposedServiceIDs(fixtures.FooServiceID, fixtures.FooAliasID).
			BootKernel()

		assert.True(t, k.Container().Has(fixtures.FooServiceID))
		assert.True(t, k.Container().Has(fixtures.FooAliasID))
	})

	t.Run("loads module configuration files", func(t *testing.T) {
		clearVariables(t)
		path := fixtures.WriteFile(t, fixtures.FooConfigurationFileName, fixtures.FooConfigurationTemplate)

		k := NewConfigurable(t).
			GivenEnvironment("dev").
			GivenModuleIsEnabled(&fixtures.FooModule{}).
			GivenModuleConfiguration("foo", map[string]any{"enabled": true}).
			GivenModuleConfigurationFile("foo", path).
			GivenExposedServiceID(fixtures.FooServiceID).
			BootKernel()

		service, err := k.Container().Get(fixtures.FooServiceID)
		require.NoError(t, err)
		require.IsType(t, &fixtures.Foo{}, service)
		assert.Equal(t, []string{"DEV", strings.ToLower(TestNamespace(t.Name()))}, service.(*fixtures.Foo).List)
	})

	t.Run("missing module configuration file fails the test", func(t *testing.T) {
		clearVariables(t)
		rec := newRecordingTB(t)

		NewConfigurable(rec).GivenModuleConfigurationFile("foo", filepath.Join(t.TempDir(), "missing.yaml"))

		require.Len(t, rec.fatals, 1)
		assert.Contains(t, rec.fatals[0], "failed to read module configuration")
	})
}

func TestConfigurableKernelTestCase_Directories(t *testing.T) {
	t.Run("changes the temp dir", func(t *testing.T) {
		clearVariables(t)
		tempDir := filepath.Join(t.TempDir(), "ConfigurableKernelTest")

		k := NewConfigurable(t).GivenTempDir(tempDir).BootKernel()

		assert.True(t, strings.HasPrefix(k.CacheDir(), tempDir), "%s should start with %s", k.CacheDir(), tempDir)
		assert.DirExists(t, k.CacheDir())
	})

	t.Run("namespace is derived from the test name", func(t *testing.T) {
		clearVariables(t)
		k := NewConfigurable(t).GivenTempDir(t.TempDir()).BootKernel()

		assert.Contains(t, k.CacheDir(), "TestConfigurableKernelTestCaseDirectoriesnamespaceisderivedfromthetestname")
	})
}

func TestConfigurableKernelTestCase_GivenAfterBoot(t *testing.T) {
	tests := []struct {
		name  string
		given func(tc *ConfigurableKernelTestCase)
	}{
		{"environment", func(tc *ConfigurableKernelTestCase) { tc.GivenEnvironment("foo") }},
		{"debug disabled", func(tc *ConfigurableKernelTestCase) { tc.GivenDebugIsDisabled() }},
		{"debug enabled", func(tc *ConfigurableKernelTestCase) { tc.GivenDebugIsEnabled() }},
		{"kernel class", func(tc *ConfigurableKernelTestCase) { tc.GivenKernel(fixtures.CustomKernelClass) }},
		{"module configuration", func(tc *ConfigurableKernelTestCase) {
			tc.GivenModuleConfiguration("foo", map[string]any{"enabled": true})
		}},
		{"module configuration file", func(tc *ConfigurableKernelTestCase) { tc.GivenModuleConfigurationFile("foo", "foo.yaml") }},
		{"exposed service", func(tc *ConfigurableKernelTestCase) { tc.GivenExposedServiceID("foo") }},
		{"exposed services", func(tc *ConfigurableKernelTestCase) { tc.GivenExposedServiceIDs("foo") }},
		{"module", func(tc *ConfigurableKernelTestCase) { tc.GivenModuleIsEnabled(&fixtures.FooModule{}) }},
		{"modules", func(tc *ConfigurableKernelTestCase) { tc.GivenModulesAreEnabled(&fixtures.FooModule{}) }},
		{"temp dir", func(tc *ConfigurableKernelTestCase) { tc.GivenTempDir("/tmp") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearVariables(t)
			rec := newRecordingTB(t)
			tc := NewConfigurable(rec)
			tc.BootKernel()
			before := tc.KernelBuilder().Configuration().Hash()

			tt.given(tc)

			require.Len(t, rec.fatals, 1)
			assert.Equal(t, ErrKernelBooted.Error(), rec.fatals[0])
			assert.Equal(t, before, tc.KernelBuilder().Configuration().Hash())
		})
	}
}

func TestTestNamespace(t *testing.T) {
	tests := map[string]string{
		"TestFoo":             "TestFoo",
		"TestFoo/sub_test":    "TestFoosubtest",
		"TestFoo/#01":         "TestFoo01",
		"Test Ünïcode/ok-ish": "TestÜnïcodeokish",
		"":                    "",
	}
	for name, want := range tests {
		assert.Equal(t, want, TestNamespace(name), name)
	}
}
