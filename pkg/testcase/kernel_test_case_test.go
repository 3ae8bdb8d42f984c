package testcase

import (
	"testing"

	"bundletest/internal/testing/fixtures"
	"bundletest/pkg/kernel"
	"bundletest/pkg/kerneltest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKernelTestCase_BootKernel(t *testing.T) {
	t.Run("creates the test kernel with defaults", func(t *testing.T) {
		clearVariables(t)
		tc := New(t)

		k := tc.BootKernel()

		assert.IsType(t, &kerneltest.TestKernel{}, k)
		assert.Equal(t, "test", k.Environment())
		assert.True(t, k.IsDebug())
	})

	t.Run("uses the given environment and debug flag", func(t *testing.T) {
		clearVariables(t)
		tc := New(t)

		k := tc.BootKernel(WithEnvironment("foo"), WithDebug(false))

		assert.Equal(t, "foo", k.Environment())
		assert.False(t, k.IsDebug())
	})

	t.Run("gives access to the booted kernel", func(t *testing.T) {
		clearVariables(t)
		tc := New(t)
		assert.Nil(t, tc.Kernel())

		k := tc.BootKernel()

		assert.Same(t, k, tc.Kernel())
		assert.NotNil(t, k.Container())
		assert.Equal(t, kernel.StateBooted, k.State())
	})

	t.Run("shuts the previous kernel down", func(t *testing.T) {
		clearVariables(t)
		tc := New(t)

		k1 := tc.BootKernel()
		k2 := tc.BootKernel()

		assert.Nil(t, k1.Container())
		assert.NotNil(t, k2.Container())
	})

	t.Run("fails the test for unknown kernels", func(t *testing.T) {
		clearVariables(t)
		rec := newRecordingTB(t)
		tc := New(rec)

		k := tc.BootKernel(WithKernelClass("fixtures.MissingKernel"))

		assert.Nil(t, k)
		assert.Nil(t, tc.Kernel())
		require.Len(t, rec.fatals, 1)
		assert.Contains(t, rec.fatals[0], "class `fixtures.MissingKernel` does not exist")
	})
}

func TestKernelTestCase_EnsureKernelShutdown(t *testing.T) {
	t.Run("shuts the kernel down", func(t *testing.T) {
		clearVariables(t)
		tc := New(t)
		k := tc.BootKernel()

		tc.EnsureKernelShutdown()

		assert.Nil(t, k.Container())
		assert.Equal(t, kernel.StateShutDown, k.State())
	})

	t.Run("resets the container", func(t *testing.T) {
		clearVariables(t)
		tc := New(t)
		c := tc.BootKernel().Container()
		require.NoError(t, c.Set("foo.bar", struct{}{}))
		require.True(t, c.Has("foo.bar"))

		tc.EnsureKernelShutdown()

		assert.False(t, c.Has("foo.bar"))
	})

	t.Run("does nothing without a kernel", func(t *testing.T) {
		tc := New(t)
		tc.EnsureKernelShutdown()
		assert.Nil(t, tc.Kernel())
	})

	var booted kerneltest.TestKernelInterface
	t.Run("runs on cleanup", func(t *testing.T) {
		clearVariables(t)
		booted = New(t).BootKernel()
	})
	require.NotNil(t, booted)
	assert.Equal(t, kernel.StateShutDown, booted.State())
}

func TestKernelTestCase_CreateKernel(t *testing.T) {
	t.Run("creates the test kernel with defaults", func(t *testing.T) {
		clearVariables(t)
		tc := New(t)

		k := tc.CreateKernel()

		assert.IsType(t, &kerneltest.TestKernel{}, k)
		assert.Equal(t, "test", k.Environment())
		assert.True(t, k.IsDebug())
		assert.Equal(t, kernel.StateUnbuilt, k.State())
		assert.Nil(t, tc.Kernel())
	})

	t.Run("uses the given options", func(t *testing.T) {
		clearVariables(t)
		tc := New(t)

		k := tc.CreateKernel(
			WithEnvironment("foo"),
			WithDebug(false),
			WithKernelClass(fixtures.CustomKernelClass),
		)

		assert.IsType(t, &fixtures.CustomKernel{}, k)
		assert.Equal(t, "foo", k.Environment())
		assert.False(t, k.IsDebug())
	})

	t.Run("reads environment variables", func(t *testing.T) {
		clearVariables(t)
		ApplyGlobals(t, Globals{Env: ParseAssignments(
			"APP_ENV=foo",
			"APP_DEBUG=0",
			"KERNEL_CLASS="+fixtures.CustomKernelClass,
		)})
		tc := New(t)

		k := tc.CreateKernel()

		assert.IsType(t, &fixtures.CustomKernel{}, k)
		assert.Equal(t, "foo", k.Environment())
		assert.False(t, k.IsDebug())
	})

	t.Run("reads server variables", func(t *testing.T) {
		clearVariables(t)
		ApplyGlobals(t, Globals{Server: ParseAssignments(
			"APP_ENV=foo",
			"APP_DEBUG=0",
			"KERNEL_CLASS="+fixtures.CustomKernelClass,
		)})
		tc := New(t)

		k := tc.CreateKernel()

		assert.IsType(t, &fixtures.CustomKernel{}, k)
		assert.Equal(t, "foo", k.Environment())
		assert.False(t, k.IsDebug())
	})

	t.Run("environment variables win over server variables", func(t *testing.T) {
		clearVariables(t)
		ApplyGlobals(t, Globals{
			Env:    ParseAssignments("APP_ENV=env", "APP_DEBUG=1"),
			Server: ParseAssignments("APP_ENV=server", "APP_DEBUG=0"),
		})
		tc := New(t)

		k := tc.CreateKernel()

		assert.Equal(t, "env", k.Environment())
		assert.True(t, k.IsDebug())
	})

	t.Run("options win over variables", func(t *testing.T) {
		clearVariables(t)
		ApplyGlobals(t, Globals{Env: ParseAssignments("APP_ENV=env", "APP_DEBUG=1")})
		tc := New(t)

		k := tc.CreateKernel(WithEnvironment("foo"), WithDebug(false))

		assert.Equal(t, "foo", k.Environment())
		assert.False(t, k.IsDebug())
	})

	t.Run("fails the test for an invalid debug flag", func(t *testing.T) {
		clearVariables(t)
		ApplyGlobals(t, Globals{Env: ParseAssignments("APP_DEBUG=maybe")})
		rec := newRecordingTB(t)
		tc := New(rec)

		assert.Nil(t, tc.CreateKernel())
		require.Len(t, rec.fatals, 1)
		assert.Contains(t, rec.fatals[0], `invalid APP_DEBUG value "maybe"`)
	})

	t.Run("fails the test for unsupported kernels", func(t *testing.T) {
		clearVariables(t)
		rec := newRecordingTB(t)
		tc := New(rec)

		assert.Nil(t, tc.CreateKernel(WithKernelClass(fixtures.DummyKernelClass)))
		require.Len(t, rec.fatals, 1)
		assert.Contains(t, rec.fatals[0], "only the `kerneltest.TestKernel` kernel implementations are supported")
	})
}
