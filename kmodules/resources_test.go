package kmodules

import (
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	"github.com/dop251/goja"
	"github.com/relationsone/gores"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRuntime(t *testing.T) (*goja.Runtime, *gores.ResourceProvider, afero.Fs) {
	fs := afero.NewMemMapFs()
	provider, err := gores.NewResourceProvider(gores.ProviderConfig{
		Filesystem:   fs,
		DefaultGroup: "layouts",
		Logger:       &log.Logger{Handler: discard.Default, Level: log.DebugLevel},
	})
	require.NoError(t, err)

	vm := goja.New()
	module := NewResourcesModule(provider)
	assert.Equal(t, "resources", module.Name())
	require.NoError(t, module.Bind(vm))
	return vm, provider, fs
}

func TestResourcesModuleGroupDirectories(t *testing.T) {
	vm, provider, _ := newRuntime(t)

	value, err := vm.RunString(`
		resources.setGroupDirectory("fonts", "/gui/fonts/");
		resources.groupDirectory("fonts");
	`)
	require.NoError(t, err)
	assert.Equal(t, "/gui/fonts/", value.String())
	assert.Equal(t, "/gui/fonts/", provider.GroupDirectory("fonts"))

	value, err = vm.RunString(`resources.finalFilename("DejaVu.ttf", "fonts")`)
	require.NoError(t, err)
	assert.Equal(t, "/gui/fonts/DejaVu.ttf", value.String())

	_, err = vm.RunString(`resources.clearGroupDirectory("fonts")`)
	require.NoError(t, err)
	_, ok := provider.LookupGroupDirectory("fonts")
	assert.False(t, ok)
}

func TestResourcesModuleLoad(t *testing.T) {
	vm, provider, fs := newRuntime(t)
	provider.SetGroupDirectory("layouts", "/gui/layouts/")
	require.NoError(t, afero.WriteFile(fs, "/gui/layouts/Demo.layout", []byte{1, 2, 3, 4}, 0644))

	value, err := vm.RunString(`
		var bytes = new Uint8Array(resources.load("Demo.layout"));
		bytes.length * 100 + bytes[3];
	`)
	require.NoError(t, err)
	assert.Equal(t, int64(404), value.ToInteger())

	value, err = vm.RunString(`new Uint8Array(resources.load("Demo.layout", null)).length`)
	require.NoError(t, err)
	assert.Equal(t, int64(4), value.ToInteger())
}

func TestResourcesModuleLoadFailureThrows(t *testing.T) {
	vm, _, _ := newRuntime(t)

	_, err := vm.RunString(`resources.load("Missing.layout")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	value, err := vm.RunString(`
		var kind;
		try { resources.load(""); } catch (e) { kind = String(e); }
		kind;
	`)
	require.NoError(t, err)
	assert.Contains(t, value.String(), "invalid argument")
}

func TestResourcesModuleArgumentChecks(t *testing.T) {
	vm, _, _ := newRuntime(t)

	for _, script := range []string{
		`resources.load()`,
		`resources.load(42)`,
		`resources.setGroupDirectory("fonts")`,
		`resources.finalFilename("a", 7)`,
	} {
		value, err := vm.RunString(`(function() { try { ` + script + `; return false; } catch (e) { return e instanceof TypeError; } })()`)
		require.NoError(t, err, script)
		assert.True(t, value.ToBoolean(), script)
	}
}
