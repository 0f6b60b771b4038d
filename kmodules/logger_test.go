package kmodules

import (
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"
	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerModule(t *testing.T) {
	handler := memory.New()
	module := NewLoggerModule(&log.Logger{Handler: handler, Level: log.DebugLevel})
	assert.Equal(t, "logger", module.Name())

	vm := goja.New()
	require.NoError(t, module.Bind(vm))

	_, err := vm.RunString(`
		log.info("loaded %s in %d ms", "Demo.layout", 12);
		log.warn("plain");
	`)
	require.NoError(t, err)

	require.Len(t, handler.Entries, 2)
	assert.Equal(t, log.InfoLevel, handler.Entries[0].Level)
	assert.Equal(t, "loaded Demo.layout in 12 ms", handler.Entries[0].Message)
	assert.Equal(t, "script", handler.Entries[0].Fields["source"])
	assert.Equal(t, log.WarnLevel, handler.Entries[1].Level)
}
