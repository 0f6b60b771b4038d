package kmodules

import (
	"github.com/apex/log"
	"github.com/dop251/goja"
	"github.com/relationsone/gores"
)

const kmoduleResourcesName = "resources"

type ResourceProvider interface {
	SetGroupDirectory(group, directory string)
	GroupDirectory(group string) string
	ClearGroupDirectory(group string)
	FinalFilename(filename, group string) string
	LoadRawDataContainer(filename, group string) (*gores.RawDataContainer, error)
	UnloadRawDataContainer(container *gores.RawDataContainer)
}

type ResourcesModule struct {
	provider ResourceProvider
}

func NewResourcesModule(provider ResourceProvider) *ResourcesModule {
	return &ResourcesModule{provider: provider}
}

func (*ResourcesModule) Name() string {
	return kmoduleResourcesName
}

// Bind installs the module as a global object of the given runtime.
func (r *ResourcesModule) Bind(vm *goja.Runtime) error {
	object := vm.NewObject()

	functions := map[string]func(goja.FunctionCall) goja.Value{
		"setGroupDirectory": func(call goja.FunctionCall) goja.Value {
			group, directory := stringArgument(vm, call, 0), stringArgument(vm, call, 1)
			r.provider.SetGroupDirectory(group, directory)
			return goja.Undefined()
		},
		"groupDirectory": func(call goja.FunctionCall) goja.Value {
			return vm.ToValue(r.provider.GroupDirectory(stringArgument(vm, call, 0)))
		},
		"clearGroupDirectory": func(call goja.FunctionCall) goja.Value {
			r.provider.ClearGroupDirectory(stringArgument(vm, call, 0))
			return goja.Undefined()
		},
		"finalFilename": func(call goja.FunctionCall) goja.Value {
			filename, group := stringArgument(vm, call, 0), optionalStringArgument(vm, call, 1)
			return vm.ToValue(r.provider.FinalFilename(filename, group))
		},
		"load": func(call goja.FunctionCall) goja.Value {
			filename, group := stringArgument(vm, call, 0), optionalStringArgument(vm, call, 1)
			container, err := r.provider.LoadRawDataContainer(filename, group)
			if err != nil {
				log.WithError(err).Debugf("kmodules: Script load of '%s' failed", filename)
				panic(vm.NewGoError(err))
			}

			// The ArrayBuffer keeps the bytes alive, the container only gives up ownership.
			buffer := vm.NewArrayBuffer(container.Bytes())
			r.provider.UnloadRawDataContainer(container)
			return vm.ToValue(buffer)
		},
	}

	for name, function := range functions {
		if err := object.Set(name, function); err != nil {
			return err
		}
	}
	return vm.Set(kmoduleResourcesName, object)
}

func stringArgument(vm *goja.Runtime, call goja.FunctionCall, index int) string {
	if len(call.Arguments) <= index {
		panic(vm.NewTypeError("illegal number of arguments"))
	}
	value, ok := call.Argument(index).Export().(string)
	if !ok {
		panic(vm.NewTypeError("illegal parameter type"))
	}
	return value
}

func optionalStringArgument(vm *goja.Runtime, call goja.FunctionCall, index int) string {
	value := call.Argument(index)
	if goja.IsUndefined(value) || goja.IsNull(value) {
		return ""
	}
	return stringArgument(vm, call, index)
}
