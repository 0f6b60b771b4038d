package kmodules

import (
	"fmt"

	"github.com/apex/log"
	"github.com/dop251/goja"
)

const kmoduleLoggerName = "logger"

type LoggerModule struct {
	logger log.Interface
}

func NewLoggerModule(logger log.Interface) *LoggerModule {
	if logger == nil {
		logger = log.Log
	}
	return &LoggerModule{logger: logger.WithField("source", "script")}
}

func (*LoggerModule) Name() string {
	return kmoduleLoggerName
}

// Bind installs a global "log" object with debug, info, warn and error
// functions taking a format string and its arguments.
func (l *LoggerModule) Bind(vm *goja.Runtime) error {
	object := vm.NewObject()

	levels := map[string]func(string){
		"debug": l.logger.Debug,
		"info":  l.logger.Info,
		"warn":  l.logger.Warn,
		"error": l.logger.Error,
	}

	for name, emit := range levels {
		emit := emit
		if err := object.Set(name, func(call goja.FunctionCall) goja.Value {
			msg := stringArgument(vm, call, 0)
			if len(call.Arguments) > 1 {
				args := make([]interface{}, len(call.Arguments)-1)
				for i := 1; i < len(call.Arguments); i++ {
					args[i-1] = call.Argument(i).Export()
				}
				msg = fmt.Sprintf(msg, args...)
			}
			emit(msg)
			return goja.Undefined()
		}); err != nil {
			return err
		}
	}
	return vm.Set("log", object)
}
