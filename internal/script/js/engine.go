// Package js runs JavaScript and TypeScript games on goja. TypeScript is
// transpiled to CommonJS with esbuild before it reaches the interpreter.
package js

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/console"
	"github.com/dop251/goja_nodejs/require"

	"github.com/vovakirdan/turtle/internal/script"
)

const engineName = "js"

// Engine is a goja runtime with the turtle global installed.
type Engine struct {
	vm     *goja.Runtime
	turtle *goja.Object
	module *goja.Object
	logger *log.Logger
	dir    string
}

// New creates a runtime. Script console output goes to logger.
func New(logger *log.Logger) (*Engine, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	vm := goja.New()
	e := &Engine{
		vm:     vm,
		turtle: vm.NewObject(),
		logger: logger.WithPrefix("js"),
	}
	if err := vm.Set("turtle", e.turtle); err != nil {
		return nil, fmt.Errorf("js: install turtle: %w", err)
	}
	return e, nil
}

// Name returns "js".
func (e *Engine) Name() string {
	return engineName
}

// Register installs each namespace as turtle.<name>.
func (e *Engine) Register(namespaces ...script.Namespace) error {
	for _, ns := range namespaces {
		obj := e.vm.NewObject()
		for name, fn := range ns.Funcs {
			if err := obj.Set(name, e.wrap(ns.Name+"."+name, fn)); err != nil {
				return fmt.Errorf("js: register %s.%s: %w", ns.Name, name, err)
			}
		}
		if err := e.turtle.Set(ns.Name, obj); err != nil {
			return fmt.Errorf("js: register %s: %w", ns.Name, err)
		}
	}
	return nil
}

// wrap adapts a host function. Host errors are thrown as JS errors so a
// script can catch them.
func (e *Engine) wrap(name string, fn script.Func) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		args := make(script.Args, len(call.Arguments))
		for i, v := range call.Arguments {
			args[i] = v.Export()
		}
		ret, err := fn(args)
		if err != nil {
			panic(e.vm.NewGoError(fmt.Errorf("%s: %w", name, err)))
		}
		if ret == nil {
			return goja.Undefined()
		}
		return e.vm.ToValue(ret)
	}
}

// Load runs dir/entry. A .ts entry is transpiled first.
func (e *Engine) Load(dir, entry string) error {
	e.dir = dir
	e.enableModules()

	path := filepath.Join(dir, entry)
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("js: read %s: %w", entry, err)
	}
	if strings.EqualFold(filepath.Ext(entry), ".ts") {
		if src, err = Transpile(entry, src); err != nil {
			return err
		}
	}

	return script.Protect(engineName, func() error {
		if _, err := e.vm.RunScript(entry, string(src)); err != nil {
			return fault(err)
		}
		return nil
	})
}

// enableModules installs require, console, module and exports.
func (e *Engine) enableModules() {
	registry := require.NewRegistry(
		require.WithLoader(e.source),
		require.WithGlobalFolders("."),
	)
	registry.RegisterNativeModule(console.ModuleName, console.RequireWithPrinter(printer{e.logger}))
	registry.Enable(e.vm)
	console.Enable(e.vm)

	exports := e.vm.NewObject()
	e.module = e.vm.NewObject()
	_ = e.module.Set("exports", exports)
	_ = e.vm.Set("module", e.module)
	_ = e.vm.Set("exports", exports)
}

// source loads required files from the game directory.
func (e *Engine) source(name string) ([]byte, error) {
	path, err := script.Resolve(e.dir, name)
	if err != nil {
		return nil, require.ModuleFileDoesNotExistError
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		return nil, require.ModuleFileDoesNotExistError
	}
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".ts") {
		return Transpile(name, data)
	}
	return data, nil
}

// lookup finds a callback as a global, then on module.exports.
func (e *Engine) lookup(name string) (goja.Callable, bool) {
	if fn, ok := goja.AssertFunction(e.vm.Get(name)); ok {
		return fn, true
	}
	if e.module == nil {
		return nil, false
	}
	exports := e.module.Get("exports")
	if exports == nil || goja.IsUndefined(exports) || goja.IsNull(exports) {
		return nil, false
	}
	return goja.AssertFunction(exports.ToObject(e.vm).Get(name))
}

// Call invokes a global function.
func (e *Engine) Call(name string, args ...any) (bool, error) {
	fn, ok := e.lookup(name)
	if !ok {
		return false, nil
	}
	vals := make([]goja.Value, len(args))
	for i, a := range args {
		vals[i] = e.vm.ToValue(a)
	}
	err := script.Protect(engineName, func() error {
		if _, err := fn(goja.Undefined(), vals...); err != nil {
			return fault(err)
		}
		return nil
	})
	return true, err
}

// Close stops any running script.
func (e *Engine) Close() error {
	e.vm.Interrupt("engine closed")
	return nil
}

// fault converts a goja error into a script error carrying the stack.
func fault(err error) error {
	var ex *goja.Exception
	if errors.As(err, &ex) {
		return &script.Error{Engine: engineName, Message: ex.String()}
	}
	return &script.Error{Engine: engineName, Message: err.Error()}
}

type printer struct {
	logger *log.Logger
}

func (p printer) Log(s string)   { p.logger.Info(s) }
func (p printer) Warn(s string)  { p.logger.Warn(s) }
func (p printer) Error(s string) { p.logger.Error(s) }
