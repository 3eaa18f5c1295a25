// Package lua runs Lua games on go-lua.
package lua

import (
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Shopify/go-lua"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/turtle/internal/script"
)

const engineName = "lua"

var errClosed = errors.New("lua: engine closed")

// Engine is a Lua state with the turtle global installed.
type Engine struct {
	l      *lua.State
	logger *log.Logger
	closed bool
}

// New creates a state with the standard libraries. print goes to logger
// and os.exit is removed.
func New(logger *log.Logger) (*Engine, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	l := lua.NewState()
	lua.OpenLibraries(l)

	e := &Engine{l: l, logger: logger.WithPrefix("lua")}
	l.Register("print", e.print)

	l.Global("os")
	if l.IsTable(-1) {
		l.PushNil()
		l.SetField(-2, "exit")
	}
	l.Pop(1)

	l.NewTable()
	l.SetGlobal("turtle")
	return e, nil
}

// Name returns "lua".
func (e *Engine) Name() string {
	return engineName
}

// Register installs each namespace as turtle.<name>.
func (e *Engine) Register(namespaces ...script.Namespace) error {
	if e.closed {
		return errClosed
	}
	l := e.l
	l.Global("turtle")
	defer l.Pop(1)
	for _, ns := range namespaces {
		l.NewTable()
		for name, fn := range ns.Funcs {
			l.PushGoFunction(wrap(ns.Name+"."+name, fn))
			l.SetField(-2, name)
		}
		l.SetField(-2, ns.Name)
	}
	return nil
}

// wrap adapts a host function. Host errors are raised as Lua errors so a
// script can pcall them.
func wrap(name string, fn script.Func) lua.Function {
	return func(l *lua.State) int {
		n := l.Top()
		args := make(script.Args, n)
		for i := range n {
			args[i] = toGo(l, i+1)
		}
		ret, err := fn(args)
		if err != nil {
			lua.Errorf(l, "%s: %s", name, err.Error())
			return 0
		}
		if ret == nil {
			return 0
		}
		push(l, ret)
		return 1
	}
}

// Load runs dir/entry. Modules are searched for in dir.
func (e *Engine) Load(dir, entry string) error {
	if e.closed {
		return errClosed
	}
	l := e.l
	l.Global("package")
	l.PushString(filepath.Join(dir, "?.lua"))
	l.SetField(-2, "path")
	l.Pop(1)

	return script.Protect(engineName, func() error {
		base := l.Top()
		defer l.SetTop(base)

		l.PushGoFunction(traceback)
		if err := lua.LoadFile(l, filepath.Join(dir, entry), ""); err != nil {
			return fault(l, err)
		}
		if err := l.ProtectedCall(0, 0, base+1); err != nil {
			return fault(l, err)
		}
		return nil
	})
}

// Call invokes a global function.
func (e *Engine) Call(name string, args ...any) (bool, error) {
	if e.closed {
		return false, errClosed
	}
	l := e.l
	base := l.Top()
	defer l.SetTop(base)

	l.Global(name)
	isFn := l.IsFunction(-1)
	l.Pop(1)
	if !isFn {
		return false, nil
	}

	err := script.Protect(engineName, func() error {
		l.PushGoFunction(traceback)
		l.Global(name)
		for _, a := range args {
			push(l, a)
		}
		if err := l.ProtectedCall(len(args), 0, base+1); err != nil {
			return fault(l, err)
		}
		return nil
	})
	return true, err
}

// Close drops the state.
func (e *Engine) Close() error {
	e.closed = true
	return nil
}

func (e *Engine) print(l *lua.State) int {
	n := l.Top()
	parts := make([]string, n)
	for i := range n {
		parts[i] = describe(l, i+1)
	}
	e.logger.Info(strings.Join(parts, "\t"))
	return 0
}

// traceback is the message handler for protected calls.
func traceback(l *lua.State) int {
	msg, ok := l.ToString(1)
	if !ok {
		msg = describe(l, 1)
	}
	lua.Traceback(l, l, msg, 1)
	return 1
}

// fault reads the error object left on the stack.
func fault(l *lua.State, err error) error {
	if msg, ok := l.ToString(-1); ok && msg != "" {
		return &script.Error{Engine: engineName, Message: msg}
	}
	return &script.Error{Engine: engineName, Message: err.Error()}
}

// describe renders a value for logs and error messages.
func describe(l *lua.State, index int) string {
	switch l.TypeOf(index) {
	case lua.TypeNil, lua.TypeNone:
		return "nil"
	case lua.TypeBoolean:
		return strconv.FormatBool(l.ToBoolean(index))
	case lua.TypeNumber:
		n, _ := l.ToNumber(index)
		return strconv.FormatFloat(n, 'g', 14, 64)
	case lua.TypeString:
		s, _ := l.ToString(index)
		return s
	default:
		return lua.TypeNameOf(l, index)
	}
}
