// Package script defines the boundary between the runtime and a script
// engine. Host functions are plain Go functions over Args; each engine
// converts its own values to and from Go before calling them.
package script

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Func is a host function exposed to scripts. It returns nil, a bool, a
// number, a string, []string, []any or map[string]any.
type Func func(args Args) (any, error)

// Namespace groups host functions under turtle.<Name>.
type Namespace struct {
	Name  string
	Funcs map[string]Func
}

// Engine runs one game script.
type Engine interface {
	// Name identifies the engine ("js" or "lua").
	Name() string
	// Register exposes the namespaces under the global turtle object.
	// It must be called before Load.
	Register(namespaces ...Namespace) error
	// Load compiles and runs the entry file found in dir.
	Load(dir, entry string) error
	// Call invokes a global function. It reports false without error when
	// the global is not a function.
	Call(name string, args ...any) (bool, error)
	// Close releases the interpreter.
	Close() error
}

// Error is a script fault: a compile error, a thrown error or a runtime
// error, with the engine's message and stack text.
type Error struct {
	Engine  string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Protect runs fn and turns a panic into an *Error.
func Protect(engine string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &Error{
				Engine:  engine,
				Message: fmt.Sprintf("panic: %v\n%s", r, trimStack(debug.Stack())),
			}
		}
	}()
	return fn()
}

// trimStack keeps the first frames of a goroutine dump.
func trimStack(stack []byte) string {
	lines := strings.Split(strings.TrimSpace(string(stack)), "\n")
	if len(lines) > 12 {
		lines = lines[:12]
	}
	return strings.Join(lines, "\n")
}
