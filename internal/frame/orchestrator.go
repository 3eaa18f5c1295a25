// Package frame drives a game session: it loads the entry script, runs the
// per-frame callbacks in a fixed order and owns the error screen shown once
// a script faults.
package frame

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/turtle/internal/api"
	"github.com/vovakirdan/turtle/internal/core"
	"github.com/vovakirdan/turtle/internal/engine"
	"github.com/vovakirdan/turtle/internal/script"
)

// FaultRecorder keeps a history of halting faults.
type FaultRecorder interface {
	RecordFault(gameID, message string) error
}

// Observer receives frame timings and fault counts.
type Observer interface {
	ObserveFrame(d time.Duration)
	ObserveFault()
}

// Options configures an Orchestrator. Every field is optional.
type Options struct {
	NewEngine EngineFactory
	Recorder  FaultRecorder
	Observer  Observer
	Now       func() time.Time
}

// Orchestrator runs the frame loop of one session.
type Orchestrator struct {
	st     *engine.State
	opts   Options
	engine script.Engine

	phase  Phase
	fault  string
	copied bool
}

// New prepares a session. With no game directory the orchestrator shows a
// placeholder. A missing entry script or a load error halts it on the error
// screen; only failures to build the engine itself are returned.
func New(st *engine.State, opts Options) (*Orchestrator, error) {
	if opts.NewEngine == nil {
		opts.NewEngine = NewEngine
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	o := &Orchestrator{st: st, opts: opts, phase: Initializing}

	if st.Dir == "" {
		o.phase = Running
		return o, nil
	}

	entry, err := DetectEntry(st.Dir)
	if err != nil {
		o.halt(NoEntryMessage)
		return o, nil
	}

	eng, err := opts.NewEngine(entry, st.Logger.WithPrefix("script"))
	if err != nil {
		return nil, err
	}
	if err := eng.Register(api.Namespaces(st)...); err != nil {
		_ = eng.Close()
		return nil, fmt.Errorf("frame: register api: %w", err)
	}
	o.engine = eng
	st.Logger.Info("loading game", "dir", st.Dir, "entry", entry, "engine", eng.Name())

	if err := eng.Load(st.Dir, entry); err != nil {
		o.halt(message(err))
		return o, nil
	}
	o.phase = Running
	if _, err := eng.Call("load"); err != nil {
		o.halt(message(err))
	}
	return o, nil
}

// Phase returns the lifecycle state.
func (o *Orchestrator) Phase() Phase { return o.phase }

// Fault returns the message of the halting fault, or "".
func (o *Orchestrator) Fault() string { return o.fault }

// Copied reports whether the fault message was copied to the clipboard.
func (o *Orchestrator) Copied() bool { return o.copied }

// Engine returns the script engine, nil when no game is loaded.
func (o *Orchestrator) Engine() script.Engine { return o.engine }

// Tick advances one frame by dt. It reports false once the session is over.
func (o *Orchestrator) Tick(dt time.Duration) bool {
	switch o.phase {
	case Closed, ShuttingDown:
		return false
	}
	if o.st.CloseRequested() {
		if err := o.Shutdown(); err != nil {
			o.st.Logger.Error("shutdown", "error", err)
		}
		return false
	}

	start := o.opts.Now()
	st := o.st
	st.Timer.Tick(dt)

	switch {
	case o.phase == ErrorHalted:
		o.haltedFrame()
	case o.engine == nil:
		drawPlaceholder(st.Canvas)
	default:
		o.runFrame(dt)
	}

	st.Collisions.Clear()
	st.Input.EndFrame(dt)
	st.Window.EndFrame()

	if o.opts.Observer != nil {
		o.opts.Observer.ObserveFrame(o.opts.Now().Sub(start))
	}
	return true
}

// runFrame steps physics, then calls update and draw. The canvas is only
// presented when draw finishes cleanly.
func (o *Orchestrator) runFrame(dt time.Duration) {
	st := o.st
	st.Space.Step(dt.Seconds())

	if _, err := o.engine.Call("update", st.Timer.Delta()); err != nil {
		o.halt(message(err))
		return
	}

	st.Canvas.Begin()
	if _, err := o.engine.Call("draw"); err != nil {
		o.halt(message(err))
		return
	}
	st.Canvas.Present()
}

func (o *Orchestrator) haltedFrame() {
	in := o.st.Input
	if !o.copied && (in.MousePressed(core.MouseLeft) || in.KeyPressed("c")) {
		if err := o.st.Clipboard.SetText(o.fault); err != nil {
			o.st.Logger.Warn("copy fault", "error", err)
		} else {
			o.copied = true
		}
	}
	drawError(o.st.Canvas, o.fault, o.copied)
}

// halt records a fault and switches to the error screen for good.
func (o *Orchestrator) halt(msg string) {
	o.phase = ErrorHalted
	o.fault = msg
	o.st.Logger.Error("game halted", "dir", o.st.Dir, "fault", msg)

	if o.opts.Recorder != nil {
		if err := o.opts.Recorder.RecordFault(o.st.GameID, msg); err != nil {
			o.st.Logger.Warn("record fault", "error", err)
		}
	}
	if o.opts.Observer != nil {
		o.opts.Observer.ObserveFault()
	}
	drawError(o.st.Canvas, msg, false)
}

// Shutdown releases the session's native resources and the script engine.
// Calling it again returns nil.
func (o *Orchestrator) Shutdown() error {
	if o.phase == Closed || o.phase == ShuttingDown {
		return nil
	}
	o.phase = ShuttingDown
	o.st.Logger.Debug("shutting down", "dir", o.st.Dir)

	errs := []error{o.st.Release()}
	if o.engine != nil {
		errs = append(errs, o.engine.Close())
	}
	o.phase = Closed
	return errors.Join(errs...)
}

// message extracts the text shown for a fault.
func message(err error) string {
	var serr *script.Error
	if errors.As(err, &serr) {
		return serr.Message
	}
	return err.Error()
}
