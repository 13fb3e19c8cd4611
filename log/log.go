// Package log is the structured, levelled, key-value logger used
// throughout groupdag, in the same "msg, k, v, k, v..." calling
// convention the rest of the codebase's lineage uses.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/go-stack/stack"
	"github.com/mattn/go-colorable"
	isatty "github.com/mattn/go-isatty"
)

// Lvl is a logging level, ordered from most to least severe.
type Lvl int

const (
	LvlCrit Lvl = iota
	LvlError
	LvlWarn
	LvlInfo
	LvlDebug
	LvlTrace
)

func (l Lvl) String() string {
	switch l {
	case LvlCrit:
		return "CRIT"
	case LvlError:
		return "ERROR"
	case LvlWarn:
		return "WARN"
	case LvlInfo:
		return "INFO"
	case LvlDebug:
		return "DEBUG"
	case LvlTrace:
		return "TRACE"
	default:
		return "?????"
	}
}

var levelColor = map[Lvl]*color.Color{
	LvlCrit:  color.New(color.FgWhite, color.BgRed, color.Bold),
	LvlError: color.New(color.FgRed, color.Bold),
	LvlWarn:  color.New(color.FgYellow),
	LvlInfo:  color.New(color.FgGreen),
	LvlDebug: color.New(color.FgCyan),
	LvlTrace: color.New(color.FgMagenta),
}

// Logger is the interface the rest of the module logs through. root
// satisfies it and is what the package-level helpers below delegate to.
type Logger interface {
	Trace(msg string, ctx ...interface{})
	Debug(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Error(msg string, ctx ...interface{})
	Crit(msg string, ctx ...interface{})
	// With returns a Logger that prepends ctx to every record it writes.
	With(ctx ...interface{}) Logger
}

type logger struct {
	out   io.Writer
	color bool
	lvl   Lvl
	ctx   []interface{}
	mu    *sync.Mutex
}

// Root is the default, package-wide logger. It writes to stderr,
// colorizing output when stderr is a terminal, and is safe for
// concurrent use.
var Root Logger = newLogger(colorable.NewColorableStderr(), LvlInfo, &sync.Mutex{})

func newLogger(out io.Writer, lvl Lvl, mu *sync.Mutex) *logger {
	useColor := false
	if f, ok := out.(interface{ Fd() uintptr }); ok {
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &logger{out: out, color: useColor, lvl: lvl, mu: mu}
}

// SetLevel changes the minimum level Root will emit.
func SetLevel(lvl Lvl) {
	if l, ok := Root.(*logger); ok {
		l.lvl = lvl
	}
}

func (l *logger) With(ctx ...interface{}) Logger {
	return &logger{out: l.out, color: l.color, lvl: l.lvl, mu: l.mu, ctx: append(append([]interface{}{}, l.ctx...), ctx...)}
}

func (l *logger) Trace(msg string, ctx ...interface{}) { l.write(LvlTrace, msg, ctx) }
func (l *logger) Debug(msg string, ctx ...interface{}) { l.write(LvlDebug, msg, ctx) }
func (l *logger) Info(msg string, ctx ...interface{})  { l.write(LvlInfo, msg, ctx) }
func (l *logger) Warn(msg string, ctx ...interface{})  { l.write(LvlWarn, msg, ctx) }
func (l *logger) Error(msg string, ctx ...interface{}) { l.write(LvlError, msg, ctx) }

// Crit logs at LvlCrit, appends a captured call stack, and terminates
// the process — matching the rest of the lineage's "Crit is fatal"
// convention for cmd/groupctl.
func (l *logger) Crit(msg string, ctx ...interface{}) {
	full := append(append([]interface{}{}, ctx...), "stack", stack.Trace().TrimRuntime())
	l.write(LvlCrit, msg, full)
	os.Exit(1)
}

func (l *logger) write(lvl Lvl, msg string, ctx []interface{}) {
	if lvl > l.lvl {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	all := append(append([]interface{}{}, l.ctx...), ctx...)
	line := format(lvl, l.color, msg, all)
	fmt.Fprintln(l.out, line)
}

func format(lvl Lvl, useColor bool, msg string, ctx []interface{}) string {
	label := fmt.Sprintf("[%-5s]", lvl.String())
	if useColor {
		if c, ok := levelColor[lvl]; ok {
			label = c.Sprint(label)
		}
	}
	s := fmt.Sprintf("%s %s %s", time.Now().Format("2006-01-02T15:04:05.000"), label, msg)
	for i := 0; i+1 < len(ctx); i += 2 {
		s += fmt.Sprintf(" %v=%v", ctx[i], ctx[i+1])
	}
	if len(ctx)%2 == 1 {
		s += fmt.Sprintf(" %v=MISSING", ctx[len(ctx)-1])
	}
	return s
}

// Package-level helpers delegate to Root, mirroring the rest of the
// lineage's log.Info(...) call sites.
func Trace(msg string, ctx ...interface{}) { Root.Trace(msg, ctx...) }
func Debug(msg string, ctx ...interface{}) { Root.Debug(msg, ctx...) }
func Info(msg string, ctx ...interface{})  { Root.Info(msg, ctx...) }
func Warn(msg string, ctx ...interface{})  { Root.Warn(msg, ctx...) }
func Error(msg string, ctx ...interface{}) { Root.Error(msg, ctx...) }
func Crit(msg string, ctx ...interface{})  { Root.Crit(msg, ctx...) }
func With(ctx ...interface{}) Logger       { return Root.With(ctx...) }
