package errors

import (
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// handlerBox lets an interface value live in an atomic.Pointer.
type handlerBox struct{ h ErrorHandler }

var handlerPtr atomic.Pointer[handlerBox]

func init() {
	handlerPtr.Store(&handlerBox{h: &LogHandler{}})
}

// SetHandler installs the process-wide error handler and returns the one
// it replaces. Pass nil to restore the default LogHandler.
func SetHandler(h ErrorHandler) ErrorHandler {
	if h == nil {
		h = &LogHandler{}
	}
	return handlerPtr.Swap(&handlerBox{h: h}).h
}

func getHandler() ErrorHandler {
	return handlerPtr.Load().h
}

// Report sends a frame error to the handler, stamping it if needed.
func Report(err *FrameError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	getHandler().HandleError(err)
}

// ReportPanic sends a recovered panic to the handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	getHandler().HandlePanic(err)
}

// Recover reports a panic in progress as a PanicError tagged with op.
// It must be deferred directly:
//
//	defer errors.Recover("engine.Draw")
func Recover(op string) {
	if r := recover(); r != nil {
		reportRecovered(op, r)
	}
}

// RecoverWithCallback is Recover followed by callback(r), which typically
// replaces the interrupted operation's result.
func RecoverWithCallback(op string, callback func(r any)) {
	if r := recover(); r != nil {
		reportRecovered(op, r)
		if callback != nil {
			callback(r)
		}
	}
}

func reportRecovered(op string, r any) {
	stack := ""
	if re, ok := r.(*ReconcileError); ok && re.StackTrace != "" {
		stack = re.StackTrace
	} else {
		stack = CaptureStack()
	}
	ReportPanic(&PanicError{Op: op, Value: r, StackTrace: stack, Timestamp: time.Now()})
}

// CaptureStack returns the caller's stack, one "function\n\tfile:line"
// entry per frame. Runtime frames and the recover helpers are left out,
// so a stack captured while recovering starts at the code that panicked.
func CaptureStack() string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(2, pcs[:])
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		frame, more := frames.Next()
		if !skipFrame(frame.Function) {
			sb.WriteString(frame.Function)
			sb.WriteString("\n\t")
			sb.WriteString(frame.File)
			sb.WriteByte(':')
			sb.WriteString(strconv.Itoa(frame.Line))
			sb.WriteByte('\n')
		}
		if !more {
			break
		}
	}
	return sb.String()
}

const pkgPath = "github.com/go-drift/immediate/pkg/errors."

func skipFrame(fn string) bool {
	if strings.HasPrefix(fn, "runtime.") {
		return true
	}
	switch strings.TrimPrefix(fn, pkgPath) {
	case "Recover", "RecoverWithCallback", "reportRecovered":
		return true
	}
	return false
}
