// Copyright © 2026 The LISPE authors

package profiler

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/luthersystems/lispe/lisp"
)

// errWriter wraps an io.Writer and captures the first write error,
// short-circuiting subsequent writes after a failure.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

// A profiler implementation that builds Callgrind files.  The resulting
// files can be opened in KCacheGrind or QCacheGrind.  Each application is
// charged its wall time and the cells and numbers it allocated on the
// interpreter heap.  Applications are grouped into pseudo-files by procedure
// kind.
type callgrindProfiler struct {
	profiler
	sync.Mutex
	writer    io.Writer
	writeErr  error
	refs      map[string]int
	root      *callRef
	current   *callRef
}

var _ lisp.Profiler = &callgrindProfiler{}

// NewCallgrindProfiler returns a profiler writing callgrind output.  The
// profiler is attached to in but does nothing until it has an output and is
// enabled.
func NewCallgrindProfiler(in *lisp.Interpreter, opts ...Option) *callgrindProfiler {
	p := new(callgrindProfiler)
	p.in = in
	in.Profiler = p

	p.applyConfigs(opts...)
	return p
}

// cost is the set of callgrind events recorded for an application.
type cost struct {
	time    time.Duration
	cells   uint64
	numbers uint64
}

func (c cost) sub(d cost) cost {
	return cost{c.time - d.time, c.cells - d.cells, c.numbers - d.numbers}
}

func (c cost) String() string {
	return fmt.Sprintf("%d %d %d", c.time.Nanoseconds(), c.cells, c.numbers)
}

// callRef is an open or finished application.  Inclusive cost is known once
// the application returns.
type callRef struct {
	name     string
	file     string
	prev     *callRef
	children []*callRef
	start    cost
	incl     cost
}

// self returns the cost of ref excluding its callees.
func (ref *callRef) self() cost {
	c := ref.incl
	for _, child := range ref.children {
		c = c.sub(child.incl)
	}
	if c.time < 0 {
		c.time = 0
	}
	return c
}

func (p *callgrindProfiler) now() cost {
	stats := p.in.HeapStats()
	return cost{
		time:    time.Duration(time.Now().UnixNano()),
		cells:   stats.Cells.Allocs,
		numbers: stats.Numbers.Allocs,
	}
}

func (p *callgrindProfiler) Enable() error {
	p.Lock()
	defer p.Unlock()
	if p.writer == nil {
		return errors.New("no output set in profiler")
	}
	if err := p.profiler.Enable(); err != nil {
		return err
	}
	w := &errWriter{w: p.writer}
	w.printf("version: 1\ncreator: lispe %s (Go %s)\n", lisp.Version, runtime.Version())
	w.printf("cmd: Eval\npart: 1\npositions: line\n\n")
	w.printf("events: Time_(ns) Cells Numbers\n\n")
	if w.err != nil {
		p.enabled = false
		return w.err
	}
	p.writeErr = nil
	p.refs = make(map[string]int)
	p.current = nil
	p.open("ENTRYPOINT", "-")
	p.root = p.current
	return nil
}

// SetFile directs output to a newly created file.
func (p *callgrindProfiler) SetFile(filename string) error {
	f, err := os.Create(filename) //#nosec G304
	if err != nil {
		return err
	}
	if err := p.SetWriter(f); err != nil {
		f.Close() //nolint:errcheck // already failing
		return err
	}
	return nil
}

// SetWriter directs output to w.  If w is an io.Closer it is closed by
// Complete.
func (p *callgrindProfiler) SetWriter(w io.Writer) error {
	p.Lock()
	defer p.Unlock()
	if p.enabled {
		return errors.New("profiler already enabled")
	}
	p.writer = w
	return nil
}

// Complete closes any applications left open by an error, writes the
// entry point and the summary line and closes the output.
func (p *callgrindProfiler) Complete() error {
	p.Lock()
	defer p.Unlock()
	if !p.enabled {
		return errors.New("profiler not enabled")
	}
	p.enabled = false
	for p.current != nil {
		p.close()
	}
	w := &errWriter{w: p.writer}
	w.printf("summary: %s\n", p.root.incl)
	if p.writeErr == nil {
		p.writeErr = w.err
	}
	if c, ok := p.writer.(io.Closer); ok {
		if err := c.Close(); p.writeErr == nil {
			p.writeErr = err
		}
	}
	return p.writeErr
}

func (p *callgrindProfiler) Start(frame *lisp.CallFrame) func() {
	if p.skipTrace(frame) {
		return func() {}
	}
	name, _ := p.prettyFunName(frame)
	file := fileName(frame)
	p.Lock()
	p.open(name, file)
	ref := p.current
	p.Unlock()
	return func() {
		p.Lock()
		defer p.Unlock()
		// Complete may have closed ref already.
		if !p.enabled || p.current != ref {
			return
		}
		p.close()
	}
}

// open pushes an application nested in the current one.  The caller holds
// the lock.
func (p *callgrindProfiler) open(name, file string) {
	ref := &callRef{name: name, file: file, prev: p.current, start: p.now()}
	if p.current != nil {
		p.current.children = append(p.current.children, ref)
	}
	p.current = ref
}

// close pops the current application and writes its record.  The caller
// holds the lock.
func (p *callgrindProfiler) close() {
	ref := p.current
	p.current = ref.prev
	ref.incl = p.now().sub(ref.start)
	if ref.incl.time <= 0 {
		ref.incl.time = 1
	}
	if p.writeErr != nil {
		return
	}
	w := &errWriter{w: p.writer}
	w.printf("fl=%s\n", p.getRef(ref.file))
	w.printf("fn=%s\n", p.getRef(ref.name))
	w.printf("0 %s\n", ref.self())
	for _, child := range ref.children {
		w.printf("cfl=%s\n", p.getRef(child.file))
		w.printf("cfn=%s\n", p.getRef(child.name))
		w.printf("calls=1 0\n")
		w.printf("0 %s\n", child.incl)
	}
	w.printf("\n")
	p.writeErr = w.err
	// Children have been written and are not needed again.
	ref.children = nil
}

// getRef returns the compressed name of a file or function.  The full name
// is written only on first use.
func (p *callgrindProfiler) getRef(name string) string {
	if ref, ok := p.refs[name]; ok {
		return fmt.Sprintf("(%d)", ref)
	}
	ref := len(p.refs) + 1
	p.refs[name] = ref
	return fmt.Sprintf("(%d) %s", ref, name)
}
