package metaclass

import (
	"io"
	"os/exec"
	"strconv"

	"github.com/sasha-s/go-deadlock"
)

// Evaluator manages a long-lived evaluator subprocess and speaks the
// line-framed wire protocol of spec.md §6 over its stdin/stdout pipes,
// grounded on the original's boost::process opstream/ipstream pairing
// (extern/meta_classes/meta_process.hpp) and on the teacher's
// classfile.reader sticky-error reading discipline.
type Evaluator struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	reader *frameReader
	mu     deadlock.Mutex
}

// StartEvaluator launches path as a subprocess and wires its stdio
// pipes for the wire protocol. The caller must call Shutdown to release
// the process.
func StartEvaluator(path string, args ...string) (*Evaluator, error) {
	cmd := exec.Command(path, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, &EvaluatorError{Op: "start", Message: "opening stdin pipe", Err: err}
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &EvaluatorError{Op: "start", Message: "opening stdout pipe", Err: err}
	}
	if err := cmd.Start(); err != nil {
		return nil, &EvaluatorError{Op: "start", Message: "launching evaluator", Err: err}
	}
	return &Evaluator{cmd: cmd, stdin: stdin, reader: newFrameReader(stdout)}, nil
}

func (e *Evaluator) writeLine(s string) error {
	if _, err := io.WriteString(e.stdin, s+"\n"); err != nil {
		return &EvaluatorError{Op: "write", Message: "writing to evaluator stdin", Err: err}
	}
	return nil
}

// ListMetaClasses performs the mode-1 handshake, returning the names of
// every meta-class the evaluator knows how to expand.
func (e *Evaluator) ListMetaClasses() ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.writeLine(ModeListMetaClasses); err != nil {
		return nil, err
	}
	count := e.reader.readCount()
	if e.reader.err != nil {
		return nil, &EvaluatorError{Op: "list-meta-classes", Message: "reading count", Err: e.reader.err}
	}
	names := make([]string, 0, count)
	for i := 0; i < count; i++ {
		name := e.reader.readLine()
		if e.reader.err != nil {
			return nil, &EvaluatorError{Op: "list-meta-classes", Message: "reading name", Err: e.reader.err}
		}
		names = append(names, name)
	}
	return names, nil
}

// Expand performs the mode-2 call: it sends the meta-class name, the
// byte length of the class body source text, and that text, then reads
// the reply (a status line, a byte-count line, and that many bytes). It
// returns the generated replacement source on status 0, and an
// EvaluatorError carrying the reply body otherwise.
func (e *Evaluator) Expand(metaClassName, classSource string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.writeLine(ModeExpand); err != nil {
		return "", err
	}
	if err := e.writeLine(metaClassName); err != nil {
		return "", err
	}
	if err := e.writeLine(strconv.Itoa(len(classSource))); err != nil {
		return "", err
	}
	if _, err := io.WriteString(e.stdin, classSource); err != nil {
		return "", &EvaluatorError{Op: "expand", Message: "writing class source", Err: err}
	}

	status := e.reader.readCount()
	body := e.reader.readFramedBody()
	if e.reader.err != nil {
		return "", &EvaluatorError{Op: "expand", Message: "reading generated source", Err: e.reader.err}
	}
	if status != 0 {
		return "", &EvaluatorError{Op: "expand", Message: "evaluator returned status " + strconv.Itoa(status) + ": " + string(body)}
	}
	return string(body), nil
}

// Shutdown sends the mode-3 request, closes stdin, and waits for the
// subprocess to exit.
func (e *Evaluator) Shutdown() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.writeLine(ModeShutdown); err != nil {
		return err
	}
	if err := e.stdin.Close(); err != nil {
		return &EvaluatorError{Op: "shutdown", Message: "closing stdin", Err: err}
	}
	if err := e.cmd.Wait(); err != nil {
		return &EvaluatorError{Op: "shutdown", Message: "waiting for evaluator to exit", Err: err}
	}
	return nil
}
