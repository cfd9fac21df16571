package driver

import "fmt"

// OutputSink receives the values a Write (`output ...;`) statement
// resolves, in program order — the actual task output stream, owned by
// the evaluator, not this package.
type OutputSink interface {
	EmitScalar(v int64) error
}

// SliceOutput is a trivial OutputSink collecting everything written, used
// by tests.
type SliceOutput struct {
	Values []int64
}

func (s *SliceOutput) EmitScalar(v int64) error {
	s.Values = append(s.Values, v)
	return nil
}

var errEndOfInput = fmt.Errorf("driver: input exhausted")
