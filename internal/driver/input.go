package driver

// InputSource supplies the judge-side values a Read (`input ...;`)
// statement pulls into the evaluation — the actual task input, which is
// outside this package's concerns; evaluator collaborators provide one.
type InputSource interface {
	// NextScalar returns the next scalar value in the input stream.
	NextScalar() (int64, error)
}

// SliceInput is a trivial InputSource over a fixed slice of values, used
// by tests and by simple evaluators reading pre-parsed input.
type SliceInput struct {
	values []int64
	pos    int
}

// NewSliceInput wraps values as an InputSource.
func NewSliceInput(values []int64) *SliceInput {
	return &SliceInput{values: values}
}

func (s *SliceInput) NextScalar() (int64, error) {
	if s.pos >= len(s.values) {
		return 0, errEndOfInput
	}
	v := s.values[s.pos]
	s.pos++
	return v, nil
}
