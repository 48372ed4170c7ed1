package pipeline

// Stack is the last-in-first-out value stack of a single pipeline run.
type Stack struct {
	values []string
}

func (s *Stack) Len() int { return len(s.values) }

func (s *Stack) Push(v string) {
	s.values = append(s.values, v)
}

// Pop removes the top value. ok is false when the stack is empty.
func (s *Stack) Pop() (v string, ok bool) {
	if len(s.values) == 0 {
		return "", false
	}
	v = s.values[len(s.values)-1]
	s.values = s.values[:len(s.values)-1]
	return v, true
}

// Top returns the top value without removing it.
func (s *Stack) Top() (string, bool) {
	if len(s.values) == 0 {
		return "", false
	}
	return s.values[len(s.values)-1], true
}
