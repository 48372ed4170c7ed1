package pipeline

import (
	"fmt"

	"github.com/google/uuid"
)

// Pipeline is an ordered, immutable list of elements.
type Pipeline struct {
	elements []Element
}

// New returns a pipeline running elements in order.
func New(elements ...Element) *Pipeline {
	return &Pipeline{elements: append([]Element(nil), elements...)}
}

// Parse decodes an encoded elements stream into a pipeline.
func Parse(encoded string) (*Pipeline, error) {
	elements, err := Decode(encoded)
	if err != nil {
		return nil, err
	}
	return &Pipeline{elements: elements}, nil
}

// Elements returns a copy of the element list.
func (p *Pipeline) Elements() []Element {
	return append([]Element(nil), p.elements...)
}

// Encode returns the pipeline's encoded elements stream.
func (p *Pipeline) Encode() (string, error) {
	return Encode(p.elements)
}

// Validate checks the plugin references of the pipeline owned by plugin self.
// A reference back to self, or any cycle through other pipeline plugins,
// fails with ErrLoopDetected.
func (p *Pipeline) Validate(self uuid.UUID, host Host) error {
	seen := map[uuid.UUID]struct{}{self: {}}
	return p.validate(host, seen)
}

func (p *Pipeline) validate(host Host, seen map[uuid.UUID]struct{}) error {
	for i, e := range p.elements {
		v, ok := e.(validator)
		if !ok {
			continue
		}
		if err := v.validate(host, seen); err != nil {
			return fmt.Errorf("element %d (%q): %w", i, e.Opcode(), err)
		}
	}
	return nil
}

// ModifyPath runs every element over path with a fresh stack.
func (p *Pipeline) ModifyPath(path string, host Host) string {
	var stack Stack
	for _, e := range p.elements {
		switch m := e.(type) {
		case stackModifier:
			path = m.modifyPathWithStack(path, &stack, host)
		case pathModifier:
			path = m.modifyPath(path, host)
		}
	}
	return path
}

// Options folds every element's options over DefaultOptions.
func (p *Pipeline) Options() Options {
	opts := DefaultOptions()
	for _, e := range p.elements {
		if m, ok := e.(optionsModifier); ok {
			m.modifyOptions(&opts)
		}
	}
	return opts
}

// EnabledFor reports whether every element is enabled for file in parentPath.
func (p *Pipeline) EnabledFor(parentPath, file string, host Host) bool {
	for _, e := range p.elements {
		if en, ok := e.(enabler); ok && !en.enabledFor(parentPath, file, host) {
			return false
		}
	}
	return true
}
