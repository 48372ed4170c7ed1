package pipeline

import "fmt"

// Decode turns an encoded elements stream into its elements, in order.
func Decode(encoded string) ([]Element, error) {
	r := NewReader(encoded)
	n, err := r.ReadElementCount()
	if err != nil {
		return nil, &DecodeError{Offset: 0, Err: err}
	}

	elements := make([]Element, 0, n)
	for i := 0; i < n; i++ {
		start := r.Offset()
		op, err := r.ReadChars(1)
		if err != nil {
			return nil, &DecodeError{Offset: start, Err: fmt.Errorf("element %d of %d: %w", i+1, n, err)}
		}
		opcode := []rune(op)[0]
		e, err := decodeElement(opcode, r)
		if err != nil {
			return nil, &DecodeError{Offset: start, Opcode: opcode, Err: err}
		}
		elements = append(elements, e)
	}
	return elements, nil
}

func decodeElement(op rune, r *Reader) (Element, error) {
	switch op {
	case OpFollowSymlink:
		return &FollowSymlink{}, nil
	case OpQuotes:
		return &Quotes{}, nil
	case OpOptionalQuotes:
		return &OptionalQuotes{}, nil
	case OpEmailLinks:
		return &EmailLinks{}, nil
	case OpEncodeURIWhitespace:
		return &EncodeURIWhitespace{}, nil
	case OpEncodeURIChars:
		return &EncodeURIChars{}, nil
	case OpBackslashesToForward:
		return &BackslashesToForward{}, nil
	case OpForwardToBackslashes:
		return &ForwardToBackslashes{}, nil
	case OpRemoveFileExt:
		return &RemoveFileExt{}, nil
	case OpFindReplace:
		return decodeFindReplace(r)
	case OpRegex:
		return decodeRegex(r)
	case OpUnexpandEnvStrings:
		return &UnexpandEnvStrings{}, nil
	case OpInjectDriveLabel:
		return &InjectDriveLabel{}, nil
	case OpCopyNPathParts:
		return decodeCopyNPathParts(r)
	case OpApplyPlugin:
		id, err := r.ReadGUID()
		if err != nil {
			return nil, err
		}
		return &ApplyPlugin{ID: id}, nil
	case OpApplyPipelinePlugin:
		id, err := r.ReadGUID()
		if err != nil {
			return nil, err
		}
		return &ApplyPipelinePlugin{ID: id}, nil
	case OpPushToStack:
		return decodePushToStack(r)
	case OpPopFromStack:
		return decodePopFromStack(r)
	case OpSwapStackValues:
		return &SwapStackValues{}, nil
	case OpDuplicateStackValue:
		return &DuplicateStackValue{}, nil
	case OpPathsSeparator:
		sep, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		return &PathsSeparator{Separator: sep}, nil
	case OpRecursiveCopy:
		return &RecursiveCopy{}, nil
	case OpExecutable:
		path, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		return &Executable{Path: path}, nil
	case OpExecutableWithFilelist:
		path, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		return &ExecutableWithFilelist{Path: path}, nil
	case OpCommandLine:
		return decodeCommandLine(r)
	case OpDisplayForSelection:
		return decodeDisplayForSelection(r)
	default:
		return nil, fmt.Errorf("opcode %q: %w", op, ErrUnsupportedElement)
	}
}

func decodeFindReplace(r *Reader) (Element, error) {
	oldValue, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	newValue, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return &FindReplace{Old: oldValue, New: newValue}, nil
}

func decodeRegex(r *Reader) (Element, error) {
	version, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	if version > RegexVersion {
		return nil, fmt.Errorf("regex element version %d: %w", version, ErrUnsupportedElement)
	}
	e := &Regex{}
	if e.Pattern, err = r.ReadString(); err != nil {
		return nil, err
	}
	if e.Format, err = r.ReadString(); err != nil {
		return nil, err
	}
	if e.IgnoreCase, err = r.ReadBool(); err != nil {
		return nil, err
	}
	return e, nil
}

func decodeCopyNPathParts(r *Reader) (Element, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	first, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	return &CopyNPathParts{NumParts: int(n), First: first}, nil
}

func decodePushToStack(r *Reader) (Element, error) {
	method, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	e := &PushToStack{Method: PushMethod(method)}
	switch e.Method {
	case PushEntire:
	case PushRange:
		if e.Begin, e.End, err = readRange(r); err != nil {
			return nil, err
		}
	case PushRegex:
		if e.Pattern, err = r.ReadString(); err != nil {
			return nil, err
		}
		if e.IgnoreCase, err = r.ReadBool(); err != nil {
			return nil, err
		}
		group, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		e.Group = int(group)
	case PushFixed:
		if e.Value, err = r.ReadString(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("push method %d: %w", method, ErrUnsupportedElement)
	}
	return e, nil
}

func decodePopFromStack(r *Reader) (Element, error) {
	location, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	e := &PopFromStack{Location: PopLocation(location)}
	switch e.Location {
	case PopEntire, PopStart, PopEnd, PopNowhere:
	case PopRange:
		if e.Begin, e.End, err = readRange(r); err != nil {
			return nil, err
		}
	case PopRegex:
		if e.Pattern, err = r.ReadString(); err != nil {
			return nil, err
		}
		if e.IgnoreCase, err = r.ReadBool(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("pop location %d: %w", location, ErrUnsupportedElement)
	}
	return e, nil
}

func readRange(r *Reader) (begin, end int, err error) {
	b, err := r.ReadInt32()
	if err != nil {
		return 0, 0, err
	}
	e, err := r.ReadInt32()
	if err != nil {
		return 0, 0, err
	}
	return int(b), int(e), nil
}

func decodeCommandLine(r *Reader) (Element, error) {
	e := &CommandLine{}
	var err error
	if e.Executable, err = r.ReadString(); err != nil {
		return nil, err
	}
	if e.Arguments, err = r.ReadString(); err != nil {
		return nil, err
	}
	if e.UseFilelist, err = r.ReadBool(); err != nil {
		return nil, err
	}
	return e, nil
}

func decodeDisplayForSelection(r *Reader) (Element, error) {
	files, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	folders, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	return &DisplayForSelection{ShowForFiles: files, ShowForFolders: folders}, nil
}

// Encode produces the encoded elements stream Decode reads back.
func Encode(elements []Element) (string, error) {
	w := &Writer{}
	w.WriteElementCount(len(elements))
	for _, e := range elements {
		w.WriteOpcode(e.Opcode())
		if pe, ok := e.(payloadEncoder); ok {
			pe.encodePayload(w)
		}
	}
	return w.Result()
}
