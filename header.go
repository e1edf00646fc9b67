package turboply

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Property is one named column of an element. ListKind != Unused marks a
// list property whose serialized count prefix uses ListKind and whose
// values use ValueKind.
type Property struct {
	Name      string
	ValueKind ScalarKind
	ListKind  ScalarKind
}

// IsList reports whether the property carries a count-prefixed sequence.
func (p Property) IsList() bool { return p.ListKind != Unused }

// Element is a named, counted group of rows with an ordered property list.
type Element struct {
	Name       string
	Count      int
	Properties []Property
}

// findProperty returns the index of the named property, or -1.
func (e *Element) findProperty(name string) int {
	for i := range e.Properties {
		if e.Properties[i].Name == name {
			return i
		}
	}
	return -1
}

const (
	magicLine   = "ply"
	endOfHeader = "end_header"
)

// readHeaderLine collects one newline-terminated text line from the
// stream without buffering ahead, so the byte after the header's final
// newline is left as the first row-data byte.
func readHeaderLine(rs ReadStream) (string, error) {
	var line []byte
	for {
		b, err := rs.ReadByte()
		if err != nil {
			if len(line) > 0 && (err == io.EOF) {
				return string(line), nil
			}
			return "", ioErr(err, "read header line")
		}
		if b == '\n' {
			break
		}
		line = append(line, b)
	}
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return string(line), nil
}

// parseHeader consumes the textual preamble and returns the schema it
// declares. Duplicate element or property names in the file are retained
// verbatim; uniqueness is only enforced on the write path.
func parseHeader(rs ReadStream, h formatHandler) (comments []string, elements []Element, err error) {
	line, err := readHeaderLine(rs)
	if err != nil {
		return nil, nil, err
	}
	if !strings.HasPrefix(line, magicLine) {
		return nil, nil, fmt.Errorf("%w: invalid file format (missing %q magic number)", ErrFormat, magicLine)
	}

	line, err = readHeaderLine(rs)
	if err != nil {
		return nil, nil, err
	}
	if !strings.HasPrefix(line, h.formatLine()) {
		return nil, nil, fmt.Errorf("%w: unsupported PLY format, expected %q", ErrFormat, h.formatLine())
	}

	var current *Element
	for {
		line, err = readHeaderLine(rs)
		if err != nil {
			return nil, nil, err
		}
		if strings.HasPrefix(line, endOfHeader) {
			break
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "comment":
			c := ""
			if len(line) > len("comment ") {
				c = line[len("comment "):]
			}
			comments = append(comments, c)

		case "element":
			if len(fields) < 3 {
				return nil, nil, fmt.Errorf("%w: malformed element declaration %q", ErrFormat, line)
			}
			count, convErr := strconv.Atoi(fields[2])
			if convErr != nil || count < 0 {
				return nil, nil, fmt.Errorf("%w: invalid element count in %q", ErrFormat, line)
			}
			elements = append(elements, Element{Name: fields[1], Count: count})
			current = &elements[len(elements)-1]

		case "property":
			if current == nil {
				return nil, nil, fmt.Errorf("%w: property defined without a parent element", ErrFormat)
			}
			var p Property
			if len(fields) >= 2 && fields[1] == "list" {
				if len(fields) < 5 {
					return nil, nil, fmt.Errorf("%w: malformed list property %q", ErrFormat, line)
				}
				if p.ListKind, err = ParseScalarKind(fields[2]); err != nil {
					return nil, nil, err
				}
				if p.ValueKind, err = ParseScalarKind(fields[3]); err != nil {
					return nil, nil, err
				}
				p.Name = fields[4]
			} else {
				if len(fields) < 3 {
					return nil, nil, fmt.Errorf("%w: malformed property %q", ErrFormat, line)
				}
				if p.ValueKind, err = ParseScalarKind(fields[1]); err != nil {
					return nil, nil, err
				}
				p.Name = fields[2]
			}
			current.Properties = append(current.Properties, p)

		default:
			// Lines such as obj_info are carried by some producers; they
			// do not participate in the element grammar.
		}
	}

	return comments, elements, nil
}

// writeHeaderText emits the magic line, the encoding's format line, the
// comments in insertion order, one declaration block per element in
// registration order and the end marker.
func writeHeaderText(ws WriteStream, h formatHandler, comments []string, elements []Element) error {
	var sb strings.Builder
	sb.WriteString(magicLine)
	sb.WriteByte('\n')
	sb.WriteString(h.formatLine())
	sb.WriteByte('\n')

	for _, c := range comments {
		sb.WriteString("comment ")
		sb.WriteString(c)
		sb.WriteByte('\n')
	}

	for _, e := range elements {
		sb.WriteString("element ")
		sb.WriteString(e.Name)
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(e.Count))
		sb.WriteByte('\n')
		for _, p := range e.Properties {
			if p.IsList() {
				sb.WriteString("property list ")
				sb.WriteString(p.ListKind.String())
				sb.WriteByte(' ')
				sb.WriteString(p.ValueKind.String())
			} else {
				sb.WriteString("property ")
				sb.WriteString(p.ValueKind.String())
			}
			sb.WriteByte(' ')
			sb.WriteString(p.Name)
			sb.WriteByte('\n')
		}
	}

	sb.WriteString(endOfHeader)
	sb.WriteByte('\n')

	if _, err := io.WriteString(ws, sb.String()); err != nil {
		return ioErr(err, "write header")
	}
	return nil
}
