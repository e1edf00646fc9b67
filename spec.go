package turboply

import "fmt"

// ColumnSpec associates a caller-owned contiguous array of rows with one
// element's properties. Specs borrow their backing storage for the
// duration of a bind call; they never own it. Concrete specs are built
// with NewScalarSpec, NewScalarView, NewListSpec, NewFixedListSpec and
// NewFixedListView.
type ColumnSpec interface {
	ElementName() string
	PropertyNames() []string

	// schema derivation (write side)
	properties() []Property
	rowCount() int

	// storage attachment (read side): grow to count rows, or verify a
	// fixed view already has exactly count rows
	attach(count int) error

	isList() bool

	// scalar cells
	cell(row, col int) Scalar
	setCell(row, col int, v Scalar)

	// list rows; prepareList returns the capacity actually available for
	// storing a row of fileCount values
	listCountKind() ScalarKind
	listLen(row int) int
	listItem(row, k int) Scalar
	prepareList(row, fileCount int) int
	setListItem(row, k int, v Scalar)
}

// ScalarSpec binds fixed-width rows of W same-typed columns over a flat
// backing slice, stride = number of declared properties.
type ScalarSpec[T Numeric] struct {
	element string
	props   []string
	data    *[]T // non-nil when the backing storage may grow
	view    []T
}

// NewScalarSpec binds growable storage: on read the slice is resized to
// rowCount*len(props).
func NewScalarSpec[T Numeric](element string, data *[]T, props ...string) *ScalarSpec[T] {
	return &ScalarSpec[T]{element: element, props: props, data: data, view: *data}
}

// NewScalarView binds a fixed-capacity view: the length must already match
// the element's row count on read, and is the row count on write.
func NewScalarView[T Numeric](element string, view []T, props ...string) *ScalarSpec[T] {
	return &ScalarSpec[T]{element: element, props: props, view: view}
}

func (s *ScalarSpec[T]) ElementName() string       { return s.element }
func (s *ScalarSpec[T]) PropertyNames() []string   { return s.props }
func (s *ScalarSpec[T]) isList() bool              { return false }
func (s *ScalarSpec[T]) listCountKind() ScalarKind { return Unused }

func (s *ScalarSpec[T]) stride() int { return len(s.props) }

func (s *ScalarSpec[T]) rowCount() int {
	if s.stride() == 0 {
		return 0
	}
	return len(s.view) / s.stride()
}

func (s *ScalarSpec[T]) attach(count int) error {
	want := count * s.stride()
	if s.data != nil {
		if cap(*s.data) >= want {
			*s.data = (*s.data)[:want]
		} else {
			grown := make([]T, want)
			copy(grown, *s.data)
			*s.data = grown
		}
		s.view = *s.data
		return nil
	}
	if len(s.view) != want {
		return fmt.Errorf("%w: element count mismatch for %q: view holds %d rows, file declares %d",
			ErrBind, s.element, s.rowCount(), count)
	}
	return nil
}

func (s *ScalarSpec[T]) cell(row, col int) Scalar {
	return ScalarOf(s.view[row*s.stride()+col])
}

func (s *ScalarSpec[T]) setCell(row, col int, v Scalar) {
	s.view[row*s.stride()+col] = As[T](v)
}

func (s *ScalarSpec[T]) properties() []Property {
	props := make([]Property, len(s.props))
	for i, name := range s.props {
		props[i] = Property{Name: name, ValueKind: KindOf[T]()}
	}
	return props
}

func (s *ScalarSpec[T]) listLen(int) int              { return 0 }
func (s *ScalarSpec[T]) listItem(int, int) Scalar     { return Scalar{} }
func (s *ScalarSpec[T]) prepareList(int, int) int     { return 0 }
func (s *ScalarSpec[T]) setListItem(int, int, Scalar) {}

// ListSpec binds one variable-length list property over growable rows:
// each row is resized to the file's count on read.
type ListSpec[T Numeric] struct {
	element   string
	prop      string
	countKind ScalarKind
	rows      *[][]T
}

// NewListSpec binds growable list rows. countKind declares the serialized
// count prefix.
func NewListSpec[T Numeric](element, prop string, countKind ScalarKind, rows *[][]T) *ListSpec[T] {
	return &ListSpec[T]{element: element, prop: prop, countKind: countKind, rows: rows}
}

func (s *ListSpec[T]) ElementName() string       { return s.element }
func (s *ListSpec[T]) PropertyNames() []string   { return []string{s.prop} }
func (s *ListSpec[T]) isList() bool              { return true }
func (s *ListSpec[T]) listCountKind() ScalarKind { return s.countKind }
func (s *ListSpec[T]) rowCount() int             { return len(*s.rows) }

func (s *ListSpec[T]) attach(count int) error {
	if cap(*s.rows) >= count {
		*s.rows = (*s.rows)[:count]
	} else {
		grown := make([][]T, count)
		copy(grown, *s.rows)
		*s.rows = grown
	}
	return nil
}

func (s *ListSpec[T]) properties() []Property {
	return []Property{{Name: s.prop, ValueKind: KindOf[T](), ListKind: s.countKind}}
}

func (s *ListSpec[T]) listLen(row int) int { return len((*s.rows)[row]) }

func (s *ListSpec[T]) listItem(row, k int) Scalar { return ScalarOf((*s.rows)[row][k]) }

func (s *ListSpec[T]) prepareList(row, fileCount int) int {
	r := (*s.rows)[row]
	if cap(r) >= fileCount {
		r = r[:fileCount]
	} else {
		r = make([]T, fileCount)
	}
	(*s.rows)[row] = r
	return fileCount
}

func (s *ListSpec[T]) setListItem(row, k int, v Scalar) { (*s.rows)[row][k] = As[T](v) }

func (s *ListSpec[T]) cell(int, int) Scalar     { return Scalar{} }
func (s *ListSpec[T]) setCell(int, int, Scalar) {}

// FixedListSpec binds one list property whose rows have a fixed length,
// stored flat with stride = length. Reading a longer file row stores the
// first length values and discards the rest; this truncation is
// intentional and never an error.
type FixedListSpec[T Numeric] struct {
	element   string
	prop      string
	countKind ScalarKind
	length    int
	data      *[]T
	view      []T
}

// NewFixedListSpec binds growable flat storage for fixed-length list rows.
func NewFixedListSpec[T Numeric](element, prop string, countKind ScalarKind, length int, data *[]T) *FixedListSpec[T] {
	return &FixedListSpec[T]{element: element, prop: prop, countKind: countKind, length: length, data: data, view: *data}
}

// NewFixedListView binds a fixed-capacity flat view for fixed-length list
// rows; its row count must already match the element's on read.
func NewFixedListView[T Numeric](element, prop string, countKind ScalarKind, length int, view []T) *FixedListSpec[T] {
	return &FixedListSpec[T]{element: element, prop: prop, countKind: countKind, length: length, view: view}
}

func (s *FixedListSpec[T]) ElementName() string       { return s.element }
func (s *FixedListSpec[T]) PropertyNames() []string   { return []string{s.prop} }
func (s *FixedListSpec[T]) isList() bool              { return true }
func (s *FixedListSpec[T]) listCountKind() ScalarKind { return s.countKind }

func (s *FixedListSpec[T]) rowCount() int {
	if s.length == 0 {
		return 0
	}
	return len(s.view) / s.length
}

func (s *FixedListSpec[T]) attach(count int) error {
	want := count * s.length
	if s.data != nil {
		if cap(*s.data) >= want {
			*s.data = (*s.data)[:want]
		} else {
			grown := make([]T, want)
			copy(grown, *s.data)
			*s.data = grown
		}
		s.view = *s.data
		return nil
	}
	if len(s.view) != want {
		return fmt.Errorf("%w: element count mismatch for %q: view holds %d rows, file declares %d",
			ErrBind, s.element, s.rowCount(), count)
	}
	return nil
}

func (s *FixedListSpec[T]) properties() []Property {
	return []Property{{Name: s.prop, ValueKind: KindOf[T](), ListKind: s.countKind}}
}

func (s *FixedListSpec[T]) listLen(int) int { return s.length }

func (s *FixedListSpec[T]) listItem(row, k int) Scalar {
	return ScalarOf(s.view[row*s.length+k])
}

func (s *FixedListSpec[T]) prepareList(_, fileCount int) int {
	return min(fileCount, s.length)
}

func (s *FixedListSpec[T]) setListItem(row, k int, v Scalar) {
	s.view[row*s.length+k] = As[T](v)
}

func (s *FixedListSpec[T]) cell(int, int) Scalar     { return Scalar{} }
func (s *FixedListSpec[T]) setCell(int, int, Scalar) {}

// checkConflicts rejects spec sets in which two specs target the same
// element and share any property name, before any I/O happens.
func checkConflicts(specs []ColumnSpec) error {
	for i := 0; i < len(specs); i++ {
		for j := i + 1; j < len(specs); j++ {
			if specs[i].ElementName() != specs[j].ElementName() {
				continue
			}
			for _, a := range specs[i].PropertyNames() {
				for _, b := range specs[j].PropertyNames() {
					if a == b {
						return fmt.Errorf("%w: multiple specs bind property %q of element %q",
							ErrBind, a, specs[i].ElementName())
					}
				}
			}
		}
	}
	return nil
}
