package turboply

import "fmt"

// rowAction consumes one property of one row from the stream.
type rowAction func(row int) error

// discardAction reads and drops a property nobody asked for, keeping the
// stream positioned on the next value.
func discardAction(r *Reader, p Property) rowAction {
	if p.IsList() {
		return func(int) error {
			cv, err := r.ReadScalar(p.ListKind)
			if err != nil {
				return err
			}
			n := cv.Uint64()
			for k := uint64(0); k < n; k++ {
				if _, err := r.ReadScalar(p.ValueKind); err != nil {
					return err
				}
			}
			return nil
		}
	}
	return func(int) error {
		_, err := r.ReadScalar(p.ValueKind)
		return err
	}
}

// boundScalarAction stores one property value into column col of the
// spec's rows, casting from the file's declared kind.
func boundScalarAction(r *Reader, p Property, spec ColumnSpec, col int) rowAction {
	return func(row int) error {
		v, err := r.ReadScalar(p.ValueKind)
		if err != nil {
			return err
		}
		spec.setCell(row, col, v)
		return nil
	}
}

// boundListAction reads the count prefix and stores as many values as the
// spec's row storage accepts; values past a fixed row's capacity are read
// and discarded.
func boundListAction(r *Reader, p Property, spec ColumnSpec) rowAction {
	return func(row int) error {
		cv, err := r.ReadScalar(p.ListKind)
		if err != nil {
			return err
		}
		n := int(cv.Uint64())
		store := spec.prepareList(row, n)
		for k := 0; k < n; k++ {
			v, err := r.ReadScalar(p.ValueKind)
			if err != nil {
				return err
			}
			if k < store {
				spec.setListItem(row, k, v)
			}
		}
		return nil
	}
}

// BindRead resolves every spec against the parsed schema and streams every
// row of every element. File properties no spec claims are read and
// discarded; rows execute in schema-declared property order, matching the
// byte/token order the producing writer emitted.
func BindRead(r *Reader, specs ...ColumnSpec) error {
	if err := checkConflicts(specs); err != nil {
		return err
	}
	if err := r.ParseHeader(); err != nil {
		return err
	}

	for ei := range r.elements {
		elem := &r.elements[ei]
		if elem.Count == 0 {
			continue
		}

		actions := make([]rowAction, len(elem.Properties))
		for pi := range elem.Properties {
			actions[pi] = discardAction(r, elem.Properties[pi])
		}

		for _, spec := range specs {
			if spec.ElementName() != elem.Name {
				continue
			}
			if err := spec.attach(elem.Count); err != nil {
				return err
			}
			for col, name := range spec.PropertyNames() {
				pi := elem.findProperty(name)
				if pi < 0 {
					return fmt.Errorf("%w: missing property %q in element %q", ErrBind, name, elem.Name)
				}
				p := elem.Properties[pi]
				if p.IsList() != spec.isList() {
					return fmt.Errorf("%w: property %q of element %q: spec shape does not match file shape",
						ErrBind, name, elem.Name)
				}
				if spec.isList() {
					actions[pi] = boundListAction(r, p, spec)
				} else {
					actions[pi] = boundScalarAction(r, p, spec, col)
				}
			}
		}

		for row := 0; row < elem.Count; row++ {
			for _, act := range actions {
				if err := act(row); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// deriveElements builds one element per distinct element name across the
// specs, in first-occurrence order, each spec appending its properties in
// declaration order. Specs sharing an element must agree on the row count.
func deriveElements(specs []ColumnSpec) ([]Element, error) {
	var elements []Element
	for _, spec := range specs {
		props := spec.properties()
		count := spec.rowCount()

		merged := false
		for i := range elements {
			if elements[i].Name != spec.ElementName() {
				continue
			}
			if elements[i].Count != count {
				return nil, fmt.Errorf("%w: element count mismatch for %q: %d vs %d",
					ErrBind, spec.ElementName(), elements[i].Count, count)
			}
			elements[i].Properties = append(elements[i].Properties, props...)
			merged = true
			break
		}
		if !merged {
			elements = append(elements, Element{Name: spec.ElementName(), Count: count, Properties: props})
		}
	}
	return elements, nil
}

// writeSpecRow emits one row of one spec: every declared column in order
// for a scalar spec, or the count prefix followed by every value for a
// list spec.
func writeSpecRow(w *Writer, spec ColumnSpec, row int) error {
	if spec.isList() {
		n := spec.listLen(row)
		if err := w.WriteScalarAs(ScalarUInt32(uint32(n)), spec.listCountKind()); err != nil {
			return err
		}
		for k := 0; k < n; k++ {
			if err := w.WriteScalar(spec.listItem(row, k)); err != nil {
				return err
			}
		}
		return nil
	}
	for col := range spec.PropertyNames() {
		if err := w.WriteScalar(spec.cell(row, col)); err != nil {
			return err
		}
	}
	return nil
}

// BindWrite derives the schema from the specs, emits the header and
// streams every row. Specs bound to the same element write their columns
// in the order the specs were passed; each row ends with the encoding's
// line terminator. The stream is flushed once at the end.
func BindWrite(w *Writer, specs ...ColumnSpec) error {
	if err := checkConflicts(specs); err != nil {
		return err
	}

	elements, err := deriveElements(specs)
	if err != nil {
		return err
	}
	for _, e := range elements {
		if err := w.AddElement(e); err != nil {
			return err
		}
	}
	if err := w.WriteHeader(); err != nil {
		return err
	}

	for _, e := range elements {
		for row := 0; row < e.Count; row++ {
			for _, spec := range specs {
				if spec.ElementName() != e.Name {
					continue
				}
				if err := writeSpecRow(w, spec, row); err != nil {
					return err
				}
			}
			if err := w.WriteLineEnd(); err != nil {
				return err
			}
		}
	}

	return w.Flush()
}
