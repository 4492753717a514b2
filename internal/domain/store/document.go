package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/employee"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/payroll"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/orderedmap"
)

// SchemaVersion is written on every save.
const SchemaVersion = 2

// Document is the whole persisted state: employees with their daily attendance,
// monthly income, the rate table and the four-week summaries.
type Document struct {
	SchemaVersion int                                    `json:"schema_version"`
	Employees     orderedmap.Map[*employee.Employee]     `json:"karyawan"`
	Income        map[string]int64                       `json:"pemasukan"`
	Rates         payroll.RateTable                      `json:"rates"`
	Weekly        orderedmap.Map[*payroll.WeeklyPayroll] `json:"mingguan"`
}

func NewDocument() *Document {
	return &Document{
		SchemaVersion: SchemaVersion,
		Income:        make(map[string]int64),
	}
}

// Decode reads any supported layout:
//   - a versioned document
//   - an unversioned document with "karyawan" (daily attendance only)
//   - a flat map of four-week summaries, imported into Weekly
func Decode(data []byte) (*Document, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return NewDocument(), nil
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	if len(top) == 0 {
		return NewDocument(), nil
	}

	_, versioned := top["schema_version"]
	_, hasEmployees := top["karyawan"]

	switch {
	case versioned:
		var version int
		if err := json.Unmarshal(top["schema_version"], &version); err != nil {
			return nil, fmt.Errorf("%w: schema_version: %v", ErrCorruptDocument, err)
		}
		if version < 1 || version > SchemaVersion {
			return nil, fmt.Errorf("%w: version %d", ErrUnknownSchema, version)
		}
		return decodeDocument(data)
	case hasEmployees:
		return decodeDocument(data)
	default:
		return importWeekly(data)
	}
}

func decodeDocument(data []byte) (*Document, error) {
	doc := NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	if doc.Income == nil {
		doc.Income = make(map[string]int64)
	}
	for _, key := range doc.Employees.Keys() {
		if e, _ := doc.Employees.Get(key); e == nil {
			doc.Employees.Set(key, &employee.Employee{})
		}
	}
	for _, key := range doc.Weekly.Keys() {
		if w, _ := doc.Weekly.Get(key); w == nil {
			doc.Weekly.Delete(key)
		}
	}
	doc.SchemaVersion = SchemaVersion
	return doc, nil
}

func importWeekly(data []byte) (*Document, error) {
	var raw orderedmap.Map[json.RawMessage]
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}

	var shapeErr error
	raw.Range(func(key string, value json.RawMessage) bool {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(value, &fields); err != nil {
			shapeErr = fmt.Errorf("%w: entry %q is not an object", ErrUnknownSchema, key)
			return false
		}
		rawWeeks, ok := fields["weeks"]
		if !ok {
			shapeErr = fmt.Errorf("%w: entry %q has no weeks", ErrUnknownSchema, key)
			return false
		}
		var weeks []payroll.WeekEntry
		if err := json.Unmarshal(rawWeeks, &weeks); err != nil {
			shapeErr = fmt.Errorf("%w: entry %q: %v", ErrUnknownSchema, key, err)
			return false
		}
		if err := payroll.CheckWeeks(weeks); err != nil {
			shapeErr = fmt.Errorf("%w: entry %q: %v", ErrUnknownSchema, key, err)
			return false
		}
		return true
	})
	if shapeErr != nil {
		return nil, shapeErr
	}

	doc := NewDocument()
	if err := json.Unmarshal(data, &doc.Weekly); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	return doc, nil
}

// Encode writes the current layout with four-space indentation.
func Encode(doc *Document) ([]byte, error) {
	doc.SchemaVersion = SchemaVersion
	if doc.Income == nil {
		doc.Income = make(map[string]int64)
	}
	return json.MarshalIndent(doc, "", "    ")
}
