package tables

import "fmt"

// Error is the typed table-lookup failure of spec §7 ("Table error — GRIB
// code-table enum cannot be mapped to or from a numeric code").
type Error struct {
	Table  string
	Code   int64
	Name   string
	byName bool
}

func (e *Error) Error() string {
	if e.byName {
		return fmt.Sprintf("tables: %s: unknown name %q", e.Table, e.Name)
	}
	return fmt.Sprintf("tables: %s: code %d is out of range", e.Table, e.Code)
}

// EnumTable is a bidirectional code table: a fixed, closed set of named
// integer codes (spec §8: "for every enum E in a GRIB code table,
// name_to_enum(enum_to_name(e)) == e and long_to_enum(long(e)) == e").
//
// E is expected to be a defined integer type (e.g. `type ShapeOfTheEarth
// int64`), one constant per table entry.
type EnumTable[E ~int64] struct {
	table  string
	toName map[E]string
	toEnum map[string]E
}

// NewEnumTable builds an EnumTable from a complete set of (enum, name)
// pairs. table names the table in error messages.
func NewEnumTable[E ~int64](table string, pairs map[E]string) *EnumTable[E] {
	t := &EnumTable[E]{
		table:  table,
		toName: make(map[E]string, len(pairs)),
		toEnum: make(map[string]E, len(pairs)),
	}
	for e, name := range pairs {
		t.toName[e] = name
		t.toEnum[name] = e
	}
	return t
}

// EnumToName returns the canonical name of e, or a table error if e is not
// one of the table's entries.
func (t *EnumTable[E]) EnumToName(e E) (string, error) {
	name, ok := t.toName[e]
	if !ok {
		return "", &Error{Table: t.table, Code: int64(e)}
	}
	return name, nil
}

// NameToEnum returns the enum value named name, or a table error if no
// entry carries that name.
func (t *EnumTable[E]) NameToEnum(name string) (E, error) {
	e, ok := t.toEnum[name]
	if !ok {
		return 0, &Error{Table: t.table, Name: name, byName: true}
	}
	return e, nil
}

// Long returns the wire-format numeric code for e.
func (t *EnumTable[E]) Long(e E) int64 { return int64(e) }

// LongToEnum returns the enum value whose numeric code is n, or a table
// error if n names no entry.
func (t *EnumTable[E]) LongToEnum(n int64) (E, error) {
	e := E(n)
	if _, ok := t.toName[e]; !ok {
		return 0, &Error{Table: t.table, Code: n}
	}
	return e, nil
}
