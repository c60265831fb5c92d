package cache

// generated with gopkg.in/reform.v1

import (
	"fmt"
	"strings"

	"gopkg.in/reform.v1"
	"gopkg.in/reform.v1/parse"
)

type kvEntryTableType struct {
	s parse.StructInfo
	z []interface{}
}

// Schema returns a schema name in SQL database ("billup").
func (v *kvEntryTableType) Schema() string {
	return v.s.SQLSchema
}

// Name returns a view or table name in SQL database ("kv_cache").
func (v *kvEntryTableType) Name() string {
	return v.s.SQLName
}

// Columns returns a new slice of column names for that view or table in SQL database.
func (v *kvEntryTableType) Columns() []string {
	return []string{"key", "value", "updated_at", "created_at"}
}

// NewStruct makes a new struct for that view or table.
func (v *kvEntryTableType) NewStruct() reform.Struct {
	return new(KvEntry)
}

// NewRecord makes a new record for that table.
func (v *kvEntryTableType) NewRecord() reform.Record {
	return new(KvEntry)
}

// PKColumnIndex returns an index of primary key column for that table in SQL database.
func (v *kvEntryTableType) PKColumnIndex() uint {
	return uint(v.s.PKFieldIndex)
}

// KvEntryTable represents kv_cache view or table in SQL database.
var KvEntryTable = &kvEntryTableType{
	s: parse.StructInfo{Type: "KvEntry", SQLSchema: "billup", SQLName: "kv_cache", Fields: []parse.FieldInfo{{Name: "Key", PKType: "string", Column: "key"}, {Name: "Value", PKType: "", Column: "value"}, {Name: "UpdatedAt", PKType: "", Column: "updated_at"}, {Name: "CreatedAt", PKType: "", Column: "created_at"}}, PKFieldIndex: 0},
	z: new(KvEntry).Values(),
}

// String returns a string representation of this struct or record.
func (s KvEntry) String() string {
	res := make([]string, 4)
	res[0] = "Key: " + reform.Inspect(s.Key, true)
	res[1] = "Value: " + reform.Inspect(s.Value, true)
	res[2] = "UpdatedAt: " + reform.Inspect(s.UpdatedAt, true)
	res[3] = "CreatedAt: " + reform.Inspect(s.CreatedAt, true)
	return strings.Join(res, ", ")
}

// Values returns a slice of struct or record field values.
// Returned interface{} values are never untyped nils.
func (s *KvEntry) Values() []interface{} {
	return []interface{}{
		s.Key,
		s.Value,
		s.UpdatedAt,
		s.CreatedAt,
	}
}

// Pointers returns a slice of pointers to struct or record fields.
// Returned interface{} values are never untyped nils.
func (s *KvEntry) Pointers() []interface{} {
	return []interface{}{
		&s.Key,
		&s.Value,
		&s.UpdatedAt,
		&s.CreatedAt,
	}
}

// View returns View object for that struct.
func (s *KvEntry) View() reform.View {
	return KvEntryTable
}

// Table returns Table object for that record.
func (s *KvEntry) Table() reform.Table {
	return KvEntryTable
}

// PKValue returns a value of primary key for that record.
// Returned interface{} value is never untyped nil.
func (s *KvEntry) PKValue() interface{} {
	return s.Key
}

// PKPointer returns a pointer to primary key field for that record.
// Returned interface{} value is never untyped nil.
func (s *KvEntry) PKPointer() interface{} {
	return &s.Key
}

// HasPK returns true if record has non-zero primary key set, false otherwise.
func (s *KvEntry) HasPK() bool {
	return s.Key != KvEntryTable.z[KvEntryTable.s.PKFieldIndex]
}

// SetPK sets record primary key.
func (s *KvEntry) SetPK(pk interface{}) {
	if i64, ok := pk.(int64); ok {
		s.Key = string(i64)
	} else {
		s.Key = pk.(string)
	}
}

// check interfaces
var (
	_ reform.View   = KvEntryTable
	_ reform.Struct = new(KvEntry)
	_ reform.Table  = KvEntryTable
	_ reform.Record = new(KvEntry)
	_ fmt.Stringer  = new(KvEntry)
)

func init() {
	parse.AssertUpToDate(&KvEntryTable.s, new(KvEntry))
}
