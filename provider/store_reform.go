package provider

// generated with gopkg.in/reform.v1

import (
	"fmt"
	"strings"

	"gopkg.in/reform.v1"
	"gopkg.in/reform.v1/parse"
)

type purchaseExtOrdersTableType struct {
	s parse.StructInfo
	z []interface{}
}

// Schema returns a schema name in SQL database ("billup").
func (v *purchaseExtOrdersTableType) Schema() string {
	return v.s.SQLSchema
}

// Name returns a view or table name in SQL database ("purchase_ext_orders").
func (v *purchaseExtOrdersTableType) Name() string {
	return v.s.SQLName
}

// Columns returns a new slice of column names for that view or table in SQL database.
func (v *purchaseExtOrdersTableType) Columns() []string {
	return []string{"order_number", "provider_name", "service_code", "account_id", "amount_minor", "raw_status", "created_at", "updated_at"}
}

// NewStruct makes a new struct for that view or table.
func (v *purchaseExtOrdersTableType) NewStruct() reform.Struct {
	return new(PurchaseExtOrders)
}

// NewRecord makes a new record for that table.
func (v *purchaseExtOrdersTableType) NewRecord() reform.Record {
	return new(PurchaseExtOrders)
}

// PKColumnIndex returns an index of primary key column for that table in SQL database.
func (v *purchaseExtOrdersTableType) PKColumnIndex() uint {
	return uint(v.s.PKFieldIndex)
}

// PurchaseExtOrdersTable represents purchase_ext_orders view or table in SQL database.
var PurchaseExtOrdersTable = &purchaseExtOrdersTableType{
	s: parse.StructInfo{Type: "PurchaseExtOrders", SQLSchema: "billup", SQLName: "purchase_ext_orders", Fields: []parse.FieldInfo{{Name: "OrderNumber", PKType: "string", Column: "order_number"}, {Name: "ProviderName", PKType: "", Column: "provider_name"}, {Name: "ServiceCode", PKType: "", Column: "service_code"}, {Name: "AccountID", PKType: "", Column: "account_id"}, {Name: "AmountMinor", PKType: "", Column: "amount_minor"}, {Name: "RawStatus", PKType: "", Column: "raw_status"}, {Name: "CreatedAt", PKType: "", Column: "created_at"}, {Name: "UpdatedAt", PKType: "", Column: "updated_at"}}, PKFieldIndex: 0},
	z: new(PurchaseExtOrders).Values(),
}

// String returns a string representation of this struct or record.
func (s PurchaseExtOrders) String() string {
	res := make([]string, 8)
	res[0] = "OrderNumber: " + reform.Inspect(s.OrderNumber, true)
	res[1] = "ProviderName: " + reform.Inspect(s.ProviderName, true)
	res[2] = "ServiceCode: " + reform.Inspect(s.ServiceCode, true)
	res[3] = "AccountID: " + reform.Inspect(s.AccountID, true)
	res[4] = "AmountMinor: " + reform.Inspect(s.AmountMinor, true)
	res[5] = "RawStatus: " + reform.Inspect(s.RawStatus, true)
	res[6] = "CreatedAt: " + reform.Inspect(s.CreatedAt, true)
	res[7] = "UpdatedAt: " + reform.Inspect(s.UpdatedAt, true)
	return strings.Join(res, ", ")
}

// Values returns a slice of struct or record field values.
// Returned interface{} values are never untyped nils.
func (s *PurchaseExtOrders) Values() []interface{} {
	return []interface{}{
		s.OrderNumber,
		s.ProviderName,
		s.ServiceCode,
		s.AccountID,
		s.AmountMinor,
		s.RawStatus,
		s.CreatedAt,
		s.UpdatedAt,
	}
}

// Pointers returns a slice of pointers to struct or record fields.
// Returned interface{} values are never untyped nils.
func (s *PurchaseExtOrders) Pointers() []interface{} {
	return []interface{}{
		&s.OrderNumber,
		&s.ProviderName,
		&s.ServiceCode,
		&s.AccountID,
		&s.AmountMinor,
		&s.RawStatus,
		&s.CreatedAt,
		&s.UpdatedAt,
	}
}

// View returns View object for that struct.
func (s *PurchaseExtOrders) View() reform.View {
	return PurchaseExtOrdersTable
}

// Table returns Table object for that record.
func (s *PurchaseExtOrders) Table() reform.Table {
	return PurchaseExtOrdersTable
}

// PKValue returns a value of primary key for that record.
// Returned interface{} value is never untyped nil.
func (s *PurchaseExtOrders) PKValue() interface{} {
	return s.OrderNumber
}

// PKPointer returns a pointer to primary key field for that record.
// Returned interface{} value is never untyped nil.
func (s *PurchaseExtOrders) PKPointer() interface{} {
	return &s.OrderNumber
}

// HasPK returns true if record has non-zero primary key set, false otherwise.
func (s *PurchaseExtOrders) HasPK() bool {
	return s.OrderNumber != PurchaseExtOrdersTable.z[PurchaseExtOrdersTable.s.PKFieldIndex]
}

// SetPK sets record primary key.
func (s *PurchaseExtOrders) SetPK(pk interface{}) {
	if i64, ok := pk.(int64); ok {
		s.OrderNumber = string(i64)
	} else {
		s.OrderNumber = pk.(string)
	}
}

// check interfaces
var (
	_ reform.View   = PurchaseExtOrdersTable
	_ reform.Struct = new(PurchaseExtOrders)
	_ reform.Table  = PurchaseExtOrdersTable
	_ reform.Record = new(PurchaseExtOrders)
	_ fmt.Stringer  = new(PurchaseExtOrders)
)

func init() {
	parse.AssertUpToDate(&PurchaseExtOrdersTable.s, new(PurchaseExtOrders))
}
