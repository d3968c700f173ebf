package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestAllSchemasCompile(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("expected schemas to compile, got %v", err)
	}

	for _, schema := range []Schema{
		SchemaExpense, SchemaIncome, SchemaEntryUpdate, SchemaEntryStatus, SchemaGroupUpdate,
		SchemaCategory, SchemaActive, SchemaCard, SchemaAsset, SchemaTransaction, SchemaRegister, SchemaLogin,
	} {
		if _, ok := v.schemas[schema]; !ok {
			t.Fatalf("expected schema %s to be loaded", schema)
		}
	}
}

func TestExpensePayload(t *testing.T) {
	v := MustNew()

	valid := `{"description":"Laptop","amount":1200,"category_id":"aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa","effective_date":"2024-01-31","recurrence_mode":"installment","installment_count":3}`
	if err := v.Validate(SchemaExpense, []byte(valid)); err != nil {
		t.Fatalf("expected valid expense, got %v", err)
	}

	byName := `{"description":"Laptop","amount":10.5,"category":"Electronics","effective_date":"2024-01-31T10:00:00Z"}`
	if err := v.Validate(SchemaExpense, []byte(byName)); err != nil {
		t.Fatalf("expected category name accepted, got %v", err)
	}

	cases := map[string]string{
		"non-positive amount": `{"description":"Laptop","amount":0,"category":"X","effective_date":"2024-01-31"}`,
		"short description":   `{"description":"TV","amount":10,"category":"X","effective_date":"2024-01-31"}`,
		"missing category":    `{"description":"Laptop","amount":10,"effective_date":"2024-01-31"}`,
		"bad status":          `{"description":"Laptop","amount":10,"category":"X","effective_date":"2024-01-31","status":"received"}`,
		"one installment":     `{"description":"Laptop","amount":10,"category":"X","effective_date":"2024-01-31","recurrence_mode":"installment","installment_count":1}`,
		"unknown field":       `{"description":"Laptop","amount":10,"category":"X","effective_date":"2024-01-31","owner_id":"x"}`,
	}
	for name, body := range cases {
		err := v.Validate(SchemaExpense, []byte(body))
		var validationErr *Error
		if !errors.As(err, &validationErr) {
			t.Fatalf("%s: expected *Error, got %v", name, err)
		}
		if len(validationErr.Details) == 0 {
			t.Fatalf("%s: expected details", name)
		}
	}
}

func TestIncomeRejectsCard(t *testing.T) {
	v := MustNew()

	body := `{"description":"Salary","amount":5000,"category":"Salary","effective_date":"2024-01-05","card_id":"cccccccc-cccc-cccc-cccc-cccccccccccc"}`
	var validationErr *Error
	if err := v.Validate(SchemaIncome, []byte(body)); !errors.As(err, &validationErr) {
		t.Fatalf("expected card_id rejected for income, got %v", err)
	}
	if !strings.Contains(validationErr.Error(), "income payload invalid") {
		t.Fatalf("unexpected message %q", validationErr.Error())
	}
}

func TestGroupUpdateSelector(t *testing.T) {
	v := MustNew()

	if err := v.Validate(SchemaGroupUpdate, []byte(`{"group_id":"aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa","fields":{"amount":50}}`)); err != nil {
		t.Fatalf("expected group id selector valid, got %v", err)
	}
	if err := v.Validate(SchemaGroupUpdate, []byte(`{"description":"Rent","recurrence_mode":"fixed_monthly","only_open":true,"fields":{"status":"paid"}}`)); err != nil {
		t.Fatalf("expected legacy selector valid, got %v", err)
	}

	var validationErr *Error
	if err := v.Validate(SchemaGroupUpdate, []byte(`{"description":"Rent","fields":{"amount":50}}`)); !errors.As(err, &validationErr) {
		t.Fatalf("expected missing mode rejected, got %v", err)
	}
	if err := v.Validate(SchemaGroupUpdate, []byte(`{"group_id":"aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa","fields":{}}`)); !errors.As(err, &validationErr) {
		t.Fatalf("expected empty fields rejected, got %v", err)
	}
}

func TestRegisterAndTransaction(t *testing.T) {
	v := MustNew()

	var validationErr *Error
	if err := v.Validate(SchemaRegister, []byte(`{"email":"not-an-email","password":"secret1"}`)); !errors.As(err, &validationErr) {
		t.Fatalf("expected bad email rejected, got %v", err)
	}
	if err := v.Validate(SchemaRegister, []byte(`{"email":"ana@example.com","password":"123"}`)); !errors.As(err, &validationErr) {
		t.Fatalf("expected short password rejected, got %v", err)
	}
	if err := v.Validate(SchemaTransaction, []byte(`{"date":"2024-02-01","type":"buy","quantity":10,"unit_price":30.5}`)); err != nil {
		t.Fatalf("expected valid transaction, got %v", err)
	}
	if err := v.Validate(SchemaTransaction, []byte(`{"date":"2024-02-01","type":"buy","quantity":10,"unit_price":30.5,"total_value":305}`)); !errors.As(err, &validationErr) {
		t.Fatalf("expected total_value rejected, got %v", err)
	}
}

func TestUnknownSchema(t *testing.T) {
	v := MustNew()
	if err := v.Validate(Schema("missing"), []byte(`{}`)); !errors.Is(err, ErrUnknownSchema) {
		t.Fatalf("expected ErrUnknownSchema, got %v", err)
	}
}
