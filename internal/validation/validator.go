package validation

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

type Schema string

const (
	SchemaExpense     Schema = "expense"
	SchemaIncome      Schema = "income"
	SchemaEntryUpdate Schema = "entry_update"
	SchemaEntryStatus Schema = "entry_status"
	SchemaGroupUpdate Schema = "group_update"
	SchemaCategory    Schema = "category"
	SchemaActive      Schema = "active"
	SchemaCard        Schema = "card"
	SchemaAsset       Schema = "asset"
	SchemaTransaction Schema = "transaction"
	SchemaRegister    Schema = "register"
	SchemaLogin       Schema = "login"
)

var ErrUnknownSchema = errors.New("unknown schema")

// Error is a payload that parsed as JSON but does not satisfy its schema.
type Error struct {
	Schema  Schema
	Details []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s payload invalid: %s", e.Schema, strings.Join(e.Details, "; "))
}

type Validator struct {
	schemas map[Schema]*gojsonschema.Schema
}

// New compiles every embedded schema once.
func New() (*Validator, error) {
	entries, err := schemaFiles.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("read schemas: %w", err)
	}

	schemas := make(map[Schema]*gojsonschema.Schema, len(entries))
	for _, entry := range entries {
		raw, err := schemaFiles.ReadFile(path.Join("schemas", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", entry.Name(), err)
		}
		compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", entry.Name(), err)
		}
		schemas[Schema(strings.TrimSuffix(entry.Name(), ".json"))] = compiled
	}

	return &Validator{schemas: schemas}, nil
}

func MustNew() *Validator {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks body against the named schema. It returns *Error when the document is
// well-formed JSON that breaks the schema.
func (v *Validator) Validate(schema Schema, body []byte) error {
	compiled, ok := v.schemas[schema]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSchema, schema)
	}

	result, err := compiled.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("validate %s: %w", schema, err)
	}
	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	sort.Strings(details)
	return &Error{Schema: schema, Details: details}
}
