package typeconfig

import (
	"bytes"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vuet/vuet-client/pkg/models"
)

// FieldType is the input control a form field renders as.
type FieldType string

const (
	FieldString   FieldType = "string"
	FieldText     FieldType = "text"
	FieldNumber   FieldType = "number"
	FieldBoolean  FieldType = "boolean"
	FieldDate     FieldType = "date"
	FieldDateTime FieldType = "datetime"
	FieldMembers  FieldType = "members"
	FieldEntity   FieldType = "entity"
)

func (t FieldType) valid() bool {
	switch t {
	case FieldString, FieldText, FieldNumber, FieldBoolean,
		FieldDate, FieldDateTime, FieldMembers, FieldEntity:
		return true
	}
	return false
}

// Field is one entry of an entity form schema.
type Field struct {
	Name     string    `yaml:"name"`
	Label    string    `yaml:"label"`
	Type     FieldType `yaml:"type"`
	Required bool      `yaml:"required,omitempty"`
}

const defaultKey = "default"

//go:embed forms.yaml
var formsYAML []byte

// FormFields is the form schema table, keyed by entity kind.
var FormFields = mustLoadFormFields(formsYAML)

func mustLoadFormFields(data []byte) Table[models.EntityKind, []Field] {
	t, err := LoadFormFields(data)
	if err != nil {
		panic(fmt.Sprintf("typeconfig: embedded forms.yaml: %v", err))
	}
	return t
}

// LoadFormFields parses a form schema document. The document must contain a
// "default" entry; every other key must be a known entity kind.
func LoadFormFields(data []byte) (Table[models.EntityKind, []Field], error) {
	var doc map[string][]Field
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return Table[models.EntityKind, []Field]{}, fmt.Errorf("failed to parse form schema: %w", err)
	}

	fallback, ok := doc[defaultKey]
	if !ok {
		return Table[models.EntityKind, []Field]{}, fmt.Errorf("form schema has no %q entry", defaultKey)
	}

	entries := make(map[models.EntityKind][]Field, len(doc))
	for key, fields := range doc {
		if err := validateFields(key, fields); err != nil {
			return Table[models.EntityKind, []Field]{}, err
		}
		if key != defaultKey {
			entries[models.EntityKind(key)] = fields
		}
	}

	table := NewTable(fallback, entries)
	if err := table.Validate(models.EntityKind.Known); err != nil {
		return Table[models.EntityKind, []Field]{}, fmt.Errorf("form schema: %w", err)
	}
	return table, nil
}

func validateFields(key string, fields []Field) error {
	if len(fields) == 0 {
		return fmt.Errorf("form schema %q has no fields", key)
	}
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return fmt.Errorf("form schema %q has a field without a name", key)
		}
		if !f.Type.valid() {
			return fmt.Errorf("form schema %q field %q has unknown type %q", key, f.Name, f.Type)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("form schema %q repeats field %q", key, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

// RequiredFields returns the names of the required fields for kind.
func RequiredFields(kind models.EntityKind) []string {
	var out []string
	for _, f := range FormFields.Lookup(kind) {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}
