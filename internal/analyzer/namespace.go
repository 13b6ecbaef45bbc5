package analyzer

import (
	"sort"

	"github.com/funvibe/pyschema/internal/config"
	"github.com/funvibe/pyschema/internal/schema"
)

// Namespace maps each generic-constructor role to the set of spellings
// that currently denote it. Importing under an alias adds a spelling, it
// never replaces one: `import typing as t` after `import typing` leaves
// both typing.Union and t.Union valid.
type Namespace map[config.Role]map[string]bool

func NewNamespace() Namespace {
	ns := make(Namespace, len(config.AllRoles))
	for _, role := range config.AllRoles {
		ns[role] = make(map[string]bool)
	}
	return ns
}

// Register adds a spelling for a role.
func (ns Namespace) Register(role config.Role, spelling string) {
	ns[role][spelling] = true
}

// Has reports whether spelling currently denotes role.
func (ns Namespace) Has(role config.Role, spelling string) bool {
	return ns[role][spelling]
}

// SubscriptRole resolves a subscript head spelling to its role.
func (ns Namespace) SubscriptRole(spelling string) (config.Role, bool) {
	for _, role := range config.SubscriptRoles {
		if ns[role][spelling] {
			return role, true
		}
	}
	return "", false
}

// SchemaTable maps resolved spellings (simple names or dotted attribute
// paths) to their schemas. It grows monotonically while one file is
// processed and is discarded afterwards.
type SchemaTable map[string]*schema.Schema

// NewSchemaTable returns a table seeded with the base scalar types.
func NewSchemaTable() SchemaTable {
	return SchemaTable{
		"bool":  schema.Boolean(),
		"float": schema.Number(),
		"int":   schema.Integer(),
		"str":   schema.String(),
	}
}

// SortedNames lists the table's spellings in lexical order, for
// diagnostics.
func (t SchemaTable) SortedNames() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
