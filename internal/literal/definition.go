package literal

import (
	"fmt"

	"github.com/vk/fnlists/internal/sharedlist"
	"github.com/vk/fnlists/internal/socketid"
	"github.com/vk/fnlists/internal/typeregistry"
	"github.com/zclconf/go-cty/cty"
)

// Node is the node name literal lists are published under, so a list named
// "weights" lives on socket "literal.weights".
const Node = "literal"

// definition is a parsed but not yet materialized literal.
type definition struct {
	name   string
	source string
	desc   *typeregistry.Descriptor
	values cty.Value
}

// Literal is a named list loaded from a file. The Value handle is owned by
// whoever received the Literal.
type Literal struct {
	Name   string
	Source string
	Value  sharedlist.Value
}

// Socket is the address a literal is published on.
func (l Literal) Socket() socketid.Address {
	return socketid.New(Node, l.Name)
}

// ReleaseAll releases the value of every literal.
func ReleaseAll(lits []Literal) {
	for _, l := range lits {
		if l.Value != nil {
			l.Value.Release()
		}
	}
}

func validateName(name string) error {
	if _, err := socketid.Parse(Node + "." + name); err != nil {
		return fmt.Errorf("invalid list name %q: names may only contain letters, digits, '_' and '-'", name)
	}
	return nil
}

func resolveType(keyword string) (*typeregistry.Descriptor, error) {
	desc, ok := typeregistry.ByName(keyword)
	if !ok {
		return nil, fmt.Errorf("unknown list type %q, supported types are %v", keyword, typeregistry.Names())
	}
	return desc, nil
}
