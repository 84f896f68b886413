package socketid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Address names a socket on a node. Build addresses with New or NewIndexed:
// a composite literal that leaves Index at zero names slot 0, not the whole
// socket.
type Address struct {
	Node   string
	Socket string
	Index  int // -1 when the socket is not indexed.
}

// New returns an unindexed socket address.
func New(node, socket string) Address {
	return Address{Node: node, Socket: socket, Index: -1}
}

// NewIndexed returns the address of slot index of a multi-input socket.
func NewIndexed(node, socket string, index int) Address {
	return Address{Node: node, Socket: socket, Index: index}
}

// HasIndex reports whether the address points at one slot of a multi-input socket.
func (a Address) HasIndex() bool {
	return a.Index != -1
}

// String renders the canonical form accepted by Parse.
func (a Address) String() string {
	var sb strings.Builder
	sb.WriteString(a.Node)
	sb.WriteByte('.')
	sb.WriteString(a.Socket)
	if a.HasIndex() {
		fmt.Fprintf(&sb, "[%d]", a.Index)
	}
	return sb.String()
}

var (
	nameRegex   = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	socketRegex = regexp.MustCompile(`^([a-zA-Z0-9_-]+)(?:\[(\d+)\])?$`)
)

// Parse reads an address in canonical form.
func Parse(raw string) (Address, error) {
	if raw == "" {
		return Address{}, fmt.Errorf("socket address cannot be empty")
	}

	node, socket, ok := strings.Cut(raw, ".")
	if !ok {
		return Address{}, fmt.Errorf("socket address %q must have the form node.socket", raw)
	}
	if !nameRegex.MatchString(node) || node == "-" {
		return Address{}, fmt.Errorf("invalid node name %q", node)
	}

	matches := socketRegex.FindStringSubmatch(socket)
	if matches == nil || matches[1] == "-" {
		return Address{}, fmt.Errorf("invalid socket segment %q", socket)
	}

	addr := New(node, matches[1])
	if matches[2] != "" {
		index, err := strconv.Atoi(matches[2])
		if err != nil {
			return Address{}, fmt.Errorf("socket index in %q: %w", raw, err)
		}
		addr.Index = index
	}
	return addr, nil
}

// MustParse is Parse for addresses known at compile time.
func MustParse(raw string) Address {
	addr, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return addr
}
