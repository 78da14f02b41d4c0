package eviction

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is a page replacement policy.
type Kind int

// The supported replacement policies.
const (
	FIFO Kind = iota
	Random
	Clock
)

// ErrUnknownPolicy is returned when a policy name is not recognized.
var ErrUnknownPolicy = errors.New("unknown replacement policy")

var kindNames = map[Kind]string{
	FIFO:   "fifo",
	Random: "rand",
	Clock:  "clock",
}

// Names returns the names that ParseKind accepts.
func Names() []string {
	return []string{"fifo", "rand", "clock"}
}

// ParseKind converts a policy name into a Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%w: %q (want one of %s)",
		ErrUnknownPolicy, name, strings.Join(Names(), ", "))
}

func (k Kind) String() string {
	n, ok := kindNames[k]
	if !ok {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return n
}
