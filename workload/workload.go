// Package workload provides the programs that generate memory accesses in the
// simulated virtual memory.
package workload

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

// Memory is a byte-addressable virtual memory.
type Memory interface {
	Load(addr int) byte
	Store(addr int, v byte)
	Size() int
}

// A Program accesses memory in a deterministic pattern for a given random
// source.
type Program func(mem Memory, rng *rand.Rand)

// ErrUnknownProgram is returned when a program name is not recognized.
var ErrUnknownProgram = errors.New("unknown program")

var programs = map[string]Program{
	"scan":  Scan,
	"sort":  Sort,
	"focus": Focus,
}

// Names returns the names that Lookup accepts.
func Names() []string {
	names := make([]string, 0, len(programs))
	for n := range programs {
		names = append(names, n)
	}

	sort.Strings(names)

	return names
}

// Lookup finds a program by name.
func Lookup(name string) (Program, error) {
	p, ok := programs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProgram, name)
	}

	return p, nil
}
