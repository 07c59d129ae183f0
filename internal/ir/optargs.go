package ir

import (
	"fmt"
	"slices"
)

// MaxOptArgs is the largest number of optional arguments an action may
// declare. The top bit of the 64-bit mask is reserved.
const MaxOptArgs = 63

// OptArgBit returns the mask bit for the optional argument at index i.
func OptArgBit(i int) uint64 {
	if i < 0 || i >= MaxOptArgs {
		panic(fmt.Sprintf("optarg index %d out of range", i))
	}
	return 1 << uint(i)
}

// OptArgBlock is the fixed-layout parameter block passed alongside a call:
// a presence bitmask plus one slot per declared optional argument. Slots
// whose bit is clear hold unspecified values and must not be read.
type OptArgBlock struct {
	Bitmask uint64
	Values  []any
}

// NewOptArgBlock builds the block for one invocation. supplied maps
// optional-argument names to values; names not declared are an error.
func NewOptArgBlock(optargs []OptArg, supplied map[string]any) (OptArgBlock, error) {
	if len(optargs) > MaxOptArgs {
		return OptArgBlock{}, fmt.Errorf("%d optional arguments exceeds the maximum of %d", len(optargs), MaxOptArgs)
	}
	block := OptArgBlock{Values: make([]any, len(optargs))}
	seen := 0
	for i, o := range optargs {
		v, ok := supplied[o.Name]
		if !ok {
			continue
		}
		block.Bitmask |= OptArgBit(i)
		block.Values[i] = v
		seen++
	}
	if seen != len(supplied) {
		for name := range supplied {
			if !slices.ContainsFunc(optargs, func(o OptArg) bool { return o.Name == name }) {
				return OptArgBlock{}, fmt.Errorf("unknown optional argument %q", name)
			}
		}
	}
	return block, nil
}

// Get returns the value at index i if and only if its bit is set.
func (b OptArgBlock) Get(i int) (any, bool) {
	if i < 0 || i >= len(b.Values) || b.Bitmask&OptArgBit(i) == 0 {
		return nil, false
	}
	return b.Values[i], true
}

// Present decodes the names of the supplied optional arguments, in
// declaration order.
func (b OptArgBlock) Present(optargs []OptArg) []string {
	var names []string
	for i, o := range optargs {
		if i < MaxOptArgs && b.Bitmask&OptArgBit(i) != 0 {
			names = append(names, o.Name)
		}
	}
	return names
}

// BitmaskOf returns the presence mask for the named optional arguments.
func BitmaskOf(optargs []OptArg, supplied ...string) (uint64, error) {
	set := make(map[string]any, len(supplied))
	for _, s := range supplied {
		set[s] = nil
	}
	block, err := NewOptArgBlock(optargs, set)
	if err != nil {
		return 0, err
	}
	return block.Bitmask, nil
}
