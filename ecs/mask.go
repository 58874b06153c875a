package ecs

import (
	"iter"
	"math/bits"
	"strconv"
	"strings"
)

// MaxKinds is the number of distinct component kinds a registry can hold.
const MaxKinds = 64

// Kind identifies a registered component type. It is the bit position of the
// component in a Mask.
type Kind uint8

// Mask is the set of component kinds an entity or table carries.
type Mask uint64

// MaskOf builds a mask from the given kinds.
func MaskOf(kinds ...Kind) Mask {
	var m Mask
	for _, k := range kinds {
		m |= k.Mask()
	}
	return m
}

// Mask returns the single-bit mask for the kind.
func (k Kind) Mask() Mask {
	if k >= MaxKinds {
		panic("ecs: kind " + strconv.Itoa(int(k)) + " out of range")
	}
	return Mask(1) << k
}

// Has reports whether the kind is in the mask.
func (m Mask) Has(k Kind) bool {
	return k < MaxKinds && m&(Mask(1)<<k) != 0
}

// Contains reports whether every kind of sub is also in m.
func (m Mask) Contains(sub Mask) bool {
	return m&sub == sub
}

// With returns m plus the kinds of other.
func (m Mask) With(other Mask) Mask {
	return m | other
}

// Without returns m minus the kinds of other.
func (m Mask) Without(other Mask) Mask {
	return m &^ other
}

// Len returns the number of kinds in the mask.
func (m Mask) Len() int {
	return bits.OnesCount64(uint64(m))
}

// Kinds iterates the kinds in the mask in ascending order.
func (m Mask) Kinds() iter.Seq[Kind] {
	return func(yield func(Kind) bool) {
		rest := uint64(m)
		for rest != 0 {
			k := bits.TrailingZeros64(rest)
			if !yield(Kind(k)) {
				return
			}
			rest &= rest - 1
		}
	}
}

func (m Mask) String() string {
	if m == 0 {
		return "{}"
	}
	parts := make([]string, 0, m.Len())
	for k := range m.Kinds() {
		parts = append(parts, strconv.Itoa(int(k)))
	}
	return "{" + strings.Join(parts, ",") + "}"
}
