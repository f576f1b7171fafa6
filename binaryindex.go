package qsweep

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/charmbracelet/log"
)

// maxIndexBits is the widest value a BinaryIndex can hold or produce.
const maxIndexBits = 64

/*
BinaryIndex is a fixed-width bit vector read as a big-endian unsigned integer.
Positions are 1-indexed from the most significant bit. It enumerates the bits
of a basis-state index other than the target qubit; inserting a 0 or a 1 at the
target position yields the two members of a butterfly pair.

Position p maps to bitset bit width-p, so bitset bit 0 is the least
significant bit of Value.
*/
type BinaryIndex struct {
	bits  *bitset.BitSet
	width int
}

// NewBinaryIndex returns a zeroed index of the given width.
func NewBinaryIndex(width int) (*BinaryIndex, error) {
	if width < 0 || width > maxIndexBits {
		return nil, newRangeError("index width", int64(width), 0, maxIndexBits)
	}

	return &BinaryIndex{
		bits:  bitset.New(uint(width)),
		width: width,
	}, nil
}

// Width returns the number of bits.
func (bi *BinaryIndex) Width() int {
	return bi.width
}

func (bi *BinaryIndex) checkPosition(pos, hi int) error {
	if pos < 1 || pos > hi {
		return newRangeError("bit position", int64(pos), 1, int64(hi))
	}
	return nil
}

func (bi *BinaryIndex) offset(pos int) uint {
	return uint(bi.width - pos)
}

// Test reports whether the bit at pos is set.
func (bi *BinaryIndex) Test(pos int) (bool, error) {
	if err := bi.checkPosition(pos, bi.width); err != nil {
		return false, err
	}
	return bi.bits.Test(bi.offset(pos)), nil
}

// Flip toggles the bit at pos and returns the index for chaining.
func (bi *BinaryIndex) Flip(pos int) (*BinaryIndex, error) {
	if err := bi.checkPosition(pos, bi.width); err != nil {
		return bi, err
	}
	bi.bits.Flip(bi.offset(pos))
	return bi, nil
}

// Value interprets the bits as an unsigned integer.
func (bi *BinaryIndex) Value() uint64 {
	var v uint64
	for i := 0; i < bi.width; i++ {
		if bi.bits.Test(uint(i)) {
			v |= 1 << uint(i)
		}
	}
	return v
}

/*
ValueWithInsert returns Value as if bit had been inserted at pos, producing a
width+1 bit number. pos may be width+1, which appends bit as the new least
significant bit.
*/
func (bi *BinaryIndex) ValueWithInsert(pos int, bit uint8) (uint64, error) {
	if bi.width+1 > maxIndexBits {
		return 0, newRangeError("index width", int64(bi.width+1), 0, maxIndexBits)
	}

	if err := bi.checkPosition(pos, bi.width+1); err != nil {
		return 0, err
	}

	if bit > 1 {
		return 0, newRangeError("bit value", int64(bit), 0, 1)
	}

	// Bits below the insertion point keep their weight; bits above shift up one.
	low := uint(bi.width - pos + 1)
	v := bi.Value()
	mask := uint64(1)<<low - 1

	return (v&^mask)<<1 | uint64(bit)<<low | v&mask, nil
}

// SetFrom loads v, failing when v needs more than Width bits.
func (bi *BinaryIndex) SetFrom(v uint64) error {
	if bi.width < maxIndexBits && v>>uint(bi.width) != 0 {
		return ErrIndexOverflow
	}

	bi.bits.ClearAll()
	for i := 0; i < bi.width; i++ {
		if v&(1<<uint(i)) != 0 {
			bi.bits.Set(uint(i))
		}
	}
	return nil
}

// Increment adds one. A carry out of the top bit is ErrIndexOverflow and
// leaves the index unchanged.
func (bi *BinaryIndex) Increment() error {
	for i := 0; i < bi.width; i++ {
		if !bi.bits.Test(uint(i)) {
			bi.bits.Set(uint(i))
			for j := 0; j < i; j++ {
				bi.bits.Clear(uint(j))
			}
			return nil
		}
	}
	return ErrIndexOverflow
}

// Add adds c. Anything other than 0 or 1 is unexpected here but still applied.
func (bi *BinaryIndex) Add(c uint8) error {
	if c > 1 {
		log.Warn("adding more than one to binary index", "value", c, "width", bi.width)
	}

	v := bi.Value()
	sum := v + uint64(c)
	if sum < v {
		return ErrIndexOverflow
	}
	return bi.SetFrom(sum)
}
