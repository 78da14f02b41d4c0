// Package disk provides the backing store that pages are loaded from and
// written back to.
package disk

import (
	"errors"
	"fmt"
)

// A Disk is a block store addressed by page number. Every transfer moves
// exactly one block.
type Disk interface {
	// Read copies block into buf. The length of buf must be the block size.
	Read(block int, buf []byte) error

	// Write copies buf into block. The length of buf must be the block size.
	Write(block int, buf []byte) error

	// BlockSize returns the number of bytes in a block.
	BlockSize() int

	// NumBlocks returns the number of blocks.
	NumBlocks() int

	// Close releases the disk.
	Close() error
}

// ErrOutOfRange is returned when a block number is not on the disk.
var ErrOutOfRange = errors.New("block out of range")

// ErrBadBufferSize is returned when a buffer is not exactly one block long.
var ErrBadBufferSize = errors.New("buffer is not one block long")

// ErrInvalidGeometry is returned when a disk cannot be created with the
// requested sizes.
var ErrInvalidGeometry = errors.New("invalid disk geometry")

// MaxSize is the largest number of bytes a disk can hold.
const MaxSize = 1 << 40

func checkGeometry(numBlocks, blockSize int) error {
	if numBlocks < 1 || blockSize < 1 || numBlocks > MaxSize/blockSize {
		return fmt.Errorf("%w: %d blocks of %d bytes, at most %d bytes",
			ErrInvalidGeometry, numBlocks, blockSize, MaxSize)
	}

	return nil
}

func checkAccess(d Disk, block int, buf []byte) error {
	if block < 0 || block >= d.NumBlocks() {
		return fmt.Errorf("%w: block %d, disk has %d blocks",
			ErrOutOfRange, block, d.NumBlocks())
	}

	if len(buf) != d.BlockSize() {
		return fmt.Errorf("%w: got %d bytes, block size is %d",
			ErrBadBufferSize, len(buf), d.BlockSize())
	}

	return nil
}
