package disk

import "os"

// A FileDisk keeps its blocks in a file on the host.
type FileDisk struct {
	file      *os.File
	blockSize int
	numBlocks int
}

// Open creates (or truncates) the file at path and sizes it to hold numBlocks
// blocks.
func Open(path string, numBlocks, blockSize int) (*FileDisk, error) {
	if err := checkGeometry(numBlocks, blockSize); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}

	err = f.Truncate(int64(numBlocks) * int64(blockSize))
	if err != nil {
		f.Close()
		return nil, err
	}

	d := &FileDisk{
		file:      f,
		blockSize: blockSize,
		numBlocks: numBlocks,
	}

	return d, nil
}

// BlockSize returns the number of bytes in a block.
func (d *FileDisk) BlockSize() int {
	return d.blockSize
}

// NumBlocks returns the number of blocks.
func (d *FileDisk) NumBlocks() int {
	return d.numBlocks
}

// Read copies a block into buf.
func (d *FileDisk) Read(block int, buf []byte) error {
	if err := checkAccess(d, block, buf); err != nil {
		return err
	}

	_, err := d.file.ReadAt(buf, d.offset(block))

	return err
}

// Write copies buf into a block.
func (d *FileDisk) Write(block int, buf []byte) error {
	if err := checkAccess(d, block, buf); err != nil {
		return err
	}

	_, err := d.file.WriteAt(buf, d.offset(block))

	return err
}

// Close closes the file. The file is left on the host.
func (d *FileDisk) Close() error {
	return d.file.Close()
}

func (d *FileDisk) offset(block int) int64 {
	return int64(block) * int64(d.blockSize)
}
