package disk

// A Storage is a disk that keeps its blocks in memory.
//
// Blocks that have never been written take no memory and read back as zeros.
type Storage struct {
	blockSize int
	numBlocks int
	data      map[int][]byte
}

// NewStorage creates an in-memory disk.
func NewStorage(numBlocks, blockSize int) (*Storage, error) {
	if err := checkGeometry(numBlocks, blockSize); err != nil {
		return nil, err
	}

	s := &Storage{
		blockSize: blockSize,
		numBlocks: numBlocks,
		data:      make(map[int][]byte),
	}

	return s, nil
}

// BlockSize returns the number of bytes in a block.
func (s *Storage) BlockSize() int {
	return s.blockSize
}

// NumBlocks returns the number of blocks.
func (s *Storage) NumBlocks() int {
	return s.numBlocks
}

// Read copies a block into buf.
func (s *Storage) Read(block int, buf []byte) error {
	if err := checkAccess(s, block, buf); err != nil {
		return err
	}

	unit, ok := s.data[block]
	if !ok {
		clear(buf)
		return nil
	}

	copy(buf, unit)

	return nil
}

// Write copies buf into a block.
func (s *Storage) Write(block int, buf []byte) error {
	if err := checkAccess(s, block, buf); err != nil {
		return err
	}

	unit, ok := s.data[block]
	if !ok {
		unit = make([]byte, s.blockSize)
		s.data[block] = unit
	}

	copy(unit, buf)

	return nil
}

// Close drops all the blocks.
func (s *Storage) Close() error {
	s.data = make(map[int][]byte)
	return nil
}
