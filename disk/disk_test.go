package disk

import (
	"bytes"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func diskBehavior(newDisk func() Disk) {
	var d Disk

	BeforeEach(func() {
		d = newDisk()
	})

	AfterEach(func() {
		Expect(d.Close()).To(Succeed())
	})

	It("should report its geometry", func() {
		Expect(d.NumBlocks()).To(Equal(4))
		Expect(d.BlockSize()).To(Equal(8))
	})

	It("should read zeros from a block never written", func() {
		buf := bytes.Repeat([]byte{0xff}, 8)

		Expect(d.Read(2, buf)).To(Succeed())
		Expect(buf).To(Equal(make([]byte, 8)))
	})

	It("should read back what was written", func() {
		data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
		Expect(d.Write(3, data)).To(Succeed())

		buf := make([]byte, 8)
		Expect(d.Read(3, buf)).To(Succeed())
		Expect(buf).To(Equal(data))

		Expect(d.Read(2, buf)).To(Succeed())
		Expect(buf).To(Equal(make([]byte, 8)))
	})

	It("should not alias the caller's buffer", func() {
		data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
		Expect(d.Write(0, data)).To(Succeed())
		data[0] = 42

		buf := make([]byte, 8)
		Expect(d.Read(0, buf)).To(Succeed())
		Expect(buf[0]).To(Equal(byte(1)))
	})

	It("should reject blocks out of range", func() {
		buf := make([]byte, 8)
		Expect(d.Read(4, buf)).To(MatchError(ErrOutOfRange))
		Expect(d.Write(-1, buf)).To(MatchError(ErrOutOfRange))
	})

	It("should reject partial blocks", func() {
		Expect(d.Read(0, make([]byte, 4))).To(MatchError(ErrBadBufferSize))
		Expect(d.Write(0, make([]byte, 9))).To(MatchError(ErrBadBufferSize))
	})
}

var _ = Describe("Storage", func() {
	It("should reject an empty geometry", func() {
		_, err := NewStorage(0, 8)
		Expect(err).To(MatchError(ErrInvalidGeometry))
	})

	It("should reject a disk that is too large", func() {
		_, err := NewStorage(1<<52, 4096)
		Expect(err).To(MatchError(ErrInvalidGeometry))

		_, err = NewStorage(MaxSize+1, 1)
		Expect(err).To(MatchError(ErrInvalidGeometry))
	})

	diskBehavior(func() Disk {
		s, err := NewStorage(4, 8)
		Expect(err).NotTo(HaveOccurred())
		return s
	})
})

var _ = Describe("FileDisk", func() {
	It("should fail when the file cannot be created", func() {
		path := filepath.Join(GinkgoT().TempDir(), "missing", "disk")
		_, err := Open(path, 4, 8)
		Expect(err).To(HaveOccurred())
	})

	It("should not create a file for a disk that is too large", func() {
		path := filepath.Join(GinkgoT().TempDir(), "virtualdisk")
		_, err := Open(path, 1<<52, 4096)
		Expect(err).To(MatchError(ErrInvalidGeometry))
		Expect(path).NotTo(BeAnExistingFile())
	})

	diskBehavior(func() Disk {
		path := filepath.Join(GinkgoT().TempDir(), "virtualdisk")
		d, err := Open(path, 4, 8)
		Expect(err).NotTo(HaveOccurred())
		return d
	})
})
