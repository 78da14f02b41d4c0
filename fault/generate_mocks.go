//go:generate mockgen -destination=mock_fault.go -package=fault github.com/sarchlab/virtmem/fault PageTable
//go:generate mockgen -destination=mock_disk.go -package=fault github.com/sarchlab/virtmem/disk Disk
//go:generate mockgen -destination=mock_eviction.go -package=fault github.com/sarchlab/virtmem/eviction VictimFinder
//go:generate mockgen -destination=mock_datarecording.go -package=fault github.com/sarchlab/virtmem/datarecording DataRecorder

package fault
