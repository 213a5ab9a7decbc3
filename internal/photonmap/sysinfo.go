package photonmap

import (
	"runtime"
	"unsafe"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostInfo describes the machine the render runs on.
type HostInfo struct {
	LogicalCPUs int
	CPUModel    string
	MHz         Real
	TotalMem    uint64 // bytes
	AvailMem    uint64 // bytes
}

// DefaultWorkers is the logical CPU count, falling back to runtime.NumCPU.
func DefaultWorkers() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		n = runtime.NumCPU()
	}
	return imax(n, 1)
}

// ProbeHost collects what gopsutil can tell; missing pieces stay zero.
func ProbeHost() HostInfo {
	h := HostInfo{LogicalCPUs: DefaultWorkers()}
	if info, err := cpu.Info(); err == nil && len(info) > 0 {
		h.CPUModel = info[0].ModelName
		h.MHz = info[0].Mhz
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		h.TotalMem = vm.Total
		h.AvailMem = vm.Available
	}
	return h
}

// photonFootprint approximates the bytes one stored photon costs, R-tree entry included.
const photonFootprint = uint64(unsafe.Sizeof(Photon{}) + unsafe.Sizeof(photonEntry{}) + 64)

// EstimatePhotonMemory is an upper bound on photon map storage for a settings value.
func EstimatePhotonMemory(s Settings) uint64 {
	return uint64(imax(s.GeneralPhotons, 0)+imax(s.CausticPhotons, 0)) * photonFootprint
}

// HostReport logs the host and warns when the photon budget may not fit in memory.
func HostReport(log Logger, s Settings) HostInfo {
	if log == nil {
		log = NopLogger
	}
	h := ProbeHost()
	const mib = 1 << 20
	log.Printf("Host: %d logical CPUs, %s @ %.0f MHz, memory %d/%d MiB available\n",
		h.LogicalCPUs, h.CPUModel, h.MHz, h.AvailMem/mib, h.TotalMem/mib)
	need := EstimatePhotonMemory(s)
	if h.AvailMem > 0 && need > h.AvailMem {
		log.Printf("Warning: photon maps may need ~%d MiB but only %d MiB is available\n", need/mib, h.AvailMem/mib)
	}
	return h
}
