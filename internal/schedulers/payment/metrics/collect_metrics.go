package metrics

import (
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/process"
)

// Collects system resource metrics
func collectSystemMetrics() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	MemoryUsageBytes.Set(float64(memStats.Alloc))
	GoroutinesActive.Set(float64(runtime.NumGoroutine()))

	// Resident memory from the OS view when available
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mem, err := proc.MemoryInfo(); err == nil && mem != nil {
			MemoryUsageBytes.Set(float64(mem.RSS))
		}
	}
}
