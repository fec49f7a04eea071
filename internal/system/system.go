package system

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Stats is a snapshot of the current process and host memory.
type Stats struct {
	RSS         uint64
	CPUPercent  float64
	Goroutines  int
	HostTotal   uint64
	HostUsedPct float64
	Uptime      time.Duration
}

var started = time.Now()

// Collect samples the current process through gopsutil.
func Collect() (*Stats, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("process: %w", err)
	}

	memInfo, err := proc.MemoryInfo()
	if err != nil {
		return nil, fmt.Errorf("process memory: %w", err)
	}

	cpu, err := proc.CPUPercent()
	if err != nil {
		return nil, fmt.Errorf("process cpu: %w", err)
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil, fmt.Errorf("host memory: %w", err)
	}

	return &Stats{
		RSS:         memInfo.RSS,
		CPUPercent:  cpu,
		Goroutines:  runtime.NumGoroutine(),
		HostTotal:   vm.Total,
		HostUsedPct: vm.UsedPercent,
		Uptime:      time.Since(started),
	}, nil
}

func (s *Stats) String() string {
	return fmt.Sprintf("RSS %.1f MiB | CPU %.1f%% | goroutines %d | host memory %.1f%% of %.1f GiB | %s",
		float64(s.RSS)/(1<<20), s.CPUPercent, s.Goroutines,
		s.HostUsedPct, float64(s.HostTotal)/(1<<30), s.Uptime.Round(time.Millisecond))
}
