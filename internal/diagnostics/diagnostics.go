// Package diagnostics logs a startup banner describing the host CPU
// and memory state, useful when diagnosing slow or throttled analysis
// runs.
package diagnostics

import (
	"log/slog"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Snapshot captures a point-in-time read of host resource usage.
type Snapshot struct {
	CPUPercent    float64
	MemoryUsedPct float64
	MemoryTotal   uint64
}

// Capture samples CPU utilization over a short window and current
// virtual memory usage. Either reading can fail independently (e.g. in
// a sandboxed container); a failed reading is logged and left at zero
// rather than aborting the snapshot.
func Capture() Snapshot {
	var snap Snapshot

	cpuPercents, err := cpu.Percent(200*time.Millisecond, false)
	if err != nil {
		slog.Debug("diagnostics: cpu read failed", slog.Any("error", err))
	} else if len(cpuPercents) > 0 {
		snap.CPUPercent = cpuPercents[0]
	}

	vmem, err := mem.VirtualMemory()
	if err != nil {
		slog.Debug("diagnostics: memory read failed", slog.Any("error", err))
	} else {
		snap.MemoryUsedPct = vmem.UsedPercent
		snap.MemoryTotal = vmem.Total
	}

	return snap
}

// LogBanner emits the snapshot as a single structured debug log line.
// Callers that want the banner at a higher level should log the
// returned Snapshot themselves instead.
func LogBanner() Snapshot {
	snap := Capture()

	slog.Debug("host diagnostics",
		slog.Float64("cpu_percent", snap.CPUPercent),
		slog.Float64("memory_used_percent", snap.MemoryUsedPct),
		slog.Uint64("memory_total_bytes", snap.MemoryTotal),
	)

	return snap
}
