// Package sysmon takes a host CPU and memory reading after a run, so
// sequential and parallel runs can be compared in the debug log.
package sysmon

import (
	"context"
	"errors"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/san-kum/yeewave/internal/logging"
)

// Snapshot is one host reading. Percentages are 0..100.
type Snapshot struct {
	LogicalCPUs int
	CPUPercent  float64
	MemPercent  float64
}

// Sample reads the host counters. CPU usage is the delta since the previous
// call (interval 0). Fields that could not be read stay zero and their
// errors are joined into err.
func Sample(ctx context.Context) (Snapshot, error) {
	var (
		s    Snapshot
		errs []error
	)

	if n, err := cpu.CountsWithContext(ctx, true); err != nil {
		errs = append(errs, err)
	} else {
		s.LogicalCPUs = n
	}

	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err != nil {
		errs = append(errs, err)
	} else if len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		errs = append(errs, err)
	} else if vm != nil {
		s.MemPercent = vm.UsedPercent
	}

	return s, errors.Join(errs...)
}

// Fields renders the snapshot as log fields.
func (s Snapshot) Fields() []logging.Field {
	return []logging.Field{
		logging.Int("cpus", s.LogicalCPUs),
		logging.Float64("cpu_percent", s.CPUPercent),
		logging.Float64("mem_percent", s.MemPercent),
	}
}
