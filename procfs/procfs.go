/*
pslist - A forensic view of the live process table
Copyright (C) 2025 Rapid7 Inc.

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU Affero General Public License as published
by the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU Affero General Public License for more details.

You should have received a copy of the GNU Affero General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Package procfs takes point in time snapshots of the process table
// by walking the proc filesystem directly. Processes come and go
// while we read, so every per-process field is optional: a vanished
// file degrades that one field, never the whole snapshot.
package procfs

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"www.velocidex.com/golang/pslist/utils"
)

// Options controls where the snapshot reads from. The zero value
// reads the real /proc with the host tick rate and wall clock.
type Options struct {
	// Mount point of the proc filesystem.
	RootPath string

	// Queries the scheduler tick rate. Tests inject a fixed rate
	// or a failing query here.
	ClockTick func() (int64, error)

	// Source of wall clock time for start time arithmetic.
	Clock utils.Clock
}

type ProcessTable struct {
	root       string
	clock_tick func() (int64, error)
	clock      utils.Clock
}

func NewProcessTable(options Options) *ProcessTable {
	result := &ProcessTable{
		root:       options.RootPath,
		clock_tick: options.ClockTick,
		clock:      options.Clock,
	}

	if result.root == "" {
		result.root = "/proc"
	}

	if result.clock_tick == nil {
		result.clock_tick = ClockTicksPerSecond
	}

	if result.clock == nil {
		result.clock = utils.RealClock{}
	}

	return result
}

// ListProcesses snapshots every process currently visible in the
// table. Entries that do not name a pid are skipped, and processes
// that exit while we read them are dropped from the result - the
// snapshot is best effort by nature and this is not an error.
func (self *ProcessTable) ListProcesses() ([]*ProcessRecord, error) {
	ticks, err := self.clock_tick()
	if err != nil {
		return nil, &ClockRateError{Err: err}
	}

	entries, err := os.ReadDir(self.root)
	if err != nil {
		return nil, errors.Wrap(err, "listing process table")
	}

	result := []*ProcessRecord{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		pid, err := strconv.Atoi(entry.Name())
		if err != nil || pid <= 0 {
			continue
		}

		record, err := self.getProcess(int32(pid), float64(ticks))
		if err != nil {
			// The process exited between the directory
			// listing and the inspection.
			continue
		}

		result = append(result, record)
	}

	return result, nil
}

// GetProcess inspects a single process. ErrorProcessNotRunning means
// there is no such pid right now.
func (self *ProcessTable) GetProcess(pid int32) (*ProcessRecord, error) {
	ticks, err := self.clock_tick()
	if err != nil {
		return nil, &ClockRateError{Err: err}
	}

	return self.getProcess(pid, float64(ticks))
}

func (self *ProcessTable) getProcess(pid int32, ticks_per_second float64) (
	*ProcessRecord, error) {

	_, err := os.Stat(filepath.Join(self.root, strconv.Itoa(int(pid))))
	if err != nil && os.IsNotExist(err) {
		return nil, ErrorProcessNotRunning
	}

	// Any other stat error still refers to a live process (e.g. a
	// hardened proc mount) - degrade to whatever fields we can
	// actually read.
	return self.extractRecord(pid, ticks_per_second), nil
}
