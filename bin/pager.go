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
package main

import (
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/google/shlex"
	"github.com/pkg/errors"

	"www.velocidex.com/golang/pslist/logging"
)

// Pager pipes long listings through an external pager (e.g.
// "less -S"). Close waits for the pager to exit so the shell prompt
// comes back cleanly.
type Pager struct {
	pager  *exec.Cmd
	Writer io.WriteCloser
	Reader io.ReadCloser
	wg     *sync.WaitGroup
}

func NewPager(command string) (*Pager, error) {
	self := &Pager{}

	// Create a pipe for the pager to use.
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	self.Writer = w
	self.Reader = r

	argv, err := shlex.Split(command)
	if err != nil {
		return nil, err
	}
	if len(argv) == 0 {
		return nil, errors.New("empty pager command")
	}

	self.pager = exec.Command(argv[0], argv[1:]...)
	self.pager.Stdin = r
	self.pager.Stdout = os.Stdout
	self.pager.Stderr = os.Stderr
	self.wg = &sync.WaitGroup{}

	err = self.pager.Start()
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}

	self.wg.Add(1)

	// Run the pager until it exits.
	go func() {
		defer self.wg.Done()

		err := self.pager.Wait()
		if err != nil {
			logging.GetLogger(nil, &logging.ToolComponent).
				Error("Error running pager: %v", err)
		}
	}()

	return self, nil
}

func (self *Pager) Close() {
	self.Writer.Close()
	self.Reader.Close()

	self.wg.Wait()
}
