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

	"github.com/alecthomas/kingpin/v2"

	"www.velocidex.com/golang/pslist/procfs"
	"www.velocidex.com/golang/pslist/reporting"
)

var (
	list_command = app.Command(
		"list", "Snapshot the process table.").Default()

	list_command_format = list_command.Flag(
		"format", "Output format (text, json, jsonl).").
		Default("text").Enum("text", "json", "jsonl")

	list_command_proc = list_command.Flag(
		"proc", "Override the proc filesystem mount point.").String()

	list_command_no_headers = list_command.Flag(
		"no-headers", "Do not emit the column header row.").Bool()

	list_command_pager = list_command.Flag(
		"pager", "Pipe the output through this pager command.").String()
)

func doList() {
	config_obj := load_config_or_default()

	proc_root := config_obj.ProcRoot
	if *list_command_proc != "" {
		proc_root = *list_command_proc
	}

	process_table := procfs.NewProcessTable(procfs.Options{
		RootPath: proc_root,
	})

	records, err := process_table.ListProcesses()
	kingpin.FatalIfError(err, "Unable to list processes.")

	var out io.Writer = os.Stdout
	if *list_command_pager != "" {
		pager, err := NewPager(*list_command_pager)
		kingpin.FatalIfError(err, "Unable to start pager.")
		defer pager.Close()

		out = pager.Writer
	}

	switch *list_command_format {
	case "json":
		err := reporting.OutputRecordsToJSON(records, out)
		kingpin.FatalIfError(err, "Unable to serialize records.")

	case "jsonl":
		err := reporting.OutputRecordsToJSONL(records, out)
		kingpin.FatalIfError(err, "Unable to serialize records.")

	default:
		table := reporting.OutputRecordsToTable(
			records, !*list_command_no_headers, out)
		table.Render()
	}
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		if command == list_command.FullCommand() {
			doList()
			return true
		}
		return false
	})
}
