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
	"os"

	"github.com/alecthomas/kingpin/v2"

	"www.velocidex.com/golang/pslist/config"
	"www.velocidex.com/golang/pslist/logging"
)

type CommandHandler func(command string) bool

var (
	app = kingpin.New("pslist",
		"Report a point in time snapshot of the running processes.")

	config_path = app.Flag("config", "The configuration file.").
			Short('c').String()

	verbose_flag = app.Flag(
		"verbose", "Enable verbose logging.").Short('v').
		Default("false").Bool()

	nocolor_flag = app.Flag("nocolor", "Disable coloring").Bool()

	command_handlers []CommandHandler
)

func makeDefaultConfigLoader() *config.Loader {
	return new(config.Loader).
		WithVerbose(*verbose_flag).
		WithFileLoader(*config_path).
		WithEnvLoader("PSLIST_CONFIG").
		WithNullLoader()
}

func load_config_or_default() *config.Config {
	config_obj, err := makeDefaultConfigLoader().LoadAndValidate()
	kingpin.FatalIfError(err, "Unable to load config.")

	if *verbose_flag {
		config_obj.Logging.Level = "debug"
	}

	// Initialize the logging now that we have loaded the config.
	err = logging.InitLogging(config_obj)
	kingpin.FatalIfError(err, "Logging")

	return config_obj
}

func main() {
	app.HelpFlag.Short('h')
	app.UsageTemplate(kingpin.CompactUsageTemplate).DefaultEnvars()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	if !*verbose_flag {
		logging.SuppressLogging = true
	}

	if *nocolor_flag {
		logging.NoColor = true
	}

	for _, command_handler := range command_handlers {
		if command_handler(command) {
			break
		}
	}
}
