package config

// These are filled in by the linker at build time.
var (
	build_time  = ""
	commit_hash = ""
)

const VERSION = "0.1.0"

type Version struct {
	Name      string `yaml:"name" json:"name"`
	Version   string `yaml:"version" json:"version"`
	Commit    string `yaml:"commit,omitempty" json:"commit,omitempty"`
	BuildTime string `yaml:"build_time,omitempty" json:"build_time,omitempty"`
}

func GetVersion() *Version {
	return &Version{
		Name:      "pslist",
		Version:   VERSION,
		Commit:    commit_hash,
		BuildTime: build_time,
	}
}

type LoggingConfig struct {
	// Directory where component log files are written. Empty
	// disables file logging entirely.
	OutputDirectory string `yaml:"output_directory,omitempty"`

	// Minimum level that gets logged: debug, info, warn or error.
	Level string `yaml:"level,omitempty"`

	// Log rotation parameters in seconds.
	MaxAge       int64 `yaml:"max_age,omitempty"`
	RotationTime int64 `yaml:"rotation_time,omitempty"`
}

type Config struct {
	// Mount point of the proc filesystem. Containerized
	// deployments usually bind the host's table somewhere else
	// (e.g. /host/proc).
	ProcRoot string `yaml:"proc_root,omitempty"`

	Logging *LoggingConfig `yaml:"logging,omitempty"`
}

func GetDefaultConfig() *Config {
	return &Config{
		ProcRoot: "/proc",
		Logging: &LoggingConfig{
			Level:        "info",
			MaxAge:       86400 * 30,
			RotationTime: 86400 * 7,
		},
	}
}
