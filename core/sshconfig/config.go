package sshconfig

// Config holds configuration for SSH config discovery.
type Config struct {
	// Dir is the directory scanned for SSH config files.
	Dir string `mapstructure:"dir" default:"~/.ssh"`
	// Recursive enables scanning of subdirectories.
	Recursive bool `mapstructure:"recursive" default:"true"`
	// Exclude is a comma-separated list of file names to skip.
	Exclude string `mapstructure:"exclude" default:""`
}
