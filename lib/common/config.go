package common

import (
	"fmt"
	"strings"
)

// Config holds the settings of a single encode or decode run
type Config struct {
	// InputPath is the file to read from ("-" for stdin)
	InputPath string
	// OutputPath is the file to write to ("-" for stdout)
	OutputPath string
	// Offset is added to every node index when decoding
	Offset int
	// PrintMetrics dumps all metrics to stderr when the run finishes
	PrintMetrics bool
	// LogLevel is one of debug, info, warn, error
	LogLevel string
}

// Validate checks the configuration for obvious mistakes
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("no input given")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("no output given")
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// String returns a formatted string representation of the configuration
func (c *Config) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Streams")
	addField("Input", c.InputPath)
	addField("Output", c.OutputPath)
	addField("Index Offset", fmt.Sprintf("%d", c.Offset))

	addSection("Logging")
	addField("Log Level", c.LogLevel)
	addField("Print Metrics", fmt.Sprintf("%t", c.PrintMetrics))

	return sb.String()
}
