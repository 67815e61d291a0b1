package util

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ValentinKolb/forcespec/lib/common"
	"github.com/ValentinKolb/forcespec/lib/lnode"
	"github.com/ValentinKolb/forcespec/lib/rodforce"
	"github.com/ValentinKolb/forcespec/lib/springforce"
	"github.com/ValentinKolb/forcespec/lib/streamable"
	"github.com/VictoriaMetrics/metrics"
	"github.com/joho/godotenv"
	"github.com/lni/dragonboat/v4/logger"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

var Logger = logger.GetLogger("cli")

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// --------------------------------------------------------------------------
// Configuration
// --------------------------------------------------------------------------

// InitConfig loads .env files and configures viper to read FORCESPEC_* environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("forcespec")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// SetupStreamFlags adds the input and output flags to a command
func SetupStreamFlags(cmd *cobra.Command, inputHelp, outputHelp string) {
	key := "in"
	cmd.Flags().StringP(key, "i", "-", WrapString(inputHelp))

	key = "out"
	cmd.Flags().StringP(key, "o", "-", WrapString(outputHelp))
}

// LoadConfig binds the command's flags to viper, builds the run configuration
// and initializes the loggers
func LoadConfig(cmd *cobra.Command) (*common.Config, error) {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	if err := viper.BindPFlags(cmd.InheritedFlags()); err != nil {
		return nil, err
	}

	conf := &common.Config{
		InputPath:    viper.GetString("in"),
		OutputPath:   viper.GetString("out"),
		Offset:       viper.GetInt("offset"),
		PrintMetrics: viper.GetBool("metrics"),
		LogLevel:     viper.GetString("log-level"),
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if err := common.InitLoggers(conf.LogLevel); err != nil {
		return nil, err
	}

	Logger.Debugf("configuration:%s", conf.String())
	return conf, nil
}

// --------------------------------------------------------------------------
// Runtime
// --------------------------------------------------------------------------

// NewNodeSet creates a registry, registers all record types and returns an empty node set.
// The registration order is fixed: it determines the class IDs and must be the
// same for every program exchanging batches.
func NewNodeSet() (*lnode.NodeSet, error) {
	manager := streamable.NewManager()
	if err := rodforce.Register(manager); err != nil {
		return nil, fmt.Errorf("error registering rod force specs: %w", err)
	}
	if err := springforce.Register(manager); err != nil {
		return nil, fmt.Errorf("error registering spring force specs: %w", err)
	}
	return lnode.NewNodeSet(manager), nil
}

// ReadInput reads the whole input ("-" is stdin)
func ReadInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// WriteOutput writes data to the output ("-" is stdout)
func WriteOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// PrintMetrics writes the registry metrics and the node set's migration metrics to stderr
func PrintMetrics(nodes *lnode.NodeSet) {
	metrics.WritePrometheus(os.Stderr, false)
	gometrics.WriteOnce(nodes.Metrics(), os.Stderr)
}
