package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/forcespec/cmd/decode"
	"github.com/ValentinKolb/forcespec/cmd/encode"
	"github.com/ValentinKolb/forcespec/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "0.3.0"
)

var (
	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "forcespec",
		Short: "pack and unpack node force specifications",
		Long: fmt.Sprintf(`forcespec (v%s)

Packs the rod and spring force specifications attached to mesh nodes into
the binary format used when node ownership migrates between processes,
and unpacks such batches again.`, Version),
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of forcespec",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("forcespec v%s\n", Version)
		},
	}
)

func init() {
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(encode.EncodeCmd)
	RootCmd.AddCommand(decode.DecodeCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "log-level"
	RootCmd.PersistentFlags().String(key, "warn", util.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))
	key = "metrics"
	RootCmd.PersistentFlags().Bool(key, false, util.WrapString("Print all collected metrics to stderr when the command finishes"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
