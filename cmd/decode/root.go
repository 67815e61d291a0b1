package decode

import (
	"github.com/ValentinKolb/forcespec/cmd/util"
	"github.com/spf13/cobra"
)

// DecodeCmd unpacks a binary batch into JSON
var DecodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Unpack a binary batch into JSON",
	Long: `Unpack a binary batch written by 'forcespec encode' (or by any process migrating nodes) and print the node description as JSON.

With --offset, every node index (the node itself and all peers) is translated by the given amount, as done when nodes are imported into the local numbering of another process.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	util.SetupStreamFlags(DecodeCmd, "File with the binary batch ('-' for stdin)", "File to write the JSON description to ('-' for stdout)")

	key := "offset"
	DecodeCmd.Flags().Int(key, 0, util.WrapString("Offset added to every node index while unpacking"))
}

func run(cmd *cobra.Command, _ []string) error {
	conf, err := util.LoadConfig(cmd)
	if err != nil {
		return err
	}

	nodes, err := util.NewNodeSet()
	if err != nil {
		return err
	}

	batch, err := util.ReadInput(conf.InputPath)
	if err != nil {
		return err
	}
	count, err := nodes.Import(batch, conf.Offset)
	if err != nil {
		return err
	}
	util.Logger.Infof("unpacked %d nodes with offset %d", count, conf.Offset)

	out, err := util.FormatNodes(nodes)
	if err != nil {
		return err
	}
	if err := util.WriteOutput(conf.OutputPath, out); err != nil {
		return err
	}
	if conf.PrintMetrics {
		util.PrintMetrics(nodes)
	}
	return nil
}
