package encode

import (
	"github.com/ValentinKolb/forcespec/cmd/util"
	"github.com/spf13/cobra"
)

// EncodeCmd packs a JSON node description into a binary batch
var EncodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Pack a JSON node description into a binary batch",
	Long: `Pack the rod and spring force specifications of all nodes described in a JSON file into a binary batch, exactly as it would be sent when the nodes migrate to another process.

The JSON input is a list of nodes, each with any number of rod and spring records:

  [{"index": 3,
    "rods":    [{"peers": [4], "params": [[1,2,3,4,5,6,7,8,9,10]]}],
    "springs": [{"peers": [5], "force_functions": [0], "params": [[2.5]]}]}]

Flags can also be set via environment variables of the form FORCESPEC_<flag> (e.g. FORCESPEC_LOG_LEVEL=debug).`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	util.SetupStreamFlags(EncodeCmd, "JSON file with the node description ('-' for stdin)", "File to write the binary batch to ('-' for stdout)")
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

	input, err := util.ReadInput(conf.InputPath)
	if err != nil {
		return err
	}
	if err := util.ParseNodes(input, nodes); err != nil {
		return err
	}

	batch, err := nodes.Export(nodes.Indices())
	if err != nil {
		return err
	}
	util.Logger.Infof("packed batch of %d bytes", len(batch))

	if err := util.WriteOutput(conf.OutputPath, batch); err != nil {
		return err
	}
	if conf.PrintMetrics {
		util.PrintMetrics(nodes)
	}
	return nil
}
