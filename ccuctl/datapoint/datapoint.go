// Package datapoint implements the `ccuctl datapoint` command group.
package datapoint

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccu-tools/ccuctl/ccuctl/options"
	"github.com/ccu-tools/ccuctl/pkg/ccu/veap"
)

var Cmd = &cobra.Command{
	Use:   "datapoint",
	Short: "Read and write datapoint values",
}

func init() {
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(setCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <serial:channel/DATAPOINT>",
	Short: "Read a datapoint value",
	Long: `Read a datapoint value.

Example: ccuctl datapoint get 000A1B2C3D4E5F:1/ACTUAL_TEMPERATURE`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		serial, channel, dp, err := options.ParseDatapointPath(args[0])
		if err != nil {
			return err
		}

		cfg, err := options.CCUConfig()
		if err != nil {
			return err
		}

		value, err := veap.NewClient(cfg).GetDatapoint(cmd.Context(), serial, channel, dp)
		if err != nil {
			return err
		}
		if options.Flags.Json {
			return options.PrintResult(value)
		}
		fmt.Println(value)
		return nil
	},
}

var setCmd = &cobra.Command{
	Use:   "set <serial:channel/DATAPOINT> <value>",
	Short: "Set a datapoint value",
	Long: `Set a datapoint value. The value is parsed as bool, integer or float
where possible, and sent as a string otherwise.

Example: ccuctl datapoint set 000A1B2C3D4E5F:1/STATE true`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		serial, channel, dp, err := options.ParseDatapointPath(args[0])
		if err != nil {
			return err
		}
		value := options.ParseValue(args[1])

		cfg, err := options.CCUConfig()
		if err != nil {
			return err
		}

		if err := veap.NewClient(cfg).SetDatapoint(cmd.Context(), serial, channel, dp, value); err != nil {
			return err
		}
		fmt.Printf("OK %s = %v\n", args[0], value)
		return nil
	},
}
