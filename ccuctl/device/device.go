// Package device implements the `ccuctl device` command group.
package device

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ccu-tools/ccuctl/ccuctl/options"
	"github.com/ccu-tools/ccuctl/pkg/ccu/rega"
	"github.com/ccu-tools/ccuctl/pkg/ccu/veap"
)

var Cmd = &cobra.Command{
	Use:   "device",
	Short: "Manage CCU devices",
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(renameCmd)
	Cmd.AddCommand(configCmd)
	Cmd.AddCommand(refreshCmd)
}

func client() (*veap.Client, error) {
	cfg, err := options.CCUConfig()
	if err != nil {
		return nil, err
	}
	return veap.NewClient(cfg), nil
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all devices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := client()
		if err != nil {
			return err
		}

		devices, err := c.ListDevices(cmd.Context())
		if err != nil {
			return err
		}

		if options.Flags.Json {
			return options.PrintResult(devices)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ADDRESS\tNAME")
		fmt.Fprintln(w, "-------\t----")
		for _, dev := range devices {
			fmt.Fprintf(w, "%s\t%s\n", dev.Href, dev.Title)
		}
		return w.Flush()
	},
}

var getCmd = &cobra.Command{
	Use:   "get <serial[:channel]>",
	Short: "Show device or channel details",
	Long: `Show a device document including its channels, or a single channel
document when the address carries a channel number.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := client()
		if err != nil {
			return err
		}

		var doc map[string]any
		if serial, channel, addrErr := options.ParseChannelAddress(args[0]); addrErr == nil {
			doc, err = c.GetChannel(cmd.Context(), serial, channel)
		} else {
			doc, err = c.GetDevice(cmd.Context(), args[0])
		}
		if err != nil {
			return err
		}
		return options.PrintResult(doc)
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <channel-id> <new-name>",
	Short: "Rename a device channel",
	Long: `Rename a device channel via the ReGa object model. The channel is
addressed by its numeric ReGa ID, as shown by "ccuctl room devices".`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		channelID, err := parseID(args[0])
		if err != nil {
			return err
		}

		cfg, err := options.CCUConfig()
		if err != nil {
			return err
		}

		if err := rega.NewClient(cfg).RenameChannel(cmd.Context(), channelID, args[1]); err != nil {
			return err
		}
		fmt.Printf("OK renamed channel %d to %q\n", channelID, args[1])
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config <serial:channel>",
	Short: "Show a channel's MASTER (configuration) paramset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		serial, channel, err := options.ParseChannelAddress(args[0])
		if err != nil {
			return err
		}

		c, err := client()
		if err != nil {
			return err
		}

		params, err := c.GetMaster(cmd.Context(), serial, channel)
		if err != nil {
			return err
		}
		return options.PrintResult(params)
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-read the device tree from the CCU",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := client()
		if err != nil {
			return err
		}

		devices, err := c.ListDevices(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("OK %d devices\n", len(devices))
		return nil
	},
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q (expected a number)", s)
	}
	return id, nil
}
