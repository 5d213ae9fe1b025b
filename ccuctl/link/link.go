// Package link implements the `ccuctl link` command group for direct
// device links (Direktverknuepfungen) over the CCU's XML-RPC interfaces.
package link

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ccu-tools/ccuctl/ccuctl/options"
	"github.com/ccu-tools/ccuctl/pkg/ccu/hmrpc"
)

var (
	iface       string
	address     string
	name        string
	description string
	side        string
	yes         bool
)

var Cmd = &cobra.Command{
	Use:   "link",
	Short: "Manage direct device links",
}

func init() {
	Cmd.PersistentFlags().StringVarP(&iface, "interface", "i", hmrpc.InterfaceHmIPRF,
		fmt.Sprintf("XML-RPC interface (%s or %s)", hmrpc.InterfaceBidCosRF, hmrpc.InterfaceHmIPRF))

	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(configCmd)

	listCmd.Flags().StringVarP(&address, "address", "a", "", "only links involving this channel address")
	createCmd.Flags().StringVarP(&name, "name", "n", "", "link name")
	createCmd.Flags().StringVar(&description, "description", "", "link description")
	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without confirmation")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configSetCmd.Flags().StringVar(&side, "side", "receiver",
		"which side of the link to configure (receiver or sender)")
}

func client() (*hmrpc.Client, error) {
	cfg, err := options.CCUConfig()
	if err != nil {
		return nil, err
	}
	return hmrpc.NewClient(cfg, iface), nil
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List direct device links",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := client()
		if err != nil {
			return err
		}
		defer c.Close()

		links, err := c.GetLinks(cmd.Context(), address)
		if err != nil {
			return err
		}

		if options.Flags.Json {
			return options.PrintResult(links)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SENDER\tRECEIVER\tNAME")
		fmt.Fprintln(w, "------\t--------\t----")
		for _, l := range links {
			fmt.Fprintf(w, "%s\t%s\t%s\n", l.Sender, l.Receiver, l.Name)
		}
		return w.Flush()
	},
}

var getCmd = &cobra.Command{
	Use:   "get <sender> <receiver>",
	Short: "Show details of one link",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := client()
		if err != nil {
			return err
		}
		defer c.Close()

		info, err := c.GetLinkInfo(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		if info == nil {
			return fmt.Errorf("no link between %s and %s", args[0], args[1])
		}
		return options.PrintResult(info)
	},
}

var createCmd = &cobra.Command{
	Use:   "create <sender> <receiver>",
	Short: "Create a direct device link",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := client()
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.AddLink(cmd.Context(), args[0], args[1], name, description); err != nil {
			return err
		}
		fmt.Printf("OK linked %s -> %s\n", args[0], args[1])
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <sender> <receiver>",
	Short: "Delete a direct device link",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !yes && !confirm(fmt.Sprintf("Delete link %s -> %s?", args[0], args[1])) {
			fmt.Println("Aborted")
			return nil
		}

		c, err := client()
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.RemoveLink(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("OK removed link %s -> %s\n", args[0], args[1])
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and write link parameters",
}

var configGetCmd = &cobra.Command{
	Use:   "get <sender> <receiver>",
	Short: "Show the LINK paramset of a device link",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := client()
		if err != nil {
			return err
		}
		defer c.Close()

		params, err := c.GetLinkParamset(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		return options.PrintResult(params)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <sender> <receiver> <key=value>...",
	Short: "Set link parameters",
	Long: `Set link parameters as key=value pairs.

By default parameters are written on the receiver side, which holds
actuator profiles (driving modes, timings). Use --side sender for
button and switch profiles.

Example: ccuctl link config set 000B5D:1 000E9A:4 SHORT_DRIVING_MODE=1`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		sender, receiver := args[0], args[1]

		params := make(map[string]any, len(args)-2)
		for _, pair := range args[2:] {
			key, value, ok := strings.Cut(pair, "=")
			if !ok {
				return fmt.Errorf("invalid parameter %q (expected key=value)", pair)
			}
			params[key] = options.ParseValue(value)
		}

		c, err := client()
		if err != nil {
			return err
		}
		defer c.Close()

		// The LINK paramset lives on the channel owning the profile:
		// putParamset(receiver, sender) configures the actuator side,
		// putParamset(sender, receiver) the button side.
		switch side {
		case "receiver":
			err = c.SetLinkParamset(cmd.Context(), receiver, sender, params)
		case "sender":
			err = c.SetLinkParamset(cmd.Context(), sender, receiver, params)
		default:
			return fmt.Errorf("invalid --side %q (expected receiver or sender)", side)
		}
		if err != nil {
			return err
		}

		fmt.Printf("OK updated %s side parameters: %s -> %s\n", side, sender, receiver)
		for key, value := range params {
			fmt.Printf("  %s = %v\n", key, value)
		}
		return nil
	},
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
