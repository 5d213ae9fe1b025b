// Package sysvar implements the `ccuctl sysvar` command group.
package sysvar

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ccu-tools/ccuctl/ccuctl/options"
	"github.com/ccu-tools/ccuctl/pkg/ccu/veap"
)

var Cmd = &cobra.Command{
	Use:   "sysvar",
	Short: "Manage CCU system variables",
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(setCmd)
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
	Short: "List all system variables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := client()
		if err != nil {
			return err
		}

		sysvars, err := c.ListSysvars(cmd.Context())
		if err != nil {
			return err
		}

		if options.Flags.Json {
			return options.PrintResult(sysvars)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTITLE")
		fmt.Fprintln(w, "----\t-----")
		for _, sv := range sysvars {
			fmt.Fprintf(w, "%s\t%s\n", sv.Href, sv.Title)
		}
		return w.Flush()
	},
}

var getCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Read a system variable value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := client()
		if err != nil {
			return err
		}

		value, err := c.GetSysvar(cmd.Context(), args[0])
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
	Use:   "set <name> <value>",
	Short: "Set a system variable value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := client()
		if err != nil {
			return err
		}

		value := options.ParseValue(args[1])
		if err := c.SetSysvar(cmd.Context(), args[0], value); err != nil {
			return err
		}
		fmt.Printf("OK %s = %v\n", args[0], value)
		return nil
	},
}
