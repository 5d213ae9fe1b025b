package main

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/ccu-tools/ccuctl/ccuctl/datapoint"
	"github.com/ccu-tools/ccuctl/ccuctl/device"
	"github.com/ccu-tools/ccuctl/ccuctl/link"
	"github.com/ccu-tools/ccuctl/ccuctl/options"
	"github.com/ccu-tools/ccuctl/ccuctl/program"
	"github.com/ccu-tools/ccuctl/ccuctl/room"
	"github.com/ccu-tools/ccuctl/ccuctl/schedule"
	"github.com/ccu-tools/ccuctl/ccuctl/sysvar"
	"github.com/ccu-tools/ccuctl/hlog"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ccuctl",
	Short: "Command-line client for a HomeMatic CCU",
	Long: `ccuctl manages devices, datapoints, system variables, programs, rooms,
device links and thermostat schedules on a HomeMatic CCU, talking to the
CCU-Jack VEAP API, the ReGa script endpoint and the legacy XML-RPC ports.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		hlog.Init(options.Flags.Verbose, options.Flags.Debug, options.Flags.Quiet)
		ctx := logr.NewContext(cmd.Context(), hlog.Logger)
		ctx = options.CommandLineContext(ctx)
		cmd.SetContext(ctx)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&options.Flags.Verbose, "verbose", "v", false, "verbose output (info level, mutually exclusive with --debug and --quiet)")
	rootCmd.PersistentFlags().BoolVarP(&options.Flags.Debug, "debug", "d", false, "debug output (debug level, shows V(1) logs)")
	rootCmd.PersistentFlags().BoolVarP(&options.Flags.Quiet, "quiet", "q", false, "quiet output (error level only)")
	rootCmd.PersistentFlags().BoolVarP(&options.Flags.Json, "json", "j", false, "output in json format")
	rootCmd.PersistentFlags().DurationVarP(&options.Flags.Timeout, "timeout", "t", options.CommandDefaultTimeout, "maximum time to wait for a command to finish (0 = wait indefinitely)")

	rootCmd.MarkFlagsMutuallyExclusive("verbose", "debug", "quiet")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(device.Cmd)
	rootCmd.AddCommand(datapoint.Cmd)
	rootCmd.AddCommand(sysvar.Cmd)
	rootCmd.AddCommand(program.Cmd)
	rootCmd.AddCommand(room.Cmd)
	rootCmd.AddCommand(link.Cmd)
	rootCmd.AddCommand(schedule.Cmd)
}

var Commit string

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(Commit)
	},
}
