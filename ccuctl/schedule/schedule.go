// Package schedule implements the `ccuctl schedule` command group for
// thermostat weekly heating programs.
package schedule

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ccu-tools/ccuctl/ccuctl/options"
	hmsched "github.com/ccu-tools/ccuctl/pkg/ccu/schedule"
	"github.com/ccu-tools/ccuctl/pkg/ccu/veap"
)

var (
	profile  int
	days     string
	start    string
	end      string
	comfort  float64
	lowering float64
	temp     float64
)

var Cmd = &cobra.Command{
	Use:   "schedule",
	Short: "Manage thermostat weekly heating programs",
	Long: `Manage the weekly heating programs (P1..P3) stored in a thermostat's
MASTER paramset. Works with legacy HomeMatic thermostats such as
HM-TC-IT-WM-W-EU and HM-CC-RT-DN.`,
}

func init() {
	Cmd.PersistentFlags().IntVarP(&profile, "profile", "p", 1, "profile number (1-3)")

	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(simpleCmd)
	Cmd.AddCommand(constantCmd)
	Cmd.AddCommand(profileCmd)

	simpleCmd.Flags().StringVar(&start, "start", "", "start of the heating period (HH:MM)")
	simpleCmd.Flags().StringVar(&end, "end", "", "end of the heating period (HH:MM)")
	simpleCmd.Flags().Float64Var(&comfort, "comfort", hmsched.DefaultComfortTemp, "temperature during the heating period")
	simpleCmd.Flags().Float64Var(&lowering, "lowering", hmsched.DefaultLoweringTemp, "temperature outside the heating period")
	simpleCmd.Flags().StringVar(&days, "days", "", "comma-separated days to apply to (default: all), e.g. mon,tue,fri")
	simpleCmd.MarkFlagRequired("start")
	simpleCmd.MarkFlagRequired("end")

	constantCmd.Flags().Float64Var(&temp, "temp", 0, "constant target temperature")
	constantCmd.Flags().StringVar(&days, "days", "", "comma-separated days to apply to (default: all)")
	constantCmd.MarkFlagRequired("temp")

	profileCmd.AddCommand(profileGetCmd)
	profileCmd.AddCommand(profileSetCmd)
}

func client() (*veap.Client, error) {
	cfg, err := options.CCUConfig()
	if err != nil {
		return nil, err
	}
	return veap.NewClient(cfg), nil
}

func dayList() []string {
	if days == "" {
		return nil
	}
	var list []string
	for _, token := range strings.Split(days, ",") {
		if token = strings.TrimSpace(token); token != "" {
			list = append(list, token)
		}
	}
	return list
}

var showCmd = &cobra.Command{
	Use:   "show <serial:channel>",
	Short: "Show a thermostat's weekly program",
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
		s := hmsched.ParseParamset(params, profile)

		if options.Flags.Json {
			return options.PrintResult(s)
		}

		fmt.Printf("Profile P%d (comfort %.1f°C, lowering %.1f°C)\n\n", s.Profile, s.ComfortTemp, s.LoweringTemp)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "DAY\tPERIOD\tTEMPERATURE")
		fmt.Fprintln(w, "---\t------\t-----------")
		for _, day := range hmsched.Weekdays {
			from := "00:00"
			for _, slot := range s.Days[day].ActiveSlots() {
				fmt.Fprintf(w, "%s\t%s - %s\t%.1f°C\n", day, from, slot.EndTime(), slot.Temperature)
				from = slot.EndTime()
			}
		}
		return w.Flush()
	},
}

var simpleCmd = &cobra.Command{
	Use:   "simple <serial:channel>",
	Short: "Write a one-heating-period program",
	Long: `Overwrite a profile with a simple program: lowering temperature until
--start, comfort temperature until --end, lowering again until midnight.
Days not selected with --days fall back to lowering all day.

Example:
  ccuctl schedule simple ABC123:1 --start 06:00 --end 22:00 --days mon,tue,wed,thu,fri`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		serial, channel, err := options.ParseChannelAddress(args[0])
		if err != nil {
			return err
		}

		s, err := hmsched.NewSimpleSchedule(profile, start, end, comfort, lowering, dayList())
		if err != nil {
			return err
		}

		c, err := client()
		if err != nil {
			return err
		}

		if err := c.SetMaster(cmd.Context(), serial, channel, hmsched.BuildParamset(s)); err != nil {
			return err
		}
		fmt.Printf("OK wrote profile P%d to %s (%s-%s at %.1f°C, otherwise %.1f°C)\n",
			profile, args[0], start, end, comfort, lowering)
		return nil
	},
}

var constantCmd = &cobra.Command{
	Use:   "constant <serial:channel>",
	Short: "Write a constant-temperature program",
	Long: `Overwrite a profile with a constant temperature for the whole day,
without night setback.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		serial, channel, err := options.ParseChannelAddress(args[0])
		if err != nil {
			return err
		}

		s := hmsched.NewConstantSchedule(profile, temp, dayList())

		c, err := client()
		if err != nil {
			return err
		}

		if err := c.SetMaster(cmd.Context(), serial, channel, hmsched.BuildParamset(s)); err != nil {
			return err
		}
		fmt.Printf("OK wrote profile P%d to %s (constant %.1f°C)\n", profile, args[0], temp)
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Read and switch the active profile pointer",
}

var profileGetCmd = &cobra.Command{
	Use:   "get <serial:channel>",
	Short: "Show which profile the thermostat runs",
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

		pointer, ok := params["WEEK_PROGRAM_POINTER"]
		if !ok {
			return fmt.Errorf("%s has no WEEK_PROGRAM_POINTER parameter", args[0])
		}
		// The pointer is zero-based on the wire; profiles are named P1..P3.
		if n, isNum := pointer.(float64); isNum {
			fmt.Printf("P%d\n", int(n)+1)
			return nil
		}
		fmt.Println(pointer)
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set <serial:channel> <profile>",
	Short: "Switch the thermostat to another profile (1-3)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		serial, channel, err := options.ParseChannelAddress(args[0])
		if err != nil {
			return err
		}

		n, err := strconv.Atoi(strings.TrimPrefix(strings.ToUpper(args[1]), "P"))
		if err != nil || n < 1 || n > 3 {
			return fmt.Errorf("invalid profile %q (expected 1, 2 or 3)", args[1])
		}

		c, err := client()
		if err != nil {
			return err
		}

		err = c.SetMaster(cmd.Context(), serial, channel, map[string]any{
			"WEEK_PROGRAM_POINTER": n - 1,
		})
		if err != nil {
			return err
		}
		fmt.Printf("OK %s now runs profile P%d\n", args[0], n)
		return nil
	},
}
