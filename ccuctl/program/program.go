// Package program implements the `ccuctl program` command group. Listing
// and running programs goes through CCU-Jack; enabling, disabling and
// deleting them needs the ReGa object model.
package program

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ccu-tools/ccuctl/ccuctl/options"
	"github.com/ccu-tools/ccuctl/pkg/ccu/rega"
	"github.com/ccu-tools/ccuctl/pkg/ccu/veap"
)

var yes bool

var Cmd = &cobra.Command{
	Use:   "program",
	Short: "Manage CCU programs",
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(runCmd)
	Cmd.AddCommand(enableCmd)
	Cmd.AddCommand(disableCmd)
	Cmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without confirmation")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all programs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := options.CCUConfig()
		if err != nil {
			return err
		}

		programs, err := veap.NewClient(cfg).ListPrograms(cmd.Context())
		if err != nil {
			return err
		}

		if options.Flags.Json {
			return options.PrintResult(programs)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTITLE")
		fmt.Fprintln(w, "----\t-----")
		for _, p := range programs {
			fmt.Fprintf(w, "%s\t%s\n", p.Href, p.Title)
		}
		return w.Flush()
	},
}

var getCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Show a program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := options.CCUConfig()
		if err != nil {
			return err
		}

		prog, err := veap.NewClient(cfg).GetProgram(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return options.PrintResult(prog)
	},
}

var runCmd = &cobra.Command{
	Use:   "run <name>",
	Short: "Execute a program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := options.CCUConfig()
		if err != nil {
			return err
		}

		if err := veap.NewClient(cfg).RunProgram(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("OK started program %s\n", args[0])
		return nil
	},
}

var enableCmd = &cobra.Command{
	Use:   "enable <program-id>",
	Short: "Enable a program",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setActive(cmd, args[0], true) },
}

var disableCmd = &cobra.Command{
	Use:   "disable <program-id>",
	Short: "Disable a program",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setActive(cmd, args[0], false) },
}

func setActive(cmd *cobra.Command, arg string, active bool) error {
	programID, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("invalid program id %q (expected a number)", arg)
	}

	cfg, err := options.CCUConfig()
	if err != nil {
		return err
	}

	if err := rega.NewClient(cfg).SetProgramActive(cmd.Context(), programID, active); err != nil {
		return err
	}

	state := "disabled"
	if active {
		state = "enabled"
	}
	fmt.Printf("OK program %d %s\n", programID, state)
	return nil
}

var deleteCmd = &cobra.Command{
	Use:   "delete <program-id>",
	Short: "Delete a program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		programID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid program id %q (expected a number)", args[0])
		}

		if !yes && !confirm(fmt.Sprintf("Delete program %d?", programID)) {
			fmt.Println("Aborted")
			return nil
		}

		cfg, err := options.CCUConfig()
		if err != nil {
			return err
		}

		if err := rega.NewClient(cfg).DeleteProgram(cmd.Context(), programID); err != nil {
			return err
		}
		fmt.Printf("OK deleted program %d\n", programID)
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
