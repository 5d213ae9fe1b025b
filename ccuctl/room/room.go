// Package room implements the `ccuctl room` command group. All room
// operations go through the ReGa script endpoint; CCU-Jack does not
// expose room management.
package room

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
)

var yes bool

var Cmd = &cobra.Command{
	Use:   "room",
	Short: "Manage CCU rooms",
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(renameCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(addDeviceCmd)
	Cmd.AddCommand(removeDeviceCmd)
	Cmd.AddCommand(devicesCmd)

	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without confirmation")
}

func client() (*rega.Client, error) {
	cfg, err := options.CCUConfig()
	if err != nil {
		return nil, err
	}
	return rega.NewClient(cfg), nil
}

func parseID(s, what string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s id %q (expected a number)", what, s)
	}
	return id, nil
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all rooms",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := client()
		if err != nil {
			return err
		}

		rooms, err := c.ListRooms(cmd.Context())
		if err != nil {
			return err
		}

		if options.Flags.Json {
			return options.PrintResult(rooms)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME")
		fmt.Fprintln(w, "--\t----")
		for _, room := range rooms {
			fmt.Fprintf(w, "%d\t%s\n", room.ID, room.Name)
		}
		return w.Flush()
	},
}

var getCmd = &cobra.Command{
	Use:   "get <room-id>",
	Short: "Show a room and its channels",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		roomID, err := parseID(args[0], "room")
		if err != nil {
			return err
		}

		c, err := client()
		if err != nil {
			return err
		}

		channels, err := c.ListRoomChannels(cmd.Context(), roomID)
		if err != nil {
			return err
		}

		out := struct {
			ID       int            `json:"id" yaml:"id"`
			Channels []rega.Channel `json:"channels" yaml:"channels"`
		}{ID: roomID, Channels: channels}
		return options.PrintResult(out)
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <room-id> <new-name>",
	Short: "Rename a room",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		roomID, err := parseID(args[0], "room")
		if err != nil {
			return err
		}

		c, err := client()
		if err != nil {
			return err
		}

		if err := c.RenameRoom(cmd.Context(), roomID, args[1]); err != nil {
			return err
		}
		fmt.Printf("OK renamed room %d to %q\n", roomID, args[1])
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <room-id>",
	Short: "Delete a room",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		roomID, err := parseID(args[0], "room")
		if err != nil {
			return err
		}

		if !yes && !confirm(fmt.Sprintf("Delete room %d?", roomID)) {
			fmt.Println("Aborted")
			return nil
		}

		c, err := client()
		if err != nil {
			return err
		}

		if err := c.DeleteRoom(cmd.Context(), roomID); err != nil {
			return err
		}
		fmt.Printf("OK deleted room %d\n", roomID)
		return nil
	},
}

var addDeviceCmd = &cobra.Command{
	Use:   "add-device <room-id> <channel-id>",
	Short: "Add a device channel to a room",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		roomID, err := parseID(args[0], "room")
		if err != nil {
			return err
		}
		channelID, err := parseID(args[1], "channel")
		if err != nil {
			return err
		}

		c, err := client()
		if err != nil {
			return err
		}

		if err := c.AddChannelToRoom(cmd.Context(), roomID, channelID); err != nil {
			return err
		}
		fmt.Printf("OK added channel %d to room %d\n", channelID, roomID)
		return nil
	},
}

var removeDeviceCmd = &cobra.Command{
	Use:   "remove-device <room-id> <channel-id>",
	Short: "Remove a device channel from a room",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		roomID, err := parseID(args[0], "room")
		if err != nil {
			return err
		}
		channelID, err := parseID(args[1], "channel")
		if err != nil {
			return err
		}

		c, err := client()
		if err != nil {
			return err
		}

		if err := c.RemoveChannelFromRoom(cmd.Context(), roomID, channelID); err != nil {
			return err
		}
		fmt.Printf("OK removed channel %d from room %d\n", channelID, roomID)
		return nil
	},
}

var devicesCmd = &cobra.Command{
	Use:   "devices <room-id>",
	Short: "List the device channels in a room",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		roomID, err := parseID(args[0], "room")
		if err != nil {
			return err
		}

		c, err := client()
		if err != nil {
			return err
		}

		channels, err := c.ListRoomChannels(cmd.Context(), roomID)
		if err != nil {
			return err
		}

		if options.Flags.Json {
			return options.PrintResult(channels)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tADDRESS")
		fmt.Fprintln(w, "--\t----\t-------")
		for _, ch := range channels {
			fmt.Fprintf(w, "%d\t%s\t%s\n", ch.ID, ch.Name, ch.Address)
		}
		return w.Flush()
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
