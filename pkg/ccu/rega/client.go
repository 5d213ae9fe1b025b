// Package rega drives the CCU ReGa script endpoint on port 8181. It covers
// the object-model operations CCU-Jack does not expose: room management,
// channel renaming and program deletion.
//
// Wire contract: a HomeMatic Script is POSTed as text/plain to /rega.exe;
// the reply is the script's WriteLine output. Data lines are
// semicolon-delimited; a first line starting with "ERROR:" signals failure
// and carries the message after the colon.
package rega

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/ccu-tools/ccuctl/pkg/ccu/config"
)

const regaPort = 8181

// Error is a failure reported by a ReGa script.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return "rega: " + e.Message
}

// Room is a CCU room object.
type Room struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Channel is a device channel as listed by room membership queries.
type Channel struct {
	ID      int    `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address" yaml:"address"`
}

// Client executes scripts against a CCU's ReGa endpoint.
type Client struct {
	cfg  *config.Config
	http *http.Client

	// urlOverride replaces the fixed host:8181 endpoint in tests.
	urlOverride string
}

// NewClient returns a ReGa client for the CCU named by cfg. The ReGa
// endpoint is plain HTTP on port 8181 regardless of the CCU-Jack TLS
// setting.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) url() string {
	if c.urlOverride != "" {
		return c.urlOverride
	}
	return fmt.Sprintf("http://%s:%d/rega.exe", c.cfg.Host, regaPort)
}

// Execute runs a script and returns its raw WriteLine output.
func (c *Client) Execute(ctx context.Context, script string) (string, error) {
	log := logr.FromContextOrDiscard(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(), strings.NewReader(script))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "text/plain")
	if c.cfg.HasAuth() {
		req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	}

	log.V(1).Info("ReGa script", "bytes", len(script))

	res, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("rega: unexpected status %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// run executes a script that follows the OK / ERROR: reply convention.
func (c *Client) run(ctx context.Context, script string) error {
	out, err := c.Execute(ctx, script)
	if err != nil {
		return err
	}
	return checkError(out)
}

// checkError inspects the first reply line for the ERROR: marker.
func checkError(out string) error {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	first := strings.TrimSpace(lines[0])
	if msg, ok := strings.CutPrefix(first, "ERROR:"); ok {
		return &Error{Message: msg}
	}
	return nil
}

// ListRooms returns all rooms defined on the CCU.
func (c *Client) ListRooms(ctx context.Context) ([]Room, error) {
	const script = `
string roomId;
foreach(roomId, dom.GetObject(ID_ROOMS).EnumUsedIDs()) {
  object room = dom.GetObject(roomId);
  WriteLine(room.ID() # ";" # room.Name());
}
`
	out, err := c.Execute(ctx, script)
	if err != nil {
		return nil, err
	}

	var rooms []Room
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		id, name, ok := strings.Cut(line, ";")
		if !ok {
			continue
		}
		roomID, err := strconv.Atoi(id)
		if err != nil {
			// ReGa echoes stray output for some firmware versions;
			// skip anything that is not an id;name pair.
			continue
		}
		rooms = append(rooms, Room{ID: roomID, Name: name})
	}
	return rooms, nil
}

// RenameRoom renames an existing room.
func (c *Client) RenameRoom(ctx context.Context, roomID int, newName string) error {
	script := fmt.Sprintf(`
object room = dom.GetObject(%d);
if (room) {
  room.Name("%s");
  WriteLine("OK");
} else {
  WriteLine("ERROR:Room not found");
}
`, roomID, newName)
	return c.run(ctx, script)
}

// DeleteRoom deletes a room. Channels assigned to it are kept.
func (c *Client) DeleteRoom(ctx context.Context, roomID int) error {
	script := fmt.Sprintf(`
object room = dom.GetObject(%d);
if (room) {
  dom.DeleteObject(room.ID());
  WriteLine("OK");
} else {
  WriteLine("ERROR:Room not found");
}
`, roomID)
	return c.run(ctx, script)
}

// RenameChannel renames a device channel.
func (c *Client) RenameChannel(ctx context.Context, channelID int, newName string) error {
	script := fmt.Sprintf(`
object channel = dom.GetObject(%d);
if (channel) {
    channel.Name("%s");
    WriteLine("OK");
} else {
    WriteLine("ERROR:Channel not found");
}
`, channelID, newName)
	return c.run(ctx, script)
}

// AddChannelToRoom assigns a channel to a room.
func (c *Client) AddChannelToRoom(ctx context.Context, roomID, channelID int) error {
	script := fmt.Sprintf(`
object room = dom.GetObject(%d);
object channel = dom.GetObject(%d);
if (room && channel) {
    room.Add(channel.ID());
    WriteLine("OK");
} else {
    if (!room) { WriteLine("ERROR:Room not found"); }
    if (!channel) { WriteLine("ERROR:Channel not found"); }
}
`, roomID, channelID)
	return c.run(ctx, script)
}

// RemoveChannelFromRoom removes a channel from a room.
func (c *Client) RemoveChannelFromRoom(ctx context.Context, roomID, channelID int) error {
	script := fmt.Sprintf(`
object room = dom.GetObject(%d);
object channel = dom.GetObject(%d);
if (room && channel) {
    room.Remove(channel.ID());
    WriteLine("OK");
} else {
    if (!room) { WriteLine("ERROR:Room not found"); }
    if (!channel) { WriteLine("ERROR:Channel not found"); }
}
`, roomID, channelID)
	return c.run(ctx, script)
}

// ListRoomChannels lists the channels assigned to a room.
func (c *Client) ListRoomChannels(ctx context.Context, roomID int) ([]Channel, error) {
	script := fmt.Sprintf(`
object room = dom.GetObject(%d);
if (room) {
    string chId;
    foreach(chId, room.EnumUsedIDs()) {
        object ch = dom.GetObject(chId);
        if (ch) {
            WriteLine(ch.ID() # ";" # ch.Name() # ";" # ch.Address());
        }
    }
} else {
    WriteLine("ERROR:Room not found");
}
`, roomID)
	out, err := c.Execute(ctx, script)
	if err != nil {
		return nil, err
	}
	if err := checkError(out); err != nil {
		return nil, err
	}

	var channels []Channel
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		parts := strings.Split(strings.TrimSpace(line), ";")
		if len(parts) < 3 {
			continue
		}
		id, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}
		channels = append(channels, Channel{ID: id, Name: parts[1], Address: parts[2]})
	}
	return channels, nil
}

// ChannelRoom returns the ID of the first room a channel is assigned to,
// or -1 when the channel is in no room. A channel can technically belong
// to several rooms; only the first is reported.
func (c *Client) ChannelRoom(ctx context.Context, channelID int) (int, error) {
	script := fmt.Sprintf(`
object channel = dom.GetObject(%d);
if (channel) {
    string roomId;
    foreach(roomId, channel.Rooms().EnumUsedIDs()) {
        WriteLine(roomId);
    }
} else {
    WriteLine("ERROR:Channel not found");
}
`, channelID)
	out, err := c.Execute(ctx, script)
	if err != nil {
		return -1, err
	}
	if err := checkError(out); err != nil {
		return -1, err
	}

	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if id, err := strconv.Atoi(line); err == nil {
			return id, nil
		}
	}
	return -1, nil
}

// SetProgramActive enables or disables a ReGa program.
func (c *Client) SetProgramActive(ctx context.Context, programID int, active bool) error {
	script := fmt.Sprintf(`
object oProgram = dom.GetObject(%d);
if (oProgram && oProgram.IsTypeOf(OT_PROGRAM)) {
    oProgram.Active(%t);
    WriteLine("OK");
} else {
    WriteLine("ERROR:Program not found");
}
`, programID, active)
	return c.run(ctx, script)
}

// DeleteProgram deletes a ReGa program. CCU-Jack can list and run
// programs but not delete them, so this stays a script operation.
func (c *Client) DeleteProgram(ctx context.Context, programID int) error {
	script := fmt.Sprintf(`
object oProgram = dom.GetObject(%d);
if (oProgram && oProgram.IsTypeOf(OT_PROGRAM)) {
    dom.DeleteObject(oProgram.ID());
    WriteLine("OK");
} else {
    WriteLine("ERROR:Program not found");
}
`, programID)
	return c.run(ctx, script)
}
