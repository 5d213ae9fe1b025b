package rega

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccu-tools/ccuctl/pkg/ccu/config"
)

// regaStub serves canned script output and records the last script body.
type regaStub struct {
	reply  string
	script string
}

func (s *regaStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		s.script = string(body)
		io.WriteString(w, s.reply)
	}
}

func newTestClient(t *testing.T, stub *regaStub) *Client {
	t.Helper()
	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	c := NewClient(&config.Config{Host: u.Hostname()})
	// Point the fixed rega URL at the test listener.
	c.http = srv.Client()
	c.urlOverride = srv.URL + "/rega.exe"
	return c
}

func TestListRooms(t *testing.T) {
	stub := &regaStub{reply: "1226;Living Room\n1234;Bedroom\nnot-a-room\n"}
	client := newTestClient(t, stub)

	rooms, err := client.ListRooms(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, Room{ID: 1226, Name: "Living Room"}, rooms[0])
	assert.Equal(t, Room{ID: 1234, Name: "Bedroom"}, rooms[1])

	assert.Contains(t, stub.script, "ID_ROOMS")
	assert.Contains(t, stub.script, "EnumUsedIDs")
}

func TestRenameRoomOK(t *testing.T) {
	stub := &regaStub{reply: "OK\n"}
	client := newTestClient(t, stub)

	require.NoError(t, client.RenameRoom(context.Background(), 1226, "Lounge"))
	assert.Contains(t, stub.script, "dom.GetObject(1226)")
	assert.Contains(t, stub.script, `room.Name("Lounge")`)
}

func TestRenameRoomError(t *testing.T) {
	stub := &regaStub{reply: "ERROR:Room not found\n"}
	client := newTestClient(t, stub)

	err := client.RenameRoom(context.Background(), 9999, "Lounge")
	require.Error(t, err)

	var regaErr *Error
	require.ErrorAs(t, err, &regaErr)
	assert.Equal(t, "Room not found", regaErr.Message)
}

func TestListRoomChannels(t *testing.T) {
	stub := &regaStub{reply: "2001;Thermostat;ABC123:1\n2002;Sensor;DEF456:1\n\n"}
	client := newTestClient(t, stub)

	channels, err := client.ListRoomChannels(context.Background(), 1226)
	require.NoError(t, err)
	require.Len(t, channels, 2)
	assert.Equal(t, Channel{ID: 2001, Name: "Thermostat", Address: "ABC123:1"}, channels[0])
}

func TestListRoomChannelsRoomMissing(t *testing.T) {
	stub := &regaStub{reply: "ERROR:Room not found\n"}
	client := newTestClient(t, stub)

	_, err := client.ListRoomChannels(context.Background(), 1)
	var regaErr *Error
	require.ErrorAs(t, err, &regaErr)
}

func TestChannelRoom(t *testing.T) {
	stub := &regaStub{reply: "1226\n"}
	client := newTestClient(t, stub)

	roomID, err := client.ChannelRoom(context.Background(), 2001)
	require.NoError(t, err)
	assert.Equal(t, 1226, roomID)
}

func TestChannelRoomUnassigned(t *testing.T) {
	stub := &regaStub{reply: "\n"}
	client := newTestClient(t, stub)

	roomID, err := client.ChannelRoom(context.Background(), 2001)
	require.NoError(t, err)
	assert.Equal(t, -1, roomID)
}

func TestDeleteProgram(t *testing.T) {
	stub := &regaStub{reply: "OK\n"}
	client := newTestClient(t, stub)

	require.NoError(t, client.DeleteProgram(context.Background(), 4711))
	assert.Contains(t, stub.script, "IsTypeOf(OT_PROGRAM)")
	assert.Contains(t, stub.script, "dom.GetObject(4711)")
}

func TestCheckError(t *testing.T) {
	assert.NoError(t, checkError("OK\n"))
	assert.NoError(t, checkError("  OK  \nERROR:later lines ignored\n"))
	assert.Error(t, checkError("ERROR:boom\n"))
	assert.Error(t, checkError("  ERROR:leading space trimmed\n"))
}
