package hmrpc

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccu-tools/ccuctl/pkg/ccu/config"
)

// rpcStub replies with a canned methodResponse and records request bodies.
type rpcStub struct {
	reply   string
	request string
}

func (s *rpcStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		s.request = string(body)
		w.Header().Set("Content-Type", "text/xml")
		io.WriteString(w, s.reply)
	}
}

func newTestClient(t *testing.T, stub *rpcStub) *Client {
	t.Helper()
	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)

	c := NewClient(&config.Config{Host: "unused"}, InterfaceHmIPRF)
	c.urlOverride = srv.URL
	t.Cleanup(func() { c.Close() })
	return c
}

const linksReply = `<?xml version="1.0"?>
<methodResponse><params><param><value><array><data>
<value><struct>
<member><name>SENDER</name><value><string>AAA:1</string></value></member>
<member><name>RECEIVER</name><value><string>BBB:4</string></value></member>
<member><name>NAME</name><value><string>Hall switch</string></value></member>
<member><name>DESCRIPTION</name><value><string></string></value></member>
</struct></value>
</data></array></value></param></params></methodResponse>`

func TestGetLinks(t *testing.T) {
	stub := &rpcStub{reply: linksReply}
	client := newTestClient(t, stub)

	links, err := client.GetLinks(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "AAA:1", links[0].Sender)
	assert.Equal(t, "BBB:4", links[0].Receiver)
	assert.Equal(t, "Hall switch", links[0].Name)

	assert.Contains(t, stub.request, "<methodName>getLinks</methodName>")
}

func TestGetLinkPeers(t *testing.T) {
	stub := &rpcStub{reply: `<?xml version="1.0"?>
<methodResponse><params><param><value><array><data>
<value><string>BBB:4</string></value>
<value><string>CCC:2</string></value>
</data></array></value></param></params></methodResponse>`}
	client := newTestClient(t, stub)

	peers, err := client.GetLinkPeers(context.Background(), "AAA:1")
	require.NoError(t, err)
	assert.Equal(t, []string{"BBB:4", "CCC:2"}, peers)
	assert.Contains(t, stub.request, "AAA:1")
}

func TestGetLinkInfoUnknownLink(t *testing.T) {
	stub := &rpcStub{reply: `<?xml version="1.0"?>
<methodResponse><fault><value><struct>
<member><name>faultCode</name><value><int>-2</int></value></member>
<member><name>faultString</name><value><string>Unknown Link</string></value></member>
</struct></value></fault></methodResponse>`}
	client := newTestClient(t, stub)

	info, err := client.GetLinkInfo(context.Background(), "AAA:1", "BBB:4")
	require.NoError(t, err)
	assert.Nil(t, info, "missing link reported as absence, not error")
}

func TestGetLinkInfoFault(t *testing.T) {
	stub := &rpcStub{reply: `<?xml version="1.0"?>
<methodResponse><fault><value><struct>
<member><name>faultCode</name><value><int>-1</int></value></member>
<member><name>faultString</name><value><string>Invalid device</string></value></member>
</struct></value></fault></methodResponse>`}
	client := newTestClient(t, stub)

	_, err := client.GetLinkInfo(context.Background(), "AAA:1", "BBB:4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid device")
}

func TestGetParamset(t *testing.T) {
	stub := &rpcStub{reply: `<?xml version="1.0"?>
<methodResponse><params><param><value><struct>
<member><name>P1_ENDTIME_MONDAY_1</name><value><int>360</int></value></member>
<member><name>TEMPERATURE_COMFORT</name><value><double>21.0</double></value></member>
</struct></value></param></params></methodResponse>`}
	client := newTestClient(t, stub)

	params, err := client.GetParamset(context.Background(), "AAA:1", "MASTER")
	require.NoError(t, err)
	assert.Equal(t, int64(360), params["P1_ENDTIME_MONDAY_1"])
	assert.Equal(t, 21.0, params["TEMPERATURE_COMFORT"])
	assert.Contains(t, stub.request, "<methodName>getParamset</methodName>")
	assert.Contains(t, stub.request, "MASTER")
}

func TestSetLinkParamset(t *testing.T) {
	stub := &rpcStub{reply: `<?xml version="1.0"?>
<methodResponse><params><param><value><string></string></value></param></params></methodResponse>`}
	client := newTestClient(t, stub)

	err := client.SetLinkParamset(context.Background(), "AAA:1", "BBB:4",
		map[string]any{"SHORT_DRIVING_MODE": 1})
	require.NoError(t, err)
	assert.Contains(t, stub.request, "<methodName>putParamset</methodName>")
	assert.Contains(t, stub.request, "SHORT_DRIVING_MODE")
}

func TestPortSelection(t *testing.T) {
	cfg := &config.Config{Host: "ccu"}
	assert.Equal(t, 2001, NewClient(cfg, InterfaceBidCosRF).Port())
	assert.Equal(t, 2010, NewClient(cfg, InterfaceHmIPRF).Port())
	assert.Equal(t, 2010, NewClient(cfg, "Other").Port())
}
