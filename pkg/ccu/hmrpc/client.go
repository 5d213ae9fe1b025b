// Package hmrpc speaks the CCU's legacy XML-RPC API, which is the only
// surface for managing direct device links (Direktverknuepfungen).
//
// Interfaces and ports:
//   - BidCos-RF on 2001 for legacy HomeMatic devices
//   - HmIP-RF on 2010 for HomeMatic IP devices
package hmrpc

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/kolo/xmlrpc"

	"github.com/ccu-tools/ccuctl/pkg/ccu/config"
)

const (
	InterfaceBidCosRF = "BidCos-RF"
	InterfaceHmIPRF   = "HmIP-RF"

	portBidCosRF = 2001
	portHmIPRF   = 2010
)

// DeviceLink is a direct sender/receiver association between two channels.
type DeviceLink struct {
	Sender      string `xmlrpc:"SENDER" json:"sender" yaml:"sender"`
	Receiver    string `xmlrpc:"RECEIVER" json:"receiver" yaml:"receiver"`
	Name        string `xmlrpc:"NAME" json:"name" yaml:"name"`
	Description string `xmlrpc:"DESCRIPTION" json:"description" yaml:"description"`
}

// LinkInfo carries the link metadata returned by getLinkInfo.
type LinkInfo struct {
	Sender      string `xmlrpc:"SENDER" json:"sender" yaml:"sender"`
	Receiver    string `xmlrpc:"RECEIVER" json:"receiver" yaml:"receiver"`
	Name        string `xmlrpc:"NAME" json:"name" yaml:"name"`
	Description string `xmlrpc:"DESCRIPTION" json:"description" yaml:"description"`
	Flags       int    `xmlrpc:"FLAGS" json:"flags" yaml:"flags"`
}

// Client is an XML-RPC client bound to one CCU interface.
type Client struct {
	cfg   *config.Config
	iface string
	proxy *xmlrpc.Client

	// urlOverride replaces the derived endpoint in tests.
	urlOverride string
}

// NewClient returns a client for the given interface, InterfaceBidCosRF or
// InterfaceHmIPRF. Anything else defaults to the HmIP-RF port.
func NewClient(cfg *config.Config, iface string) *Client {
	return &Client{cfg: cfg, iface: iface}
}

// Port returns the XML-RPC port of the selected interface.
func (c *Client) Port() int {
	if c.iface == InterfaceBidCosRF {
		return portBidCosRF
	}
	return portHmIPRF
}

func (c *Client) url() string {
	if c.urlOverride != "" {
		return c.urlOverride
	}
	scheme := "http"
	if c.cfg.HTTPS {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, c.cfg.Host, c.Port())
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c.proxy == nil {
		return nil
	}
	err := c.proxy.Close()
	c.proxy = nil
	return err
}

func (c *Client) call(ctx context.Context, method string, args []any, reply any) error {
	log := logr.FromContextOrDiscard(ctx)

	if c.proxy == nil {
		proxy, err := xmlrpc.NewClient(c.url(), nil)
		if err != nil {
			return fmt.Errorf("connecting to %s: %w", c.url(), err)
		}
		c.proxy = proxy
	}

	log.V(1).Info("XML-RPC call", "interface", c.iface, "method", method)
	return c.proxy.Call(method, args, reply)
}

// GetLinks lists device links. An empty address lists every link known to
// the interface.
func (c *Client) GetLinks(ctx context.Context, address string) ([]DeviceLink, error) {
	var links []DeviceLink
	if err := c.call(ctx, "getLinks", []any{address, 0}, &links); err != nil {
		return nil, fmt.Errorf("failed to get links: %w", err)
	}
	return links, nil
}

// GetLinkPeers lists the peer addresses linked to a channel.
func (c *Client) GetLinkPeers(ctx context.Context, address string) ([]string, error) {
	var peers []string
	if err := c.call(ctx, "getLinkPeers", []any{address}, &peers); err != nil {
		return nil, fmt.Errorf("failed to get link peers: %w", err)
	}
	return peers, nil
}

// AddLink creates a direct link between a sender and a receiver channel.
func (c *Client) AddLink(ctx context.Context, sender, receiver, name, description string) error {
	if err := c.call(ctx, "addLink", []any{sender, receiver, name, description}, nil); err != nil {
		return fmt.Errorf("failed to add link: %w", err)
	}
	return nil
}

// RemoveLink deletes a direct link.
func (c *Client) RemoveLink(ctx context.Context, sender, receiver string) error {
	if err := c.call(ctx, "removeLink", []any{sender, receiver}, nil); err != nil {
		return fmt.Errorf("failed to remove link: %w", err)
	}
	return nil
}

// GetLinkInfo returns link metadata, or nil when the link does not exist.
func (c *Client) GetLinkInfo(ctx context.Context, sender, receiver string) (*LinkInfo, error) {
	var info LinkInfo
	if err := c.call(ctx, "getLinkInfo", []any{sender, receiver}, &info); err != nil {
		// The CCU reports a missing link as a fault, not an empty reply.
		if strings.Contains(err.Error(), "Unknown Link") {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get link info: %w", err)
	}
	if info.Sender == "" {
		info.Sender = sender
	}
	if info.Receiver == "" {
		info.Receiver = receiver
	}
	return &info, nil
}

// GetParamset reads a paramset (MASTER, VALUES, LINK, ...) for a channel.
func (c *Client) GetParamset(ctx context.Context, address, paramsetKey string) (map[string]any, error) {
	var params map[string]any
	if err := c.call(ctx, "getParamset", []any{address, paramsetKey}, &params); err != nil {
		return nil, fmt.Errorf("failed to get paramset: %w", err)
	}
	return params, nil
}

// GetLinkParamset reads the LINK paramset the sender holds for a receiver.
func (c *Client) GetLinkParamset(ctx context.Context, sender, receiver string) (map[string]any, error) {
	var params map[string]any
	if err := c.call(ctx, "getParamset", []any{sender, receiver}, &params); err != nil {
		return nil, fmt.Errorf("failed to get link paramset: %w", err)
	}
	return params, nil
}

// SetLinkParamset writes LINK paramset entries for a sender/receiver pair.
func (c *Client) SetLinkParamset(ctx context.Context, sender, receiver string, params map[string]any) error {
	if err := c.call(ctx, "putParamset", []any{sender, receiver, params}, nil); err != nil {
		return fmt.Errorf("failed to set link paramset: %w", err)
	}
	return nil
}

// ListDevices lists the device descriptions known to the interface.
func (c *Client) ListDevices(ctx context.Context) ([]map[string]any, error) {
	var devices []map[string]any
	if err := c.call(ctx, "listDevices", nil, &devices); err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	return devices, nil
}

// GetDeviceDescription returns the description of a device or channel.
func (c *Client) GetDeviceDescription(ctx context.Context, address string) (map[string]any, error) {
	var desc map[string]any
	if err := c.call(ctx, "getDeviceDescription", []any{address}, &desc); err != nil {
		return nil, fmt.Errorf("failed to get device description: %w", err)
	}
	return desc, nil
}
