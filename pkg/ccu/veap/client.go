// Package veap talks to the CCU-Jack REST API (VEAP protocol).
//
// https://github.com/mdzio/ccu-jack/wiki/CURL
package veap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-logr/logr"

	"github.com/ccu-tools/ccuctl/pkg/ccu/config"
)

// Process values travel in a {"v": ...} wrapper.
type pv struct {
	V any `json:"v"`
}

// Link is a VEAP collection entry as returned by listing endpoints.
type Link struct {
	Rel   string `json:"rel,omitempty" yaml:"rel,omitempty"`
	Href  string `json:"href" yaml:"href"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

// StatusError is returned for non-2xx replies.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Code)
}

// Client is a CCU-Jack VEAP client.
type Client struct {
	cfg  *config.Config
	http *http.Client
}

// NewClient returns a client for the CCU-Jack instance named by cfg.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	log := logr.FromContextOrDiscard(ctx)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL()+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.HasAuth() {
		req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	}

	log.V(1).Info("VEAP request", "method", method, "path", path)

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &StatusError{Method: method, Path: path, Code: res.StatusCode}
	}

	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil && err != io.EOF {
			return fmt.Errorf("decoding %s reply: %w", path, err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) put(ctx context.Context, path string, body any) error {
	return c.do(ctx, http.MethodPut, path, body, nil)
}

func (c *Client) links(ctx context.Context, path string) ([]Link, error) {
	var reply struct {
		Links []Link `json:"links"`
	}
	if err := c.get(ctx, path, &reply); err != nil {
		return nil, err
	}
	return reply.Links, nil
}

// VendorInfo returns the CCU-Jack vendor document.
func (c *Client) VendorInfo(ctx context.Context) (map[string]any, error) {
	var info map[string]any
	if err := c.get(ctx, "/~vendor", &info); err != nil {
		return nil, err
	}
	return info, nil
}

// ListDevices lists all devices known to CCU-Jack.
func (c *Client) ListDevices(ctx context.Context) ([]Link, error) {
	return c.links(ctx, "/device/~pv")
}

// GetDevice returns the device document including its channels.
func (c *Client) GetDevice(ctx context.Context, serial string) (map[string]any, error) {
	var dev map[string]any
	if err := c.get(ctx, fmt.Sprintf("/device/%s/~pv", serial), &dev); err != nil {
		return nil, err
	}
	return dev, nil
}

// GetChannel returns a channel document including its datapoints.
func (c *Client) GetChannel(ctx context.Context, serial string, channel int) (map[string]any, error) {
	var ch map[string]any
	if err := c.get(ctx, fmt.Sprintf("/device/%s/%d/~pv", serial, channel), &ch); err != nil {
		return nil, err
	}
	return ch, nil
}

// GetDatapoint reads a datapoint value.
func (c *Client) GetDatapoint(ctx context.Context, serial string, channel int, datapoint string) (any, error) {
	var reply pv
	path := fmt.Sprintf("/device/%s/%d/%s/~pv", serial, channel, datapoint)
	if err := c.get(ctx, path, &reply); err != nil {
		return nil, err
	}
	return reply.V, nil
}

// SetDatapoint writes a datapoint value.
func (c *Client) SetDatapoint(ctx context.Context, serial string, channel int, datapoint string, value any) error {
	path := fmt.Sprintf("/device/%s/%d/%s/~pv", serial, channel, datapoint)
	return c.put(ctx, path, pv{V: value})
}

// GetMaster reads a channel's MASTER (configuration) paramset.
func (c *Client) GetMaster(ctx context.Context, serial string, channel int) (map[string]any, error) {
	var params map[string]any
	path := fmt.Sprintf("/device/%s/%d/$MASTER/~pv", serial, channel)
	if err := c.get(ctx, path, &params); err != nil {
		return nil, err
	}
	return params, nil
}

// SetMaster writes MASTER paramset entries. Only the given keys are
// touched; the device keeps the rest.
func (c *Client) SetMaster(ctx context.Context, serial string, channel int, params map[string]any) error {
	path := fmt.Sprintf("/device/%s/%d/$MASTER/~pv", serial, channel)
	return c.put(ctx, path, params)
}

// ListSysvars lists all system variables.
func (c *Client) ListSysvars(ctx context.Context) ([]Link, error) {
	return c.links(ctx, "/sysvar/~pv")
}

// GetSysvar reads a system variable value.
func (c *Client) GetSysvar(ctx context.Context, name string) (any, error) {
	var reply pv
	if err := c.get(ctx, fmt.Sprintf("/sysvar/%s/~pv", name), &reply); err != nil {
		return nil, err
	}
	return reply.V, nil
}

// SetSysvar writes a system variable value.
func (c *Client) SetSysvar(ctx context.Context, name string, value any) error {
	return c.put(ctx, fmt.Sprintf("/sysvar/%s/~pv", name), pv{V: value})
}

// ListPrograms lists all ReGa programs.
func (c *Client) ListPrograms(ctx context.Context) ([]Link, error) {
	return c.links(ctx, "/program/~pv")
}

// GetProgram returns a program document.
func (c *Client) GetProgram(ctx context.Context, name string) (map[string]any, error) {
	var prog map[string]any
	if err := c.get(ctx, fmt.Sprintf("/program/%s/~pv", name), &prog); err != nil {
		return nil, err
	}
	return prog, nil
}

// RunProgram triggers execution of a program.
func (c *Client) RunProgram(ctx context.Context, name string) error {
	return c.put(ctx, fmt.Sprintf("/program/%s/~pv", name), pv{V: true})
}
