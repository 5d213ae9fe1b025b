// Package options holds the flags and helpers shared by all ccuctl
// commands.
package options

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"gopkg.in/yaml.v3"

	"github.com/ccu-tools/ccuctl/pkg/ccu/config"
)

const CommandDefaultTimeout = 30 * time.Second

var Flags struct {
	Verbose bool
	Debug   bool
	Quiet   bool
	Json    bool
	Timeout time.Duration // the value taken by --timeout / -t
}

var cfg *config.Config

// CCUConfig loads the connection configuration once per invocation.
func CCUConfig() (*config.Config, error) {
	if cfg != nil {
		return cfg, nil
	}
	loaded, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg = loaded
	return cfg, nil
}

// CommandLineContext derives the context commands run under: cancelled on
// SIGINT/SIGTERM and bounded by --timeout when one is set.
func CommandLineContext(ctx context.Context) context.Context {
	var cancel context.CancelFunc
	if Flags.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, Flags.Timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	go func() {
		log := logr.FromContextOrDiscard(ctx)
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, os.Interrupt)
		signal.Notify(signals, syscall.SIGTERM)
		<-signals
		log.Info("Received signal")
		cancel()
	}()
	return ctx
}

// PrintResult writes out as JSON with --json, YAML otherwise.
func PrintResult(out any) error {
	if Flags.Json {
		s, err := json.Marshal(out)
		if err != nil {
			return err
		}
		fmt.Println(string(s))
	} else {
		s, err := yaml.Marshal(out)
		if err != nil {
			return err
		}
		fmt.Print(string(s))
	}
	return nil
}

// ParseChannelAddress splits a "<serial>:<channel>" address.
func ParseChannelAddress(address string) (string, int, error) {
	serial, ch, ok := strings.Cut(address, ":")
	if !ok {
		return "", 0, fmt.Errorf("invalid channel address %q (expected <serial>:<channel>)", address)
	}
	channel, err := strconv.Atoi(ch)
	if err != nil {
		return "", 0, fmt.Errorf("invalid channel address %q (expected <serial>:<channel>)", address)
	}
	return serial, channel, nil
}

// ParseDatapointPath splits a "<serial>:<channel>/<datapoint>" path.
func ParseDatapointPath(path string) (string, int, string, error) {
	channelPart, datapoint, ok := strings.Cut(path, "/")
	if !ok || datapoint == "" {
		return "", 0, "", fmt.Errorf("invalid datapoint path %q (expected <serial>:<channel>/<datapoint>)", path)
	}
	serial, channel, err := ParseChannelAddress(channelPart)
	if err != nil {
		return "", 0, "", fmt.Errorf("invalid datapoint path %q (expected <serial>:<channel>/<datapoint>)", path)
	}
	return serial, channel, datapoint, nil
}

// ParseValue guesses the wire type of a user-supplied scalar: bool, then
// int, then float, falling back to the raw string.
func ParseValue(s string) any {
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
