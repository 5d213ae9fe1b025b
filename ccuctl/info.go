package main

import (
	"github.com/spf13/cobra"

	"github.com/ccu-tools/ccuctl/ccuctl/options"
	"github.com/ccu-tools/ccuctl/pkg/ccu/veap"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show CCU-Jack vendor information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := options.CCUConfig()
		if err != nil {
			return err
		}

		info, err := veap.NewClient(cfg).VendorInfo(cmd.Context())
		if err != nil {
			return err
		}
		return options.PrintResult(info)
	},
}
