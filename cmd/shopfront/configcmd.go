package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/creamcroissant/shopfront/internal/config"
)

func init() {
	var configCmd = &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	var initPath string
	var initCmd = &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := initPath
			if path == "" {
				path = config.DefaultFilePath()
			}
			if err := config.WriteStarterFile(path); err != nil {
				return err
			}
			fmt.Printf("Config written to %s\n", path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&initPath, "path", "", "Target file (default: the user config dir)")
	configCmd.AddCommand(initCmd)

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			fmt.Printf("api.base_url: %s\n", cfg.API.BaseURL)
			fmt.Printf("api.timeout: %s\n", cfg.API.Timeout)
			fmt.Printf("log.level: %s\n", cfg.Log.Level)
			fmt.Printf("log.format: %s\n", cfg.Log.Format)
			fmt.Printf("state.path: %s\n", cfg.State.Path)
			fmt.Printf("cache.ttl: %s\n", cfg.Cache.TTL)
			fmt.Printf("payment.return_addr: %s\n", cfg.Payment.ReturnAddr)
			fmt.Printf("payment.wait_timeout: %s\n", cfg.Payment.WaitTimeout)
			return nil
		},
	})

	rootCmd.AddCommand(configCmd)
}
