package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hamedsh/agentchat/config"
	"github.com/hamedsh/agentchat/internal/server"
)

func toolsCMD() *cobra.Command {
	var cfgPath string
	var list = &cobra.Command{
		Use:   "tools",
		Short: "List the tools available with the current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			registry, err := server.BuildRegistry(cfg)
			if err != nil {
				return err
			}
			for _, t := range registry.List() {
				fmt.Printf("%s\n  %s\n", t.Name(), t.Description())
				for _, p := range t.Parameters() {
					required := ""
					if p.Required {
						required = " (required)"
					}
					fmt.Printf("  - %s: %s%s\n", p.Name, p.Type, required)
				}
			}
			return nil
		},
	}
	list.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")

	return list
}
