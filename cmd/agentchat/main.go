package main

import (
	"github.com/spf13/cobra"
)

func main() {
	var root = &cobra.Command{Use: "agentchat"}

	root.AddCommand(serveCMD(), toolsCMD())
	_ = root.Execute()
}
