package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/memorylane-care/memorylane/internal/game"
)

var fillersCmd = &cobra.Command{
	Use:   "fillers",
	Short: "Print the built-in filler names used to pad quiz options",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range game.DefaultFillers {
			fmt.Println(name)
		}
	},
}
