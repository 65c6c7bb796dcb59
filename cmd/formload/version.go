// Version command for the formload CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dukaforge/formload/pkg/formload"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the formload version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("formload", formload.Version)
	},
}
