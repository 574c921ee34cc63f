package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = `0.1.0`

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   `version`,
		Short: `Print pgfraggen's version`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(version)
			return nil
		},
	}
}
