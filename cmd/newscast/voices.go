package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/newscast/internal/synth"
)

func newVoicesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "voices",
		Short: "List the preset voices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), renderVoices(synth.Voices()))
			return nil
		},
	}
}
