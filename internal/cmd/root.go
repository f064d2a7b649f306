// Package cmd implements the hashmapper command line.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"hash-mapper/internal/flags/log"
	"hash-mapper/mapper"
)

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := New().Execute(); err != nil {
		os.Exit(1)
	}
}

// New builds the hashmapper command tree.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hashmapper [sub-command]",
		Short: "Convert documents between canonical and wire shapes",
		Long: `hashmapper converts JSON and YAML documents between a canonical shape and a
wire shape using one declarative rule file. The same rules run in both
directions: normalize turns canonical documents into wire documents and
denormalize turns them back.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		DisableAutoGenTag: true,
		SilenceUsage:      true,
	}

	log.RegisterLoggingFlags(cmd.PersistentFlags())

	cmd.AddCommand(newTransformCommand(mapper.DirectionNormalize))
	cmd.AddCommand(newTransformCommand(mapper.DirectionDenormalize))
	cmd.AddCommand(newCheckCommand())
	cmd.AddCommand(newVersionCommand())

	return cmd
}
