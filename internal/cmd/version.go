package cmd

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"hash-mapper/mapper"
)

// BuildVersion can be set at build time with
//
//	-ldflags "-X hash-mapper/internal/cmd.BuildVersion=1.2.3"
//
// and otherwise falls back to the library version.
var BuildVersion = ""

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the hashmapper version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := buildVersion()
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "hashmapper %s\n", v)

			return err
		},
	}
}

func buildVersion() (*semver.Version, error) {
	raw := BuildVersion
	if raw == "" {
		raw = mapper.Version
	}

	v, err := semver.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid build version %q: %w", raw, err)
	}

	return v, nil
}
