package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"hash-mapper/internal/mapping"
)

const FlagPrint = "print"

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a rule file",
		Long: `check parses a rule file and reports every problem it finds: bad paths,
unknown filters and delegates, invalid conflict policies and delegation
cycles. It exits non-zero when any error is reported.

With --print the rule file is echoed back after the checks, with defaults
filled in.`,
		Example: `hashmapper check --rules rules.yaml
hashmapper check --rules rules.yaml --print`,
		Args:    cobra.NoArgs,
		RunE:    runCheck,
	}

	cmd.Flags().String(FlagRules, "", "rule file to validate")
	_ = cmd.MarkFlagRequired(FlagRules)
	cmd.Flags().Bool(FlagPrint, false, "print the rule file with defaults applied")

	return cmd
}

func runCheck(cmd *cobra.Command, _ []string) error {
	path, err := cmd.Flags().GetString(FlagRules)
	if err != nil {
		return err
	}

	mf, err := mapping.LoadFile(path)
	if err != nil {
		return err
	}

	diags := mapping.Validate(mf, mapping.DefaultFilters())
	out := cmd.OutOrStdout()

	for _, d := range diags.All() {
		if _, err := fmt.Fprintf(out, "%s: %s\n", d.Severity, d); err != nil {
			return err
		}
	}

	if diags.HasErrors() {
		return fmt.Errorf("%s: %d error(s)", path, len(diags.Errors))
	}

	if _, err := fmt.Fprintf(out, "%s: ok (%d mappers, root %q)\n", path, len(mf.Mappers), mf.RootName()); err != nil {
		return err
	}

	echo, err := cmd.Flags().GetBool(FlagPrint)
	if err != nil || !echo {
		return err
	}

	data, err := mapping.Marshal(mf)
	if err != nil {
		return err
	}

	_, err = out.Write(data)

	return err
}
