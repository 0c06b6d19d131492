package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mtlxbridge/mtlxbridge/pkg/mtlxdoc"
	"github.com/mtlxbridge/mtlxbridge/pkg/schema"
	"github.com/mtlxbridge/mtlxbridge/pkg/validate"
)

// validateCommand creates the validate command for standalone .mtlx checks.
func (c *CLI) validateCommand() *cobra.Command {
	var warningsAsErrors bool

	cmd := &cobra.Command{
		Use:   "validate <file.mtlx>",
		Short: "Check a MaterialX document against the node schema",
		Long: `Check a MaterialX document against the node schema.

The validator reports structural problems (dangling references, type
mismatches, unknown node categories) as errors and style findings
(unbound required inputs, disconnected nodes) as warnings. The exit
status is non-zero when the document has errors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(args[0], warningsAsErrors)
		},
	}

	cmd.Flags().BoolVar(&warningsAsErrors, "warnings-as-errors", false, "treat warnings as errors")

	return cmd
}

func (c *CLI) runValidate(path string, warningsAsErrors bool) error {
	doc, err := mtlxdoc.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	report := validate.Validate(doc, schema.Default())

	for _, item := range report.Errors {
		printError("%s", item)
	}
	for _, item := range report.Warnings {
		printWarning("%s", item)
	}

	switch {
	case !report.OK():
		return fmt.Errorf("%s: %d error(s)", path, len(report.Errors))
	case warningsAsErrors && len(report.Warnings) > 0:
		return fmt.Errorf("%s: %d warning(s)", path, len(report.Warnings))
	case len(report.Warnings) > 0:
		printInfo("%s is valid (%d warnings)", path, len(report.Warnings))
	default:
		printSuccess("%s is valid", path)
	}
	return nil
}
