// File: cmd/convert.go
package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/scroll-align/internal/observability"
	"github.com/xkilldash9x/scroll-align/internal/snapshot"
)

// newConvertCmd creates the `convert` command.
func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Re-encodes a snapshot between JSON and YAML",
		Long: `Loads a snapshot, validates it, and writes it in the format implied by the
output file's extension.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := snapshot.Load(args[0])
			if err != nil {
				return err
			}
			if err := snapshot.Save(doc, args[1]); err != nil {
				return err
			}
			observability.GetLogger().Info("Snapshot converted.",
				zap.String("from", args[0]),
				zap.String("to", args[1]),
			)
			return nil
		},
	}
}
