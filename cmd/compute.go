// File: cmd/compute.go
package cmd

import (
	"context"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/scroll-align/api/schemas"
	"github.com/xkilldash9x/scroll-align/internal/config"
	"github.com/xkilldash9x/scroll-align/internal/observability"
	"github.com/xkilldash9x/scroll-align/internal/scroll"
	"github.com/xkilldash9x/scroll-align/internal/snapshot"
)

// computeOutput is the line printed for each snapshot file.
type computeOutput struct {
	File       string              `json:"file"`
	SnapshotID string              `json:"snapshotId,omitempty"`
	Chain      []string            `json:"chain"`
	Delta      schemas.ScrollDelta `json:"delta"`
}

// newComputeCmd creates and configures the `compute` command.
func newComputeCmd() *cobra.Command {
	var boundaryID string

	computeCmd := &cobra.Command{
		Use:   "compute [files...]",
		Short: "Computes scroll deltas for recorded geometry snapshots",
		Long: `Loads each snapshot file (.json, .yaml or .yml), computes the delta that
scrolls its target into view and prints one JSON object per file, in the
order the files were given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			applyScrollFlagOverrides(cmd, cfg)

			return runCompute(ctx, logger, cfg, args, boundaryID, cmd.OutOrStdout())
		},
	}

	addScrollFlags(computeCmd)
	computeCmd.Flags().StringVar(&boundaryID, "boundary", "", "Node id the ancestor walk must not leave (overrides the snapshot's own boundary)")
	return computeCmd
}

// addScrollFlags registers the alignment flags shared by compute and capture.
// Unset flags fall back to the scroll section of the configuration.
func addScrollFlags(cmd *cobra.Command) {
	cmd.Flags().String("block", "", "Vertical alignment: start, center, end or nearest")
	cmd.Flags().String("inline", "", "Horizontal alignment: start, center, end or nearest")
	cmd.Flags().String("mode", "", "Scroll mode: always or if-needed")
	cmd.Flags().Bool("skip-hidden", false, "Treat overflow:hidden containers as not scrollable")
}

// applyScrollFlagOverrides copies explicitly set alignment flags into cfg.
func applyScrollFlagOverrides(cmd *cobra.Command, cfg config.Interface) {
	flags := cmd.Flags()
	if flags.Changed("block") {
		v, _ := flags.GetString("block")
		cfg.SetScrollBlock(v)
	}
	if flags.Changed("inline") {
		v, _ := flags.GetString("inline")
		cfg.SetScrollInline(v)
	}
	if flags.Changed("mode") {
		v, _ := flags.GetString("mode")
		cfg.SetScrollMode(v)
	}
	if flags.Changed("skip-hidden") {
		v, _ := flags.GetBool("skip-hidden")
		cfg.SetScrollSkipOverflowHidden(v)
	}
}

// runCompute processes files concurrently, bounded by the engine worker
// limit, and writes the results in input order. The first failure cancels
// the remaining work.
func runCompute(
	ctx context.Context,
	logger *zap.Logger,
	cfg config.Interface,
	files []string,
	boundaryID string,
	out io.Writer,
) error {
	opts, err := cfg.Scroll().Options()
	if err != nil {
		return fmt.Errorf("invalid scroll options: %w", err)
	}

	results := make([]computeOutput, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Engine().WorkerConcurrency)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := computeFile(file, boundaryID, opts)
			if err != nil {
				return err
			}
			logger.Debug("Computed scroll delta.",
				zap.String("file", file),
				zap.Bool("scrolled", res.Delta.Scrolled),
				zap.Float64("top", res.Delta.Top),
				zap.Float64("left", res.Delta.Left),
			)
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	enc := jsoniter.NewEncoder(out)
	for _, res := range results {
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("failed to write result for %s: %w", res.File, err)
		}
	}
	return nil
}

// computeFile loads one snapshot and computes its delta and chain.
func computeFile(file, boundaryID string, opts scroll.Options) (computeOutput, error) {
	doc, err := snapshot.Load(file)
	if err != nil {
		return computeOutput{}, err
	}

	if boundaryID != "" {
		node, ok := doc.Node(boundaryID)
		if !ok {
			return computeOutput{}, fmt.Errorf("%s: boundary %q is not a node in the snapshot", file, boundaryID)
		}
		opts.Boundary = scroll.StopAt(node)
	} else if node, ok := doc.Boundary(); ok {
		opts.Boundary = scroll.StopAt(node)
	}

	result, err := doc.Compute(opts)
	if err != nil {
		return computeOutput{}, fmt.Errorf("%s: %w", file, err)
	}

	target, _ := doc.Target()
	chain := []string{}
	for _, el := range scroll.CollectScrollingAncestors(doc, target, opts) {
		chain = append(chain, nodeName(el))
	}

	return computeOutput{
		File:       file,
		SnapshotID: doc.ID(),
		Chain:      chain,
		Delta:      snapshot.ToDelta(result),
	}, nil
}

func nodeName(el scroll.Element) string {
	if n, ok := el.(*snapshot.Node); ok {
		return n.ID()
	}
	return fmt.Sprint(el)
}
