package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/usestring/chzzk-go/pkg/chzzk"
)

// statusResult is one channel's lookup outcome.
type statusResult struct {
	ChannelID string            `json:"channelId"`
	Status    *chzzk.LiveStatus `json:"status,omitempty"`
	Error     string            `json:"error,omitempty"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jqExpr string

	cmd := &cobra.Command{
		Use:   "status <channel-id>...",
		Short: "Show live status for one or more channels",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := compileJQ(jqExpr)
			if err != nil {
				return err
			}
			client, err := ctx.apiClient()
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			results, err := fetchStatuses(cmd.Context(), client, cfg.AuthOrNil(), args, cfg.API.Concurrency)
			if err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if r.Error != "" {
					failed++
				}
			}

			switch {
			case filter != nil:
				labels := make([]string, len(results))
				inputs := make([]any, len(results))
				for i, r := range results {
					labels[i] = r.ChannelID
					inputs[i] = r
				}
				res, err := filter.ApplyLabeled(labels, inputs)
				if err != nil {
					return err
				}
				if err := writeJQ(cmd, res); err != nil {
					return err
				}
			case ctx.output(cmd) == outputTable:
				fmt.Fprintln(cmd.OutOrStdout(), renderStatusTable(results))
			default:
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d channel lookups failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&jqExpr, "jq", "", "jq filter applied to each result")
	return cmd
}

// fetchStatuses looks up every channel with at most limit requests in
// flight. Per-channel failures are recorded in the result; only context
// cancellation aborts the batch.
func fetchStatuses(ctx context.Context, client *chzzk.Client, auth *chzzk.Auth, channelIDs []string, limit int) ([]statusResult, error) {
	results := make([]statusResult, len(channelIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, id := range channelIDs {
		i, id := i, id // per-iteration copy; module builds with go 1.21 loop semantics
		g.Go(func() error {
			results[i].ChannelID = id
			status, err := client.GetLiveStatus(gctx, id, auth)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				slog.Warn("live status lookup failed", slog.String("channel", id), slog.Any("error", err))
				results[i].Error = err.Error()
				return nil
			}
			results[i].Status = status
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func renderStatusTable(results []statusResult) string {
	headers := []string{"Channel", "Status", "Title", "Category", "Viewers", "Total", "Polling"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		if r.Status == nil {
			rows = append(rows, []string{r.ChannelID, "ERROR", r.Error, "", "", "", ""})
			continue
		}
		s := r.Status
		rows = append(rows, []string{
			r.ChannelID,
			string(s.Status),
			s.LiveTitle,
			valueOrDash(s.LiveCategoryValue),
			formatCount(s.ConcurrentUserCount),
			formatCount(s.AccumulateCount),
			fmt.Sprintf("%s every %s", s.LivePollingStatus.Status, s.LivePollingStatus.CallPeriod()),
		})
	}
	return renderTable(headers, rows, aligns)
}
