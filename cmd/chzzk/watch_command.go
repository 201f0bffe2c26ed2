package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/usestring/chzzk-go/internal/config"
	"github.com/usestring/chzzk-go/pkg/chzzk"
)

// watchEvent is emitted whenever a channel's live status changes.
type watchEvent struct {
	At                  time.Time            `json:"at"`
	ChannelID           string               `json:"channelId"`
	Previous            chzzk.LiveStatusType `json:"previous,omitempty"`
	Status              chzzk.LiveStatusType `json:"status"`
	LiveTitle           string               `json:"liveTitle"`
	ConcurrentUserCount uint64               `json:"concurrentUserCount"`
}

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var jqExpr string
	var count int

	cmd := &cobra.Command{
		Use:   "watch <channel-id>",
		Short: "Poll a channel's live status and report OPEN/CLOSE changes",
		Long: "Poll a channel's live status until interrupted. The poll interval follows the\n" +
			"server's callPeriodMilliSecond, raised to watch.min_interval_ms when shorter.",
		Args: cobra.ExactArgs(1),
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

			format := ctx.output(cmd)
			emit := func(ev watchEvent) error {
				switch {
				case filter != nil:
					res, err := filter.Apply(ev)
					if err != nil {
						return err
					}
					return writeJQ(cmd, res)
				case format == outputTable:
					_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s  %-5s  %s (%s viewers)\n",
						ev.At.Format(time.RFC3339), ev.Status, ev.LiveTitle, formatCount(ev.ConcurrentUserCount))
					return err
				default:
					return json.NewEncoder(cmd.OutOrStdout()).Encode(ev)
				}
			}

			w := &watcher{
				client:    client,
				auth:      cfg.AuthOrNil(),
				cfg:       cfg,
				channelID: args[0],
				maxPolls:  count,
				emit:      emit,
			}
			err = w.run(cmd.Context())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&jqExpr, "jq", "", "jq filter applied to each change event")
	cmd.Flags().IntVar(&count, "count", 0, "Stop after this many polls (0 = until interrupted)")
	return cmd
}

type watcher struct {
	client    *chzzk.Client
	auth      *chzzk.Auth
	cfg       *config.Config
	channelID string
	maxPolls  int
	emit      func(watchEvent) error
}

func (w *watcher) run(ctx context.Context) error {
	var previous chzzk.LiveStatusType

	for polls := 1; ; polls++ {
		wait := w.cfg.WatchInterval(0)

		status, err := w.client.GetLiveStatus(ctx, w.channelID, w.auth)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if !retryable(err) {
				return err
			}
			slog.Warn("live status poll failed, retrying",
				slog.String("channel", w.channelID),
				slog.Duration("wait", wait),
				slog.Any("error", err))
		default:
			wait = w.cfg.WatchInterval(status.LivePollingStatus.CallPeriod())
			if status.Status != previous {
				slog.Info("live status changed",
					slog.String("channel", w.channelID),
					slog.String("from", string(previous)),
					slog.String("to", string(status.Status)))
				if err := w.emit(watchEvent{
					At:                  time.Now().UTC(),
					ChannelID:           w.channelID,
					Previous:            previous,
					Status:              status.Status,
					LiveTitle:           status.LiveTitle,
					ConcurrentUserCount: status.ConcurrentUserCount,
				}); err != nil {
					return err
				}
				previous = status.Status
			}
			slog.Debug("live status polled",
				slog.String("channel", w.channelID),
				slog.String("status", string(status.Status)),
				slog.Duration("next", wait))
		}

		if w.maxPolls > 0 && polls >= w.maxPolls {
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// retryable reports whether a poll failure is worth another attempt on the
// next tick. Network failures and server-side statuses are; bad channel IDs
// and undecodable bodies are not.
func retryable(err error) bool {
	var transportErr *chzzk.TransportError
	if errors.As(err, &transportErr) {
		return true
	}
	var undefined *chzzk.UndefinedError
	if errors.As(err, &undefined) {
		return undefined.StatusCode >= http.StatusInternalServerError || undefined.StatusCode == http.StatusTooManyRequests
	}
	return false
}
