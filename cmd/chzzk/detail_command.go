package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/usestring/chzzk-go/pkg/chzzk"
)

func newDetailCommand(ctx *commandContext) *cobra.Command {
	var jqExpr string

	cmd := &cobra.Command{
		Use:   "detail <channel-id>",
		Short: "Show live detail for a channel",
		Args:  cobra.ExactArgs(1),
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

			detail, err := client.GetLiveDetail(cmd.Context(), args[0], cfg.AuthOrNil())
			if err != nil {
				return err
			}

			switch {
			case filter != nil:
				res, err := filter.Apply(detail)
				if err != nil {
					return err
				}
				return writeJQ(cmd, res)
			case ctx.output(cmd) == outputTable:
				fmt.Fprintln(cmd.OutOrStdout(), renderDetail(detail))
				return nil
			default:
				return writeJSON(cmd, detail)
			}
		},
	}

	cmd.Flags().StringVar(&jqExpr, "jq", "", "jq filter applied to the live detail")
	return cmd
}

func renderDetail(d *chzzk.LiveDetail) string {
	closed := "-"
	if d.CloseDate != nil {
		closed = *d.CloseDate
	}
	adultStatus := "-"
	if d.UserAdultStatus != nil {
		adultStatus = string(*d.UserAdultStatus)
	}

	fields := [][2]string{
		{"Channel", fmt.Sprintf("%s (%s)", d.Channel.ChannelName, d.Channel.ChannelID)},
		{"Title", d.LiveTitle},
		{"Status", string(d.Status)},
		{"Live ID", fmt.Sprintf("%d", d.LiveID)},
		{"Category", valueOrDash(d.LiveCategoryValue)},
		{"Viewers", formatCount(d.ConcurrentUserCount)},
		{"Total viewers", formatCount(d.AccumulateCount)},
		{"Opened", d.OpenDate},
		{"Closed", closed},
		{"Adult", yesNo(d.Adult)},
		{"Viewer adult status", adultStatus},
		{"Chat", fmt.Sprintf("%s (%s, %s)", yesNo(d.ChatActive), d.ChatAvailableGroup, d.ChatAvailableCondition)},
		{"Polling", fmt.Sprintf("%s every %s", d.LivePollingStatus.Status, d.LivePollingStatus.CallPeriod())},
	}

	out := renderFields(fields)
	if d.LivePlayback == nil {
		return out
	}
	return out + "\n" + renderTracks(d.LivePlayback)
}

func renderTracks(p *chzzk.LivePlayback) string {
	headers := []string{"Media", "Track", "Video", "Resolution", "FPS", "Bitrate"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight}

	var rows [][]string
	for _, m := range p.Media {
		for _, t := range m.EncodingTrack {
			if !t.IsVideo() {
				rows = append(rows, []string{m.MediaID, t.EncodingTrackID, "audio only", "-", "-", formatCount(t.AudioBitRate)})
				continue
			}
			rows = append(rows, []string{
				m.MediaID,
				t.EncodingTrackID,
				strings.TrimSpace(t.VideoCodec + " " + t.VideoProfile),
				fmt.Sprintf("%dx%d", t.VideoWidth, t.VideoHeight),
				fmt.Sprintf("%g", float64(t.VideoFrameRate)),
				formatCount(t.VideoBitRate),
			})
		}
	}
	return renderTable(headers, rows, aligns)
}
