package chzzk

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yosida95/uritemplate/v3"
)

var (
	liveStatusPath = uritemplate.MustNew("/polling/v2/channels/{channelId}/live-status")
	liveDetailPath = uritemplate.MustNew("/service/v2/channels/{channelId}/live-detail")
)

// GetLiveStatus requests the polling status of a channel's live.
type GetLiveStatus struct {
	ChannelID string
}

// Encode builds GET /polling/v2/channels/{channelId}/live-status.
func (g GetLiveStatus) Encode() (*Request, error) {
	path, err := ExpandPath(liveStatusPath, PathParams{"channelId": g.ChannelID})
	if err != nil {
		return nil, err
	}
	return &Request{
		BaseURL: DefaultBaseURL,
		Method:  http.MethodGet,
		Path:    path,
	}, nil
}

// Decode parses a live-status response.
func (GetLiveStatus) Decode(body []byte) (LiveStatus, error) {
	w, err := decodeContent[wireLiveStatus](body, schemas().liveStatus)
	if err != nil {
		return LiveStatus{}, err
	}
	return w.toPublic()
}

// GetLiveDetail requests the full detail of a channel's current or last live.
type GetLiveDetail struct {
	ChannelID string
}

// Encode builds GET /service/v2/channels/{channelId}/live-detail.
func (g GetLiveDetail) Encode() (*Request, error) {
	path, err := ExpandPath(liveDetailPath, PathParams{"channelId": g.ChannelID})
	if err != nil {
		return nil, err
	}
	return &Request{
		BaseURL: DefaultBaseURL,
		Method:  http.MethodGet,
		Path:    path,
	}, nil
}

// Decode parses a live-detail response.
func (GetLiveDetail) Decode(body []byte) (LiveDetail, error) {
	w, err := decodeContent[wireLiveDetail](body, schemas().liveDetail)
	if err != nil {
		return LiveDetail{}, err
	}
	return w.toPublic()
}

// GetLiveStatus retrieves the polling status of a channel's live.
// auth may be nil for an anonymous call.
func (c *Client) GetLiveStatus(ctx context.Context, channelID string, auth *Auth) (*LiveStatus, error) {
	status, err := Send[LiveStatus](ctx, c, GetLiveStatus{ChannelID: channelID}, auth)
	if err != nil {
		return nil, fmt.Errorf("getting live status for channel %q: %w", channelID, err)
	}
	return &status, nil
}

// GetLiveDetail retrieves the detail of a channel's current or last live.
// auth may be nil for an anonymous call.
func (c *Client) GetLiveDetail(ctx context.Context, channelID string, auth *Auth) (*LiveDetail, error) {
	detail, err := Send[LiveDetail](ctx, c, GetLiveDetail{ChannelID: channelID}, auth)
	if err != nil {
		return nil, fmt.Errorf("getting live detail for channel %q: %w", channelID, err)
	}
	return &detail, nil
}
