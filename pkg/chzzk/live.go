package chzzk

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// LiveStatusType is the open/closed state of a channel's broadcast.
type LiveStatusType string

const (
	LiveStatusOpen  LiveStatusType = "OPEN"
	LiveStatusClose LiveStatusType = "CLOSE"
)

// LivePollingStatusType is the publishing state reported by the polling document.
type LivePollingStatusType string

const (
	LivePollingStarted LivePollingStatusType = "STARTED"
	LivePollingStopped LivePollingStatusType = "STOPPED"
)

// LivePlaybackStatusType is the playback state reported by the playback document.
type LivePlaybackStatusType string

const (
	LivePlaybackStarted LivePlaybackStatusType = "STARTED"
	LivePlaybackEnded   LivePlaybackStatusType = "ENDED"
	LivePlaybackStopped LivePlaybackStatusType = "STOPPED"
)

// UserAdultStatusType describes the caller's adult verification state.
type UserAdultStatusType string

const (
	UserAdult             UserAdultStatusType = "ADULT"
	UserAdultNotLoginUser UserAdultStatusType = "NOT_LOGIN_USER"
)

// CategoryType is the kind of category a live is filed under.
type CategoryType string

const CategoryGame CategoryType = "GAME"

// PlayableStatusType is the playable state in the polling document.
type PlayableStatusType string

const PlayableStatusPlayable PlayableStatusType = "PLAYABLE"

// CdnInfo describes the CDN serving a live.
type CdnInfo struct {
	CdnType    string `json:"cdnType"`
	ZeroRating bool   `json:"zeroRating"`
}

// LivePlaybackMeta identifies the stream behind a live.
type LivePlaybackMeta struct {
	VideoID     string  `json:"videoId"`
	StreamSeq   uint64  `json:"streamSeq"`
	PaidLive    bool    `json:"paidLive"`
	CdnInfo     CdnInfo `json:"cdnInfo"`
	CmcdEnabled bool    `json:"cmcdEnabled"`
}

type LivePlaybackServiceMeta struct {
	ContentType string `json:"contentType"`
}

// LivePlaybackStatus holds the playback timeline. Start and Open are
// upstream date strings.
type LivePlaybackStatus struct {
	Start       string                 `json:"start"`
	Open        string                 `json:"open"`
	TimeMachine bool                   `json:"timeMachine"`
	Status      LivePlaybackStatusType `json:"status" jsonschema:"enum=STARTED,enum=ENDED,enum=STOPPED"`
}

type LivePlaybackAPI struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// FrameRate is a video frame rate. Upstream sends it either as a number or
// as a quoted number.
type FrameRate float64

func (f *FrameRate) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	data = bytes.Trim(data, `"`)
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*f = FrameRate(v)
	return nil
}

// MarshalJSON always writes a plain number.
func (f FrameRate) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(f))
}

// EncodingTrack is one rendition of a playback media. Audio fields are always
// present; video fields are only set on video renditions. An audio-only
// rendition has EncodingTrackID "alow.stream".
type EncodingTrack struct {
	EncodingTrackID   string `json:"encodingTrackId"`
	AudioBitRate      uint64 `json:"audioBitRate"`
	AudioSamplingRate uint64 `json:"audioSamplingRate"`
	AudioChannel      uint8  `json:"audioChannel"`
	AvoidReencoding   bool   `json:"avoidReencoding"`
	AudioOnly         *bool  `json:"audioOnly,omitempty" jsonschema:"nullable"`

	VideoProfile      string    `json:"videoProfile,omitempty"`
	AudioProfile      string    `json:"audioProfile,omitempty"`
	VideoCodec        string    `json:"videoCodec,omitempty"`
	VideoBitRate      uint64    `json:"videoBitRate,omitempty"`
	VideoFrameRate    FrameRate `json:"videoFrameRate,omitempty" jsonschema:"oneof_type=number;string"`
	VideoWidth        uint64    `json:"videoWidth,omitempty"`
	VideoHeight       uint64    `json:"videoHeight,omitempty"`
	VideoDynamicRange string    `json:"videoDynamicRange,omitempty"`
}

// IsVideo reports whether the track carries video.
func (t EncodingTrack) IsVideo() bool {
	return t.VideoCodec != "" || t.VideoWidth > 0
}

// LivePlaybackMedia is one delivery protocol for a live (HLS, LLHLS, ...).
type LivePlaybackMedia struct {
	MediaID       string          `json:"mediaId"`
	Protocol      string          `json:"protocol"`
	Path          string          `json:"path"`
	EncodingTrack []EncodingTrack `json:"encodingTrack"`
}

// LivePlayback is the playback document embedded in a live as a JSON string.
type LivePlayback struct {
	Meta        LivePlaybackMeta        `json:"meta"`
	ServiceMeta LivePlaybackServiceMeta `json:"serviceMeta"`
	Live        LivePlaybackStatus      `json:"live"`
	API         []LivePlaybackAPI       `json:"api"`
	Media       []LivePlaybackMedia     `json:"media"`
}

// MediaByID returns the media with the given ID (for example "HLS").
func (p *LivePlayback) MediaByID(mediaID string) (LivePlaybackMedia, bool) {
	for _, m := range p.Media {
		if m.MediaID == mediaID {
			return m, true
		}
	}
	return LivePlaybackMedia{}, false
}

// LivePollingStatus is the polling document embedded in live status and
// live detail responses as a JSON string.
type LivePollingStatus struct {
	Status                LivePollingStatusType `json:"status" jsonschema:"enum=STARTED,enum=STOPPED"`
	IsPublishing          bool                  `json:"isPublishing"`
	PlayableStatus        PlayableStatusType    `json:"playableStatus"`
	TrafficThrottling     int32                 `json:"trafficThrottling"`
	CallPeriodMilliSecond uint64                `json:"callPeriodMilliSecond"`
}

// CallPeriod is the polling interval the server asks clients to respect.
func (p LivePollingStatus) CallPeriod() time.Duration {
	return time.Duration(p.CallPeriodMilliSecond) * time.Millisecond
}

// LiveStatus is the lightweight polling view of a channel's live.
type LiveStatus struct {
	LiveTitle              string               `json:"liveTitle"`
	Status                 LiveStatusType       `json:"status"`
	ConcurrentUserCount    uint64               `json:"concurrentUserCount"`
	AccumulateCount        uint64               `json:"accumulateCount"`
	PaidPromotion          bool                 `json:"paidPromotion"`
	Adult                  bool                 `json:"adult"`
	ChatChannelID          *string              `json:"chatChannelId,omitempty"`
	CategoryType           *CategoryType        `json:"categoryType,omitempty"`
	LiveCategory           *string              `json:"liveCategory,omitempty"`
	LiveCategoryValue      *string              `json:"liveCategoryValue,omitempty"`
	LivePollingStatus      LivePollingStatus    `json:"livePollingStatus"`
	UserAdultStatus        *UserAdultStatusType `json:"userAdultStatus,omitempty"`
	ChatActive             bool                 `json:"chatActive"`
	ChatAvailableGroup     string               `json:"chatAvailableGroup"`
	ChatAvailableCondition string               `json:"chatAvailableCondition"`
	MinFollowerMinute      uint64               `json:"minFollowerMinute"`
}

// IsOpen reports whether the channel is broadcasting.
func (s *LiveStatus) IsOpen() bool {
	return s.Status == LiveStatusOpen
}

// Live is the broadcast information shared by live detail and live lists.
type Live struct {
	LiveTitle                string         `json:"liveTitle"`
	LiveImageURL             *string        `json:"liveImageUrl,omitempty"`
	DefaultThumbnailImageURL *string        `json:"defaultThumbnailImageUrl,omitempty"`
	ConcurrentUserCount      uint64         `json:"concurrentUserCount"`
	AccumulateCount          uint64         `json:"accumulateCount"`
	OpenDate                 string         `json:"openDate"`
	LiveID                   uint64         `json:"liveId"`
	Adult                    bool           `json:"adult"`
	ChatChannelID            *string        `json:"chatChannelId,omitempty"`
	CategoryType             *CategoryType  `json:"categoryType,omitempty"`
	LiveCategory             *string        `json:"liveCategory,omitempty"`
	LiveCategoryValue        *string        `json:"liveCategoryValue,omitempty"`
	LivePlayback             *LivePlayback  `json:"livePlayback,omitempty"`
	Channel                  PartialChannel `json:"channel"`
}

// LiveDetail is the full view of a channel's current or last live.
type LiveDetail struct {
	Live

	Status                 LiveStatusType       `json:"status"`
	CloseDate              *string              `json:"closeDate,omitempty"`
	ChatActive             bool                 `json:"chatActive"`
	ChatAvailableGroup     string               `json:"chatAvailableGroup"`
	PaidPromotion          bool                 `json:"paidPromotion"`
	ChatAvailableCondition string               `json:"chatAvailableCondition"`
	MinFollowerMinute      uint64               `json:"minFollowerMinute"`
	LivePollingStatus      LivePollingStatus    `json:"livePollingStatus"`
	UserAdultStatus        *UserAdultStatusType `json:"userAdultStatus,omitempty"`
}

// IsOpen reports whether the channel is broadcasting.
func (d *LiveDetail) IsOpen() bool {
	return d.Status == LiveStatusOpen
}

// LiveStatus projects the detail onto the polling view, dropping the fields
// that only exist on a live (images, IDs, playback, channel, close date).
func (d *LiveDetail) LiveStatus() LiveStatus {
	return LiveStatus{
		LiveTitle:              d.LiveTitle,
		Status:                 d.Status,
		ConcurrentUserCount:    d.ConcurrentUserCount,
		AccumulateCount:        d.AccumulateCount,
		PaidPromotion:          d.PaidPromotion,
		Adult:                  d.Adult,
		ChatChannelID:          d.ChatChannelID,
		CategoryType:           d.CategoryType,
		LiveCategory:           d.LiveCategory,
		LiveCategoryValue:      d.LiveCategoryValue,
		LivePollingStatus:      d.LivePollingStatus,
		UserAdultStatus:        d.UserAdultStatus,
		ChatActive:             d.ChatActive,
		ChatAvailableGroup:     d.ChatAvailableGroup,
		ChatAvailableCondition: d.ChatAvailableCondition,
		MinFollowerMinute:      d.MinFollowerMinute,
	}
}
