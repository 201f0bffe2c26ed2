package chzzk

import (
	"encoding/json"
	"sync"

	"github.com/usestring/chzzk-go/internal/wireschema"
)

// Wire models mirror the upstream JSON exactly, including the documents that
// arrive as JSON strings. They are converted to the public models by
// toPublic, which parses those strings a second time.

type wireLive struct {
	LiveTitle                string         `json:"liveTitle"`
	LiveImageURL             *string        `json:"liveImageUrl,omitempty" jsonschema:"nullable"`
	DefaultThumbnailImageURL *string        `json:"defaultThumbnailImageUrl,omitempty" jsonschema:"nullable"`
	ConcurrentUserCount      uint64         `json:"concurrentUserCount"`
	AccumulateCount          uint64         `json:"accumulateCount"`
	OpenDate                 string         `json:"openDate"`
	LiveID                   uint64         `json:"liveId"`
	Adult                    bool           `json:"adult"`
	ChatChannelID            *string        `json:"chatChannelId,omitempty" jsonschema:"nullable"`
	CategoryType             *CategoryType  `json:"categoryType,omitempty" jsonschema:"nullable"`
	LiveCategory             *string        `json:"liveCategory,omitempty" jsonschema:"nullable"`
	LiveCategoryValue        *string        `json:"liveCategoryValue,omitempty" jsonschema:"nullable"`
	LivePlaybackJSON         *string        `json:"livePlaybackJson,omitempty" jsonschema:"nullable"`
	Channel                  PartialChannel `json:"channel"`
}

type wireLiveDetail struct {
	wireLive

	Status                 LiveStatusType       `json:"status" jsonschema:"enum=OPEN,enum=CLOSE"`
	CloseDate              *string              `json:"closeDate,omitempty" jsonschema:"nullable"`
	ChatActive             bool                 `json:"chatActive"`
	ChatAvailableGroup     string               `json:"chatAvailableGroup"`
	PaidPromotion          bool                 `json:"paidPromotion"`
	ChatAvailableCondition string               `json:"chatAvailableCondition"`
	MinFollowerMinute      uint64               `json:"minFollowerMinute"`
	LivePollingStatusJSON  string               `json:"livePollingStatusJson"`
	UserAdultStatus        *UserAdultStatusType `json:"userAdultStatus,omitempty" jsonschema:"nullable,enum=ADULT,enum=NOT_LOGIN_USER"`
}

type wireLiveStatus struct {
	LiveTitle              string               `json:"liveTitle"`
	Status                 LiveStatusType       `json:"status" jsonschema:"enum=OPEN,enum=CLOSE"`
	ConcurrentUserCount    uint64               `json:"concurrentUserCount"`
	AccumulateCount        uint64               `json:"accumulateCount"`
	PaidPromotion          bool                 `json:"paidPromotion"`
	Adult                  bool                 `json:"adult"`
	ChatChannelID          *string              `json:"chatChannelId,omitempty" jsonschema:"nullable"`
	CategoryType           *CategoryType        `json:"categoryType,omitempty" jsonschema:"nullable"`
	LiveCategory           *string              `json:"liveCategory,omitempty" jsonschema:"nullable"`
	LiveCategoryValue      *string              `json:"liveCategoryValue,omitempty" jsonschema:"nullable"`
	LivePollingStatusJSON  string               `json:"livePollingStatusJson"`
	UserAdultStatus        *UserAdultStatusType `json:"userAdultStatus,omitempty" jsonschema:"nullable,enum=ADULT,enum=NOT_LOGIN_USER"`
	ChatActive             bool                 `json:"chatActive"`
	ChatAvailableGroup     string               `json:"chatAvailableGroup"`
	ChatAvailableCondition string               `json:"chatAvailableCondition"`
	MinFollowerMinute      uint64               `json:"minFollowerMinute"`
}

// Embedded document field names, as reported in DecodeError.Field.
const (
	fieldLivePlayback      = "livePlaybackJson"
	fieldLivePollingStatus = "livePollingStatusJson"
)

// schemaSet holds one validator per document shape the decoder accepts.
type schemaSet struct {
	liveStatus        *wireschema.Validator
	liveDetail        *wireschema.Validator
	livePlayback      *wireschema.Validator
	livePollingStatus *wireschema.Validator
}

var schemas = sync.OnceValue(func() *schemaSet {
	return &schemaSet{
		liveStatus:        wireschema.MustNew("live_status", wireLiveStatus{}),
		liveDetail:        wireschema.MustNew("live_detail", wireLiveDetail{}),
		livePlayback:      wireschema.MustNew("live_playback", LivePlayback{}),
		livePollingStatus: wireschema.MustNew("live_polling_status", LivePollingStatus{}),
	}
})

// parseEmbedded parses a document that arrived as a JSON string. The
// document must match the shape of T exactly; otherwise a *DecodeError
// naming field is returned.
func parseEmbedded[T any](field, raw string, v *wireschema.Validator) (T, error) {
	var out T
	if err := v.Validate([]byte(raw)); err != nil {
		return out, &DecodeError{Field: field, Err: err}
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return out, &DecodeError{Field: field, Err: err}
	}
	return out, nil
}

func (w *wireLive) toPublic() (Live, error) {
	var playback *LivePlayback
	if w.LivePlaybackJSON != nil {
		p, err := parseEmbedded[LivePlayback](fieldLivePlayback, *w.LivePlaybackJSON, schemas().livePlayback)
		if err != nil {
			return Live{}, err
		}
		playback = &p
	}

	return Live{
		LiveTitle:                w.LiveTitle,
		LiveImageURL:             w.LiveImageURL,
		DefaultThumbnailImageURL: w.DefaultThumbnailImageURL,
		ConcurrentUserCount:      w.ConcurrentUserCount,
		AccumulateCount:          w.AccumulateCount,
		OpenDate:                 w.OpenDate,
		LiveID:                   w.LiveID,
		Adult:                    w.Adult,
		ChatChannelID:            w.ChatChannelID,
		CategoryType:             w.CategoryType,
		LiveCategory:             w.LiveCategory,
		LiveCategoryValue:        w.LiveCategoryValue,
		LivePlayback:             playback,
		Channel:                  w.Channel,
	}, nil
}

func (w *wireLiveDetail) toPublic() (LiveDetail, error) {
	live, err := w.wireLive.toPublic()
	if err != nil {
		return LiveDetail{}, err
	}

	polling, err := parseEmbedded[LivePollingStatus](fieldLivePollingStatus, w.LivePollingStatusJSON, schemas().livePollingStatus)
	if err != nil {
		return LiveDetail{}, err
	}

	return LiveDetail{
		Live:                   live,
		Status:                 w.Status,
		CloseDate:              w.CloseDate,
		ChatActive:             w.ChatActive,
		ChatAvailableGroup:     w.ChatAvailableGroup,
		PaidPromotion:          w.PaidPromotion,
		ChatAvailableCondition: w.ChatAvailableCondition,
		MinFollowerMinute:      w.MinFollowerMinute,
		LivePollingStatus:      polling,
		UserAdultStatus:        w.UserAdultStatus,
	}, nil
}

func (w *wireLiveStatus) toPublic() (LiveStatus, error) {
	polling, err := parseEmbedded[LivePollingStatus](fieldLivePollingStatus, w.LivePollingStatusJSON, schemas().livePollingStatus)
	if err != nil {
		return LiveStatus{}, err
	}

	return LiveStatus{
		LiveTitle:              w.LiveTitle,
		Status:                 w.Status,
		ConcurrentUserCount:    w.ConcurrentUserCount,
		AccumulateCount:        w.AccumulateCount,
		PaidPromotion:          w.PaidPromotion,
		Adult:                  w.Adult,
		ChatChannelID:          w.ChatChannelID,
		CategoryType:           w.CategoryType,
		LiveCategory:           w.LiveCategory,
		LiveCategoryValue:      w.LiveCategoryValue,
		LivePollingStatus:      polling,
		UserAdultStatus:        w.UserAdultStatus,
		ChatActive:             w.ChatActive,
		ChatAvailableGroup:     w.ChatAvailableGroup,
		ChatAvailableCondition: w.ChatAvailableCondition,
		MinFollowerMinute:      w.MinFollowerMinute,
	}, nil
}
