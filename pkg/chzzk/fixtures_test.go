package chzzk

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

const testChannelID = "475313e6c26639d5763628313b4c130e"

const pollingJSON = `{"status":"STARTED","isPublishing":true,"playableStatus":"PLAYABLE","trafficThrottling":-1,"callPeriodMilliSecond":10000}`

const playbackJSON = `{
	"meta":{"videoId":"V1D30","streamSeq":4821,"liveId":"12345","paidLive":false,
		"cdnInfo":{"cdnType":"GCDN","zeroRating":false},"cmcdEnabled":false},
	"serviceMeta":{"contentType":"VIDEO"},
	"live":{"start":"2024-05-01T20:00:00.000+0900","open":"2024-05-01T20:00:03.000+0900","timeMachine":true,"status":"STARTED"},
	"api":[{"name":"p2p","path":"https://example.com/p2p"}],
	"media":[{"mediaId":"HLS","protocol":"HLS","path":"https://example.com/hls/playlist.m3u8",
		"encodingTrack":[
			{"encodingTrackId":"1080p","videoProfile":"high","audioProfile":"HE-AAC","videoCodec":"H264",
			 "videoBitRate":8192000,"videoFrameRate":"60.0","videoWidth":1920,"videoHeight":1080,
			 "videoDynamicRange":"SDR","audioCodec":"AAC","audioBitRate":192000,"audioSamplingRate":48000,
			 "audioChannel":2,"avoidReencoding":false},
			{"encodingTrackId":"alow.stream","audioCodec":"AAC","audioBitRate":32000,"audioSamplingRate":48000,
			 "audioChannel":2,"avoidReencoding":false,"audioOnly":true}
		]}]
}`

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// liveDetailContent returns an upstream-shaped live-detail content object.
func liveDetailContent() map[string]any {
	return map[string]any{
		"liveTitle":                "Late night ranked",
		"liveImageUrl":             "https://example.com/live_{type}.jpg",
		"defaultThumbnailImageUrl": nil,
		"concurrentUserCount":      1520,
		"accumulateCount":          48211,
		"openDate":                 "2024-05-01 20:00:03",
		"liveId":                   12345,
		"adult":                    false,
		"chatChannelId":            "N1abcd",
		"categoryType":             "GAME",
		"liveCategory":             "League_of_Legends",
		"liveCategoryValue":        "League of Legends",
		"livePlaybackJson":         playbackJSON,
		"channel": map[string]any{
			"channelId":       testChannelID,
			"channelName":     "streamer",
			"channelImageUrl": "https://example.com/profile.png",
			"verifiedMark":    true,
			"userAdultStatus": nil,
		},
		"status":                 "OPEN",
		"closeDate":              nil,
		"chatActive":             true,
		"chatAvailableGroup":     "ALL",
		"paidPromotion":          false,
		"chatAvailableCondition": "NONE",
		"minFollowerMinute":      0,
		"livePollingStatusJson":  pollingJSON,
		"userAdultStatus":        "NOT_LOGIN_USER",
		"p2pQuality":             []string{"720p"},
	}
}

// liveStatusContent returns the live-status content matching liveDetailContent.
func liveStatusContent() map[string]any {
	d := liveDetailContent()
	status := map[string]any{"faultStatus": nil}
	for _, key := range []string{
		"liveTitle", "status", "concurrentUserCount", "accumulateCount", "paidPromotion",
		"adult", "chatChannelId", "categoryType", "liveCategory", "liveCategoryValue",
		"livePollingStatusJson", "userAdultStatus", "chatActive", "chatAvailableGroup",
		"chatAvailableCondition", "minFollowerMinute",
	} {
		status[key] = d[key]
	}
	return status
}

func envelope(t *testing.T, content any) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"code":    200,
		"message": nil,
		"content": content,
	})
	require.NoError(t, err)
	return body
}

func expectedPolling() LivePollingStatus {
	return LivePollingStatus{
		Status:                LivePollingStarted,
		IsPublishing:          true,
		PlayableStatus:        PlayableStatusPlayable,
		TrafficThrottling:     -1,
		CallPeriodMilliSecond: 10000,
	}
}

func expectedPlayback() *LivePlayback {
	return &LivePlayback{
		Meta: LivePlaybackMeta{
			VideoID:   "V1D30",
			StreamSeq: 4821,
			CdnInfo:   CdnInfo{CdnType: "GCDN"},
		},
		ServiceMeta: LivePlaybackServiceMeta{ContentType: "VIDEO"},
		Live: LivePlaybackStatus{
			Start:       "2024-05-01T20:00:00.000+0900",
			Open:        "2024-05-01T20:00:03.000+0900",
			TimeMachine: true,
			Status:      LivePlaybackStarted,
		},
		API: []LivePlaybackAPI{{Name: "p2p", Path: "https://example.com/p2p"}},
		Media: []LivePlaybackMedia{{
			MediaID:  "HLS",
			Protocol: "HLS",
			Path:     "https://example.com/hls/playlist.m3u8",
			EncodingTrack: []EncodingTrack{
				{
					EncodingTrackID:   "1080p",
					AudioBitRate:      192000,
					AudioSamplingRate: 48000,
					AudioChannel:      2,
					VideoProfile:      "high",
					AudioProfile:      "HE-AAC",
					VideoCodec:        "H264",
					VideoBitRate:      8192000,
					VideoFrameRate:    60,
					VideoWidth:        1920,
					VideoHeight:       1080,
					VideoDynamicRange: "SDR",
				},
				{
					EncodingTrackID:   "alow.stream",
					AudioBitRate:      32000,
					AudioSamplingRate: 48000,
					AudioChannel:      2,
					AudioOnly:         boolPtr(true),
				},
			},
		}},
	}
}
