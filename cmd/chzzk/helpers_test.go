package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	channelA = "475313e6c26639d5763628313b4c130e"
	channelB = "dec8d19e7b5a4ee4a0c1d5f1b6f7a8c9"
)

const pollingJSON = `{"status":"STARTED","isPublishing":true,"playableStatus":"PLAYABLE","trafficThrottling":-1,"callPeriodMilliSecond":1}`

const playbackJSON = `{
	"meta":{"videoId":"V1D30","streamSeq":4821,"liveId":"12345","paidLive":false,
		"cdnInfo":{"cdnType":"GCDN","zeroRating":false},"cmcdEnabled":false},
	"serviceMeta":{"contentType":"VIDEO"},
	"live":{"start":"2024-05-01T20:00:00.000+0900","open":"2024-05-01T20:00:03.000+0900","timeMachine":true,"status":"STARTED"},
	"api":[],
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

func statusContent(status, title string, viewers int) map[string]any {
	return map[string]any{
		"liveTitle":              title,
		"status":                 status,
		"concurrentUserCount":    viewers,
		"accumulateCount":        48211,
		"paidPromotion":          false,
		"adult":                  false,
		"chatChannelId":          "N1abcd",
		"categoryType":           "GAME",
		"liveCategory":           "League_of_Legends",
		"liveCategoryValue":      "League of Legends",
		"livePollingStatusJson":  pollingJSON,
		"userAdultStatus":        nil,
		"faultStatus":            nil,
		"chatActive":             true,
		"chatAvailableGroup":     "ALL",
		"chatAvailableCondition": "NONE",
		"minFollowerMinute":      0,
	}
}

func detailContent() map[string]any {
	d := statusContent("OPEN", "Late night ranked", 1520)
	d["liveImageUrl"] = "https://example.com/live_{type}.jpg"
	d["defaultThumbnailImageUrl"] = nil
	d["openDate"] = "2024-05-01 20:00:03"
	d["liveId"] = 12345
	d["livePlaybackJson"] = playbackJSON
	d["closeDate"] = nil
	d["channel"] = map[string]any{
		"channelId":       channelA,
		"channelName":     "streamer",
		"channelImageUrl": nil,
		"verifiedMark":    true,
	}
	return d
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, content any) {
	t.Helper()
	body, err := json.Marshal(map[string]any{"code": 200, "message": nil, "content": content})
	require.NoError(t, err)
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

var cliEnvKeys = []string{
	"CHZZK_BASE_URL", "CHZZK_HTTP_TIMEOUT_MS", "CHZZK_USER_AGENT", "CHZZK_CONCURRENCY",
	"CHZZK_NID_SES", "CHZZK_NID_AUT", "CHZZK_NID_JKL",
	"CHZZK_WATCH_INTERVAL_MS", "CHZZK_WATCH_MIN_INTERVAL_MS",
	"LOG_LEVEL", "LOG_FORMAT", "LOG_FILE", "LOG_MAX_SIZE_MB", "LOG_MAX_BACKUPS", "LOG_MAX_AGE_DAYS", "LOG_COMPRESS",
}

// setupCLI starts an API stub and writes a config pointing at it. It
// returns the config path.
func setupCLI(t *testing.T, handler http.HandlerFunc) string {
	t.Helper()

	for _, k := range cliEnvKeys {
		t.Setenv(k, "")
	}
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "xdg"))

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	configPath := filepath.Join(base, "config.toml")
	body := "[api]\nbase_url = \"" + srv.URL + "\"\n" +
		"[watch]\nmin_interval_ms = 1\ndefault_interval_ms = 1\n" +
		"[logging]\nlevel = \"error\"\n"
	require.NoError(t, os.WriteFile(configPath, []byte(body), 0o600))
	return configPath
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
