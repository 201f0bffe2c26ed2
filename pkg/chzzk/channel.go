package chzzk

// PersonalData holds viewer-specific flags returned for authenticated calls.
type PersonalData struct {
	PrivateUserBlock bool `json:"privateUserBlock"`
}

// PartialChannel is the channel summary embedded in live responses.
type PartialChannel struct {
	ChannelID       string        `json:"channelId"`
	ChannelName     string        `json:"channelName"`
	ChannelImageURL *string       `json:"channelImageUrl,omitempty" jsonschema:"nullable"`
	VerifiedMark    bool          `json:"verifiedMark"`
	UserAdultStatus *string       `json:"userAdultStatus,omitempty" jsonschema:"nullable"`
	PersonalData    *PersonalData `json:"personalData,omitempty" jsonschema:"nullable"`
}

// Channel is a full channel profile.
type Channel struct {
	PartialChannel

	ChannelDescription string `json:"channelDescription"`
	FollowerCount      uint64 `json:"followerCount"`
	OpenLive           bool   `json:"openLive"`
}
