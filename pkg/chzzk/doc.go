// Package chzzk provides a Go SDK for the CHZZK livestream API.
//
// # Quick Start
//
// Create a client and look up a channel's live status:
//
//	c := chzzk.New()
//	status, err := c.GetLiveStatus(ctx, "475313e6c26639d5763628313b4c130e", nil)
//
// Use custom configuration:
//
//	c := chzzk.New(
//	    chzzk.WithHTTPClient(&http.Client{Timeout: 10 * time.Second}),
//	    chzzk.WithUserAgent("my-bot/1.0"),
//	)
//
// The client applies no timeout or retry policy of its own. Cancellation
// comes from the context; timeouts from the HTTP client.
//
// # Authentication
//
// Calls are anonymous unless an *Auth is passed. Auth carries the three Naver
// session cookies (NID_SES, NID_AUT, NID_JKL), which are sent in a single
// Cookie header. The client never stores them:
//
//	auth := &chzzk.Auth{NIDSes: ses, NIDAut: aut, NIDJkl: jkl}
//	detail, err := c.GetLiveDetail(ctx, channelID, auth)
//
// # Endpoints
//
// Each endpoint is a small struct implementing Endpoint: Encode builds the
// Request and Decode parses a 200 response body. Send drives one call and can
// be used directly:
//
//	detail, err := chzzk.Send[chzzk.LiveDetail](ctx, c, chzzk.GetLiveDetail{ChannelID: id}, nil)
//
// # Decoding
//
// Every response is wrapped in an Envelope ({code, message, content}). Some
// content fields are JSON documents encoded as strings (livePlaybackJson,
// livePollingStatusJson). Decoding parses the content into a private wire
// model, then parses each embedded document into its public type. Every
// document must match its model (required keys present, known enum values);
// otherwise the whole decode fails and no partial model is returned.
//
// # Errors
//
// Failures are reported as one of four types, all usable with errors.As:
//
//   - *EncodeError: the request could not be built (path, query or body)
//   - *TransportError: the HTTP exchange failed
//   - *UndefinedError: the server answered with a non-200 status
//   - *DecodeError: the body did not match the expected shape
//
// None are retried.
package chzzk
