package core

import (
	"github.com/bytedance/sonic"
)

// Snapshot DTOs mirror the server's JSON field-for-field. Every field the
// model treats as required is still a pointer here so that "absent" can be
// told apart from a zero value before validation runs.

type sessionSnapshot struct {
	SessionID   *string               `json:"sessionId"`
	CreatedAt   *int64                `json:"createdAt"`
	Connections *[]connectionSnapshot `json:"connections"`
}

type connectionSnapshot struct {
	ConnectionID *string               `json:"connectionId"`
	CreatedAt    *int64                `json:"createdAt"`
	Location     *string               `json:"location"`
	Platform     *string               `json:"platform"`
	ClientData   *string               `json:"clientData"`
	Role         *string               `json:"role"`
	ServerData   *string               `json:"serverData"`
	Record       *bool                 `json:"record"`
	Token        *string               `json:"token"`
	Publishers   *[]publisherSnapshot  `json:"publishers"`
	Subscribers  *[]subscriberSnapshot `json:"subscribers"`
}

type publisherSnapshot struct {
	StreamID     *string               `json:"streamId"`
	CreatedAt    *int64                `json:"createdAt"`
	MediaOptions *mediaOptionsSnapshot `json:"mediaOptions"`
}

type mediaOptionsSnapshot struct {
	HasAudio        *bool   `json:"hasAudio"`
	HasVideo        *bool   `json:"hasVideo"`
	AudioActive     *bool   `json:"audioActive"`
	VideoActive     *bool   `json:"videoActive"`
	FrameRate       *int    `json:"frameRate"`
	TypeOfVideo     *string `json:"typeOfVideo"`
	VideoDimensions *string `json:"videoDimensions"`
}

type subscriberSnapshot struct {
	StreamID *string `json:"streamId"`
}

func decodeSessionSnapshot(data []byte) (sessionSnapshot, error) {
	var snap sessionSnapshot
	if err := sonic.Unmarshal(data, &snap); err != nil {
		return sessionSnapshot{}, malformedf("decode: %v", err)
	}
	return snap, nil
}

func decodeConnectionSnapshot(data []byte) (connectionSnapshot, error) {
	var snap connectionSnapshot
	if err := sonic.Unmarshal(data, &snap); err != nil {
		return connectionSnapshot{}, malformedf("decode: %v", err)
	}
	return snap, nil
}
