package domain

// MediaMode is an optional per-connection override of how media is routed.
type MediaMode string

const (
	MediaModeRouted  MediaMode = "ROUTED"
	MediaModeRelayed MediaMode = "RELAYED"
)

// MediaOptions describes the media characteristics of one published stream.
// Only hasAudio/hasVideo are guaranteed by the server; every other field is
// reported at the server's discretion, so absence is kept distinct from a
// false/zero value.
type MediaOptions struct {
	HasAudio bool
	HasVideo bool

	AudioActive     *bool
	VideoActive     *bool
	FrameRate       *int
	TypeOfVideo     *string
	VideoDimensions *string
}
