package domain

// Publisher is one outbound media stream of a connection.
// Immutable after construction.
type Publisher struct {
	StreamID  string
	CreatedAt int64 // UTC milliseconds
	Media     MediaOptions
}

// NewPublisher avoids raw literals in parsing code and keeps construction obvious.
func NewPublisher(streamID string, createdAt int64, media MediaOptions) Publisher {
	return Publisher{StreamID: streamID, CreatedAt: createdAt, Media: media}
}
