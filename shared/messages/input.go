package messages

// IntentSample is one frame of player movement intent. It is immutable once
// issued; the zero value means "no input".
type IntentSample struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Jump     bool
}

// HasDirection reports whether any horizontal movement flag is set.
func (i IntentSample) HasDirection() bool {
	return i.Forward || i.Backward || i.Left || i.Right
}

// PlayerInput is sent from client to server each frame with the player's intent.
// Used for server-side movement processing and client-side prediction reconciliation.
type PlayerInput struct {
	Sequence  uint64 // Incrementing ID for reconciliation
	Intent    IntentSample
	Yaw       float64 // View yaw the intent was resolved against (radians)
	DeltaTime float64 // Seconds covered by this input on the client
	Timestamp int64   // Client timestamp (Unix ms)
}

// NewPlayerInput creates a PlayerInput for the given sequence and intent.
func NewPlayerInput(seq uint64, intent IntentSample) PlayerInput {
	return PlayerInput{
		Sequence: seq,
		Intent:   intent,
	}
}
