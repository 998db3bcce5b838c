package messages

// JumpEvent is a fire-and-forget notification that the local player started
// a jump. The server uses it for effects only; movement comes from PlayerInput.
type JumpEvent struct {
	Token     string
	Timestamp int64 // Client timestamp (Unix ms)
}
