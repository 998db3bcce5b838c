package messages

// JoinRequest is sent by a client after connecting to request joining the game.
// Token is generated by the client; the server copies it onto the player's
// synced state so the client can pick its own entity out of snapshots.
type JoinRequest struct {
	Version    string
	PlayerName string
	Token      string
}
