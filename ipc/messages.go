package ipc

// These constants must stay in sync with the match adapter.
const (
	TypeHello     = "hello"
	TypeAck       = "ack"
	TypeGameState = "game_state"
	TypeCommands  = "commands"
)

// HelloMessage opens a session: which player this sidecar plays for.
type HelloMessage struct {
	PlayerID int    `json:"playerId"`
	BotName  string `json:"botName"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

type AckMessage struct {
	Status  string `json:"status"`
	Session string `json:"session,omitempty"`
}
