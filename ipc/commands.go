package ipc

import "github.com/nstehr/armada/model"

// CommandsMessage answers a game_state with the turn's orders. Commands is never
// null on the wire: an empty turn is an empty list.
type CommandsMessage struct {
	Turn     int             `json:"turn"`
	Status   string          `json:"status"`
	Commands []model.Command `json:"commands"`
}

func NewCommandsMessage(turn int, status string, cmds []model.Command) CommandsMessage {
	if cmds == nil {
		cmds = []model.Command{}
	}
	return CommandsMessage{Turn: turn, Status: status, Commands: cmds}
}
