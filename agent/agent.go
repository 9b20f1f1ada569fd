package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nstehr/armada/ipc"
	"github.com/nstehr/armada/model"
	"github.com/nstehr/armada/rules"
)

// Agent owns the decision-making for a single match session.
type Agent struct {
	Conn     *ipc.Connection
	Session  string
	PlayerID int
	BotName  string
	Engine   *rules.Engine

	identified bool
	prev       *stateSnapshot
}

func New(conn *ipc.Connection, engine *rules.Engine) *Agent {
	session := uuid.NewString()
	if conn != nil {
		conn.Session = session
	}
	return &Agent{Conn: conn, Session: session, Engine: engine}
}

// HandleHello records which player this session decides for.
func (a *Agent) HandleHello(env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := json.Unmarshal(env.Data, &hello); err != nil {
		return nil, fmt.Errorf("unmarshal hello: %w", err)
	}

	a.PlayerID = hello.PlayerID
	a.BotName = hello.BotName
	a.identified = true
	slog.Info("player identified", "session", a.Session, "player", a.PlayerID, "bot", a.BotName,
		"map", fmt.Sprintf("%dx%d", hello.Width, hello.Height))

	ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok", Session: a.Session})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

// HandleGameState decides a turn and replies with its commands. A snapshot the
// engine rejects still gets a reply, with no commands, so the match never stalls.
func (a *Agent) HandleGameState(env ipc.Envelope) (*ipc.Envelope, error) {
	var gs model.GameState
	if err := json.Unmarshal(env.Data, &gs); err != nil {
		return nil, fmt.Errorf("unmarshal GameState: %w", err)
	}
	if a.identified {
		gs.PlayerID = a.PlayerID
	}

	slog.Debug("game state received",
		"session", a.Session,
		"turn", gs.Turn,
		"players", len(gs.Players),
		"planets", len(gs.Planets),
		"ships", len(gs.MyShips()),
	)

	res, err := a.Engine.DecideTurn(context.Background(), &gs)
	status := res.Status.String()
	if err != nil {
		slog.Error("snapshot rejected", "session", a.Session, "turn", gs.Turn, "error", err)
		status = "rejected"
	} else {
		cur := takeSnapshot(&gs, res)
		for _, ev := range detectEvents(a.prev, cur) {
			slog.Info("game event", "session", a.Session, "kind", ev.Kind, "turn", ev.Turn, "detail", ev.Detail)
		}
		a.prev = &cur
	}

	reply, err := ipc.NewEnvelope(ipc.TypeCommands, ipc.NewCommandsMessage(gs.Turn, status, res.Commands))
	if err != nil {
		return nil, err
	}
	return &reply, nil
}
