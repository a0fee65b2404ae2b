// Package ws exposes the planner over a websocket bridge. A client sends
// HELLO once, receives WELCOME with the registered planner list, and may
// then stream PLAN_REQUEST frames; each is answered with a PLAN_RESULT.
package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/mikeychann-hash/FGD-sub000/internal/plan"
	"github.com/mikeychann-hash/FGD-sub000/internal/protocol"
	"github.com/mikeychann-hash/FGD-sub000/internal/registry"
	"github.com/mikeychann-hash/FGD-sub000/internal/worldctx"
)

// Recorder receives every produced plan; the audit log and the history
// index both implement it.
type Recorder interface {
	RecordPlan(requestID string, task protocol.Task, p *plan.Plan) error
}

type Server struct {
	dispatcher *Dispatch
	log        *log.Logger

	upgrader websocket.Upgrader
}

// Dispatch bundles what one request needs: the dispatcher, an optional
// request schema and optional recorders.
type Dispatch struct {
	Planner   *registry.Dispatcher
	Schema    *jsonschema.Schema
	Recorders []Recorder
}

func NewServer(d *Dispatch, logger *log.Logger) *Server {
	return &Server{
		dispatcher: d,
		log:        logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		sessionID, out := s.handshake(conn)
		if sessionID == "" {
			return
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Writer goroutine.
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case b, ok := <-out:
					if !ok {
						return
					}
					_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		// Reader loop.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				cancel()
				return
			}
			base, err := protocol.DecodeBase(msg)
			if err != nil || base.Type != protocol.TypePlanRequest {
				continue
			}
			s.handleRequest(msg, out)
		}
	}
}

func (s *Server) handleRequest(msg []byte, out chan []byte) {
	var req protocol.PlanRequestMsg
	if err := json.Unmarshal(msg, &req); err != nil {
		s.send(out, errorMsg("", protocol.ErrProtoBadRequest, "malformed PLAN_REQUEST"))
		return
	}
	if req.ProtocolVersion != protocol.Version {
		s.send(out, errorMsg(req.RequestID, protocol.ErrProtoBadRequest, "bad protocol_version"))
		return
	}
	if s.dispatcher.Schema != nil {
		var loose any
		if err := json.Unmarshal(msg, &loose); err == nil {
			if err := s.dispatcher.Schema.Validate(loose); err != nil {
				s.send(out, errorMsg(req.RequestID, protocol.ErrBadRequest, "request schema: "+err.Error()))
				return
			}
		}
	}

	var wctx worldctx.Context
	if len(req.Context) > 0 {
		if err := json.Unmarshal(req.Context, &wctx); err != nil {
			s.send(out, errorMsg(req.RequestID, protocol.ErrBadRequest, "malformed context"))
			return
		}
	}

	p := s.dispatcher.Planner.PlanTask(req.Task, &wctx)
	result := protocol.PlanResultMsg{
		Type:            protocol.TypePlanResult,
		ProtocolVersion: protocol.Version,
		RequestID:       req.RequestID,
		Plan:            json.RawMessage("null"),
	}
	if p == nil {
		result.Error = protocol.ErrPlannerFailed
		if !s.dispatcher.Planner.Registry.Has(req.Task.Action) {
			result.Error = protocol.ErrUnknownAction
		}
	} else {
		if b, err := json.Marshal(p); err == nil {
			result.Plan = b
		}
		for _, rec := range s.dispatcher.Recorders {
			if err := rec.RecordPlan(req.RequestID, req.Task, p); err != nil {
				s.log.Printf("record plan %s: %v", req.RequestID, err)
			}
		}
	}
	b, err := json.Marshal(result)
	if err != nil {
		return
	}
	s.send(out, b)
}

func (s *Server) handshake(conn *websocket.Conn) (sessionID string, out chan []byte) {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return "", nil
	}

	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != protocol.TypeHello {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected HELLO"), time.Now().Add(time.Second))
		return "", nil
	}
	var hello protocol.HelloMsg
	if err := json.Unmarshal(msg, &hello); err != nil {
		return "", nil
	}
	if hello.ProtocolVersion != protocol.Version {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "bad protocol_version"), time.Now().Add(time.Second))
		return "", nil
	}

	sessionID = uuid.NewString()
	welcome := protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		SessionID:       sessionID,
		Planners:        s.dispatcher.Planner.Registry.List(),
	}
	b, err := json.Marshal(welcome)
	if err != nil {
		return "", nil
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		return "", nil
	}

	out = make(chan []byte, 16)
	return sessionID, out
}

func (s *Server) send(out chan []byte, b []byte) {
	select {
	case out <- b:
	default:
		s.log.Printf("drop frame: client write queue full")
	}
}

func errorMsg(requestID, code, message string) []byte {
	b, _ := json.Marshal(protocol.ErrorMsg{
		Type:            protocol.TypeError,
		ProtocolVersion: protocol.Version,
		RequestID:       requestID,
		Code:            code,
		Message:         message,
	})
	return b
}
