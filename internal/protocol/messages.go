package protocol

import "encoding/json"

// HELLO (client -> server)
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ClientName      string `json:"client_name"`
	NPCID           string `json:"npc_id,omitempty"`
}

// WELCOME (server -> client)
type WelcomeMsg struct {
	Type            string   `json:"type"`
	ProtocolVersion string   `json:"protocol_version"`
	SessionID       string   `json:"session_id"`
	Planners        []string `json:"planners"`
}

// PLAN_REQUEST (client -> server)
type PlanRequestMsg struct {
	Type            string          `json:"type"`
	ProtocolVersion string          `json:"protocol_version"`
	RequestID       string          `json:"request_id"`
	Task            Task            `json:"task"`
	Context         json.RawMessage `json:"context,omitempty"`
}

// PLAN_RESULT (server -> client). Plan is the planner output as produced,
// or null when planning failed; Error carries the code in that case.
type PlanResultMsg struct {
	Type            string          `json:"type"`
	ProtocolVersion string          `json:"protocol_version"`
	RequestID       string          `json:"request_id"`
	Plan            json.RawMessage `json:"plan"`
	Error           string          `json:"error,omitempty"`
}

// ERROR (server -> client), for envelopes that never reached dispatch.
type ErrorMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	RequestID       string `json:"request_id,omitempty"`
	Code            string `json:"code"`
	Message         string `json:"message,omitempty"`
}
