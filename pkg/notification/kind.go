// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package notification

import "strings"

// Kind tags where a notification came from.
type Kind int

const (
	KindIncomingRequest Kind = iota
	Reach
	Admin
	EndReason
)

// String returns the wire/log name of the kind.
func (k Kind) String() string {
	switch k {
	case KindIncomingRequest:
		return "incoming_request"
	case Reach:
		return "reach"
	case Admin:
		return "admin"
	case EndReason:
		return "end_reason"
	default:
		return "unknown"
	}
}

// ParseKind maps an admin-feed kind tag onto a Kind. Broadcasts arrive as
// "admin_push"; anything unrecognised is an admin broadcast. Incoming requests
// only come from the requests poller, so the feed never yields that kind.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reach", "reached":
		return Reach
	case "end_reason", "match_end":
		return EndReason
	default:
		return Admin
	}
}

// Action is a button offered next to a notification.
type Action string

const (
	ActionAccept  Action = "accept"
	ActionDecline Action = "decline"
	ActionDismiss Action = "dismiss"
)

// Presentation holds everything a renderer needs to draw one kind.
type Presentation struct {
	Avatar  string
	Actions []Action
}

// Presentation resolves the render attributes for k.
func (k Kind) Presentation() Presentation {
	switch k {
	case KindIncomingRequest:
		return Presentation{Avatar: "i", Actions: []Action{ActionAccept, ActionDecline}}
	case Reach:
		return Presentation{Avatar: "R", Actions: []Action{ActionDismiss}}
	case Admin:
		return Presentation{Avatar: "A", Actions: []Action{ActionDismiss}}
	default:
		return Presentation{Avatar: "i", Actions: []Action{ActionDismiss}}
	}
}
