// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package match

import "fmt"

// FlowType classifies how a match ended.
type FlowType string

const (
	FlowCompleted  FlowType = "completed"
	FlowOtherEnded FlowType = "other_ended"
	FlowEnded      FlowType = "ended"
	FlowSelfEnded  FlowType = "self_ended"
)

const (
	defaultEndedBy   = "Your match"
	defaultEndReason = "No reason provided."
)

// Session is the live match. It is created when the server first reports
// matched and discarded once the feedback flow completes.
type Session struct {
	MatchID      string
	SelfReached  bool
	OtherReached bool
	Ended        bool
	EndReason    string
	EndedBy      string
	EndedByOther bool

	// reachedLocal is the optimistic mark-reached flag; it survives snapshots
	// of the same match that still report i_reached=false.
	reachedLocal bool
	// reachedServer is set once any snapshot confirmed i_reached.
	reachedServer bool
	// ending is set while our own end_match call is in flight.
	ending bool
}

// BothReached reports whether both parties confirmed arrival.
func (s *Session) BothReached() bool {
	return s.SelfReached && s.OtherReached
}

// EndNotice is what the peer told us when they ended the match.
type EndNotice struct {
	MatchID string
	EndedBy string
	Reason  string
}

// NewEndNotice fills the display defaults for missing fields.
func NewEndNotice(matchID, endedBy, reason string) EndNotice {
	if endedBy == "" {
		endedBy = defaultEndedBy
	}
	if reason == "" {
		reason = defaultEndReason
	}
	return EndNotice{MatchID: matchID, EndedBy: endedBy, Reason: reason}
}

// DedupeKey is the bell key for this notice.
func (n EndNotice) DedupeKey() string {
	return "end_" + n.MatchID
}

func (n EndNotice) Title() string {
	return n.EndedBy + " ended the match"
}

func (n EndNotice) Message() string {
	return "Reason: " + n.Reason
}

// Flow decides the flow type for a match that disappeared from the server.
func Flow(s *Session, notice *EndNotice) FlowType {
	switch {
	case s.ending && s.BothReached():
		return FlowCompleted
	case s.ending:
		return FlowSelfEnded
	case s.BothReached():
		return FlowCompleted
	case notice != nil:
		return FlowOtherEnded
	default:
		return FlowEnded
	}
}

// SelfEndFlow is the flow type after we ended the match ourselves.
func SelfEndFlow(s *Session) FlowType {
	if s.BothReached() {
		return FlowCompleted
	}
	return FlowSelfEnded
}

// Outcome is the copy shown on the post-match screen.
type Outcome struct {
	Flow     FlowType
	Title    string
	Subtitle string
	Badge    string
	Reason   string
	CTA      string
}

// NewOutcome builds the post-match copy. notice is only read for FlowOtherEnded.
func NewOutcome(flow FlowType, notice *EndNotice) Outcome {
	switch flow {
	case FlowOtherEnded:
		n := NewEndNotice("", "", "")
		if notice != nil {
			n = *notice
		}
		return Outcome{
			Flow:     flow,
			Title:    "Match Canceled",
			Subtitle: fmt.Sprintf("%s ended this match early.", n.EndedBy),
			Badge:    "Before meetup",
			Reason:   fmt.Sprintf("%s canceled the match. Reason: %s", n.EndedBy, n.Reason),
			CTA:      "Continue to Rating",
		}
	case FlowCompleted:
		return Outcome{
			Flow:     flow,
			Title:    "Match Completed",
			Subtitle: "Both of you reached. Nice job closing the meetup properly.",
			Badge:    "After meetup",
			CTA:      "Rate Your Experience",
		}
	case FlowEnded:
		return Outcome{
			Flow:     flow,
			Title:    "Match Ended",
			Subtitle: "This match ended. Share your quick rating to close this session.",
			Badge:    "Session closed",
			CTA:      "Continue to Rating",
		}
	default:
		return Outcome{
			Flow:     FlowSelfEnded,
			Title:    "Match Ended",
			Subtitle: "You ended this match. Share feedback to close this session.",
			Badge:    "Before meetup",
			CTA:      "Continue to Rating",
		}
	}
}
