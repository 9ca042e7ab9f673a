// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package match

import (
	"github.com/AccelByte/extend-spotlight-session/pkg/api"
	"github.com/AccelByte/extend-spotlight-session/pkg/feedback"
	"github.com/AccelByte/extend-spotlight-session/pkg/location"
	"github.com/AccelByte/extend-spotlight-session/pkg/notification"
	"github.com/AccelByte/extend-spotlight-session/pkg/view"
)

// NearbyEntry is a nearby user annotated with the distance from our estimate.
type NearbyEntry struct {
	api.NearbyUser
	DistanceKm float64
	// HasDistance is false until a position is known.
	HasDistance bool
}

// SessionContext is every piece of client state, owned by the event loop.
// Components get references to its fields; nothing else holds session state.
type SessionContext struct {
	Location      *location.Smoother
	Notifications *notification.Queue
	Gate          *feedback.Gate
	View          *view.Controller

	Match          *Session
	RequestPending bool
	Outcome        *Outcome
	EndNotice      *EndNotice

	// SelectedEndReason is the preset chip chosen on the end-match modal.
	SelectedEndReason string

	TrustScore      float64
	Live            bool
	Nearby          []NearbyEntry
	SelectedUser    *NearbyEntry
	ProfileFeedback *api.FeedbackSummary
	MyFeedback      *api.FeedbackSummary

	// closedMatchID is the last match that went through the post-match flow.
	closedMatchID string
	submitting    bool
}

// NewSessionContext builds a fresh context rendering through renderer.
func NewSessionContext(renderer view.Renderer) *SessionContext {
	return &SessionContext{
		Location:      location.NewSmoother(location.DefaultWindow),
		Notifications: notification.NewQueue(notification.DefaultCapacity),
		Gate:          feedback.NewGate(),
		View:          view.NewController(renderer),
	}
}

// InPostMatch reports whether the post-match or feedback flow is active.
func (sc *SessionContext) InPostMatch() bool {
	return sc.Outcome != nil || sc.Gate.Engaged()
}

// Reached renders the current session's reached flags.
func (sc *SessionContext) Reached() (ReachedView, bool) {
	if sc.Match == nil {
		return ReachedView{}, false
	}
	return RenderReached(sc.Match.SelfReached, sc.Match.OtherReached), true
}
