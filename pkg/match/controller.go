// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package match

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-spotlight-session/pkg/api"
	"github.com/AccelByte/extend-spotlight-session/pkg/eventloop"
	"github.com/AccelByte/extend-spotlight-session/pkg/notification"
	"github.com/AccelByte/extend-spotlight-session/pkg/poller"
	"github.com/AccelByte/extend-spotlight-session/pkg/view"
)

var (
	ErrNoActiveMatch      = errors.New("no active match")
	ErrMatchActive        = errors.New("match in progress")
	ErrNoIncomingRequest  = errors.New("no incoming request")
	ErrNoOutcome          = errors.New("no match outcome to acknowledge")
	ErrLocationNotReady   = errors.New("location not ready")
	ErrInvalidSample      = errors.New("invalid location sample")
	ErrCheckInIncomplete  = errors.New("place and intent are required")
	ErrUnknownUser        = errors.New("unknown user")
	ErrNoReportTarget     = errors.New("no report target")
	ErrSubmitInFlight     = errors.New("feedback submission in flight")
	ErrPostMatchFlow      = errors.New("post-match flow active")
	ErrFeedbackTargetGone = errors.New("feedback target unavailable")
)

// API is the subset of the Spotlight client the controller drives.
type API interface {
	UserInfo(ctx context.Context) (api.UserInfo, error)
	LiveStatus(ctx context.Context) (api.LiveStatus, error)
	Nearby(ctx context.Context, lat, lon float64) ([]api.NearbyUser, error)
	CheckRequests(ctx context.Context) (api.RequestCheck, error)
	SendRequest(ctx context.Context, receiverID api.ID) error
	RespondRequest(ctx context.Context, requestID api.ID, action api.RequestAction) (api.Result, error)
	MatchStatus(ctx context.Context) (api.MatchStatus, error)
	MarkReached(ctx context.Context) error
	EndMatch(ctx context.Context, reason string) (api.Result, error)
	FeedbackTarget(ctx context.Context) (api.FeedbackTarget, error)
	SubmitFeedback(ctx context.Context, reviewedID api.ID, rating int, comment string) error
	Notifications(ctx context.Context) ([]api.Notification, error)
	ReportUser(ctx context.Context, targetID api.ID, message string) error
	ReportApp(ctx context.Context, message string) error
	CheckIn(ctx context.Context, in api.CheckIn) error
	CheckOut(ctx context.Context) error
	MyFeedback(ctx context.Context) (api.FeedbackSummary, error)
	UserFeedback(ctx context.Context, userID api.ID) (api.FeedbackSummary, error)
}

// Pollers is what the controller needs from the scheduler.
type Pollers interface {
	Start(id string) error
	Stop(id string)
	Running(id string) bool
}

// Observer receives lifecycle events. Calls happen on the event loop and must not block.
type Observer interface {
	ScreenChanged(from, to view.Screen)
	MatchEnded(matchID string, flow FlowType)
	NotificationPushed(n notification.Notification, added bool)
}

// Observers fans events out to several observers.
type Observers []Observer

func (o Observers) ScreenChanged(from, to view.Screen) {
	for _, obs := range o {
		obs.ScreenChanged(from, to)
	}
}

func (o Observers) MatchEnded(matchID string, flow FlowType) {
	for _, obs := range o {
		obs.MatchEnded(matchID, flow)
	}
}

func (o Observers) NotificationPushed(n notification.Notification, added bool) {
	for _, obs := range o {
		obs.NotificationPushed(n, added)
	}
}

// Controller drives the match lifecycle. Every exported method except the
// Poll* tasks must be called on the event loop.
type Controller struct {
	sc       *SessionContext
	api      API
	pollers  Pollers
	runner   eventloop.Runner
	observer Observer

	// epoch advances on every lifecycle transition; poll results issued under
	// an older epoch are dropped. Written on the loop, read from poll goroutines.
	epoch atomic.Uint64
}

// NewController wires the controller. observer may be nil.
func NewController(sc *SessionContext, client API, pollers Pollers, runner eventloop.Runner, observer Observer) *Controller {
	if observer == nil {
		observer = Observers(nil)
	}
	return &Controller{
		sc:       sc,
		api:      client,
		pollers:  pollers,
		runner:   runner,
		observer: observer,
	}
}

// Context returns the owned session context. Loop only.
func (c *Controller) Context() *SessionContext {
	return c.sc
}

// Screen returns the visible screen. Loop only.
func (c *Controller) Screen() view.Screen {
	return c.sc.View.Current()
}

// Start begins browsing: request, trust, notifications and match-status pollers
// plus an initial user info and live status fetch.
func (c *Controller) Start() {
	for _, id := range []string{poller.Requests, poller.Trust, poller.Notifications, poller.MatchStatus} {
		c.startPoller(id)
	}
	c.RefreshUserInfo()
	c.RefreshLiveStatus()
	c.RefreshNearby()
}

func (c *Controller) advance() {
	c.epoch.Add(1)
}

func (c *Controller) show(screen view.Screen) {
	from := c.sc.View.Current()
	c.sc.View.Show(screen)
	if from != screen {
		c.observer.ScreenChanged(from, screen)
	}
}

func (c *Controller) alert(message string) {
	c.sc.View.Alert(message)
}

func (c *Controller) push(kind notification.Kind, title, message, key string) {
	n, added := c.sc.Notifications.Push(kind, title, message, key)
	c.observer.NotificationPushed(n, added)
}

func (c *Controller) startPoller(id string) {
	if err := c.pollers.Start(id); err != nil {
		logrus.Warnf("unable to start poller %s: %v", id, err)
	}
}

// enterMatch opens a fresh session for matchID (possibly empty until the
// first match-status snapshot names it).
func (c *Controller) enterMatch(matchID string) {
	c.advance()
	c.sc.Match = &Session{MatchID: matchID}
	c.sc.RequestPending = false
	c.sc.SelectedEndReason = ""
	c.sc.Notifications.SetIncoming(nil)

	c.pollers.Stop(poller.Requests)
	c.startPoller(poller.MatchStatus)

	logrus.Infof("entered match %q", matchID)
	c.show(view.Matched)
}

// endSession moves a finished match to the post-match screen and starts
// resolving who to rate.
func (c *Controller) endSession(flow FlowType) {
	s := c.sc.Match
	c.advance()
	s.Ended = true
	s.ending = false
	c.sc.closedMatchID = s.MatchID
	c.sc.RequestPending = false

	c.pollers.Stop(poller.MatchStatus)

	outcome := NewOutcome(flow, c.sc.EndNotice)
	c.sc.Outcome = &outcome

	logrus.Infof("match %q ended: %s", s.MatchID, flow)
	c.observer.MatchEnded(s.MatchID, flow)
	c.show(view.PostMatchOutcome)

	c.resolveFeedbackTarget(false)
}

// resolveFeedbackTarget engages the gate once the server names the peer.
// With fallback set, an unresolvable target drops the user back to browsing.
func (c *Controller) resolveFeedbackTarget(fallback bool) {
	issued := c.epoch.Load()
	c.runner.Go(func(ctx context.Context) eventloop.Continuation {
		target, err := c.api.FeedbackTarget(ctx)
		return func() {
			if c.epoch.Load() != issued || c.sc.Outcome == nil {
				return
			}
			if err != nil || target.ID == "" {
				logrus.Debugf("feedback target unavailable: %v", err)
				if fallback {
					c.closeSession()
					c.resumeBrowsing()
				}
				return
			}
			c.sc.Gate.RequireFeedback(feedbackTarget(target))
			if fallback {
				c.show(view.FeedbackRequired)
			}
		}
	})
}

// closeSession forgets the finished match and the post-match copy.
func (c *Controller) closeSession() {
	c.advance()
	c.sc.Match = nil
	c.sc.Outcome = nil
	c.sc.EndNotice = nil
	c.sc.SelectedEndReason = ""
	c.sc.RequestPending = false
}

// resumeBrowsing shows the app shell and restarts the browsing pollers.
func (c *Controller) resumeBrowsing() {
	c.show(view.AppShell)
	c.startPoller(poller.Requests)
	c.startPoller(poller.MatchStatus)
	c.RefreshNearby()
	c.RefreshUserInfo()
	c.RefreshLiveStatus()
}
