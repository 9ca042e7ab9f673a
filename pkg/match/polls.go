// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package match

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-spotlight-session/pkg/api"
	"github.com/AccelByte/extend-spotlight-session/pkg/eventloop"
	"github.com/AccelByte/extend-spotlight-session/pkg/feedback"
	"github.com/AccelByte/extend-spotlight-session/pkg/location"
	"github.com/AccelByte/extend-spotlight-session/pkg/notification"
)

const (
	adminDefaultTitle = "Admin Update"
	adminDefaultKind  = "admin_push"
)

func feedbackTarget(t api.FeedbackTarget) feedback.Target {
	return feedback.Target{UserID: t.ID.String(), Username: t.Username}
}

// deliver posts apply to the loop unless a lifecycle transition happened
// after the request was issued.
func (c *Controller) deliver(issued uint64, name string, apply func()) {
	c.runner.Post(func() {
		if c.epoch.Load() != issued {
			logrus.Debugf("dropping stale %s response", name)
			return
		}
		apply()
	})
}

// PollMatchStatus is the match_status poller task.
func (c *Controller) PollMatchStatus(ctx context.Context) error {
	issued := c.epoch.Load()
	status, err := c.api.MatchStatus(ctx)
	if err != nil {
		return err
	}
	c.deliver(issued, "match status", func() { c.HandleMatchStatus(status) })
	return nil
}

// PollRequests is the requests poller task.
func (c *Controller) PollRequests(ctx context.Context) error {
	issued := c.epoch.Load()
	check, err := c.api.CheckRequests(ctx)
	if err != nil {
		return err
	}
	c.deliver(issued, "requests", func() { c.HandleRequests(check) })
	return nil
}

// PollUserInfo is the trust poller task.
func (c *Controller) PollUserInfo(ctx context.Context) error {
	issued := c.epoch.Load()
	info, err := c.api.UserInfo(ctx)
	if err != nil {
		return err
	}
	c.deliver(issued, "user info", func() { c.HandleUserInfo(info) })
	return nil
}

// PollNotifications is the notifications poller task. Admin broadcasts are
// applied whatever the lifecycle state.
func (c *Controller) PollNotifications(ctx context.Context) error {
	items, err := c.api.Notifications(ctx)
	if err != nil {
		return err
	}
	c.runner.Post(func() { c.HandleNotifications(items) })
	return nil
}

// HandleMatchStatus applies one match-status snapshot. Snapshots are
// independent; reached flags are overwritten except for an optimistic
// self-reached on the same match.
func (c *Controller) HandleMatchStatus(status api.MatchStatus) {
	if c.sc.InPostMatch() {
		return
	}
	id := status.MatchID.String()

	if !status.Matched {
		if c.sc.Match != nil && !c.sc.Match.Ended {
			c.matchDisappeared(status)
		}
		return
	}

	if c.sc.Match == nil {
		if id != "" && id == c.sc.closedMatchID {
			logrus.Debugf("ignoring snapshot for closed match %s", id)
			return
		}
		c.enterMatch(id)
	} else if id != "" && c.sc.Match.MatchID != "" && c.sc.Match.MatchID != id {
		logrus.Infof("match changed from %s to %s", c.sc.Match.MatchID, id)
		c.enterMatch(id)
	}

	s := c.sc.Match
	if s.MatchID == "" {
		s.MatchID = id
	}

	if status.IReached {
		s.reachedServer = true
	}
	s.SelfReached = bool(status.IReached) || s.reachedLocal

	otherBefore := s.OtherReached
	s.OtherReached = bool(status.OtherReached)
	if s.OtherReached && !otherBefore {
		c.push(notification.Reach, "Your match has reached", "They are at the meetup spot.", "reach_"+s.MatchID)
	}
}

func (c *Controller) matchDisappeared(status api.MatchStatus) {
	s := c.sc.Match
	if status.IReached {
		s.SelfReached = true
	}
	if status.OtherReached {
		s.OtherReached = true
	}

	if s.MatchID == "" {
		s.MatchID = status.MatchID.String()
	}

	// The peer's end notice only applies to a match that was not completed and
	// whose id is known; the bell key is derived from it.
	if bool(status.EndedByOther) && !s.ending && !s.BothReached() && s.MatchID != "" {
		notice := NewEndNotice(s.MatchID, status.EndedBy, status.EndReason)
		s.EndedByOther = true
		s.EndedBy = notice.EndedBy
		s.EndReason = notice.Reason
		c.sc.EndNotice = &notice
		c.push(notification.EndReason, notice.Title(), notice.Message(), notice.DedupeKey())
	}

	c.endSession(Flow(s, c.sc.EndNotice))
}

// HandleRequests applies a requests poll. Ignored while a match or the
// post-match flow is active.
func (c *Controller) HandleRequests(check api.RequestCheck) {
	if c.sc.Match != nil || c.sc.InPostMatch() {
		return
	}
	req, ok := check.Incoming()
	if !ok {
		c.sc.Notifications.SetIncoming(nil)
		return
	}
	c.sc.Notifications.SetIncoming(&notification.IncomingRequest{
		ID:       req.ID.String(),
		Username: req.Username,
		SenderID: req.SenderID.String(),
	})
}

// HandleUserInfo refreshes the trust score and catches a match accepted by the peer.
func (c *Controller) HandleUserInfo(info api.UserInfo) {
	c.sc.TrustScore = info.TrustScore
	if bool(info.IsMatched) && c.sc.Match == nil && !c.sc.InPostMatch() {
		c.enterMatch("")
	}
}

// HandleNotifications merges the admin feed into the bell.
func (c *Controller) HandleNotifications(items []api.Notification) {
	for _, item := range items {
		if item.ID == "" {
			continue
		}
		kind := item.Kind
		if kind == "" {
			kind = adminDefaultKind
		}
		title := item.Title
		if title == "" {
			title = adminDefaultTitle
		}
		c.push(notification.ParseKind(kind), title, item.Message, "admin_"+item.ID.String())
	}
}

// HandleNearby stores the nearby list, closest first when a position is known.
func (c *Controller) HandleNearby(users []api.NearbyUser) {
	est, ok := c.sc.Location.Estimate()
	entries := make([]NearbyEntry, 0, len(users))
	for _, u := range users {
		e := NearbyEntry{NearbyUser: u}
		if ok {
			e.DistanceKm = location.Distance(est, location.Estimate{Lat: u.Lat, Lon: u.Lon})
			e.HasDistance = true
		}
		entries = append(entries, e)
	}
	if ok {
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].DistanceKm < entries[j].DistanceKm })
	}
	c.sc.Nearby = entries
}

func (c *Controller) HandleLiveStatus(status api.LiveStatus) {
	c.sc.Live = bool(status.Live)
}

// RefreshUserInfo fetches user info once outside the trust poller.
func (c *Controller) RefreshUserInfo() {
	issued := c.epoch.Load()
	c.runner.Go(func(ctx context.Context) eventloop.Continuation {
		info, err := c.api.UserInfo(ctx)
		if err != nil {
			logrus.Debugf("user info refresh failed: %v", err)
			return nil
		}
		return func() {
			if c.epoch.Load() == issued {
				c.HandleUserInfo(info)
			}
		}
	})
}

func (c *Controller) RefreshLiveStatus() {
	c.runner.Go(func(ctx context.Context) eventloop.Continuation {
		status, err := c.api.LiveStatus(ctx)
		if err != nil {
			logrus.Debugf("live status refresh failed: %v", err)
			return nil
		}
		return func() { c.HandleLiveStatus(status) }
	})
}

// RefreshNearby queries users around the current estimate. No-op until the first fix.
func (c *Controller) RefreshNearby() {
	est, ok := c.sc.Location.Estimate()
	if !ok {
		return
	}
	c.runner.Go(func(ctx context.Context) eventloop.Continuation {
		users, err := c.api.Nearby(ctx, est.Lat, est.Lon)
		if err != nil {
			logrus.Debugf("nearby refresh failed: %v", err)
			return nil
		}
		return func() { c.HandleNearby(users) }
	})
}

// FetchMyFeedback loads the ratings other users left for us.
func (c *Controller) FetchMyFeedback() {
	c.runner.Go(func(ctx context.Context) eventloop.Continuation {
		summary, err := c.api.MyFeedback(ctx)
		if err != nil {
			logrus.Debugf("my feedback fetch failed: %v", err)
			return nil
		}
		return func() { c.sc.MyFeedback = &summary }
	})
}
