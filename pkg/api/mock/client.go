// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package mock

import (
	"context"
	"sync"

	"github.com/AccelByte/extend-spotlight-session/pkg/api"
)

// Client is a fake Spotlight API. Unset Func fields return zero values.
// Calls records every invoked method name in order.
type Client struct {
	UserInfoFunc       func(ctx context.Context) (api.UserInfo, error)
	LiveStatusFunc     func(ctx context.Context) (api.LiveStatus, error)
	NearbyFunc         func(ctx context.Context, lat, lon float64) ([]api.NearbyUser, error)
	CheckRequestsFunc  func(ctx context.Context) (api.RequestCheck, error)
	SendRequestFunc    func(ctx context.Context, receiverID api.ID) error
	RespondRequestFunc func(ctx context.Context, requestID api.ID, action api.RequestAction) (api.Result, error)
	MatchStatusFunc    func(ctx context.Context) (api.MatchStatus, error)
	MarkReachedFunc    func(ctx context.Context) error
	EndMatchFunc       func(ctx context.Context, reason string) (api.Result, error)
	FeedbackTargetFunc func(ctx context.Context) (api.FeedbackTarget, error)
	SubmitFeedbackFunc func(ctx context.Context, reviewedID api.ID, rating int, comment string) error
	NotificationsFunc  func(ctx context.Context) ([]api.Notification, error)
	ReportUserFunc     func(ctx context.Context, targetID api.ID, message string) error
	ReportAppFunc      func(ctx context.Context, message string) error
	CheckInFunc        func(ctx context.Context, in api.CheckIn) error
	CheckOutFunc       func(ctx context.Context) error
	MyFeedbackFunc     func(ctx context.Context) (api.FeedbackSummary, error)
	UserFeedbackFunc   func(ctx context.Context, userID api.ID) (api.FeedbackSummary, error)

	mu    sync.Mutex
	calls []string
}

// NewClient creates a fake with no behaviour configured.
func NewClient() *Client {
	return &Client{}
}

func (m *Client) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

// Calls returns the method names invoked so far.
func (m *Client) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times name was invoked.
func (m *Client) CallCount(name string) int {
	n := 0
	for _, c := range m.Calls() {
		if c == name {
			n++
		}
	}
	return n
}

func (m *Client) UserInfo(ctx context.Context) (api.UserInfo, error) {
	m.record("UserInfo")
	if m.UserInfoFunc != nil {
		return m.UserInfoFunc(ctx)
	}
	return api.UserInfo{}, nil
}

func (m *Client) LiveStatus(ctx context.Context) (api.LiveStatus, error) {
	m.record("LiveStatus")
	if m.LiveStatusFunc != nil {
		return m.LiveStatusFunc(ctx)
	}
	return api.LiveStatus{}, nil
}

func (m *Client) Nearby(ctx context.Context, lat, lon float64) ([]api.NearbyUser, error) {
	m.record("Nearby")
	if m.NearbyFunc != nil {
		return m.NearbyFunc(ctx, lat, lon)
	}
	return nil, nil
}

func (m *Client) CheckRequests(ctx context.Context) (api.RequestCheck, error) {
	m.record("CheckRequests")
	if m.CheckRequestsFunc != nil {
		return m.CheckRequestsFunc(ctx)
	}
	return api.RequestCheck{Type: "none"}, nil
}

func (m *Client) SendRequest(ctx context.Context, receiverID api.ID) error {
	m.record("SendRequest")
	if m.SendRequestFunc != nil {
		return m.SendRequestFunc(ctx, receiverID)
	}
	return nil
}

func (m *Client) RespondRequest(ctx context.Context, requestID api.ID, action api.RequestAction) (api.Result, error) {
	m.record("RespondRequest")
	if m.RespondRequestFunc != nil {
		return m.RespondRequestFunc(ctx, requestID, action)
	}
	return api.Result{Status: "matched"}, nil
}

func (m *Client) MatchStatus(ctx context.Context) (api.MatchStatus, error) {
	m.record("MatchStatus")
	if m.MatchStatusFunc != nil {
		return m.MatchStatusFunc(ctx)
	}
	return api.MatchStatus{}, nil
}

func (m *Client) MarkReached(ctx context.Context) error {
	m.record("MarkReached")
	if m.MarkReachedFunc != nil {
		return m.MarkReachedFunc(ctx)
	}
	return nil
}

func (m *Client) EndMatch(ctx context.Context, reason string) (api.Result, error) {
	m.record("EndMatch")
	if m.EndMatchFunc != nil {
		return m.EndMatchFunc(ctx, reason)
	}
	return api.Result{Status: "ended"}, nil
}

func (m *Client) FeedbackTarget(ctx context.Context) (api.FeedbackTarget, error) {
	m.record("FeedbackTarget")
	if m.FeedbackTargetFunc != nil {
		return m.FeedbackTargetFunc(ctx)
	}
	return api.FeedbackTarget{}, &api.Error{Status: 404, Code: api.CodeNoMatch, Endpoint: "/api/feedback_target"}
}

func (m *Client) SubmitFeedback(ctx context.Context, reviewedID api.ID, rating int, comment string) error {
	m.record("SubmitFeedback")
	if m.SubmitFeedbackFunc != nil {
		return m.SubmitFeedbackFunc(ctx, reviewedID, rating, comment)
	}
	return nil
}

func (m *Client) Notifications(ctx context.Context) ([]api.Notification, error) {
	m.record("Notifications")
	if m.NotificationsFunc != nil {
		return m.NotificationsFunc(ctx)
	}
	return nil, nil
}

func (m *Client) ReportUser(ctx context.Context, targetID api.ID, message string) error {
	m.record("ReportUser")
	if m.ReportUserFunc != nil {
		return m.ReportUserFunc(ctx, targetID, message)
	}
	return nil
}

func (m *Client) ReportApp(ctx context.Context, message string) error {
	m.record("ReportApp")
	if m.ReportAppFunc != nil {
		return m.ReportAppFunc(ctx, message)
	}
	return nil
}

func (m *Client) CheckIn(ctx context.Context, in api.CheckIn) error {
	m.record("CheckIn")
	if m.CheckInFunc != nil {
		return m.CheckInFunc(ctx, in)
	}
	return nil
}

func (m *Client) CheckOut(ctx context.Context) error {
	m.record("CheckOut")
	if m.CheckOutFunc != nil {
		return m.CheckOutFunc(ctx)
	}
	return nil
}

func (m *Client) MyFeedback(ctx context.Context) (api.FeedbackSummary, error) {
	m.record("MyFeedback")
	if m.MyFeedbackFunc != nil {
		return m.MyFeedbackFunc(ctx)
	}
	return api.FeedbackSummary{}, nil
}

func (m *Client) UserFeedback(ctx context.Context, userID api.ID) (api.FeedbackSummary, error) {
	m.record("UserFeedback")
	if m.UserFeedbackFunc != nil {
		return m.UserFeedbackFunc(ctx, userID)
	}
	return api.FeedbackSummary{}, nil
}
