// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const statusSubmitted = "submitted"

func (c *Client) UserInfo(ctx context.Context) (UserInfo, error) {
	var out UserInfo
	err := c.do(ctx, http.MethodGet, "/api/user_info", nil, nil, &out)
	return out, err
}

func (c *Client) LiveStatus(ctx context.Context) (LiveStatus, error) {
	var out LiveStatus
	err := c.do(ctx, http.MethodGet, "/api/my_live_status", nil, nil, &out)
	return out, err
}

// Nearby lists discoverable users around lat/lon.
func (c *Client) Nearby(ctx context.Context, lat, lon float64) ([]NearbyUser, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	var out []NearbyUser
	err := c.do(ctx, http.MethodGet, "/api/nearby", query, nil, &out)
	return out, err
}

func (c *Client) CheckRequests(ctx context.Context) (RequestCheck, error) {
	var out RequestCheck
	err := c.do(ctx, http.MethodGet, "/api/check_requests", nil, nil, &out)
	return out, err
}

func (c *Client) SendRequest(ctx context.Context, receiverID ID) error {
	body := map[string]interface{}{"receiver_id": receiverID}
	return c.do(ctx, http.MethodPost, "/api/send_request", nil, body, nil)
}

func (c *Client) RespondRequest(ctx context.Context, requestID ID, action RequestAction) (Result, error) {
	body := map[string]interface{}{"request_id": requestID, "action": action}
	var out Result
	err := c.do(ctx, http.MethodPost, "/api/respond_request", nil, body, &out)
	return out, err
}

func (c *Client) MatchStatus(ctx context.Context) (MatchStatus, error) {
	var out MatchStatus
	err := c.do(ctx, http.MethodGet, "/api/match_status", nil, nil, &out)
	return out, err
}

func (c *Client) MarkReached(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/mark_reached", nil, map[string]interface{}{}, nil)
}

// EndMatch ends the active match. Ending an already ended match succeeds with
// Note "already_ended".
func (c *Client) EndMatch(ctx context.Context, reason string) (Result, error) {
	var out Result
	err := c.do(ctx, http.MethodPost, "/api/end_match", nil, map[string]string{"reason": reason}, &out)
	return out, err
}

func (c *Client) FeedbackTarget(ctx context.Context) (FeedbackTarget, error) {
	var out FeedbackTarget
	err := c.do(ctx, http.MethodGet, "/api/feedback_target", nil, nil, &out)
	return out, err
}

// SubmitFeedback rates reviewedID. Only {"status":"submitted"} counts as success.
func (c *Client) SubmitFeedback(ctx context.Context, reviewedID ID, rating int, comment string) error {
	body := map[string]interface{}{
		"reviewed_id": reviewedID,
		"rating":      rating,
		"comment":     comment,
	}
	var out Result
	if err := c.do(ctx, http.MethodPost, "/api/submit_feedback", nil, body, &out); err != nil {
		return err
	}
	if out.Status != statusSubmitted {
		return fmt.Errorf("%w: submit_feedback status %q", ErrUnexpectedResponse, out.Status)
	}
	return nil
}

func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	var out notificationsResponse
	err := c.do(ctx, http.MethodGet, "/api/notifications", nil, nil, &out)
	return out.Notifications, err
}

func (c *Client) ReportUser(ctx context.Context, targetID ID, message string) error {
	body := map[string]interface{}{"target_id": targetID, "message": message}
	return c.do(ctx, http.MethodPost, "/api/report_user", nil, body, nil)
}

func (c *Client) ReportApp(ctx context.Context, message string) error {
	return c.do(ctx, http.MethodPost, "/api/report_app", nil, map[string]string{"message": message}, nil)
}

func (c *Client) CheckIn(ctx context.Context, in CheckIn) error {
	return c.do(ctx, http.MethodPost, "/api/checkin", nil, in, nil)
}

func (c *Client) CheckOut(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/checkout", nil, map[string]interface{}{}, nil)
}

func (c *Client) MyFeedback(ctx context.Context) (FeedbackSummary, error) {
	var out FeedbackSummary
	err := c.do(ctx, http.MethodGet, "/api/my_feedback", nil, nil, &out)
	return out, err
}

// UserFeedback fetches the public rating summary of another user.
func (c *Client) UserFeedback(ctx context.Context, userID ID) (FeedbackSummary, error) {
	var out FeedbackSummary
	err := c.do(ctx, http.MethodGet, "/api/user_feedback/"+url.PathEscape(string(userID)), nil, nil, &out)
	return out, err
}
