// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Flag decodes the server's loosely typed booleans: true/false, 0/1, "1"/"true" and null.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	switch strings.ToLower(raw) {
	case "true", "1":
		*f = true
	case "false", "0", "null", "":
		*f = false
	default:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid flag %s", string(data))
		}
		*f = n != 0
	}
	return nil
}

// ID is a server identifier that may arrive as a number or a string.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s", string(data))
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes all-digit ids as numbers, which is what the server's
// integer columns expect.
func (id ID) MarshalJSON() ([]byte, error) {
	s := string(id)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && strconv.FormatInt(n, 10) == s {
		return []byte(s), nil
	}
	return json.Marshal(s)
}

func (id ID) String() string {
	return string(id)
}

type UserInfo struct {
	TrustScore  float64 `json:"trust_score"`
	IsMatched   Flag    `json:"is_matched"`
	MatchedWith ID      `json:"matched_with"`
}

type LiveStatus struct {
	Live Flag `json:"live"`
}

// NearbyUser is one discoverable user around the queried position.
type NearbyUser struct {
	ID         ID      `json:"id"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Username   string  `json:"username"`
	TrustScore float64 `json:"trust_score"`
	Bio        string  `json:"bio"`
	VibeTags   string  `json:"vibe_tags"`
	Place      string  `json:"place"`
	Intent     string  `json:"intent"`
	MeetTime   string  `json:"meet_time"`
	Clue       string  `json:"clue"`
}

const RequestTypeIncoming = "incoming"

type IncomingRequest struct {
	ID       ID     `json:"id"`
	Username string `json:"username"`
	SenderID ID     `json:"sender_id"`
}

// RequestCheck is the answer of /api/check_requests. Data is set only for
// Type == "incoming".
type RequestCheck struct {
	Type string           `json:"type"`
	Data *IncomingRequest `json:"data,omitempty"`
}

// Incoming returns the pending request, if the check carries one.
func (r RequestCheck) Incoming() (IncomingRequest, bool) {
	if r.Type != RequestTypeIncoming || r.Data == nil {
		return IncomingRequest{}, false
	}
	return *r.Data, true
}

// MatchStatus is one snapshot of the current match.
type MatchStatus struct {
	Matched      Flag   `json:"matched"`
	MatchID      ID     `json:"match_id"`
	IReached     Flag   `json:"i_reached"`
	OtherReached Flag   `json:"other_reached"`
	EndedByOther Flag   `json:"ended_by_other"`
	EndedBy      string `json:"ended_by"`
	EndReason    string `json:"end_reason"`
}

type FeedbackTarget struct {
	ID         ID      `json:"id"`
	Username   string  `json:"username"`
	TrustScore float64 `json:"trust_score"`
}

type Notification struct {
	ID      ID     `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

type notificationsResponse struct {
	Notifications []Notification `json:"notifications"`
}

// Review is one rating left by another user.
type Review struct {
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	By        string `json:"by"`
	CreatedAt string `json:"created_at"`
}

type FeedbackSummary struct {
	Average float64  `json:"average"`
	Count   int      `json:"count"`
	Reviews []Review `json:"reviews"`
}

// CheckIn is the broadcast posted to /api/checkin.
type CheckIn struct {
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Place    string  `json:"place"`
	Intent   string  `json:"intent"`
	MeetTime string  `json:"meet_time"`
	Bill     string  `json:"bill"`
	Clue     string  `json:"clue"`
}

// Result is the generic {status, note} acknowledgement.
type Result struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

type RequestAction string

const (
	Accept  RequestAction = "accept"
	Decline RequestAction = "decline"
)
