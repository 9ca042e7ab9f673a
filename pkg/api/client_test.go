// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.Client(), srv.URL+"/", "session=abc")
}

func TestClient_MatchStatusDecodesLooseTypes(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/match_status" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Cookie"); got != "session=abc" {
			t.Errorf("Cookie = %q, expected session=abc", got)
		}
		_, _ = io.WriteString(w, `{"matched":1,"match_id":17,"i_reached":true,"other_reached":0,"ended_by_other":null,"ended_by":"","end_reason":""}`)
	})

	got, err := c.MatchStatus(context.Background())
	if err != nil {
		t.Fatalf("MatchStatus() = %v", err)
	}
	expected := MatchStatus{Matched: true, MatchID: "17", IReached: true}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("MatchStatus() mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_ErrorCodes(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		expectedCode string
	}{
		{name: "reason required", status: 400, body: `{"error":"reason_required"}`, expectedCode: CodeReasonRequired},
		{name: "empty 401", status: 401, body: `{}`, expectedCode: CodeUnauthorized},
		{name: "status field", status: 409, body: `{"status":"already_sent"}`, expectedCode: CodeAlreadySent},
		{name: "not json", status: 500, body: `oops`, expectedCode: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := c.EndMatch(context.Background(), "")
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("EndMatch() error = %v, expected *Error", err)
			}
			if apiErr.Status != tt.status || apiErr.Code != tt.expectedCode {
				t.Errorf("error = %+v, expected status %d code %q", apiErr, tt.status, tt.expectedCode)
			}
			if StatusOf(err) != tt.status {
				t.Errorf("StatusOf() = %d, expected %d", StatusOf(err), tt.status)
			}
		})
	}
}

func TestClient_SubmitFeedback(t *testing.T) {
	var body map[string]interface{}
	status := `{"status":"submitted"}`
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, expected POST", r.Method)
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = io.WriteString(w, status)
	})

	if err := c.SubmitFeedback(context.Background(), "42", 9, "great"); err != nil {
		t.Fatalf("SubmitFeedback() = %v", err)
	}
	// numeric ids go out as numbers
	if body["reviewed_id"] != float64(42) || body["rating"] != float64(9) || body["comment"] != "great" {
		t.Errorf("request body = %v", body)
	}

	status = `{"status":"queued"}`
	if err := c.SubmitFeedback(context.Background(), "42", 9, ""); !errors.Is(err, ErrUnexpectedResponse) {
		t.Errorf("SubmitFeedback() with wrong status = %v, expected ErrUnexpectedResponse", err)
	}
}

func TestClient_NearbyQueryAndDecode(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("lat") != "12.5" || r.URL.Query().Get("lon") != "-3.25" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		_, _ = io.WriteString(w, `[{"id":3,"lat":12.51,"lon":-3.25,"username":"kai","trust_score":null,"place":"Cafe"}]`)
	})

	users, err := c.Nearby(context.Background(), 12.5, -3.25)
	if err != nil {
		t.Fatalf("Nearby() = %v", err)
	}
	if len(users) != 1 || users[0].ID != "3" || users[0].Username != "kai" || users[0].TrustScore != 0 {
		t.Errorf("Nearby() = %+v", users)
	}
}

func TestClient_CheckRequests(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"type":"incoming","data":{"id":8,"username":"sam"}}`)
	})

	check, err := c.CheckRequests(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	req, ok := check.Incoming()
	if !ok || req.ID != "8" || req.Username != "sam" {
		t.Errorf("Incoming() = %+v, %v", req, ok)
	}

	if _, ok := (RequestCheck{Type: "none"}).Incoming(); ok {
		t.Error("type none should carry no request")
	}
}

func TestClient_Notifications(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"notifications":[{"id":1,"title":"","message":"Maintenance tonight"}]}`)
	})

	got, err := c.Notifications(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "1" || got[0].Message != "Maintenance tonight" {
		t.Errorf("Notifications() = %+v", got)
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := NewClient(srv.Client(), srv.URL, "")
	srv.Close()

	if _, err := c.UserInfo(context.Background()); err == nil {
		t.Error("UserInfo() against a closed server should fail")
	}
}

func TestID_JSON(t *testing.T) {
	tests := []struct {
		in       string
		expected ID
	}{
		{`12`, "12"},
		{`"m1"`, "m1"},
		{`null`, ""},
	}
	for _, tt := range tests {
		var id ID
		if err := json.Unmarshal([]byte(tt.in), &id); err != nil {
			t.Fatalf("Unmarshal(%s) = %v", tt.in, err)
		}
		if id != tt.expected {
			t.Errorf("Unmarshal(%s) = %q, expected %q", tt.in, id, tt.expected)
		}
	}

	marshalTests := []struct {
		in       ID
		expected string
	}{
		{"12", `12`},
		{"0", `0`},
		{"m1", `"m1"`},
		{"007", `"007"`},
		{"-4", `-4`},
		{"99999999999999999999", `"99999999999999999999"`},
		{"", `""`},
	}
	for _, tt := range marshalTests {
		out, err := json.Marshal(tt.in)
		if err != nil {
			t.Fatalf("Marshal(%q) = %v", tt.in, err)
		}
		if string(out) != tt.expected {
			t.Errorf("Marshal(%q) = %s, expected %s", tt.in, out, tt.expected)
		}
		if !json.Valid(out) {
			t.Errorf("Marshal(%q) produced invalid JSON %s", tt.in, out)
		}
	}
}

func TestFlag_JSON(t *testing.T) {
	tests := map[string]Flag{
		`true`: true, `false`: false, `1`: true, `0`: false, `null`: false, `"1"`: true,
	}
	for in, expected := range tests {
		var f Flag
		if err := json.Unmarshal([]byte(in), &f); err != nil {
			t.Fatalf("Unmarshal(%s) = %v", in, err)
		}
		if f != expected {
			t.Errorf("Unmarshal(%s) = %v, expected %v", in, f, expected)
		}
	}

	var f Flag
	if err := json.Unmarshal([]byte(`"maybe"`), &f); err == nil {
		t.Error("Unmarshal(maybe) should fail")
	}
}
