// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/AccelByte/extend-spotlight-session/pkg/api"
	"github.com/AccelByte/extend-spotlight-session/pkg/api/mock"
	"github.com/AccelByte/extend-spotlight-session/pkg/eventloop"
	"github.com/AccelByte/extend-spotlight-session/pkg/match"
	"github.com/AccelByte/extend-spotlight-session/pkg/view"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line     string
		expected Command
	}{
		{
			line:     "send_request 12",
			expected: Command{Name: "send_request", Args: []string{"12"}, Options: map[string]string{}},
		},
		{
			line:     "END_MATCH Running late",
			expected: Command{Name: "end_match", Args: []string{"Running", "late"}, Options: map[string]string{}},
		},
		{
			line: "checkin place=Blue Tokai intent=coffee meet_time=18:00",
			expected: Command{Name: "checkin", Options: map[string]string{
				"place": "Blue Tokai", "intent": "coffee", "meet_time": "18:00",
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := Parse(tt.line)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := Parse("   "); !errors.Is(err, ErrEmptyCommand) {
		t.Errorf("Parse(blank) = %v, expected ErrEmptyCommand", err)
	}
}

func TestTable_RegisterAndDispatch(t *testing.T) {
	table := NewTable()
	called := 0
	if err := table.Register("ping", func(Command) error { called++; return nil }); err != nil {
		t.Fatal(err)
	}
	if err := table.Register("ping", func(Command) error { return nil }); err == nil {
		t.Error("duplicate Register() should fail")
	}

	if err := table.Dispatch(Command{Name: "ping"}); err != nil || called != 1 {
		t.Errorf("Dispatch(ping) = %v, called = %d", err, called)
	}
	if err := table.Dispatch(Command{Name: "pong"}); !errors.Is(err, ErrUnknownIntent) {
		t.Errorf("Dispatch(pong) = %v, expected ErrUnknownIntent", err)
	}

	if err := table.Unregister("ping"); err != nil {
		t.Fatal(err)
	}
	if table.Count() != 0 {
		t.Errorf("Count() = %d after Unregister()", table.Count())
	}
}

type noPollers struct{}

func (noPollers) Start(string) error { return nil }

func (noPollers) Stop(string) {}

func (noPollers) Running(string) bool { return false }

func TestBuiltins_DriveController(t *testing.T) {
	client := mock.NewClient()
	client.FeedbackTargetFunc = func(ctx context.Context) (api.FeedbackTarget, error) {
		return api.FeedbackTarget{ID: "42", Username: "sam"}, nil
	}
	var rated int
	client.SubmitFeedbackFunc = func(ctx context.Context, reviewedID api.ID, rating int, comment string) error {
		rated = rating
		return nil
	}

	ctrl := match.NewController(match.NewSessionContext(nil), client, noPollers{}, eventloop.Inline{}, nil)
	table := NewTable()
	if err := RegisterBuiltins(table, ctrl); err != nil {
		t.Fatal(err)
	}

	run := func(line string) error {
		cmd, err := Parse(line)
		if err != nil {
			return err
		}
		return table.Dispatch(cmd)
	}

	ctrl.HandleMatchStatus(api.MatchStatus{Matched: true, MatchID: "m1"})
	if err := run("end_match"); !errors.Is(err, match.ErrReasonRequired) {
		t.Fatalf("end_match without reason = %v, expected ErrReasonRequired", err)
	}
	if err := run("end_match Plans changed"); err != nil {
		t.Fatal(err)
	}
	if ctrl.Screen() != view.PostMatchOutcome {
		t.Fatalf("Screen() = %v, expected PostMatchOutcome", ctrl.Screen())
	}

	for _, line := range []string{"acknowledge", "select_rating 8", "submit_feedback thanks"} {
		if err := run(line); err != nil {
			t.Fatalf("%s: %v", line, err)
		}
	}
	if rated != 8 || ctrl.Screen() != view.AppShell {
		t.Errorf("rated = %d, screen = %v", rated, ctrl.Screen())
	}

	if err := run("select_rating ten"); err == nil {
		t.Error("non-numeric rating should fail")
	}
	if err := run("send_request"); !errors.Is(err, ErrMissingArgument) {
		t.Errorf("send_request without id = %v, expected ErrMissingArgument", err)
	}
	if err := run("location 12.9 77.6"); err != nil {
		t.Errorf("location = %v", err)
	}
	if !ctrl.Context().Location.Ready() {
		t.Error("location intent did not reach the smoother")
	}
}
