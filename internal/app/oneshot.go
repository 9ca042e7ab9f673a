// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-spotlight-session/pkg/api"
	"github.com/AccelByte/extend-spotlight-session/pkg/location"
	"github.com/AccelByte/extend-spotlight-session/pkg/match"
)

// CheckInClient is the part of the API used by the one-shot commands.
type CheckInClient interface {
	CheckIn(ctx context.Context, in api.CheckIn) error
	CheckOut(ctx context.Context) error
}

// CheckIn goes live once at a fixed position without starting a session.
func CheckIn(ctx context.Context, client CheckInClient, lat, lon float64, req match.CheckInRequest) error {
	if !location.Valid(location.Sample{Lat: lat, Lon: lon, Timestamp: time.Now()}) {
		return match.ErrInvalidSample
	}
	place := strings.TrimSpace(req.Place)
	intent := strings.TrimSpace(req.Intent)
	if place == "" || intent == "" {
		return match.ErrCheckInIncomplete
	}

	err := client.CheckIn(ctx, api.CheckIn{
		Lat:      lat,
		Lon:      lon,
		Place:    place,
		Intent:   intent,
		MeetTime: req.MeetTime,
		Bill:     req.Bill,
		Clue:     req.Clue,
	})
	if err != nil {
		return err
	}
	logrus.Infof("checked in at %s", place)
	return nil
}

// CheckOut stops broadcasting once.
func CheckOut(ctx context.Context, client CheckInClient) error {
	if err := client.CheckOut(ctx); err != nil {
		return err
	}
	logrus.Info("checked out")
	return nil
}
