package models

import "time"

// CurrentTimeModel reports the server clock, used by clients to check liveness.
type CurrentTimeModel struct {
	ReadableTime string `json:"readableTime"`
	Time         int64  `json:"time"`
	Uptime       string `json:"uptime"`
}

// NewCurrentTimeModel describes t, with uptime measured from started.
func NewCurrentTimeModel(t, started time.Time) CurrentTimeModel {
	return CurrentTimeModel{
		ReadableTime: t.Format(time.RFC3339),
		Time:         t.UnixMilli(),
		Uptime:       t.Sub(started).Truncate(time.Second).String(),
	}
}
