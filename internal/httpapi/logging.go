package httpapi

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// zlog is an optional structured logger. If unset, falls back to log.Printf.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = &l }

// Prompt content is never logged; only paths, sizes and durations.

func logStart(r *http.Request, op string) {
	if zlog == nil {
		return
	}
	z := zlog.Debug().Str("op", op).Str("path", r.URL.Path)
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		z = z.Str("request_id", rid)
	}
	z.Msg("request start")
}

func logEnd(r *http.Request, op string, status int, dur time.Duration) {
	if zlog == nil {
		log.Printf("%s end status=%d dur=%s", op, status, dur)
		return
	}
	z := zlog.Info().Str("op", op).Int("status", status).Dur("dur", dur)
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		z = z.Str("request_id", rid)
	}
	z.Msg("request end")
}

func logError(r *http.Request, status int, dur time.Duration, err error) {
	if zlog == nil {
		log.Printf("request end status=%d dur=%s err=%v", status, dur, err)
		return
	}
	z := zlog.Warn().Int("status", status).Dur("dur", dur).Err(err)
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		z = z.Str("request_id", rid)
	}
	z.Msg("request failed")
}

func logEncodeFailure(err error) {
	if zlog == nil {
		log.Printf("response encode failed: %v", err)
		return
	}
	zlog.Error().Err(err).Msg("response encode failed")
}
