package middleware

import (
	"context"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/GregMSThompson/sales-dashboard/internal/errs"
	"github.com/GregMSThompson/sales-dashboard/pkg/logger"
)

const (
	SessionHeader = "X-Session-ID"
	SessionCookie = "sid"

	maxSessionIDLen = 128
)

type errorHandler interface {
	HandleError(w http.ResponseWriter, r *http.Request, err error)
}

// Session resolves the caller's session id: the authenticated UID when auth
// is on, else the X-Session-ID header, else the sid cookie, else a fresh
// UUID which is handed back as a cookie. The id is echoed in the response
// header and added to the request logger. Invalid ids are passed to eh as a
// ValidationError.
func Session(eh errorHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return sessionHandler(eh, next)
	}
}

func sessionHandler(eh errorHandler, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := UID(r.Context())
		if sid == "" {
			sid = r.Header.Get(SessionHeader)
		}
		if sid == "" {
			if c, err := r.Cookie(SessionCookie); err == nil {
				sid = c.Value
			}
		}
		if sid == "" {
			sid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		if !validSessionID(sid) {
			eh.HandleError(w, r, errs.NewValidationError("invalid session id"))
			return
		}

		w.Header().Set(SessionHeader, sid)
		_, ctx := logger.With(r.Context(), "session_id", sid)
		ctx = context.WithValue(ctx, SessionIDKey, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Session ids double as Firestore document ids, so the reserved names
// ".", ".." and __name__ are refused too.
func validSessionID(sid string) bool {
	switch {
	case len(sid) > maxSessionIDLen, !utf8.ValidString(sid):
		return false
	case strings.ContainsAny(sid, "/ \t\r\n"):
		return false
	case sid == "." || sid == "..":
		return false
	case len(sid) >= 4 && strings.HasPrefix(sid, "__") && strings.HasSuffix(sid, "__"):
		return false
	}
	return true
}

func SessionID(ctx context.Context) string {
	sid, _ := ctx.Value(SessionIDKey).(string)
	return sid
}
