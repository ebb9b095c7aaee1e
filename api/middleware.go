package api

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/digitalairlines/internal/cache"
	"github.com/Domenick1991/digitalairlines/internal/domain"
	"github.com/Domenick1991/digitalairlines/internal/metrics"
	"github.com/Domenick1991/digitalairlines/internal/policy"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	requestIDKey  = "request_id"
	callerKey     = "caller"
	requestHeader = "X-Request-ID"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestHeader, id)
		c.Next()
	}
}

func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := log.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
			"request_id": c.GetString(requestIDKey),
		}
		if caller := callerFrom(c); caller.Authenticated() {
			fields["user"] = caller.Username
		}
		log.WithFields(fields).Info("request")
	}
}

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

type SessionReader interface {
	Get(ctx context.Context, id string) (*cache.Session, error)
}

type TokenParser interface {
	Parse(raw string) (string, error)
}

type CallerResolver interface {
	Resolve(ctx context.Context, username string) (domain.Caller, error)
}

// Authenticator turns a session cookie or a bearer token into a Caller.
type Authenticator struct {
	resolver   CallerResolver
	sessions   SessionReader
	tokens     TokenParser
	cookieName string
}

// NewAuthenticator builds the middleware source. sessions may be nil when
// only bearer tokens are accepted.
func NewAuthenticator(resolver CallerResolver, sessions SessionReader, tokens TokenParser, cookieName string) *Authenticator {
	return &Authenticator{resolver: resolver, sessions: sessions, tokens: tokens, cookieName: cookieName}
}

func (a *Authenticator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		username, err := a.username(c)
		if err != nil {
			writeError(c, err)
			return
		}
		caller, err := a.resolver.Resolve(c.Request.Context(), username)
		if err != nil {
			writeError(c, err)
			return
		}
		c.Set(callerKey, caller)
		c.Next()
	}
}

// username returns "" for anonymous requests. A bad token counts as anonymous.
func (a *Authenticator) username(c *gin.Context) (string, error) {
	if raw, ok := bearer(c.GetHeader("Authorization")); ok && a.tokens != nil {
		username, err := a.tokens.Parse(raw)
		if err != nil {
			log.WithError(err).WithField("request_id", c.GetString(requestIDKey)).Debug("bearer token rejected")
			return "", nil
		}
		return username, nil
	}

	if a.sessions == nil {
		return "", nil
	}
	id, err := c.Cookie(a.cookieName)
	if err != nil || id == "" {
		return "", nil
	}
	session, err := a.sessions.Get(c.Request.Context(), id)
	if err != nil {
		return "", fmt.Errorf("%w: read session: %v", domain.ErrStoreUnavailable, err)
	}
	if session == nil {
		return "", nil
	}
	return session.Username, nil
}

func bearer(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}

// RequireLogin rejects anonymous callers before any handler work.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !callerFrom(c).Authenticated() {
			writeError(c, domain.ErrUnauthenticated)
			return
		}
		c.Next()
	}
}

// authorize checks op up front so a malformed body never outranks a role error.
func authorize(c *gin.Context, op policy.Operation) bool {
	if err := policy.Authorize(callerFrom(c), op); err != nil {
		writeError(c, err)
		return false
	}
	return true
}

func callerFrom(c *gin.Context) domain.Caller {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(domain.Caller); ok {
			return caller
		}
	}
	return domain.Caller{}
}
