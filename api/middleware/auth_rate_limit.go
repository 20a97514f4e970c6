package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/beggy/beggy-backend/api/responses"
	"github.com/beggy/beggy-backend/pkg/config"
	pkgerrors "github.com/beggy/beggy-backend/pkg/errors"
	"github.com/beggy/beggy-backend/pkg/logger"
)

// maxAuthPeekBytes bounds how much of a login/register body is read to find the email.
const maxAuthPeekBytes = 16 << 10

const (
	limitByIP    = "ip"
	limitByEmail = "email"
)

// authAttemptStore counts attempts in fixed windows. *redis.Client satisfies it.
type authAttemptStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
	AuthAttemptScope(policy, dimension, subject string) string
}

// AuthRateLimitPolicy caps attempts on one auth endpoint per client IP and per account email.
// A zero limit disables that dimension; a zero window disables the policy.
type AuthRateLimitPolicy struct {
	Name       string
	Window     time.Duration
	IPLimit    int
	EmailLimit int
}

func LoginRateLimitPolicy(cfg config.AuthRateLimitConfig) AuthRateLimitPolicy {
	return AuthRateLimitPolicy{
		Name:       "login",
		Window:     cfg.LoginWindow,
		IPLimit:    cfg.LoginIPLimit,
		EmailLimit: cfg.LoginEmailLimit,
	}
}

func RegisterRateLimitPolicy(cfg config.AuthRateLimitConfig) AuthRateLimitPolicy {
	return AuthRateLimitPolicy{
		Name:       "register",
		Window:     cfg.RegisterWindow,
		IPLimit:    cfg.RegisterIPLimit,
		EmailLimit: cfg.RegisterEmailLimit,
	}
}

func (p AuthRateLimitPolicy) enabled() bool {
	return p.Window > 0 && (p.IPLimit > 0 || p.EmailLimit > 0)
}

type attemptCounter struct {
	limitBy string
	subject string
	limit   int
}

// counters lists the windows a request is charged against, IP first.
func (p AuthRateLimitPolicy) counters(ip, emailHash string) []attemptCounter {
	out := make([]attemptCounter, 0, 2)
	if p.IPLimit > 0 && ip != "" {
		out = append(out, attemptCounter{limitBy: limitByIP, subject: ip, limit: p.IPLimit})
	}
	if p.EmailLimit > 0 && emailHash != "" {
		out = append(out, attemptCounter{limitBy: limitByEmail, subject: emailHash, limit: p.EmailLimit})
	}
	return out
}

// AuthRateLimit throttles credential guessing and signup floods on the public auth routes.
func AuthRateLimit(policy AuthRateLimitPolicy, store authAttemptStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var emailHash string
			if policy.EmailLimit > 0 {
				hash, err := peekEmailHash(r)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unreadable request body"))
					return
				}
				emailHash = hash
			}

			for _, c := range policy.counters(clientIP(r), emailHash) {
				scope := store.AuthAttemptScope(policy.Name, c.limitBy, c.subject)
				allowed, count, err := store.FixedWindowAllow(ctx, scope, int64(c.limit), policy.Window)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "auth rate limit unavailable"))
					return
				}
				if !allowed {
					rejectAuthAttempt(ctx, logg, w, policy, c, count)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func rejectAuthAttempt(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, policy AuthRateLimitPolicy, c attemptCounter, count int64) {
	windowSeconds := int(policy.Window.Seconds())
	if logg != nil {
		logg.Warn(logg.WithFields(ctx, map[string]any{
			"policy":   policy.Name,
			"limit_by": c.limitBy,
			"attempts": count,
			"limit":    c.limit,
		}), "auth.rate_limit.blocked")
	}

	w.Header().Set("Retry-After", strconv.Itoa(windowSeconds))
	err := pkgerrors.New(pkgerrors.CodeRateLimit, fmt.Sprintf("too many %s attempts, try again later", policy.Name)).
		WithDetails(map[string]any{
			"policy":         policy.Name,
			"limit_by":       c.limitBy,
			"limit":          c.limit,
			"window_seconds": windowSeconds,
		})
	responses.WriteError(ctx, nil, w, err)
}

// peekEmailHash reads the start of the body for an "email" field and restores the body for the handler.
// Bodies without a parseable email hash to "".
func peekEmailHash(r *http.Request) (string, error) {
	if r.Body == nil {
		return "", nil
	}
	head, err := io.ReadAll(io.LimitReader(r.Body, maxAuthPeekBytes))
	if err != nil {
		return "", err
	}
	r.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(head), r.Body), r.Body}

	var payload struct {
		Email string `json:"email"`
	}
	if json.Unmarshal(head, &payload) != nil {
		return "", nil
	}
	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if email == "" {
		return "", nil
	}
	sum := sha256.Sum256([]byte(email))
	return hex.EncodeToString(sum[:]), nil
}
