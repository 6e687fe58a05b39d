package auth

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"radagast/internal/domain"
	apperrors "radagast/internal/errors"
)

// Identity headers are installed by the upstream verifier; token checking
// itself happens before the request reaches this process. Requests without
// them are anonymous customers.
const (
	RoleHeader     = "X-Auth-Role"
	LocationHeader = "X-Auth-Location"
)

type ctxKey struct{}

// Middleware maps the verified identity to an Actor and stores it in the
// request context. A worker identity without a valid location is rejected:
// the combination is unrepresentable downstream.
func Middleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := actorFromHeaders(r)
			if err != nil {
				logger.Warn("rejected identity",
					zap.String("role", r.Header.Get(RoleHeader)),
					zap.String("location", r.Header.Get(LocationHeader)),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(apperrors.HTTPStatus(err))
				w.Write([]byte(`{"message":"` + err.Error() + `"}`))
				return
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func actorFromHeaders(r *http.Request) (domain.Actor, error) {
	switch r.Header.Get(RoleHeader) {
	case "", string(domain.RoleCustomer):
		return domain.Customer(), nil
	case string(domain.RoleAdmin):
		return domain.Admin(), nil
	case string(domain.RoleWorker):
		loc, ok := domain.ParseLocation(r.Header.Get(LocationHeader))
		if !ok {
			return domain.Actor{}, apperrors.NewUnauthorizedError("worker identity requires a valid location")
		}
		return domain.Worker(loc), nil
	default:
		return domain.Actor{}, apperrors.NewUnauthorizedError("unknown role")
	}
}

// ActorFrom returns the actor attached by Middleware, defaulting to an
// anonymous customer.
func ActorFrom(ctx context.Context) domain.Actor {
	if actor, ok := ctx.Value(ctxKey{}).(domain.Actor); ok {
		return actor
	}
	return domain.Customer()
}

func RequireAdmin(actor domain.Actor) error {
	if !actor.IsAdmin() {
		return apperrors.NewForbiddenError("only the administrator may perform this operation")
	}
	return nil
}

func RequireAdminOrWorker(actor domain.Actor) error {
	if !actor.IsAdmin() && !actor.IsWorker() {
		return apperrors.NewForbiddenError("only the administrator or a worker may perform this operation")
	}
	return nil
}
