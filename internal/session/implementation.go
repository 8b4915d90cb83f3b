// internal/session/implementation.go
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"storefront/internal/catalog"
	"storefront/internal/localstore"
	"storefront/internal/notify"
	"storefront/internal/obs"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already in use")
	ErrRateLimited        = errors.New("rate limit exceeded")
)

// blobKey is the durable-storage key owned by the session store.
// The credential is never part of the persisted record.
const blobKey = "user"

// service implements the Service interface.
type service struct {
	mu         sync.Mutex
	user       *User
	registered map[string]*catalog.User

	catalog  catalog.Service
	blobs    localstore.BlobStore
	sink     notify.Sink
	verifier Verifier
	limiter  *rate.Limiter
	metrics  *obs.Metrics
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewService creates a session store, restoring a persisted identity
// if one is present and parseable; otherwise the session starts
// anonymous.
func NewService(ctx context.Context, cat catalog.Service, blobs localstore.BlobStore, sink notify.Sink, verifier Verifier, limiter *rate.Limiter, metrics *obs.Metrics, logger *slog.Logger) Service {
	s := &service{
		registered: make(map[string]*catalog.User),
		catalog:    cat,
		blobs:      blobs,
		sink:       sink,
		verifier:   verifier,
		limiter:    limiter,
		metrics:    metrics,
		logger:     logger,
		tracer:     otel.Tracer("storefront/session"),
	}
	s.restore(ctx)
	return s
}

func (s *service) restore(ctx context.Context) {
	data, ok, err := s.blobs.Get(ctx, blobKey)
	if err != nil {
		s.logger.Error("restore session", "err", err)
		return
	}
	if !ok {
		return
	}

	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		s.logger.Error("discarding corrupt session blob", "err", err)
		return
	}
	s.user = &user
}

// Login binds the session to the user matching email and credential.
// On failure the session is left exactly as it was.
func (s *service) Login(ctx context.Context, email, credential string) (*User, error) {
	ctx, span := s.tracer.Start(ctx, "session.login",
		trace.WithAttributes(attribute.String("email", email)),
	)
	defer span.End()

	if !s.limiter.Allow() {
		s.logger.Warn("login rate limited", "email", email)
		s.sink.Publish(notify.Error("Too many attempts, try again later"))
		s.recordOp(ctx, "login", false)
		return nil, ErrRateLimited
	}

	account, found := s.lookupAccount(email)
	if found {
		ok, err := s.verifier.Verify(credential, account.Credential)
		if err != nil {
			s.logger.Error("verify credential", "err", err)
			found = false
		} else {
			found = ok
		}
	}
	if !found {
		s.logger.Warn("login rejected", "email", email)
		s.sink.Publish(notify.Error("Invalid email or password"))
		s.recordOp(ctx, "login", false)
		return nil, ErrInvalidCredentials
	}

	user := &User{ID: account.ID, Email: account.Email, Name: account.Name, Role: account.Role}

	s.mu.Lock()
	s.user = user
	s.persist(ctx)
	s.mu.Unlock()

	s.sink.Publish(notify.Success("Logged in successfully"))
	s.recordOp(ctx, "login", true)
	s.logger.Info("login", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// lookupAccount resolves an email against the static user set first,
// then against accounts registered during this session.
func (s *service) lookupAccount(email string) (*catalog.User, bool) {
	if account, ok := s.catalog.UserByEmail(email); ok {
		return account, true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.registered[normalizeEmail(email)]
	return account, ok
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a fresh identity and binds the session to it. The
// static user set is never mutated; the id comes from the catalog's
// collision-safe allocator and the credential is held only as an
// argon2 hash, so the new account can log back in for the lifetime of
// this store.
func (s *service) Register(ctx context.Context, email, credential, name string) (*User, error) {
	ctx, span := s.tracer.Start(ctx, "session.register",
		trace.WithAttributes(attribute.String("email", email)),
	)
	defer span.End()

	if !s.limiter.Allow() {
		s.logger.Warn("register rate limited", "email", email)
		s.sink.Publish(notify.Error("Too many attempts, try again later"))
		s.recordOp(ctx, "register", false)
		return nil, ErrRateLimited
	}

	if _, exists := s.lookupAccount(email); exists {
		s.logger.Warn("register rejected", "email", email, "reason", "email taken")
		s.sink.Publish(notify.Error("Email already in use"))
		s.recordOp(ctx, "register", false)
		return nil, ErrEmailTaken
	}

	hashed, err := HashArgon2(credential)
	if err != nil {
		s.logger.Error("hash credential", "err", err)
		s.recordOp(ctx, "register", false)
		return nil, err
	}

	user := &User{
		ID:    s.catalog.AllocateUserID(),
		Email: email,
		Name:  name,
		Role:  catalog.RoleUser,
	}

	s.mu.Lock()
	s.registered[normalizeEmail(email)] = &catalog.User{
		ID:         user.ID,
		Email:      email,
		Name:       name,
		Role:       catalog.RoleUser,
		Credential: "argon2:" + hashed,
	}
	s.user = user
	s.persist(ctx)
	s.mu.Unlock()

	s.sink.Publish(notify.Success("Registered successfully"))
	s.recordOp(ctx, "register", true)
	s.logger.Info("register", "user_id", user.ID)
	return user, nil
}

// Logout clears the session and removes the persisted identity. The
// cart and wishlist are deliberately untouched.
func (s *service) Logout(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "session.logout")
	defer span.End()

	s.mu.Lock()
	s.user = nil
	if err := s.blobs.Delete(ctx, blobKey); err != nil {
		s.logger.Error("delete session blob", "err", err)
	}
	s.mu.Unlock()

	s.sink.Publish(notify.Success("Logged out successfully"))
	s.recordOp(ctx, "logout", true)
	return nil
}

// Current returns the bound identity, if any.
func (s *service) Current() (*User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, false
	}
	user := *s.user
	return &user, true
}

func (s *service) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}

func (s *service) IsAdmin() bool {
	user, ok := s.Current()
	return ok && user.IsAdmin()
}

func (s *service) persist(ctx context.Context) {
	data, err := json.Marshal(s.user)
	if err != nil {
		s.logger.Error("marshal session", "err", err)
		return
	}
	if err := s.blobs.Put(ctx, blobKey, data); err != nil {
		s.logger.Error("persist session", "err", err)
	}
}

func (s *service) recordOp(ctx context.Context, op string, ok bool) {
	s.metrics.StoreOps.Add(ctx, 1, metric.WithAttributes(
		attribute.String("store", "session"),
		attribute.String("op", op),
		attribute.Bool("ok", ok),
	))
}
