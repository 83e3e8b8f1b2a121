package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eon-group/expiring-link-service/internal/app/model"
	"github.com/eon-group/expiring-link-service/internal/app/store"
	"github.com/eon-group/expiring-link-service/internal/infra/metrics"
)

// LinkService defines behaviour-level operations on expiring links.
type LinkService interface {
	CreateLink(ctx context.Context, input CreateLinkInput) (*model.Link, error)
	Resolve(ctx context.Context, identifier string) Resolution
}

// CreateLinkInput captures data required to register an expiring link.
// ExpiresIn is a TTL in minutes; the handler rejects non-positive values
// before the service is reached.
type CreateLinkInput struct {
	URL                string
	ExpiresIn          int
	ExpiresOnAccess    bool
	ExpiredRedirectURL string
}

// ResolutionKind enumerates the possible outcomes of a resolve.
type ResolutionKind int

const (
	// ResolveRedirect redirects the visitor to the link's target.
	ResolveRedirect ResolutionKind = iota
	// ResolveExpiredRedirect redirects to the configured expired-redirect URL.
	ResolveExpiredRedirect
	// ResolveExpiredPage serves the default expired HTML page. Also covers
	// unknown identifiers and store read failures: a record we cannot load
	// is indistinguishable from an expired one.
	ResolveExpiredPage
)

// Resolution is the outcome of resolving an identifier. Location is set for
// the redirect kinds only.
type Resolution struct {
	Kind     ResolutionKind
	Location string
}

type linkService struct {
	store  store.LinkStore
	events *EventPublisher
	logger *zap.Logger
}

// NewLinkService returns a service backed by the given store. The event
// publisher may be nil when NATS is not configured.
func NewLinkService(st store.LinkStore, events *EventPublisher, logger *zap.Logger) LinkService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &linkService{store: st, events: events, logger: logger}
}

func (s *linkService) CreateLink(ctx context.Context, input CreateLinkInput) (*model.Link, error) {
	now := time.Now().UTC()
	link := &model.Link{
		Identifier:         uuid.NewString(),
		TargetURL:          input.URL,
		ExpiresAt:          now.Add(time.Duration(input.ExpiresIn) * time.Minute),
		ExpiresOnAccess:    input.ExpiresOnAccess,
		ExpiredRedirectURL: input.ExpiredRedirectURL,
		CreatedAt:          now,
	}

	if err := s.store.Insert(ctx, link); err != nil {
		metrics.LinksCreatedTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("create link: %w", err)
	}

	metrics.LinksCreatedTotal.WithLabelValues("ok").Inc()
	s.publish(model.LinkEventCreated, link.Identifier)
	return link, nil
}

func (s *linkService) Resolve(ctx context.Context, identifier string) Resolution {
	link, err := s.store.Get(ctx, identifier)
	if err != nil {
		// A read failure degrades to the expired page rather than an error
		// status, same as a missing record.
		if !errors.Is(err, store.ErrLinkNotFound) {
			s.logger.Error("failed to load link record",
				zap.Error(err), zap.String("identifier", identifier))
		}
		metrics.ResolvesTotal.WithLabelValues("expired_page").Inc()
		return Resolution{Kind: ResolveExpiredPage}
	}

	if link.ExpiredAt(time.Now().UTC()) {
		if link.ExpiredRedirectURL != "" {
			metrics.ResolvesTotal.WithLabelValues("expired_redirect").Inc()
			return Resolution{Kind: ResolveExpiredRedirect, Location: link.ExpiredRedirectURL}
		}
		metrics.ResolvesTotal.WithLabelValues("expired_page").Inc()
		return Resolution{Kind: ResolveExpiredPage}
	}

	if link.ExpiresOnAccess {
		s.forceExpire(ctx, link)
	}

	metrics.ResolvesTotal.WithLabelValues("redirect").Inc()
	return Resolution{Kind: ResolveRedirect, Location: link.TargetURL}
}

// forceExpire rewrites the record's expiry to the Unix epoch so every later
// resolve sees it as expired. The overwrite is last-write-wins: concurrent
// first accesses may each redirect before one of the writes lands, which is
// accepted. A failed write is logged and the current visitor still gets
// their redirect.
func (s *linkService) forceExpire(ctx context.Context, link *model.Link) {
	expired := *link
	expired.ExpiresAt = time.Unix(0, 0).UTC()

	if err := s.store.Replace(ctx, &expired); err != nil {
		metrics.ForceExpireFailuresTotal.Inc()
		s.logger.Error("failed to force-expire link",
			zap.Error(err), zap.String("identifier", link.Identifier))
		return
	}
	s.publish(model.LinkEventExpired, link.Identifier)
}

func (s *linkService) publish(eventType, identifier string) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(eventType, identifier); err != nil {
		s.logger.Warn("failed to publish link event",
			zap.Error(err), zap.String("type", eventType), zap.String("identifier", identifier))
	}
}
