package geofence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"safecircle/internal/geo"
	dErrors "safecircle/pkg/domain-errors"
)

// FamilyLister resolves the family ids a user belongs to. It is an external
// collaborator (the user directory); the service only needs the ids to build
// the applicable-geofence union.
type FamilyLister interface {
	FamilyIDsOf(ctx context.Context, userID string) ([]string, error)
}

// StatusEvictor drops cached breach state for a deleted geofence so a
// re-created region with the same id starts from a clean first observation.
type StatusEvictor interface {
	Evict(ctx context.Context, geofenceID string) error
}

// Service owns geofence validation and lifecycle. Records that fail
// validation are never handed to the store, which keeps the detection path
// free of per-evaluation checks.
type Service struct {
	store    Store
	families FamilyLister
	evictor  StatusEvictor
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock function for testability.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(store Store, families FamilyLister, evictor StatusEvictor, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:    store,
		families: families,
		evictor:  evictor,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Create validates the spec, assigns an id and timestamps, and persists the
// geofence under the given owner.
func (s *Service) Create(ctx context.Context, owner Owner, spec Spec) (Geofence, error) {
	if err := validateCenter(spec.Center); err != nil {
		return Geofence{}, err
	}
	if err := validateRadius(spec.RadiusMeters); err != nil {
		return Geofence{}, err
	}
	now := s.now()
	g := Geofence{
		ID:                   uuid.NewString(),
		Owner:                owner,
		Name:                 spec.Name,
		Type:                 spec.Type,
		Center:               spec.Center,
		RadiusMeters:         spec.RadiusMeters,
		BreachPolicy:         spec.BreachPolicy,
		NotificationsEnabled: spec.NotificationsEnabled,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.store.Insert(ctx, g); err != nil {
		return Geofence{}, dErrors.Wrap(dErrors.CodeInternal, "persist geofence", err)
	}
	return g, nil
}

// Update applies the supplied fields to an existing geofence. Nil fields are
// left unchanged; any supplied coordinate or radius is validated the same way
// as on create. UpdatedAt is refreshed on success.
func (s *Service) Update(ctx context.Context, owner Owner, id string, spec PartialSpec) (Geofence, error) {
	if spec.Center != nil {
		if err := validateCenter(*spec.Center); err != nil {
			return Geofence{}, err
		}
	}
	if spec.RadiusMeters != nil {
		if err := validateRadius(*spec.RadiusMeters); err != nil {
			return Geofence{}, err
		}
	}

	g, err := s.store.Get(ctx, owner, id)
	if err != nil {
		return Geofence{}, translateStoreErr(err, "load geofence")
	}

	if spec.Name != nil {
		g.Name = *spec.Name
	}
	if spec.Type != nil {
		g.Type = *spec.Type
	}
	if spec.Center != nil {
		g.Center = *spec.Center
	}
	if spec.RadiusMeters != nil {
		g.RadiusMeters = *spec.RadiusMeters
	}
	if spec.BreachPolicy != nil {
		g.BreachPolicy = *spec.BreachPolicy
	}
	if spec.NotificationsEnabled != nil {
		g.NotificationsEnabled = *spec.NotificationsEnabled
	}
	g.UpdatedAt = s.now()

	if err := s.store.Update(ctx, g); err != nil {
		return Geofence{}, translateStoreErr(err, "update geofence")
	}
	return g, nil
}

// Delete removes the geofence and evicts every cached breach status keyed to
// it. Eviction failures are logged, not surfaced: stale entries for a deleted
// geofence are unreachable and get reaped on the next pass.
func (s *Service) Delete(ctx context.Context, owner Owner, id string) error {
	if err := s.store.Delete(ctx, owner, id); err != nil {
		return translateStoreErr(err, "delete geofence")
	}
	if s.evictor != nil {
		if err := s.evictor.Evict(ctx, id); err != nil {
			s.logger.WarnContext(ctx, "breach status eviction failed",
				"geofence_id", id,
				"error", err.Error(),
			)
		}
	}
	return nil
}

// List returns the owner's geofences in creation order.
func (s *Service) List(ctx context.Context, owner Owner) ([]Geofence, error) {
	list, err := s.store.ListByOwner(ctx, owner)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "list geofences", err)
	}
	return list, nil
}

// ListApplicable returns the union of the user's own geofences and the
// geofences of every family the user belongs to. Ids are only unique within
// an owner, so the union is a concatenation; consumers key state by
// (user, geofence id) which cannot collide across the two owner types because
// ids are assigned from a single uuid space at creation.
func (s *Service) ListApplicable(ctx context.Context, userID string) ([]Geofence, error) {
	own, err := s.store.ListByOwner(ctx, Owner{Type: OwnerUser, ID: userID})
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "list user geofences", err)
	}

	familyIDs, err := s.families.FamilyIDsOf(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "resolve families", err)
	}
	if len(familyIDs) == 0 {
		return own, nil
	}

	familyFences, err := s.store.ListForFamilies(ctx, familyIDs)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "list family geofences", err)
	}
	return append(own, familyFences...), nil
}

func validateCenter(c geo.Coordinate) error {
	if !c.Valid() {
		return dErrors.New(dErrors.CodeInvalidCoordinate,
			"latitude must be within [-90, 90] and longitude within [-180, 180]")
	}
	return nil
}

func validateRadius(radius int) error {
	if radius < MinRadiusMeters || radius > MaxRadiusMeters {
		return dErrors.New(dErrors.CodeInvalidRadius,
			fmt.Sprintf("radius must be between %d and %d meters", MinRadiusMeters, MaxRadiusMeters))
	}
	return nil
}

func translateStoreErr(err error, op string) error {
	if errors.Is(err, ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "geofence not found")
	}
	return dErrors.Wrap(dErrors.CodeInternal, op, err)
}
