package clients

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/meridian-ca/meridian/internal/compliance"
)

const bulkProfileConcurrency = 8

// Service provides client registration, lookup, and compliance
// profile resolution.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires a client Service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// WithNow overrides the service clock, for tests.
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create validates identifiers and persists a new client.
func (s *Service) Create(ctx context.Context, in CreateInput) (Client, error) {
	if err := in.Validate(); err != nil {
		return Client{}, err
	}
	c := Client{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		BusinessType: compliance.BusinessType(in.BusinessType),
		GSTIN:        in.GSTIN,
		PAN:          in.PAN,
		TAN:          in.TAN,
		CIN:          in.CIN,
		Turnover:     in.Turnover,
		Status:       StatusActive,
	}
	created, err := s.repo.Insert(ctx, c)
	if err != nil {
		return Client{}, err
	}
	s.logger.Info("client registered",
		slog.String("client_id", created.ID.String()),
		slog.String("business_type", string(created.BusinessType)))
	return created, nil
}

// Get returns a single client.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Client, error) {
	return s.repo.Get(ctx, id)
}

// List returns a page of clients plus the total count.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Client, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

// Update applies the non-nil fields of in to an existing client.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (Client, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return Client{}, err
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Email != nil {
		c.Email = *in.Email
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if in.Turnover != nil {
		c.Turnover = in.Turnover
	}
	if in.Status != nil {
		c.Status = *in.Status
	}
	return s.repo.Update(ctx, c)
}

// Delete removes a client record.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Profile resolves the compliance obligations for one client from its
// business type and declared turnover.
func (s *Service) Profile(ctx context.Context, id uuid.UUID) (ComplianceProfile, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return ComplianceProfile{}, err
	}
	reqs, err := compliance.Resolve(c.BusinessType, c.Turnover)
	if err != nil {
		return ComplianceProfile{}, fmt.Errorf("clients: profile %s: %w", id, err)
	}
	return ComplianceProfile{Client: c, Requirements: reqs}, nil
}

// BulkProfiles resolves compliance profiles for several clients
// concurrently. The result preserves the order of ids; a single
// missing client fails the whole batch.
func (s *Service) BulkProfiles(ctx context.Context, ids []uuid.UUID) ([]ComplianceProfile, error) {
	out := make([]ComplianceProfile, len(ids))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkProfileConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			p, err := s.Profile(gctx, id)
			if err != nil {
				return err
			}
			mu.Lock()
			out[i] = p
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ApplicableReturns flattens the distinct return filings across a set
// of profiles, sorted for stable output.
func ApplicableReturns(profiles []ComplianceProfile) []string {
	seen := map[string]struct{}{}
	for _, p := range profiles {
		for _, ret := range p.Requirements.ApplicableReturns {
			seen[string(ret)] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for ret := range seen {
		out = append(out, ret)
	}
	sort.Strings(out)
	return out
}
