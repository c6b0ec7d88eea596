package clients

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/meridian-ca/meridian/internal/compliance"
	"github.com/meridian-ca/meridian/internal/shared"
)

type fakeRepo struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]Client
	byPAN   map[string]uuid.UUID
	inserts int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[uuid.UUID]Client{}, byPAN: map[string]uuid.UUID{}}
}

func (f *fakeRepo) Insert(_ context.Context, c Client) (Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.PAN != nil {
		if _, exists := f.byPAN[*c.PAN]; exists {
			return Client{}, ErrDuplicatePAN
		}
		f.byPAN[*c.PAN] = c.ID
	}
	f.byID[c.ID] = c
	f.inserts++
	return c, nil
}

func (f *fakeRepo) Get(_ context.Context, id uuid.UUID) (Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[id]
	if !ok {
		return Client{}, ErrClientNotFound
	}
	return c, nil
}

func (f *fakeRepo) List(_ context.Context, limit, offset int) ([]Client, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Client, 0, len(f.byID))
	for _, c := range f.byID {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(_ context.Context, c Client) (Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[c.ID]; !ok {
		return Client{}, ErrClientNotFound
	}
	f.byID[c.ID] = c
	return c, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return ErrClientNotFound
	}
	delete(f.byID, id)
	return nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func strptr(s string) *string   { return &s }
func f64ptr(v float64) *float64 { return &v }

func validCreateInput() CreateInput {
	return CreateInput{
		Name:         "Sharma Traders",
		Email:        "accounts@sharmatraders.in",
		Phone:        "+91-98200-11111",
		BusinessType: string(compliance.BusinessPrivateLimited),
		GSTIN:        strptr("27ABCDE1234F1Z5"),
		PAN:          strptr("ABCDE1234F"),
		Turnover:     f64ptr(12_000_000),
	}
}

func TestCreateValidatesIdentifiers(t *testing.T) {
	svc := newTestService(newFakeRepo())

	in := validCreateInput()
	in.GSTIN = strptr("BADGSTIN")
	_, err := svc.Create(context.Background(), in)
	require.ErrorIs(t, err, shared.ErrInvalidInput)

	in = validCreateInput()
	in.PAN = strptr("1234567890")
	_, err = svc.Create(context.Background(), in)
	require.ErrorIs(t, err, shared.ErrInvalidInput)

	in = validCreateInput()
	in.BusinessType = "SOLE_TRADER"
	_, err = svc.Create(context.Background(), in)
	require.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestCreateAndGet(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	require.Equal(t, StatusActive, created.Status)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Name, got.Name)
}

func TestCreateRejectsDuplicatePAN(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	in := validCreateInput()
	in.Name = "Sharma Traders Two"
	_, err = svc.Create(context.Background(), in)
	require.ErrorIs(t, err, ErrDuplicatePAN)
}

func TestUpdateAppliesPartialFields(t *testing.T) {
	svc := newTestService(newFakeRepo())

	created, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	status := StatusInactive
	updated, err := svc.Update(context.Background(), created.ID, UpdateInput{
		Turnover: f64ptr(3_000_000),
		Status:   &status,
	})
	require.NoError(t, err)
	require.Equal(t, StatusInactive, updated.Status)
	require.Equal(t, 3_000_000.0, *updated.Turnover)
	require.Equal(t, created.Name, updated.Name)
}

func TestProfileResolvesObligationsFromTurnover(t *testing.T) {
	svc := newTestService(newFakeRepo())

	created, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	p, err := svc.Profile(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, compliance.Required, p.Requirements.GSTRegistration)
	require.Equal(t, compliance.Required, p.Requirements.Audit)
	require.Equal(t, compliance.Required, p.Requirements.CorporateFiling)
}

func TestBulkProfiles(t *testing.T) {
	svc := newTestService(newFakeRepo())

	ids := make([]uuid.UUID, 0, 5)
	for i := 0; i < 5; i++ {
		in := validCreateInput()
		pan := "ABCDE123" + string(rune('0'+i)) + "F"
		in.PAN = &pan
		in.GSTIN = nil
		created, err := svc.Create(context.Background(), in)
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	profiles, err := svc.BulkProfiles(context.Background(), ids)
	require.NoError(t, err)
	require.Len(t, profiles, 5)
	for i, p := range profiles {
		require.Equal(t, ids[i], p.Client.ID, "order must match input ids")
	}

	returns := ApplicableReturns(profiles)
	require.Contains(t, returns, string(compliance.CategoryROC))

	_, err = svc.BulkProfiles(context.Background(), append(ids, uuid.New()))
	require.ErrorIs(t, err, ErrClientNotFound)
}

func TestDeleteMissingClient(t *testing.T) {
	svc := newTestService(newFakeRepo())
	err := svc.Delete(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrClientNotFound)
}
