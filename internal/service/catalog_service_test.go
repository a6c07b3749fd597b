package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flamecloud/flamecloud-api/internal/domain"
	apperrors "github.com/flamecloud/flamecloud-api/pkg/util"
)

func newCatalogFixture(t *testing.T) (*CatalogService, *fakeUserRepo, *fakeFreePlanRepo) {
	t.Helper()
	users := newFakeUserRepo()
	freePlans := newFakeFreePlanRepo()
	svc := NewCatalogService(CatalogDependencies{
		FreePlanRepo: freePlans,
		UserRepo:     users,
	})
	return svc, users, freePlans
}

func TestClaimFreePlan(t *testing.T) {
	svc, users, freePlans := newCatalogFixture(t)
	user := users.add(&domain.User{Username: "customer", Email: "customer@example.com"})

	plan := &domain.FreePlan{Name: "starter", Active: true}
	require.NoError(t, freePlans.Create(context.Background(), plan))

	err := svc.ClaimFreePlan(context.Background(), user, plan.ID, "203.0.113.9")
	require.NoError(t, err)

	stored, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, stored.HasClaimedFreePlan)
	require.NotNil(t, stored.ClaimedIP)
	assert.Equal(t, "203.0.113.9", *stored.ClaimedIP)
}

func TestClaimFreePlanOnlyOnce(t *testing.T) {
	svc, users, freePlans := newCatalogFixture(t)
	user := users.add(&domain.User{Username: "customer", Email: "customer@example.com", HasClaimedFreePlan: true})

	plan := &domain.FreePlan{Name: "starter", Active: true}
	require.NoError(t, freePlans.Create(context.Background(), plan))

	err := svc.ClaimFreePlan(context.Background(), user, plan.ID, "203.0.113.9")
	require.Error(t, err)
	assert.Equal(t, "INVARIANT_VIOLATION", apperrors.ToDomainError(err).Code)
}

func TestClaimFreePlanUnknownPlan(t *testing.T) {
	svc, users, _ := newCatalogFixture(t)
	user := users.add(&domain.User{Username: "customer", Email: "customer@example.com"})

	err := svc.ClaimFreePlan(context.Background(), user, "missing-id", "203.0.113.9")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestClaimFreePlanInactivePlan(t *testing.T) {
	svc, users, freePlans := newCatalogFixture(t)
	user := users.add(&domain.User{Username: "customer", Email: "customer@example.com"})

	plan := &domain.FreePlan{Name: "retired", Active: false}
	require.NoError(t, freePlans.Create(context.Background(), plan))

	err := svc.ClaimFreePlan(context.Background(), user, plan.ID, "203.0.113.9")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestListFreePlansFiltersInactive(t *testing.T) {
	svc, _, freePlans := newCatalogFixture(t)

	require.NoError(t, freePlans.Create(context.Background(), &domain.FreePlan{Name: "live", Active: true}))
	require.NoError(t, freePlans.Create(context.Background(), &domain.FreePlan{Name: "retired", Active: false}))

	plans, err := svc.ListFreePlans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "live", plans[0].Name)
}

func TestSaveFreePlanRequiresName(t *testing.T) {
	svc, _, _ := newCatalogFixture(t)

	err := svc.SaveFreePlan(context.Background(), &domain.FreePlan{Name: "  "})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}
