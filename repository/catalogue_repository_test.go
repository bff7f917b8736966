package repository

import (
	"context"
	"testing"

	"github.com/dcode-github/real_estate_portal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentRepository_DeleteDetachesProperties(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()
	agents := NewAgentRepository(db)
	props := NewPropertyRepository(db)

	agent := &models.Agent{Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, agents.Create(ctx, agent))
	assert.ErrorIs(t, agents.Create(ctx, &models.Agent{Name: "Other", Email: "ADA@example.com"}), ErrDuplicate)

	p := mustCreateProperty(t, props, models.Property{Name: "P", Price: 1, Location: "X", AgentID: &agent.ID})

	withProps, err := agents.GetWithProperties(ctx, agent.ID)
	require.NoError(t, err)
	assert.Len(t, withProps.Properties, 1)

	require.NoError(t, agents.Delete(ctx, agent.ID))

	list, err := agents.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := props.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AgentID)

	assert.ErrorIs(t, agents.Delete(ctx, agent.ID), ErrNotFound)
}

func TestCategoryRepository_UniqueAndDelete(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()
	cats := NewCategoryRepository(db)
	props := NewPropertyRepository(db)

	c := &models.Category{Name: "Apartments", Slug: "apartments"}
	require.NoError(t, cats.Create(ctx, c))
	assert.ErrorIs(t, cats.Create(ctx, &models.Category{Name: "apartments", Slug: "apartments"}), ErrDuplicate)

	other := &models.Category{Name: "Villas", Slug: "villas"}
	require.NoError(t, cats.Create(ctx, other))
	other.Name = "APARTMENTS"
	assert.ErrorIs(t, cats.Update(ctx, other), ErrDuplicate)

	p := mustCreateProperty(t, props, models.Property{Name: "P", Price: 1, Location: "X", CategoryID: &c.ID})
	require.NoError(t, cats.Delete(ctx, c.ID))

	got, err := props.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)
}

func TestBankRepository_OrderedByRate(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()
	banks := NewBankRepository(db)

	require.NoError(t, banks.Create(ctx, &models.Bank{Name: "High", InterestRate: 9.5, MaxLoanAmount: 1e6, MaxTenureYears: 20}))
	require.NoError(t, banks.Create(ctx, &models.Bank{Name: "Low", InterestRate: 7.1, MaxLoanAmount: 1e6, MaxTenureYears: 30}))
	assert.ErrorIs(t, banks.Create(ctx, &models.Bank{Name: "low", InterestRate: 1, MaxLoanAmount: 1, MaxTenureYears: 1}), ErrDuplicate)

	list, err := banks.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Low", list[0].Name)

	require.NoError(t, banks.Delete(ctx, list[0].ID))
	assert.ErrorIs(t, banks.Delete(ctx, list[0].ID), ErrNotFound)
}

func TestStatsRepository_Dashboard(t *testing.T) {
	db, x := setupTestDB(t)
	ctx := context.Background()
	props := NewPropertyRepository(db)
	sales := NewSaleRepository(db)
	stats := NewStatsRepository(x)

	mustCreateProperty(t, props, models.Property{Name: "A", Price: 1, Location: "Marina", IsHotspot: true})
	mustCreateProperty(t, props, models.Property{Name: "B", Price: 1, Location: "Marina", Status: models.PropertyStatusSold})
	mustCreateProperty(t, props, models.Property{Name: "C", Price: 1, Location: "Hills"})
	require.NoError(t, sales.Create(ctx, &models.Sale{Name: "L", Email: "l@example.com"}))

	st, err := stats.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), st.Properties)
	assert.Equal(t, int64(1), st.Hotspots)
	assert.Equal(t, int64(2), st.PropertiesByState["available"])
	assert.Equal(t, int64(1), st.PropertiesByState["sold"])
	assert.Equal(t, int64(0), st.PropertiesByState["rented"])
	assert.Len(t, st.PropertiesByState, len(models.PropertyStatuses))
	assert.Equal(t, int64(1), st.Leads)
	assert.Equal(t, int64(1), st.LeadsByStatus["new"])
	assert.Equal(t, int64(0), st.LeadsByStatus["closed"])

	locs, err := stats.Locations(ctx)
	require.NoError(t, err)
	require.Len(t, locs, 2)
	assert.Equal(t, "Marina", locs[0].Location)
	assert.Equal(t, int64(2), locs[0].Count)
}

func TestUniqueNamesAreStoredTrimmed(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	cats := NewCategoryRepository(db)
	c := &models.Category{Name: " Gardens ", Slug: "gardens"}
	require.NoError(t, cats.Create(ctx, c))
	assert.Equal(t, "Gardens", c.Name)
	assert.ErrorIs(t, cats.Create(ctx, &models.Category{Name: "gardens", Slug: "gardens"}), ErrDuplicate)

	props := NewPropertyRepository(db)
	p := mustCreateProperty(t, props, models.Property{Name: " Villa ", Price: 1, Location: "Marina"})
	assert.Equal(t, "Villa", p.Name)
	err := props.Create(ctx, &models.Property{Name: "VILLA", Price: 1, Location: "Marina", Status: models.PropertyStatusAvailable})
	assert.ErrorIs(t, err, ErrDuplicate)
}
