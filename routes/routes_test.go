package routes

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dcode-github/real_estate_portal/cache"
	"github.com/dcode-github/real_estate_portal/controllers"
	"github.com/dcode-github/real_estate_portal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type propertyPage struct {
	Data       []models.Property `json:"data"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalCount int64             `json:"totalCount"`
	TotalPages int               `json:"totalPages"`
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"up"`)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/admin/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/admin/stats", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/admin/stats", s.customerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/admin/stats", s.adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var st models.DashboardStats
	decode(t, rec, &st)
	assert.Equal(t, int64(1), st.Customers)
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)

	body := map[string]interface{}{"name": "Robin", "email": "robin@example.com", "password": "s3cret!"}
	rec := s.do(t, http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var tok controllers.TokenResponse
	decode(t, rec, &tok)
	assert.NotEmpty(t, tok.Token)
	assert.Equal(t, models.RoleCustomer, tok.Role)

	rec = s.do(t, http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{"name": "X", "email": "bad", "password": "s3cret!"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{"email": "robin@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{"email": "ROBIN@example.com", "password": "s3cret!"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &tok)

	rec = s.do(t, http.MethodGet, "/api/auth/me", tok.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "robin@example.com")

	rec = s.do(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/admin/login", "", map[string]interface{}{"username": "admin", "password": "admin-pass"})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &tok)
	assert.Equal(t, models.RoleAdmin, tok.Role)

	rec = s.do(t, http.MethodPost, "/api/auth/admin/login", "", map[string]interface{}{"username": "admin", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPropertyLifecycle(t *testing.T) {
	s := newTestServer(t)

	p := s.createProperty(t, property("Sea View", "Marina", 250000, 3))
	assert.Equal(t, models.PropertyStatusAvailable, p.Status)
	assert.Equal(t, models.ListingTypeSale, p.ListingType)

	rec := s.do(t, http.MethodPost, "/api/admin/properties", s.adminToken, property("sea view", "Hills", 1, 1))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/admin/properties", s.adminToken, map[string]interface{}{"name": "No Price", "location": "X"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	path := fmt.Sprintf("/api/admin/properties/%d", p.ID)
	rec = s.do(t, http.MethodPatch, path, s.adminToken, map[string]interface{}{"price": 240000, "isFeatured": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/properties/%d", p.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Property
	decode(t, rec, &got)
	assert.Equal(t, "Sea View", got.Name)
	assert.Equal(t, 240000.0, got.Price)
	assert.True(t, got.IsFeatured)
	assert.Equal(t, 3, got.Bedrooms)

	full := property("Sea View II", "Marina", 260000, 4)
	rec = s.do(t, http.MethodPut, path, s.adminToken, full)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &got)
	assert.Equal(t, "Sea View II", got.Name)
	assert.False(t, got.IsFeatured)

	rec = s.do(t, http.MethodDelete, path, s.adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/properties/%d", p.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(t, http.MethodDelete, path, s.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPropertyListFiltersAndCache(t *testing.T) {
	s := newTestServer(t)
	s.createProperty(t, property("Alpha", "Marina", 100000, 2))
	s.createProperty(t, property("Beta", "Hills", 300000, 4))

	require.Eventually(t, func() bool { return s.cache.Generation() >= 2 }, time.Second, 10*time.Millisecond)

	rec := s.do(t, http.MethodGet, "/api/properties?location=marina&limit=5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	var page propertyPage
	decode(t, rec, &page)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Alpha", page.Data[0].Name)
	assert.Equal(t, 5, page.PageSize)

	rec = s.do(t, http.MethodGet, "/api/properties?limit=5&location=marina", "", nil)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))

	rec = s.do(t, http.MethodGet, "/api/properties?bedrooms=3&sort=price_desc", "", nil)
	decode(t, rec, &page)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Beta", page.Data[0].Name)

	before := s.cache.Generation()
	s.createProperty(t, property("Gamma", "Marina", 120000, 2))
	require.Eventually(t, func() bool { return s.cache.Generation() > before }, time.Second, 10*time.Millisecond)

	rec = s.do(t, http.MethodGet, "/api/properties?limit=5&location=marina", "", nil)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	decode(t, rec, &page)
	assert.Equal(t, int64(2), page.TotalCount)
	assert.Equal(t, "Gamma", page.Data[0].Name)
}

func TestPropertyListDropsWriteAfterConcurrentInvalidate(t *testing.T) {
	s := newTestServerWithCache(t, func(m *cache.Memory) cache.PropertyCache {
		return &invalidatingCache{Memory: m}
	})
	s.createProperty(t, property("Alpha", "Marina", 100000, 2))
	require.Eventually(t, func() bool { return s.cache.Generation() >= 1 }, time.Second, 10*time.Millisecond)

	// The first list response was built before an invalidation and must not
	// be served from the cache afterwards.
	rec := s.do(t, http.MethodGet, "/api/properties", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	rec = s.do(t, http.MethodGet, "/api/properties", "", nil)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	rec = s.do(t, http.MethodGet, "/api/properties", "", nil)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
}

func TestCompareProperties(t *testing.T) {
	s := newTestServer(t)
	a := s.createProperty(t, property("A", "Marina", 100000, 2))
	b := s.createProperty(t, property("B", "Marina", 50000, 4))
	c := s.createProperty(t, property("C", "Hills", 70000, 1))
	d := s.createProperty(t, property("D", "Hills", 90000, 1))

	rec := s.do(t, http.MethodGet, fmt.Sprintf("/api/properties/compare?ids=%d,%d,%d,%d", a.ID, b.ID, c.ID, d.ID), "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/properties/compare?ids=%d", a.ID), "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/properties/compare?ids=%d,999", a.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/properties/compare?ids=%d,%d", b.ID, a.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cmp models.Comparison
	decode(t, rec, &cmp)
	require.Len(t, cmp.Properties, 2)
	assert.Equal(t, b.ID, cmp.Properties[0].ID)
	assert.Equal(t, b.ID, cmp.Summary.CheapestID)
	assert.Equal(t, 50000.0, cmp.Summary.MinPrice)
	assert.Equal(t, 100000.0, cmp.Summary.MaxPrice)
	assert.Equal(t, 4, cmp.Summary.MaxBedrooms)
	assert.Equal(t, 100.0, cmp.Summary.PricePerSqFt[a.ID])
}

func TestSimilarProperties(t *testing.T) {
	s := newTestServer(t)
	ref := s.createProperty(t, property("Ref", "Marina", 100000, 3))
	twin := s.createProperty(t, property("Twin", "marina", 105000, 3))
	s.createProperty(t, property("Far", "Hills", 900000, 5))
	s.createProperty(t, property("Close", "Marina", 400000, 1))

	rec := s.do(t, http.MethodGet, fmt.Sprintf("/api/properties/%d/similar?limit=10", ref.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var list []models.SimilarProperty
	decode(t, rec, &list)
	require.Len(t, list, 3)
	assert.Equal(t, twin.ID, list[0].ID)
	assert.Equal(t, 9, list[0].Score)
	for i, sp := range list {
		assert.NotEqual(t, ref.ID, sp.ID)
		assert.Greater(t, sp.Score, 0)
		if i > 0 {
			assert.LessOrEqual(t, sp.Score, list[i-1].Score)
		}
	}

	rec = s.do(t, http.MethodGet, "/api/properties/999/similar", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHotspotsAndLocations(t *testing.T) {
	s := newTestServer(t)
	hot := property("Hot", "Marina", 1000, 1)
	hot["isHotspot"] = true
	s.createProperty(t, hot)
	s.createProperty(t, property("Cold", "Marina", 1000, 1))
	s.createProperty(t, property("Elsewhere", "Hills", 1000, 1))

	rec := s.do(t, http.MethodGet, "/api/properties/hotspots?location=MARINA", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Property
	decode(t, rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Hot", list[0].Name)

	rec = s.do(t, http.MethodGet, "/api/locations", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var locs []models.LocationCount
	decode(t, rec, &locs)
	require.Len(t, locs, 2)
	assert.Equal(t, "Marina", locs[0].Location)
	assert.Equal(t, int64(2), locs[0].Count)
}

func TestFavorites(t *testing.T) {
	s := newTestServer(t)
	p := s.createProperty(t, property("Fav", "Marina", 1000, 1))

	rec := s.do(t, http.MethodGet, "/api/favorites", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/favorites", s.adminToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/favorites", s.customerToken, map[string]interface{}{"propertyId": p.ID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = s.do(t, http.MethodPost, "/api/favorites", s.customerToken, map[string]interface{}{"propertyId": p.ID})
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec = s.do(t, http.MethodPost, "/api/favorites", s.customerToken, map[string]interface{}{"propertyId": 999})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/properties/%d", p.ID), s.customerToken, nil)
	var got models.Property
	decode(t, rec, &got)
	assert.True(t, got.IsFavorite)

	rec = s.do(t, http.MethodGet, "/api/favorites", s.customerToken, nil)
	var list []models.Property
	decode(t, rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, p.ID, list[0].ID)

	rec = s.do(t, http.MethodDelete, fmt.Sprintf("/api/favorites/%d", p.ID), s.customerToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodDelete, fmt.Sprintf("/api/favorites/%d", p.ID), s.customerToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/favorites", s.customerToken, nil)
	decode(t, rec, &list)
	assert.Empty(t, list)
}

func TestReviewsUpdateRating(t *testing.T) {
	s := newTestServer(t)
	p := s.createProperty(t, property("Rated", "Marina", 1000, 1))
	path := fmt.Sprintf("/api/properties/%d/reviews", p.ID)

	rec := s.do(t, http.MethodPost, path, "", map[string]interface{}{"name": "Ann", "rating": 5, "comment": "Lovely"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = s.do(t, http.MethodPost, path, s.customerToken, map[string]interface{}{"name": "Casey", "rating": 3})
	require.Equal(t, http.StatusCreated, rec.Code)
	var rev models.Review
	decode(t, rec, &rev)
	require.NotNil(t, rev.CustomerID)
	assert.Equal(t, s.customerID, *rev.CustomerID)

	rec = s.do(t, http.MethodPost, path, "", map[string]interface{}{"name": "Bad", "rating": 6})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(t, http.MethodPost, "/api/properties/999/reviews", "", map[string]interface{}{"name": "Ann", "rating": 4})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/properties/%d", p.ID), "", nil)
	var got models.Property
	decode(t, rec, &got)
	assert.InDelta(t, 4.0, got.AverageRating, 0.001)
	assert.Equal(t, 2, got.ReviewCount)

	rec = s.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/reviews/%d", rev.ID), s.adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, path, "", nil)
	var reviews []models.Review
	decode(t, rec, &reviews)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Ann", reviews[0].Name)
}

func TestAgentDeleteClearsProperties(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/api/admin/agents", s.adminToken, map[string]interface{}{"name": "Ada", "email": "ada@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var agent models.Agent
	decode(t, rec, &agent)

	rec = s.do(t, http.MethodPost, "/api/admin/agents", s.adminToken, map[string]interface{}{"name": "Ada 2", "email": "ada@example.com"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	body := property("Managed", "Marina", 1000, 1)
	body["agentId"] = agent.ID
	p := s.createProperty(t, body)
	require.NotNil(t, p.AgentID)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/agents/%d", agent.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &agent)
	assert.Len(t, agent.Properties, 1)

	rec = s.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/agents/%d", agent.ID), s.adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/agents", "", nil)
	var agents []models.Agent
	decode(t, rec, &agents)
	assert.Empty(t, agents)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/properties/%d", p.ID), "", nil)
	var got models.Property
	decode(t, rec, &got)
	assert.Nil(t, got.AgentID)
}

func TestCategories(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/api/admin/categories", s.adminToken, map[string]interface{}{"name": "Luxury Villas"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var cat models.Category
	decode(t, rec, &cat)
	assert.Equal(t, "luxury-villas", cat.Slug)

	rec = s.do(t, http.MethodPost, "/api/admin/categories", s.adminToken, map[string]interface{}{"name": "luxury villas"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	body := property("Villa One", "Hills", 1000, 4)
	body["categoryId"] = 999
	rec = s.do(t, http.MethodPost, "/api/admin/properties", s.adminToken, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/categories/%d", cat.ID), "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/categories/%d", cat.ID), s.adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/categories/%d", cat.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNamesAreTrimmedBeforeValidation(t *testing.T) {
	s := newTestServer(t)

	p := s.createProperty(t, property(" Villa ", " Marina ", 1000, 1))
	assert.Equal(t, "Villa", p.Name)
	assert.Equal(t, "Marina", p.Location)

	rec := s.do(t, http.MethodPost, "/api/admin/properties", s.adminToken, property("villa", "Hills", 2000, 2))
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec = s.do(t, http.MethodPost, "/api/admin/properties", s.adminToken, property("   ", "Hills", 2000, 2))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/admin/categories", s.adminToken, map[string]interface{}{"name": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(t, http.MethodPost, "/api/admin/categories", s.adminToken, map[string]interface{}{"name": "  Penthouses "})
	require.Equal(t, http.StatusCreated, rec.Code)
	var cat models.Category
	decode(t, rec, &cat)
	assert.Equal(t, "Penthouses", cat.Name)
	assert.Equal(t, "penthouses", cat.Slug)
	rec = s.do(t, http.MethodPost, "/api/admin/categories", s.adminToken, map[string]interface{}{"name": "penthouses"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	bank := map[string]interface{}{"name": " Harbour Bank ", "interestRate": 8.5, "maxLoanAmount": 5000000, "maxTenureYears": 20}
	rec = s.do(t, http.MethodPost, "/api/admin/banks", s.adminToken, bank)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	bank["name"] = "harbour bank"
	rec = s.do(t, http.MethodPost, "/api/admin/banks", s.adminToken, bank)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/admin/agents", s.adminToken, map[string]interface{}{"name": "Ana", "email": " ana@example.com "})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var agent models.Agent
	decode(t, rec, &agent)
	assert.Equal(t, "ana@example.com", agent.Email)
	rec = s.do(t, http.MethodPost, "/api/admin/agents", s.adminToken, map[string]interface{}{"name": "Ana B", "email": "ANA@example.com"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name": "Dee", "email": " Casey@example.com ", "password": "secret1",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPropertyUpdateAcceptsFetchedObject(t *testing.T) {
	s := newTestServer(t)
	p := s.createProperty(t, property("Round Trip", "Marina", 1000, 1))
	path := fmt.Sprintf("/api/admin/properties/%d", p.ID)

	rec := s.do(t, http.MethodGet, fmt.Sprintf("/api/properties/%d", p.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched map[string]interface{}
	decode(t, rec, &fetched)
	require.Contains(t, fetched, "id")
	require.Contains(t, fetched, "createdAt")

	fetched["price"] = 2500
	fetched["averageRating"] = 5
	rec = s.do(t, http.MethodPatch, path, s.adminToken, fetched)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated models.Property
	decode(t, rec, &updated)
	assert.Equal(t, 2500.0, updated.Price)
	assert.Equal(t, p.ID, updated.ID)
	assert.Zero(t, updated.AverageRating)

	fetched["bedrooms"] = 3
	rec = s.do(t, http.MethodPut, path, s.adminToken, fetched)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &updated)
	assert.Equal(t, 3, updated.Bedrooms)

	rec = s.do(t, http.MethodPatch, path, s.adminToken, map[string]interface{}{"pricee": 10})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoanQuote(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/api/admin/banks", s.adminToken, map[string]interface{}{
		"name": "Test Bank", "interestRate": 12, "maxLoanAmount": 2000000, "maxTenureYears": 20, "processingFee": 0.5,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var bank models.Bank
	decode(t, rec, &bank)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/banks/%d/emi?amount=1000000&years=1", bank.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var q models.LoanQuote
	decode(t, rec, &q)
	assert.InDelta(t, 88848.79, q.MonthlyEMI, 0.01)
	assert.InDelta(t, 1066185.46, q.TotalPayment, 0.05)
	assert.InDelta(t, 66185.46, q.TotalInterest, 0.05)
	assert.InDelta(t, 5000.0, q.ProcessingFee, 0.001)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/banks/%d/emi?amount=3000000&years=1", bank.ID), "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/banks/%d/emi?amount=1000&years=25", bank.ID), "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/banks/999/emi?amount=1000&years=2", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLeadsFlow(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/api/admin/agents", s.adminToken, map[string]interface{}{"name": "Ada", "email": "ada@example.com"})
	var agent models.Agent
	decode(t, rec, &agent)
	body := property("Listed", "Marina", 1000, 1)
	body["agentId"] = agent.ID
	p := s.createProperty(t, body)

	rec = s.do(t, http.MethodPost, "/api/leads", "", map[string]interface{}{"name": "Lee", "email": "lee@example.com", "propertyId": 999})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(t, http.MethodPost, "/api/leads", "", map[string]interface{}{"name": "Lee"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/leads", "", map[string]interface{}{"name": "Lee", "email": "lee@example.com", "phone": "0123", "propertyId": p.ID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID        uint   `json:"id"`
		Reference string `json:"reference"`
		Status    string `json:"status"`
	}
	decode(t, rec, &created)
	assert.NotEmpty(t, created.Reference)
	assert.Equal(t, "new", created.Status)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/admin/leads/%d", created.ID), s.adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var lead models.Sale
	decode(t, rec, &lead)
	require.NotNil(t, lead.AgentID)
	assert.Equal(t, agent.ID, *lead.AgentID)

	statusPath := fmt.Sprintf("/api/admin/leads/%d/status", created.ID)
	rec = s.do(t, http.MethodPatch, statusPath, s.adminToken, map[string]interface{}{"status": "bogus"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(t, http.MethodPatch, statusPath, s.adminToken, map[string]interface{}{"status": "contacted"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodPatch, "/api/admin/leads/999/status", s.adminToken, map[string]interface{}{"status": "lost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/admin/leads?status=contacted", s.adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), created.Reference)
	rec = s.do(t, http.MethodGet, "/api/admin/leads?status=new", s.adminToken, nil)
	assert.NotContains(t, rec.Body.String(), created.Reference)

	rec = s.do(t, http.MethodGet, "/api/admin/leads/export", s.adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id,reference,name,email,phone,status"))
	assert.Contains(t, lines[1], "lee@example.com")
	assert.Contains(t, lines[1], "contacted")
	assert.Contains(t, lines[1], "Listed")

	rec = s.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/leads/%d", created.ID), s.adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPhotoUploadDownloadDelete(t *testing.T) {
	s := newTestServer(t)
	p := s.createProperty(t, property("Pictured", "Marina", 1000, 1))
	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

	upload := func(name string, data []byte) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("file", name)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/admin/properties/%d/photos", p.ID), &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+s.adminToken)
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		return rec
	}

	rec := upload("notes.txt", []byte("plain text, not an image"))
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	rec = upload("front.png", png)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var photo models.PropertyPhoto
	decode(t, rec, &photo)
	assert.Equal(t, "image/png", photo.ContentType)
	assert.Equal(t, 1, s.photos.count())

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/properties/%d/photos/%d", p.ID, photo.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, png, rec.Body.Bytes())
	assert.Equal(t, fmt.Sprint(len(png)), rec.Header().Get("Content-Length"))

	rec = upload("back.png", png)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 2, s.photos.count())

	rec = s.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/properties/%d/photos/%d", p.ID, photo.ID), s.adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, s.photos.count())

	rec = s.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/properties/%d", p.ID), s.adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, s.photos.count())
}

func TestAdminCustomers(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/api/admin/customers", s.adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "casey@example.com")

	rec = s.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/customers/%d", s.customerID), s.adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/customers/%d", s.customerID), s.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
