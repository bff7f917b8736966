package routes

import (
	"github.com/dcode-github/real_estate_portal/cache"
	"github.com/dcode-github/real_estate_portal/controllers"
	"github.com/dcode-github/real_estate_portal/middleware"
	"github.com/dcode-github/real_estate_portal/models"
	"github.com/dcode-github/real_estate_portal/repository"
	"github.com/dcode-github/real_estate_portal/storage"
	"github.com/dcode-github/real_estate_portal/utils"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

type Deps struct {
	DB             *gorm.DB
	SQLX           *sqlx.DB
	Cache          cache.PropertyCache
	Photos         storage.PhotoStore
	JWT            *utils.JWTManager
	MaxUploadBytes int64
}

func Routes(router *mux.Router, d Deps) {
	if d.Cache == nil {
		d.Cache = cache.Noop{}
	}
	if d.Photos == nil {
		d.Photos = storage.Disabled{}
	}

	var (
		props      = repository.NewPropertyRepository(d.DB)
		similar    = repository.NewSimilarRepository(d.DB, d.SQLX)
		stats      = repository.NewStatsRepository(d.SQLX)
		agents     = repository.NewAgentRepository(d.DB)
		banks      = repository.NewBankRepository(d.DB)
		categories = repository.NewCategoryRepository(d.DB)
		sales      = repository.NewSaleRepository(d.DB)
		reviews    = repository.NewReviewRepository(d.DB)
		customers  = repository.NewCustomerRepository(d.DB)
		admins     = repository.NewAdminRepository(d.DB)
		favs       = repository.NewFavoriteRepository(d.DB)
	)

	router.HandleFunc("/healthz", controllers.Health(d.DB)).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()

	// Admin back office
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AuthMiddleware(d.JWT), middleware.RequireRole(models.RoleAdmin))

	admin.HandleFunc("/properties", controllers.CreateProperty(props, d.Cache)).Methods("POST")
	admin.HandleFunc("/properties/{id:[0-9]+}", controllers.UpdateProperty(props, d.Cache, false)).Methods("PUT")
	admin.HandleFunc("/properties/{id:[0-9]+}", controllers.UpdateProperty(props, d.Cache, true)).Methods("PATCH")
	admin.HandleFunc("/properties/{id:[0-9]+}", controllers.DeleteProperty(props, d.Photos, d.Cache)).Methods("DELETE")
	admin.HandleFunc("/properties/{id:[0-9]+}/photos", controllers.UploadPropertyPhoto(props, d.Photos, d.Cache, d.MaxUploadBytes)).Methods("POST")
	admin.HandleFunc("/properties/{id:[0-9]+}/photos/{photoID:[0-9]+}", controllers.DeletePropertyPhoto(props, d.Photos, d.Cache)).Methods("DELETE")

	admin.HandleFunc("/agents", controllers.GetAgents(agents)).Methods("GET")
	admin.HandleFunc("/agents", controllers.CreateAgent(agents)).Methods("POST")
	admin.HandleFunc("/agents/{id:[0-9]+}", controllers.UpdateAgent(agents, d.Cache)).Methods("PUT")
	admin.HandleFunc("/agents/{id:[0-9]+}", controllers.DeleteAgent(agents, d.Cache)).Methods("DELETE")

	admin.HandleFunc("/banks", controllers.GetBanks(banks)).Methods("GET")
	admin.HandleFunc("/banks", controllers.CreateBank(banks)).Methods("POST")
	admin.HandleFunc("/banks/{id:[0-9]+}", controllers.UpdateBank(banks)).Methods("PUT")
	admin.HandleFunc("/banks/{id:[0-9]+}", controllers.DeleteBank(banks)).Methods("DELETE")

	admin.HandleFunc("/categories", controllers.GetCategories(categories)).Methods("GET")
	admin.HandleFunc("/categories", controllers.CreateCategory(categories)).Methods("POST")
	admin.HandleFunc("/categories/{id:[0-9]+}", controllers.UpdateCategory(categories, d.Cache)).Methods("PUT")
	admin.HandleFunc("/categories/{id:[0-9]+}", controllers.DeleteCategory(categories, d.Cache)).Methods("DELETE")

	admin.HandleFunc("/leads", controllers.GetLeads(sales)).Methods("GET")
	admin.HandleFunc("/leads", controllers.CreateLead(sales)).Methods("POST")
	admin.HandleFunc("/leads/export", controllers.ExportLeads(sales)).Methods("GET")
	admin.HandleFunc("/leads/{id:[0-9]+}", controllers.GetLead(sales)).Methods("GET")
	admin.HandleFunc("/leads/{id:[0-9]+}", controllers.UpdateLead(sales)).Methods("PUT")
	admin.HandleFunc("/leads/{id:[0-9]+}/status", controllers.UpdateLeadStatus(sales)).Methods("PATCH")
	admin.HandleFunc("/leads/{id:[0-9]+}", controllers.DeleteLead(sales)).Methods("DELETE")

	admin.HandleFunc("/customers", controllers.GetCustomers(customers)).Methods("GET")
	admin.HandleFunc("/customers/{id:[0-9]+}", controllers.DeleteCustomer(customers, d.Cache)).Methods("DELETE")
	admin.HandleFunc("/reviews/{id:[0-9]+}", controllers.DeleteReview(reviews, d.Cache)).Methods("DELETE")
	admin.HandleFunc("/stats", controllers.GetDashboardStats(stats)).Methods("GET")

	// Customer favorites
	favorites := api.PathPrefix("/favorites").Subrouter()
	favorites.Use(middleware.AuthMiddleware(d.JWT), middleware.RequireRole(models.RoleCustomer))

	favorites.HandleFunc("", controllers.GetFavorites(favs)).Methods("GET")
	favorites.HandleFunc("", controllers.AddFavorite(favs, d.Cache)).Methods("POST")
	favorites.HandleFunc("/{propertyID:[0-9]+}", controllers.DeleteFavorite(favs, d.Cache)).Methods("DELETE")

	// Auth routes
	api.HandleFunc("/auth/admin/login", controllers.AdminLogin(admins, d.JWT)).Methods("POST")
	api.HandleFunc("/auth/register", controllers.RegisterCustomer(customers, d.JWT)).Methods("POST")
	api.HandleFunc("/auth/login", controllers.LoginCustomer(customers, d.JWT)).Methods("POST")
	api.Handle("/auth/me", middleware.AuthMiddleware(d.JWT)(controllers.Me(admins, customers))).Methods("GET")

	// Public site
	public := api.NewRoute().Subrouter()
	public.Use(middleware.OptionalAuth(d.JWT))

	public.HandleFunc("/properties", controllers.GetAllProperties(props, favs, d.Cache)).Methods("GET")
	public.HandleFunc("/properties/hotspots", controllers.GetHotspots(props)).Methods("GET")
	public.HandleFunc("/properties/featured", controllers.GetFeatured(props)).Methods("GET")
	public.HandleFunc("/properties/compare", controllers.CompareProperties(props)).Methods("GET")
	public.HandleFunc("/properties/{id:[0-9]+}", controllers.GetProperty(props, favs)).Methods("GET")
	public.HandleFunc("/properties/{id:[0-9]+}/similar", controllers.GetSimilarProperties(props, similar)).Methods("GET")
	public.HandleFunc("/properties/{id:[0-9]+}/photos/{photoID:[0-9]+}", controllers.GetPropertyPhoto(props, d.Photos)).Methods("GET")
	public.HandleFunc("/properties/{id:[0-9]+}/reviews", controllers.GetPropertyReviews(props, reviews)).Methods("GET")
	public.HandleFunc("/properties/{id:[0-9]+}/reviews", controllers.CreateReview(reviews, d.Cache)).Methods("POST")
	public.HandleFunc("/locations", controllers.GetLocations(stats)).Methods("GET")

	public.HandleFunc("/agents", controllers.GetAgents(agents)).Methods("GET")
	public.HandleFunc("/agents/{id:[0-9]+}", controllers.GetAgent(agents)).Methods("GET")
	public.HandleFunc("/banks", controllers.GetBanks(banks)).Methods("GET")
	public.HandleFunc("/banks/{id:[0-9]+}", controllers.GetBank(banks)).Methods("GET")
	public.HandleFunc("/banks/{id:[0-9]+}/emi", controllers.GetLoanQuote(banks)).Methods("GET")
	public.HandleFunc("/categories", controllers.GetCategories(categories)).Methods("GET")
	public.HandleFunc("/categories/{id:[0-9]+}", controllers.GetCategory(categories)).Methods("GET")
	public.HandleFunc("/leads", controllers.SubmitInquiry(sales)).Methods("POST")
}
