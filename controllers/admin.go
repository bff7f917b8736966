package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/dcode-github/real_estate_portal/repository"
	"github.com/dcode-github/real_estate_portal/utils"
	"gorm.io/gorm"
)

func GetDashboardStats(stats *repository.StatsRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := stats.Dashboard(r.Context())
		if err != nil {
			log.Printf("Error building dashboard stats: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch stats")
			return
		}
		utils.RespondJSON(w, http.StatusOK, "Fetched dashboard stats", st)
	}
}

// Health reports liveness and whether the database answers a ping.
func Health(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code, status, dbState := http.StatusOK, "ok", "up"
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(r.Context())
		}
		if err != nil {
			log.Printf("Health check database ping failed: %v", err)
			code, status, dbState = http.StatusServiceUnavailable, "degraded", "down"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]string{
			"status":   status,
			"database": dbState,
		})
	}
}
