package controllers

import (
	"log"
	"net/http"

	"github.com/dcode-github/real_estate_portal/cache"
	"github.com/dcode-github/real_estate_portal/models"
	"github.com/dcode-github/real_estate_portal/repository"
	"github.com/dcode-github/real_estate_portal/utils"
)

func GetAgents(agents *repository.AgentRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := agents.List(r.Context())
		if err != nil {
			log.Printf("Error listing agents: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch agents")
			return
		}
		utils.RespondJSON(w, http.StatusOK, "Fetched agents", list)
	}
}

// GetAgent returns the agent together with the listings they handle.
func GetAgent(agents *repository.AgentRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, "id")
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Invalid agent ID")
			return
		}
		agent, err := agents.GetWithProperties(r.Context(), id)
		if err != nil {
			log.Printf("Error fetching agent %d: %v", id, err)
			respondRepoError(w, err, "Agent")
			return
		}
		utils.RespondJSON(w, http.StatusOK, "Fetched agent", agent)
	}
}

func CreateAgent(agents *repository.AgentRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.AgentInput
		if !decodeAndValidate(w, r, &in) {
			return
		}
		var agent models.Agent
		in.Apply(&agent)
		if err := agents.Create(r.Context(), &agent); err != nil {
			log.Printf("Error creating agent %s: %v", in.Email, err)
			respondRepoError(w, err, "Agent with this email")
			return
		}
		utils.RespondJSON(w, http.StatusCreated, "Agent created", agent)
	}
}

func UpdateAgent(agents *repository.AgentRepository, c cache.PropertyCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, "id")
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Invalid agent ID")
			return
		}
		agent, err := agents.GetByID(r.Context(), id)
		if err != nil {
			log.Printf("Error fetching agent %d for update: %v", id, err)
			respondRepoError(w, err, "Agent")
			return
		}

		var in models.AgentInput
		if !decodeAndValidate(w, r, &in) {
			return
		}
		in.Apply(agent)
		if err := agents.Update(r.Context(), agent); err != nil {
			log.Printf("Error updating agent %d: %v", id, err)
			respondRepoError(w, err, "Agent with this email")
			return
		}
		invalidatePropertyCache(c)

		utils.RespondJSON(w, http.StatusOK, "Agent updated", agent)
	}
}

// DeleteAgent removes the agent and detaches them from properties and leads.
func DeleteAgent(agents *repository.AgentRepository, c cache.PropertyCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, "id")
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Invalid agent ID")
			return
		}
		if err := agents.Delete(r.Context(), id); err != nil {
			log.Printf("Error deleting agent %d: %v", id, err)
			respondRepoError(w, err, "Agent")
			return
		}
		invalidatePropertyCache(c)

		utils.RespondJSON(w, http.StatusOK, "Agent deleted", nil)
	}
}
