package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dcode-github/real_estate_portal/models"
	"github.com/dcode-github/real_estate_portal/repository"
	"github.com/dcode-github/real_estate_portal/utils"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// SubmitInquiry stores a lead from the public contact form.
func SubmitInquiry(sales *repository.SaleRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.InquiryInput
		if !decodeAndValidate(w, r, &in) {
			return
		}

		lead := &models.Sale{
			Name:       in.Name,
			Email:      in.Email,
			Phone:      in.Phone,
			Message:    in.Message,
			PropertyID: in.PropertyID,
			Status:     models.LeadStatusNew,
			Source:     models.LeadSourceWebsite,
		}
		if err := sales.Create(r.Context(), lead); err != nil {
			log.Printf("Error saving inquiry from %s: %v", in.Email, err)
			if errors.Is(err, repository.ErrInvalidReference) || errors.Is(err, repository.ErrNotFound) {
				utils.RespondError(w, http.StatusNotFound, "Property not found")
				return
			}
			respondRepoError(w, err, "Lead")
			return
		}

		utils.RespondJSON(w, http.StatusCreated, "Inquiry received", map[string]interface{}{
			"id":        lead.ID,
			"reference": lead.Reference,
			"status":    lead.Status,
		})
	}
}

func parseSaleFilter(r *http.Request) models.SaleFilter {
	f := models.SaleFilter{
		Status: r.URL.Query().Get("status"),
		Query:  strings.TrimSpace(r.URL.Query().Get("q")),
	}
	f.Page, f.Limit = utils.Pagination(r)
	return f
}

func GetLeads(sales *repository.SaleRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := parseSaleFilter(r)
		if f.Status != "" && !models.LeadStatus(f.Status).Valid() {
			utils.RespondError(w, http.StatusBadRequest, "Unknown lead status")
			return
		}
		list, total, err := sales.List(r.Context(), f)
		if err != nil {
			log.Printf("Error listing leads: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch leads")
			return
		}
		utils.RespondJSON(w, http.StatusOK, "Fetched leads", models.NewPaginatedResponse(list, f.Page, f.Limit, total))
	}
}

func GetLead(sales *repository.SaleRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, "id")
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Invalid lead ID")
			return
		}
		lead, err := sales.GetByID(r.Context(), id)
		if err != nil {
			log.Printf("Error fetching lead %d: %v", id, err)
			respondRepoError(w, err, "Lead")
			return
		}
		utils.RespondJSON(w, http.StatusOK, "Fetched lead", lead)
	}
}

func CreateLead(sales *repository.SaleRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.SaleInput
		if !decodeAndValidate(w, r, &in) {
			return
		}
		var lead models.Sale
		in.Apply(&lead)
		if err := sales.Create(r.Context(), &lead); err != nil {
			log.Printf("Error creating lead for %s: %v", in.Email, err)
			respondRepoError(w, err, "Lead")
			return
		}
		utils.RespondJSON(w, http.StatusCreated, "Lead created", lead)
	}
}

func UpdateLead(sales *repository.SaleRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, "id")
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Invalid lead ID")
			return
		}
		lead, err := sales.GetByID(r.Context(), id)
		if err != nil {
			log.Printf("Error fetching lead %d for update: %v", id, err)
			respondRepoError(w, err, "Lead")
			return
		}

		var in models.SaleInput
		if !decodeAndValidate(w, r, &in) {
			return
		}
		in.Apply(lead)
		if err := sales.Update(r.Context(), lead); err != nil {
			log.Printf("Error updating lead %d: %v", id, err)
			respondRepoError(w, err, "Lead")
			return
		}
		utils.RespondJSON(w, http.StatusOK, "Lead updated", lead)
	}
}

func UpdateLeadStatus(sales *repository.SaleRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, "id")
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Invalid lead ID")
			return
		}

		var in models.LeadStatusInput
		if !decodeAndValidate(w, r, &in) {
			return
		}
		if !in.Status.Valid() {
			log.Printf("Rejected lead status %q for lead %d", in.Status, id)
			utils.RespondError(w, http.StatusBadRequest, fmt.Sprintf("status must be one of: %s", leadStatusList()))
			return
		}

		if err := sales.UpdateStatus(r.Context(), id, in.Status); err != nil {
			log.Printf("Error updating status of lead %d: %v", id, err)
			respondRepoError(w, err, "Lead")
			return
		}
		utils.RespondJSON(w, http.StatusOK, "Lead status updated", map[string]interface{}{
			"id":     id,
			"status": in.Status,
		})
	}
}

func leadStatusList() string {
	names := make([]string, len(models.LeadStatuses))
	for i, s := range models.LeadStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

func DeleteLead(sales *repository.SaleRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, "id")
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Invalid lead ID")
			return
		}
		if err := sales.Delete(r.Context(), id); err != nil {
			log.Printf("Error deleting lead %d: %v", id, err)
			respondRepoError(w, err, "Lead")
			return
		}
		utils.RespondJSON(w, http.StatusOK, "Lead deleted", nil)
	}
}

// ExportLeads writes the matching leads as a CSV attachment.
func ExportLeads(sales *repository.SaleRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := parseSaleFilter(r)
		if f.Status != "" && !models.LeadStatus(f.Status).Valid() {
			utils.RespondError(w, http.StatusBadRequest, "Unknown lead status")
			return
		}
		list, err := sales.ListAll(r.Context(), f)
		if err != nil {
			log.Printf("Error loading leads for export: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to export leads")
			return
		}

		df := leadsFrame(list)
		if df.Err != nil {
			log.Printf("Error building leads frame: %v", df.Err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to export leads")
			return
		}

		filename := fmt.Sprintf("leads-%s.csv", time.Now().Format("20060102"))
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		if err := df.WriteCSV(w); err != nil {
			log.Printf("Error writing leads CSV: %v", err)
		}
	}
}

func leadsFrame(list []models.Sale) dataframe.DataFrame {
	n := len(list)
	var (
		ids       = make([]string, n)
		refs      = make([]string, n)
		names     = make([]string, n)
		emails    = make([]string, n)
		phones    = make([]string, n)
		statuses  = make([]string, n)
		sources   = make([]string, n)
		property  = make([]string, n)
		agent     = make([]string, n)
		createdAt = make([]string, n)
	)
	for i, s := range list {
		ids[i] = strconv.FormatUint(uint64(s.ID), 10)
		refs[i] = s.Reference
		names[i] = s.Name
		emails[i] = s.Email
		phones[i] = s.Phone
		statuses[i] = string(s.Status)
		sources[i] = s.Source
		if s.Property != nil {
			property[i] = s.Property.Name
		}
		if s.Agent != nil {
			agent[i] = s.Agent.Name
		}
		createdAt[i] = s.CreatedAt.UTC().Format(time.RFC3339)
	}
	return dataframe.New(
		series.New(ids, series.String, "id"),
		series.New(refs, series.String, "reference"),
		series.New(names, series.String, "name"),
		series.New(emails, series.String, "email"),
		series.New(phones, series.String, "phone"),
		series.New(statuses, series.String, "status"),
		series.New(sources, series.String, "source"),
		series.New(property, series.String, "property"),
		series.New(agent, series.String, "agent"),
		series.New(createdAt, series.String, "created_at"),
	)
}
