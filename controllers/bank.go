package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/dcode-github/real_estate_portal/models"
	"github.com/dcode-github/real_estate_portal/repository"
	"github.com/dcode-github/real_estate_portal/utils"
)

func GetBanks(banks *repository.BankRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := banks.List(r.Context())
		if err != nil {
			log.Printf("Error listing banks: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch banks")
			return
		}
		utils.RespondJSON(w, http.StatusOK, "Fetched banks", list)
	}
}

func GetBank(banks *repository.BankRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, "id")
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Invalid bank ID")
			return
		}
		bank, err := banks.GetByID(r.Context(), id)
		if err != nil {
			log.Printf("Error fetching bank %d: %v", id, err)
			respondRepoError(w, err, "Bank")
			return
		}
		utils.RespondJSON(w, http.StatusOK, "Fetched bank", bank)
	}
}

// GetLoanQuote computes the monthly instalment of a loan at the bank's rate.
func GetLoanQuote(banks *repository.BankRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, "id")
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Invalid bank ID")
			return
		}
		amount, err := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
		if err != nil || amount <= 0 {
			utils.RespondError(w, http.StatusBadRequest, "amount must be a positive number")
			return
		}
		years, err := strconv.Atoi(r.URL.Query().Get("years"))
		if err != nil || years <= 0 {
			utils.RespondError(w, http.StatusBadRequest, "years must be a positive integer")
			return
		}

		bank, err := banks.GetByID(r.Context(), id)
		if err != nil {
			log.Printf("Error fetching bank %d for quote: %v", id, err)
			respondRepoError(w, err, "Bank")
			return
		}
		if amount > bank.MaxLoanAmount {
			utils.RespondError(w, http.StatusBadRequest, fmt.Sprintf("amount exceeds the maximum loan of %.2f", bank.MaxLoanAmount))
			return
		}
		if years > bank.MaxTenureYears {
			utils.RespondError(w, http.StatusBadRequest, fmt.Sprintf("years exceeds the maximum tenure of %d", bank.MaxTenureYears))
			return
		}

		utils.RespondJSON(w, http.StatusOK, "Calculated loan quote", loanQuote(bank, amount, years))
	}
}

func loanQuote(bank *models.Bank, amount float64, years int) models.LoanQuote {
	months := years * 12
	emi := utils.MonthlyEMI(amount, bank.InterestRate, months)
	total := emi * float64(months)
	return models.LoanQuote{
		BankID:        bank.ID,
		BankName:      bank.Name,
		Amount:        amount,
		Years:         years,
		InterestRate:  bank.InterestRate,
		MonthlyEMI:    utils.Round2(emi),
		TotalPayment:  utils.Round2(total),
		TotalInterest: utils.Round2(total - amount),
		ProcessingFee: utils.Round2(amount * bank.ProcessingFee / 100),
	}
}

func CreateBank(banks *repository.BankRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.BankInput
		if !decodeAndValidate(w, r, &in) {
			return
		}
		var bank models.Bank
		in.Apply(&bank)
		if err := banks.Create(r.Context(), &bank); err != nil {
			log.Printf("Error creating bank %q: %v", in.Name, err)
			respondRepoError(w, err, "Bank")
			return
		}
		utils.RespondJSON(w, http.StatusCreated, "Bank created", bank)
	}
}

func UpdateBank(banks *repository.BankRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, "id")
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Invalid bank ID")
			return
		}
		bank, err := banks.GetByID(r.Context(), id)
		if err != nil {
			log.Printf("Error fetching bank %d for update: %v", id, err)
			respondRepoError(w, err, "Bank")
			return
		}

		var in models.BankInput
		if !decodeAndValidate(w, r, &in) {
			return
		}
		in.Apply(bank)
		if err := banks.Update(r.Context(), bank); err != nil {
			log.Printf("Error updating bank %d: %v", id, err)
			respondRepoError(w, err, "Bank")
			return
		}
		utils.RespondJSON(w, http.StatusOK, "Bank updated", bank)
	}
}

func DeleteBank(banks *repository.BankRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, "id")
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Invalid bank ID")
			return
		}
		if err := banks.Delete(r.Context(), id); err != nil {
			log.Printf("Error deleting bank %d: %v", id, err)
			respondRepoError(w, err, "Bank")
			return
		}
		utils.RespondJSON(w, http.StatusOK, "Bank deleted", nil)
	}
}
