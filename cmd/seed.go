package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/dcode-github/real_estate_portal/config"
	"github.com/dcode-github/real_estate_portal/migrations"
	"github.com/dcode-github/real_estate_portal/models"
	"github.com/dcode-github/real_estate_portal/repository"
	"github.com/dcode-github/real_estate_portal/utils"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var defaultCategories = []models.CategoryInput{
	{Name: "Apartments", Description: "Flats and apartments in residential complexes"},
	{Name: "Villas", Description: "Independent villas with private grounds"},
	{Name: "Houses", Description: "Independent and row houses"},
	{Name: "Plots", Description: "Residential and agricultural land"},
	{Name: "Commercial", Description: "Offices, shops and warehouses"},
}

var demoBanks = []models.BankInput{
	{Name: "State Housing Bank", InterestRate: 8.4, MaxLoanAmount: 50000000, MaxTenureYears: 30, ProcessingFee: 0.35},
	{Name: "City Home Finance", InterestRate: 8.75, MaxLoanAmount: 30000000, MaxTenureYears: 25, ProcessingFee: 0.5},
	{Name: "Union Mortgage", InterestRate: 9.1, MaxLoanAmount: 20000000, MaxTenureYears: 20, ProcessingFee: 1},
}

func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert default categories and demo banks",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDB()
			if err != nil {
				return err
			}
			defer config.CloseDBConnection(db)

			if _, err := migrations.Default(db).Up(); err != nil {
				return err
			}
			n, err := seedCatalogue(cmd.Context(), db)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d record(s)\n", n)
			return nil
		},
	}
}

// seedCatalogue inserts the default rows, skipping any that already exist.
func seedCatalogue(ctx context.Context, db *gorm.DB) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	categories := repository.NewCategoryRepository(db)
	banks := repository.NewBankRepository(db)

	created := 0
	for _, in := range defaultCategories {
		c := &models.Category{Name: in.Name, Slug: utils.Slugify(in.Name), Description: in.Description}
		if err := categories.Create(ctx, c); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				continue
			}
			return created, err
		}
		created++
	}
	for _, in := range demoBanks {
		var b models.Bank
		in.Apply(&b)
		if err := banks.Create(ctx, &b); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				continue
			}
			return created, err
		}
		created++
	}
	return created, nil
}
