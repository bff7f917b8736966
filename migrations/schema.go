package migrations

import (
	"github.com/dcode-github/real_estate_portal/models"
	"gorm.io/gorm"
)

// All lists the schema migrations in version order.
func All() []*Migration {
	return []*Migration{
		{
			Version: "20250301000001",
			Name:    "create_core_tables",
			Up: func(tx *gorm.DB) error {
				return tx.AutoMigrate(coreTables()...)
			},
			Down: func(tx *gorm.DB) error {
				tables := coreTables()
				for i := len(tables) - 1; i >= 0; i-- {
					if err := tx.Migrator().DropTable(tables[i]); err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			Version: "20250301000002",
			Name:    "add_property_search_indexes",
			Up: func(tx *gorm.DB) error {
				stmts := []string{
					`CREATE INDEX IF NOT EXISTS idx_properties_similarity ON properties (location, bedrooms, bathrooms)`,
					`CREATE INDEX IF NOT EXISTS idx_properties_status_created ON properties (status, created_at)`,
					`CREATE INDEX IF NOT EXISTS idx_sales_status_created ON sales (status, created_at)`,
				}
				for _, s := range stmts {
					if err := tx.Exec(s).Error; err != nil {
						return err
					}
				}
				return nil
			},
			Down: func(tx *gorm.DB) error {
				for _, name := range []string{"idx_properties_similarity", "idx_properties_status_created", "idx_sales_status_created"} {
					if err := tx.Exec("DROP INDEX IF EXISTS " + name).Error; err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}

// coreTables is ordered so referenced tables come first.
func coreTables() []interface{} {
	return []interface{}{
		&models.Category{},
		&models.Agent{},
		&models.Bank{},
		&models.Customer{},
		&models.Admin{},
		&models.Property{},
		&models.PropertyPhoto{},
		&models.Sale{},
		&models.Review{},
		&models.Favorite{},
	}
}
