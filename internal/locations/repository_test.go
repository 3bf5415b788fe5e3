package location

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/leafline/leafline-backend/pkg/db/models"
	"github.com/leafline/leafline-backend/pkg/enums"
	"github.com/leafline/leafline-backend/pkg/types"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("LEAFLINE_DB_DSN")
	if dsn == "" {
		t.Skip("LEAFLINE_DB_DSN is not set")
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return conn
}

func mustCreateTestVendor(t *testing.T, tx *gorm.DB) *models.Vendor {
	t.Helper()

	vendor := &models.Vendor{
		Type:        enums.VendorTypeDispensary,
		CompanyName: "Test Vendor",
		Slug:        fmt.Sprintf("test-vendor-%s", uuid.NewString()[:8]),
	}
	if err := tx.Create(vendor).Error; err != nil {
		t.Fatalf("create test vendor: %v", err)
	}
	return vendor
}

func mustInsertLocation(t *testing.T, tx *gorm.DB, vendorID uuid.UUID, name string, active bool) *models.Location {
	t.Helper()

	loc := &models.Location{
		VendorID: vendorID,
		Name:     name,
		Address: types.Address{
			Line1:      "123 Main St",
			City:       "Denver",
			State:      "CO",
			PostalCode: "80202",
			Country:    "US",
		},
		IsActive: active,
	}
	if err := tx.Create(loc).Error; err != nil {
		t.Fatalf("create location %s: %v", name, err)
	}
	return loc
}

func TestRepositoryActiveLocations(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()
	vendor := mustCreateTestVendor(t, tx)

	mustInsertLocation(t, tx, vendor.ID, "Uptown", true)
	mustInsertLocation(t, tx, vendor.ID, "Downtown", true)
	mustInsertLocation(t, tx, vendor.ID, "Closed", false)

	list, err := repo.ListActive(ctx, vendor.ID)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("inactive sites must be excluded, got %d", len(list))
	}
	if list[0].Name != "Downtown" {
		t.Fatalf("sites must order by name, got %q first", list[0].Name)
	}

	count, err := repo.CountActive(ctx, vendor.ID)
	if err != nil {
		t.Fatalf("count active: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 active sites, got %d", count)
	}
}
