package persistence

import (
	"testing"

	"github.com/ghxstship/backend/internal/domain/asset"
	"github.com/ghxstship/backend/internal/domain/demand"
	"github.com/ghxstship/backend/internal/domain/payment"
	"github.com/ghxstship/backend/internal/domain/procurement"
	"github.com/ghxstship/backend/internal/domain/project"
	"github.com/ghxstship/backend/internal/domain/risk"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory SQLite database with every table migrated.
// A single connection keeps all queries on the same in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&project.Project{},
		&project.ScheduleItem{},
		&project.CrewAssignment{},
		&risk.Assessment{},
		&demand.TicketSale{},
		&asset.Asset{},
		&asset.Policy{},
		&asset.Coverage{},
		&payment.Payment{},
		&payment.CheckSequence{},
		&procurement.PurchaseOrder{},
		&procurement.PurchaseOrderLine{},
		&procurement.GoodsReceipt{},
		&procurement.GoodsReceiptLine{},
		&procurement.VendorInvoice{},
		&procurement.VendorInvoiceLine{},
	))
	return db
}
