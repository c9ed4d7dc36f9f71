package migrations

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Migration is one idempotent startup step. It reports how many indexes or
// documents it touched.
type Migration struct {
	Name string
	Run  func(ctx context.Context, database *mongo.Database) (int, error)
}

var All = []Migration{
	{Name: "create_sample_type_indexes", Run: CreateSampleTypeIndexes},
	{Name: "create_invoice_indexes", Run: CreateInvoiceIndexes},
	{Name: "backfill_sample_type_active", Run: BackfillSampleTypeActive},
}

// Run applies the migrations in order and stops at the first failure.
func Run(ctx context.Context, database *mongo.Database, migrations []Migration, logger *zap.Logger) error {
	for _, m := range migrations {
		affected, err := m.Run(ctx, database)
		if err != nil {
			logger.Error("migration failed", zap.String("migration", m.Name), zap.Error(err))
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
		logger.Info("migration applied", zap.String("migration", m.Name), zap.Int("affected", affected))
	}
	return nil
}
