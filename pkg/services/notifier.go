package services

import (
	"go.uber.org/zap"

	"github.com/aquaflow-inc/aquaflow-engine/pkg/models"
)

// StockNotifier receives advisory low-stock notifications after the write
// that caused them has committed. Implementations must not fail or block the
// triggering operation.
type StockNotifier interface {
	NotifyLowStock(alert *models.StockAlert)
}

// LogStockNotifier surfaces low-stock alerts through the log.
type LogStockNotifier struct {
	logger *zap.Logger
}

// NewLogStockNotifier creates a notifier that logs alerts at warn level.
func NewLogStockNotifier(logger *zap.Logger) *LogStockNotifier {
	return &LogStockNotifier{logger: logger.Named("stock-alert")}
}

var _ StockNotifier = (*LogStockNotifier)(nil)

func (n *LogStockNotifier) NotifyLowStock(alert *models.StockAlert) {
	n.logger.Warn("Part stock below critical threshold",
		zap.String("part_id", alert.PartID.String()),
		zap.Int("stock_quantity", alert.StockQuantity),
		zap.Int("threshold", alert.Threshold),
	)
}
