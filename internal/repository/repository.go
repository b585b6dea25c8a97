package repository

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/rookgm/lunchorder/internal/models"
)

const pgErrUniqueViolationCode = "23505"

// psql builds queries with postgres placeholders
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var orderColumns = []string{
	"id", "user_id", "order_date", "vendor", "rice_size", "quantity",
	"price", "subsidy", "status", "canceled", "canceled_at", "created_at",
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(row scanner, order *models.Order) error {
	return row.Scan(&order.ID, &order.UserID, &order.OrderDate, &order.Vendor, &order.RiceSize, &order.Quantity,
		&order.Price, &order.Subsidy, &order.Status, &order.Canceled, &order.CanceledAt, &order.CreatedAt)
}
