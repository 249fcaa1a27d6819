package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"dispatch/internal/entities"
	"dispatch/internal/repository"
	"dispatch/internal/service/dispatch"
	"dispatch/internal/service/order"
	"dispatch/internal/service/otp"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) CreateOrder(ctx context.Context, orderEntity *entities.Order) error {
	query := `
		INSERT INTO orders (id, customer_id, delivery_address, address_lat, address_lon, total, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.querier.Exec(
		ctx,
		query,
		orderEntity.ID,
		orderEntity.CustomerID,
		orderEntity.DeliveryAddress.Text,
		orderEntity.DeliveryAddress.Point.Latitude,
		orderEntity.DeliveryAddress.Point.Longitude,
		orderEntity.Total,
		orderEntity.Status.String(),
		orderEntity.CreatedAt,
		orderEntity.UpdatedAt,
	)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return order.ErrInvalidOrder
		}
		return fmt.Errorf("unexpected order repository create error: %w", repository.Unavailable(err))
	}

	shopOrderQuery := `
		INSERT INTO shop_orders (id, order_id, shop_id, shop_name, shop_lat, shop_lon, items, subtotal, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	for i := range orderEntity.ShopOrders {
		shopOrder := &orderEntity.ShopOrders[i]

		items, err := itemsJSON(shopOrder.Items)
		if err != nil {
			return err
		}

		_, err = r.querier.Exec(
			ctx,
			shopOrderQuery,
			shopOrder.ID,
			shopOrder.OrderID,
			shopOrder.ShopID,
			shopOrder.ShopName,
			shopOrder.ShopLocation.Latitude,
			shopOrder.ShopLocation.Longitude,
			items,
			shopOrder.Subtotal,
			shopOrder.Status.String(),
		)
		if err != nil {
			return fmt.Errorf("unexpected order repository create shop order error: %w", repository.Unavailable(err))
		}
	}

	return nil
}

func (r *Repository) GetOrderByID(ctx context.Context, id string) (*entities.Order, error) {
	query := `
		SELECT id, customer_id, delivery_address, address_lat, address_lon, total, status, assigned_agent_id, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var orderModel OrderDB
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&orderModel.ID,
		&orderModel.CustomerID,
		&orderModel.DeliveryAddress,
		&orderModel.AddressLat,
		&orderModel.AddressLon,
		&orderModel.Total,
		&orderModel.Status,
		&orderModel.AssignedAgentID,
		&orderModel.CreatedAt,
		&orderModel.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository getbyid error: %w", repository.Unavailable(err))
	}

	shopOrders, err := r.getShopOrders(ctx, orderModel.ID)
	if err != nil {
		return nil, err
	}

	return ToDomain(&orderModel, shopOrders)
}

func (r *Repository) GetActiveOrderByAgentID(ctx context.Context, agentID string) (*entities.Order, error) {
	query := `
		SELECT id, customer_id, delivery_address, address_lat, address_lon, total, status, assigned_agent_id, created_at, updated_at
		FROM orders
		WHERE assigned_agent_id = $1
		  AND status NOT IN ('delivered', 'cancelled')
		ORDER BY created_at
		LIMIT 1
	`

	var orderModel OrderDB
	err := r.querier.QueryRow(ctx, query, agentID).Scan(
		&orderModel.ID,
		&orderModel.CustomerID,
		&orderModel.DeliveryAddress,
		&orderModel.AddressLat,
		&orderModel.AddressLon,
		&orderModel.Total,
		&orderModel.Status,
		&orderModel.AssignedAgentID,
		&orderModel.CreatedAt,
		&orderModel.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository get active error: %w", repository.Unavailable(err))
	}

	shopOrders, err := r.getShopOrders(ctx, orderModel.ID)
	if err != nil {
		return nil, err
	}

	return ToDomain(&orderModel, shopOrders)
}

// GetActiveAssignments возвращает привязки всех незавершенных заказов,
// по ним диспетчер восстанавливает свой индекс после рестарта.
func (r *Repository) GetActiveAssignments(ctx context.Context) ([]entities.AgentAssignment, error) {
	query := `
		SELECT id, customer_id, assigned_agent_id
		FROM orders
		WHERE assigned_agent_id IS NOT NULL
		  AND status NOT IN ('delivered', 'cancelled')
	`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository get active assignments error: %w", repository.Unavailable(err))
	}
	defer rows.Close()

	assignments := make([]entities.AgentAssignment, 0)
	for rows.Next() {
		var a entities.AgentAssignment
		if err := rows.Scan(&a.OrderID, &a.CustomerID, &a.AgentID); err != nil {
			return nil, fmt.Errorf("unexpected order repository get active assignments error: %w", repository.Unavailable(err))
		}
		assignments = append(assignments, a)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository get active assignments error: %w", repository.Unavailable(err))
	}

	return assignments, nil
}

func (r *Repository) getShopOrders(ctx context.Context, orderID string) ([]ShopOrderDB, error) {
	query := `
		SELECT id, order_id, shop_id, shop_name, shop_lat, shop_lon, items, subtotal, status, otp_code, otp_issued_at
		FROM shop_orders
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.querier.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository get shop orders error: %w", repository.Unavailable(err))
	}
	defer rows.Close()

	shopOrderModels := make([]ShopOrderDB, 0, 2)
	for rows.Next() {
		var shopOrderModel ShopOrderDB
		err := rows.Scan(
			&shopOrderModel.ID,
			&shopOrderModel.OrderID,
			&shopOrderModel.ShopID,
			&shopOrderModel.ShopName,
			&shopOrderModel.ShopLat,
			&shopOrderModel.ShopLon,
			&shopOrderModel.Items,
			&shopOrderModel.Subtotal,
			&shopOrderModel.Status,
			&shopOrderModel.OtpCode,
			&shopOrderModel.OtpIssuedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected order repository get shop orders error: %w", repository.Unavailable(err))
		}
		shopOrderModels = append(shopOrderModels, shopOrderModel)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository get shop orders error: %w", repository.Unavailable(err))
	}

	return shopOrderModels, nil
}

func (r *Repository) UpdateOrderStatus(ctx context.Context, orderID string, status entities.OrderStatusType) error {
	query := `
		UPDATE orders
		SET status = $2,
		    updated_at = NOW(),
		    delivered_at = CASE WHEN $2 = 'delivered' THEN NOW() ELSE delivered_at END
		WHERE id = $1
	`

	result, err := r.querier.Exec(ctx, query, orderID, status.String())
	if err != nil {
		return fmt.Errorf("unexpected order repository update status error: %w", repository.Unavailable(err))
	}

	if result.RowsAffected() == 0 {
		return order.ErrOrderNotFound
	}

	return nil
}

func (r *Repository) UpdateShopOrderStatus(ctx context.Context, shopOrderID string, status entities.OrderStatusType) error {
	query := `
		UPDATE shop_orders
		SET status = $2,
		    delivered_at = CASE WHEN $2 = 'delivered' THEN NOW() ELSE delivered_at END
		WHERE id = $1
	`

	result, err := r.querier.Exec(ctx, query, shopOrderID, status.String())
	if err != nil {
		return fmt.Errorf("unexpected order repository update shop order status error: %w", repository.Unavailable(err))
	}

	if result.RowsAffected() == 0 {
		return order.ErrShopOrderNotFound
	}

	return nil
}

func (r *Repository) UnassignAgent(ctx context.Context, orderID string) error {
	query := `
		UPDATE orders
		SET assigned_agent_id = NULL,
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.querier.Exec(ctx, query, orderID)
	if err != nil {
		return fmt.Errorf("unexpected order repository unassign error: %w", repository.Unavailable(err))
	}

	if result.RowsAffected() == 0 {
		return order.ErrOrderNotFound
	}

	return nil
}

// AssignAgent - условное обновление: побеждает первый, остальные
// попытки не находят строку и получают ErrAlreadyAssigned.
func (r *Repository) AssignAgent(ctx context.Context, orderID string, agentID string) error {
	query := `
		UPDATE orders
		SET assigned_agent_id = $2,
		    updated_at = NOW()
		WHERE id = $1
		  AND assigned_agent_id IS NULL
		  AND status NOT IN ('delivered', 'cancelled')
	`

	result, err := r.querier.Exec(ctx, query, orderID, agentID)
	if err != nil {
		return fmt.Errorf("unexpected order repository assign error: %w", repository.Unavailable(err))
	}

	if result.RowsAffected() == 0 {
		return dispatch.ErrAlreadyAssigned
	}

	return nil
}

func (r *Repository) SetShopOrderOtp(ctx context.Context, shopOrderID string, deliveryOtp entities.DeliveryOtp) error {
	query := `
		UPDATE shop_orders
		SET otp_code = $2,
		    otp_issued_at = $3
		WHERE id = $1
	`

	result, err := r.querier.Exec(ctx, query, shopOrderID, deliveryOtp.Code, deliveryOtp.IssuedAt)
	if err != nil {
		return fmt.Errorf("unexpected order repository set otp error: %w", repository.Unavailable(err))
	}

	if result.RowsAffected() == 0 {
		return otp.ErrShopOrderNotFound
	}

	return nil
}

func (r *Repository) ClearShopOrderOtp(ctx context.Context, shopOrderID string) error {
	query := `
		UPDATE shop_orders
		SET otp_code = NULL,
		    otp_issued_at = NULL
		WHERE id = $1
	`

	result, err := r.querier.Exec(ctx, query, shopOrderID)
	if err != nil {
		return fmt.Errorf("unexpected order repository clear otp error: %w", repository.Unavailable(err))
	}

	if result.RowsAffected() == 0 {
		return otp.ErrShopOrderNotFound
	}

	return nil
}

func (r *Repository) CountDeliveredByHour(ctx context.Context, agentID string, from, to time.Time) ([]entities.HourBucket, error) {
	builder := qb.
		Select("EXTRACT(HOUR FROM so.delivered_at)::int AS hour", "COUNT(*)").
		From("shop_orders so").
		Join("orders o ON o.id = so.order_id").
		Where(sq.Eq{"o.assigned_agent_id": agentID}).
		Where(sq.Eq{"so.status": "delivered"}).
		Where(sq.GtOrEq{"so.delivered_at": from}).
		Where(sq.Lt{"so.delivered_at": to}).
		GroupBy("hour").
		OrderBy("hour")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository count delivered error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository count delivered error: %w", repository.Unavailable(err))
	}
	defer rows.Close()

	buckets := make([]entities.HourBucket, 0, 8)
	for rows.Next() {
		var bucket entities.HourBucket
		if err := rows.Scan(&bucket.Hour, &bucket.Count); err != nil {
			return nil, fmt.Errorf("unexpected order repository count delivered error: %w", repository.Unavailable(err))
		}
		buckets = append(buckets, bucket)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository count delivered error: %w", repository.Unavailable(err))
	}

	return buckets, nil
}
