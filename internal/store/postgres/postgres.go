package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"raankai/backend/internal/domain"
	"raankai/backend/internal/store"
	"raankai/backend/internal/xid"
)

type Store struct {
	db *sql.DB
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(8)
	db.SetMaxOpenConns(30)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 6*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// ---- chicken parts ----

func (s *Store) ListChickenParts(ctx context.Context) ([]domain.ChickenPart, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, price_per_kg_satang, stock_kg, unit, created_at
		FROM chicken_parts
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	parts := make([]domain.ChickenPart, 0, 32)
	for rows.Next() {
		var p domain.ChickenPart
		if err := rows.Scan(&p.ID, &p.Name, &p.PricePerKgSatang, &p.StockKg, &p.Unit, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.CreatedAt = p.CreatedAt.UTC()
		parts = append(parts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return parts, nil
}

func (s *Store) GetChickenPart(ctx context.Context, id string) (*domain.ChickenPart, error) {
	var p domain.ChickenPart
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, price_per_kg_satang, stock_kg, unit, created_at
		FROM chicken_parts
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.PricePerKgSatang, &p.StockKg, &p.Unit, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}

func (s *Store) CreateChickenPart(ctx context.Context, part domain.ChickenPart) (*domain.ChickenPart, error) {
	if part.Name == "" || part.PricePerKgSatang < 0 || part.StockKg < 0 {
		return nil, store.ErrInvalidInput
	}
	if part.ID == "" {
		part.ID = xid.New("part")
	}
	if part.CreatedAt.IsZero() {
		part.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chicken_parts (id, name, price_per_kg_satang, stock_kg, unit, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,now())
	`, part.ID, part.Name, part.PricePerKgSatang, part.StockKg, part.Unit, part.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrInvalidInput
		}
		return nil, err
	}

	created := part
	return &created, nil
}

func (s *Store) UpdateChickenPart(ctx context.Context, part domain.ChickenPart) (*domain.ChickenPart, error) {
	if part.Name == "" || part.PricePerKgSatang < 0 || part.StockKg < 0 {
		return nil, store.ErrInvalidInput
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE chicken_parts
		SET name = $2, price_per_kg_satang = $3, stock_kg = $4, unit = $5, updated_at = now()
		WHERE id = $1
	`, part.ID, part.Name, part.PricePerKgSatang, part.StockKg, part.Unit)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrNotFound
	}

	updated := part
	return &updated, nil
}

func (s *Store) DeleteChickenPart(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM chicken_parts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) AdjustStock(ctx context.Context, id string, deltaKg float64) (*domain.ChickenPart, error) {
	var p domain.ChickenPart
	err := s.db.QueryRowContext(ctx, `
		UPDATE chicken_parts
		SET stock_kg = GREATEST(0, stock_kg + $2), updated_at = now()
		WHERE id = $1
		RETURNING id, name, price_per_kg_satang, stock_kg, unit, created_at
	`, id, deltaKg).Scan(&p.ID, &p.Name, &p.PricePerKgSatang, &p.StockKg, &p.Unit, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}

func (s *Store) ListLowStock(ctx context.Context, thresholdKg float64) ([]domain.ChickenPart, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, price_per_kg_satang, stock_kg, unit, created_at
		FROM chicken_parts
		WHERE stock_kg < $1
		ORDER BY stock_kg ASC, name ASC
	`, thresholdKg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	parts := make([]domain.ChickenPart, 0, 8)
	for rows.Next() {
		var p domain.ChickenPart
		if err := rows.Scan(&p.ID, &p.Name, &p.PricePerKgSatang, &p.StockKg, &p.Unit, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.CreatedAt = p.CreatedAt.UTC()
		parts = append(parts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return parts, nil
}

// ---- customers ----

func (s *Store) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, phone, address, notes, last_order_at, created_at
		FROM customers
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCustomers(rows)
}

func (s *Store) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	var c domain.Customer
	var lastOrder sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, phone, address, notes, last_order_at, created_at
		FROM customers
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.Notes, &lastOrder, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	if lastOrder.Valid {
		t := lastOrder.Time.UTC()
		c.LastOrderAt = &t
	}
	return &c, nil
}

func (s *Store) CreateCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error) {
	if customer.Name == "" {
		return nil, store.ErrInvalidInput
	}
	if customer.ID == "" {
		customer.ID = xid.New("cust")
	}
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, phone, address, notes, last_order_at, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,now())
	`, customer.ID, customer.Name, customer.Phone, customer.Address, customer.Notes, nullTime(customer.LastOrderAt), customer.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrInvalidInput
		}
		return nil, err
	}

	created := customer
	return &created, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error) {
	if customer.Name == "" {
		return nil, store.ErrInvalidInput
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE customers
		SET name = $2, phone = $3, address = $4, notes = $5, updated_at = now()
		WHERE id = $1
	`, customer.ID, customer.Name, customer.Phone, customer.Address, customer.Notes)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrNotFound
	}

	return s.GetCustomer(ctx, customer.ID)
}

func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListInactiveCustomers(ctx context.Context, now time.Time, thresholdDays int) ([]domain.Customer, error) {
	cutoff := now.Add(-time.Duration(thresholdDays) * 24 * time.Hour)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, phone, address, notes, last_order_at, created_at
		FROM customers
		WHERE last_order_at IS NULL OR last_order_at < $1
		ORDER BY name ASC
	`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCustomers(rows)
}

func scanCustomers(rows *sql.Rows) ([]domain.Customer, error) {
	customers := make([]domain.Customer, 0, 32)
	for rows.Next() {
		var c domain.Customer
		var lastOrder sql.NullTime
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.Notes, &lastOrder, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.CreatedAt = c.CreatedAt.UTC()
		if lastOrder.Valid {
			t := lastOrder.Time.UTC()
			c.LastOrderAt = &t
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return customers, nil
}

// ---- orders ----

func (s *Store) ListOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, customer_id, customer_name, items, total_satang, status, notes, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (s *Store) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	var itemsRaw []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT id, customer_id, customer_name, items, total_satang, status, notes, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, id).Scan(&o.ID, &o.CustomerID, &o.CustomerName, &itemsRaw, &o.TotalSatang, &o.Status, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(itemsRaw, &o.Items); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	o.CreatedAt = o.CreatedAt.UTC()
	o.UpdatedAt = o.UpdatedAt.UTC()
	return &o, nil
}

func (s *Store) ListOrdersByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, customer_id, customer_name, items, total_satang, status, notes, created_at, updated_at
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
	`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

// CreateOrder runs order insert, stock decrements, and the customer's
// last-order stamp inside one transaction.
func (s *Store) CreateOrder(ctx context.Context, order domain.Order) (*domain.Order, error) {
	if order.CustomerID == "" || len(order.Items) == 0 {
		return nil, store.ErrInvalidInput
	}
	if order.ID == "" {
		order.ID = xid.New("order")
	}
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("encode order items: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE customers
		SET last_order_at = $2, updated_at = now()
		WHERE id = $1
	`, order.CustomerID, order.CreatedAt)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("customer %s: %w", order.CustomerID, store.ErrNotFound)
	}

	for _, item := range order.Items {
		res, err := tx.ExecContext(ctx, `
			UPDATE chicken_parts
			SET stock_kg = GREATEST(0, stock_kg - $2), updated_at = now()
			WHERE id = $1
		`, item.ChickenPartID, item.QuantityKg)
		if err != nil {
			return nil, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, fmt.Errorf("chicken part %s: %w", item.ChickenPartID, store.ErrNotFound)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, customer_name, items, total_satang, status, notes, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$8)
	`, order.ID, order.CustomerID, order.CustomerName, itemsJSON, order.TotalSatang, order.Status, order.Notes, order.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrInvalidInput
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	created := order
	return &created, nil
}

func (s *Store) UpdateOrder(ctx context.Context, order domain.Order) (*domain.Order, error) {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("encode order items: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE orders
		SET customer_id = $2, customer_name = $3, items = $4, total_satang = $5, status = $6, notes = $7, updated_at = $8
		WHERE id = $1
	`, order.ID, order.CustomerID, order.CustomerName, itemsJSON, order.TotalSatang, order.Status, order.Notes, order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrNotFound
	}

	return s.GetOrder(ctx, order.ID)
}

func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) SumOrderRevenue(ctx context.Context, from time.Time, to time.Time) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_satang), 0)
		FROM orders
		WHERE status <> 'cancelled'
			AND created_at >= $1
			AND created_at < $2
	`, from, to).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

func scanOrders(rows *sql.Rows) ([]domain.Order, error) {
	orders := make([]domain.Order, 0, 64)
	for rows.Next() {
		var o domain.Order
		var itemsRaw []byte
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.CustomerName, &itemsRaw, &o.TotalSatang, &o.Status, &o.Notes, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(itemsRaw, &o.Items); err != nil {
			return nil, fmt.Errorf("decode order items: %w", err)
		}
		o.CreatedAt = o.CreatedAt.UTC()
		o.UpdatedAt = o.UpdatedAt.UTC()
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

// ---- employees ----

func (s *Store) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, phone, base_daily_wage_satang, notes, created_at
		FROM employees
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]domain.Employee, 0, 16)
	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Phone, &e.BaseDailyWageSatang, &e.Notes, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.CreatedAt = e.CreatedAt.UTC()
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}

func (s *Store) GetEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	var e domain.Employee
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, phone, base_daily_wage_satang, notes, created_at
		FROM employees
		WHERE id = $1
	`, id).Scan(&e.ID, &e.Name, &e.Phone, &e.BaseDailyWageSatang, &e.Notes, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	e.CreatedAt = e.CreatedAt.UTC()
	return &e, nil
}

func (s *Store) CreateEmployee(ctx context.Context, employee domain.Employee) (*domain.Employee, error) {
	if employee.Name == "" || employee.BaseDailyWageSatang <= 0 {
		return nil, store.ErrInvalidInput
	}
	if employee.ID == "" {
		employee.ID = xid.New("emp")
	}
	if employee.CreatedAt.IsZero() {
		employee.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (id, name, phone, base_daily_wage_satang, notes, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,now())
	`, employee.ID, employee.Name, employee.Phone, employee.BaseDailyWageSatang, employee.Notes, employee.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrInvalidInput
		}
		return nil, err
	}

	created := employee
	return &created, nil
}

func (s *Store) UpdateEmployee(ctx context.Context, employee domain.Employee) (*domain.Employee, error) {
	if employee.Name == "" || employee.BaseDailyWageSatang <= 0 {
		return nil, store.ErrInvalidInput
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE employees
		SET name = $2, phone = $3, base_daily_wage_satang = $4, notes = $5, updated_at = now()
		WHERE id = $1
	`, employee.ID, employee.Name, employee.Phone, employee.BaseDailyWageSatang, employee.Notes)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrNotFound
	}

	updated := employee
	return &updated, nil
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ---- wages ----

func (s *Store) ListWages(ctx context.Context) ([]domain.DailyWage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, employee_id, employee_name, date, amount_satang, adjustment_satang, adjustment_reason, notes, created_at
		FROM daily_wages
		ORDER BY date DESC, employee_name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanWages(rows)
}

func (s *Store) GetWage(ctx context.Context, id string) (*domain.DailyWage, error) {
	var w domain.DailyWage
	err := s.db.QueryRowContext(ctx, `
		SELECT id, employee_id, employee_name, date, amount_satang, adjustment_satang, adjustment_reason, notes, created_at
		FROM daily_wages
		WHERE id = $1
	`, id).Scan(&w.ID, &w.EmployeeID, &w.EmployeeName, &w.Date, &w.AmountSatang, &w.AdjustmentSatang, &w.AdjustmentReason, &w.Notes, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	w.CreatedAt = w.CreatedAt.UTC()
	return &w, nil
}

func (s *Store) ListWagesByEmployee(ctx context.Context, employeeID string) ([]domain.DailyWage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, employee_id, employee_name, date, amount_satang, adjustment_satang, adjustment_reason, notes, created_at
		FROM daily_wages
		WHERE employee_id = $1
		ORDER BY date DESC
	`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanWages(rows)
}

func (s *Store) ListWagesByDate(ctx context.Context, date string) ([]domain.DailyWage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, employee_id, employee_name, date, amount_satang, adjustment_satang, adjustment_reason, notes, created_at
		FROM daily_wages
		WHERE date = $1
		ORDER BY employee_name ASC
	`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanWages(rows)
}

func (s *Store) CreateWage(ctx context.Context, wage domain.DailyWage) (*domain.DailyWage, error) {
	if wage.EmployeeID == "" || !validDate(wage.Date) {
		return nil, store.ErrInvalidInput
	}
	if wage.ID == "" {
		wage.ID = xid.New("wage")
	}
	if wage.CreatedAt.IsZero() {
		wage.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO daily_wages (id, employee_id, employee_name, date, amount_satang, adjustment_satang, adjustment_reason, notes, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, wage.ID, wage.EmployeeID, wage.EmployeeName, wage.Date, wage.AmountSatang, wage.AdjustmentSatang, wage.AdjustmentReason, wage.Notes, wage.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrInvalidInput
		}
		return nil, err
	}

	created := wage
	return &created, nil
}

func (s *Store) UpdateWage(ctx context.Context, wage domain.DailyWage) (*domain.DailyWage, error) {
	if !validDate(wage.Date) {
		return nil, store.ErrInvalidInput
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE daily_wages
		SET date = $2, amount_satang = $3, adjustment_satang = $4, adjustment_reason = $5, notes = $6
		WHERE id = $1
	`, wage.ID, wage.Date, wage.AmountSatang, wage.AdjustmentSatang, wage.AdjustmentReason, wage.Notes)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrNotFound
	}

	return s.GetWage(ctx, wage.ID)
}

func (s *Store) DeleteWage(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM daily_wages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) SumWagesByDate(ctx context.Context, date string) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount_satang), 0)
		FROM daily_wages
		WHERE date = $1
	`, date).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) SumWagesByEmployeeMonth(ctx context.Context, employeeID string, year int, month time.Month) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount_satang), 0)
		FROM daily_wages
		WHERE employee_id = $1 AND date LIKE $2
	`, employeeID, monthPrefix(year, month)+"%").Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) SumWagesByEmployeeWeek(ctx context.Context, employeeID string, weekStart time.Time) (int64, error) {
	weekEnd := weekStart.Add(7 * 24 * time.Hour)
	var total int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount_satang), 0)
		FROM daily_wages
		WHERE employee_id = $1
			AND date >= $2
			AND date < $3
	`, employeeID, weekStart.Format("2006-01-02"), weekEnd.Format("2006-01-02")).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) SumWagesByMonth(ctx context.Context, year int, month time.Month) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount_satang), 0)
		FROM daily_wages
		WHERE date LIKE $1
	`, monthPrefix(year, month)+"%").Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

func scanWages(rows *sql.Rows) ([]domain.DailyWage, error) {
	wages := make([]domain.DailyWage, 0, 32)
	for rows.Next() {
		var w domain.DailyWage
		if err := rows.Scan(&w.ID, &w.EmployeeID, &w.EmployeeName, &w.Date, &w.AmountSatang, &w.AdjustmentSatang, &w.AdjustmentReason, &w.Notes, &w.CreatedAt); err != nil {
			return nil, err
		}
		w.CreatedAt = w.CreatedAt.UTC()
		wages = append(wages, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return wages, nil
}

// ---- calendar notes ----

func (s *Store) ListCalendarNotes(ctx context.Context) ([]domain.CalendarNote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, title, content, created_at, updated_at
		FROM calendar_notes
		ORDER BY date DESC, title ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanNotes(rows)
}

func (s *Store) GetCalendarNote(ctx context.Context, id string) (*domain.CalendarNote, error) {
	var n domain.CalendarNote
	err := s.db.QueryRowContext(ctx, `
		SELECT id, date, title, content, created_at, updated_at
		FROM calendar_notes
		WHERE id = $1
	`, id).Scan(&n.ID, &n.Date, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	n.CreatedAt = n.CreatedAt.UTC()
	n.UpdatedAt = n.UpdatedAt.UTC()
	return &n, nil
}

func (s *Store) ListCalendarNotesByDate(ctx context.Context, date string) ([]domain.CalendarNote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, title, content, created_at, updated_at
		FROM calendar_notes
		WHERE date = $1
		ORDER BY title ASC
	`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanNotes(rows)
}

func (s *Store) CreateCalendarNote(ctx context.Context, note domain.CalendarNote) (*domain.CalendarNote, error) {
	if !validDate(note.Date) || note.Title == "" {
		return nil, store.ErrInvalidInput
	}
	if note.ID == "" {
		note.ID = xid.New("note")
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}
	if note.UpdatedAt.IsZero() {
		note.UpdatedAt = note.CreatedAt
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO calendar_notes (id, date, title, content, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, note.ID, note.Date, note.Title, note.Content, note.CreatedAt, note.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrInvalidInput
		}
		return nil, err
	}

	created := note
	return &created, nil
}

func (s *Store) UpdateCalendarNote(ctx context.Context, note domain.CalendarNote) (*domain.CalendarNote, error) {
	if !validDate(note.Date) || note.Title == "" {
		return nil, store.ErrInvalidInput
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE calendar_notes
		SET date = $2, title = $3, content = $4, updated_at = $5
		WHERE id = $1
	`, note.ID, note.Date, note.Title, note.Content, note.UpdatedAt)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrNotFound
	}

	return s.GetCalendarNote(ctx, note.ID)
}

func (s *Store) DeleteCalendarNote(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM calendar_notes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanNotes(rows *sql.Rows) ([]domain.CalendarNote, error) {
	notes := make([]domain.CalendarNote, 0, 16)
	for rows.Next() {
		var n domain.CalendarNote
		if err := rows.Scan(&n.ID, &n.Date, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		n.CreatedAt = n.CreatedAt.UTC()
		n.UpdatedAt = n.UpdatedAt.UTC()
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

// ---- users ----

func (s *Store) CreateUser(ctx context.Context, user domain.UserAccount) error {
	user.Username = strings.ToLower(strings.TrimSpace(user.Username))
	if user.Username == "" || strings.TrimSpace(user.Password) == "" {
		return store.ErrInvalidInput
	}
	if user.Role == "" {
		user.Role = domain.RoleStaff
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_users (username, password, name, role, active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,now())
	`, user.Username, user.Password, user.Name, user.Role, user.Active, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrInvalidInput
		}
		return err
	}
	return nil
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.UserAccount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT username, password, name, role, active, created_at
		FROM app_users
		ORDER BY username ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.UserAccount, 0, 16)
	for rows.Next() {
		var user domain.UserAccount
		if err := rows.Scan(&user.Username, &user.Password, &user.Name, &user.Role, &user.Active, &user.CreatedAt); err != nil {
			return nil, err
		}
		user.CreatedAt = user.CreatedAt.UTC()
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) UpdateUserPassword(ctx context.Context, username string, password string) error {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || strings.TrimSpace(password) == "" {
		return store.ErrInvalidInput
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE app_users
		SET password = $2, updated_at = now()
		WHERE username = $1
	`, username, password)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ---- helpers ----

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func monthPrefix(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

func validDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

func nullTime(val *time.Time) any {
	if val == nil {
		return nil
	}
	return *val
}
