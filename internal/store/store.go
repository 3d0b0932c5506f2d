package store

import (
	"context"
	"errors"
	"time"

	"raankai/backend/internal/domain"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Repository is the persistence port. All identities are opaque strings;
// implementations own transaction boundaries. CreateOrder performs the insert,
// the per-item stock decrements, and the customer last-order-date update as one
// atomic operation.
type Repository interface {
	ListChickenParts(ctx context.Context) ([]domain.ChickenPart, error)
	GetChickenPart(ctx context.Context, id string) (*domain.ChickenPart, error)
	CreateChickenPart(ctx context.Context, part domain.ChickenPart) (*domain.ChickenPart, error)
	UpdateChickenPart(ctx context.Context, part domain.ChickenPart) (*domain.ChickenPart, error)
	DeleteChickenPart(ctx context.Context, id string) error
	// AdjustStock applies a signed kg delta, clamping the result at zero.
	AdjustStock(ctx context.Context, id string, deltaKg float64) (*domain.ChickenPart, error)
	// ListLowStock returns parts with stock strictly below thresholdKg.
	ListLowStock(ctx context.Context, thresholdKg float64) ([]domain.ChickenPart, error)

	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	GetCustomer(ctx context.Context, id string) (*domain.Customer, error)
	CreateCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
	// ListInactiveCustomers returns customers whose last order is older than
	// now minus thresholdDays, or who have never ordered.
	ListInactiveCustomers(ctx context.Context, now time.Time, thresholdDays int) ([]domain.Customer, error)

	ListOrders(ctx context.Context) ([]domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	CreateOrder(ctx context.Context, order domain.Order) (*domain.Order, error)
	UpdateOrder(ctx context.Context, order domain.Order) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id string) error
	// SumOrderRevenue sums TotalSatang over orders created in [from, to),
	// excluding cancelled orders.
	SumOrderRevenue(ctx context.Context, from time.Time, to time.Time) (int64, error)

	ListEmployees(ctx context.Context) ([]domain.Employee, error)
	GetEmployee(ctx context.Context, id string) (*domain.Employee, error)
	CreateEmployee(ctx context.Context, employee domain.Employee) (*domain.Employee, error)
	UpdateEmployee(ctx context.Context, employee domain.Employee) (*domain.Employee, error)
	DeleteEmployee(ctx context.Context, id string) error

	ListWages(ctx context.Context) ([]domain.DailyWage, error)
	GetWage(ctx context.Context, id string) (*domain.DailyWage, error)
	ListWagesByEmployee(ctx context.Context, employeeID string) ([]domain.DailyWage, error)
	ListWagesByDate(ctx context.Context, date string) ([]domain.DailyWage, error)
	CreateWage(ctx context.Context, wage domain.DailyWage) (*domain.DailyWage, error)
	UpdateWage(ctx context.Context, wage domain.DailyWage) (*domain.DailyWage, error)
	DeleteWage(ctx context.Context, id string) error
	SumWagesByDate(ctx context.Context, date string) (int64, error)
	SumWagesByEmployeeMonth(ctx context.Context, employeeID string, year int, month time.Month) (int64, error)
	SumWagesByEmployeeWeek(ctx context.Context, employeeID string, weekStart time.Time) (int64, error)
	SumWagesByMonth(ctx context.Context, year int, month time.Month) (int64, error)

	ListCalendarNotes(ctx context.Context) ([]domain.CalendarNote, error)
	GetCalendarNote(ctx context.Context, id string) (*domain.CalendarNote, error)
	ListCalendarNotesByDate(ctx context.Context, date string) ([]domain.CalendarNote, error)
	CreateCalendarNote(ctx context.Context, note domain.CalendarNote) (*domain.CalendarNote, error)
	UpdateCalendarNote(ctx context.Context, note domain.CalendarNote) (*domain.CalendarNote, error)
	DeleteCalendarNote(ctx context.Context, id string) error

	CreateUser(ctx context.Context, user domain.UserAccount) error
	ListUsers(ctx context.Context) ([]domain.UserAccount, error)
	UpdateUserPassword(ctx context.Context, username string, password string) error
}
