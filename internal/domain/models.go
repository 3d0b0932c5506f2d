package domain

import "time"

// All currency amounts are satang (1/100 baht) stored as int64.
// All weights are kilograms stored as float64.

type ChickenPart struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	PricePerKgSatang int64     `json:"price_per_kg_satang"`
	StockKg          float64   `json:"stock_kg"`
	Unit             string    `json:"unit"`
	CreatedAt        time.Time `json:"created_at"`
}

type ChickenPartCreateRequest struct {
	Name             string  `json:"name"`
	PricePerKgSatang int64   `json:"price_per_kg_satang"`
	StockKg          float64 `json:"stock_kg"`
	Unit             string  `json:"unit"`
}

type ChickenPartUpdateRequest struct {
	Name             *string  `json:"name,omitempty"`
	PricePerKgSatang *int64   `json:"price_per_kg_satang,omitempty"`
	StockKg          *float64 `json:"stock_kg,omitempty"`
	Unit             *string  `json:"unit,omitempty"`
}

type StockAdjustRequest struct {
	AmountKg float64 `json:"amount_kg"`
}

type Customer struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Phone       string     `json:"phone"`
	Address     string     `json:"address"`
	Notes       string     `json:"notes"`
	LastOrderAt *time.Time `json:"last_order_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type CustomerCreateRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type CustomerUpdateRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

// OrderItem is a point-in-time snapshot: name and price are copied from the
// chicken part when the item is added or edited, never resolved at read time.
type OrderItem struct {
	ChickenPartID    string  `json:"chicken_part_id"`
	ChickenPartName  string  `json:"chicken_part_name"`
	QuantityKg       float64 `json:"quantity_kg"`
	PricePerKgSatang int64   `json:"price_per_kg_satang"`
	TotalSatang      int64   `json:"total_satang"`
}

type Order struct {
	ID           string      `json:"id"`
	CustomerID   string      `json:"customer_id"`
	CustomerName string      `json:"customer_name"`
	Items        []OrderItem `json:"items"`
	TotalSatang  int64       `json:"total_satang"`
	Notes        string      `json:"notes"`
	Status       string      `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type OrderCreateRequest struct {
	CustomerID string      `json:"customer_id"`
	Items      []OrderItem `json:"items"`
	Notes      string      `json:"notes"`
}

type OrderUpdateRequest struct {
	Items  *[]OrderItem `json:"items,omitempty"`
	Status *string      `json:"status,omitempty"`
	Notes  *string      `json:"notes,omitempty"`
}

type Employee struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Phone               string    `json:"phone"`
	BaseDailyWageSatang int64     `json:"base_daily_wage_satang"`
	Notes               string    `json:"notes"`
	CreatedAt           time.Time `json:"created_at"`
}

type EmployeeCreateRequest struct {
	Name                string `json:"name"`
	Phone               string `json:"phone"`
	BaseDailyWageSatang int64  `json:"base_daily_wage_satang"`
	Notes               string `json:"notes"`
}

type EmployeeUpdateRequest struct {
	Name                *string `json:"name,omitempty"`
	Phone               *string `json:"phone,omitempty"`
	BaseDailyWageSatang *int64  `json:"base_daily_wage_satang,omitempty"`
	Notes               *string `json:"notes,omitempty"`
}

// DailyWage records one paid day. AmountSatang is seeded from
// base + adjustment at entry time but stored as an independent field:
// aggregates sum it verbatim and never re-derive it.
type DailyWage struct {
	ID               string    `json:"id"`
	EmployeeID       string    `json:"employee_id"`
	EmployeeName     string    `json:"employee_name"`
	Date             string    `json:"date"`
	AmountSatang     int64     `json:"amount_satang"`
	AdjustmentSatang int64     `json:"adjustment_satang"`
	AdjustmentReason string    `json:"adjustment_reason"`
	Notes            string    `json:"notes"`
	CreatedAt        time.Time `json:"created_at"`
}

type DailyWageCreateRequest struct {
	EmployeeID       string `json:"employee_id"`
	Date             string `json:"date"`
	AmountSatang     int64  `json:"amount_satang"`
	AdjustmentSatang int64  `json:"adjustment_satang"`
	AdjustmentReason string `json:"adjustment_reason"`
	Notes            string `json:"notes"`
}

type DailyWageUpdateRequest struct {
	Date             *string `json:"date,omitempty"`
	AmountSatang     *int64  `json:"amount_satang,omitempty"`
	AdjustmentSatang *int64  `json:"adjustment_satang,omitempty"`
	AdjustmentReason *string `json:"adjustment_reason,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

type CalendarNote struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CalendarNoteCreateRequest struct {
	Date    string `json:"date"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type CalendarNoteUpdateRequest struct {
	Date    *string `json:"date,omitempty"`
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

type DashboardStats struct {
	TodayRevenueSatang   int64         `json:"today_revenue_satang"`
	MonthlyRevenueSatang int64         `json:"monthly_revenue_satang"`
	TodayWagesSatang     int64         `json:"today_wages_satang"`
	MonthlyWagesSatang   int64         `json:"monthly_wages_satang"`
	TodayProfitSatang    int64         `json:"today_profit_satang"`
	MonthlyProfitSatang  int64         `json:"monthly_profit_satang"`
	TotalCustomers       int           `json:"total_customers"`
	TotalEmployees       int           `json:"total_employees"`
	LowStockParts        []ChickenPart `json:"low_stock_parts"`
	InactiveCustomers    []Customer    `json:"inactive_customers"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	Name        string `json:"name"`
	ExpiresAt   string `json:"expires_at"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type Actor struct {
	Username string
	Role     string
}

type StaffUser struct {
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// UserAccount is the internal persistence model for auth credentials.
type UserAccount struct {
	Username  string
	Password  string
	Name      string
	Role      string
	Active    bool
	CreatedAt time.Time
}

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// ValidOrderStatus reports whether status is one of the three order states.
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}
