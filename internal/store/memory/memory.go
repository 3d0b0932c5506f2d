package memory

import (
	"context"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"raankai/backend/internal/domain"
	"raankai/backend/internal/store"
	"raankai/backend/internal/xid"
)

type Store struct {
	mu              sync.RWMutex
	partsByID       map[string]domain.ChickenPart
	customersByID   map[string]domain.Customer
	ordersByID      map[string]domain.Order
	employeesByID   map[string]domain.Employee
	wagesByID       map[string]domain.DailyWage
	notesByID       map[string]domain.CalendarNote
	usersByUsername map[string]domain.UserAccount
}

// seedUsers builds the initial user accounts for dev/demo mode. Credentials
// come from SEED_ADMIN_PASSWORD and SEED_STAFF_PASSWORD; hardcoded dev
// defaults are used with a warning when unset.
func seedUsers() map[string]domain.UserAccount {
	adminPwd := envOr("SEED_ADMIN_PASSWORD", "admin123")
	staffPwd := envOr("SEED_STAFF_PASSWORD", "staff123")
	if os.Getenv("SEED_ADMIN_PASSWORD") == "" || os.Getenv("SEED_STAFF_PASSWORD") == "" {
		log.Println("[memory-store] WARNING: using default dev credentials. Set SEED_ADMIN_PASSWORD and SEED_STAFF_PASSWORD to override.")
	}

	now := time.Now().UTC()
	users := map[string]domain.UserAccount{}
	for _, u := range []struct {
		username string
		password string
		name     string
		role     string
	}{
		{"admin", adminPwd, "Shop Owner", domain.RoleAdmin},
		{"staff", staffPwd, "Counter Staff", domain.RoleStaff},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("[memory-store] failed to hash seed password for %s: %v", u.username, err)
		}
		users[u.username] = domain.UserAccount{
			Username:  u.username,
			Password:  string(hash),
			Name:      u.name,
			Role:      u.role,
			Active:    true,
			CreatedAt: now,
		}
	}
	return users
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// New returns a completely empty store: no parts, no user accounts.
func New() *Store {
	return &Store{
		partsByID:       make(map[string]domain.ChickenPart),
		customersByID:   make(map[string]domain.Customer),
		ordersByID:      make(map[string]domain.Order),
		employeesByID:   make(map[string]domain.Employee),
		wagesByID:       make(map[string]domain.DailyWage),
		notesByID:       make(map[string]domain.CalendarNote),
		usersByUsername: make(map[string]domain.UserAccount),
	}
}

// NewSeeded returns a store preloaded with a typical chicken-part catalog and
// demo user accounts.
func NewSeeded() *Store {
	now := time.Now().UTC()
	parts := []domain.ChickenPart{
		{ID: "part-breast", Name: "Breast", PricePerKgSatang: 9500, StockKg: 120, Unit: "kg", CreatedAt: now},
		{ID: "part-thigh", Name: "Thigh", PricePerKgSatang: 8500, StockKg: 120, Unit: "kg", CreatedAt: now},
		{ID: "part-wing", Name: "Wing", PricePerKgSatang: 9000, StockKg: 120, Unit: "kg", CreatedAt: now},
		{ID: "part-drumstick", Name: "Drumstick", PricePerKgSatang: 8000, StockKg: 120, Unit: "kg", CreatedAt: now},
		{ID: "part-carcass", Name: "Carcass", PricePerKgSatang: 3000, StockKg: 120, Unit: "kg", CreatedAt: now},
		{ID: "part-feet", Name: "Feet", PricePerKgSatang: 4500, StockKg: 120, Unit: "kg", CreatedAt: now},
		{ID: "part-liver", Name: "Liver", PricePerKgSatang: 5500, StockKg: 120, Unit: "kg", CreatedAt: now},
	}

	s := New()
	for _, p := range parts {
		s.partsByID[p.ID] = p
	}
	s.usersByUsername = seedUsers()
	return s
}

// ---- chicken parts ----

func (s *Store) ListChickenParts(_ context.Context) ([]domain.ChickenPart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	parts := make([]domain.ChickenPart, 0, len(s.partsByID))
	for _, p := range s.partsByID {
		parts = append(parts, p)
	}
	slices.SortFunc(parts, func(a, b domain.ChickenPart) int {
		return cmpString(a.Name, b.Name)
	})
	return parts, nil
}

func (s *Store) GetChickenPart(_ context.Context, id string) (*domain.ChickenPart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	part, exists := s.partsByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copyPart := part
	return &copyPart, nil
}

func (s *Store) CreateChickenPart(_ context.Context, part domain.ChickenPart) (*domain.ChickenPart, error) {
	if part.Name == "" || part.PricePerKgSatang < 0 || part.StockKg < 0 {
		return nil, store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if part.ID == "" {
		part.ID = xid.New("part")
	}
	if _, exists := s.partsByID[part.ID]; exists {
		return nil, store.ErrInvalidInput
	}
	if part.CreatedAt.IsZero() {
		part.CreatedAt = time.Now().UTC()
	}
	s.partsByID[part.ID] = part
	created := part
	return &created, nil
}

func (s *Store) UpdateChickenPart(_ context.Context, part domain.ChickenPart) (*domain.ChickenPart, error) {
	if part.Name == "" || part.PricePerKgSatang < 0 || part.StockKg < 0 {
		return nil, store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.partsByID[part.ID]
	if !exists {
		return nil, store.ErrNotFound
	}
	part.CreatedAt = existing.CreatedAt
	s.partsByID[part.ID] = part
	updated := part
	return &updated, nil
}

func (s *Store) DeleteChickenPart(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.partsByID[id]; !exists {
		return store.ErrNotFound
	}
	delete(s.partsByID, id)
	return nil
}

func (s *Store) AdjustStock(_ context.Context, id string, deltaKg float64) (*domain.ChickenPart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	part, exists := s.partsByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	part.StockKg = clampStock(part.StockKg + deltaKg)
	s.partsByID[id] = part
	adjusted := part
	return &adjusted, nil
}

func (s *Store) ListLowStock(_ context.Context, thresholdKg float64) ([]domain.ChickenPart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	low := make([]domain.ChickenPart, 0, 8)
	for _, p := range s.partsByID {
		if p.StockKg < thresholdKg {
			low = append(low, p)
		}
	}
	slices.SortFunc(low, func(a, b domain.ChickenPart) int {
		if a.StockKg == b.StockKg {
			return cmpString(a.Name, b.Name)
		}
		if a.StockKg < b.StockKg {
			return -1
		}
		return 1
	})
	return low, nil
}

// ---- customers ----

func (s *Store) ListCustomers(_ context.Context) ([]domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customers := make([]domain.Customer, 0, len(s.customersByID))
	for _, c := range s.customersByID {
		customers = append(customers, c)
	}
	slices.SortFunc(customers, func(a, b domain.Customer) int {
		return cmpString(a.Name, b.Name)
	})
	return customers, nil
}

func (s *Store) GetCustomer(_ context.Context, id string) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customer, exists := s.customersByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copyCustomer := customer
	return &copyCustomer, nil
}

func (s *Store) CreateCustomer(_ context.Context, customer domain.Customer) (*domain.Customer, error) {
	if customer.Name == "" {
		return nil, store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if customer.ID == "" {
		customer.ID = xid.New("cust")
	}
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now().UTC()
	}
	s.customersByID[customer.ID] = customer
	created := customer
	return &created, nil
}

func (s *Store) UpdateCustomer(_ context.Context, customer domain.Customer) (*domain.Customer, error) {
	if customer.Name == "" {
		return nil, store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.customersByID[customer.ID]
	if !exists {
		return nil, store.ErrNotFound
	}
	customer.CreatedAt = existing.CreatedAt
	customer.LastOrderAt = existing.LastOrderAt
	s.customersByID[customer.ID] = customer
	updated := customer
	return &updated, nil
}

func (s *Store) DeleteCustomer(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.customersByID[id]; !exists {
		return store.ErrNotFound
	}
	delete(s.customersByID, id)
	return nil
}

func (s *Store) ListInactiveCustomers(_ context.Context, now time.Time, thresholdDays int) ([]domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := now.Add(-time.Duration(thresholdDays) * 24 * time.Hour)
	inactive := make([]domain.Customer, 0, 8)
	for _, c := range s.customersByID {
		// Never-ordered customers are always inactive regardless of threshold.
		if c.LastOrderAt == nil || c.LastOrderAt.Before(cutoff) {
			inactive = append(inactive, c)
		}
	}
	slices.SortFunc(inactive, func(a, b domain.Customer) int {
		return cmpString(a.Name, b.Name)
	})
	return inactive, nil
}

// ---- orders ----

func (s *Store) ListOrders(_ context.Context) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]domain.Order, 0, len(s.ordersByID))
	for _, o := range s.ordersByID {
		orders = append(orders, copyOrder(o))
	}
	slices.SortFunc(orders, func(a, b domain.Order) int {
		if a.CreatedAt.Equal(b.CreatedAt) {
			return cmpString(b.ID, a.ID)
		}
		if a.CreatedAt.After(b.CreatedAt) {
			return -1
		}
		return 1
	})
	return orders, nil
}

func (s *Store) GetOrder(_ context.Context, id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, exists := s.ordersByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copied := copyOrder(order)
	return &copied, nil
}

func (s *Store) ListOrdersByCustomer(_ context.Context, customerID string) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]domain.Order, 0, 8)
	for _, o := range s.ordersByID {
		if o.CustomerID == customerID {
			orders = append(orders, copyOrder(o))
		}
	}
	slices.SortFunc(orders, func(a, b domain.Order) int {
		if a.CreatedAt.After(b.CreatedAt) {
			return -1
		}
		return 1
	})
	return orders, nil
}

// CreateOrder inserts the order, clamp-decrements stock for each line item,
// and stamps the customer's last-order date, all under one lock so the three
// effects land together or not at all.
func (s *Store) CreateOrder(_ context.Context, order domain.Order) (*domain.Order, error) {
	if order.CustomerID == "" || len(order.Items) == 0 {
		return nil, store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if order.ID == "" {
		order.ID = xid.New("order")
	}
	if _, exists := s.ordersByID[order.ID]; exists {
		return nil, store.ErrInvalidInput
	}
	customer, exists := s.customersByID[order.CustomerID]
	if !exists {
		return nil, fmt.Errorf("customer %s: %w", order.CustomerID, store.ErrNotFound)
	}
	for _, item := range order.Items {
		if _, ok := s.partsByID[item.ChickenPartID]; !ok {
			return nil, fmt.Errorf("chicken part %s: %w", item.ChickenPartID, store.ErrNotFound)
		}
	}

	for _, item := range order.Items {
		part := s.partsByID[item.ChickenPartID]
		part.StockKg = clampStock(part.StockKg - item.QuantityKg)
		s.partsByID[item.ChickenPartID] = part
	}

	orderedAt := order.CreatedAt
	customer.LastOrderAt = &orderedAt
	s.customersByID[customer.ID] = customer

	s.ordersByID[order.ID] = copyOrder(order)
	created := copyOrder(order)
	return &created, nil
}

// UpdateOrder replaces the stored order. Stock is deliberately not
// re-adjusted on edit; adjust-stock is the correction path.
func (s *Store) UpdateOrder(_ context.Context, order domain.Order) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.ordersByID[order.ID]
	if !exists {
		return nil, store.ErrNotFound
	}
	order.CreatedAt = existing.CreatedAt
	s.ordersByID[order.ID] = copyOrder(order)
	updated := copyOrder(order)
	return &updated, nil
}

// DeleteOrder removes the order without restoring stock; see the open-question
// note in DESIGN.md.
func (s *Store) DeleteOrder(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.ordersByID[id]; !exists {
		return store.ErrNotFound
	}
	delete(s.ordersByID, id)
	return nil
}

func (s *Store) SumOrderRevenue(_ context.Context, from time.Time, to time.Time) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	for _, o := range s.ordersByID {
		if o.Status == domain.OrderStatusCancelled {
			continue
		}
		if o.CreatedAt.Before(from) || !o.CreatedAt.Before(to) {
			continue
		}
		total += o.TotalSatang
	}
	return total, nil
}

// ---- employees ----

func (s *Store) ListEmployees(_ context.Context) ([]domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	employees := make([]domain.Employee, 0, len(s.employeesByID))
	for _, e := range s.employeesByID {
		employees = append(employees, e)
	}
	slices.SortFunc(employees, func(a, b domain.Employee) int {
		return cmpString(a.Name, b.Name)
	})
	return employees, nil
}

func (s *Store) GetEmployee(_ context.Context, id string) (*domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	employee, exists := s.employeesByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copyEmployee := employee
	return &copyEmployee, nil
}

func (s *Store) CreateEmployee(_ context.Context, employee domain.Employee) (*domain.Employee, error) {
	if employee.Name == "" || employee.BaseDailyWageSatang <= 0 {
		return nil, store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if employee.ID == "" {
		employee.ID = xid.New("emp")
	}
	if employee.CreatedAt.IsZero() {
		employee.CreatedAt = time.Now().UTC()
	}
	s.employeesByID[employee.ID] = employee
	created := employee
	return &created, nil
}

func (s *Store) UpdateEmployee(_ context.Context, employee domain.Employee) (*domain.Employee, error) {
	if employee.Name == "" || employee.BaseDailyWageSatang <= 0 {
		return nil, store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.employeesByID[employee.ID]
	if !exists {
		return nil, store.ErrNotFound
	}
	employee.CreatedAt = existing.CreatedAt
	s.employeesByID[employee.ID] = employee
	updated := employee
	return &updated, nil
}

func (s *Store) DeleteEmployee(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.employeesByID[id]; !exists {
		return store.ErrNotFound
	}
	delete(s.employeesByID, id)
	return nil
}

// ---- wages ----

func (s *Store) ListWages(_ context.Context) ([]domain.DailyWage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wages := make([]domain.DailyWage, 0, len(s.wagesByID))
	for _, w := range s.wagesByID {
		wages = append(wages, w)
	}
	sortWagesByDateDesc(wages)
	return wages, nil
}

func (s *Store) GetWage(_ context.Context, id string) (*domain.DailyWage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wage, exists := s.wagesByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copyWage := wage
	return &copyWage, nil
}

func (s *Store) ListWagesByEmployee(_ context.Context, employeeID string) ([]domain.DailyWage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wages := make([]domain.DailyWage, 0, 16)
	for _, w := range s.wagesByID {
		if w.EmployeeID == employeeID {
			wages = append(wages, w)
		}
	}
	sortWagesByDateDesc(wages)
	return wages, nil
}

func (s *Store) ListWagesByDate(_ context.Context, date string) ([]domain.DailyWage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wages := make([]domain.DailyWage, 0, 8)
	for _, w := range s.wagesByID {
		if w.Date == date {
			wages = append(wages, w)
		}
	}
	slices.SortFunc(wages, func(a, b domain.DailyWage) int {
		return cmpString(a.EmployeeName, b.EmployeeName)
	})
	return wages, nil
}

func (s *Store) CreateWage(_ context.Context, wage domain.DailyWage) (*domain.DailyWage, error) {
	if wage.EmployeeID == "" || !validDate(wage.Date) {
		return nil, store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if wage.ID == "" {
		wage.ID = xid.New("wage")
	}
	if wage.CreatedAt.IsZero() {
		wage.CreatedAt = time.Now().UTC()
	}
	// Multiple entries per employee per date are allowed; aggregates sum all.
	s.wagesByID[wage.ID] = wage
	created := wage
	return &created, nil
}

func (s *Store) UpdateWage(_ context.Context, wage domain.DailyWage) (*domain.DailyWage, error) {
	if !validDate(wage.Date) {
		return nil, store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.wagesByID[wage.ID]
	if !exists {
		return nil, store.ErrNotFound
	}
	wage.EmployeeID = existing.EmployeeID
	wage.EmployeeName = existing.EmployeeName
	wage.CreatedAt = existing.CreatedAt
	s.wagesByID[wage.ID] = wage
	updated := wage
	return &updated, nil
}

func (s *Store) DeleteWage(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.wagesByID[id]; !exists {
		return store.ErrNotFound
	}
	delete(s.wagesByID, id)
	return nil
}

func (s *Store) SumWagesByDate(_ context.Context, date string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	for _, w := range s.wagesByID {
		if w.Date == date {
			total += w.AmountSatang
		}
	}
	return total, nil
}

func (s *Store) SumWagesByEmployeeMonth(_ context.Context, employeeID string, year int, month time.Month) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := monthPrefix(year, month)
	var total int64
	for _, w := range s.wagesByID {
		if w.EmployeeID == employeeID && strings.HasPrefix(w.Date, prefix) {
			total += w.AmountSatang
		}
	}
	return total, nil
}

func (s *Store) SumWagesByEmployeeWeek(_ context.Context, employeeID string, weekStart time.Time) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	weekEnd := weekStart.Add(7 * 24 * time.Hour)
	var total int64
	for _, w := range s.wagesByID {
		if w.EmployeeID != employeeID {
			continue
		}
		day, err := time.Parse("2006-01-02", w.Date)
		if err != nil {
			continue
		}
		if !day.Before(weekStart) && day.Before(weekEnd) {
			total += w.AmountSatang
		}
	}
	return total, nil
}

func (s *Store) SumWagesByMonth(_ context.Context, year int, month time.Month) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := monthPrefix(year, month)
	var total int64
	for _, w := range s.wagesByID {
		if strings.HasPrefix(w.Date, prefix) {
			total += w.AmountSatang
		}
	}
	return total, nil
}

// ---- calendar notes ----

func (s *Store) ListCalendarNotes(_ context.Context) ([]domain.CalendarNote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := make([]domain.CalendarNote, 0, len(s.notesByID))
	for _, n := range s.notesByID {
		notes = append(notes, n)
	}
	slices.SortFunc(notes, func(a, b domain.CalendarNote) int {
		if a.Date == b.Date {
			return cmpString(a.Title, b.Title)
		}
		return cmpString(b.Date, a.Date)
	})
	return notes, nil
}

func (s *Store) GetCalendarNote(_ context.Context, id string) (*domain.CalendarNote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	note, exists := s.notesByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copyNote := note
	return &copyNote, nil
}

func (s *Store) ListCalendarNotesByDate(_ context.Context, date string) ([]domain.CalendarNote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := make([]domain.CalendarNote, 0, 4)
	for _, n := range s.notesByID {
		if n.Date == date {
			notes = append(notes, n)
		}
	}
	slices.SortFunc(notes, func(a, b domain.CalendarNote) int {
		return cmpString(a.Title, b.Title)
	})
	return notes, nil
}

func (s *Store) CreateCalendarNote(_ context.Context, note domain.CalendarNote) (*domain.CalendarNote, error) {
	if !validDate(note.Date) || note.Title == "" {
		return nil, store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if note.ID == "" {
		note.ID = xid.New("note")
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}
	if note.UpdatedAt.IsZero() {
		note.UpdatedAt = note.CreatedAt
	}
	s.notesByID[note.ID] = note
	created := note
	return &created, nil
}

func (s *Store) UpdateCalendarNote(_ context.Context, note domain.CalendarNote) (*domain.CalendarNote, error) {
	if !validDate(note.Date) || note.Title == "" {
		return nil, store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.notesByID[note.ID]
	if !exists {
		return nil, store.ErrNotFound
	}
	note.CreatedAt = existing.CreatedAt
	s.notesByID[note.ID] = note
	updated := note
	return &updated, nil
}

func (s *Store) DeleteCalendarNote(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.notesByID[id]; !exists {
		return store.ErrNotFound
	}
	delete(s.notesByID, id)
	return nil
}

// ---- users ----

func (s *Store) CreateUser(_ context.Context, user domain.UserAccount) error {
	if user.Username == "" || user.Password == "" {
		return store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usersByUsername[user.Username]; exists {
		return store.ErrInvalidInput
	}
	s.usersByUsername[user.Username] = user
	return nil
}

func (s *Store) ListUsers(_ context.Context) ([]domain.UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]domain.UserAccount, 0, len(s.usersByUsername))
	for _, u := range s.usersByUsername {
		users = append(users, u)
	}
	return users, nil
}

func (s *Store) UpdateUserPassword(_ context.Context, username string, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.usersByUsername[username]
	if !exists {
		return store.ErrNotFound
	}
	user.Password = password
	s.usersByUsername[username] = user
	return nil
}

// ---- helpers ----

func clampStock(kg float64) float64 {
	if kg < 0 {
		return 0
	}
	return kg
}

func copyOrder(order domain.Order) domain.Order {
	copied := order
	copied.Items = make([]domain.OrderItem, len(order.Items))
	copy(copied.Items, order.Items)
	return copied
}

func monthPrefix(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

func validDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

func sortWagesByDateDesc(wages []domain.DailyWage) {
	slices.SortFunc(wages, func(a, b domain.DailyWage) int {
		if a.Date == b.Date {
			return cmpString(a.EmployeeName, b.EmployeeName)
		}
		return cmpString(b.Date, a.Date)
	})
}

func cmpString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
