package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"raankai/backend/internal/cache"
	"raankai/backend/internal/domain"
	"raankai/backend/internal/money"
	"raankai/backend/internal/orders"
	"raankai/backend/internal/store"
	"raankai/backend/internal/xid"
)

type actorContextKey struct{}

func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(domain.Actor)
	return actor, ok
}

// Low-stock thresholds differ by surface: the stock screen warns earlier than
// the dashboard does.
const (
	DashboardLowStockKg = 10.0
	StockViewLowStockKg = 15.0
)

// DefaultInactiveDays is the fallback inactive-customer window.
const DefaultInactiveDays = 14

const dashboardCacheKey = "dashboard:stats"

type Service struct {
	repo         store.Repository
	cache        cache.DashboardCache
	dashboardTTL time.Duration
	lowStockKg   float64
	inactiveDays int
	logger       *zap.Logger
}

// New wires the service. lowStockKg drives the stock-view and digest warning
// threshold, inactiveDays the inactive-customer window; non-positive values
// fall back to the defaults.
func New(repo store.Repository, dashCache cache.DashboardCache, dashboardTTL time.Duration, lowStockKg float64, inactiveDays int, logger *zap.Logger) *Service {
	if dashCache == nil {
		dashCache = cache.NoopDashboardCache{}
	}
	if dashboardTTL <= 0 {
		dashboardTTL = 30 * time.Second
	}
	if lowStockKg <= 0 {
		lowStockKg = StockViewLowStockKg
	}
	if inactiveDays < 1 {
		inactiveDays = DefaultInactiveDays
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		repo:         repo,
		cache:        dashCache,
		dashboardTTL: dashboardTTL,
		lowStockKg:   lowStockKg,
		inactiveDays: inactiveDays,
		logger:       logger,
	}
}

// ---- chicken parts ----

func (s *Service) ListChickenParts(ctx context.Context) ([]domain.ChickenPart, error) {
	return s.repo.ListChickenParts(ctx)
}

func (s *Service) GetChickenPart(ctx context.Context, id string) (domain.ChickenPart, error) {
	part, err := s.repo.GetChickenPart(ctx, id)
	if err != nil {
		return domain.ChickenPart{}, err
	}
	return *part, nil
}

func (s *Service) CreateChickenPart(ctx context.Context, req domain.ChickenPartCreateRequest) (domain.ChickenPart, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.PricePerKgSatang < 0 || req.StockKg < 0 {
		return domain.ChickenPart{}, store.ErrInvalidInput
	}
	if req.Unit == "" {
		req.Unit = "kg"
	}

	part := domain.ChickenPart{
		ID:               xid.New("part"),
		Name:             req.Name,
		PricePerKgSatang: req.PricePerKgSatang,
		StockKg:          req.StockKg,
		Unit:             req.Unit,
		CreatedAt:        time.Now().UTC(),
	}

	created, err := s.repo.CreateChickenPart(ctx, part)
	if err != nil {
		return domain.ChickenPart{}, err
	}
	s.invalidateDashboard(ctx)
	return *created, nil
}

func (s *Service) UpdateChickenPart(ctx context.Context, id string, req domain.ChickenPartUpdateRequest) (domain.ChickenPart, error) {
	existing, err := s.repo.GetChickenPart(ctx, id)
	if err != nil {
		return domain.ChickenPart{}, err
	}

	updated := *existing
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.ChickenPart{}, store.ErrInvalidInput
		}
		updated.Name = name
	}
	if req.PricePerKgSatang != nil {
		if *req.PricePerKgSatang < 0 {
			return domain.ChickenPart{}, store.ErrInvalidInput
		}
		updated.PricePerKgSatang = *req.PricePerKgSatang
	}
	if req.StockKg != nil {
		if *req.StockKg < 0 {
			return domain.ChickenPart{}, store.ErrInvalidInput
		}
		updated.StockKg = *req.StockKg
	}
	if req.Unit != nil {
		updated.Unit = *req.Unit
	}

	saved, err := s.repo.UpdateChickenPart(ctx, updated)
	if err != nil {
		return domain.ChickenPart{}, err
	}
	s.invalidateDashboard(ctx)
	return *saved, nil
}

func (s *Service) DeleteChickenPart(ctx context.Context, id string) error {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.Role != domain.RoleAdmin {
		return fmt.Errorf("admin role required")
	}
	if err := s.repo.DeleteChickenPart(ctx, id); err != nil {
		return err
	}
	s.invalidateDashboard(ctx)
	return nil
}

// AdjustStock applies a signed kilogram delta; the result is clamped at zero
// and over-adjustment never errors.
func (s *Service) AdjustStock(ctx context.Context, id string, deltaKg float64) (domain.ChickenPart, error) {
	part, err := s.repo.AdjustStock(ctx, id, deltaKg)
	if err != nil {
		return domain.ChickenPart{}, err
	}
	if part.StockKg < s.lowStockKg {
		s.logger.Warn("stock low after adjustment",
			zap.String("part_id", part.ID),
			zap.String("part", part.Name),
			zap.Float64("stock_kg", part.StockKg))
	}
	s.invalidateDashboard(ctx)
	return *part, nil
}

func (s *Service) ListLowStock(ctx context.Context, thresholdKg float64) ([]domain.ChickenPart, error) {
	if thresholdKg <= 0 {
		return nil, store.ErrInvalidInput
	}
	return s.repo.ListLowStock(ctx, thresholdKg)
}

// ---- customers ----

func (s *Service) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.ListCustomers(ctx)
}

func (s *Service) GetCustomer(ctx context.Context, id string) (domain.Customer, error) {
	customer, err := s.repo.GetCustomer(ctx, id)
	if err != nil {
		return domain.Customer{}, err
	}
	return *customer, nil
}

func (s *Service) CreateCustomer(ctx context.Context, req domain.CustomerCreateRequest) (domain.Customer, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Name == "" || !validPhone(req.Phone) {
		return domain.Customer{}, store.ErrInvalidInput
	}

	customer := domain.Customer{
		ID:        xid.New("cust"),
		Name:      req.Name,
		Phone:     req.Phone,
		Address:   strings.TrimSpace(req.Address),
		Notes:     req.Notes,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.CreateCustomer(ctx, customer)
	if err != nil {
		return domain.Customer{}, err
	}
	s.invalidateDashboard(ctx)
	return *created, nil
}

func (s *Service) UpdateCustomer(ctx context.Context, id string, req domain.CustomerUpdateRequest) (domain.Customer, error) {
	existing, err := s.repo.GetCustomer(ctx, id)
	if err != nil {
		return domain.Customer{}, err
	}

	updated := *existing
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Customer{}, store.ErrInvalidInput
		}
		updated.Name = name
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if !validPhone(phone) {
			return domain.Customer{}, store.ErrInvalidInput
		}
		updated.Phone = phone
	}
	if req.Address != nil {
		updated.Address = strings.TrimSpace(*req.Address)
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}

	saved, err := s.repo.UpdateCustomer(ctx, updated)
	if err != nil {
		return domain.Customer{}, err
	}
	return *saved, nil
}

func (s *Service) DeleteCustomer(ctx context.Context, id string) error {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.Role != domain.RoleAdmin {
		return fmt.Errorf("admin role required")
	}
	if err := s.repo.DeleteCustomer(ctx, id); err != nil {
		return err
	}
	s.invalidateDashboard(ctx)
	return nil
}

func (s *Service) InactiveCustomers(ctx context.Context, thresholdDays int) ([]domain.Customer, error) {
	if thresholdDays < 1 {
		thresholdDays = s.inactiveDays
	}
	return s.repo.ListInactiveCustomers(ctx, time.Now().UTC(), thresholdDays)
}

// ---- orders ----

func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListOrders(ctx)
}

func (s *Service) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	return *order, nil
}

func (s *Service) ListOrdersByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	if customerID == "" {
		return nil, store.ErrInvalidInput
	}
	return s.repo.ListOrdersByCustomer(ctx, customerID)
}

func (s *Service) CreateOrder(ctx context.Context, req domain.OrderCreateRequest) (domain.Order, error) {
	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return domain.Order{}, err
	}

	validated, err := orders.Validate(req.CustomerID, req.Items, catalog)
	if err != nil {
		return domain.Order{}, err
	}

	customer, err := s.repo.GetCustomer(ctx, req.CustomerID)
	if err != nil {
		return domain.Order{}, err
	}

	now := time.Now().UTC()
	order := domain.Order{
		ID:           xid.New("order"),
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Items:        validated.Items,
		TotalSatang:  validated.TotalSatang,
		Notes:        req.Notes,
		Status:       domain.OrderStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		return domain.Order{}, err
	}

	s.logger.Info("order created",
		zap.String("order_id", created.ID),
		zap.String("customer", created.CustomerName),
		zap.Int("items", len(created.Items)),
		zap.String("total", money.FormatBaht(created.TotalSatang)))
	s.invalidateDashboard(ctx)
	return *created, nil
}

// UpdateOrder replaces items and notes on pending orders and handles status
// transitions. Completed and cancelled orders accept status changes only.
// Stock is not re-adjusted when items change.
func (s *Service) UpdateOrder(ctx context.Context, id string, req domain.OrderUpdateRequest) (domain.Order, error) {
	existing, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}

	updated := *existing
	contentEdit := req.Items != nil || req.Notes != nil
	if contentEdit && existing.Status != domain.OrderStatusPending {
		return domain.Order{}, fmt.Errorf("%s order cannot be edited: %w", existing.Status, store.ErrInvalidInput)
	}

	if req.Items != nil {
		catalog, err := s.loadCatalog(ctx)
		if err != nil {
			return domain.Order{}, err
		}
		validated, err := orders.Validate(existing.CustomerID, *req.Items, catalog)
		if err != nil {
			return domain.Order{}, err
		}
		updated.Items = validated.Items
		updated.TotalSatang = validated.TotalSatang
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}
	if req.Status != nil {
		if !domain.ValidOrderStatus(*req.Status) {
			return domain.Order{}, store.ErrInvalidInput
		}
		updated.Status = *req.Status
	}
	updated.UpdatedAt = time.Now().UTC()

	saved, err := s.repo.UpdateOrder(ctx, updated)
	if err != nil {
		return domain.Order{}, err
	}
	s.invalidateDashboard(ctx)
	return *saved, nil
}

// DeleteOrder refuses completed orders. Stock consumed by the order stays
// consumed.
func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	existing, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return err
	}
	if existing.Status == domain.OrderStatusCompleted {
		return fmt.Errorf("completed order cannot be deleted: %w", store.ErrInvalidInput)
	}

	if err := s.repo.DeleteOrder(ctx, id); err != nil {
		return err
	}
	s.invalidateDashboard(ctx)
	return nil
}

func (s *Service) TodayRevenue(ctx context.Context) (int64, error) {
	from, to := dayBounds(time.Now().UTC())
	return s.repo.SumOrderRevenue(ctx, from, to)
}

func (s *Service) MonthlyRevenue(ctx context.Context, year int, month time.Month) (int64, error) {
	from, to := monthBounds(year, month)
	return s.repo.SumOrderRevenue(ctx, from, to)
}

func (s *Service) loadCatalog(ctx context.Context) (orders.Catalog, error) {
	parts, err := s.repo.ListChickenParts(ctx)
	if err != nil {
		return nil, err
	}
	return orders.NewCatalog(parts), nil
}

// ---- employees ----

func (s *Service) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	return s.repo.ListEmployees(ctx)
}

func (s *Service) GetEmployee(ctx context.Context, id string) (domain.Employee, error) {
	employee, err := s.repo.GetEmployee(ctx, id)
	if err != nil {
		return domain.Employee{}, err
	}
	return *employee, nil
}

func (s *Service) CreateEmployee(ctx context.Context, req domain.EmployeeCreateRequest) (domain.Employee, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.Role != domain.RoleAdmin {
		return domain.Employee{}, fmt.Errorf("admin role required")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Name == "" || req.BaseDailyWageSatang <= 0 || !validPhone(req.Phone) {
		return domain.Employee{}, store.ErrInvalidInput
	}

	employee := domain.Employee{
		ID:                  xid.New("emp"),
		Name:                req.Name,
		Phone:               req.Phone,
		BaseDailyWageSatang: req.BaseDailyWageSatang,
		Notes:               req.Notes,
		CreatedAt:           time.Now().UTC(),
	}

	created, err := s.repo.CreateEmployee(ctx, employee)
	if err != nil {
		return domain.Employee{}, err
	}
	s.invalidateDashboard(ctx)
	return *created, nil
}

func (s *Service) UpdateEmployee(ctx context.Context, id string, req domain.EmployeeUpdateRequest) (domain.Employee, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.Role != domain.RoleAdmin {
		return domain.Employee{}, fmt.Errorf("admin role required")
	}

	existing, err := s.repo.GetEmployee(ctx, id)
	if err != nil {
		return domain.Employee{}, err
	}

	updated := *existing
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Employee{}, store.ErrInvalidInput
		}
		updated.Name = name
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if !validPhone(phone) {
			return domain.Employee{}, store.ErrInvalidInput
		}
		updated.Phone = phone
	}
	if req.BaseDailyWageSatang != nil {
		if *req.BaseDailyWageSatang <= 0 {
			return domain.Employee{}, store.ErrInvalidInput
		}
		updated.BaseDailyWageSatang = *req.BaseDailyWageSatang
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}

	saved, err := s.repo.UpdateEmployee(ctx, updated)
	if err != nil {
		return domain.Employee{}, err
	}
	return *saved, nil
}

func (s *Service) DeleteEmployee(ctx context.Context, id string) error {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.Role != domain.RoleAdmin {
		return fmt.Errorf("admin role required")
	}
	if err := s.repo.DeleteEmployee(ctx, id); err != nil {
		return err
	}
	s.invalidateDashboard(ctx)
	return nil
}

// ---- wages ----

func (s *Service) ListWages(ctx context.Context) ([]domain.DailyWage, error) {
	return s.repo.ListWages(ctx)
}

func (s *Service) GetWage(ctx context.Context, id string) (domain.DailyWage, error) {
	wage, err := s.repo.GetWage(ctx, id)
	if err != nil {
		return domain.DailyWage{}, err
	}
	return *wage, nil
}

func (s *Service) ListWagesByEmployee(ctx context.Context, employeeID string) ([]domain.DailyWage, error) {
	if employeeID == "" {
		return nil, store.ErrInvalidInput
	}
	return s.repo.ListWagesByEmployee(ctx, employeeID)
}

func (s *Service) ListWagesByDate(ctx context.Context, date string) ([]domain.DailyWage, error) {
	if !validDate(date) {
		return nil, store.ErrInvalidInput
	}
	return s.repo.ListWagesByDate(ctx, date)
}

// CreateWage records a paid day. A zero Amount defaults to the employee's
// base wage plus the adjustment; a non-zero Amount is stored verbatim.
func (s *Service) CreateWage(ctx context.Context, req domain.DailyWageCreateRequest) (domain.DailyWage, error) {
	if req.EmployeeID == "" || !validDate(req.Date) {
		return domain.DailyWage{}, store.ErrInvalidInput
	}

	employee, err := s.repo.GetEmployee(ctx, req.EmployeeID)
	if err != nil {
		return domain.DailyWage{}, err
	}

	amount := req.AmountSatang
	if amount == 0 {
		amount = employee.BaseDailyWageSatang + req.AdjustmentSatang
	}
	if amount < 0 {
		return domain.DailyWage{}, store.ErrInvalidInput
	}

	wage := domain.DailyWage{
		ID:               xid.New("wage"),
		EmployeeID:       employee.ID,
		EmployeeName:     employee.Name,
		Date:             req.Date,
		AmountSatang:     amount,
		AdjustmentSatang: req.AdjustmentSatang,
		AdjustmentReason: strings.TrimSpace(req.AdjustmentReason),
		Notes:            req.Notes,
		CreatedAt:        time.Now().UTC(),
	}

	created, err := s.repo.CreateWage(ctx, wage)
	if err != nil {
		return domain.DailyWage{}, err
	}
	s.invalidateDashboard(ctx)
	return *created, nil
}

func (s *Service) UpdateWage(ctx context.Context, id string, req domain.DailyWageUpdateRequest) (domain.DailyWage, error) {
	existing, err := s.repo.GetWage(ctx, id)
	if err != nil {
		return domain.DailyWage{}, err
	}

	updated := *existing
	if req.Date != nil {
		if !validDate(*req.Date) {
			return domain.DailyWage{}, store.ErrInvalidInput
		}
		updated.Date = *req.Date
	}
	if req.AmountSatang != nil {
		if *req.AmountSatang < 0 {
			return domain.DailyWage{}, store.ErrInvalidInput
		}
		updated.AmountSatang = *req.AmountSatang
	}
	if req.AdjustmentSatang != nil {
		updated.AdjustmentSatang = *req.AdjustmentSatang
	}
	if req.AdjustmentReason != nil {
		updated.AdjustmentReason = strings.TrimSpace(*req.AdjustmentReason)
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}

	saved, err := s.repo.UpdateWage(ctx, updated)
	if err != nil {
		return domain.DailyWage{}, err
	}
	s.invalidateDashboard(ctx)
	return *saved, nil
}

func (s *Service) DeleteWage(ctx context.Context, id string) error {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.Role != domain.RoleAdmin {
		return fmt.Errorf("admin role required")
	}
	if err := s.repo.DeleteWage(ctx, id); err != nil {
		return err
	}
	s.invalidateDashboard(ctx)
	return nil
}

func (s *Service) TodayWages(ctx context.Context) (int64, error) {
	return s.repo.SumWagesByDate(ctx, time.Now().UTC().Format("2006-01-02"))
}

func (s *Service) MonthWages(ctx context.Context, year int, month time.Month) (int64, error) {
	return s.repo.SumWagesByMonth(ctx, year, month)
}

func (s *Service) MonthlyWageForEmployee(ctx context.Context, employeeID string, year int, month time.Month) (int64, error) {
	if employeeID == "" || year < 2000 || month < time.January || month > time.December {
		return 0, store.ErrInvalidInput
	}
	return s.repo.SumWagesByEmployeeMonth(ctx, employeeID, year, month)
}

func (s *Service) WeeklyWageForEmployee(ctx context.Context, employeeID string, weekStart time.Time) (int64, error) {
	if employeeID == "" {
		return 0, store.ErrInvalidInput
	}
	return s.repo.SumWagesByEmployeeWeek(ctx, employeeID, weekStart)
}

// ---- calendar notes ----

func (s *Service) ListCalendarNotes(ctx context.Context) ([]domain.CalendarNote, error) {
	return s.repo.ListCalendarNotes(ctx)
}

func (s *Service) GetCalendarNote(ctx context.Context, id string) (domain.CalendarNote, error) {
	note, err := s.repo.GetCalendarNote(ctx, id)
	if err != nil {
		return domain.CalendarNote{}, err
	}
	return *note, nil
}

func (s *Service) ListCalendarNotesByDate(ctx context.Context, date string) ([]domain.CalendarNote, error) {
	if !validDate(date) {
		return nil, store.ErrInvalidInput
	}
	return s.repo.ListCalendarNotesByDate(ctx, date)
}

func (s *Service) CreateCalendarNote(ctx context.Context, req domain.CalendarNoteCreateRequest) (domain.CalendarNote, error) {
	req.Title = strings.TrimSpace(req.Title)
	if !validDate(req.Date) || req.Title == "" {
		return domain.CalendarNote{}, store.ErrInvalidInput
	}

	now := time.Now().UTC()
	note := domain.CalendarNote{
		ID:        xid.New("note"),
		Date:      req.Date,
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.CreateCalendarNote(ctx, note)
	if err != nil {
		return domain.CalendarNote{}, err
	}
	return *created, nil
}

func (s *Service) UpdateCalendarNote(ctx context.Context, id string, req domain.CalendarNoteUpdateRequest) (domain.CalendarNote, error) {
	existing, err := s.repo.GetCalendarNote(ctx, id)
	if err != nil {
		return domain.CalendarNote{}, err
	}

	updated := *existing
	if req.Date != nil {
		if !validDate(*req.Date) {
			return domain.CalendarNote{}, store.ErrInvalidInput
		}
		updated.Date = *req.Date
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return domain.CalendarNote{}, store.ErrInvalidInput
		}
		updated.Title = title
	}
	if req.Content != nil {
		updated.Content = *req.Content
	}
	updated.UpdatedAt = time.Now().UTC()

	saved, err := s.repo.UpdateCalendarNote(ctx, updated)
	if err != nil {
		return domain.CalendarNote{}, err
	}
	return *saved, nil
}

func (s *Service) DeleteCalendarNote(ctx context.Context, id string) error {
	return s.repo.DeleteCalendarNote(ctx, id)
}

// ---- dashboard ----

func (s *Service) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	if cached, ok, err := s.cache.Get(ctx, dashboardCacheKey); err == nil && ok {
		return *cached, nil
	} else if err != nil {
		s.logger.Warn("dashboard cache read failed", zap.Error(err))
	}

	stats, err := s.computeDashboardStats(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}

	if err := s.cache.Set(ctx, dashboardCacheKey, &stats, s.dashboardTTL); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.Error(err))
	}
	return stats, nil
}

func (s *Service) computeDashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	now := time.Now().UTC()

	todayRevenue, err := s.TodayRevenue(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	monthRevenue, err := s.MonthlyRevenue(ctx, now.Year(), now.Month())
	if err != nil {
		return domain.DashboardStats{}, err
	}
	todayWages, err := s.repo.SumWagesByDate(ctx, now.Format("2006-01-02"))
	if err != nil {
		return domain.DashboardStats{}, err
	}
	monthWages, err := s.repo.SumWagesByMonth(ctx, now.Year(), now.Month())
	if err != nil {
		return domain.DashboardStats{}, err
	}
	customers, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	lowStock, err := s.repo.ListLowStock(ctx, DashboardLowStockKg)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	inactive, err := s.repo.ListInactiveCustomers(ctx, now, s.inactiveDays)
	if err != nil {
		return domain.DashboardStats{}, err
	}

	return domain.DashboardStats{
		TodayRevenueSatang:   todayRevenue,
		MonthlyRevenueSatang: monthRevenue,
		TodayWagesSatang:     todayWages,
		MonthlyWagesSatang:   monthWages,
		TodayProfitSatang:    todayRevenue - todayWages,
		MonthlyProfitSatang:  monthRevenue - monthWages,
		TotalCustomers:       len(customers),
		TotalEmployees:       len(employees),
		LowStockParts:        lowStock,
		InactiveCustomers:    inactive,
	}, nil
}

func (s *Service) invalidateDashboard(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, dashboardCacheKey); err != nil {
		s.logger.Warn("dashboard cache invalidate failed", zap.Error(err))
	}
}

// ---- CSV exports ----

func (s *Service) ExportOrdersCSV(ctx context.Context) ([][]string, error) {
	orderList, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	rows := [][]string{{"Order ID", "Date", "Customer", "Items", "Total (Baht)", "Status", "Notes"}}
	for _, o := range orderList {
		itemDescs := make([]string, 0, len(o.Items))
		for _, item := range o.Items {
			itemDescs = append(itemDescs, fmt.Sprintf("%s %.2fkg", item.ChickenPartName, item.QuantityKg))
		}
		rows = append(rows, []string{
			o.ID,
			o.CreatedAt.Format("2006-01-02 15:04"),
			o.CustomerName,
			strings.Join(itemDescs, "; "),
			money.FormatBaht(o.TotalSatang),
			o.Status,
			o.Notes,
		})
	}
	return rows, nil
}

func (s *Service) ExportStockCSV(ctx context.Context) ([][]string, error) {
	parts, err := s.repo.ListChickenParts(ctx)
	if err != nil {
		return nil, err
	}

	rows := [][]string{{"Part", "Price/kg (Baht)", "Stock (kg)", "Low Stock"}}
	for _, p := range parts {
		low := ""
		if p.StockKg < s.lowStockKg {
			low = "yes"
		}
		rows = append(rows, []string{
			p.Name,
			money.FormatBaht(p.PricePerKgSatang),
			strconv.FormatFloat(p.StockKg, 'f', 2, 64),
			low,
		})
	}
	return rows, nil
}

// ExportCustomersCSV includes per-customer order counts, lifetime spend and
// the last order date.
func (s *Service) ExportCustomersCSV(ctx context.Context) ([][]string, error) {
	customers, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	orderList, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	orderCount := make(map[string]int)
	spent := make(map[string]int64)
	for _, o := range orderList {
		orderCount[o.CustomerID]++
		spent[o.CustomerID] += o.TotalSatang
	}

	rows := [][]string{{"Customer", "Phone", "Address", "Orders", "Total Spent (Baht)", "Last Order", "Notes"}}
	for _, c := range customers {
		lastOrder := "-"
		if c.LastOrderAt != nil {
			lastOrder = c.LastOrderAt.Format("2006-01-02")
		}
		rows = append(rows, []string{
			c.Name,
			c.Phone,
			c.Address,
			strconv.Itoa(orderCount[c.ID]),
			money.FormatBaht(spent[c.ID]),
			lastOrder,
			c.Notes,
		})
	}
	return rows, nil
}

// ExportWagesCSV exports all wage entries, or one employee's when employeeID
// is set.
func (s *Service) ExportWagesCSV(ctx context.Context, employeeID string) ([][]string, error) {
	var (
		wages []domain.DailyWage
		err   error
	)
	if employeeID != "" {
		wages, err = s.repo.ListWagesByEmployee(ctx, employeeID)
	} else {
		wages, err = s.repo.ListWages(ctx)
	}
	if err != nil {
		return nil, err
	}

	rows := [][]string{{"Date", "Employee", "Amount (Baht)", "Adjustment (Baht)", "Reason"}}
	for _, w := range wages {
		rows = append(rows, []string{
			w.Date,
			w.EmployeeName,
			money.FormatBaht(w.AmountSatang),
			money.FormatBaht(w.AdjustmentSatang),
			w.AdjustmentReason,
		})
	}
	return rows, nil
}

// ExportSummaryCSV produces the month-to-date revenue/wages/profit summary.
func (s *Service) ExportSummaryCSV(ctx context.Context) ([][]string, error) {
	now := time.Now().UTC()
	revenue, err := s.MonthlyRevenue(ctx, now.Year(), now.Month())
	if err != nil {
		return nil, err
	}
	wages, err := s.repo.SumWagesByMonth(ctx, now.Year(), now.Month())
	if err != nil {
		return nil, err
	}

	rows := [][]string{
		{"Month", "Revenue (Baht)", "Wages (Baht)", "Profit (Baht)"},
		{
			now.Format("2006-01"),
			money.FormatBaht(revenue),
			money.FormatBaht(wages),
			money.FormatBaht(revenue - wages),
		},
	}
	return rows, nil
}

// ---- operations digest ----

type DigestReport struct {
	LowStockParts     []domain.ChickenPart
	InactiveCustomers []domain.Customer
	TodayRevenue      int64
	TodayWages        int64
}

// OperationsDigest assembles the nightly summary logged by the scheduler.
func (s *Service) OperationsDigest(ctx context.Context) (DigestReport, error) {
	lowStock, err := s.repo.ListLowStock(ctx, s.lowStockKg)
	if err != nil {
		return DigestReport{}, err
	}
	inactive, err := s.repo.ListInactiveCustomers(ctx, time.Now().UTC(), s.inactiveDays)
	if err != nil {
		return DigestReport{}, err
	}
	revenue, err := s.TodayRevenue(ctx)
	if err != nil {
		return DigestReport{}, err
	}
	wages, err := s.TodayWages(ctx)
	if err != nil {
		return DigestReport{}, err
	}

	return DigestReport{
		LowStockParts:     lowStock,
		InactiveCustomers: inactive,
		TodayRevenue:      revenue,
		TodayWages:        wages,
	}, nil
}

// ---- helpers ----

func dayBounds(now time.Time) (time.Time, time.Time) {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return from, from.Add(24 * time.Hour)
}

func monthBounds(year int, month time.Month) (time.Time, time.Time) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

func validDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

// validPhone accepts empty values; stored numbers may carry +, dashes and
// spaces but nothing else.
func validPhone(phone string) bool {
	if phone == "" {
		return true
	}
	if len(phone) < 6 || len(phone) > 20 {
		return false
	}
	for _, r := range phone {
		switch {
		case r >= '0' && r <= '9':
		case r == '+' || r == '-' || r == ' ':
		default:
			return false
		}
	}
	return true
}
