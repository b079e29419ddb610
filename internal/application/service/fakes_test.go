package service

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sangkips/yardops-api/internal/domain/entity"
	"github.com/sangkips/yardops-api/internal/domain/enum"
	"github.com/sangkips/yardops-api/internal/domain/repository"
	"github.com/sangkips/yardops-api/pkg/daterange"
	"github.com/sangkips/yardops-api/pkg/pagination"
)

type fakeStatsRepo struct {
	sales   []repository.SalesRow
	parts   map[string][]repository.PartsRow // keyed by range start
	periods []repository.PeriodTotal
	err     error

	partsRanges []daterange.Range
	lastEntity  string
	lastYear    int
	lastMonth   int
}

func (f *fakeStatsRepo) SalesTotals(_ context.Context, _ enum.StatsSource, _ daterange.Range) ([]repository.SalesRow, error) {
	return f.sales, f.err
}

func (f *fakeStatsRepo) PartsCounts(_ context.Context, _ enum.StatsSource, r daterange.Range) ([]repository.PartsRow, error) {
	f.partsRanges = append(f.partsRanges, r)
	if f.err != nil {
		return nil, f.err
	}
	return f.parts[r.Start.Format(daterange.DateLayout)], nil
}

func (f *fakeStatsRepo) MonthlyTotals(_ context.Context, _ enum.StatsSource, entity string, year int) ([]repository.PeriodTotal, error) {
	f.lastEntity, f.lastYear = entity, year
	return f.periods, f.err
}

func (f *fakeStatsRepo) DailyTotals(_ context.Context, _ enum.StatsSource, entity string, year, month int) ([]repository.PeriodTotal, error) {
	f.lastEntity, f.lastYear, f.lastMonth = entity, year, month
	return f.periods, f.err
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[uuid.UUID]*entity.Session{}}
}

func (f *fakeSessionRepo) Create(_ context.Context, s *entity.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	cp := *s
	f.sessions[s.ID] = &cp
	return nil
}

func (f *fakeSessionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionRepo) Update(_ context.Context, s *entity.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *s
	f.sessions[s.ID] = &cp
	return nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionRepo) DeleteExpired(context.Context) error { return nil }

type fakeOrderStore struct {
	order []string
	saved int
	err   error
}

func (f *fakeOrderStore) Load(context.Context) []string {
	if f.order == nil {
		return []string{}
	}
	return f.order
}

func (f *fakeOrderStore) Save(_ context.Context, order []string) error {
	if f.err != nil {
		return f.err
	}
	f.order = order
	f.saved++
	return nil
}

type fakeUserRepo struct {
	users   map[string]*entity.User
	updated int
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.users[strings.ToLower(u.Username)] = u
	return nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	u, ok := f.users[strings.ToLower(username)]
	if !ok || !u.Active {
		return nil, nil
	}
	return u, nil
}

func (f *fakeUserRepo) Update(_ context.Context, _ *entity.User) error {
	f.updated++
	return nil
}

type fakeVehicleRepo struct {
	vehicles         []entity.Vehicle
	moves            map[int64]string
	lastRegistration string
}

func (f *fakeVehicleRepo) Find(_ context.Context, registration, stockNumber string) (*entity.Vehicle, error) {
	f.lastRegistration = registration
	for _, v := range f.vehicles {
		if (registration != "" && strings.EqualFold(v.Registration, registration)) ||
			(stockNumber != "" && v.VStockNo == stockNumber) {
			found := v
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeVehicleRepo) MoveToLocation(_ context.Context, id int64, locationID string) (bool, error) {
	for _, v := range f.vehicles {
		if v.StockNumberID == id {
			if f.moves == nil {
				f.moves = map[int64]string{}
			}
			f.moves[id] = locationID
			return true, nil
		}
	}
	return false, nil
}

type fakeActionLogRepo struct {
	entries   []entity.ActionLog
	lastRange *daterange.Range
	lastLimit int
}

func (f *fakeActionLogRepo) Create(_ context.Context, l *entity.ActionLog) error {
	f.entries = append(f.entries, *l)
	return nil
}

func (f *fakeActionLogRepo) ListRange(_ context.Context, r daterange.Range, params *pagination.PaginationParams) ([]entity.ActionLog, int64, error) {
	f.lastRange = &r
	var out []entity.ActionLog
	for _, e := range f.entries {
		if r.Contains(e.Timestamp) {
			out = append(out, e)
		}
	}
	total := int64(len(out))
	start := params.Offset()
	if start > len(out) {
		start = len(out)
	}
	end := start + params.PerPage
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (f *fakeActionLogRepo) ListRecent(_ context.Context, limit int) ([]entity.ActionLog, error) {
	f.lastLimit = limit
	if limit > len(f.entries) {
		limit = len(f.entries)
	}
	return f.entries[:limit], nil
}

func (f *fakeActionLogRepo) ListAll(context.Context) ([]entity.ActionLog, error) {
	return f.entries, nil
}
