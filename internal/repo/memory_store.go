package repo

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/rogerio-castellano/appointment-tracker/internal/models"
)

type memoryData struct {
	roles        map[int]models.Role
	employees    map[int]models.Employee
	categories   map[int]models.Category
	products     map[int]models.Product
	services     map[int]models.Service
	appointments map[int]models.Appointment
	lines        map[int][]models.AppointmentProduct
	logs         []models.InventoryLog
	seq          map[string]int
}

func newMemoryData() *memoryData {
	return &memoryData{
		roles:        map[int]models.Role{},
		employees:    map[int]models.Employee{},
		categories:   map[int]models.Category{},
		products:     map[int]models.Product{},
		services:     map[int]models.Service{},
		appointments: map[int]models.Appointment{},
		lines:        map[int][]models.AppointmentProduct{},
		seq:          map[string]int{},
	}
}

func (d *memoryData) clone() *memoryData {
	lines := make(map[int][]models.AppointmentProduct, len(d.lines))
	for id, items := range d.lines {
		lines[id] = slices.Clone(items)
	}
	return &memoryData{
		roles:        maps.Clone(d.roles),
		employees:    maps.Clone(d.employees),
		categories:   maps.Clone(d.categories),
		products:     maps.Clone(d.products),
		services:     maps.Clone(d.services),
		appointments: maps.Clone(d.appointments),
		lines:        lines,
		logs:         slices.Clone(d.logs),
		seq:          maps.Clone(d.seq),
	}
}

func (d *memoryData) next(table string) int {
	d.seq[table]++
	return d.seq[table]
}

// sortedValues returns the map values ordered by id.
func sortedValues[T any](m map[int]T) []T {
	ids := slices.Sorted(maps.Keys(m))
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

type memoryState struct {
	mu   sync.RWMutex
	tx   sync.Mutex
	data *memoryData
}

// MemoryStore keeps every table in process memory. Transactions snapshot the
// whole data set and restore it when the callback fails.
type MemoryStore struct {
	st   *memoryState
	inTx bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{st: &memoryState{data: newMemoryData()}}
}

// Reset drops all data and id sequences.
func (s *MemoryStore) Reset() {
	s.st.tx.Lock()
	defer s.st.tx.Unlock()
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	s.st.data = newMemoryData()
}

func (s *MemoryStore) view(fn func(d *memoryData)) {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()
	fn(s.st.data)
}

func (s *MemoryStore) update(fn func(d *memoryData) error) error {
	if !s.inTx {
		s.st.tx.Lock()
		defer s.st.tx.Unlock()
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	return fn(s.st.data)
}

func (s *MemoryStore) WithTx(ctx context.Context, fn func(Store) error) error {
	if s.inTx {
		return fn(s)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.st.tx.Lock()
	defer s.st.tx.Unlock()

	s.st.mu.RLock()
	snapshot := s.st.data.clone()
	s.st.mu.RUnlock()

	committed := false
	defer func() {
		if !committed {
			s.st.mu.Lock()
			s.st.data = snapshot
			s.st.mu.Unlock()
		}
	}()

	if err := fn(&MemoryStore{st: s.st, inTx: true}); err != nil {
		return err
	}
	committed = true
	return nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func (s *MemoryStore) Roles() RoleRepository {
	return &memoryRoleRepo{s: s}
}

func (s *MemoryStore) Employees() EmployeeRepository {
	return &memoryEmployeeRepo{s: s}
}

func (s *MemoryStore) Categories() CategoryRepository {
	return &memoryCategoryRepo{s: s}
}

func (s *MemoryStore) Products() ProductRepository {
	return &memoryProductRepo{s: s}
}

func (s *MemoryStore) Services() ServiceRepository {
	return &memoryServiceRepo{s: s}
}

func (s *MemoryStore) Appointments() AppointmentRepository {
	return &memoryAppointmentRepo{s: s}
}

func (s *MemoryStore) InventoryLogs() InventoryLogRepository {
	return &memoryInventoryLogRepo{s: s}
}

func (s *MemoryStore) Metrics() MetricsRepository {
	return &memoryMetricsRepo{s: s}
}
