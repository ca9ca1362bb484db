// Package seed loads the demo data set: roles, staff, product and service
// catalogues and a few upcoming appointments. Running it twice is harmless;
// records are matched by name or email and left alone when present.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rogerio-castellano/appointment-tracker/internal/auth"
	"github.com/rogerio-castellano/appointment-tracker/internal/booking"
	"github.com/rogerio-castellano/appointment-tracker/internal/config"
	"github.com/rogerio-castellano/appointment-tracker/internal/models"
	"github.com/rogerio-castellano/appointment-tracker/internal/repo"
)

const demoPassword = "password123"

var roles = []string{models.AdminRole, "shipper", "warehouse_manager", "logistics_coordinator"}

type employee struct {
	first, last, email, phone, role string
}

var staff = []employee{
	{"Luis", "Martínez", "luis.martinez@yesera.com", "5559876543", "shipper"},
	{"María", "Rodríguez", "maria.rodriguez@yesera.com", "5553456789", "warehouse_manager"},
	{"Carlos", "López", "carlos.lopez@yesera.com", "5554567890", "logistics_coordinator"},
}

var categories = []string{
	"Ladrillos Residenciales",
	"Ladrillos Comerciales",
	"Ladrillos Industriales",
	"Materiales de Construcción",
	"Accesorios de Embarque",
	"Logística",
}

type product struct {
	name, description, category string
	price                       float64
	stock                       int
}

var products = []product{
	{"Ladrillo Rojo estándar", "Ladrillo rojo de alta calidad para construcciones residenciales.", "Ladrillos Residenciales", 0.50, 10000},
	{"Ladrillo Comercial reforzado", "Ladrillo comercial con refuerzo para mayor durabilidad.", "Ladrillos Comerciales", 0.75, 8000},
	{"Ladrillo Industrial pesado", "Ladrillo industrial diseñado para estructuras de gran tamaño.", "Ladrillos Industriales", 1.00, 5000},
	{"Cemento Portland", "Cemento de alta resistencia para diversas aplicaciones constructivas.", "Materiales de Construcción", 7.50, 2000},
	{"Paleta de Pintor", "Herramienta fundamental para el acabado de paredes.", "Accesorios de Embarque", 3.00, 1500},
	{"Cinta Adhesiva de Envío", "Cinta resistente para asegurar paquetes durante el transporte.", "Accesorios de Embarque", 1.20, 3000},
}

type service struct {
	name, description string
	price             float64
	minutes           int
}

var services = []service{
	{"Envío Nacional", "Servicio de envío a nivel nacional con seguimiento en tiempo real.", 50, 120},
	{"Envío Internacional", "Servicio de envío internacional con documentación personalizada.", 150, 300},
	{"Recogida en Almacén", "Servicio de recogida de productos directamente desde el almacén.", 30, 60},
}

type appointment struct {
	email, service string
	days           int
	status         models.Status
	notes          string
	lines          map[string]int
}

var appointments = []appointment{
	{"luis.martinez@yesera.com", "Envío Nacional", 1, models.StatusPending,
		"Envío de 5000 ladrillos rojos estándar a Ciudad de México.", map[string]int{"Ladrillo Rojo estándar": 5000}},
	{"carlos.lopez@yesera.com", "Envío Internacional", 2, models.StatusConfirmed,
		"Envío de 2000 ladrillos industriales a USA.", map[string]int{"Ladrillo Industrial pesado": 2000}},
	{"", "Recogida en Almacén", 3, models.StatusCompleted,
		"Recogida de materiales de construcción para proyecto XYZ.", map[string]int{"Cemento Portland": 300, "Paleta de Pintor": 50}},
}

type Seeder struct {
	store   repo.Store
	booking *booking.Service
	cfg     config.Seed
	logger  *slog.Logger
	now     func() time.Time

	roleIDs     map[string]int
	categoryIDs map[string]int
	productIDs  map[string]int
	serviceIDs  map[string]int
	employeeIDs map[string]int
}

func New(store repo.Store, bookingSvc *booking.Service, cfg config.Seed, logger *slog.Logger) *Seeder {
	return &Seeder{
		store:       store,
		booking:     bookingSvc,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
		roleIDs:     map[string]int{},
		categoryIDs: map[string]int{},
		productIDs:  map[string]int{},
		serviceIDs:  map[string]int{},
		employeeIDs: map[string]int{},
	}
}

// Run creates whatever part of the data set is missing. Appointments are only
// booked into an empty calendar.
func (s *Seeder) Run(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"roles", s.roles},
		{"employees", s.employees},
		{"categories", s.categories},
		{"products", s.products},
		{"services", s.services},
		{"appointments", s.appointments},
	}
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("seed %s: %w", step.name, err)
		}
	}
	s.logger.InfoContext(ctx, "seed data loaded", slog.String("admin", s.cfg.AdminEmail))
	return nil
}

func (s *Seeder) roles(ctx context.Context) error {
	for _, name := range roles {
		role, err := s.store.Roles().GetByName(ctx, name)
		if errors.Is(err, repo.ErrRoleNotFound) {
			now := s.now().UTC()
			role, err = s.store.Roles().Create(ctx, models.Role{Name: name, CreatedAt: now, UpdatedAt: now})
		}
		if err != nil {
			return err
		}
		s.roleIDs[name] = role.ID
	}
	return nil
}

func (s *Seeder) employees(ctx context.Context) error {
	admin := employee{"Ana", "García", strings.ToLower(s.cfg.AdminEmail), "5551234567", models.AdminRole}
	if err := s.employee(ctx, admin, s.cfg.AdminPassword); err != nil {
		return err
	}
	for _, e := range staff {
		if err := s.employee(ctx, e, demoPassword); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) employee(ctx context.Context, e employee, password string) error {
	existing, err := s.store.Employees().GetByEmail(ctx, e.email)
	if err == nil {
		s.employeeIDs[e.email] = existing.ID
		return nil
	}
	if !errors.Is(err, repo.ErrEmployeeNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	now := s.now().UTC()
	created, err := s.store.Employees().Create(ctx, models.Employee{
		FirstName:    e.first,
		LastName:     e.last,
		Email:        e.email,
		PasswordHash: hash,
		RoleID:       s.roleIDs[e.role],
		PhoneNumber:  e.phone,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return err
	}
	s.employeeIDs[e.email] = created.ID
	return nil
}

func (s *Seeder) categories(ctx context.Context) error {
	for _, name := range categories {
		c, err := s.store.Categories().GetByName(ctx, name)
		if errors.Is(err, repo.ErrCategoryNotFound) {
			now := s.now().UTC()
			c, err = s.store.Categories().Create(ctx, models.Category{Name: name, CreatedAt: now, UpdatedAt: now})
		}
		if err != nil {
			return err
		}
		s.categoryIDs[name] = c.ID
	}
	return nil
}

func (s *Seeder) products(ctx context.Context) error {
	for _, p := range products {
		existing, err := s.store.Products().GetByName(ctx, p.name)
		if err == nil {
			s.productIDs[p.name] = existing.ID
			continue
		}
		if !errors.Is(err, repo.ErrProductNotFound) {
			return err
		}

		now := s.now().UTC()
		created, err := s.store.Products().Create(ctx, models.Product{
			Name:              p.name,
			Description:       p.description,
			Price:             p.price,
			Stock:             p.stock,
			LowStockThreshold: models.DefaultLowStockThreshold,
			CategoryID:        s.categoryIDs[p.category],
			Active:            true,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
		if err != nil {
			return err
		}
		s.productIDs[p.name] = created.ID
	}
	return nil
}

func (s *Seeder) services(ctx context.Context) error {
	existing, err := s.store.Services().GetAll(ctx, false)
	if err != nil {
		return err
	}
	for _, svc := range existing {
		s.serviceIDs[svc.Name] = svc.ID
	}

	for _, svc := range services {
		if _, ok := s.serviceIDs[svc.name]; ok {
			continue
		}
		now := s.now().UTC()
		created, err := s.store.Services().Create(ctx, models.Service{
			Name:        svc.name,
			Description: svc.description,
			Price:       svc.price,
			Duration:    svc.minutes,
			CategoryID:  s.categoryIDs["Logística"],
			Active:      true,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return err
		}
		s.serviceIDs[svc.name] = created.ID
	}
	return nil
}

func (s *Seeder) appointments(ctx context.Context) error {
	booked, err := s.store.Appointments().GetAll(ctx, repo.AppointmentFilter{})
	if err != nil {
		return err
	}
	if len(booked) > 0 {
		return nil
	}

	day := s.now().UTC().Truncate(time.Hour).Add(time.Hour)
	for _, a := range appointments {
		email := a.email
		if email == "" {
			email = strings.ToLower(s.cfg.AdminEmail)
		}
		in := booking.AppointmentInput{
			EmployeeID:      s.employeeIDs[email],
			ServiceID:       s.serviceIDs[a.service],
			AppointmentDate: day.AddDate(0, 0, a.days),
			Status:          a.status,
			Notes:           a.notes,
		}
		for name, qty := range a.lines {
			in.Products = append(in.Products, models.AppointmentProduct{ProductID: s.productIDs[name], Quantity: qty})
		}
		if _, err := s.booking.CreateAppointment(ctx, in); err != nil {
			return err
		}
	}
	return nil
}
