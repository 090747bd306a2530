// Package repotest provides an in-memory record store for tests.
package repotest

import (
	"context"
	"errors"
	"sync"

	"ClinicAdmin/models"
	"ClinicAdmin/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrStore is returned by reads and writes configured to fail.
var ErrStore = errors.New("store unavailable")

// Store is an in-memory record store that records every write by kind.
type Store struct {
	mu           sync.Mutex
	Users        map[primitive.ObjectID]models.User
	Doctors      map[primitive.ObjectID]models.Doctor
	Patients     map[primitive.ObjectID]models.Patient
	Appointments map[primitive.ObjectID]models.Appointment
	Invoices     []models.Invoice

	Writes     []string
	FailSaveOf string
	FailReads  bool
}

func NewStore() *Store {
	return &Store{
		Users:        map[primitive.ObjectID]models.User{},
		Doctors:      map[primitive.ObjectID]models.Doctor{},
		Patients:     map[primitive.ObjectID]models.Patient{},
		Appointments: map[primitive.ObjectID]models.Appointment{},
	}
}

// Repos exposes the store through the repository interfaces.
func (m *Store) Repos() repository.Store {
	return repository.Store{
		Users:        memUsers{m},
		Doctors:      memDoctors{m},
		Patients:     memPatients{m},
		Appointments: memAppointments{m},
		Invoices:     memInvoices{m},
	}
}

func (m *Store) write(kind string) error {
	if m.FailSaveOf == kind {
		return ErrStore
	}
	m.Writes = append(m.Writes, kind)
	return nil
}

func (m *Store) AddUser(approved bool) models.User {
	u := models.User{ID: primitive.NewObjectID(), Name: "user", Approved: approved}
	m.Users[u.ID] = u
	return u
}

func (m *Store) AddDoctor() models.Doctor {
	u := m.AddUser(false)
	d := models.Doctor{ID: primitive.NewObjectID(), UserID: u.ID}
	m.Doctors[d.ID] = d
	return d
}

func (m *Store) AddPatient(admitted bool) models.Patient {
	u := m.AddUser(true)
	p := models.Patient{ID: primitive.NewObjectID(), UserID: u.ID, Admitted: admitted}
	m.Patients[p.ID] = p
	return p
}

func (m *Store) AddAppointment(patientID, doctorID primitive.ObjectID, status models.AppointmentStatus) models.Appointment {
	a := models.Appointment{ID: primitive.NewObjectID(), PatientID: patientID, DoctorID: doctorID, Status: status}
	m.Appointments[a.ID] = a
	return a
}

func (m *Store) AddInvoice(patientID primitive.ObjectID) models.Invoice {
	inv := models.Invoice{ID: primitive.NewObjectID(), PatientID: patientID, Number: "INV-1", Total: 10}
	m.Invoices = append(m.Invoices, inv)
	return inv
}

// UserPtr returns a copy of the stored user, or nil. Callers hold no lock.
func (m *Store) UserPtr(id primitive.ObjectID) *models.User {
	u, ok := m.Users[id]
	if !ok {
		return nil
	}
	return &u
}

type memUsers struct{ m *Store }

func (r memUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.m.UserPtr(id), nil
}

func (r memUsers) FindByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := map[primitive.ObjectID]*models.User{}
	for _, id := range ids {
		if u := r.m.UserPtr(id); u != nil {
			out[id] = u
		}
	}
	return out, nil
}

func (r memUsers) FindAll(context.Context) ([]models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.FailReads {
		return nil, ErrStore
	}
	out := []models.User{}
	for _, u := range r.m.Users {
		out = append(out, u)
	}
	return out, nil
}

func (r memUsers) Save(_ context.Context, u *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.write("user"); err != nil {
		return err
	}
	stored, ok := r.m.Users[u.ID]
	if !ok {
		return nil
	}
	stored.Approved, stored.UpdatedAt = u.Approved, u.UpdatedAt
	r.m.Users[u.ID] = stored
	return nil
}

type memDoctors struct{ m *Store }

func (r memDoctors) FindByID(_ context.Context, id primitive.ObjectID, opts ...repository.FindOption) (*models.Doctor, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.FailReads {
		return nil, ErrStore
	}
	d, ok := r.m.Doctors[id]
	if !ok {
		return nil, nil
	}
	if len(opts) > 0 {
		d.User = r.m.UserPtr(d.UserID)
	}
	return &d, nil
}

func (r memDoctors) FindAll(_ context.Context, opts ...repository.FindOption) ([]models.Doctor, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.FailReads {
		return nil, ErrStore
	}
	out := []models.Doctor{}
	for _, d := range r.m.Doctors {
		if len(opts) > 0 {
			d.User = r.m.UserPtr(d.UserID)
		}
		out = append(out, d)
	}
	return out, nil
}

func (r memDoctors) Save(_ context.Context, d *models.Doctor) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.write("doctor"); err != nil {
		return err
	}
	stored, ok := r.m.Doctors[d.ID]
	if !ok {
		return nil
	}
	stored.Approved, stored.UpdatedAt = d.Approved, d.UpdatedAt
	r.m.Doctors[d.ID] = stored
	return nil
}

func (r memDoctors) DeleteByID(_ context.Context, id primitive.ObjectID) (*models.Doctor, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	d, ok := r.m.Doctors[id]
	if !ok {
		return nil, nil
	}
	delete(r.m.Doctors, id)
	return &d, nil
}

type memPatients struct{ m *Store }

func (r memPatients) FindByID(_ context.Context, id primitive.ObjectID, opts ...repository.FindOption) (*models.Patient, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.FailReads {
		return nil, ErrStore
	}
	p, ok := r.m.Patients[id]
	if !ok {
		return nil, nil
	}
	if len(opts) > 0 {
		p.User = r.m.UserPtr(p.UserID)
	}
	return &p, nil
}

func (r memPatients) FindByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Patient, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := map[primitive.ObjectID]*models.Patient{}
	for _, id := range ids {
		if p, ok := r.m.Patients[id]; ok {
			out[id] = &p
		}
	}
	return out, nil
}

func (r memPatients) FindByUserID(_ context.Context, userID primitive.ObjectID) (*models.Patient, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.FailReads {
		return nil, ErrStore
	}
	for _, p := range r.m.Patients {
		if p.UserID == userID {
			return &p, nil
		}
	}
	return nil, nil
}

func (r memPatients) Save(_ context.Context, p *models.Patient) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.write("patient"); err != nil {
		return err
	}
	stored, ok := r.m.Patients[p.ID]
	if !ok {
		return nil
	}
	stored.Admitted, stored.UpdatedAt = p.Admitted, p.UpdatedAt
	r.m.Patients[p.ID] = stored
	return nil
}

type memAppointments struct{ m *Store }

func (r memAppointments) FindByID(_ context.Context, id primitive.ObjectID, _ ...repository.FindOption) (*models.Appointment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a, ok := r.m.Appointments[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r memAppointments) FindAll(_ context.Context, opts ...repository.FindOption) ([]models.Appointment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.FailReads {
		return nil, ErrStore
	}
	out := []models.Appointment{}
	for _, a := range r.m.Appointments {
		if len(opts) > 0 {
			if p, ok := r.m.Patients[a.PatientID]; ok {
				a.Patient = &p
			}
			if d, ok := r.m.Doctors[a.DoctorID]; ok {
				a.Doctor = &d
			}
		}
		out = append(out, a)
	}
	return out, nil
}

func (r memAppointments) Save(_ context.Context, a *models.Appointment) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.write("appointment"); err != nil {
		return err
	}
	stored, ok := r.m.Appointments[a.ID]
	if !ok {
		return nil
	}
	stored.Status, stored.UpdatedAt = a.Status, a.UpdatedAt
	r.m.Appointments[a.ID] = stored
	return nil
}

type memInvoices struct{ m *Store }

func (r memInvoices) FindByID(_ context.Context, id primitive.ObjectID) (*models.Invoice, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, inv := range r.m.Invoices {
		if inv.ID == id {
			inv := inv
			return &inv, nil
		}
	}
	return nil, nil
}

func (r memInvoices) FindOneByPatient(_ context.Context, patientID primitive.ObjectID) (*models.Invoice, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, inv := range r.m.Invoices {
		if inv.PatientID == patientID {
			inv := inv
			return &inv, nil
		}
	}
	return nil, nil
}

