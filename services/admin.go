package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"ClinicAdmin/cache"
	"ClinicAdmin/models"
	"ClinicAdmin/notification"
	"ClinicAdmin/render"
	"ClinicAdmin/repository"

	util "github.com/KanapuramVaishnavi/Core/util"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	EventDischarged           = "discharged"
	EventAppointmentConfirmed = "appointmentConfirmed"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = models.ErrInvalidTransition
	ErrMissingUser       = errors.New("linked user record is missing")
)

type DischargedPayload struct {
	PatientID string `json:"patientId"`
}

type AdminService struct {
	store     repository.Store
	publisher notification.Publisher
	cache     cache.Cache
	now       func() time.Time
}

func NewAdminService(store repository.Store, publisher notification.Publisher, c cache.Cache) *AdminService {
	if c == nil {
		c = cache.NoopCache{}
	}
	return &AdminService{
		store:     store,
		publisher: publisher,
		cache:     c,
		now:       time.Now,
	}
}

// A malformed id cannot match any record.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid id %q", ErrNotFound, id)
	}
	return oid, nil
}

/*
* Serve from cache when present
* Otherwise fetch every doctor with the linked user populated
* Cache the result
* Doctors created by other services show up after the next RefreshCaches
 */
func (s *AdminService) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	var cached []models.Doctor
	if ok, err := s.cache.Get(ctx, cache.DoctorsKey, &cached); err != nil {
		log.Warn().Err(err).Msg("Error from cache get doctors")
	} else if ok {
		return cached, nil
	}
	return s.loadDoctors(ctx)
}

func (s *AdminService) loadDoctors(ctx context.Context) ([]models.Doctor, error) {
	doctors, err := s.store.Doctors.FindAll(ctx, repository.Populate("user"))
	if err != nil {
		log.Error().Err(err).Msg("Error from FindAll doctors")
		return nil, err
	}
	if err := s.cache.Set(ctx, cache.DoctorsKey, doctors); err != nil {
		log.Warn().Err(err).Msg("Error from cache set doctors")
	}
	return doctors, nil
}

/*
* Find the doctor with its user populated
* Set approved on both records
* Save the user first, then the doctor
* There is no rollback when the second write fails
 */
func (s *AdminService) ApproveDoctor(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	doctor, err := s.store.Doctors.FindByID(ctx, oid, repository.Populate("user"))
	if err != nil {
		log.Error().Err(err).Str("doctorId", id).Msg("Error from FindByID doctor")
		return err
	}
	if doctor == nil {
		return ErrNotFound
	}
	if doctor.User == nil {
		return fmt.Errorf("doctor %s: %w", id, ErrMissingUser)
	}

	doctor.Approve(s.now())
	if err := s.store.Users.Save(ctx, doctor.User); err != nil {
		log.Error().Err(err).Str("userId", doctor.UserID.Hex()).Msg("Error from Save user")
		return err
	}
	if err := s.store.Doctors.Save(ctx, doctor); err != nil {
		log.Error().Err(err).Str("doctorId", id).Msg("Error from Save doctor")
		return err
	}
	s.invalidate(ctx, cache.DoctorsKey, cache.AppointmentsKey, util.DoctorKey+id)
	log.Info().Str("doctorId", id).Msg("doctor approved")
	return nil
}

// RejectDoctor deletes unconditionally; the linked user is kept.
func (s *AdminService) RejectDoctor(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		log.Debug().Str("doctorId", id).Msg("reject on malformed id, nothing to delete")
		return nil
	}
	deleted, err := s.store.Doctors.DeleteByID(ctx, oid)
	if err != nil {
		log.Error().Err(err).Str("doctorId", id).Msg("Error from DeleteByID doctor")
		return err
	}
	s.invalidate(ctx, cache.DoctorsKey, cache.AppointmentsKey, util.DoctorKey+id)
	log.Info().Str("doctorId", id).Bool("existed", deleted != nil).Msg("doctor rejected")
	return nil
}

func (s *AdminService) AdmitPatient(ctx context.Context, id string) error {
	patient, err := s.findPatient(ctx, id)
	if err != nil {
		return err
	}
	patient.Admit(s.now())
	if err := s.store.Patients.Save(ctx, patient); err != nil {
		log.Error().Err(err).Str("patientId", id).Msg("Error from Save patient")
		return err
	}
	s.invalidate(ctx, cache.AppointmentsKey, util.PatientKey+id)
	return nil
}

/*
* Find the patient and mark it discharged
* Look up the first invoice referencing the patient
* When one exists, notify the patient's room
* The notification depends only on the invoice existing
 */
func (s *AdminService) DischargePatient(ctx context.Context, id string) error {
	patient, err := s.findPatient(ctx, id)
	if err != nil {
		return err
	}
	patient.Discharge(s.now())
	if err := s.store.Patients.Save(ctx, patient); err != nil {
		log.Error().Err(err).Str("patientId", id).Msg("Error from Save patient")
		return err
	}
	s.invalidate(ctx, cache.AppointmentsKey, util.PatientKey+id)

	invoice, err := s.store.Invoices.FindOneByPatient(ctx, patient.ID)
	if err != nil {
		log.Error().Err(err).Str("patientId", id).Msg("Error from FindOneByPatient invoice")
		return err
	}
	if invoice != nil {
		room := patient.ID.Hex()
		s.publisher.Emit(room, EventDischarged, DischargedPayload{PatientID: room})
	}
	return nil
}

func (s *AdminService) findPatient(ctx context.Context, id string) (*models.Patient, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	patient, err := s.store.Patients.FindByID(ctx, oid, repository.Populate("user"))
	if err != nil {
		log.Error().Err(err).Str("patientId", id).Msg("Error from FindByID patient")
		return nil, err
	}
	if patient == nil {
		return nil, ErrNotFound
	}
	return patient, nil
}

// InvoiceDocument is an invoice ready to be streamed.
type InvoiceDocument struct {
	Invoice *models.Invoice
	// Patient is nil when the referenced patient no longer exists.
	Patient *models.Patient
}

func (d *InvoiceDocument) Filename() string {
	return "invoice-" + d.Invoice.ID.Hex() + ".pdf"
}

func (d *InvoiceDocument) Render(w io.Writer) error {
	return render.InvoicePDF(w, d.Invoice, d.Patient)
}

/*
* Find the invoice
* Find its patient with the user populated, without checking it exists
 */
func (s *AdminService) InvoiceDocument(ctx context.Context, id string) (*InvoiceDocument, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	invoice, err := s.store.Invoices.FindByID(ctx, oid)
	if err != nil {
		log.Error().Err(err).Str("invoiceId", id).Msg("Error from FindByID invoice")
		return nil, err
	}
	if invoice == nil {
		return nil, ErrNotFound
	}
	patient, err := s.store.Patients.FindByID(ctx, invoice.PatientID, repository.Populate("user"))
	if err != nil {
		log.Error().Err(err).Str("invoiceId", id).Msg("Error from FindByID patient")
		return nil, err
	}
	return &InvoiceDocument{Invoice: invoice, Patient: patient}, nil
}

// ListAppointments is cached like ListDoctors and refreshed on the same schedule.
func (s *AdminService) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	var cached []models.Appointment
	if ok, err := s.cache.Get(ctx, cache.AppointmentsKey, &cached); err != nil {
		log.Warn().Err(err).Msg("Error from cache get appointments")
	} else if ok {
		return cached, nil
	}
	return s.loadAppointments(ctx)
}

func (s *AdminService) loadAppointments(ctx context.Context) ([]models.Appointment, error) {
	appointments, err := s.store.Appointments.FindAll(ctx, repository.Populate("patient", "doctor"))
	if err != nil {
		log.Error().Err(err).Msg("Error from FindAll appointments")
		return nil, err
	}
	if err := s.cache.Set(ctx, cache.AppointmentsKey, appointments); err != nil {
		log.Warn().Err(err).Msg("Error from cache set appointments")
	}
	return appointments, nil
}

/*
* Find the appointment
* Move it to confirmed, refusing transitions the status does not allow
* Save and notify the room of the referenced patient with the saved record
 */
func (s *AdminService) ApproveAppointment(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	appointment, err := s.store.Appointments.FindByID(ctx, oid)
	if err != nil {
		log.Error().Err(err).Str("appointmentId", id).Msg("Error from FindByID appointment")
		return err
	}
	if appointment == nil {
		return ErrNotFound
	}
	if err := appointment.TransitionTo(models.StatusConfirmed, s.now()); err != nil {
		log.Warn().Err(err).Str("appointmentId", id).Msg("appointment cannot be confirmed")
		return err
	}
	if err := s.store.Appointments.Save(ctx, appointment); err != nil {
		log.Error().Err(err).Str("appointmentId", id).Msg("Error from Save appointment")
		return err
	}
	s.invalidate(ctx, cache.AppointmentsKey, util.AppointmentKey+id)
	s.publisher.Emit(appointment.PatientID.Hex(), EventAppointmentConfirmed, appointment)
	return nil
}

// ExportUsers returns the users workbook; references are not expanded.
func (s *AdminService) ExportUsers(ctx context.Context) ([]byte, error) {
	users, err := s.store.Users.FindAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Error from FindAll users")
		return nil, err
	}
	data, err := render.UsersWorkbook(users)
	if err != nil {
		log.Error().Err(err).Msg("Error from UsersWorkbook")
		return nil, err
	}
	return data, nil
}

/*
* Super admins and users with the admin role follow every room
* A patient's user follows only that patient's room
* Anyone else, including callers with a malformed id, follows none
 */
func (s *AdminService) RoomPolicy(ctx context.Context, userID string, superAdmin bool) (notification.RoomPolicy, error) {
	if superAdmin {
		return notification.AllRooms, nil
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return notification.OnlyRooms(), nil
	}
	user, err := s.store.Users.FindByID(ctx, uid)
	if err != nil {
		log.Error().Err(err).Str("userId", userID).Msg("Error from FindByID user")
		return nil, err
	}
	if user != nil && user.Role == models.RoleAdmin {
		return notification.AllRooms, nil
	}
	patient, err := s.store.Patients.FindByUserID(ctx, uid)
	if err != nil {
		log.Error().Err(err).Str("userId", userID).Msg("Error from FindByUserID patient")
		return nil, err
	}
	if patient == nil {
		return notification.OnlyRooms(), nil
	}
	return notification.OnlyRooms(patient.ID.Hex()), nil
}

// RefreshCaches reloads both cached lists from the store.
func (s *AdminService) RefreshCaches(ctx context.Context) error {
	if _, err := s.loadDoctors(ctx); err != nil {
		return err
	}
	_, err := s.loadAppointments(ctx)
	return err
}

// Cache failures never fail the request; a stale entry expires with its TTL.
func (s *AdminService) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("Error from cache delete")
	}
}
