package controllers

import (
	"errors"
	"net/http"

	"ClinicAdmin/render"
	"ClinicAdmin/services"

	util "github.com/KanapuramVaishnavi/Core/util"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Guard builds the authorization middleware for an admin action.
type Guard func(action string) gin.HandlerFunc

type AdminController struct {
	svc *services.AdminService
}

func NewAdminController(svc *services.AdminService) *AdminController {
	return &AdminController{svc: svc}
}

func Admin(router gin.IRouter, h *AdminController, guard Guard) {
	admin := router.Group("/admin")
	{
		admin.GET("/doctors", guard("view"), h.ListDoctors)
		admin.POST("/doctors/:id/approve", guard("update"), h.ApproveDoctor)
		admin.POST("/doctors/:id/reject", guard("delete"), h.RejectDoctor)
		admin.DELETE("/doctors/:id", guard("delete"), h.RejectDoctor)
		admin.POST("/patients/:id/admit", guard("update"), h.AdmitPatient)
		admin.POST("/patients/:id/discharge", guard("update"), h.DischargePatient)
		admin.GET("/invoices/:id/download", guard("view"), h.DownloadInvoice)
		admin.GET("/appointments", guard("view"), h.ListAppointments)
		admin.POST("/appointments/:id/approve", guard("update"), h.ApproveAppointment)
		admin.GET("/users/export", guard("view"), h.ExportUsers)
	}
}

func message(msg string) gin.H {
	return gin.H{"message": msg}
}

/*
* Not found is a structured 404 with no state change
* A refused status transition is a conflict
* Anything else is a store or renderer fault
 */
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, message("Not found"))
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict, util.FailedResponse(err))
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("admin request failed")
		c.JSON(http.StatusInternalServerError, util.FailedResponse(err))
	}
}

func (h *AdminController) ListDoctors(c *gin.Context) {
	doctors, err := h.svc.ListDoctors(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

/*
* Get id from params
* Pass to the service which approves the doctor and its user
 */
func (h *AdminController) ApproveDoctor(c *gin.Context) {
	if err := h.svc.ApproveDoctor(c, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("Approved"))
}

// Answers Rejected whether or not the doctor existed.
func (h *AdminController) RejectDoctor(c *gin.Context) {
	if err := h.svc.RejectDoctor(c, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("Rejected"))
}

func (h *AdminController) AdmitPatient(c *gin.Context) {
	if err := h.svc.AdmitPatient(c, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("Admitted"))
}

func (h *AdminController) DischargePatient(c *gin.Context) {
	if err := h.svc.DischargePatient(c, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("Discharged"))
}

/*
* Resolve the invoice and its patient
* Set the headers and stream the PDF into the response
* Once bytes are written the status can no longer change
 */
func (h *AdminController) DownloadInvoice(c *gin.Context) {
	doc, err := h.svc.InvoiceDocument(c, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Type", render.PDFContentType)
	c.Header("Content-Disposition", "attachment; filename="+doc.Filename())
	c.Status(http.StatusOK)
	if err := doc.Render(c.Writer); err != nil {
		log.Error().Err(err).Str("invoiceId", c.Param("id")).Msg("Error from invoice render")
		_ = c.Error(err)
	}
}

func (h *AdminController) ListAppointments(c *gin.Context) {
	appointments, err := h.svc.ListAppointments(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointments)
}

func (h *AdminController) ApproveAppointment(c *gin.Context) {
	if err := h.svc.ApproveAppointment(c, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("Approved"))
}

func (h *AdminController) ExportUsers(c *gin.Context) {
	data, err := h.svc.ExportUsers(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=users.xlsx")
	c.Data(http.StatusOK, render.XLSXContentType, data)
}
