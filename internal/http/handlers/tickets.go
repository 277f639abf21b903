package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"tripticket/internal/domain"
	"tripticket/internal/http/middleware"
	"tripticket/internal/notify"
	"tripticket/internal/repositories"
	"tripticket/internal/services"
	"tripticket/internal/utils"

	"github.com/gin-gonic/gin"
)

func lifecycleService(c *gin.Context) services.LifecycleService {
	reqID := middleware.GetRequestID(c)
	return services.LifecycleService{
		Requests: repositories.RequestRepository{},
		Drivers:  repositories.DriverRepository{},
		Offices:  repositories.OfficeRepository{},
		Vehicles: repositories.VehicleRepository{},
		Issuer:   services.TicketService{Tickets: repositories.TicketRepository{}, RequestID: reqID},
		Artifacts: services.ArtifactService{
			Renderer: services.DocsService{RequestID: reqID},
			Notifier: notify.Mailer{
				Host:     Env.EmailHost,
				Port:     Env.EmailPort,
				Username: Env.EmailUser,
				Password: Env.EmailPass,
				From:     Env.EmailFrom,
			},
			RequestID: reqID,
		},
		Events:    publisher(),
		RequestID: reqID,
	}
}

type submitTicketRequest struct {
	RequestedBy          string `json:"requestedBy"`
	Email                string `json:"email"`
	Designation          string `json:"designation"`
	OfficeID             int64  `json:"officeId"`
	Destination          string `json:"destination"`
	Purpose              string `json:"purpose"`
	DepartureDate        string `json:"departureDate"` // "YYYY-MM-DD HH:MM"
	ArrivalDate          string `json:"arrivalDate"`
	AuthorizedPassengers string `json:"authorizedPassengers"`
	Remarks              string `json:"remarks"`
	DriverID             int64  `json:"driverId"`
	VehicleID            int64  `json:"vehicleId"`
}

// POST /api/tickets
func SubmitTicket(c *gin.Context) {
	var req submitTicketRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	in := services.SubmitInput{
		RequestedBy:          req.RequestedBy,
		Email:                req.Email,
		Designation:          req.Designation,
		OfficeID:             req.OfficeID,
		Destination:          req.Destination,
		Purpose:              req.Purpose,
		AuthorizedPassengers: req.AuthorizedPassengers,
		Remarks:              req.Remarks,
		DriverID:             req.DriverID,
		VehicleID:            req.VehicleID,
	}
	if strings.TrimSpace(req.DepartureDate) != "" {
		t, err := utils.ParseDateTime(req.DepartureDate)
		if err != nil {
			RespondDomainError(c, domain.ValidationError{Field: "departureDate", Msg: "expected YYYY-MM-DD HH:MM", Err: err})
			return
		}
		in.DepartureDate = &t
	}
	if strings.TrimSpace(req.ArrivalDate) != "" {
		t, err := utils.ParseDateTime(req.ArrivalDate)
		if err != nil {
			RespondDomainError(c, domain.ValidationError{Field: "arrivalDate", Msg: "expected YYYY-MM-DD HH:MM", Err: err})
			return
		}
		in.ArrivalDate = &t
	}

	created, err := lifecycleService(c).Submit(in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GET /api/tickets?status=Pending
func ListTickets(c *gin.Context) {
	requests, err := (repositories.RequestRepository{}).List(c.Query("status"))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list trip requests", err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// GET /api/tickets/:id
func GetTicket(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	req, err := (repositories.RequestRepository{}).GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

type decideTicketRequest struct {
	Decision             string `json:"decision"`
	Remarks              string `json:"remarks"`
	AuthorizedPassengers string `json:"authorizedPassengers"`
	DriverID             int64  `json:"driverId"`
	VehicleID            int64  `json:"vehicleId"`
}

// PUT /api/tickets/:id/decision
func DecideTicket(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req decideTicketRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if auth, ok := middleware.GetAuth(c); ok {
		utils.LogEvent(middleware.GetRequestID(c), "http", "decide",
			fmt.Sprintf("request_id=%d user_id=%d role=%s", id, auth.UserID, auth.Role))
	}

	decided, err := lifecycleService(c).Decide(id, services.DecideInput{
		Decision:             domain.Decision(req.Decision),
		Remarks:              req.Remarks,
		AuthorizedPassengers: req.AuthorizedPassengers,
		DriverID:             req.DriverID,
		VehicleID:            req.VehicleID,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, decided)
}

// DELETE /api/tickets/:id
func DeleteTicket(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := (repositories.RequestRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// GET /api/tickets/:id/pdf regenerates the printable ticket for an approved
// request. The stored ticket number is reused, never re-issued.
func GetTicketPDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	req, err := (repositories.RequestRepository{}).GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if req.Status != domain.StatusApproved {
		RespondDomainError(c, domain.ConflictError{Resource: "trip request", Msg: "not approved"})
		return
	}

	ticketNo := req.TicketNo
	if ticketNo == "" {
		ticketNo, err = (repositories.TicketRepository{}).GetByRequestID(id)
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to load ticket number", err)
			return
		}
	}

	docs := services.DocsService{RequestID: middleware.GetRequestID(c)}
	data, filename, err := docs.RenderTicket(req, ticketNo)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to render ticket", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", err)
		return 0, false
	}
	return id, true
}
