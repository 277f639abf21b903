package handlers

import (
	"net/http"
	"strings"

	"tripticket/internal/http/middleware"
	"tripticket/internal/repositories"
	"tripticket/internal/services"

	"github.com/gin-gonic/gin"
)

func tapService(c *gin.Context) services.TapService {
	return services.TapService{
		Urgent:    repositories.UrgentTripRepository{},
		Requests:  repositories.RequestRepository{},
		Vehicles:  repositories.VehicleRepository{},
		Drivers:   repositories.DriverRepository{},
		Events:    publisher(),
		RequestID: middleware.GetRequestID(c),
	}
}

type tapRequest struct {
	Tag string `json:"tag"`
}

// POST /api/taps/urgent — private vehicle lane; open/close an urgent trip.
func TapUrgent(c *gin.Context) {
	var req tapRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	tag := strings.TrimSpace(req.Tag)
	if tag == "" {
		RespondError(c, http.StatusBadRequest, "tag is required", nil)
		return
	}

	result, err := tapService(c).Tap(tag)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// POST /api/taps/request-form — government vehicle lane; open/close an
// urgent entry in the formal request ledger.
func TapRequestForm(c *gin.Context) {
	var req tapRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	tag := strings.TrimSpace(req.Tag)
	if tag == "" {
		RespondError(c, http.StatusBadRequest, "tag is required", nil)
		return
	}

	result, err := tapService(c).TapToRequestForm(tag)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type travelTapRequest struct {
	Tag       string `json:"tag"`
	RequestID int64  `json:"requestId"`
}

// POST /api/taps/departure — gate scan recording travel-out on a scheduled,
// approved trip.
func TapDeparture(c *gin.Context) {
	var req travelTapRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Tag) == "" || req.RequestID <= 0 {
		RespondError(c, http.StatusBadRequest, "tag and requestId are required", nil)
		return
	}

	updated, err := lifecycleService(c).RecordDeparture(strings.TrimSpace(req.Tag), req.RequestID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// POST /api/taps/arrival — gate scan recording travel-in.
func TapArrival(c *gin.Context) {
	var req travelTapRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Tag) == "" || req.RequestID <= 0 {
		RespondError(c, http.StatusBadRequest, "tag and requestId are required", nil)
		return
	}

	updated, err := lifecycleService(c).RecordArrival(strings.TrimSpace(req.Tag), req.RequestID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// GET /api/urgent-trips
func ListUrgentTrips(c *gin.Context) {
	trips, err := (repositories.UrgentTripRepository{}).List()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list urgent trips", err)
		return
	}
	c.JSON(http.StatusOK, trips)
}
