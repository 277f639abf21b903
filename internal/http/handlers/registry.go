package handlers

import (
	"net/http"
	"strings"

	"tripticket/internal/domain"
	"tripticket/internal/domain/models"
	"tripticket/internal/repositories"

	"github.com/gin-gonic/gin"
)

// Registry CRUD: offices, drivers, vehicles. These feed the snapshot
// resolution in the lifecycle and the tag lookup at the gate.

// POST /api/offices
func CreateOffice(c *gin.Context) {
	var office models.Office
	if !BindJSONOrError(c, &office) {
		return
	}
	if strings.TrimSpace(office.OfficeName) == "" {
		RespondDomainError(c, domain.ValidationError{Field: "officeName", Msg: "required"})
		return
	}
	created, err := (repositories.OfficeRepository{}).Create(office)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to save office", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GET /api/offices
func ListOffices(c *gin.Context) {
	offices, err := (repositories.OfficeRepository{}).List()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list offices", err)
		return
	}
	c.JSON(http.StatusOK, offices)
}

// POST /api/drivers
func CreateDriver(c *gin.Context) {
	var driver models.Driver
	if !BindJSONOrError(c, &driver) {
		return
	}
	if strings.TrimSpace(driver.DriverName) == "" {
		RespondDomainError(c, domain.ValidationError{Field: "driverName", Msg: "required"})
		return
	}
	created, err := (repositories.DriverRepository{}).Create(driver)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to save driver", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GET /api/drivers
func ListDrivers(c *gin.Context) {
	drivers, err := (repositories.DriverRepository{}).List()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list drivers", err)
		return
	}
	c.JSON(http.StatusOK, drivers)
}

// POST /api/vehicles
func CreateVehicle(c *gin.Context) {
	var vehicle models.Vehicle
	if !BindJSONOrError(c, &vehicle) {
		return
	}
	if strings.TrimSpace(vehicle.VehicleName) == "" {
		RespondDomainError(c, domain.ValidationError{Field: "vehicleName", Msg: "required"})
		return
	}
	switch vehicle.OwnerClass {
	case "":
		vehicle.OwnerClass = domain.OwnerGovernment
	case domain.OwnerGovernment, domain.OwnerPrivate:
	default:
		RespondDomainError(c, domain.ValidationError{Field: "ownerClass", Msg: "must be government or private"})
		return
	}
	created, err := (repositories.VehicleRepository{}).Create(vehicle)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to save vehicle", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GET /api/vehicles
func ListVehicles(c *gin.Context) {
	vehicles, err := (repositories.VehicleRepository{}).List()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list vehicles", err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}
