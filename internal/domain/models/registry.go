package models

// Registry rows. These back the resolveDriver/resolveVehicle collaborators;
// the lifecycle copies their display fields into the request snapshot.

type Office struct {
	ID         int64  `json:"id"`
	OfficeName string `json:"officeName"`
	Division   string `json:"division"`
}

type Driver struct {
	ID         int64  `json:"id"`
	DriverName string `json:"driverName"`
	ContactNo  string `json:"contactNo"`
	Email      string `json:"email"`
}

type Vehicle struct {
	ID               int64  `json:"id"`
	VehicleName      string `json:"vehicleName"`
	PlateNo          string `json:"plateNo"`
	RFIDTag          string `json:"rfidTag"`
	OwnerClass       string `json:"ownerClass"` // government / private
	AssignedDriverID int64  `json:"assignedDriverId"`
}

type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}
