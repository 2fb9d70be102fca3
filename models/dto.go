package models

// Request bodies accepted by the gateway. Validation here is intentionally
// shallow: the gateway shapes a payload and forwards it, field-level rules
// belong to the owning microservice.

// LoginRequest is the body for POST /users/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=5,max=16"`
}

// RegisterRequest is the body for POST /users/registration
type RegisterRequest struct {
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=5,max=16"`
	Roles    []string `json:"roles,omitempty"`
}

// ForgotPasswordRequest is the body for PATCH /users/password/forgot
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ChangePasswordRequest is the body for PATCH /users/password/change
type ChangePasswordRequest struct {
	Password    string `json:"password" binding:"required,min=5,max=16"`
	NewPassword string `json:"newPassword" binding:"required,min=5,max=16"`
}

// RefreshTokenRequest is the body for POST /users/refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RoleRequest is the body for role creation and update
type RoleRequest struct {
	Name        string `json:"name" binding:"required"`
	Priority    int    `json:"priority,omitempty"`
	Description string `json:"description,omitempty"`
}

// ProfileRequest is the body for profile creation and update. Unknown
// fields ride along in Data so profile service schema changes do not
// require a gateway release.
type ProfileRequest struct {
	FirstName  string                 `json:"firstName,omitempty"`
	LastName   string                 `json:"lastName,omitempty"`
	MiddleName string                 `json:"middleName,omitempty"`
	Phone      string                 `json:"phone,omitempty"`
	Data       map[string]interface{} `json:"data,omitempty"`
}

// CompanyRequest is the body for company creation and update
type CompanyRequest struct {
	Name            string                 `json:"name" binding:"required"`
	INN             string                 `json:"inn,omitempty"`
	Owner           string                 `json:"owner,omitempty"`
	Ownership       string                 `json:"ownership,omitempty"`
	Email           string                 `json:"email,omitempty"`
	Phones          []string               `json:"phones,omitempty"`
	CompanyLocation string                 `json:"companyLocation,omitempty"`
	FactLocation    string                 `json:"factLocation,omitempty"`
	EmployeesCount  int                    `json:"employeesCount,omitempty"`
	Tags            []string               `json:"tags,omitempty"`
	Requisites      map[string]interface{} `json:"requisites,omitempty"`
}

// ClientRequest is the body for client creation and update
type ClientRequest struct {
	First      string   `json:"first" binding:"required"`
	Last       string   `json:"last,omitempty"`
	Middle     string   `json:"middle,omitempty"`
	Email      string   `json:"email,omitempty"`
	Phones     []string `json:"phones,omitempty"`
	Company    string   `json:"company,omitempty"`
	Owner      string   `json:"owner,omitempty"`
	Birthday   string   `json:"birthday,omitempty"`
	Attraction string   `json:"attraction,omitempty"`
}

// DealRequest is the body for deal creation and update
type DealRequest struct {
	Name        string   `json:"name" binding:"required"`
	Client      string   `json:"client,omitempty"`
	Company     string   `json:"company,omitempty"`
	Owner       string   `json:"owner,omitempty"`
	Status      string   `json:"status,omitempty"`
	Amount      float64  `json:"amount,omitempty"`
	Currency    string   `json:"currency,omitempty"`
	Source      string   `json:"source,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Description string   `json:"description,omitempty"`
}

// LeadRequest is the body for lead creation and update
type LeadRequest struct {
	Name        string  `json:"name" binding:"required"`
	Client      string  `json:"client,omitempty"`
	Company     string  `json:"company,omitempty"`
	Owner       string  `json:"owner,omitempty"`
	Status      string  `json:"status,omitempty"`
	Amount      float64 `json:"amount,omitempty"`
	Source      string  `json:"source,omitempty"`
	Description string  `json:"description,omitempty"`
}

// CommentRequest is the body for attaching a comment to a deal or lead
type CommentRequest struct {
	Comment string `json:"comment" binding:"required"`
}

// ChangeOwnerRequest reassigns a deal or lead to another manager
type ChangeOwnerRequest struct {
	Owner string `json:"owner" binding:"required"`
}

// NewsRequest is the body for news creation and update
type NewsRequest struct {
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// StatusDealRequest is the body for deal board status creation and update
type StatusDealRequest struct {
	Name     string `json:"name" binding:"required"`
	Priority int    `json:"priority,omitempty"`
	Locked   bool   `json:"locked,omitempty"`
	Color    string `json:"color,omitempty"`
}

// TaskRequest is the body for task creation and update
type TaskRequest struct {
	Title     string   `json:"title" binding:"required"`
	Text      string   `json:"text,omitempty"`
	StartDate string   `json:"startDate,omitempty"`
	EndDate   string   `json:"endDate,omitempty"`
	Executors []string `json:"executors,omitempty"`
}

// SettingsRequest is the body for storing a settings value
type SettingsRequest struct {
	Property string      `json:"property" binding:"required"`
	Value    interface{} `json:"value"`
}

// VehiclePair holds a property of a tractor/semitrailer pair. Fleet
// vehicles are registered as the pair, each half carrying its own value.
type VehiclePair struct {
	Tractor     string `json:"tractor,omitempty"`
	Semitrailer string `json:"semitrailer,omitempty"`
}

// CarRequest is the body for vehicle creation and update
type CarRequest struct {
	Owner       string      `json:"owner,omitempty"`
	Company     string      `json:"company,omitempty"`
	Model       VehiclePair `json:"model,omitempty"`
	GovNumber   VehiclePair `json:"govNumber,omitempty"`
	VIN         VehiclePair `json:"vin,omitempty"`
	TypeTS      VehiclePair `json:"typeTS,omitempty"`
	IssueYear   VehiclePair `json:"issueYear,omitempty"`
	Chassis     VehiclePair `json:"chassis,omitempty"`
	Carcase     VehiclePair `json:"carcase,omitempty"`
	Color       VehiclePair `json:"color,omitempty"`
	EnginePower VehiclePair `json:"enginePower,omitempty"`
	MaxMass     VehiclePair `json:"maxMass,omitempty"`
	CurbWeight  VehiclePair `json:"curbWeight,omitempty"`
	OwnerCar    VehiclePair `json:"ownerCar,omitempty"`
	Calibration VehiclePair `json:"calibration,omitempty"`
}

// ParkFuelRequest describes one fuel kind held in a storage object
type ParkFuelRequest struct {
	Name        string  `json:"name" binding:"required"`
	Capacity    float64 `json:"capacity,omitempty"`
	Consumption float64 `json:"consumption,omitempty"`
}

// ParkStoreRequest is the body for adding a storage object to a fuel park
type ParkStoreRequest struct {
	Name     string            `json:"name" binding:"required"`
	Address  string            `json:"address,omitempty"`
	HavePump bool              `json:"havePump,omitempty"`
	Distance string            `json:"distance,omitempty"`
	Fuels    []ParkFuelRequest `json:"fuels,omitempty"`
}

// ParkStoreUpdateRequest is the body for changing a storage object. Fuel
// entries are managed through their own routes and never ride along here.
type ParkStoreUpdateRequest struct {
	Name     string `json:"name,omitempty"`
	Address  string `json:"address,omitempty"`
	HavePump bool   `json:"havePump,omitempty"`
	Distance string `json:"distance,omitempty"`
}

// ParkRequest is the body for creating a company's fuel park
type ParkRequest struct {
	Store map[string]ParkStoreRequest `json:"store,omitempty"`
}
