package request

// SetTableMaintenanceRequest flips a table in or out of maintenance.
type SetTableMaintenanceRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}
