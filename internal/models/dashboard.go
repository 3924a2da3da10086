package models

// AdminDashboard summarizes portfolio state for admin principals.
type AdminDashboard struct {
	Buildings       int     `json:"buildings"`
	Units           int     `json:"units"`
	OccupiedUnits   int     `json:"occupied_units"`
	VacantUnits     int     `json:"vacant_units"`
	Tenants         int     `json:"tenants"`
	OccupancyRate   float64 `json:"occupancy_rate"`
	OutstandingRent float64 `json:"outstanding_rent"`
}

// TenantDashboard is the view a tenant principal sees of their own
// record: assignment plus payment history.
type TenantDashboard struct {
	Tenant   *Tenant        `json:"tenant"`
	Unit     *Unit          `json:"unit,omitempty"`
	Payments []*RentPayment `json:"payments"`
}
