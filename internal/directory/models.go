package directory

// Employee is a worker record from the BPO directory. The access service
// never writes employees; it only resolves them as targets of access changes.
type Employee struct {
	EmployeeID string `json:"employee_id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	NTLogin    string `json:"ntlogin"`
	Department string `json:"department,omitempty"`
	Location   string `json:"location,omitempty"`
}

// Location is a site from the BPO directory. The announcement application
// scopes its roles to locations, so the registry resolves its role list from
// these.
type Location struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}
