package domain

// Role is a user's privilege level. Roles form a total order:
// volunteer < reporter < admin.
type Role string

const (
	RoleVolunteer Role = "volunteer"
	RoleReporter  Role = "reporter"
	RoleAdmin     Role = "admin"
)

// Roles lists all valid roles in ascending rank order.
var Roles = []Role{RoleVolunteer, RoleReporter, RoleAdmin}

var roleRank = map[Role]int{
	RoleVolunteer: 0,
	RoleReporter:  1,
	RoleAdmin:     2,
}

// Rank returns the role's position in the privilege order.
// Unknown roles rank below volunteer.
func (r Role) Rank() int {
	rank, ok := roleRank[r]
	if !ok {
		return -1
	}
	return rank
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r grants the privileges of min.
// Every privileged operation is gated on this check.
func (r Role) AtLeast(min Role) bool {
	return r.Rank() >= min.Rank()
}

// CanReport reports whether r may run cross-user reports.
func (r Role) CanReport() bool { return r.AtLeast(RoleReporter) }

// IsAdmin reports whether r holds the top rank.
func (r Role) IsAdmin() bool { return r.AtLeast(RoleAdmin) }

// User is an account that can log in and own entries.
type User struct {
	ID           int64  `json:"id"`
	FullName     string `json:"full_name"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	PasswordHash string `json:"-"`
}

// Entry is one logged volunteer shift. Date is an ISO calendar day
// (YYYY-MM-DD); StartTime and EndTime are 24-hour HH:MM strings.
// TotalHours is derived from the three and recomputed whenever any
// of them changes.
type Entry struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"user_id"`
	Date       string  `json:"date"`
	Event      string  `json:"event"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	TotalHours float64 `json:"total_hours"`
	Notes      string  `json:"notes"`
}
