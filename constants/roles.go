package constants

// User roles
const (
	RoleAdmin = "admin"
	RoleAgent = "agent"
)

// ValidCities is the fixed set of cities an agent can be assigned to.
// Plans are matched against this list case-sensitively.
var ValidCities = []string{
	"Mumbai", "Delhi", "Bangalore", "Hyderabad", "Chennai",
	"Kolkata", "Ahmedabad", "Pune", "Jaipur", "Lucknow",
	"Kanpur", "Nagpur", "Indore", "Thane", "Bhopal",
}

// IsValidCity reports whether city is a member of ValidCities.
func IsValidCity(city string) bool {
	for _, c := range ValidCities {
		if c == city {
			return true
		}
	}
	return false
}

// IsValidRole reports whether role is one of the known roles.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleAgent
}
