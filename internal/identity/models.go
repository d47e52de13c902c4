package identity

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

// User is the stored account record. Managers additionally carry a PTO
// balance and the year it applies to.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Email        string `json:"email"`
	PTOBalance   int    `json:"ptoBalance,omitempty"`
	PTOYear      int    `json:"ptoYear,omitempty"`
}

// UsersDocument mirrors the persisted users collection layout. The three
// arrays are kept for compatibility with existing documents; in memory all
// entries share the User type with a role tag.
type UsersDocument struct {
	Employees []User `json:"employees"`
	Managers  []User `json:"managers"`
	Admins    []User `json:"admins"`
}

func (d UsersDocument) Empty() bool {
	return len(d.Employees) == 0 && len(d.Managers) == 0 && len(d.Admins) == 0
}

// FindByUsername searches employees, then managers, then admins. First
// match wins.
func (d UsersDocument) FindByUsername(username string) (User, bool) {
	for _, group := range [][]User{d.Employees, d.Managers, d.Admins} {
		for _, user := range group {
			if user.Username == username {
				return user, true
			}
		}
	}
	return User{}, false
}

// Recipients returns employees and managers; admins are not messageable.
func (d UsersDocument) Recipients() []User {
	out := make([]User, 0, len(d.Employees)+len(d.Managers))
	out = append(out, d.Employees...)
	out = append(out, d.Managers...)
	return out
}

// Identity is the session binding established at login.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Email    string `json:"email"`
}
