package domain

import "time"

type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleFaculty    Role = "FACULTY"
	RoleStudent    Role = "STUDENT"
	RoleAIAgent    Role = "AI_AGENT"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleFaculty, RoleStudent, RoleAIAgent:
		return true
	}
	return false
}

type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Role          Role      `json:"role"`
	WalletAddress string    `json:"walletAddress,omitempty"`
	CDate         time.Time `json:"cdate"`
}
