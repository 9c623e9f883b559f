// Package model defines the records persisted by todoapp.
package model

// Role is the privilege level carried by an identity.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Todo is a task record. Id and OwnerId never change after creation.
type Todo struct {
	Id          int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description" gorm:"not null"`
	Priority    int    `json:"priority" gorm:"not null"`
	Complete    bool   `json:"complete" gorm:"not null;default:false"`
	OwnerId     int    `json:"owner_id" gorm:"index;not null"`
	Owner       *User  `json:"-" gorm:"foreignKey:OwnerId;constraint:OnDelete:CASCADE"`
}

type User struct {
	Id           int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string `json:"username" gorm:"uniqueIndex;not null"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	PasswordHash string `json:"-" gorm:"column:password_hash;not null"`
	Role         Role   `json:"role" gorm:"not null;default:user"`
	IsActive     bool   `json:"is_active" gorm:"not null"`
	PhoneNumber  string `json:"phone_number"`
}

// Identity is the authenticated caller of one request. It is resolved from a
// token and never stored.
type Identity struct {
	Id       int    `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// IsAdmin reports whether the identity carries the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}
