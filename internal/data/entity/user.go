package entity

type User struct {
	Base
	Email    string `db:"email"`
	FullName string `db:"full_name"`
	Role     string `db:"role"` // "customer" or "admin"
}
