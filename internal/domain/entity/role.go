package entity

// Role IDs, fixed by migration seed data
const (
	RoleIDAdmin = 1
	RoleIDStaff = 2
)
