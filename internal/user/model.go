package user

import "github.com/uptrace/bun"

// User is an account row. Email uniqueness is enforced by the database; the
// password column always holds a bcrypt hash, never the original input.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID       int    `bun:"id,pk,autoincrement" json:"user_id"`
	Name     string `bun:"name,notnull" json:"name" validate:"required"`
	Email    string `bun:"email,unique,notnull" json:"email" validate:"required,email"`
	Password string `bun:"password,notnull" json:"-"` // Never expose password in JSON
	Role     string `bun:"role,notnull,default:'student'" json:"role"`
}
