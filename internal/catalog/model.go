package catalog

import (
	"time"

	"github.com/uptrace/bun"
)

type Course struct {
	bun.BaseModel `bun:"table:courses,alias:c"`

	ID           int     `bun:"id,pk,autoincrement" json:"id"`
	Title        string  `bun:"title,notnull" json:"title"`
	Description  string  `bun:"description" json:"description"`
	InstructorID int     `bun:"instructor_id" json:"instructor_id"`
	Price        float64 `bun:"price,type:numeric(10,2)" json:"price"`
}

type Lesson struct {
	bun.BaseModel `bun:"table:lessons,alias:l"`

	ID       int    `bun:"id,pk,autoincrement" json:"id"`
	CourseID int    `bun:"course_id,notnull" json:"course_id"`
	Title    string `bun:"title,notnull" json:"title"`
	Content  string `bun:"content" json:"content"`
	Position int    `bun:"position,notnull" json:"position"`
}

type Enrollment struct {
	bun.BaseModel `bun:"table:enrollments,alias:e"`

	ID           int       `bun:"id,pk,autoincrement" json:"id"`
	UserID       int       `bun:"user_id,notnull" json:"user_id"`
	CourseID     int       `bun:"course_id,notnull" json:"course_id"`
	DateEnrolled time.Time `bun:"date_enrolled,type:date" json:"date_enrolled"`
}

type Payment struct {
	bun.BaseModel `bun:"table:payments,alias:p"`

	ID          int       `bun:"id,pk,autoincrement" json:"id"`
	UserID      int       `bun:"user_id,notnull" json:"user_id"`
	CourseID    int       `bun:"course_id,notnull" json:"course_id"`
	Amount      float64   `bun:"amount,type:numeric(10,2)" json:"amount"`
	PaymentDate time.Time `bun:"payment_date,nullzero,notnull,default:current_timestamp" json:"payment_date"`
	Status      string    `bun:"status,notnull,default:'completed'" json:"status"`
}

type Review struct {
	bun.BaseModel `bun:"table:reviews,alias:r"`

	ID        int       `bun:"id,pk,autoincrement" json:"id"`
	UserID    int       `bun:"user_id,notnull" json:"user_id"`
	CourseID  int       `bun:"course_id,notnull" json:"course_id"`
	Rating    int       `bun:"rating,notnull" json:"rating"`
	Comment   string    `bun:"comment" json:"comment"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}
