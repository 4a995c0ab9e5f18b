package forms

import "time"

// Entry is a single submitted form row, scoped to the user who created it.
type Entry struct {
	ID        int64
	Text1     string
	Num1      int
	Date1     time.Time
	UserID    string
	CreatedAt time.Time
}

// SubmitInput carries the user-provided form fields.
type SubmitInput struct {
	Text1 string
	Num1  int
	Date1 time.Time
}
