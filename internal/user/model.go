package user

import "time"

type User struct {
	ID        int64
	Email     string
	Password  string
	Username  string
	Firstname string
	Role      string
	CreatedAt time.Time
}

type RegisterInput struct {
	Username  string `json:"username" validate:"required,max=255"`
	Firstname string `json:"firstname" validate:"required,max=255"`
	Email     string `json:"email" validate:"required,email,max=180"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Summary struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Firstname string `json:"firstname"`
}

func ToSummary(u *User) Summary {
	return Summary{Email: u.Email, Username: u.Username, Firstname: u.Firstname}
}
