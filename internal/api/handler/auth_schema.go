package handler

// signupForm carries the signup form fields.
type signupForm struct {
	Username  string `form:"username"  validate:"required"`
	Email     string `form:"email"     validate:"required,email"`
	Password1 string `form:"password1" validate:"required"`
	Password2 string `form:"password2" validate:"required"`
}

// loginForm carries the login form fields.
type loginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}
