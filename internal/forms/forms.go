// Package forms holds the HTML form payloads and their validation rules.
// Validation is pure: raw fields in, typed values or field errors out.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"myblog/internal/models"
)

// Errors maps a form field name to its messages.
type Errors map[string][]string

// Add appends msg to field.
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Any reports whether at least one field failed.
func (e Errors) Any() bool { return len(e) > 0 }

// Get returns the messages for field.
func (e Errors) Get(field string) []string { return e[field] }

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("notblank", validators.NotBlank)
		_ = validate.RegisterValidation("maxbytes", maxBytes)
	})
	return validate
}

// maxBytes bounds the encoded length of a string; bcrypt reads at most 72 bytes.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// check runs struct-tag validation over form and converts failures to Errors.
func check(form any, messages map[string]string) Errors {
	errs := Errors{}
	err := instance().Struct(form)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add("_form", "invalid form")
		return errs
	}
	for _, fe := range verrs {
		errs.Add(fe.Field(), message(fe, messages))
	}
	return errs
}

// message picks a per-field override ("field.tag") or a generic text for the tag.
func message(fe validator.FieldError, overrides map[string]string) string {
	if m, ok := overrides[fe.Field()+"."+fe.Tag()]; ok {
		return m
	}
	switch fe.Tag() {
	case "required", "notblank":
		return "This field is required."
	case "min":
		return fmt.Sprintf("Must be at least %s characters long.", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters long.", fe.Param())
	case "maxbytes":
		return fmt.Sprintf("Must be at most %s bytes long.", fe.Param())
	case "email":
		return "Please enter a valid email address."
	case "eqfield":
		return "Fields do not match."
	default:
		return "Invalid value."
	}
}

// Register is the sign-up form.
type Register struct {
	Name     string `form:"name" validate:"required,min=4,max=25"`
	Username string `form:"username" validate:"required,min=5,max=35"`
	Email    string `form:"email" validate:"email"`
	Password string `form:"password" validate:"notblank,maxbytes=72,eqfield=Confirm"`
	Confirm  string `form:"confirm" validate:"required,min=4,max=25"`
}

var registerMessages = map[string]string{
	"password.notblank": "Please choose a password.",
	"password.eqfield":  "Passwords do not match.",
}

// Validate returns the registration to persist or the field errors.
func (f Register) Validate() (models.Registration, Errors) {
	f.Name = strings.TrimSpace(f.Name)
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)

	if errs := check(f, registerMessages); errs.Any() {
		return models.Registration{}, errs
	}
	return models.Registration{
		Name:     f.Name,
		Email:    f.Email,
		Username: f.Username,
		Password: f.Password,
	}, nil
}

// Login is the sign-in form. It declares no constraints; bad input is an authentication failure.
type Login struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// Validate trims the username; it never fails.
func (f Login) Validate() (Login, Errors) {
	f.Username = strings.TrimSpace(f.Username)
	return f, nil
}

// Article is the create/edit form.
type Article struct {
	Title   string `form:"title" validate:"min=5,max=100"`
	Content string `form:"content" validate:"min=10"`
}

// Validate returns the article input or the field errors.
func (f Article) Validate() (models.ArticleInput, Errors) {
	if errs := check(f, nil); errs.Any() {
		return models.ArticleInput{}, errs
	}
	return models.ArticleInput{Title: f.Title, Content: f.Content}, nil
}

// ArticleFrom pre-fills the form from a stored article.
func ArticleFrom(a models.Article) Article {
	return Article{Title: a.Title, Content: a.Content}
}
