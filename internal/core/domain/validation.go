package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// UserCandidate is the unvalidated input for a new account.
type UserCandidate struct {
	Username string `json:"username" validate:"required,min=3,max=20"`
	Email    string `json:"email"    validate:"required,min=6,max=30"`
	Password string `json:"password" validate:"required,min=6,max=50,bcryptmax"`
	Role     Role   `json:"role"     validate:"required,oneof=customer business"`
}

// Normalize trims the fields whose length is measured without surrounding
// whitespace. The password is kept verbatim.
func (c UserCandidate) Normalize() UserCandidate {
	c.Username = strings.TrimSpace(c.Username)
	c.Email = strings.TrimSpace(c.Email)
	return c
}

// CommodityCandidate is the unvalidated input for a new commodity.
type CommodityCandidate struct {
	Title       string  `json:"title"       validate:"required,min=6,max=25"`
	Price       float64 `json:"price"       validate:"required,min=1,max=100000"`
	Description string  `json:"description" validate:"omitempty,min=6,max=500"`
}

func (c CommodityCandidate) Normalize() CommodityCandidate {
	c.Title = strings.TrimSpace(c.Title)
	c.Description = strings.TrimSpace(c.Description)
	return c
}

// Normalize trims the string fields that are present.
func (p CommodityPatch) Normalize() CommodityPatch {
	if p.Title != nil {
		t := strings.TrimSpace(*p.Title)
		p.Title = &t
	}
	if p.Description != nil {
		d := strings.TrimSpace(*p.Description)
		p.Description = &d
	}
	return p
}

// MaxPasswordBytes is the longest input bcrypt will hash.
const MaxPasswordBytes = 72

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("bcryptmax", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxPasswordBytes
	})
	return v
}

// ValidateNewUser checks the length and role constraints of a registration.
func ValidateNewUser(c UserCandidate) error {
	return firstViolation(validate.Struct(c.Normalize()))
}

// ValidateProfile checks username and email only.
func ValidateProfile(username, email string) error {
	c := UserCandidate{Username: username, Email: email}.Normalize()
	return firstViolation(validate.StructPartial(c, "Username", "Email"))
}

// ValidatePassword checks a plaintext password before it is hashed.
func ValidatePassword(password string) error {
	err := validate.Var(password, "required,min=6,max=50,bcryptmax")
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return &ValidationError{Field: "password", Reason: Reason(ve[0])}
	}
	return err
}

// ValidateCommodity checks title, price and description of a new commodity.
func ValidateCommodity(c CommodityCandidate) error {
	return firstViolation(validate.Struct(c.Normalize()))
}

// ValidateCommodityPatch checks only the fields present in p. A patch with
// no fields is rejected.
func ValidateCommodityPatch(p CommodityPatch) error {
	if p.Empty() {
		return &ValidationError{Field: "body", Reason: "must contain at least one of: title, price, description"}
	}
	return firstViolation(validate.Struct(p.Normalize()))
}

func firstViolation(err error) error {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return &ValidationError{Field: ve[0].Field(), Reason: Reason(ve[0])}
	}
	return err
}

// Reason renders a validator failure as the sentence carried by
// ValidationError.
func Reason(fe validator.FieldError) string {
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s%s", fe.Param(), unit)
	case "max":
		return fmt.Sprintf("must be at most %s%s", fe.Param(), unit)
	case "bcryptmax":
		return fmt.Sprintf("must be at most %d bytes", MaxPasswordBytes)
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return fmt.Sprintf("failed validation (%s)", fe.Tag())
	}
}
