// Package validation provides client-side input validation using the validator/v10 library.
//
// Validation failures are raised before any network call is made; they never
// reach the REST client. Rating range and price sign are deliberately not
// validated; the backend owns those rules and this client forwards values
// as-is.
package validation

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/rentifyapp/rentify-client/internal/domain"
	clienterrors "github.com/rentifyapp/rentify-client/internal/errors"
)

// Validator wraps go-playground/validator with client error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator configured for our domain.
func New() *Validator {
	v := validator.New()

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		// Remove options like omitempty, -
		for i := 0; i < len(name); i++ {
			if name[i] == ',' {
				return name[:i]
			}
		}
		return name
	})

	return &Validator{v: v}
}

// Validate validates a struct and returns a client validation error.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

// formatError converts validator errors to client errors.
func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fieldErrors := make(map[string]string)
	for _, e := range validationErrs {
		fieldErrors[e.Field()] = friendlyMessage(e)
	}

	return clienterrors.ValidationWithDetails("validation failed", fieldErrors)
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	default:
		return "is invalid"
	}
}

// RequireUser checks that a user is logged in before an action that needs one.
func RequireUser(user *domain.User) error {
	if user == nil {
		return clienterrors.Validation("you must be logged in to do that")
	}
	return nil
}

// CheckCanRate rejects rating a listing the user owns. Ownership is identity
// equality on the author ID; the backend does not enforce this rule, so the
// client must.
func CheckCanRate(listing *domain.Listing, user *domain.User) error {
	if err := RequireUser(user); err != nil {
		return err
	}
	if listing.IsOwner(user.ID) {
		return clienterrors.Validation("you cannot rate your own listing")
	}
	return nil
}

// CheckCanApply rejects applying for a listing the user owns or has already
// applied to.
func CheckCanApply(listing *domain.Listing, user *domain.User) error {
	if err := RequireUser(user); err != nil {
		return err
	}
	if listing.IsOwner(user.ID) {
		return clienterrors.Validation("you cannot apply for your own listing")
	}
	if listing.HasApplied(user.ID) {
		return clienterrors.Validation("you have already applied for this listing")
	}
	return nil
}

// CheckCanApprove rejects approving applications on a listing the user does
// not own.
func CheckCanApprove(listing *domain.Listing, user *domain.User) error {
	if err := RequireUser(user); err != nil {
		return err
	}
	if !listing.IsOwner(user.ID) {
		return clienterrors.Validation("only the listing owner can approve applications")
	}
	return nil
}
