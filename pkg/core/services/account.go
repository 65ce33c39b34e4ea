package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jakechorley/worship-roster/pkg/core/model"
	"github.com/jakechorley/worship-roster/pkg/db"
	"github.com/jakechorley/worship-roster/pkg/errs"
)

var validate = validator.New()

// credentialsInput is what a member types to sign up or log in
type credentialsInput struct {
	PhoneNumber string `validate:"required,number"`
	PIN         string `validate:"required,number,max=12"`
}

// validateCredentials checks the phone number is exactly phoneNumberLength digits and the PIN is numeric
func validateCredentials(op string, input credentialsInput, phoneNumberLength int) error {
	if err := validate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			switch fieldErrs[0].Field() {
			case "PhoneNumber":
				return errs.Validation(op, fmt.Sprintf("phone number must be %d digits", phoneNumberLength))
			case "PIN":
				return errs.Validation(op, "PIN must be a short number")
			}
		}
		return errs.Validation(op, err.Error())
	}

	if err := validate.Var(input.PhoneNumber, fmt.Sprintf("len=%d", phoneNumberLength)); err != nil {
		return errs.Validation(op, fmt.Sprintf("phone number must be %d digits", phoneNumberLength))
	}
	return nil
}

// SignUp registers a new member with a phone number and PIN.
// The member and credential records are created together; an existing phone number is a Conflict.
func SignUp(
	ctx context.Context,
	store db.MemberStore,
	logger *zap.Logger,
	phoneNumberLength int,
	phoneNumber string,
	pin string,
) error {
	input := credentialsInput{
		PhoneNumber: strings.TrimSpace(phoneNumber),
		PIN:         strings.TrimSpace(pin),
	}

	logger.Debug("Signing up", zap.String("phone_number", input.PhoneNumber))

	if err := validateCredentials("sign up", input, phoneNumberLength); err != nil {
		return err
	}

	_, err := store.GetCredential(ctx, input.PhoneNumber)
	switch {
	case err == nil:
		return errs.Conflict("sign up", "phone number already registered")
	case !errs.IsNotFound(err):
		return fmt.Errorf("failed to check existing member: %w", err)
	}

	member := db.Member{PhoneNumber: input.PhoneNumber}
	credential := db.Credential{PhoneNumber: input.PhoneNumber, PIN: input.PIN}
	if err := store.InsertMember(ctx, member, credential); err != nil {
		if errs.IsConflict(err) {
			return errs.Conflict("sign up", "phone number already registered")
		}
		return fmt.Errorf("failed to create member: %w", err)
	}

	logger.Info("Member signed up", zap.String("phone_number", input.PhoneNumber))
	return nil
}

// Login checks a phone number and PIN and returns the session for that member.
// Malformed input is rejected before the store is queried.
func Login(
	ctx context.Context,
	store db.MemberStore,
	logger *zap.Logger,
	phoneNumberLength int,
	phoneNumber string,
	pin string,
) (*model.Session, error) {
	phoneNumber = strings.TrimSpace(phoneNumber)
	pin = strings.TrimSpace(pin)

	logger.Debug("Logging in", zap.String("phone_number", phoneNumber))

	input := credentialsInput{PhoneNumber: phoneNumber, PIN: pin}
	if err := validateCredentials("login", input, phoneNumberLength); err != nil {
		return nil, err
	}

	credential, err := store.GetCredential(ctx, phoneNumber)
	if errs.IsNotFound(err) {
		return nil, errs.Validation("login", "no such phone number")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch credential: %w", err)
	}

	if credential.PIN != pin {
		logger.Debug("PIN mismatch", zap.String("phone_number", phoneNumber))
		return nil, errs.Validation("login", "wrong PIN")
	}

	isAdmin, err := lookupAdmin(ctx, store, phoneNumber)
	if err != nil {
		return nil, err
	}

	logger.Info("Member logged in", zap.String("phone_number", phoneNumber), zap.Bool("is_admin", isAdmin))

	return &model.Session{PhoneNumber: phoneNumber, IsAdmin: isAdmin}, nil
}
