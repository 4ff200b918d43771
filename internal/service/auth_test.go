package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowiq/cashflow-service/internal/apperr"
)

var mockOTPPattern = regexp.MustCompile(`Mock OTP: (\d{6})`)

// otpFromMessage extracts the development-mode code from the response message
func otpFromMessage(t *testing.T, message string) string {
	t.Helper()
	m := mockOTPPattern.FindStringSubmatch(message)
	require.Len(t, m, 2, "message %q carries no mock OTP", message)
	return m[1]
}

func TestRegister(t *testing.T) {
	repo := newFakeRepo()
	sender := &recordingSender{}
	svc := newTestService(repo, sender)

	user, message, err := svc.Register(context.Background(), " 081234567890 ", "Siti Rahma", "siti@example.com")
	require.NoError(t, err)

	assert.Equal(t, "081234567890", user.PhoneNumber)
	assert.Equal(t, "Siti Rahma", user.FullName)
	assert.False(t, user.IsVerified)
	assert.Contains(t, message, "OTP sent successfully")

	// The OTP is emailed and never stored in clear
	require.Len(t, sender.codes, 1)
	assert.Equal(t, "siti@example.com", sender.to)
	stored := repo.users[user.ID]
	assert.NotEmpty(t, stored.OTPHash)
	assert.NotEqual(t, sender.codes[0], stored.OTPHash)
	assert.Equal(t, testNow.Add(5*time.Minute), *stored.OTPExpiresAt)
}

func TestRegister_DuplicatePhone(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)

	_, _, err := svc.Register(context.Background(), "0811", "First", "")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "0811", "Second", "")
	var conflict *apperr.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestRegister_MissingFields(t *testing.T) {
	svc := newTestService(newFakeRepo(), nil)

	_, _, err := svc.Register(context.Background(), "", "Name", "")
	var badRequest *apperr.BadRequestError
	assert.ErrorAs(t, err, &badRequest)

	_, _, err = svc.Register(context.Background(), "0811", "  ", "")
	assert.ErrorAs(t, err, &badRequest)
}

func TestRequestOTP_UnknownUser(t *testing.T) {
	svc := newTestService(newFakeRepo(), nil)

	_, err := svc.RequestOTP(context.Background(), "0000")
	var notFound *apperr.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestVerifyOTP(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)

	user, message, err := svc.Register(context.Background(), "0811", "Siti Rahma", "")
	require.NoError(t, err)
	code := otpFromMessage(t, message)

	result, err := svc.VerifyOTP(context.Background(), "0811", code)
	require.NoError(t, err)

	assert.Equal(t, "Siti Rahma", result.FullName)
	assert.Equal(t, "0811", result.PhoneNumber)
	assert.Equal(t, testNow.Add(24*time.Hour), result.ExpiresAt)

	// The token subject is the user id
	token, err := jwt.ParseWithClaims(result.Token, &jwt.RegisteredClaims{}, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	}, jwt.WithTimeFunc(func() time.Time { return testNow }))
	require.NoError(t, err)
	claims := token.Claims.(*jwt.RegisteredClaims)
	assert.Equal(t, "1", claims.Subject)

	// The OTP is consumed and the user verified
	stored := repo.users[user.ID]
	assert.True(t, stored.IsVerified)
	assert.Empty(t, stored.OTPHash)
	assert.Nil(t, stored.OTPExpiresAt)
	require.NotNil(t, stored.LastLoginAt)
	assert.Equal(t, testNow, *stored.LastLoginAt)
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	svc := newTestService(newFakeRepo(), nil)

	_, _, err := svc.Register(context.Background(), "0811", "Siti", "")
	require.NoError(t, err)

	_, err = svc.VerifyOTP(context.Background(), "0811", "000000")
	var badRequest *apperr.BadRequestError
	assert.ErrorAs(t, err, &badRequest)
}

func TestVerifyOTP_Expired(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)

	_, message, err := svc.Register(context.Background(), "0811", "Siti", "")
	require.NoError(t, err)
	code := otpFromMessage(t, message)

	// Same repository, but the clock has moved past the 5-minute TTL
	late := NewService(repo, svc.log, svc.config, nil, func() time.Time {
		return testNow.Add(6 * time.Minute)
	})
	_, err = late.VerifyOTP(context.Background(), "0811", code)
	var badRequest *apperr.BadRequestError
	assert.ErrorAs(t, err, &badRequest)
}

func TestVerifyOTP_ReissuedCodeReplacesOld(t *testing.T) {
	svc := newTestService(newFakeRepo(), nil)

	_, firstMessage, err := svc.Register(context.Background(), "0811", "Siti", "")
	require.NoError(t, err)
	firstCode := otpFromMessage(t, firstMessage)

	secondMessage, err := svc.RequestOTP(context.Background(), "0811")
	require.NoError(t, err)
	secondCode := otpFromMessage(t, secondMessage)

	if firstCode != secondCode {
		_, err = svc.VerifyOTP(context.Background(), "0811", firstCode)
		var badRequest *apperr.BadRequestError
		assert.ErrorAs(t, err, &badRequest)
	}

	_, err = svc.VerifyOTP(context.Background(), "0811", secondCode)
	assert.NoError(t, err)
}

func TestUpdateProfile(t *testing.T) {
	svc := newTestService(newFakeRepo(), nil)

	user, _, err := svc.Register(context.Background(), "0811", "Siti", "")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), user.ID, "0822", "Siti Rahma")
	require.NoError(t, err)
	assert.Equal(t, "0822", updated.PhoneNumber)
	assert.Equal(t, "Siti Rahma", updated.FullName)
}

func TestUpdateProfile_NoFields(t *testing.T) {
	svc := newTestService(newFakeRepo(), nil)

	user, _, err := svc.Register(context.Background(), "0811", "Siti", "")
	require.NoError(t, err)

	_, err = svc.UpdateProfile(context.Background(), user.ID, " ", "")
	var badRequest *apperr.BadRequestError
	assert.ErrorAs(t, err, &badRequest)
}

func TestUpdateProfile_PhoneTaken(t *testing.T) {
	svc := newTestService(newFakeRepo(), nil)

	_, _, err := svc.Register(context.Background(), "0811", "First", "")
	require.NoError(t, err)
	second, _, err := svc.Register(context.Background(), "0822", "Second", "")
	require.NoError(t, err)

	_, err = svc.UpdateProfile(context.Background(), second.ID, "0811", "")
	var conflict *apperr.ConflictError
	assert.ErrorAs(t, err, &conflict)
}
