package service

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	domainErrors "github.com/UnyteAfrica/unyte-backoffice/internal/domain/errors"
	"github.com/UnyteAfrica/unyte-backoffice/internal/domain/models"
)

const (
	// OTPLength is the number of digits in a passcode.
	OTPLength = 6
	// OTPStep is the interval of the time-stepped derivation. The step
	// counter only advances on interval boundaries, but the seed is fresh
	// per call, so two codes issued inside one interval still differ.
	OTPStep = 60 * time.Second
	// OTPTTL is the validity window. Elapsed time is measured against the
	// stored issuance timestamp; exactly OTPTTL is already expired.
	OTPTTL = 120 * time.Second
)

// OTPService derives, checks and expires one-time passcodes. It holds no
// per-principal state; the pending code lives on the CredentialAccount.
type OTPService struct {
	clock  Clock
	random io.Reader
}

// NewOTPService wires the time and randomness providers. Pass nil for either
// to use the system defaults.
func NewOTPService(clock Clock, random io.Reader) *OTPService {
	if clock == nil {
		clock = SystemClock()
	}
	if random == nil {
		random = rand.Reader
	}
	return &OTPService{clock: clock, random: random}
}

// Generate derives a fresh passcode and returns it with its issuance time.
// The only failure mode is the random source, which is non-recoverable for
// the request.
func (s *OTPService) Generate() (code string, issuedAt time.Time, err error) {
	now := s.clock.Now()

	var seed [16]byte
	if _, err := io.ReadFull(s.random, seed[:]); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to read random seed for otp: %w", err)
	}

	// HOTP-style dynamic truncation over the step counter, keyed by the
	// per-call seed.
	step := uint64(now.Unix()) / uint64(OTPStep/time.Second)
	var counter [8]byte
	binary.BigEndian.PutUint64(counter[:], step)

	mac := hmac.New(sha256.New, seed[:])
	mac.Write(counter[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	value := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff

	return fmt.Sprintf("%0*d", OTPLength, value%1_000_000), now, nil
}

// Verify checks a supplied code against the account's pending challenge at
// the given instant. It does not mutate the account; the caller must clear
// the pending code through a compare-and-clear store operation so a verified
// code can never be replayed.
func (s *OTPService) Verify(cred models.CredentialAccount, supplied string, now time.Time) error {
	if !cred.Pending() {
		return domainErrors.ErrNoPendingChallenge
	}
	if subtle.ConstantTimeCompare([]byte(supplied), []byte(*cred.OTP)) != 1 {
		return domainErrors.ErrIncorrectCode
	}
	if now.Sub(*cred.OTPIssuedAt) >= OTPTTL {
		return domainErrors.ErrOTPExpired
	}
	return nil
}
