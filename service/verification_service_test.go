package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVerification(minimumAge int, today time.Time) *VerificationService {
	svc := NewVerificationService(minimumAge, time.UTC)
	svc.now = func() time.Time { return today }
	return svc
}

func TestVerificationService_Verify(t *testing.T) {
	today := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		age     int
		verdict AgeVerdict
	}{
		{"adult", "08/25/1990", 36, VerdictAdult},
		{"turns 18 today", "08/25/2008", 18, VerdictAdult},
		{"day before 18th birthday", "08/26/2008", 17, VerdictMinor},
		{"exactly minimum age", "08/25/2013", 13, VerdictMinor},
		{"one day under minimum", "08/26/2013", 12, VerdictUnderMinimum},
		{"future date", "01/01/2030", -4, VerdictFutureDate},
	}

	svc := newTestVerification(13, today)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Verify(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.age, result.Age)
			assert.Equal(t, tt.verdict, result.Verdict)
		})
	}
}

func TestVerificationService_VerifyRejectsMalformedInput(t *testing.T) {
	svc := newTestVerification(13, time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC))

	for _, input := range []string{"", "yesterday", "25/08/1990", "1990-08-25", "13/45/1990"} {
		_, err := svc.Verify(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestVerificationService_IsAdult(t *testing.T) {
	assert.True(t, (&VerificationResult{Verdict: VerdictAdult}).IsAdult())
	assert.False(t, (&VerificationResult{Verdict: VerdictMinor}).IsAdult())
	assert.False(t, (&VerificationResult{Verdict: VerdictUnderMinimum}).IsAdult())
}

func TestCalculateAge(t *testing.T) {
	today := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		born time.Time
		age  int
	}{
		{"birthday today", time.Date(2000, 8, 25, 0, 0, 0, 0, time.UTC), 26},
		{"birthday tomorrow", time.Date(2000, 8, 26, 0, 0, 0, 0, time.UTC), 25},
		{"birthday yesterday", time.Date(2000, 8, 24, 0, 0, 0, 0, time.UTC), 26},
		{"later month", time.Date(2000, 12, 1, 0, 0, 0, 0, time.UTC), 25},
		{"earlier month", time.Date(2000, 2, 1, 0, 0, 0, 0, time.UTC), 26},
		{"born this year", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 0},
		{"born next year", time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.age, CalculateAge(tt.born, today))
		})
	}
}
