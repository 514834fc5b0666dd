package service

import (
	"fmt"
	"time"
)

// birthdateFormat is the only accepted input format, MM/DD/YYYY
const birthdateFormat = "01/02/2006"

// adultAge is the age at which a member receives the adult role
const adultAge = 18

// AgeVerdict classifies a verified birthdate
type AgeVerdict int

const (
	// VerdictFutureDate means the birthdate lies in the future (negative age)
	VerdictFutureDate AgeVerdict = iota
	// VerdictUnderMinimum means the member is younger than the server minimum
	VerdictUnderMinimum
	// VerdictMinor means the member is old enough for the server but under 18
	VerdictMinor
	// VerdictAdult means the member is 18 or older
	VerdictAdult
)

// VerificationResult is the outcome of checking a member's birthdate
type VerificationResult struct {
	Birthdate time.Time
	Age       int
	Verdict   AgeVerdict
}

// IsAdult reports whether the adult role applies
func (r *VerificationResult) IsAdult() bool {
	return r.Verdict == VerdictAdult
}

// VerificationService computes ages from submitted birthdates and classifies
// them against the server's minimum age
type VerificationService struct {
	minimumAge int
	loc        *time.Location
	now        func() time.Time
}

// NewVerificationService creates a verification service. The location
// determines "today" for age computation.
func NewVerificationService(minimumAge int, loc *time.Location) *VerificationService {
	return &VerificationService{
		minimumAge: minimumAge,
		loc:        loc,
		now:        time.Now,
	}
}

// MinimumAge returns the configured minimum age for the server
func (s *VerificationService) MinimumAge() int {
	return s.minimumAge
}

// Verify parses an MM/DD/YYYY birthdate and classifies the member's age
func (s *VerificationService) Verify(input string) (*VerificationResult, error) {
	born, err := time.ParseInLocation(birthdateFormat, input, s.loc)
	if err != nil {
		return nil, fmt.Errorf("could not parse birthdate %q: %w", input, err)
	}

	today := s.now().In(s.loc)
	age := CalculateAge(born, today)

	result := &VerificationResult{Birthdate: born, Age: age}
	switch {
	case age < 0:
		result.Verdict = VerdictFutureDate
	case age < s.minimumAge:
		result.Verdict = VerdictUnderMinimum
	case age >= adultAge:
		result.Verdict = VerdictAdult
	default:
		result.Verdict = VerdictMinor
	}
	return result, nil
}

// CalculateAge returns the calendar age in whole years: the year difference,
// minus one if today's (month, day) precedes the birthday's
func CalculateAge(born, today time.Time) int {
	age := today.Year() - born.Year()
	if today.Month() < born.Month() ||
		(today.Month() == born.Month() && today.Day() < born.Day()) {
		age--
	}
	return age
}
