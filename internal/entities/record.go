package entities

import (
	"fmt"
	"time"

	"HealthRecords/internal/common/commonerr"
)

// DateLayout is the only accepted format for date_of_birth.
const DateLayout = "2006-01-02"

// Record is a personal health record as stored in personal_records.
type Record struct {
	OwnerID     string `json:"-"`
	Name        string `json:"name"`
	HealthCard  string `json:"health_card"`
	BloodType   string `json:"blood_type"`
	DateOfBirth string `json:"date_of_birth"`
}

// Age returns the number of whole years between dob and now. A birthday
// that has not yet come around in now's year is not counted.
func Age(dob string, now time.Time) (int, error) {
	born, err := time.Parse(DateLayout, dob)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", commonerr.ErrBadDateOfBirth, dob)
	}

	years := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		years--
	}

	return years, nil
}
