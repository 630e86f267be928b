// Package records builds the view model of the records list page.
package records

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"HealthRecords/internal/entities"
	"HealthRecords/pkg/sl"
)

type SessionProvider interface {
	CurrentUser(ctx context.Context) (string, error)
}

type Store interface {
	ListByOwner(ctx context.Context, ownerID string) ([]entities.Record, error)
}

// Deps are the collaborators of a single page render. Now and Lookup default
// to time.Now and entities.BloodTypeLabel when nil. A nil Session renders as
// an anonymous user and a nil Store as a failed load.
type Deps struct {
	Session SessionProvider
	Store   Store
	Now     func() time.Time
	Lookup  func(code string) (string, bool)
	Logger  *slog.Logger
}

type Card struct {
	Key            string `json:"key"`
	Name           string `json:"name"`
	HealthCard     string `json:"health_card"`
	BloodTypeLabel string `json:"blood_type_label,omitempty"`
	Age            int    `json:"age"`
	AgeKnown       bool   `json:"age_known"`
	EditURL        string `json:"edit_url"`
}

type ListView struct {
	UserID     string `json:"-"`
	Cards      []Card `json:"cards"`
	LoadFailed bool   `json:"load_failed"`
}

// EditPath is the edit route of the record with the given health card.
// The health card is path escaped, so ids containing spaces or "/" do not
// appear verbatim: "HC 1/a" yields /records/edit/HC%201%2Fa/personal.
func EditPath(healthCard string) string {
	return "/records/edit/" + url.PathEscape(healthCard) + "/personal"
}

// Build resolves the session user, loads their records and derives the
// per-card fields. It never fails: a store error is reported through
// LoadFailed and a bad date of birth only blanks that card's age.
func Build(ctx context.Context, d Deps) ListView {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	lookup := entities.BloodTypeLabel
	if d.Lookup != nil {
		lookup = d.Lookup
	}

	var userID string
	if d.Session != nil {
		id, err := d.Session.CurrentUser(ctx)
		if err != nil {
			log.Warn("failed to resolve session user", sl.Error(err))
		} else {
			userID = id
		}
	}

	view := ListView{UserID: userID, Cards: []Card{}}

	if d.Store == nil {
		log.Error("no record store configured")
		view.LoadFailed = true
		return view
	}

	rows, err := d.Store.ListByOwner(ctx, userID)
	if err != nil {
		log.Error("failed to load records", slog.String("owner_id", userID), sl.Error(err))
		view.LoadFailed = true
		return view
	}

	today := now()
	for _, rec := range rows {
		if rec.OwnerID != userID {
			log.Warn("dropping record of another owner", slog.String("health_card", rec.HealthCard))
			continue
		}

		card := Card{
			Key:        rec.HealthCard,
			Name:       rec.Name,
			HealthCard: rec.HealthCard,
			EditURL:    EditPath(rec.HealthCard),
		}
		card.BloodTypeLabel, _ = lookup(rec.BloodType)

		age, err := entities.Age(rec.DateOfBirth, today)
		if err != nil {
			log.Warn("failed to compute age", slog.String("health_card", rec.HealthCard), sl.Error(err))
		} else {
			card.Age = age
			card.AgeKnown = true
		}

		view.Cards = append(view.Cards, card)
	}

	return view
}
