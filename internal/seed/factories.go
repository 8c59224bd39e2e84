// Package seed creates demo data for development databases. It is never
// invoked by the server itself.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"cohort/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much demo data is generated.
type Options struct {
	Researchers          int
	Subjects             int
	SurveysPerResearcher int
	// MaxDays is how far back in time created_at timestamps are spread.
	MaxDays int
}

// DefaultOptions is a small but browsable data set.
var DefaultOptions = Options{
	Researchers:          3,
	Subjects:             10,
	SurveysPerResearcher: 8,
	MaxDays:              90,
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rnd  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rnd:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a user with the given role. All seeded accounts share
// the password "password123" so they are usable from the API.
func (f *Factory) CreateUser(role models.Role, seq int) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	username := fmt.Sprintf("%s_%s%d", gofakeit.Adjective(), gofakeit.NounAbstract(), seq)
	user := &models.User{
		Username: username,
		Email:    gofakeit.Email(),
		Password: string(hashed),
	}

	err = f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile := &models.Profile{
			UserID: user.ID,
			Role:   role,
			Bio:    gofakeit.Sentence(10),
		}
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		user.Profile = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateSurvey persists a survey owned by the given user with a created_at
// spread back in time for realistic ordering.
func (f *Factory) CreateSurvey(owner *models.User) (*models.Survey, error) {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	back := time.Duration(f.rnd.Intn(maxDays))*24*time.Hour +
		time.Duration(f.rnd.Intn(24))*time.Hour +
		time.Duration(f.rnd.Intn(60))*time.Minute

	survey := &models.Survey{
		Title:       gofakeit.Sentence(4),
		Description: gofakeit.Paragraph(1, 3, 8, "\n"),
		CreatedByID: owner.ID,
		CreatedAt:   time.Now().Add(-back),
	}
	if err := f.db.Create(survey).Error; err != nil {
		return nil, err
	}
	return survey, nil
}

// Run populates the database according to the factory options.
func (f *Factory) Run() error {
	for i := 0; i < f.opts.Researchers; i++ {
		researcher, err := f.CreateUser(models.RoleResearcher, i)
		if err != nil {
			return fmt.Errorf("seed researcher %d: %w", i, err)
		}
		for j := 0; j < f.opts.SurveysPerResearcher; j++ {
			if _, err := f.CreateSurvey(researcher); err != nil {
				return fmt.Errorf("seed survey %d for %s: %w", j, researcher.Username, err)
			}
		}
	}
	for i := 0; i < f.opts.Subjects; i++ {
		if _, err := f.CreateUser(models.RoleSubject, f.opts.Researchers+i); err != nil {
			return fmt.Errorf("seed subject %d: %w", i, err)
		}
	}
	return nil
}
