package service

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"bookdrive/internal/errors"
	"bookdrive/internal/model"
	"bookdrive/internal/repository"
)

// Fixtures is the YAML document accepted by Seeder.
type Fixtures struct {
	ReportTypes []string           `yaml:"report_types"`
	Users       []userFixture      `yaml:"users"`
	NonProfits  []nonProfitFixture `yaml:"nonprofits"`
	Drawings    []drawingFixture   `yaml:"drawings"`
	Sponsors    []sponsorFixture   `yaml:"sponsors"`
	Books       []bookFixture      `yaml:"books"`
}

type userFixture struct {
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Role      string `yaml:"role"`
	Superuser bool   `yaml:"superuser"`
}

type nonProfitFixture struct {
	Name  string  `yaml:"name"`
	About *string `yaml:"about"`
	URL   *string `yaml:"url"`
}

type drawingFixture struct {
	Subject       *string `yaml:"subject"`
	School        *string `yaml:"school"`
	CreatedBy     *string `yaml:"created_by"`
	CreativeURL   *string `yaml:"creative_url"`
	AICreativeURL *string `yaml:"ai_creative_url"`
	UseAI         *bool   `yaml:"use_ai"`
	IsActive      *bool   `yaml:"is_active"`
}

type sponsorFixture struct {
	Name      string  `yaml:"name"`
	About     *string `yaml:"about"`
	Logo      *string `yaml:"logo"`
	UserEmail string  `yaml:"user_email"`
}

type bookFixture struct {
	Name         string               `yaml:"name"`
	About        *string              `yaml:"about"`
	CoverURL     *string              `yaml:"cover_url"`
	URL          *string              `yaml:"url"`
	IsPublished  *bool                `yaml:"is_published"`
	Drawings     []string             `yaml:"drawings"`
	Sponsorships []sponsorshipFixture `yaml:"sponsorships"`
}

type sponsorshipFixture struct {
	Sponsor string `yaml:"sponsor"`
	Amount  string `yaml:"amount"`
}

// SeedResult counts what a seed run did.
type SeedResult struct {
	Created int
	Updated int
	Skipped int
}

// LoadFixtures reads and parses a YAML fixture file.
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixtures: %w", err)
	}
	return ParseFixtures(data)
}

// ParseFixtures parses a YAML fixture document.
func ParseFixtures(data []byte) (*Fixtures, error) {
	var fx Fixtures
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("unmarshalling fixtures: %w", err)
	}
	return &fx, nil
}

// Seeder loads fixtures into the store, creating new rows or updating existing
// ones by their natural key.
type Seeder struct {
	store    repository.Store
	users    UserService
	sponsors SponsorService
	books    BookService
}

// NewSeeder creates a seeder over the given store and services.
func NewSeeder(store repository.Store, users UserService, sponsors SponsorService, books BookService) *Seeder {
	return &Seeder{store: store, users: users, sponsors: sponsors, books: books}
}

// Seed applies fx in dependency order. Sponsorships are only recorded for books
// the run creates, so seeding twice does not double them.
func (s *Seeder) Seed(ctx context.Context, fx *Fixtures) (SeedResult, error) {
	var res SeedResult
	steps := []func(context.Context, *Fixtures, *SeedResult) error{
		s.seedReportTypes,
		s.seedUsers,
		s.seedNonProfits,
		s.seedDrawings,
		s.seedSponsors,
		s.seedBooks,
	}
	for _, step := range steps {
		if err := step(ctx, fx, &res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func (s *Seeder) seedReportTypes(ctx context.Context, fx *Fixtures, res *SeedResult) error {
	for _, label := range fx.ReportTypes {
		_, err := s.store.ReportTypes().FindByLabel(ctx, label)
		if err == nil {
			res.Skipped++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("error checking report type %q: %w", label, err)
		}
		if err := s.store.ReportTypes().Create(ctx, &model.ReportType{ReportType: model.Ptr(label)}); err != nil {
			return fmt.Errorf("error creating report type %q: %w", label, err)
		}
		res.Created++
	}
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context, fx *Fixtures, res *SeedResult) error {
	for _, u := range fx.Users {
		in := NewUserInput{
			Email:     u.Email,
			Password:  u.Password,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			CreatedBy: "seed",
		}
		if u.Role != "" {
			role, err := model.ParseRole(u.Role)
			if err != nil {
				return fmt.Errorf("user %s: %w", u.Email, errors.ErrInvalidRole)
			}
			in.Role = &role
		}

		create := s.users.CreateUser
		if u.Superuser {
			create = s.users.CreateSuperuser
		}
		if _, err := create(ctx, in); err != nil {
			if errors.Is(err, errors.ErrUserAlreadyExists) {
				log.Printf("user %s already exists, skipping", u.Email)
				res.Skipped++
				continue
			}
			return fmt.Errorf("error creating user %s: %w", u.Email, err)
		}
		res.Created++
	}
	return nil
}

func (s *Seeder) seedNonProfits(ctx context.Context, fx *Fixtures, res *SeedResult) error {
	repo := s.store.NonProfits()
	for _, n := range fx.NonProfits {
		if err := checkLength("name", &n.Name, nameMaxLen); err != nil {
			return fmt.Errorf("nonprofit %q: %w", n.Name, err)
		}

		existing, err := repo.FindByName(ctx, n.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("error checking nonprofit %q: %w", n.Name, err)
		}
		if existing != nil {
			existing.About = n.About
			existing.URL = n.URL
			if err := repo.Update(ctx, existing); err != nil {
				return fmt.Errorf("error updating nonprofit %q: %w", n.Name, err)
			}
			res.Updated++
			continue
		}

		np := &model.NonProfit{Name: model.Ptr(n.Name), About: n.About, URL: n.URL}
		if err := repo.Create(ctx, np); err != nil {
			return fmt.Errorf("error creating nonprofit %q: %w", n.Name, err)
		}
		res.Created++
	}
	return nil
}

func (s *Seeder) seedDrawings(ctx context.Context, fx *Fixtures, res *SeedResult) error {
	repo := s.store.Drawings()
	for _, d := range fx.Drawings {
		var existing *model.Drawing
		if d.CreativeURL != nil {
			found, err := repo.FindByCreativeURL(ctx, *d.CreativeURL)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("error checking drawing %q: %w", *d.CreativeURL, err)
			}
			existing = found
		}

		drawing := existing
		if drawing == nil {
			drawing = &model.Drawing{}
		}
		drawing.Subject = d.Subject
		drawing.School = d.School
		drawing.CreatedBy = d.CreatedBy
		drawing.CreativeURL = d.CreativeURL
		drawing.AICreativeURL = d.AICreativeURL
		if d.UseAI != nil {
			drawing.UseAI = d.UseAI
		}
		drawing.IsActive = d.IsActive

		if existing != nil {
			if err := repo.Update(ctx, drawing); err != nil {
				return fmt.Errorf("error updating drawing %d: %w", drawing.ID, err)
			}
			res.Updated++
			continue
		}
		if err := repo.Create(ctx, drawing); err != nil {
			return fmt.Errorf("error creating drawing: %w", err)
		}
		res.Created++
	}
	return nil
}

func (s *Seeder) seedSponsors(ctx context.Context, fx *Fixtures, res *SeedResult) error {
	for _, sp := range fx.Sponsors {
		var userID *uint
		if sp.UserEmail != "" {
			user, err := s.store.Users().FindByEmail(ctx, NormalizeEmail(sp.UserEmail))
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("sponsor %q: user %s: %w", sp.Name, sp.UserEmail, errors.ErrNotFound)
				}
				return err
			}
			userID = &user.ID
		}

		existing, err := s.store.Sponsors().FindByName(ctx, sp.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("error checking sponsor %q: %w", sp.Name, err)
		}
		if existing != nil {
			existing.About = sp.About
			existing.Logo = sp.Logo
			existing.UserID = userID
			if err := s.store.Sponsors().Update(ctx, existing); err != nil {
				return fmt.Errorf("error updating sponsor %q: %w", sp.Name, err)
			}
			res.Updated++
			continue
		}

		sponsor := &model.Sponsor{Name: model.Ptr(sp.Name), About: sp.About, Logo: sp.Logo, UserID: userID}
		if _, err := s.sponsors.CreateSponsor(ctx, sponsor); err != nil {
			return fmt.Errorf("error creating sponsor %q: %w", sp.Name, err)
		}
		res.Created++
	}
	return nil
}

func (s *Seeder) seedBooks(ctx context.Context, fx *Fixtures, res *SeedResult) error {
	for _, b := range fx.Books {
		existing, err := s.store.Books().FindByName(ctx, b.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("error checking book %q: %w", b.Name, err)
		}

		book := existing
		if book == nil {
			book = &model.Book{Name: model.Ptr(b.Name)}
		}
		book.About = b.About
		book.CoverURL = b.CoverURL
		book.URL = b.URL
		book.IsPublished = b.IsPublished

		if existing != nil {
			if err := s.store.Books().Update(ctx, book); err != nil {
				return fmt.Errorf("error updating book %q: %w", b.Name, err)
			}
			res.Updated++
		} else {
			if _, err := s.books.CreateBook(ctx, book); err != nil {
				return fmt.Errorf("error creating book %q: %w", b.Name, err)
			}
			res.Created++
		}

		for _, url := range b.Drawings {
			drawing, err := s.store.Drawings().FindByCreativeURL(ctx, url)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					err = errors.ErrNotFound
				}
				return fmt.Errorf("book %q: drawing %q: %w", b.Name, url, err)
			}
			if err := s.books.AttachDrawing(ctx, book.ID, drawing.ID); err != nil {
				return fmt.Errorf("book %q: %w", b.Name, err)
			}
		}

		if existing != nil {
			continue
		}
		for _, sb := range b.Sponsorships {
			if err := s.seedSponsorship(ctx, book.ID, sb); err != nil {
				return fmt.Errorf("book %q: %w", b.Name, err)
			}
		}
	}
	return nil
}

func (s *Seeder) seedSponsorship(ctx context.Context, bookID uint, sb sponsorshipFixture) error {
	sponsor, err := s.store.Sponsors().FindByName(ctx, sb.Sponsor)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("sponsor %q: %w", sb.Sponsor, errors.ErrNotFound)
		}
		return err
	}

	amount := decimal.Zero
	if sb.Amount != "" {
		if amount, err = decimal.NewFromString(sb.Amount); err != nil {
			return errors.NewValidationError("amount", fmt.Sprintf("invalid amount %q", sb.Amount))
		}
	}

	_, err = s.sponsors.SponsorBook(ctx, sponsor.ID, bookID, amount)
	return err
}
