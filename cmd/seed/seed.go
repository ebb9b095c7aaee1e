package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Domenick1991/digitalairlines/internal/auth"
	"github.com/Domenick1991/digitalairlines/internal/domain"
	"github.com/Domenick1991/digitalairlines/internal/repository"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Users   []seedUser   `yaml:"users"`
	Flights []seedFlight `yaml:"flights"`
}

type seedUser struct {
	Username   string `yaml:"username"`
	FullName   string `yaml:"fullName"`
	Email      string `yaml:"email"`
	Password   string `yaml:"password"`
	BirthDate  string `yaml:"birthDate"`
	Country    string `yaml:"country"`
	PassportNo string `yaml:"passportNo"`
	Type       string `yaml:"type"`
}

type seedFlight struct {
	DepartAirport     string  `yaml:"departAirport"`
	DestAirport       string  `yaml:"destAirport"`
	FlightDate        string  `yaml:"flightDate"`
	EconomyAvailable  int     `yaml:"economyAvailableTickets"`
	EconomyCost       float64 `yaml:"economyTicketCost"`
	BusinessAvailable int     `yaml:"businessAvailableTickets"`
	BusinessCost      float64 `yaml:"businessTicketCost"`
}

type seedResult struct {
	UsersCreated   int
	UsersSkipped   int
	FlightsCreated int
	FlightsSkipped int
}

func loadSeeds(path string) (*seedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seeds: %w", err)
	}
	var seeds seedFile
	if err := yaml.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("decode seeds: %w", err)
	}
	return &seeds, nil
}

func (u seedUser) toDomain(now time.Time) (*domain.User, error) {
	role := domain.Role(u.Type)
	if !role.Valid() {
		return nil, domain.NewValidationError("type", "must be User or Admin")
	}
	birthDate, err := domain.ParseBirthDate("birthDate", u.BirthDate, now)
	if err != nil {
		return nil, err
	}
	email, err := domain.ParseEmail("email", u.Email)
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(u.Password)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		Username:     u.Username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		FullName:     u.FullName,
		BirthDate:    birthDate,
		Country:      u.Country,
		PassportNo:   u.PassportNo,
	}, nil
}

func (f seedFlight) toDomain() (*domain.Flight, error) {
	date, err := domain.ParseFlightDate("flightDate", f.FlightDate)
	if err != nil {
		return nil, err
	}
	if f.EconomyAvailable < 0 || f.BusinessAvailable < 0 {
		return nil, domain.NewValidationError("availableTickets", "must not be negative")
	}
	return &domain.Flight{
		DepartAirport:     f.DepartAirport,
		DestAirport:       f.DestAirport,
		FlightDate:        date,
		EconomyAvailable:  f.EconomyAvailable,
		EconomyCost:       f.EconomyCost,
		BusinessAvailable: f.BusinessAvailable,
		BusinessCost:      f.BusinessCost,
	}, nil
}

// apply inserts the seeds. Users that already exist and flights already
// present for the same route and date are skipped, so reruns are harmless.
func apply(ctx context.Context, users repository.UserRepository, flights repository.FlightRepository, seeds *seedFile) (seedResult, error) {
	var res seedResult
	now := time.Now()

	for _, su := range seeds.Users {
		user, err := su.toDomain(now)
		if err != nil {
			return res, fmt.Errorf("user %q: %w", su.Username, err)
		}
		if err := users.Create(ctx, user); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				res.UsersSkipped++
				continue
			}
			return res, fmt.Errorf("create user %q: %w", su.Username, err)
		}
		res.UsersCreated++
		log.WithFields(log.Fields{"username": user.Username, "role": user.Role}).Info("user seeded")
	}

	for _, sf := range seeds.Flights {
		flight, err := sf.toDomain()
		if err != nil {
			return res, fmt.Errorf("flight %s-%s: %w", sf.DepartAirport, sf.DestAirport, err)
		}
		existing, err := flights.Find(ctx, domain.FlightFilter{
			Kind:          domain.FilterRouteAndDate,
			DepartAirport: flight.DepartAirport,
			DestAirport:   flight.DestAirport,
			FlightDate:    flight.FlightDate,
		})
		if err != nil {
			return res, fmt.Errorf("find flight: %w", err)
		}
		if len(existing) > 0 {
			res.FlightsSkipped++
			continue
		}
		if err := flights.Create(ctx, flight); err != nil {
			return res, fmt.Errorf("create flight: %w", err)
		}
		res.FlightsCreated++
		log.WithField("flight_id", flight.ID).Info("flight seeded")
	}
	return res, nil
}
