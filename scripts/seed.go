package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/dihora04/djbook.in-sub000/internal/adapters/database"
	"github.com/dihora04/djbook.in-sub000/internal/adapters/search"
	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
	"github.com/dihora04/djbook.in-sub000/internal/domain/repositories"
	"github.com/dihora04/djbook.in-sub000/internal/infrastructure/clients/postgres"
	"github.com/dihora04/djbook.in-sub000/internal/infrastructure/clients/typesense"
	"github.com/dihora04/djbook.in-sub000/pkg/config"
	"github.com/dihora04/djbook.in-sub000/pkg/utils"
)

// Development seed data: a handful of approved DJ profiles across Indian
// metros, one pending profile for the moderation queue, and a customer
// account to book with.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	var searchRepo *search.TypesenseAdapter
	if tsClient, err := typesense.NewClient(&cfg.Typesense); err == nil {
		searchRepo = search.NewTypesenseAdapter(tsClient)
		if err := searchRepo.InitSchema(context.Background()); err != nil {
			log.Printf("Warning: failed to init Typesense schema: %v", err)
		}
	} else {
		log.Printf("Warning: Typesense unavailable, skipping index seed: %v", err)
	}

	userRepo := database.NewUserAdapter(pgClient)
	djRepo := database.NewDJAdapter(pgClient)
	calendarRepo := database.NewCalendarAdapter(pgClient)
	reviewRepo := database.NewReviewAdapter(pgClient)

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				calendar_entries,
				bookings,
				reviews,
				dj_profiles,
				users
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to truncate tables: %v", err)
		}
	}

	now := time.Now()

	seeds := []struct {
		name       string
		email      string
		city       string
		state      string
		genres     []string
		eventTypes []string
		minFee     float64
		plan       entities.Plan
		approval   entities.ApprovalStatus
		rating     float64
		reviews    int
	}{
		{"DJ Arjun", "arjun@djbook.dev", "Mumbai", "Maharashtra", []string{"bollywood", "house"}, []string{"wedding", "corporate"}, 25000, entities.PlanElite, entities.ApprovalStatusApproved, 4.8, 32},
		{"DJ Kiara", "kiara@djbook.dev", "Delhi", "Delhi", []string{"edm", "techno"}, []string{"club", "festival"}, 40000, entities.PlanPro, entities.ApprovalStatusApproved, 4.6, 21},
		{"DJ Rhea", "rhea@djbook.dev", "Bangalore", "Karnataka", []string{"hip-hop", "commercial"}, []string{"college", "private party"}, 15000, entities.PlanFree, entities.ApprovalStatusApproved, 4.2, 9},
		{"DJ Vish", "vish@djbook.dev", "Goa", "Goa", []string{"psytrance", "techno"}, []string{"beach party", "festival"}, 55000, entities.PlanPro, entities.ApprovalStatusApproved, 4.9, 44},
		{"DJ Neel", "neel@djbook.dev", "Pune", "Maharashtra", []string{"bollywood", "punjabi"}, []string{"wedding", "sangeet"}, 18000, entities.PlanFree, entities.ApprovalStatusPending, 0, 0},
	}

	cityCoords := map[string]entities.Location{
		"Mumbai":    {Latitude: 19.0760, Longitude: 72.8777},
		"Delhi":     {Latitude: 28.7041, Longitude: 77.1025},
		"Bangalore": {Latitude: 12.9716, Longitude: 77.5946},
		"Goa":       {Latitude: 15.2993, Longitude: 74.1240},
		"Pune":      {Latitude: 18.5204, Longitude: 73.8567},
	}

	for _, seed := range seeds {
		profileID := uuid.New().String()
		userID := uuid.New().String()

		user := &entities.User{
			ID:          userID,
			Name:        seed.name,
			Email:       seed.email,
			Credential:  "dev-password",
			Role:        entities.RoleDJ,
			DJProfileID: &profileID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Printf("Failed to seed user %s: %v", seed.name, err)
			continue
		}

		location := cityCoords[seed.city]
		profile := &entities.DJProfile{
			ID:             profileID,
			UserID:         userID,
			Name:           seed.name,
			Slug:           utils.Slugify(seed.name),
			City:           seed.city,
			State:          seed.state,
			Genres:         seed.genres,
			EventTypes:     seed.eventTypes,
			MinFee:         seed.minFee,
			Bio:            seed.name + " brings the floor alive.",
			AvgRating:      seed.rating,
			ReviewCount:    seed.reviews,
			ApprovalStatus: seed.approval,
			Location:       &location,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		profile.ApplyPlan(seed.plan)

		if err := djRepo.Create(ctx, profile); err != nil {
			log.Printf("Failed to seed profile %s: %v", seed.name, err)
			continue
		}

		// Block a couple of upcoming weekends manually
		for week := 1; week <= 2; week++ {
			day := entities.DayOf(now.AddDate(0, 0, week*7))
			entry := &entities.CalendarEntry{
				ID:          uuid.New().String(),
				DJProfileID: profileID,
				Date:        day,
				Status:      entities.CalendarStatusUnavailable,
				Title:       "Personal",
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := calendarRepo.Put(ctx, repositories.WriteAuthorityManual, entry); err != nil {
				log.Printf("Failed to seed calendar entry for %s: %v", seed.name, err)
			}
		}

		if seed.reviews > 0 {
			review := &entities.Review{
				ID:           uuid.New().String(),
				DJProfileID:  profileID,
				CustomerID:   uuid.New().String(),
				CustomerName: "Seed Customer",
				Rating:       5,
				Comment:      "Great energy, packed dance floor all night.",
				CreatedAt:    now,
			}
			if err := reviewRepo.Create(ctx, review); err != nil {
				log.Printf("Failed to seed review for %s: %v", seed.name, err)
			}
		}

		if searchRepo != nil && profile.PubliclyVisible() {
			if err := searchRepo.Index(ctx, profile); err != nil {
				log.Printf("Failed to index %s: %v", seed.name, err)
			}
		}

		log.Printf("Seeded %s (%s)", seed.name, seed.city)
	}

	customer := &entities.User{
		ID:         uuid.New().String(),
		Name:       "Test Customer",
		Email:      "customer@djbook.dev",
		Credential: "dev-password",
		Role:       entities.RoleCustomer,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := userRepo.Create(ctx, customer); err != nil {
		log.Printf("Failed to seed customer: %v", err)
	} else {
		log.Printf("Seeded customer account %s", customer.Email)
	}

	log.Println("Seeding complete.")
}
