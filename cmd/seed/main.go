package main

import (
	"context"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"homeservice/internal/database"
	"homeservice/internal/domain"
	"homeservice/internal/repository"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "homeservice.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (children first to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM ratings")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM services")
	db.Exec("DELETE FROM workers")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	workers := repository.NewWorkerRepository(db)
	services := repository.NewServiceRepository(db)
	bookings := repository.NewBookingRepository(db)
	ratings := repository.NewRatingRepository(db)

	log.Println("Creating users...")
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	alice := &domain.User{Username: "alice", Email: "alice@example.com", PasswordHash: string(hash), Role: domain.RoleUser}
	carol := &domain.User{Username: "carol", Email: "carol@example.com", PasswordHash: string(hash), Role: domain.RoleUser}
	bob := &domain.User{Username: "bob_plumber", Email: "bob@example.com", PasswordHash: string(hash), Role: domain.RoleWorker}
	dave := &domain.User{Username: "dave_electric", Email: "dave@example.com", PasswordHash: string(hash), Role: domain.RoleWorker}
	for _, u := range []*domain.User{alice, carol, bob, dave} {
		if err := users.Create(ctx, u); err != nil {
			log.Fatal("user seed failed:", err)
		}
	}

	log.Println("Creating workers and services...")
	bobWorker := &domain.Worker{
		OwnerID:    &bob.ID,
		Name:       "Bob the Plumber",
		Phone:      "+15550100",
		Profession: "Plumber",
		Experience: "8 years",
		Location:   "Bangalore",
		Bio:        "Residential plumbing, repairs and installations.",
		IsActive:   true,
	}
	daveWorker := &domain.Worker{
		OwnerID:    &dave.ID,
		Name:       "Dave Electric",
		Phone:      "+15550101",
		Profession: "Electrician",
		Experience: "5 years",
		Location:   "Bangalore",
		IsActive:   true,
	}
	for _, w := range []*domain.Worker{bobWorker, daveWorker} {
		if err := workers.Create(ctx, w); err != nil {
			log.Fatal("worker seed failed:", err)
		}
	}

	plumbing := &domain.Service{WorkerID: bobWorker.ID, Name: "Plumbing", Description: "Leak fixing and pipe work", Price: 100.00}
	drains := &domain.Service{WorkerID: bobWorker.ID, Name: "Drain cleaning", Price: 60.00}
	wiring := &domain.Service{WorkerID: daveWorker.ID, Name: "Wiring", Description: "Home rewiring", Price: 150.00}
	for _, s := range []*domain.Service{plumbing, drains, wiring} {
		if err := services.Create(ctx, s); err != nil {
			log.Fatal("service seed failed:", err)
		}
	}

	log.Println("Creating bookings and ratings...")
	b := &domain.Booking{
		UserID:    alice.ID,
		WorkerID:  bobWorker.ID,
		ServiceID: plumbing.ID,
		Date:      "2024-01-01",
		Time:      "10:00",
		Notes:     "Kitchen sink leaks",
		Status:    domain.BookingPending,
	}
	if err := bookings.Create(ctx, b); err != nil {
		log.Fatal("booking seed failed:", err)
	}

	for _, rv := range []*domain.Rating{
		{WorkerID: bobWorker.ID, UserID: alice.ID, Rating: 5, Review: "Fast and tidy."},
		{WorkerID: bobWorker.ID, UserID: carol.ID, Rating: 4, Review: "Good work, slightly late."},
		{WorkerID: daveWorker.ID, UserID: alice.ID, Rating: 4},
	} {
		if _, _, err := ratings.Submit(ctx, rv); err != nil {
			log.Fatal("rating seed failed:", err)
		}
	}

	log.Println("Seed complete.")
}
