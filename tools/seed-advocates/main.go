package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/md-rashed-zaman/advobook/libs/config"
	"github.com/md-rashed-zaman/advobook/libs/db"
	"github.com/md-rashed-zaman/advobook/libs/runtime"
)

type seedAdvocate struct {
	firstName         string
	lastName          string
	city              string
	degree            string
	specialties       []string
	yearsOfExperience int
	phoneNumber       int64
}

var seedData = []seedAdvocate{
	{"Jane", "Smith", "New York", "MD", []string{"Bipolar", "LGBTQ", "Medication/Prescribing"}, 10, 5551234567},
	{"John", "Doe", "Los Angeles", "PhD", []string{"Trauma & PTSD", "Personality disorders"}, 8, 5559876543},
	{"Alice", "Johnson", "Chicago", "MSW", []string{"Pediatrics", "Learning disorders"}, 5, 5554567890},
	{"Michael", "Brown", "Houston", "MD", []string{"Substance use/abuse", "Men's issues"}, 12, 5556543210},
	{"Emily", "Davis", "Phoenix", "PhD", []string{"Sleep issues", "Relationship issues"}, 7, 5553210987},
	{"Chris", "Martinez", "Philadelphia", "MSW", []string{"Domestic abuse", "Grief"}, 9, 5557890123},
	{"Jessica", "Taylor", "San Antonio", "MD", []string{"Schizophrenia and psychotic disorders", "Life coaching"}, 11, 5554561234},
	{"David", "Harris", "San Diego", "PhD", []string{"Weight loss & nutrition", "Eating disorders"}, 6, 5557891234},
	{"Laura", "Clark", "Dallas", "MSW", []string{"Diabetic diet and nutrition", "Coaching"}, 4, 5550123456},
	{"Daniel", "Lewis", "San Jose", "MD", []string{"Suicide history/attempts", "Trauma & PTSD"}, 13, 5553217654},
}

func main() {
	config.Load()
	logger := runtime.NewLogger("seed-advocates")

	databaseURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		logger.Error("bad config", "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.Open(ctx, databaseURL)
	if err != nil {
		logger.Error("database connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	for _, a := range seedData {
		specialties, err := json.Marshal(a.specialties)
		if err != nil {
			logger.Error("specialties marshal failed", "err", err)
			os.Exit(1)
		}
		_, err = pool.Exec(ctx, `
			INSERT INTO advocates (first_name, last_name, city, degree, payload, years_of_experience, phone_number)
			VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7)
			ON CONFLICT DO NOTHING
		`, a.firstName, a.lastName, a.city, a.degree, string(specialties), a.yearsOfExperience, a.phoneNumber)
		if err != nil {
			logger.Error("advocate insert failed", "first_name", a.firstName, "err", err)
			os.Exit(1)
		}
	}

	logger.Info("seed complete", "advocates", len(seedData))
}
