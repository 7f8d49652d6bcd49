package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"mergington-project/activities-service/repositories"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	logger := logrus.New()

	repo := repositories.NewActivityRepo(os.Getenv("MONGO_URL"), logger)

	ctx := context.Background()
	if err := repo.Connect(ctx); err != nil {
		fmt.Println("Failed to connect to MongoDB. Please ensure MongoDB is running.")
		fmt.Println("Set MONGO_URL if using a remote instance.")
		os.Exit(1)
	}
	defer repo.Close(ctx)

	loaded, total := loadActivities(ctx, repo)

	fmt.Printf("Migration complete: %d/%d activities loaded\n", loaded, total)
	if loaded != total {
		os.Exit(1)
	}
}
