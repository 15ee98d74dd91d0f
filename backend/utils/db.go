package utils

import (
	"fmt"

	"walletxp/backend/config"
	"walletxp/backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.UserProgress{},
		&models.LoginHistory{},
		&models.Expense{},
		&models.Budget{},
		&models.SavingGoal{},
		&models.SavingLog{},
		&models.Challenge{},
		&models.UserChallenge{},
		&models.ChallengeHistory{},
		&models.Lesson{},
		&models.Coupon{},
		&models.UserCoupon{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
