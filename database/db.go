// Package database owns the todoapp SQLite store.
package database

import (
	"errors"
	"log"

	"github.com/todoapp/todoapp/config"
	"github.com/todoapp/todoapp/database/model"
	"github.com/todoapp/todoapp/util/crypto"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

func initModels() error {
	models := []any{
		&model.User{},
		&model.Todo{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			log.Printf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

// initAdmin seeds one admin account when the users table is empty and
// credentials are configured.
func initAdmin() error {
	username, password := config.GetAdminUsername(), config.GetAdminPassword()
	if username == "" || password == "" {
		return nil
	}
	empty, err := isTableEmpty("users")
	if err != nil {
		log.Printf("Error checking if users table is empty: %v", err)
		return err
	}
	if !empty {
		return nil
	}
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return err
	}
	user := &model.User{
		Username:     username,
		Email:        username + "@localhost",
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	return db.Create(user).Error
}

func isTableEmpty(tableName string) (bool, error) {
	var count int64
	err := db.Table(tableName).Count(&count).Error
	return count == 0, err
}

// InitDB opens (creating if needed) the database at dbPath and migrates it.
func InitDB(dbPath string) error {
	dbConfig := config.NewDatabaseConfig(dbPath)
	if err := dbConfig.ValidateConfig(); err != nil {
		return err
	}
	if err := dbConfig.EnsureDirectoryExists(); err != nil {
		return err
	}

	var gormLogger logger.Interface
	if config.IsDebug() {
		gormLogger = logger.Default
	} else {
		gormLogger = logger.Discard
	}

	c := &gorm.Config{
		Logger:      gormLogger,
		PrepareStmt: true,
	}

	var err error
	db, err = gorm.Open(sqlite.Open(dbConfig.GetDSN()), c)
	if err != nil {
		return err
	}

	if err := initModels(); err != nil {
		return err
	}
	return initAdmin()
}

// CloseDB checkpoints the WAL and closes the pool.
func CloseDB() error {
	if db == nil {
		return nil
	}
	if err := Checkpoint(); err != nil {
		log.Printf("error executing checkpoint: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	db = nil
	return sqlDB.Close()
}

func GetDB() *gorm.DB {
	return db
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// Checkpoint flushes the WAL into the main database file.
func Checkpoint() error {
	if db == nil {
		return errors.New("database not initialized")
	}
	return db.Exec("PRAGMA wal_checkpoint;").Error
}
