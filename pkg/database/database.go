package database

import (
	"fmt"
	"log"

	"github.com/SilverKain/Orthography/internal/config"
	"github.com/SilverKain/Orthography/internal/docstore"
	"github.com/SilverKain/Orthography/internal/model"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// Учебные данные живут в документной таблице, реляционная схема
	// нужна только аккаунтам.
	err = db.AutoMigrate(
		&model.User{},
		&docstore.DocumentRow{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")
	return db, nil
}
