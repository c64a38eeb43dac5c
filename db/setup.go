package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/taskline-dev/taskline/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDatabase opens the configured database. Postgres is the default;
// mysql is supported because existing deployments run on it.
func ConnectDatabase(driver, dsn string) error {
	var err error

	switch driver {
	case "", "postgres":
		// Postgres goes through lib/pq so constraint failures surface
		// as *pq.Error, the type the store's error translation matches.
		var conn *sql.DB
		conn, err = sql.Open("postgres", dsn)
		if err != nil {
			return err
		}
		DB, err = gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{})
	case "mysql":
		DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	models := []interface{}{
		&models.User{},
		&models.Project{},
		&models.Sprint{},
		&models.Issue{},
		&models.Comment{},
		&models.Worklog{},
		&models.Attachment{},
	}

	migrator := DB.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := DB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}
