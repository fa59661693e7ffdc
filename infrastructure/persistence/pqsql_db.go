package persistence

import (
	"database/sql"
	"fmt"

	"ttphotos/infrastructure/configuration"

	_ "github.com/lib/pq"
)

// NewPostgreSQLDB opens the schedule store database. A full DATABASE_URL
// connection string wins over the discrete settings.
func NewPostgreSQLDB() (*sql.DB, error) {
	conf := configuration.C.Database.Psql

	dsn := conf.URL
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			conf.Host, conf.Port, conf.User, conf.Password, conf.Name)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}
