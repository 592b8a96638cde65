package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

type SWContext string

const (
	DBContextURL       SWContext = "spendwise-backend-url"
	DBContextFormatter SWContext = "spendwise-backend-formatter"
)

// Connect opens the SQLite database at the given path, migrates the schema
// and sets DB.
func Connect(dsn string) error {
	dsn = fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dsn)
	db, err := gorm.Open(sqlite.Open(dsn), config())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// SQLite allows a single writer. With more than one connection,
	// concurrent writes fail with SQLITE_BUSY.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	return setup(db)
}

// ConnectPostgres connects to a PostgreSQL server, migrates the schema
// and sets DB.
func ConnectPostgres(dsn string) error {
	db, err := gorm.Open(postgres.Open(dsn), config())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return setup(db)
}

func config() *gorm.Config {
	return &gorm.Config{
		Logger: &logger{
			Logger: log.Logger,
		},
	}
}

// setup migrates the schema, registers the error callbacks and
// sets the exported variable.
func setup(db *gorm.DB) error {
	err := migrate(db)
	if err != nil {
		return err
	}

	callbacks := []struct {
		register func(name string, fn func(*gorm.DB)) error
		name     string
		fn       func(*gorm.DB)
	}{
		{db.Callback().Query().After("*").Register, "spendwise:after_query", queryCallback},
		{db.Callback().Query().After("*").Register, "spendwise:after_query_general", generalCallback},
		{db.Callback().Create().After("*").Register, "spendwise:after_create", createUpdateCallback},
		{db.Callback().Create().After("*").Register, "spendwise:after_create_general", generalCallback},
		{db.Callback().Update().After("*").Register, "spendwise:after_update", createUpdateCallback},
		{db.Callback().Update().After("*").Register, "spendwise:after_update_general", generalCallback},
		{db.Callback().Delete().After("*").Register, "spendwise:after_delete_general", generalCallback},
		{db.Callback().Row().After("*").Register, "spendwise:after_row_general", generalCallback},
	}

	for _, c := range callbacks {
		if err := c.register(c.name, c.fn); err != nil {
			return err
		}
	}

	DB = db
	return nil
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		// and replace "_" with "[space]"
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")

		// Remove plural "s"
		name = regexp.MustCompile("s$").ReplaceAllString(name, "")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// uniqueViolations maps the tables with a unique constraint to the error
// returned when it is violated.
var uniqueViolations = map[string]error{
	"user_cards":  ErrUserCardExists,
	"user_spends": ErrUserSpendExists,
	"card_spends": ErrCardSpendExists,
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	e, ok := uniqueViolations[db.Statement.Table]
	if !ok {
		return
	}

	// SQLite reports primary key violations as unique constraint failures
	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed") {
		db.Error = e
		return
	}

	var pgErr *pgconn.PgError
	if errors.As(db.Error, &pgErr) && pgErr.Code == "23505" {
		db.Error = e
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	var pgErr *pgconn.PgError

	// "sql: database is closed" is hard-coded in the sql module
	if db.Error.Error() == "sql: database is closed" || reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) || errors.As(db.Error, &pgErr) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral
	}
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) (err error) {
	err = db.AutoMigrate(User{}, Card{}, Spend{}, UserCard{}, UserSpend{}, CardSpend{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
