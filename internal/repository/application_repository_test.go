package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/justsurfingit/jobmarket/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return db, mock
}

func newApplication() *models.Application {
	return &models.Application{UserID: uuid.New(), JobID: uuid.New()}
}

func TestInsertApplicationIgnoresConflictOnUserAndJob(t *testing.T) {
	db, _ := newMockDB(t)

	tx := insertApplication(db.Session(&gorm.Session{DryRun: true}), newApplication())
	if tx.Error != nil {
		t.Fatalf("unexpected error: %v", tx.Error)
	}
	sql := tx.Statement.SQL.String()
	if !strings.HasPrefix(sql, `INSERT INTO "applications"`) {
		t.Fatalf("unexpected statement: %s", sql)
	}
	if !strings.Contains(sql, `ON CONFLICT ("user_id","job_id") DO NOTHING`) {
		t.Fatalf("missing conflict clause: %s", sql)
	}
}

func TestCreateApplication(t *testing.T) {
	insert := regexp.QuoteMeta(`INSERT INTO "applications"`) + `.*` +
		regexp.QuoteMeta(`ON CONFLICT ("user_id","job_id") DO NOTHING`)

	tests := []struct {
		name     string
		affected int64
		execErr  error
		want     error
	}{
		{name: "inserted", affected: 1},
		{name: "pair already exists", affected: 0, want: ErrDuplicate},
		{name: "driver error", execErr: errors.New("connection reset")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			exp := mock.ExpectExec(insert)
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tt.affected))
			}

			app := newApplication()
			err := NewApplicationRepository(db).Create(context.Background(), app)

			switch {
			case tt.execErr != nil:
				if err == nil || !strings.Contains(err.Error(), tt.execErr.Error()) {
					t.Fatalf("expected driver error, got %v", err)
				}
			case !errors.Is(err, tt.want):
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if app.ID == uuid.Nil {
				t.Fatal("id not assigned before insert")
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatal(err)
			}
		})
	}
}
