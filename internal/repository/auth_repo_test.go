package repository_test

import (
	"regexp"
	"testing"

	"icd_controller/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestUserRepository_Create_ReturnsLastInsertID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := repository.NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (username, password_hash) VALUES (?, ?)")).
		WithArgs("clinician", "hash").
		WillReturnResult(sqlmock.NewResult(7, 1))

	id, err := repo.Create("clinician", "hash")
	if err != nil {
		t.Fatalf("Create(): %v", err)
	}
	if id != 7 {
		t.Fatalf("id = %d, want 7", id)
	}
}

func TestUserRepository_GetByUsername_NotFoundIsNilNil(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := repository.NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, password_hash FROM users WHERE username = ?")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash"}))

	u, err := repo.GetByUsername("ghost")
	if err != nil {
		t.Fatalf("GetByUsername(): %v", err)
	}
	if u != nil {
		t.Fatalf("expected nil user, got %+v", u)
	}
}

func TestUserRepository_GetByUsername_ScansUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := repository.NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, password_hash FROM users WHERE username = ?")).
		WithArgs("clinician").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash"}).
			AddRow(3, "clinician", "hash"))

	u, err := repo.GetByUsername("clinician")
	if err != nil {
		t.Fatalf("GetByUsername(): %v", err)
	}
	if u == nil || u.ID != 3 || u.Username != "clinician" {
		t.Fatalf("user = %+v", u)
	}
}
