package service

import (
	"testing"

	"icd_controller/internal/models"
)

type fakeUserRepo struct {
	nextID int
	users  map[string]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[string]models.User{}}
}

func (f *fakeUserRepo) Create(username, hash string) (int, error) {
	id := f.nextID
	f.nextID++
	f.users[username] = models.User{ID: id, Username: username, PasswordHash: hash}
	return id, nil
}

func (f *fakeUserRepo) GetByUsername(username string) (*models.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func TestAuthService_SignUpAndTokenRoundTrip(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	id, err := svc.SignUp("clinician", "secret")
	if err != nil {
		t.Fatalf("SignUp(): %v", err)
	}

	token, err := svc.GenerateToken("clinician", "secret")
	if err != nil {
		t.Fatalf("GenerateToken(): %v", err)
	}

	gotID, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken(): %v", err)
	}
	if gotID != id {
		t.Fatalf("user id = %d, want %d", gotID, id)
	}
}

func TestAuthService_RejectsBadCredentials(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())
	if _, err := svc.SignUp("clinician", "secret"); err != nil {
		t.Fatalf("SignUp(): %v", err)
	}

	if _, err := svc.GenerateToken("clinician", "wrong"); err == nil {
		t.Fatalf("expected an error for a wrong password")
	}
	if _, err := svc.GenerateToken("ghost", "secret"); err == nil {
		t.Fatalf("expected an error for an unknown user")
	}
}

func TestAuthService_RejectsEmptyPassword(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())
	if _, err := svc.SignUp("clinician", "  "); err == nil {
		t.Fatalf("expected an error for a blank password")
	}
}

func TestAuthService_RejectsGarbageToken(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())
	if _, err := svc.ParseToken("not-a-token"); err == nil {
		t.Fatalf("expected an error for a malformed token")
	}
}
