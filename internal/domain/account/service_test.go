package account

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

type mockRepo struct {
	accounts map[string]*Account
}

func (m *mockRepo) GetByUsername(ctx context.Context, username string) (*Account, error) {
	if a, ok := m.accounts[username]; ok {
		return a, nil
	}
	return nil, ErrNotFound
}

func (m *mockRepo) SaveAll(ctx context.Context, accounts []Account) error {
	return nil
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatal(err)
	}
	repo := &mockRepo{accounts: map[string]*Account{
		"tarun": {Username: "tarun", PasswordHash: hash, PatientID: "pat-1"},
	}}
	return NewService(repo, zerolog.Nop())
}

func TestAuthenticate_Success(t *testing.T) {
	svc := newTestService(t)

	acct, err := svc.Authenticate(context.Background(), "tarun", "correct horse")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if acct.PatientID != "pat-1" {
		t.Errorf("PatientID = %s, want pat-1", acct.PatientID)
	}
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Authenticate(context.Background(), "tarun", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	svc := newTestService(t)

	// Unknown users get the same error as wrong passwords.
	_, err := svc.Authenticate(context.Background(), "nobody", "anything")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}
