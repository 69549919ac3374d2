package service

import (
	"context"
	"errors"
	"testing"

	"github.com/medilink/directory/internal/core/domain"
)

func TestChangeDoctorSecret_RotatesAndLogsOut(t *testing.T) {
	f := newFixture(scenarioStore())
	ctx := context.Background()

	if _, err := f.manager.Login(ctx, "d@x.com", "p1"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	ok, err := f.mutator.ChangeDoctorSecret(ctx, "d@x.com", "p1", "p2")
	if err != nil || !ok {
		t.Fatalf("expected success, got %v, %v", ok, err)
	}

	if _, err := f.manager.CurrentSession(ctx); !errors.Is(err, domain.ErrNoSession) {
		t.Errorf("session must be cleared after secret change, got %v", err)
	}
	if _, err := f.manager.Login(ctx, "d@x.com", "p1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("old secret must be rejected, got %v", err)
	}
	session, err := f.manager.Login(ctx, "d@x.com", "p2")
	if err != nil {
		t.Fatalf("new secret must be accepted: %v", err)
	}
	if session.SubjectID != "7" {
		t.Errorf("expected doctor 7, got %q", session.SubjectID)
	}
}

func TestChangeDoctorSecret_WrongCurrentSecret(t *testing.T) {
	f := newFixture(scenarioStore())
	ctx := context.Background()

	_, _ = f.manager.Login(ctx, "d@x.com", "p1")

	ok, err := f.mutator.ChangeDoctorSecret(ctx, "d@x.com", "nope", "p2")
	if err != nil || ok {
		t.Fatalf("expected (false, nil), got %v, %v", ok, err)
	}
	if f.creds.writes != 0 {
		t.Errorf("no write expected, got %d", f.creds.writes)
	}
	if f.creds.creds[0].Secret != "p1" {
		t.Error("stored secret must be unchanged")
	}
	if _, err := f.manager.CurrentSession(ctx); err != nil {
		t.Errorf("session must survive a rejected change: %v", err)
	}
}

func TestChangeDoctorSecret_BuiltinsIneligible(t *testing.T) {
	f := newFixture(scenarioStore())
	ctx := context.Background()

	for _, a := range domain.BuiltinAccounts() {
		ok, err := f.mutator.ChangeDoctorSecret(ctx, a.Identifier, a.Secret, "x")
		if err != nil || ok {
			t.Errorf("%s: expected (false, nil), got %v, %v", a.Identifier, ok, err)
		}
	}
	if f.creds.writes != 0 {
		t.Errorf("no write expected, got %d", f.creds.writes)
	}
}

func TestChangeDoctorSecret_ByUsername(t *testing.T) {
	store := scenarioStore()
	store.creds[0].Username = "drseven"
	f := newFixture(store)

	ok, err := f.mutator.ChangeDoctorSecret(context.Background(), "drseven", "p1", "p2")
	if err != nil || !ok {
		t.Fatalf("expected success, got %v, %v", ok, err)
	}
	if store.creds[0].Secret != "p2" {
		t.Errorf("expected p2, got %q", store.creds[0].Secret)
	}
}

func TestChangeDoctorSecret_EmptyNewSecret(t *testing.T) {
	f := newFixture(scenarioStore())

	ok, err := f.mutator.ChangeDoctorSecret(context.Background(), "d@x.com", "p1", "")
	if ok || !errors.Is(err, domain.ErrInvalidSecret) {
		t.Fatalf("expected ErrInvalidSecret, got %v, %v", ok, err)
	}
}

func TestChangeDoctorSecret_OrphanedCredential(t *testing.T) {
	store := scenarioStore()
	delete(store.profiles, "7")
	f := newFixture(store)

	ok, err := f.mutator.ChangeDoctorSecret(context.Background(), "d@x.com", "p1", "p2")
	if err != nil || ok {
		t.Fatalf("expected (false, nil), got %v, %v", ok, err)
	}
}

func TestChangeDoctorSecret_StorageErrors(t *testing.T) {
	t.Run("read", func(t *testing.T) {
		store := scenarioStore()
		store.listErr = errDiskGone
		f := newFixture(store)

		ok, err := f.mutator.ChangeDoctorSecret(context.Background(), "d@x.com", "p1", "p2")
		if ok || !errors.Is(err, domain.ErrStorage) {
			t.Fatalf("expected ErrStorage, got %v, %v", ok, err)
		}
	})

	t.Run("write", func(t *testing.T) {
		store := scenarioStore()
		store.writeErr = errDiskGone
		f := newFixture(store)

		ok, err := f.mutator.ChangeDoctorSecret(context.Background(), "d@x.com", "p1", "p2")
		if ok || !errors.Is(err, domain.ErrStorage) {
			t.Fatalf("expected ErrStorage, got %v, %v", ok, err)
		}
		if store.creds[0].Secret != "p1" {
			t.Error("secret must be unchanged after a failed write")
		}
	})

	t.Run("logout", func(t *testing.T) {
		f := newFixture(scenarioStore())
		f.sessions.clearErr = errDiskGone

		ok, err := f.mutator.ChangeDoctorSecret(context.Background(), "d@x.com", "p1", "p2")
		if !ok || err == nil {
			t.Fatalf("expected (true, error), got %v, %v", ok, err)
		}
		if f.creds.creds[0].Secret != "p2" {
			t.Error("secret must be changed even when logout fails")
		}
	})
}

// ---------------------------------------------------------------------------
// RegisterDoctor
// ---------------------------------------------------------------------------

func TestRegisterDoctor_ThenLogin(t *testing.T) {
	f := newFixture(scenarioStore())
	ctx := context.Background()

	err := f.mutator.RegisterDoctor(ctx,
		domain.DoctorProfile{ID: "9", Name: "Dr Nine", Specialty: "Cardiology"},
		domain.DoctorCredential{Username: "nine", Secret: "s9"},
	)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	session, err := f.manager.Login(ctx, "nine", "s9")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if session.SubjectID != "9" || session.DisplayName != "Dr Nine" {
		t.Errorf("unexpected session: %+v", session)
	}
	if f.creds.creds[1].DoctorID != "9" {
		t.Errorf("credential must be bound to the profile id, got %q", f.creds.creds[1].DoctorID)
	}
}

func TestRegisterDoctor_Validation(t *testing.T) {
	cases := []struct {
		name    string
		profile domain.DoctorProfile
		cred    domain.DoctorCredential
		want    error
	}{
		{"missing id", domain.DoctorProfile{Name: "X"}, domain.DoctorCredential{Email: "x@y", Secret: "s"}, domain.ErrInvalidProfile},
		{"missing name", domain.DoctorProfile{ID: "1"}, domain.DoctorCredential{Email: "x@y", Secret: "s"}, domain.ErrInvalidProfile},
		{"no identifier", domain.DoctorProfile{ID: "1", Name: "X"}, domain.DoctorCredential{Secret: "s"}, domain.ErrInvalidCredential},
		{"no secret", domain.DoctorProfile{ID: "1", Name: "X"}, domain.DoctorCredential{Email: "x@y"}, domain.ErrInvalidCredential},
		{"reserved", domain.DoctorProfile{ID: "1", Name: "X"}, domain.DoctorCredential{Username: "admin", Secret: "s"}, domain.ErrCredentialExists},
		{"taken", domain.DoctorProfile{ID: "1", Name: "X"}, domain.DoctorCredential{Email: "d@x.com", Secret: "s"}, domain.ErrCredentialExists},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(scenarioStore())
			err := f.mutator.RegisterDoctor(context.Background(), tc.profile, tc.cred)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if f.creds.writes != 0 {
				t.Errorf("no write expected, got %d", f.creds.writes)
			}
		})
	}
}

func TestRegisterDoctor_StorageError(t *testing.T) {
	store := scenarioStore()
	store.writeErr = errDiskGone
	f := newFixture(store)

	err := f.mutator.RegisterDoctor(context.Background(),
		domain.DoctorProfile{ID: "9", Name: "N"},
		domain.DoctorCredential{Email: "n@x.com", Secret: "s"},
	)
	if !errors.Is(err, domain.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}

func TestRegisterDoctor_ExistingProfileIDRejected(t *testing.T) {
	store := scenarioStore()
	store.profiles["7"] = domain.DoctorProfile{ID: "7", Name: "Dr Alice", Specialty: "Cardiology", Approved: true}
	f := newFixture(store)
	ctx := context.Background()

	err := f.mutator.RegisterDoctor(ctx,
		domain.DoctorProfile{ID: "7", Name: "Dr Bob"},
		domain.DoctorCredential{Email: "bob@x.com", Secret: "b"},
	)
	if !errors.Is(err, domain.ErrCredentialExists) {
		t.Fatalf("expected ErrCredentialExists, got %v", err)
	}
	if f.creds.writes != 0 {
		t.Errorf("no write expected, got %d", f.creds.writes)
	}

	p := store.profiles["7"]
	if p.Name != "Dr Alice" || p.Specialty != "Cardiology" || !p.Approved {
		t.Errorf("existing profile must be untouched, got %+v", p)
	}
	session, err := f.manager.Login(ctx, "d@x.com", "p1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if session.DisplayName != "Dr Alice" {
		t.Errorf("expected Dr Alice, got %q", session.DisplayName)
	}
}

func TestRegisterDoctor_ProfileLookupError(t *testing.T) {
	store := scenarioStore()
	store.getErr = errDiskGone
	f := newFixture(store)

	err := f.mutator.RegisterDoctor(context.Background(),
		domain.DoctorProfile{ID: "9", Name: "N"},
		domain.DoctorCredential{Email: "n@x.com", Secret: "s"},
	)
	if !errors.Is(err, domain.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	if f.creds.writes != 0 {
		t.Errorf("no write expected, got %d", f.creds.writes)
	}
}

func TestRegisterDoctor_CredentialWriteFailureRemovesProfile(t *testing.T) {
	store := scenarioStore()
	store.addErr = errDiskGone
	f := newFixture(store)

	err := f.mutator.RegisterDoctor(context.Background(),
		domain.DoctorProfile{ID: "9", Name: "Z"},
		domain.DoctorCredential{Email: "z@x.com", Secret: "s"},
	)
	if !errors.Is(err, domain.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	if _, ok := store.profiles["9"]; ok {
		t.Error("profile must not remain after the credential write failed")
	}
	if _, ok := store.profiles["7"]; !ok {
		t.Error("other profiles must be untouched")
	}
	if len(store.creds) != 1 {
		t.Errorf("expected 1 credential, got %d", len(store.creds))
	}
}
