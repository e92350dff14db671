package service

import (
	"context"
	"errors"
	"testing"

	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/domain"
)

type fakeContactRepo struct {
	name, email, message string
	result               *domain.ContactMessage
	err                  error
}

func (f *fakeContactRepo) Create(ctx context.Context, name, email, message string) (*domain.ContactMessage, error) {
	f.name, f.email, f.message = name, email, message
	return f.result, f.err
}

type fakeContactNotifier struct {
	notified *domain.ContactMessage
	err      error
}

func (f *fakeContactNotifier) SendContactNotification(ctx context.Context, msg *domain.ContactMessage) error {
	f.notified = msg
	return f.err
}

func TestContactServiceSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the message and notifies the inbox", func(t *testing.T) {
		stored := &domain.ContactMessage{ID: 1, Name: "Asha", Email: "asha@example.com", Message: "Do you ship abroad?"}
		repo := &fakeContactRepo{result: stored}
		notifier := &fakeContactNotifier{}
		svc := NewContactService(repo, notifier)

		msg, err := svc.Submit(ctx, " Asha ", "Asha@Example.com", " Do you ship abroad? ")
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if repo.name != "Asha" || repo.email != "asha@example.com" || repo.message != "Do you ship abroad?" {
			t.Fatalf("stored %q %q %q", repo.name, repo.email, repo.message)
		}
		if msg != stored {
			t.Fatal("wrong message returned")
		}
		if notifier.notified != stored {
			t.Fatal("inbox not notified")
		}
	})

	t.Run("a failing notifier does not fail the submission", func(t *testing.T) {
		stored := &domain.ContactMessage{ID: 2}
		svc := NewContactService(&fakeContactRepo{result: stored}, &fakeContactNotifier{err: errors.New("smtp down")})
		if _, err := svc.Submit(ctx, "Asha", "asha@example.com", "Hello"); err != nil {
			t.Fatalf("Submit should swallow notifier errors, got %v", err)
		}
	})

	t.Run("rejects blank fields and bad emails", func(t *testing.T) {
		svc := NewContactService(&fakeContactRepo{}, nil)
		cases := [][3]string{
			{"", "asha@example.com", "Hello"},
			{"Asha", "not-an-email", "Hello"},
			{"Asha", "asha@example.com", "   "},
		}
		for i, tc := range cases {
			if _, err := svc.Submit(ctx, tc[0], tc[1], tc[2]); !errors.Is(err, ErrContactInvalid) {
				t.Errorf("case %d: want ErrContactInvalid, got %v", i, err)
			}
		}
	})
}
