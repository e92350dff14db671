package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/domain"
	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/repository/ports"
)

var ErrContactInvalid = errors.New("name, email and message are required")

type ContactService struct {
	contacts ports.ContactRepository
	notifier ContactNotifier
}

func NewContactService(contacts ports.ContactRepository, notifier ContactNotifier) *ContactService {
	return &ContactService{contacts: contacts, notifier: notifier}
}

func (s *ContactService) Submit(ctx context.Context, name, email, message string) (*domain.ContactMessage, error) {
	name = strings.TrimSpace(name)
	message = strings.TrimSpace(message)
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, ErrContactInvalid
	}
	if name == "" || message == "" {
		return nil, ErrContactInvalid
	}

	msg, err := s.contacts.Create(ctx, name, normalized, message)
	if err != nil {
		return nil, err
	}

	// Notification is best effort; the stored message is the contract.
	if s.notifier != nil {
		if err := s.notifier.SendContactNotification(ctx, msg); err != nil {
			log.Printf("contact notification failed: %v", err)
		}
	}
	return msg, nil
}
