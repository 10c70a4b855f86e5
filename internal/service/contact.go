package service

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"SiteOK/internal/model/dto"
	"SiteOK/pkg/email"
	pkgerrors "SiteOK/pkg/errors"
	"SiteOK/pkg/logger"
	"SiteOK/utils"
)

var (
	contactService *ContactService
	contactOnce    sync.Once
)

func Contact() *ContactService {
	contactOnce.Do(func() {
		contactService = NewContactService(smtpContactMailer{})
	})
	return contactService
}

// ContactMailer 咨询邮件出口，单测换掉避免真的连 SMTP
type ContactMailer interface {
	SendContactQuery(fromEmail, query string) error
}

type smtpContactMailer struct{}

func (smtpContactMailer) SendContactQuery(fromEmail, query string) error {
	return email.SendContactQuery(fromEmail, query)
}

// ContactService 把工人端的咨询转发到支持邮箱
type ContactService struct {
	mailer ContactMailer
}

func NewContactService(mailer ContactMailer) *ContactService {
	return &ContactService{mailer: mailer}
}

func (s *ContactService) Submit(ctx context.Context, req dto.ContactRequest) error {
	userEmail := strings.TrimSpace(req.Email)
	query := strings.TrimSpace(req.Query)

	if userEmail == "" || query == "" {
		return pkgerrors.ValidationError.WithMessage("Email and query are required")
	}
	if !utils.ValidateEmail(userEmail) {
		return pkgerrors.ValidationError.WithMessage("Invalid email format")
	}

	if err := s.mailer.SendContactQuery(userEmail, query); err != nil {
		logger.Logger.Error("Failed to forward contact query",
			zap.String("from", userEmail),
			zap.Error(err),
		)
		return pkgerrors.EmailSendFailed
	}

	return nil
}
