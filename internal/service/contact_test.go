package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"SiteOK/internal/model/dto"
	pkgerrors "SiteOK/pkg/errors"
)

type fakeContactMailer struct {
	from    []string
	queries []string
	err     error
}

func (f *fakeContactMailer) SendContactQuery(fromEmail, query string) error {
	f.from = append(f.from, fromEmail)
	f.queries = append(f.queries, query)
	return f.err
}

func TestContactForwardsQuery(t *testing.T) {
	mailer := &fakeContactMailer{}
	svc := NewContactService(mailer)

	req := dto.ContactRequest{Email: "worker@site.test", Query: "The checkout button is greyed out"}
	if err := svc.Submit(context.Background(), req); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if len(mailer.queries) != 1 {
		t.Fatalf("sent %d mails, want 1", len(mailer.queries))
	}
	if mailer.from[0] != "worker@site.test" {
		t.Errorf("from = %q, want worker@site.test", mailer.from[0])
	}
	if mailer.queries[0] != "The checkout button is greyed out" {
		t.Errorf("query = %q", mailer.queries[0])
	}
}

func TestContactValidation(t *testing.T) {
	mailer := &fakeContactMailer{}
	svc := NewContactService(mailer)
	ctx := context.Background()

	cases := []dto.ContactRequest{
		{Email: "", Query: "help"},
		{Email: "worker@site.test", Query: ""},
		{Email: "   ", Query: "   "},
		{Email: "not-an-email", Query: "help"},
	}
	for _, req := range cases {
		err := svc.Submit(ctx, req)
		var def pkgerrors.Definition
		if !errors.As(err, &def) || def.Code != pkgerrors.ValidationError.Code {
			t.Errorf("Submit(%+v) = %v, want validation error", req, err)
		}
	}
	if len(mailer.queries) != 0 {
		t.Errorf("no mail should be sent for invalid input, got %d", len(mailer.queries))
	}
}

func TestContactMailFailure(t *testing.T) {
	mailer := &fakeContactMailer{err: fmt.Errorf("smtp down")}
	svc := NewContactService(mailer)

	err := svc.Submit(context.Background(), dto.ContactRequest{Email: "worker@site.test", Query: "help"})
	if !errors.Is(err, pkgerrors.EmailSendFailed) {
		t.Fatalf("Submit = %v, want EmailSendFailed", err)
	}
}
