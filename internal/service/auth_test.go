package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"SiteOK/internal/model/dto"
	pkgerrors "SiteOK/pkg/errors"
)

func fakeIssuer(subjectID, role string) (string, int, error) {
	return "token-" + role + "-" + subjectID, 3600, nil
}

func newAuthSvc(t *testing.T) *AuthService {
	t.Helper()
	svc := NewAuthService(newTestDB(t))
	svc.issue = fakeIssuer
	return svc
}

func signupReq() dto.AdminSignupRequest {
	return dto.AdminSignupRequest{
		Email:     "boss@site.test",
		Password:  "hunter22",
		FirstName: "Pat",
		LastName:  "Mason",
	}
}

func TestAdminSignupAndLogin(t *testing.T) {
	svc := newAuthSvc(t)
	ctx := context.Background()

	if err := svc.AdminSignup(ctx, signupReq()); err != nil {
		t.Fatalf("AdminSignup failed: %v", err)
	}

	result, err := svc.AdminLogin(ctx, dto.LoginRequest{Email: "boss@site.test", Password: "hunter22"})
	if err != nil {
		t.Fatalf("AdminLogin failed: %v", err)
	}
	if result.User.Role != "admin" {
		t.Errorf("role = %q, want admin", result.User.Role)
	}
	if result.Token == "" {
		t.Error("expected a token")
	}
}

func TestAdminSignupDuplicateEmail(t *testing.T) {
	svc := newAuthSvc(t)
	ctx := context.Background()

	if err := svc.AdminSignup(ctx, signupReq()); err != nil {
		t.Fatalf("AdminSignup failed: %v", err)
	}
	if err := svc.AdminSignup(ctx, signupReq()); !errors.Is(err, pkgerrors.EmailTaken) {
		t.Fatalf("err = %v, want EmailTaken", err)
	}
}

func TestAdminLoginInvalidCredentials(t *testing.T) {
	svc := newAuthSvc(t)
	ctx := context.Background()

	if err := svc.AdminSignup(ctx, signupReq()); err != nil {
		t.Fatalf("AdminSignup failed: %v", err)
	}

	// 密码错和账号不存在给同一个错误
	_, err := svc.AdminLogin(ctx, dto.LoginRequest{Email: "boss@site.test", Password: "wrong"})
	if !errors.Is(err, pkgerrors.InvalidCredentials) {
		t.Fatalf("err = %v, want InvalidCredentials", err)
	}
	_, err = svc.AdminLogin(ctx, dto.LoginRequest{Email: "ghost@site.test", Password: "hunter22"})
	if !errors.Is(err, pkgerrors.InvalidCredentials) {
		t.Fatalf("err = %v, want InvalidCredentials", err)
	}
}

func TestAdminPasswordResetFlow(t *testing.T) {
	svc := newAuthSvc(t)
	ctx := context.Background()

	if err := svc.AdminSignup(ctx, signupReq()); err != nil {
		t.Fatalf("AdminSignup failed: %v", err)
	}

	token, err := svc.AdminForgotPassword(ctx, "boss@site.test")
	if err != nil {
		t.Fatalf("AdminForgotPassword failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a reset token for existing email")
	}

	// 不存在的邮箱不报错也不发令牌
	ghost, err := svc.AdminForgotPassword(ctx, "ghost@site.test")
	if err != nil || ghost != "" {
		t.Fatalf("unknown email: token=%q err=%v, want empty/nil", ghost, err)
	}

	err = svc.AdminResetPassword(ctx, dto.ResetPasswordRequest{Token: token, NewPassword: "new-pass"})
	if err != nil {
		t.Fatalf("AdminResetPassword failed: %v", err)
	}

	if _, err := svc.AdminLogin(ctx, dto.LoginRequest{Email: "boss@site.test", Password: "new-pass"}); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}

	// 令牌一次性
	err = svc.AdminResetPassword(ctx, dto.ResetPasswordRequest{Token: token, NewPassword: "again"})
	if !errors.Is(err, pkgerrors.ResetTokenInvalid) {
		t.Fatalf("err = %v, want ResetTokenInvalid", err)
	}
}

func TestAdminResetTokenExpiry(t *testing.T) {
	svc := newAuthSvc(t)
	ctx := context.Background()

	if err := svc.AdminSignup(ctx, signupReq()); err != nil {
		t.Fatalf("AdminSignup failed: %v", err)
	}

	token, err := svc.AdminForgotPassword(ctx, "boss@site.test")
	if err != nil {
		t.Fatalf("AdminForgotPassword failed: %v", err)
	}

	expired := time.Now().Add(-time.Minute)
	if err := svc.db.Table("admins").Where("email = ?", "boss@site.test").
		Update("reset_expires", expired).Error; err != nil {
		t.Fatalf("failed to expire token: %v", err)
	}

	err = svc.AdminResetPassword(ctx, dto.ResetPasswordRequest{Token: token, NewPassword: "new-pass"})
	if !errors.Is(err, pkgerrors.ResetTokenInvalid) {
		t.Fatalf("err = %v, want ResetTokenInvalid", err)
	}
}

func TestGuardSignupLoginAndAssignment(t *testing.T) {
	svc := newAuthSvc(t)
	ctx := context.Background()

	err := svc.GuardSignup(ctx, dto.GuardSignupRequest{
		Name:     "Sam",
		Email:    "sam@site.test",
		Password: "gatekeeper",
	})
	if err != nil {
		t.Fatalf("GuardSignup failed: %v", err)
	}

	result, err := svc.GuardLogin(ctx, dto.LoginRequest{Email: "sam@site.test", Password: "gatekeeper"})
	if err != nil {
		t.Fatalf("GuardLogin failed: %v", err)
	}
	if result.User.Role != "guard" {
		t.Errorf("role = %q, want guard", result.User.Role)
	}

	guards, err := svc.ListGuards(ctx)
	if err != nil {
		t.Fatalf("ListGuards failed: %v", err)
	}
	if len(guards) != 1 || guards[0].Email != "sam@site.test" {
		t.Fatalf("unexpected guard list: %+v", guards)
	}

	projectID := int64(7)
	if err := svc.AssignGuard(ctx, guards[0].ID, &projectID); err != nil {
		t.Fatalf("AssignGuard failed: %v", err)
	}
	if err := svc.AssignGuard(ctx, 999, &projectID); !errors.Is(err, pkgerrors.GuardNotFound) {
		t.Fatalf("err = %v, want GuardNotFound", err)
	}

	if err := svc.DeleteGuard(ctx, guards[0].ID); err != nil {
		t.Fatalf("DeleteGuard failed: %v", err)
	}
	if err := svc.DeleteGuard(ctx, guards[0].ID); !errors.Is(err, pkgerrors.GuardNotFound) {
		t.Fatalf("err = %v, want GuardNotFound", err)
	}
}
