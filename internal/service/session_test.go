package service

import (
	"context"
	"errors"
	"testing"

	"SiteOK/internal/model/dto"
	pkgerrors "SiteOK/pkg/errors"
)

func openReq(code string) dto.CreateLogRequest {
	return dto.CreateLogRequest{
		ProjectCode: code,
		Name:        "Alice",
		Trade:       "Electrician",
		TimeIn:      "08:00",
		Date:        "2025-01-15",
	}
}

func strptr(s string) *string { return &s }
func intptr(n int) *int       { return &n }

func TestOpenSession(t *testing.T) {
	db := newTestDB(t)
	seedProject(t, db, "SITE-001")
	sink := &recordingSink{}
	svc := NewSessionService(db, sink)
	ctx := context.Background()

	log, err := svc.Open(ctx, openReq("SITE-001"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if !log.Open() {
		t.Error("new session should have no time_out")
	}
	if log.UserType != "Employee" {
		t.Errorf("user_type = %q, want Employee default", log.UserType)
	}
	if len(sink.opened) != 1 || sink.opened[0] != "Alice" {
		t.Errorf("expected one SessionOpened event for Alice, got %v", sink.opened)
	}
}

func TestOpenSessionCodeMatchIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	seedProject(t, db, "SITE-001")
	svc := NewSessionService(db, NopSink{})

	if _, err := svc.Open(context.Background(), openReq("  site-001 ")); err != nil {
		t.Fatalf("Open with lowercase padded code failed: %v", err)
	}
}

func TestOpenSessionInvalidProject(t *testing.T) {
	db := newTestDB(t)
	seedProject(t, db, "SITE-001")
	sink := &recordingSink{}
	svc := NewSessionService(db, sink)

	_, err := svc.Open(context.Background(), openReq("NOPE"))
	if !errors.Is(err, pkgerrors.InvalidProject) {
		t.Fatalf("err = %v, want InvalidProject", err)
	}

	// 失败的签到不留记录也不发事件
	var count int64
	db.Table("logs").Count(&count)
	if count != 0 {
		t.Errorf("log count = %d, want 0", count)
	}
	if len(sink.opened) != 0 {
		t.Errorf("no event expected, got %v", sink.opened)
	}
}

func TestOpenSessionValidation(t *testing.T) {
	db := newTestDB(t)
	seedProject(t, db, "SITE-001")
	svc := NewSessionService(db, NopSink{})

	req := openReq("SITE-001")
	req.Name = ""
	if _, err := svc.Open(context.Background(), req); !errors.Is(err, pkgerrors.ValidationError) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestCheckoutComputesHours(t *testing.T) {
	db := newTestDB(t)
	seedProject(t, db, "SITE-001")
	svc := NewSessionService(db, NopSink{})
	ctx := context.Background()

	log, err := svc.Open(ctx, openReq("SITE-001"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	result, err := svc.Checkout(ctx, log.ID, dto.CheckoutRequest{TimeOut: strptr("17:00")})
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	if result.Hours != 9.00 {
		t.Errorf("hours = %v, want 9.00", result.Hours)
	}
	if result.TimeOut != "17:00" {
		t.Errorf("time_out = %q, want 17:00", result.TimeOut)
	}
}

func TestCheckoutOvernightClampsToZero(t *testing.T) {
	db := newTestDB(t)
	seedProject(t, db, "SITE-001")
	svc := NewSessionService(db, NopSink{})
	ctx := context.Background()

	req := openReq("SITE-001")
	req.TimeIn = "22:00"
	log, err := svc.Open(ctx, req)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	// 跨夜不建模，time_out 早于 time_in 记 0 而不是负数
	result, err := svc.Checkout(ctx, log.ID, dto.CheckoutRequest{TimeOut: strptr("06:00")})
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	if result.Hours != 0 {
		t.Errorf("hours = %v, want 0", result.Hours)
	}
}

func TestCheckoutNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db, NopSink{})

	_, err := svc.Checkout(context.Background(), 999, dto.CheckoutRequest{})
	if !errors.Is(err, pkgerrors.LogNotFound) {
		t.Fatalf("err = %v, want LogNotFound", err)
	}
}

func TestCheckoutLastWriteWinsWithoutVersion(t *testing.T) {
	db := newTestDB(t)
	seedProject(t, db, "SITE-001")
	svc := NewSessionService(db, NopSink{})
	ctx := context.Background()

	log, err := svc.Open(ctx, openReq("SITE-001"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if _, err := svc.Checkout(ctx, log.ID, dto.CheckoutRequest{TimeOut: strptr("16:00")}); err != nil {
		t.Fatalf("first checkout failed: %v", err)
	}
	if _, err := svc.Checkout(ctx, log.ID, dto.CheckoutRequest{TimeOut: strptr("18:00")}); err != nil {
		t.Fatalf("second checkout failed: %v", err)
	}

	logs, err := svc.ListAll(ctx, log.ProjectID)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("log count = %d, want 1", len(logs))
	}
	if logs[0].TimeOut == nil || *logs[0].TimeOut != "18:00" {
		t.Errorf("time_out = %v, want 18:00 (last write wins)", logs[0].TimeOut)
	}
	if logs[0].Hours == nil || *logs[0].Hours != 10.00 {
		t.Errorf("hours = %v, want 10.00", logs[0].Hours)
	}
}

func TestCheckoutVersionConflict(t *testing.T) {
	db := newTestDB(t)
	seedProject(t, db, "SITE-001")
	svc := NewSessionService(db, NopSink{})
	ctx := context.Background()

	log, err := svc.Open(ctx, openReq("SITE-001"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if _, err := svc.Checkout(ctx, log.ID, dto.CheckoutRequest{TimeOut: strptr("16:00"), Version: intptr(0)}); err != nil {
		t.Fatalf("first checkout failed: %v", err)
	}

	// 第二个客户端拿的还是旧 version
	_, err = svc.Checkout(ctx, log.ID, dto.CheckoutRequest{TimeOut: strptr("18:00"), Version: intptr(0)})
	if !errors.Is(err, pkgerrors.VersionConflict) {
		t.Fatalf("err = %v, want VersionConflict", err)
	}
}

func TestReopenClearsCheckout(t *testing.T) {
	db := newTestDB(t)
	seedProject(t, db, "SITE-001")
	svc := NewSessionService(db, NopSink{})
	ctx := context.Background()

	log, err := svc.Open(ctx, openReq("SITE-001"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := svc.Checkout(ctx, log.ID, dto.CheckoutRequest{TimeOut: strptr("17:00")}); err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}

	if err := svc.Reopen(ctx, log.ID); err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}

	logs, _ := svc.ListAll(ctx, log.ProjectID)
	if logs[0].TimeOut != nil || logs[0].Hours != nil {
		t.Errorf("time_out/hours = %v/%v, want nil/nil after reopen", logs[0].TimeOut, logs[0].Hours)
	}
}

func TestListActiveExcludesClosed(t *testing.T) {
	db := newTestDB(t)
	seedProject(t, db, "SITE-001")
	svc := NewSessionService(db, NopSink{})
	ctx := context.Background()

	first, err := svc.Open(ctx, openReq("SITE-001"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	second := openReq("SITE-001")
	second.Name = "Bob"
	second.TimeIn = "09:00"
	if _, err := svc.Open(ctx, second); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	active, err := svc.ListActive(ctx, "SITE-001")
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("active count = %d, want 2", len(active))
	}
	// 同一天按 time_in 正序
	if active[0].Name != "Alice" || active[1].Name != "Bob" {
		t.Errorf("order = %s, %s; want Alice, Bob", active[0].Name, active[1].Name)
	}

	if _, err := svc.Checkout(ctx, first.ID, dto.CheckoutRequest{TimeOut: strptr("17:00")}); err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}

	active, _ = svc.ListActive(ctx, "SITE-001")
	if len(active) != 1 || active[0].Name != "Bob" {
		t.Errorf("active after checkout = %v, want only Bob", active)
	}
}

func TestUpdateSessionRecomputesHours(t *testing.T) {
	db := newTestDB(t)
	seedProject(t, db, "SITE-001")
	svc := NewSessionService(db, NopSink{})
	ctx := context.Background()

	log, err := svc.Open(ctx, openReq("SITE-001"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	updated, err := svc.Update(ctx, log.ID, dto.UpdateLogRequest{
		Name:    "Alice",
		Trade:   "Electrician",
		TimeIn:  "07:30",
		TimeOut: "12:00",
		Date:    "2025-01-15",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Hours == nil || *updated.Hours != 4.5 {
		t.Errorf("hours = %v, want 4.5", updated.Hours)
	}
}

func TestDeleteSession(t *testing.T) {
	db := newTestDB(t)
	seedProject(t, db, "SITE-001")
	svc := NewSessionService(db, NopSink{})
	ctx := context.Background()

	log, err := svc.Open(ctx, openReq("SITE-001"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if err := svc.Delete(ctx, log.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := svc.Delete(ctx, log.ID); !errors.Is(err, pkgerrors.LogNotFound) {
		t.Fatalf("second delete err = %v, want LogNotFound", err)
	}
}

func TestManualCreateWithCheckout(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db, "SITE-001")
	svc := NewSessionService(db, NopSink{})

	log, err := svc.ManualCreate(context.Background(), dto.ManualLogRequest{
		ProjectID: project.ID,
		Name:      "Carol",
		TimeIn:    "08:00",
		TimeOut:   "16:20",
		Date:      "2025-01-14",
	})
	if err != nil {
		t.Fatalf("ManualCreate failed: %v", err)
	}
	if log.Hours == nil || *log.Hours != 8.33 {
		t.Errorf("hours = %v, want 8.33", log.Hours)
	}
}

func TestManualCreateUnknownProject(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db, NopSink{})

	_, err := svc.ManualCreate(context.Background(), dto.ManualLogRequest{
		ProjectID: 42,
		Name:      "Carol",
		TimeIn:    "08:00",
		Date:      "2025-01-14",
	})
	if !errors.Is(err, pkgerrors.ProjectNotFound) {
		t.Fatalf("err = %v, want ProjectNotFound", err)
	}
}
