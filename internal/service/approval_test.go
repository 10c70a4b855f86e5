package service

import (
	"context"
	"errors"
	"testing"

	"SiteOK/internal/model/dto"
	pkgerrors "SiteOK/pkg/errors"
)

func fileReq() dto.CreateDateRequest {
	return dto.CreateDateRequest{
		ProjectCode:   "SITE-001",
		UserName:      "Jane",
		RequestedDate: "2025-01-01",
		Reason:        "Forgot to check in",
	}
}

// 完整走一遍：提交 -> pending -> 批准 -> approved，且不再回退
func TestApprovalLifecycle(t *testing.T) {
	db := newTestDB(t)
	sink := &recordingSink{}
	svc := NewApprovalService(db, sink)
	ctx := context.Background()

	created, err := svc.FileRequest(ctx, fileReq())
	if err != nil {
		t.Fatalf("FileRequest failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected a request id")
	}
	if len(sink.filed) != 1 {
		t.Errorf("expected one ApprovalRequested event, got %d", len(sink.filed))
	}

	status, err := svc.GetStatus(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetStatus failed: %v", err)
	}
	if status.Status != "pending" {
		t.Errorf("status = %q, want pending", status.Status)
	}

	if err := svc.Decide(ctx, created.ID, "approved"); err != nil {
		t.Fatalf("Decide failed: %v", err)
	}

	status, err = svc.GetStatus(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetStatus failed: %v", err)
	}
	if status.Status != "approved" {
		t.Errorf("status = %q, want approved", status.Status)
	}

	// 终态不回退：再裁返回 ALREADY_DECIDED，状态保持 approved
	err = svc.Decide(ctx, created.ID, "rejected")
	if !errors.Is(err, pkgerrors.AlreadyDecided) {
		t.Fatalf("err = %v, want AlreadyDecided", err)
	}

	status, _ = svc.GetStatus(ctx, created.ID)
	if status.Status != "approved" {
		t.Errorf("status = %q, want approved after rejected re-decide", status.Status)
	}
}

func TestFileRequestValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewApprovalService(db, NopSink{})

	req := fileReq()
	req.RequestedDate = ""
	if _, err := svc.FileRequest(context.Background(), req); !errors.Is(err, pkgerrors.ValidationError) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestFileRequestAllowsDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewApprovalService(db, NopSink{})
	ctx := context.Background()

	first, err := svc.FileRequest(ctx, fileReq())
	if err != nil {
		t.Fatalf("FileRequest failed: %v", err)
	}
	second, err := svc.FileRequest(ctx, fileReq())
	if err != nil {
		t.Fatalf("duplicate FileRequest failed: %v", err)
	}
	if first.ID == second.ID {
		t.Error("duplicate filings should create distinct requests")
	}
}

func TestDecideInvalidValue(t *testing.T) {
	db := newTestDB(t)
	svc := NewApprovalService(db, NopSink{})
	ctx := context.Background()

	created, err := svc.FileRequest(ctx, fileReq())
	if err != nil {
		t.Fatalf("FileRequest failed: %v", err)
	}

	for _, decision := range []string{"maybe", "pending", "", "APPROVED"} {
		if err := svc.Decide(ctx, created.ID, decision); !errors.Is(err, pkgerrors.InvalidDecision) {
			t.Errorf("Decide(%q) err = %v, want InvalidDecision", decision, err)
		}
	}

	// 非法裁决不触碰状态
	status, _ := svc.GetStatus(ctx, created.ID)
	if status.Status != "pending" {
		t.Errorf("status = %q, want pending", status.Status)
	}
}

func TestDecideNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewApprovalService(db, NopSink{})

	if err := svc.Decide(context.Background(), 404, "approved"); !errors.Is(err, pkgerrors.RequestNotFound) {
		t.Fatalf("err = %v, want RequestNotFound", err)
	}
}

func TestGetStatusNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewApprovalService(db, NopSink{})

	if _, err := svc.GetStatus(context.Background(), 404); !errors.Is(err, pkgerrors.RequestNotFound) {
		t.Fatalf("err = %v, want RequestNotFound", err)
	}
}

func TestListPendingNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewApprovalService(db, NopSink{})
	ctx := context.Background()

	first, _ := svc.FileRequest(ctx, fileReq())

	second := fileReq()
	second.UserName = "Joe"
	filed, err := svc.FileRequest(ctx, second)
	if err != nil {
		t.Fatalf("FileRequest failed: %v", err)
	}

	if err := svc.Decide(ctx, first.ID, "rejected"); err != nil {
		t.Fatalf("Decide failed: %v", err)
	}

	pending, err := svc.ListPending(ctx)
	if err != nil {
		t.Fatalf("ListPending failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending count = %d, want 1", len(pending))
	}
	if pending[0].ID != filed.ID {
		t.Errorf("pending[0].ID = %d, want %d", pending[0].ID, filed.ID)
	}
}
