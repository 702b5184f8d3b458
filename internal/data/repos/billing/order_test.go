package billing

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/coursehub-backend/internal/data/repos/testutil"
	types "github.com/yungbote/coursehub-backend/internal/domain"
)

func TestOrderRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewOrderRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "orderrepo@example.com")
	c := testutil.SeedCourse(t, ctx, tx, "Order Course", nil)

	o := &types.Order{UserID: u.ID, CourseID: c.ID, RazorpayOrderID: "order_repo_1", Amount: 4999, Receipt: "receipt_1"}
	if _, err := repo.Create(ctx, tx, []*types.Order{o}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if o.Status != types.OrderPending || o.Currency != types.CurrencyINR {
		t.Fatalf("Create defaults: status=%q currency=%q", o.Status, o.Currency)
	}

	got, err := repo.GetByRazorpayOrderID(ctx, tx, "order_repo_1")
	if err != nil || got == nil || got.ID != o.ID {
		t.Fatalf("GetByRazorpayOrderID: err=%v got=%v", err, got)
	}
	if missing, err := repo.GetByRazorpayOrderID(ctx, tx, "order_missing"); err != nil || missing != nil {
		t.Fatalf("GetByRazorpayOrderID missing: err=%v got=%v", err, missing)
	}

	ok, err := repo.MarkPaid(ctx, tx, o.ID, "pay_1", "sig")
	if err != nil || !ok {
		t.Fatalf("MarkPaid: ok=%v err=%v", ok, err)
	}
	ok, err = repo.MarkPaid(ctx, tx, o.ID, "pay_2", "sig2")
	if err != nil || ok {
		t.Fatalf("second MarkPaid should be a no-op: ok=%v err=%v", ok, err)
	}
	rows, _ := repo.GetByIDs(ctx, tx, []uuid.UUID{o.ID})
	if rows[0].Status != types.OrderPaid || rows[0].PaymentID != "pay_1" {
		t.Fatalf("MarkPaid not persisted: %+v", rows[0])
	}

	if list, err := repo.GetByUserIDs(ctx, tx, []uuid.UUID{u.ID}); err != nil || len(list) != 1 {
		t.Fatalf("GetByUserIDs: err=%v len=%d", err, len(list))
	}
	if list, err := repo.List(ctx, tx); err != nil || len(list) != 1 {
		t.Fatalf("List: err=%v len=%d", err, len(list))
	}

	if err := repo.DeleteByCourseIDs(ctx, tx, []uuid.UUID{c.ID}); err != nil {
		t.Fatalf("DeleteByCourseIDs: %v", err)
	}
	if rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{o.ID}); err != nil || len(rows) != 0 {
		t.Fatalf("after delete: err=%v len=%d", err, len(rows))
	}
}
