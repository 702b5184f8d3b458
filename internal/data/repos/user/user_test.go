package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/coursehub-backend/internal/data/repos/testutil"
	types "github.com/yungbote/coursehub-backend/internal/domain"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewUserRepo(db, testutil.Logger(t))

	u := &types.User{Name: "Ada", Email: "userrepo@example.com", Password: "hash"}
	if _, err := repo.Create(ctx, tx, []*types.User{u}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == uuid.Nil {
		t.Fatalf("Create: expected generated id")
	}
	if u.Role != types.RoleUser || u.AvatarURL != types.DefaultAvatarURL {
		t.Fatalf("Create defaults: role=%q avatar=%q", u.Role, u.AvatarURL)
	}

	if rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{u.ID}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.GetByEmails(ctx, tx, []string{u.Email}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByEmails: err=%v len=%d", err, len(rows))
	}
	if got, err := repo.GetByName(ctx, tx, "Ada"); err != nil || got == nil || got.ID != u.ID {
		t.Fatalf("GetByName: err=%v got=%v", err, got)
	}
	if got, err := repo.GetByName(ctx, tx, "nobody"); err != nil || got != nil {
		t.Fatalf("GetByName missing: err=%v got=%v", err, got)
	}
	if ok, err := repo.EmailExists(ctx, tx, u.Email); err != nil || !ok {
		t.Fatalf("EmailExists: ok=%v err=%v", ok, err)
	}

	dup := &types.User{Name: "Other", Email: u.Email, Password: "hash"}
	if _, err := repo.Create(ctx, tx.SavePoint("dup"), []*types.User{dup}); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate Create: expected ErrDuplicatedKey, got %v", err)
	}
	tx.RollbackTo("dup")

	exp := time.Now().Add(10 * time.Minute)
	if err := repo.SetOTP(ctx, tx, u.ID, "123456", exp); err != nil {
		t.Fatalf("SetOTP: %v", err)
	}
	rows, _ := repo.GetByIDs(ctx, tx, []uuid.UUID{u.ID})
	if rows[0].OTP != "123456" || rows[0].OTPExpiry == nil {
		t.Fatalf("SetOTP not persisted: %+v", rows[0])
	}

	if err := repo.UpdatePassword(ctx, tx, u.ID, "newhash"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
	rows, _ = repo.GetByIDs(ctx, tx, []uuid.UUID{u.ID})
	if rows[0].Password != "newhash" || rows[0].OTP != "" || rows[0].OTPExpiry != nil {
		t.Fatalf("UpdatePassword did not clear otp: %+v", rows[0])
	}

	if err := repo.UpdateFields(ctx, tx, u.ID, map[string]any{"name": "Ada L"}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if list, err := repo.List(ctx, tx); err != nil || len(list) == 0 {
		t.Fatalf("List: err=%v len=%d", err, len(list))
	}

	if err := repo.DeleteByIDs(ctx, tx, []uuid.UUID{u.ID}); err != nil {
		t.Fatalf("DeleteByIDs: %v", err)
	}
	if rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{u.ID}); err != nil || len(rows) != 0 {
		t.Fatalf("after DeleteByIDs GetByIDs: err=%v len=%d", err, len(rows))
	}
}
