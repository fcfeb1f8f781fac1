package repository

import (
	"context"
	"errors"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteのインメモリDBで本物のトランザクション挙動を確認する
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.SubProduct{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
		&model.Complaint{},
		&model.InvoiceRecord{},
		&model.Notification{},
		&model.StoredFile{},
		&model.AuditLog{},
	))
	return db
}

func TestWithinTx_RollsBackEverything(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&model.Product{ID: 1, ProductCode: "p1", Name: "Cell Pack A", Category: "Batteries", Price: 100, Stock: 10}).Error)
	require.NoError(t, db.Create(&model.Order{ID: 100, UserID: 1, TotalAmount: 500, Status: model.OrderStatusNotVerified}).Error)

	tm := NewTxManagerGorm(db)
	boom := errors.New("boom")

	err := tm.WithinTx(ctx, func(r repo.TxRepos) error {
		ok, err := r.Inventory().DecreaseStockIfEnough(ctx, 1, 5)
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, r.Orders().UpdateStatus(ctx, 100, model.OrderStatusPlaced))
		return boom
	})
	require.ErrorIs(t, err, boom)

	//在庫もステータスも巻き戻る
	var p model.Product
	require.NoError(t, db.First(&p, 1).Error)
	assert.Equal(t, int64(10), p.Stock)

	var o model.Order
	require.NoError(t, db.First(&o, 100).Error)
	assert.Equal(t, model.OrderStatusNotVerified, o.Status)
}

func TestWithinTx_CommitsOnSuccess(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&model.Product{ID: 1, ProductCode: "p1", Name: "Cell Pack A", Category: "Batteries", Price: 100, Stock: 10}).Error)

	tm := NewTxManagerGorm(db)
	err := tm.WithinTx(ctx, func(r repo.TxRepos) error {
		ok, err := r.Inventory().DecreaseStockIfEnough(ctx, 1, 4)
		require.NoError(t, err)
		require.True(t, ok)
		return nil
	})
	require.NoError(t, err)

	var p model.Product
	require.NoError(t, db.First(&p, 1).Error)
	assert.Equal(t, int64(6), p.Stock)
}

func TestDecreaseStockIfEnough_Insufficient(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&model.Product{ID: 1, ProductCode: "p1", Name: "Cell Pack A", Category: "Batteries", Price: 100, Stock: 3}).Error)

	inv := NewInventoryGormRepository(db)
	ok, err := inv.DecreaseStockIfEnough(ctx, 1, 4)
	require.NoError(t, err)
	assert.False(t, ok)

	var p model.Product
	require.NoError(t, db.First(&p, 1).Error)
	assert.Equal(t, int64(3), p.Stock)

	//ちょうど残り全部は通る
	ok, err = inv.DecreaseStockIfEnough(ctx, 1, 3)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestApplyApproval(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&model.Order{ID: 100, UserID: 1, TotalAmount: 1000, Status: model.OrderStatusNotVerified}).Error)

	orders := NewOrderGormRepository(db)
	require.NoError(t, orders.ApplyApproval(ctx, 100, 850, 150))

	o, err := orders.FindByID(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPlaced, o.Status)
	assert.Equal(t, int64(850), o.TotalAmount)
	assert.Equal(t, int64(150), o.Discount)

	require.ErrorIs(t, orders.ApplyApproval(ctx, 999, 1, 1), repo.ErrNotFound)
}

func TestComplaintRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	complaints := NewComplaintGormRepository(db)
	id, err := complaints.Create(ctx, model.Complaint{
		UserID:       1,
		TicketID:     "TKT-AB12CD34",
		Category:     "battery",
		InvoiceNo:    "EC/24 - 25/77",
		SerialNumber: "TB-150-0042",
		Description:  "swollen cell",
		Status:       model.ComplaintStatusOpen,
		Priority:     model.ComplaintPriorityLow,
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	require.NoError(t, complaints.UpdateField(ctx, "TKT-AB12CD34", repo.ComplaintFieldStatus, "in progress"))
	require.NoError(t, complaints.ReplaceAssignees(ctx, "TKT-AB12CD34", []model.Assignee{{Name: "Priya", Email: "priya@example.com"}}))

	c, err := complaints.FindByTicketID(ctx, "TKT-AB12CD34")
	require.NoError(t, err)
	assert.Equal(t, model.ComplaintStatusInProgress, c.Status)
	require.Len(t, c.Assignees, 1)
	assert.Equal(t, "Priya", c.Assignees[0].Name)

	err = complaints.UpdateField(ctx, "TKT-NOPE", repo.ComplaintFieldStatus, "closed")
	require.ErrorIs(t, err, repo.ErrNotFound)
}

func TestInvoiceFindBySerialNumber(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	invoices := NewInvoiceGormRepository(db)
	_, err := invoices.Create(ctx, model.InvoiceRecord{
		BillNumber:    "EC/24 - 25/77",
		SerialNumbers: []string{"CELL-100 - 001", "CELL-100 - 002"},
		Date:          "15/03/2025",
	})
	require.NoError(t, err)

	rec, err := invoices.FindBySerialNumber(ctx, "CELL-100 - 002")
	require.NoError(t, err)
	assert.Equal(t, "EC/24 - 25/77", rec.BillNumber)

	//部分一致では拾わない
	_, err = invoices.FindBySerialNumber(ctx, "CELL-100 - 0")
	require.ErrorIs(t, err, repo.ErrNotFound)
}

func TestProductList_CategoryLockedForNonOEM(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&model.Product{ID: 1, ProductCode: "p1", Name: "Tubular Battery", Category: "Batteries", Price: 9500, Stock: 5}).Error)
	require.NoError(t, db.Create(&model.Product{ID: 2, ProductCode: "p2", Name: "BMS Module", Category: "Electronics", Price: 1200, Stock: 5}).Error)

	products := NewProductGormRepository(db)

	//individualはBatteries以外見えない
	items, total, err := products.List(ctx, repo.ProductListQuery{Page: 1, Limit: 10, UserType: model.UserTypeIndividual})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Batteries", items[0].Category)

	//oemは全カテゴリ
	_, total, err = products.List(ctx, repo.ProductListQuery{Page: 1, Limit: 10, UserType: model.UserTypeOEM})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestOrderLifecycleThroughRepositories(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	orders := NewOrderGormRepository(db)
	items := NewOrderItemGormRepository(db)
	payments := NewPaymentGormRepository(db)

	orderID, err := orders.Create(ctx, model.Order{
		UserID:      1,
		TotalAmount: 1000,
		Status:      model.OrderStatusNotVerified,
	})
	require.NoError(t, err)

	require.NoError(t, items.CreateBulk(ctx, orderID, []model.OrderItem{
		{ProductID: 1, Quantity: 5, UnitPriceSnapshot: 100},
		{ProductID: 2, Quantity: 2, UnitPriceSnapshot: 250},
	}))

	got, err := items.ListByOrderID(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(100), got[0].UnitPriceSnapshot)

	payID, err := payments.Create(ctx, model.Payment{
		OrderID: orderID,
		Amount:  1000,
		Mode:    model.PaymentModeOnline,
		Status:  model.PaymentStatusPaid,
	})
	require.NoError(t, err)

	p, err := payments.FindByOrderID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, payID, p.ID)
	assert.Equal(t, model.PaymentStatusPaid, p.Status)

	//決済を紐付けた注文だけがallOrdersに乗る
	require.NoError(t, db.Model(&model.Order{}).Where("id = ?", orderID).Update("payment_id", payID).Error)
	withPayment, err := orders.ListWithPayment(ctx)
	require.NoError(t, err)
	require.Len(t, withPayment, 1)
	assert.Equal(t, orderID, withPayment[0].ID)

	require.NoError(t, orders.MarkEmailSent(ctx, orderID))
	o, err := orders.FindByID(ctx, orderID)
	require.NoError(t, err)
	assert.True(t, o.IsEmailSent)
}

func TestInventorySetAndRestore(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&model.Product{ID: 1, ProductCode: "p1", Name: "Cell Pack A", Category: "Batteries", Price: 100, Stock: 10}).Error)

	inv := NewInventoryGormRepository(db)
	require.NoError(t, inv.SetStock(ctx, 1, 30))

	//キャンセル時の在庫戻し
	require.NoError(t, inv.IncreaseStock(ctx, 1, 5))

	var p model.Product
	require.NoError(t, db.First(&p, 1).Error)
	assert.Equal(t, int64(35), p.Stock)

	require.ErrorIs(t, inv.SetStock(ctx, 99, 1), repo.ErrNotFound)
	require.ErrorIs(t, inv.IncreaseStock(ctx, 99, 1), repo.ErrNotFound)
}

func TestAuditLogList_Filters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	audits := NewAuditLogGormRepository(db)
	require.NoError(t, audits.Create(ctx, model.AuditLog{
		ActorEmail:   "admin@example.com",
		Action:       model.AuditActionApproveOrder,
		ResourceType: model.AuditResourceOrder,
		ResourceID:   100,
	}))
	require.NoError(t, audits.Create(ctx, model.AuditLog{
		ActorEmail:   "admin@example.com",
		Action:       model.AuditActionVerifyUser,
		ResourceType: model.AuditResourceUser,
		ResourceID:   2,
	}))

	action := model.AuditActionApproveOrder
	logs, err := audits.List(ctx, repo.AuditLogFilter{Action: &action})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, int64(100), logs[0].ResourceID)

	logs, err = audits.List(ctx, repo.AuditLogFilter{})
	require.NoError(t, err)
	assert.Len(t, logs, 2)
	//新しい順
	assert.Equal(t, model.AuditActionVerifyUser, logs[0].Action)
}

func TestStoredFileRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	files := NewFileGormRepository(db)
	require.NoError(t, files.Save(ctx, model.StoredFile{
		ID:          "11111111-2222-3333-4444-555555555555",
		Filename:    "aadhaar.pdf",
		ContentType: "application/pdf",
		MD5:         "d41d8cd98f00b204e9800998ecf8427e",
		Content:     []byte("scan"),
	}))

	f, err := files.FindByID(ctx, "11111111-2222-3333-4444-555555555555")
	require.NoError(t, err)
	assert.Equal(t, "aadhaar.pdf", f.Filename)
	assert.Equal(t, []byte("scan"), f.Content)

	_, err = files.FindByID(ctx, "missing")
	require.ErrorIs(t, err, repo.ErrNotFound)
}

func TestUserRepository_FindByEmailMissing(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	users := NewUserGormRepository(db)
	u, err := users.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)
}
