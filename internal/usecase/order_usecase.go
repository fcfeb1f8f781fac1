package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"app/internal/domain/model"
	"app/internal/mail"
	repo "app/internal/repository"

	"go.uber.org/zap"
)

type OrderUsecase struct {
	tx     repo.TransactionManager
	orders repo.OrderRepository
	mailer mail.Mailer
	logger *zap.Logger
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	mailer mail.Mailer,
	logger *zap.Logger,
) *OrderUsecase {
	return &OrderUsecase{tx: tx, orders: orders, mailer: mailer, logger: logger}
}

// populate済みの注文ビュー
type OrderUserOutput struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	UserType string `json:"user_type"`
}

type OrderPaymentOutput struct {
	Amount int64  `json:"amount"`
	Mode   string `json:"mode"`
	Status string `json:"status"`
}

type OrderItemOutput struct {
	ProductID       int64  `json:"product_id"`
	ProductName     string `json:"product_name"`
	ProductCategory string `json:"product_category"`
	Quantity        int64  `json:"quantity"`
	Price           int64  `json:"price"`
}

type OrderOutput struct {
	ID          int64               `json:"id"`
	User        OrderUserOutput     `json:"user"`
	Payment     *OrderPaymentOutput `json:"payment,omitempty"`
	Items       []OrderItemOutput   `json:"items"`
	TotalAmount int64               `json:"total_amount"`
	Discount    int64               `json:"discount"`
	Status      string              `json:"status"`
	IsEmailSent bool                `json:"is_email_sent"`
	CreatedAt   time.Time           `json:"created_at"`
}

// 注文1件をuser/payment/商品名でpopulateする。トランザクション内で呼ぶ。
func populateOrder(ctx context.Context, r repo.TxRepos, o model.Order) (OrderOutput, error) {
	items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
	if err != nil {
		return OrderOutput{}, err
	}

	productIDs := make([]int64, 0, len(items))
	for _, it := range items {
		productIDs = append(productIDs, it.ProductID)
	}
	products, err := r.Products().FindByIDs(ctx, productIDs)
	if err != nil {
		return OrderOutput{}, err
	}
	productByID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	out := OrderOutput{
		ID:          o.ID,
		TotalAmount: o.TotalAmount,
		Discount:    o.Discount,
		Status:      string(o.Status),
		IsEmailSent: o.IsEmailSent,
		CreatedAt:   o.CreatedAt,
		Items:       make([]OrderItemOutput, 0, len(items)),
	}

	for _, it := range items {
		io := OrderItemOutput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.UnitPriceSnapshot,
		}
		if p, ok := productByID[it.ProductID]; ok {
			io.ProductName = p.Name
			io.ProductCategory = p.Category
		}
		out.Items = append(out.Items, io)
	}

	u, err := r.Users().FindByID(ctx, o.UserID)
	if err != nil {
		return OrderOutput{}, err
	}
	if u != nil {
		out.User = OrderUserOutput{
			ID:       u.ID,
			Name:     u.Name,
			Email:    u.Email,
			UserType: string(u.UserType),
		}
	}

	if o.PaymentID != nil {
		p, err := r.Payments().FindByID(ctx, *o.PaymentID)
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return OrderOutput{}, err
		}
		if err == nil {
			out.Payment = &OrderPaymentOutput{
				Amount: p.Amount,
				Mode:   string(p.Mode),
				Status: string(p.Status),
			}
		}
	}

	return out, nil
}

func (u *OrderUsecase) GetByID(ctx context.Context, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out, err = populateOrder(ctx, r, o)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 決済レコードを持つ注文すべて、新しい順。
func (u *OrderUsecase) ListAll(ctx context.Context) ([]OrderOutput, error) {
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListWithPayment(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			out, err := populateOrder(ctx, r, o)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, out)
		}
		return nil
	})
	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

// 承認待ち：not-verifiedの注文のうち、買い手がreseller/oemのもの。
func (u *OrderUsecase) ListForVerification(ctx context.Context) ([]OrderOutput, error) {
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByStatus(ctx, model.OrderStatusNotVerified)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			out, err := populateOrder(ctx, r, o)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			switch model.UserType(out.User.UserType) {
			case model.UserTypeReseller, model.UserTypeOEM:
				outs = append(outs, out)
			}
		}
		return nil
	})
	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

// 承認フローの確定後、メール送信用に持ち出すデータ
type approvedOrder struct {
	orderID    int64
	buyerEmail string
	buyerName  string
	lines      []mail.InvoiceLine
	subtotal   int64
	discount   int64
	total      int64
}

// Approveは注文を承認してplacedへ遷移させる。
// 全明細の在庫確認→在庫減算→合計再計算→ステータス更新を1トランザクションで行い、
// どこかで失敗したら一切反映しない。
func (u *OrderUsecase) Approve(ctx context.Context, actorEmail string, orderID int64, discount int64) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if discount < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid discount")
	}

	var approved approvedOrder

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//二重承認ガード
		if o.Status == model.OrderStatusPlaced {
			return NewHTTPError(http.StatusBadRequest, "order already placed")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(items) == 0 {
			return NewHTTPError(http.StatusBadRequest, "order has no items")
		}

		productIDs := make([]int64, 0, len(items))
		for _, it := range items {
			productIDs = append(productIDs, it.ProductID)
		}
		products, err := r.Products().FindByIDs(ctx, productIDs)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		productByID := make(map[int64]model.Product, len(products))
		for _, p := range products {
			productByID[p.ID] = p
		}

		//先に全明細の在庫を確認する。1件でも足りなければ何も書かない。
		for _, it := range items {
			p, ok := productByID[it.ProductID]
			if !ok {
				return NewHTTPError(http.StatusNotFound, "product no longer exists")
			}
			if p.Stock < it.Quantity {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf(
					"insufficient stock for %q (current %d, required %d)",
					p.Name, p.Stock, it.Quantity))
			}
		}

		//減算は条件付きUPDATE。並行する承認と競合したらここで止まりロールバックする。
		for _, it := range items {
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, it.ProductID, it.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				p := productByID[it.ProductID]
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf(
					"insufficient stock for %q (current %d, required %d)",
					p.Name, p.Stock, it.Quantity))
			}
		}

		newTotal := o.TotalAmount - discount
		if newTotal < 0 {
			newTotal = 0
		}

		if err := r.Orders().ApplyApproval(ctx, orderID, newTotal, discount); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorEmail:   actorEmail,
			Action:       model.AuditActionApproveOrder,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   fmt.Sprintf(`{"status":%q,"total":%d}`, o.Status, o.TotalAmount),
			AfterJSON:    fmt.Sprintf(`{"status":%q,"total":%d,"discount":%d}`, model.OrderStatusPlaced, newTotal, discount),
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//メール用データをトランザクション内で確定させておく
		buyer, err := r.Users().FindByID(ctx, o.UserID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		approved = approvedOrder{
			orderID:  orderID,
			subtotal: o.TotalAmount,
			discount: discount,
			total:    newTotal,
		}
		if buyer != nil {
			approved.buyerEmail = buyer.Email
			approved.buyerName = buyer.Name
		}
		for _, it := range items {
			line := mail.InvoiceLine{
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPriceSnapshot,
			}
			if p, ok := productByID[it.ProductID]; ok {
				line.ProductName = p.Name
			}
			approved.lines = append(approved.lines, line)
		}
		return nil
	})
	if err != nil {
		return err
	}

	//請求書メールはトランザクション外。失敗しても承認は取り消さない。
	u.sendInvoiceEmail(ctx, approved)

	return nil
}

func (u *OrderUsecase) sendInvoiceEmail(ctx context.Context, approved approvedOrder) {
	if approved.buyerEmail == "" {
		u.logger.Warn("invoice email skipped: buyer has no email",
			zap.Int64("order_id", approved.orderID))
		return
	}

	err := u.mailer.SendInvoice(ctx, mail.InvoiceEmail{
		To:           approved.buyerEmail,
		CustomerName: approved.buyerName,
		PINumber:     mail.NewPINumber(time.Now()),
		OrderID:      approved.orderID,
		Lines:        approved.lines,
		Subtotal:     approved.subtotal,
		Discount:     approved.discount,
		Total:        approved.total,
	})
	if err != nil {
		u.logger.Warn("invoice email failed",
			zap.Int64("order_id", approved.orderID), zap.Error(err))
		return
	}

	if err := u.orders.MarkEmailSent(ctx, approved.orderID); err != nil {
		u.logger.Warn("mark email sent failed",
			zap.Int64("order_id", approved.orderID), zap.Error(err))
	}
}

// UpdateStatusは注文ステータスを直接設定する。
// 遷移グラフの検証はしない。どのステータスからどのステータスへも動かせる。
func (u *OrderUsecase) UpdateStatus(ctx context.Context, actorEmail string, orderID int64, status string) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if !model.ValidOrderStatus(status) {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatus(status)); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "order not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorEmail:   actorEmail,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   fmt.Sprintf(`{"status":%q}`, o.Status),
			AfterJSON:    fmt.Sprintf(`{"status":%q}`, status),
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}
