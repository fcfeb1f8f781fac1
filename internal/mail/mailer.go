package mail

import "context"

// 請求書メール1通分のデータ
type InvoiceLine struct {
	ProductName string
	Quantity    int64
	UnitPrice   int64
}

type InvoiceEmail struct {
	To           string
	CustomerName string
	PINumber     string
	OrderID      int64
	Lines        []InvoiceLine
	Subtotal     int64
	Discount     int64
	Total        int64
}

// 送信の実装（Resend / テスト用nop）を差し替えられるようにする。
// 送信失敗は承認をロールバックしない。呼び出し側でログするだけ。
type Mailer interface {
	SendInvoice(ctx context.Context, email InvoiceEmail) error
}

// NopMailerは何も送らない。テストとローカル用。
type NopMailer struct{}

func (NopMailer) SendInvoice(ctx context.Context, email InvoiceEmail) error {
	return nil
}
