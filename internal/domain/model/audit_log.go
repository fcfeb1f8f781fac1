package model

import "time"

// 管理者操作の種類
type AuditAction string

const (
	//注文を承認した操作。
	AuditActionApproveOrder AuditAction = "APPROVE_ORDER"
	//注文ステータスを更新した操作。
	AuditActionUpdateOrderStatus AuditAction = "UPDATE_ORDER_STATUS"
	//ユーザーのKYCを承認した操作。
	AuditActionVerifyUser AuditAction = "VERIFY_USER"
	//在庫を手動更新した操作。
	AuditActionUpdateStock AuditAction = "UPDATE_STOCK"
)

// 何に対する操作か
type AuditResourceType string

const (
	AuditResourceOrder   AuditResourceType = "order"
	AuditResourceProduct AuditResourceType = "product"
	AuditResourceUser    AuditResourceType = "user"
)

// 監査ログ（管理者操作ログ）。
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//操作した管理者のメールアドレス
	ActorEmail string `gorm:"type:varchar(255);not null;index" json:"actor_email"`

	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   int64             `gorm:"not null;index" json:"resource_id"`

	//変更前後のスナップショット（JSON文字列）
	BeforeJSON string `gorm:"type:text" json:"before_json"`
	AfterJSON  string `gorm:"type:text" json:"after_json"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
