package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ComplaintGormRepository struct {
	db *gorm.DB
}

func NewComplaintGormRepository(db *gorm.DB) *ComplaintGormRepository {
	return &ComplaintGormRepository{db: db}
}

func (r *ComplaintGormRepository) ListAll(ctx context.Context) ([]model.Complaint, error) {
	var complaints []model.Complaint
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&complaints).Error
	if err != nil {
		return []model.Complaint{}, err
	}
	return complaints, nil
}

func (r *ComplaintGormRepository) CountByStatus(ctx context.Context, status model.ComplaintStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Complaint{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}

func (r *ComplaintGormRepository) FindByTicketID(ctx context.Context, ticketID string) (model.Complaint, error) {
	var c model.Complaint
	err := r.db.WithContext(ctx).Where("ticket_id = ?", ticketID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Complaint{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Complaint{}, err
	}
	return c, nil
}

func (r *ComplaintGormRepository) Create(ctx context.Context, c model.Complaint) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return 0, err
	}
	return c.ID, nil
}

// 単一カラムの部分更新。fieldはusecase側で閉じた集合に検証済み。
func (r *ComplaintGormRepository) UpdateField(ctx context.Context, ticketID string, field repo.ComplaintField, value string) error {
	res := r.db.WithContext(ctx).Model(&model.Complaint{}).
		Where("ticket_id = ?", ticketID).
		Update(string(field), value)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ComplaintGormRepository) ReplaceAssignees(ctx context.Context, ticketID string, assignees []model.Assignee) error {
	var c model.Complaint
	err := r.db.WithContext(ctx).Where("ticket_id = ?", ticketID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.ErrNotFound
	}
	if err != nil {
		return err
	}

	c.Assignees = assignees
	return r.db.WithContext(ctx).Save(&c).Error
}
