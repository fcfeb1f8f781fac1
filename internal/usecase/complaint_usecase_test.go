package usecase

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memComplaintRepo struct {
	byTicket map[string]model.Complaint
	nextID   int64
}

func newMemComplaintRepo() *memComplaintRepo {
	return &memComplaintRepo{byTicket: map[string]model.Complaint{}, nextID: 1}
}

func (r *memComplaintRepo) ListAll(ctx context.Context) ([]model.Complaint, error) {
	var out []model.Complaint
	for _, c := range r.byTicket {
		out = append(out, c)
	}
	return out, nil
}

func (r *memComplaintRepo) CountByStatus(ctx context.Context, status model.ComplaintStatus) (int64, error) {
	var n int64
	for _, c := range r.byTicket {
		if c.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *memComplaintRepo) FindByTicketID(ctx context.Context, ticketID string) (model.Complaint, error) {
	c, ok := r.byTicket[ticketID]
	if !ok {
		return model.Complaint{}, repo.ErrNotFound
	}
	return c, nil
}

func (r *memComplaintRepo) Create(ctx context.Context, c model.Complaint) (int64, error) {
	c.ID = r.nextID
	r.nextID++
	r.byTicket[c.TicketID] = c
	return c.ID, nil
}

func (r *memComplaintRepo) UpdateField(ctx context.Context, ticketID string, field repo.ComplaintField, value string) error {
	c, ok := r.byTicket[ticketID]
	if !ok {
		return repo.ErrNotFound
	}
	switch field {
	case repo.ComplaintFieldStatus:
		c.Status = model.ComplaintStatus(value)
	case repo.ComplaintFieldPriority:
		c.Priority = model.ComplaintPriority(value)
	}
	r.byTicket[ticketID] = c
	return nil
}

func (r *memComplaintRepo) ReplaceAssignees(ctx context.Context, ticketID string, assignees []model.Assignee) error {
	c, ok := r.byTicket[ticketID]
	if !ok {
		return repo.ErrNotFound
	}
	c.Assignees = assignees
	r.byTicket[ticketID] = c
	return nil
}

func newComplaintFixture() (*memComplaintRepo, *ComplaintUsecase) {
	complaints := newMemComplaintRepo()
	users := &memUserRepo{s: newMemStore()}
	return complaints, NewComplaintUsecase(complaints, users)
}

func TestCreateComplaint_AssignsTicketID(t *testing.T) {
	complaints, uc := newComplaintFixture()

	c, err := uc.Create(context.Background(), CreateComplaintInput{
		UserID:       1,
		Category:     "battery",
		InvoiceNo:    "EC/24 - 25/77",
		SerialNumber: "TB-150-0042",
		Description:  "swollen cell",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(c.TicketID, "TKT-"))
	assert.Len(t, c.TicketID, 12)
	assert.Equal(t, model.ComplaintStatusOpen, c.Status)
	assert.Equal(t, model.ComplaintPriorityLow, c.Priority)

	stored, err := complaints.FindByTicketID(context.Background(), c.TicketID)
	require.NoError(t, err)
	assert.Equal(t, "swollen cell", stored.Description)
}

func TestUpdateComplaintField(t *testing.T) {
	complaints, uc := newComplaintFixture()
	complaints.byTicket["TKT-ABC"] = model.Complaint{TicketID: "TKT-ABC", Status: model.ComplaintStatusOpen}

	err := uc.UpdateField(context.Background(), "TKT-ABC", "status", "resolved")
	require.NoError(t, err)
	assert.Equal(t, model.ComplaintStatusResolved, complaints.byTicket["TKT-ABC"].Status)

	err = uc.UpdateField(context.Background(), "TKT-ABC", "priority", "high")
	require.NoError(t, err)
	assert.Equal(t, model.ComplaintPriorityHigh, complaints.byTicket["TKT-ABC"].Priority)
}

func TestUpdateComplaintField_Rejections(t *testing.T) {
	complaints, uc := newComplaintFixture()
	complaints.byTicket["TKT-ABC"] = model.Complaint{TicketID: "TKT-ABC"}

	tests := []struct {
		name     string
		ticketID string
		field    string
		value    string
		status   int
		message  string
	}{
		{"unknown field", "TKT-ABC", "description", "x", http.StatusBadRequest, "invalid field"},
		{"bad status value", "TKT-ABC", "status", "escalated", http.StatusBadRequest, "invalid status"},
		{"bad priority value", "TKT-ABC", "priority", "urgent", http.StatusBadRequest, "invalid priority"},
		{"empty ticket", "", "status", "open", http.StatusBadRequest, "ticket id is required"},
		{"unknown ticket", "TKT-NOPE", "status", "open", http.StatusNotFound, "complaint not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := uc.UpdateField(context.Background(), tt.ticketID, tt.field, tt.value)
			he, ok := AsHTTPError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, he.Status)
			assert.Equal(t, tt.message, he.Message)
		})
	}
}

func TestAssignComplaint_ReplacesList(t *testing.T) {
	complaints, uc := newComplaintFixture()
	complaints.byTicket["TKT-ABC"] = model.Complaint{
		TicketID:  "TKT-ABC",
		Assignees: []model.Assignee{{Name: "Old", Email: "old@example.com"}},
	}

	err := uc.Assign(context.Background(), "TKT-ABC", "Priya", "priya@example.com")
	require.NoError(t, err)

	got := complaints.byTicket["TKT-ABC"].Assignees
	require.Len(t, got, 1)
	assert.Equal(t, "Priya", got[0].Name)
	assert.Equal(t, "priya@example.com", got[0].Email)
}

func TestAssignComplaint_UnknownTicket(t *testing.T) {
	_, uc := newComplaintFixture()

	err := uc.Assign(context.Background(), "TKT-NOPE", "Priya", "priya@example.com")
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}
