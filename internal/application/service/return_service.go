package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/primeurdirect/primeur-api/internal/domain/entity"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	"github.com/primeurdirect/primeur-api/internal/domain/repository"
	"github.com/primeurdirect/primeur-api/pkg/apperror"
	"github.com/primeurdirect/primeur-api/pkg/pagination"
	"github.com/primeurdirect/primeur-api/pkg/reference"
)

// ReturnService handles merchandise returns and credit notes
type ReturnService struct {
	returnRepo   repository.ReturnRepository
	orderRepo    repository.OrderRepository
	auditService *AuditService
}

// NewReturnService creates a new return service
func NewReturnService(
	returnRepo repository.ReturnRepository,
	orderRepo repository.OrderRepository,
	auditService *AuditService,
) *ReturnService {
	return &ReturnService{
		returnRepo:   returnRepo,
		orderRepo:    orderRepo,
		auditService: auditService,
	}
}

// ReturnItemInput represents one returned line
type ReturnItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	Reason    string
}

// CreateReturnInput represents the input for filing a return
type CreateReturnInput struct {
	OrderID   uuid.UUID
	ShopID    uuid.UUID
	Items     []ReturnItemInput
	CreatedBy uuid.UUID
}

// CreateReturn files a return against a delivered order. Returned quantities
// cannot exceed the ordered quantities; unit prices are taken from the order
// snapshot.
func (s *ReturnService) CreateReturn(ctx context.Context, input *CreateReturnInput) (*entity.Return, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("a return requires at least one item")
	}

	order, err := s.orderRepo.GetWithItems(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.ShopID != input.ShopID {
		return nil, apperror.ErrForbidden
	}
	if order.Status != enum.OrderStatusDelivered {
		return nil, apperror.NewBadRequestError("Only delivered orders can be returned")
	}

	orderedByProduct := make(map[uuid.UUID]*entity.OrderItem, len(order.Items))
	for i := range order.Items {
		orderedByProduct[order.Items[i].ProductID] = &order.Items[i]
	}

	items := make([]entity.ReturnItem, 0, len(input.Items))
	for _, in := range input.Items {
		if in.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("return quantity must be positive")
		}
		if in.Reason == "" {
			return nil, apperror.NewBadRequestError("each returned item requires a reason")
		}
		ordered, ok := orderedByProduct[in.ProductID]
		if !ok {
			return nil, apperror.NewBadRequestError("Product was not part of the order")
		}
		if in.Quantity > ordered.Quantity {
			return nil, apperror.NewBadRequestError("Cannot return more than was ordered")
		}

		items = append(items, entity.ReturnItem{
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			PriceHT:   ordered.PriceHT,
			Reason:    in.Reason,
		})
	}

	ret := &entity.Return{
		OrderID: input.OrderID,
		ShopID:  input.ShopID,
		Status:  enum.ReturnStatusPending,
		Items:   items,
	}

	if err := reference.CreateWithRetry(reference.ReturnPrefix, time.Now(), func(number string) error {
		ret.ReturnNumber = number
		return s.returnRepo.Create(ctx, ret)
	}); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &input.CreatedBy, "CREATE", "Return", &ret.ID, map[string]any{
		"number": ret.ReturnNumber,
	})
	return s.returnRepo.GetWithItems(ctx, ret.ID)
}

// AttachPhoto records the stored photo path on a pending return
func (s *ReturnService) AttachPhoto(ctx context.Context, id uuid.UUID, photoPath string, attachedBy uuid.UUID) (*entity.Return, error) {
	ret, err := s.returnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, apperror.NewNotFoundError("Return")
	}
	if ret.Status != enum.ReturnStatusPending {
		return nil, apperror.NewConflictError("Photos can only be attached to pending returns")
	}

	ret.PhotoPath = &photoPath
	if err := s.returnRepo.Update(ctx, ret); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &attachedBy, "ATTACH_PHOTO", "Return", &ret.ID, map[string]any{
		"path": photoPath,
	})
	return s.returnRepo.GetWithItems(ctx, ret.ID)
}

// GetReturn retrieves a return with its items and credit note
func (s *ReturnService) GetReturn(ctx context.Context, id uuid.UUID) (*entity.Return, error) {
	ret, err := s.returnRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, apperror.NewNotFoundError("Return")
	}
	return ret, nil
}

// ListReturnsInput represents the input for listing returns
type ListReturnsInput struct {
	Pagination *pagination.PaginationParams
	Status     *enum.ReturnStatus
	ShopID     *uuid.UUID
	SortBy     string
	SortOrder  string
}

// ListReturns lists returns with filtering
func (s *ReturnService) ListReturns(ctx context.Context, input *ListReturnsInput) (*pagination.PaginatedResult[entity.Return], error) {
	returns, total, err := s.returnRepo.List(ctx, &repository.ReturnFilterParams{
		Pagination: input.Pagination,
		Status:     input.Status,
		ShopID:     input.ShopID,
		SortBy:     input.SortBy,
		SortOrder:  input.SortOrder,
	})
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(returns, pag), nil
}

// ApproveReturnInput represents the input for approving a return
type ApproveReturnInput struct {
	ID              uuid.UUID
	DecidedBy       uuid.UUID
	DecisionNote    *string
	IssueCreditNote bool
	Restock         bool
}

// ApproveReturn approves a pending return, optionally issuing a credit note
// for the returned amount and restoring the stock, all in one transaction.
func (s *ReturnService) ApproveReturn(ctx context.Context, input *ApproveReturnInput) (*entity.Return, error) {
	ret, err := s.returnRepo.GetWithItems(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, apperror.NewNotFoundError("Return")
	}
	if ret.Status != enum.ReturnStatusPending {
		return nil, apperror.NewConflictError("Return has already been decided")
	}

	now := time.Now()
	amount := ret.TotalAmount()

	var restock map[uuid.UUID]int
	if input.Restock {
		restock = make(map[uuid.UUID]int, len(ret.Items))
		for _, item := range ret.Items {
			restock[item.ProductID] += item.Quantity
		}
	}

	ret.Status = enum.ReturnStatusApproved
	ret.DecisionNote = input.DecisionNote
	ret.DecidedByID = &input.DecidedBy
	ret.DecidedAt = &now
	// Strip associations so Save only touches the return row
	ret.Items = nil
	ret.CreditNote = nil

	// The approval transaction rolls back as a whole, so a credit number
	// collision is retried by rerunning it with a fresh number
	if input.IssueCreditNote {
		credit := &entity.CreditNote{
			ReturnID: ret.ID,
			Amount:   amount,
			IssuedAt: now,
		}
		err = reference.CreateWithRetry(reference.CreditNotePrefix, now, func(number string) error {
			credit.CreditNumber = number
			return s.returnRepo.Approve(ctx, ret, credit, restock)
		})
	} else {
		err = s.returnRepo.Approve(ctx, ret, nil, restock)
	}
	if err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &input.DecidedBy, "APPROVE", "Return", &ret.ID, map[string]any{
		"credit_note": input.IssueCreditNote,
		"restock":     input.Restock,
	})
	return s.returnRepo.GetWithItems(ctx, ret.ID)
}

// RejectReturnInput represents the input for rejecting a return
type RejectReturnInput struct {
	ID           uuid.UUID
	DecidedBy    uuid.UUID
	DecisionNote *string
}

// RejectReturn rejects a pending return with a decision note
func (s *ReturnService) RejectReturn(ctx context.Context, input *RejectReturnInput) (*entity.Return, error) {
	ret, err := s.returnRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, apperror.NewNotFoundError("Return")
	}
	if ret.Status != enum.ReturnStatusPending {
		return nil, apperror.NewConflictError("Return has already been decided")
	}

	now := time.Now()
	ret.Status = enum.ReturnStatusRejected
	ret.DecisionNote = input.DecisionNote
	ret.DecidedByID = &input.DecidedBy
	ret.DecidedAt = &now

	if err := s.returnRepo.Update(ctx, ret); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &input.DecidedBy, "REJECT", "Return", &ret.ID, nil)
	return ret, nil
}

// ReturnStats aggregates return activity over the given number of days
func (s *ReturnService) ReturnStats(ctx context.Context, days int) (*repository.ReturnStats, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)
	return s.returnRepo.Stats(ctx, since)
}
