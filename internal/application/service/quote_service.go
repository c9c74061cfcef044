package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/primeurdirect/primeur-api/internal/domain/entity"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	"github.com/primeurdirect/primeur-api/internal/domain/repository"
	"github.com/primeurdirect/primeur-api/pkg/apperror"
	"github.com/primeurdirect/primeur-api/pkg/email"
	"github.com/primeurdirect/primeur-api/pkg/pagination"
	"github.com/primeurdirect/primeur-api/pkg/reference"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// QuoteService handles the quote lifecycle from draft to conversion
type QuoteService struct {
	quoteRepo      repository.QuoteRepository
	orderRepo      repository.OrderRepository
	productRepo    repository.ProductRepository
	shopRepo       repository.ShopRepository
	pricingService *PricingService
	auditService   *AuditService
	emailService   *email.EmailService
	logger         *zap.Logger
}

// NewQuoteService creates a new quote service
func NewQuoteService(
	quoteRepo repository.QuoteRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	shopRepo repository.ShopRepository,
	pricingService *PricingService,
	auditService *AuditService,
	emailService *email.EmailService,
	logger *zap.Logger,
) *QuoteService {
	return &QuoteService{
		quoteRepo:      quoteRepo,
		orderRepo:      orderRepo,
		productRepo:    productRepo,
		shopRepo:       shopRepo,
		pricingService: pricingService,
		auditService:   auditService,
		emailService:   emailService,
		logger:         logger,
	}
}

// QuoteItemInput represents a line item input
type QuoteItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateQuoteInput represents the input for creating a quote
type CreateQuoteInput struct {
	ShopID     uuid.UUID
	CreatedBy  uuid.UUID
	ValidUntil time.Time
	Tier       enum.TariffTier
	Notes      *string
	Items      []QuoteItemInput
}

// CreateQuote creates a quote in DRAFT. Unit prices are resolved once via
// the pricing service and snapshotted onto the items; later catalog changes
// never alter the quote.
func (s *QuoteService) CreateQuote(ctx context.Context, input *CreateQuoteInput) (*entity.Quote, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("a quote requires at least one item")
	}

	shop, err := s.shopRepo.GetByID(ctx, input.ShopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, apperror.NewNotFoundError("Shop")
	}

	items, totals, err := s.buildItems(ctx, shop.UserID, input.Tier, input.Items)
	if err != nil {
		return nil, err
	}

	quote := &entity.Quote{
		ShopID:      input.ShopID,
		CreatedByID: input.CreatedBy,
		Status:      enum.QuoteStatusDraft,
		TotalHT:     totals.ht,
		TotalTVA:    totals.tva,
		TotalTTC:    totals.ttc,
		ValidUntil:  input.ValidUntil,
		Notes:       input.Notes,
		Items:       items,
	}

	if err := s.createWithNumber(ctx, quote); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &input.CreatedBy, "CREATE", "Quote", &quote.ID, map[string]any{
		"number": quote.QuoteNumber,
	})
	return s.quoteRepo.GetWithItems(ctx, quote.ID)
}

// createWithNumber assigns a document number, retrying on the rare
// collision against the unique constraint before falling back to the
// extended format.
func (s *QuoteService) createWithNumber(ctx context.Context, quote *entity.Quote) error {
	return reference.CreateWithRetry(reference.QuotePrefix, time.Now(), func(number string) error {
		quote.QuoteNumber = number
		return s.quoteRepo.Create(ctx, quote)
	})
}

type lineTotals struct {
	ht  decimal.Decimal
	tva decimal.Decimal
	ttc decimal.Decimal
}

// buildItems resolves unit prices and computes snapshot totals
func (s *QuoteService) buildItems(ctx context.Context, clientID uuid.UUID, tier enum.TariffTier, inputs []QuoteItemInput) ([]entity.QuoteItem, lineTotals, error) {
	totals := lineTotals{ht: decimal.Zero, tva: decimal.Zero, ttc: decimal.Zero}
	items := make([]entity.QuoteItem, 0, len(inputs))

	for _, in := range inputs {
		if in.Quantity <= 0 {
			return nil, totals, apperror.NewBadRequestError("item quantity must be positive")
		}

		product, err := s.productRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			return nil, totals, err
		}
		if product == nil {
			return nil, totals, apperror.NewNotFoundError("Product")
		}
		if !product.IsActive {
			return nil, totals, apperror.NewBadRequestError("Product " + product.Name + " is not active")
		}

		resolved, err := s.pricingService.ResolvePrice(ctx, &ResolvePriceInput{
			ProductID: in.ProductID,
			UserID:    &clientID,
			Quantity:  in.Quantity,
			Tier:      tier,
		})
		if err != nil {
			return nil, totals, err
		}

		qty := decimal.NewFromInt(int64(in.Quantity))
		lineHT := resolved.PriceHT.Mul(qty).Round(2)
		lineTVA := lineHT.Mul(resolved.TVARate).Div(decimal.NewFromInt(100)).Round(2)

		items = append(items, entity.QuoteItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Unit:        product.Unit,
			Quantity:    in.Quantity,
			PriceHT:     resolved.PriceHT,
			TVARate:     resolved.TVARate,
			TotalHT:     lineHT,
			TotalTVA:    lineTVA,
			TotalTTC:    lineHT.Add(lineTVA),
		})

		totals.ht = totals.ht.Add(lineHT)
		totals.tva = totals.tva.Add(lineTVA)
	}

	totals.ttc = totals.ht.Add(totals.tva)
	return items, totals, nil
}

// GetQuote retrieves a quote with its items
func (s *QuoteService) GetQuote(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	return quote, nil
}

// ListQuotesInput represents the input for listing quotes
type ListQuotesInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.QuoteStatus
	ShopID     *uuid.UUID
	SortBy     string
	SortOrder  string
}

// ListQuotes lists quotes with filtering
func (s *QuoteService) ListQuotes(ctx context.Context, input *ListQuotesInput) (*pagination.PaginatedResult[entity.Quote], error) {
	quotes, total, err := s.quoteRepo.List(ctx, &repository.QuoteFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Status:     input.Status,
		ShopID:     input.ShopID,
		SortBy:     input.SortBy,
		SortOrder:  input.SortOrder,
	})
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(quotes, pag), nil
}

// UpdateQuoteInput represents the input for updating a quote
type UpdateQuoteInput struct {
	ID         uuid.UUID
	ValidUntil *time.Time
	Tier       enum.TariffTier
	Notes      *string
	Items      []QuoteItemInput
	UpdatedBy  uuid.UUID
}

// UpdateQuote replaces the full item set and recomputes totals. Updates are
// rejected once the quote has been converted.
func (s *QuoteService) UpdateQuote(ctx context.Context, input *UpdateQuoteInput) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	if quote.Status == enum.QuoteStatusConverted {
		return nil, apperror.NewConflictError("Quote has already been converted")
	}
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("a quote requires at least one item")
	}

	shop, err := s.shopRepo.GetByID(ctx, quote.ShopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, apperror.NewNotFoundError("Shop")
	}

	items, totals, err := s.buildItems(ctx, shop.UserID, input.Tier, input.Items)
	if err != nil {
		return nil, err
	}

	if input.ValidUntil != nil {
		quote.ValidUntil = *input.ValidUntil
	}
	if input.Notes != nil {
		quote.Notes = input.Notes
	}
	quote.TotalHT = totals.ht
	quote.TotalTVA = totals.tva
	quote.TotalTTC = totals.ttc

	if err := s.quoteRepo.ReplaceItems(ctx, quote, items); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &input.UpdatedBy, "UPDATE", "Quote", &quote.ID, nil)
	return s.quoteRepo.GetWithItems(ctx, quote.ID)
}

// SendQuote flips DRAFT to SENT and emails the shop. The email is
// best-effort: a delivery failure does not undo the transition.
func (s *QuoteService) SendQuote(ctx context.Context, id uuid.UUID, sentBy uuid.UUID) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	if !quote.Status.CanTransitionTo(enum.QuoteStatusSent) {
		return nil, apperror.NewConflictError("Quote cannot be sent from status " + quote.Status.String())
	}

	ok, err := s.quoteRepo.TransitionStatus(ctx, id, quote.Status, enum.QuoteStatusSent)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NewConflictError("Quote status changed concurrently")
	}
	quote.Status = enum.QuoteStatusSent

	shop, err := s.shopRepo.GetByID(ctx, quote.ShopID)
	if err == nil && shop != nil {
		go func(toEmail, shopName string) {
			sendErr := s.emailService.SendQuoteEmail(toEmail, email.QuoteEmailData{
				ShopName:    shopName,
				QuoteNumber: quote.QuoteNumber,
				TotalTTC:    quote.TotalTTC.StringFixed(2),
				ValidUntil:  quote.ValidUntil.Format("02/01/2006"),
			})
			if sendErr != nil {
				s.logger.Warn("quote email failed",
					zap.String("quote_number", quote.QuoteNumber),
					zap.Error(sendErr),
				)
			}
		}(shop.User.Email, shop.Name)
	}

	s.auditService.Record(ctx, &sentBy, "SEND", "Quote", &quote.ID, nil)
	return quote, nil
}

// AcceptQuote flips SENT to ACCEPTED
func (s *QuoteService) AcceptQuote(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Quote, error) {
	return s.transition(ctx, id, userID, enum.QuoteStatusAccepted, "ACCEPT")
}

// RejectQuote flips SENT to REJECTED
func (s *QuoteService) RejectQuote(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Quote, error) {
	return s.transition(ctx, id, userID, enum.QuoteStatusRejected, "REJECT")
}

// ExpireQuote flips SENT to EXPIRED
func (s *QuoteService) ExpireQuote(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Quote, error) {
	return s.transition(ctx, id, userID, enum.QuoteStatusExpired, "EXPIRE")
}

func (s *QuoteService) transition(ctx context.Context, id, userID uuid.UUID, target enum.QuoteStatus, action string) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	if !quote.Status.CanTransitionTo(target) {
		return nil, apperror.NewConflictError("Quote cannot move from " + quote.Status.String() + " to " + target.String())
	}

	ok, err := s.quoteRepo.TransitionStatus(ctx, id, quote.Status, target)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NewConflictError("Quote status changed concurrently")
	}
	quote.Status = target

	s.auditService.Record(ctx, &userID, action, "Quote", &quote.ID, nil)
	return quote, nil
}

// ConvertQuote turns an ACCEPTED quote into an order. The order creation and
// the quote stamping run in one transaction, keyed on a conditional status
// update, so a quote can never produce two orders.
func (s *QuoteService) ConvertQuote(ctx context.Context, id uuid.UUID, convertedBy uuid.UUID) (*entity.Order, error) {
	quote, err := s.quoteRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	if quote.Status == enum.QuoteStatusConverted {
		return nil, apperror.NewConflictError("Quote has already been converted")
	}
	if quote.Status != enum.QuoteStatusAccepted {
		return nil, apperror.NewConflictError("Only accepted quotes can be converted")
	}
	if quote.IsExpired(time.Now()) {
		// Status deliberately left untouched
		return nil, apperror.NewBadRequestError("Quote validity period has passed")
	}

	shop, err := s.shopRepo.GetByID(ctx, quote.ShopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, apperror.NewNotFoundError("Shop")
	}

	orderItems := make([]entity.OrderItem, 0, len(quote.Items))
	for _, item := range quote.Items {
		orderItems = append(orderItems, entity.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Unit:        item.Unit,
			Quantity:    item.Quantity,
			PriceHT:     item.PriceHT,
			TVARate:     item.TVARate,
			TotalHT:     item.TotalHT,
			TotalTVA:    item.TotalTVA,
			TotalTTC:    item.TotalTTC,
		})
	}

	order := &entity.Order{
		ShopID:   quote.ShopID,
		UserID:   shop.UserID,
		QuoteID:  &quote.ID,
		Status:   enum.OrderStatusPending,
		TotalHT:  quote.TotalHT,
		TotalTVA: quote.TotalTVA,
		TotalTTC: quote.TotalTTC,
		Items:    orderItems,
	}

	// A number collision rolls the conversion back with it, so the whole
	// transaction is retried with a fresh number
	var converted bool
	if err := reference.CreateWithRetry(reference.OrderPrefix, time.Now(), func(number string) error {
		order.OrderNumber = number
		ok, err := s.quoteRepo.ConvertToOrder(ctx, quote, order)
		if err != nil {
			return err
		}
		converted = ok
		return nil
	}); err != nil {
		return nil, err
	}
	if !converted {
		return nil, apperror.NewConflictError("Quote has already been converted")
	}

	s.auditService.Record(ctx, &convertedBy, "CONVERT", "Quote", &quote.ID, map[string]any{
		"order_id":     order.ID.String(),
		"order_number": order.OrderNumber,
	})
	return s.orderRepo.GetWithItems(ctx, order.ID)
}

// DeleteQuote soft-deletes a quote; converted quotes stay on the books
func (s *QuoteService) DeleteQuote(ctx context.Context, id uuid.UUID, deletedBy uuid.UUID) error {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if quote == nil {
		return apperror.NewNotFoundError("Quote")
	}
	if quote.Status == enum.QuoteStatusConverted {
		return apperror.NewConflictError("Converted quotes cannot be deleted")
	}
	if err := s.quoteRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditService.Record(ctx, &deletedBy, "DELETE", "Quote", &id, nil)
	return nil
}
