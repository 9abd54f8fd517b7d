package catalog

import (
	"context"

	appledger "github.com/chatu326/Stationary-Manager/internal/application/ledger"
	"github.com/chatu326/Stationary-Manager/internal/domain/catalog"
	"github.com/chatu326/Stationary-Manager/internal/domain/ledger"
	"github.com/chatu326/Stationary-Manager/internal/domain/shared"
)

// CodeGenerator renders an item identifier as a scannable code image
type CodeGenerator interface {
	// EncodeItemID renders the item identifier as a PNG image
	EncodeItemID(itemID uint) ([]byte, error)
}

// ChangeNotifier is told after any durable write so the data file can be
// mirrored off-box. Notifications are fire-and-forget.
type ChangeNotifier interface {
	Notify()
}

// ItemService handles catalog operations
type ItemService struct {
	itemRepo catalog.ItemRepository
	txScope  appledger.TransactionScope
	codes    CodeGenerator
	notifier ChangeNotifier
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo catalog.ItemRepository, txScope appledger.TransactionScope, codes CodeGenerator) *ItemService {
	return &ItemService{
		itemRepo: itemRepo,
		txScope:  txScope,
		codes:    codes,
	}
}

// SetChangeNotifier sets the notifier invoked after writes (optional)
func (s *ItemService) SetChangeNotifier(notifier ChangeNotifier) {
	s.notifier = notifier
}

// Create adds a new item to the catalog and returns it with its assigned
// identifier. When the item starts with stock, an opening ledger entry is
// recorded in the same transaction so the ledger stays the full history of
// every unit.
func (s *ItemService) Create(ctx context.Context, req CreateItemRequest, actor string) (*ItemResponse, error) {
	item, err := catalog.NewItem(req.Name, req.Shelf, req.Row, req.UnitPrice, req.InitialStock, req.ReorderThreshold)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos appledger.TransactionalRepositories) error {
		if err := repos.ItemRepo().Create(ctx, item); err != nil {
			return err
		}
		if req.InitialStock == 0 {
			return nil
		}
		entry, err := ledger.NewEntry(item.ID, req.InitialStock, actor)
		if err != nil {
			return err
		}
		return repos.EntryRepo().Append(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.notifyChanged()

	response := ToItemResponse(item)
	return &response, nil
}

// GetByID retrieves a single item
func (s *ItemService) GetByID(ctx context.Context, id uint) (*ItemResponse, error) {
	item, err := s.findItem(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}

// List returns all catalog items ascending by identifier
func (s *ItemService) List(ctx context.Context) ([]ItemResponse, error) {
	items, err := s.itemRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToItemResponses(items), nil
}

// ListLowStock returns items whose stock has fallen below their reorder
// threshold, ascending by identifier.
func (s *ItemService) ListLowStock(ctx context.Context) ([]ItemResponse, error) {
	items, err := s.itemRepo.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return ToItemResponses(items), nil
}

// Code renders the identifier code image for an existing item
func (s *ItemService) Code(ctx context.Context, id uint) (*ItemCodeResponse, error) {
	item, err := s.findItem(ctx, id)
	if err != nil {
		return nil, err
	}

	png, err := s.codes.EncodeItemID(item.ID)
	if err != nil {
		return nil, shared.NewDomainError("CODE_GENERATION_ERROR", "Failed to generate item code")
	}

	return &ItemCodeResponse{ItemID: item.ID, PNG: png}, nil
}

func (s *ItemService) findItem(ctx context.Context, id uint) (*catalog.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrItemNotFound
	}
	return item, nil
}

func (s *ItemService) notifyChanged() {
	if s.notifier != nil {
		s.notifier.Notify()
	}
}
