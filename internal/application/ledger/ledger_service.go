package ledger

import (
	"context"

	"github.com/chatu326/Stationary-Manager/internal/domain/catalog"
	"github.com/chatu326/Stationary-Manager/internal/domain/ledger"
	"github.com/chatu326/Stationary-Manager/internal/domain/shared"
)

// CodeDecoder extracts an item identifier from a scanned code image
type CodeDecoder interface {
	// DecodeItemID reads an item identifier from a PNG or JPEG image.
	// Returns shared.ErrUnreadableCode if no identifier can be read.
	DecodeItemID(image []byte) (uint, error)
}

// ChangeNotifier is told after any durable write so the data file can be
// mirrored off-box. Notifications are fire-and-forget.
type ChangeNotifier interface {
	Notify()
}

// LedgerService records stock movements. Every adjustment updates the item's
// cached stock and appends a ledger entry in one transaction; there is no code
// path that changes one without the other.
type LedgerService struct {
	txScope   TransactionScope
	itemRepo  catalog.ItemRepository
	entryRepo ledger.EntryRepository
	decoder   CodeDecoder
	notifier  ChangeNotifier
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(txScope TransactionScope, itemRepo catalog.ItemRepository, entryRepo ledger.EntryRepository, decoder CodeDecoder) *LedgerService {
	return &LedgerService{
		txScope:   txScope,
		itemRepo:  itemRepo,
		entryRepo: entryRepo,
		decoder:   decoder,
	}
}

// SetChangeNotifier sets the notifier invoked after writes (optional)
func (s *LedgerService) SetChangeNotifier(notifier ChangeNotifier) {
	s.notifier = notifier
}

// Adjust applies a signed stock adjustment to an item. Stock may go negative;
// the store records what happened rather than refusing the movement, and the
// low stock report surfaces the discrepancy.
func (s *LedgerService) Adjust(ctx context.Context, itemID uint, quantity int, actor string) (*AdjustmentResponse, error) {
	entry, err := ledger.NewEntry(itemID, quantity, actor)
	if err != nil {
		return nil, err
	}

	var updated *catalog.Item
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.ItemRepo().FindByID(ctx, itemID); err != nil {
			return shared.ErrItemNotFound
		}
		if err := repos.ItemRepo().AdjustStock(ctx, itemID, entry.SignedQuantity()); err != nil {
			return err
		}
		if err := repos.EntryRepo().Append(ctx, entry); err != nil {
			return err
		}
		item, err := repos.ItemRepo().FindByID(ctx, itemID)
		if err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyChanged()

	return &AdjustmentResponse{
		Entry:    ToEntryResponse(entry),
		NewStock: updated.Stock,
		LowStock: updated.IsLowStock(),
	}, nil
}

// AdjustByCode decodes a scanned item code and applies the adjustment to the
// decoded item.
func (s *LedgerService) AdjustByCode(ctx context.Context, image []byte, quantity int, actor string) (*AdjustmentResponse, error) {
	itemID, err := s.decoder.DecodeItemID(image)
	if err != nil {
		return nil, shared.ErrUnreadableCode
	}
	return s.Adjust(ctx, itemID, quantity, actor)
}

// History returns an item's full ledger history, oldest first
func (s *LedgerService) History(ctx context.Context, itemID uint) ([]EntryResponse, error) {
	if _, err := s.itemRepo.FindByID(ctx, itemID); err != nil {
		return nil, shared.ErrItemNotFound
	}

	entries, err := s.entryRepo.FindByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return ToEntryResponses(entries), nil
}

func (s *LedgerService) notifyChanged() {
	if s.notifier != nil {
		s.notifier.Notify()
	}
}
