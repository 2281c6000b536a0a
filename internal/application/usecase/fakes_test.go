package usecase

import (
	"context"
	"fmt"

	invdom "vreetory/internal/domain/inventory"
	udom "vreetory/internal/domain/user"
)

type fakeUserRepo struct {
	users     []udom.User
	streamErr error
}

func (f *fakeUserRepo) Stream(_ context.Context, fn func(udom.User) error) error {
	for _, u := range f.users {
		if err := fn(u); err != nil {
			return err
		}
	}
	return f.streamErr
}

type fakeItemRepo struct {
	items   []invdom.Item
	listErr error
	failIDs map[string]error

	calls  []invdom.MinimumStockUpdate
	stored map[string]string
}

func newFakeItemRepo(items ...invdom.Item) *fakeItemRepo {
	return &fakeItemRepo{items: items, failIDs: map[string]error{}, stored: map[string]string{}}
}

func (f *fakeItemRepo) ListAll(context.Context) ([]invdom.Item, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]invdom.Item(nil), f.items...), nil
}

func (f *fakeItemRepo) UpdateMinimumStock(_ context.Context, id, value string) error {
	f.calls = append(f.calls, invdom.MinimumStockUpdate{ItemID: id, MinimumStock: value})
	if err, ok := f.failIDs[id]; ok {
		return err
	}
	f.stored[id] = value
	return nil
}

// fakeBulkItemRepo additionally satisfies invdom.BulkUpdater.
type fakeBulkItemRepo struct {
	*fakeItemRepo
	bulkCalls int
	short     bool
}

func (f *fakeBulkItemRepo) BulkUpdateMinimumStock(ctx context.Context, updates []invdom.MinimumStockUpdate) []error {
	f.bulkCalls++
	errs := make([]error, len(updates))
	for i, u := range updates {
		errs[i] = f.fakeItemRepo.UpdateMinimumStock(ctx, u.ItemID, u.MinimumStock)
	}
	if f.short && len(errs) > 0 {
		return errs[:len(errs)-1]
	}
	return errs
}

func errRemote(msg string) error {
	return fmt.Errorf("rpc error: code = Internal desc = %s", msg)
}
