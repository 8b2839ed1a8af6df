package loads

import "context"

// Repository abstracts load/phone-call persistence.
//
// Contract notes:
// - GetLoad resolves ref as the internal id first, then as the load_id.
// - ListLoads returns the filtered set already sorted per the filter config.
// - InsertLoad and UpdateLoad enforce load_id uniqueness (ErrDuplicateLoadID).
// - DeleteLoad cascades to the load's phone calls.
type Repository interface {
	InsertLoad(ctx context.Context, l Load) error
	GetLoad(ctx context.Context, ref string) (Load, error)
	ListLoads(ctx context.Context, f Filters) ([]Load, error)
	UpdateLoad(ctx context.Context, l Load) error
	DeleteLoad(ctx context.Context, id string) error
	RandomLoad(ctx context.Context) (Load, error)

	InsertPhoneCall(ctx context.Context, c PhoneCall) error
	ListPhoneCallsByLoad(ctx context.Context, loadUUID string) ([]PhoneCall, error)
	DeletePhoneCallsByLoad(ctx context.Context, loadUUID string) (int, error)
	ListPhoneCalls(ctx context.Context, f CallFilters) ([]PhoneCall, error)
}
