package loads

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Recorder receives best-effort notifications about load mutations. Failures
// inside a recorder must never fail the mutation itself.
type Recorder interface {
	RecordMutation(ctx context.Context, action string, l Load, ch Channel)
}

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Service owns all load/phone-call business rules. Handlers stay thin and
// delegate here; the repository stays dumb storage.
type Service struct {
	repo     Repository
	recorder Recorder
	clock    func() time.Time
}

// NewService builds a load service. recorder may be nil.
func NewService(repo Repository, recorder Recorder) *Service {
	return &Service{repo: repo, recorder: recorder, clock: time.Now}
}

func (s *Service) Create(ctx context.Context, req CreateLoadRequest, ch Channel) (Load, error) {
	now := s.clock().UTC()

	l := Load{
		ID:               uuid.NewString(),
		LoadID:           strings.TrimSpace(req.LoadID),
		Origin:           strings.TrimSpace(req.Origin),
		Destination:      strings.TrimSpace(req.Destination),
		PickupDatetime:   req.PickupDatetime,
		DeliveryDatetime: req.DeliveryDatetime,

		EquipmentType: req.EquipmentType,
		LoadboardRate: req.LoadboardRate,
		Notes:         req.Notes,
		Weight:        req.Weight,
		CommodityType: req.CommodityType,
		NumOfPieces:   req.NumOfPieces,
		Miles:         req.Miles,
		Dimensions:    req.Dimensions,

		AgreedPrice:        req.AgreedPrice,
		CarrierDescription: req.CarrierDescription,
		TimePerCallSeconds: req.TimePerCallSeconds,

		AssignedViaURL: ch == ChannelURLAPI,
		Status:         StatusPending,

		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Status != nil {
		l.Status = *req.Status
	}

	if err := validateLoad(l); err != nil {
		return Load{}, err
	}
	if err := s.repo.InsertLoad(ctx, l); err != nil {
		return Load{}, err
	}
	s.record(ctx, ActionCreated, l, ch)
	return l, nil
}

func (s *Service) Get(ctx context.Context, ref string) (Load, error) {
	if strings.TrimSpace(ref) == "" {
		return Load{}, ErrInvalidArgument
	}
	return s.repo.GetLoad(ctx, ref)
}

func (s *Service) Random(ctx context.Context) (Load, error) {
	return s.repo.RandomLoad(ctx)
}

func (s *Service) List(ctx context.Context, f Filters) ([]Load, error) {
	return s.repo.ListLoads(ctx, f)
}

// Update merges the partial request onto the stored record, then validates the
// merged candidate. The provenance flag is overwritten from the channel on
// every update, regardless of payload content.
func (s *Service) Update(ctx context.Context, ref string, req UpdateLoadRequest, ch Channel) (Load, error) {
	cur, err := s.Get(ctx, ref)
	if err != nil {
		return Load{}, err
	}

	merged := cur
	if req.LoadID != nil {
		merged.LoadID = strings.TrimSpace(*req.LoadID)
	}
	if req.Origin != nil {
		merged.Origin = strings.TrimSpace(*req.Origin)
	}
	if req.Destination != nil {
		merged.Destination = strings.TrimSpace(*req.Destination)
	}
	if req.PickupDatetime != nil {
		merged.PickupDatetime = *req.PickupDatetime
	}
	if req.DeliveryDatetime != nil {
		merged.DeliveryDatetime = *req.DeliveryDatetime
	}
	if req.EquipmentType != nil {
		merged.EquipmentType = req.EquipmentType
	}
	if req.LoadboardRate != nil {
		merged.LoadboardRate = req.LoadboardRate
	}
	if req.Notes != nil {
		merged.Notes = req.Notes
	}
	if req.Weight != nil {
		merged.Weight = req.Weight
	}
	if req.CommodityType != nil {
		merged.CommodityType = req.CommodityType
	}
	if req.NumOfPieces != nil {
		merged.NumOfPieces = req.NumOfPieces
	}
	if req.Miles != nil {
		merged.Miles = req.Miles
	}
	if req.Dimensions != nil {
		merged.Dimensions = req.Dimensions
	}
	if req.AgreedPrice != nil {
		merged.AgreedPrice = req.AgreedPrice
	}
	if req.CarrierDescription != nil {
		merged.CarrierDescription = req.CarrierDescription
	}
	if req.TimePerCallSeconds != nil {
		merged.TimePerCallSeconds = req.TimePerCallSeconds
	}
	if req.Status != nil {
		merged.Status = *req.Status
	}

	merged.AssignedViaURL = ch == ChannelURLAPI
	merged.UpdatedAt = s.clock().UTC()

	if err := validateLoad(merged); err != nil {
		return Load{}, err
	}
	if err := s.repo.UpdateLoad(ctx, merged); err != nil {
		return Load{}, err
	}
	s.record(ctx, ActionUpdated, merged, ch)
	return merged, nil
}

// Delete removes a load and cascades to its phone calls.
func (s *Service) Delete(ctx context.Context, ref string) error {
	cur, err := s.Get(ctx, ref)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteLoad(ctx, cur.ID); err != nil {
		return err
	}
	s.record(ctx, ActionDeleted, cur, "")
	return nil
}

func (s *Service) AddPhoneCall(ctx context.Context, ref string, req PhoneCallRequest) (PhoneCall, error) {
	cur, err := s.Get(ctx, ref)
	if err != nil {
		return PhoneCall{}, err
	}

	c := PhoneCall{
		ID:         uuid.NewString(),
		ShipmentID: cur.ID,
		Seconds:    float64(req.Seconds),
		CallType:   req.CallType,
		Sentiment:  req.Sentiment,
		Agreed:     bool(req.Agreed),
		CallID:     req.CallID,
		Notes:      req.Notes,
		CreatedAt:  s.clock().UTC(),
	}
	if c.Sentiment == "" {
		c.Sentiment = SentimentNeutral
	}

	if err := validatePhoneCall(c); err != nil {
		return PhoneCall{}, err
	}
	if err := s.repo.InsertPhoneCall(ctx, c); err != nil {
		return PhoneCall{}, err
	}
	return c, nil
}

func (s *Service) ListPhoneCalls(ctx context.Context, ref string) ([]PhoneCall, error) {
	cur, err := s.Get(ctx, ref)
	if err != nil {
		return nil, err
	}
	return s.repo.ListPhoneCallsByLoad(ctx, cur.ID)
}

// ClearPhoneCalls bulk-deletes a load's calls and returns the removed count.
func (s *Service) ClearPhoneCalls(ctx context.Context, ref string) (int, error) {
	cur, err := s.Get(ctx, ref)
	if err != nil {
		return 0, err
	}
	return s.repo.DeletePhoneCallsByLoad(ctx, cur.ID)
}

func (s *Service) ListAllPhoneCalls(ctx context.Context, f CallFilters) ([]PhoneCall, error) {
	return s.repo.ListPhoneCalls(ctx, f)
}

func (s *Service) record(ctx context.Context, action string, l Load, ch Channel) {
	if s.recorder == nil {
		return
	}
	s.recorder.RecordMutation(ctx, action, l, ch)
}
